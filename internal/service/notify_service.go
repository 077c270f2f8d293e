package service

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"agendaja/internal/db"
)

var monthsPtBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// NotifyService formats and delivers the WhatsApp messages the client
// receives plus the e-mail the tenant receives on a new booking. Everything
// here is fire-and-forget: a committed booking is never rolled back because a
// message failed.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (n *NotifyService) NotifyConfirmation(b *db.Booking, svc *db.Service, prof *db.Professional, tenant *db.Tenant) {
	message := ConfirmationMessage(b, svc, prof, tenant)

	go func() {
		if err := SendWhatsApp(b.ClientWhatsApp, message); err != nil {
			log.Printf("ALERTA: reserva %s confirmada, mas falhou o envio do WhatsApp para %s: %v", b.ID, b.ClientWhatsApp, err)
		}
	}()

	if tenant.ContactEmail == "" {
		return
	}
	subject := fmt.Sprintf("Novo agendamento: %s - %s", svc.Name, FormatDatePtBR(b.StartTime, tenantLocation(tenant)))
	body := fmt.Sprintf(
		"Novo agendamento em %s.\n\nCliente: %s (%s)\nServiço: %s\nProfissional: %s\nHorário: %s\n",
		tenant.Name, b.ClientName, b.ClientWhatsApp, svc.Name, prof.Name,
		FormatDatePtBR(b.StartTime, tenantLocation(tenant)),
	)
	go func() {
		if err := SendEmailWithSendGrid(tenant.ContactEmail, tenant.Name, subject, body, ""); err != nil {
			log.Printf("ALERTA: falhou o envio do e-mail de novo agendamento para %s: %v", tenant.ContactEmail, err)
		}
	}()
}

func (n *NotifyService) NotifyCancellation(b *db.Booking, svc *db.Service, tenant *db.Tenant) {
	message := CancellationMessage(b, svc, tenant)
	go func() {
		if err := SendWhatsApp(b.ClientWhatsApp, message); err != nil {
			log.Printf("ALERTA: reserva %s cancelada, mas falhou o envio do WhatsApp para %s: %v", b.ID, b.ClientWhatsApp, err)
		}
	}()
}

// ConfirmationMessage is the pt-BR confirmation text sent to the client.
func ConfirmationMessage(b *db.Booking, svc *db.Service, prof *db.Professional, tenant *db.Tenant) string {
	dateStr := FormatDatePtBR(b.StartTime, tenantLocation(tenant))
	return fmt.Sprintf(
		"Olá %s! Confirmamos seu agendamento:\n\n📅 Data: *%s*\n🛠️ Serviço: *%s*\n👤 Profissional: *%s*\n📍 Local: *%s*\n\nCaso precise desmarcar ou reagendar, entre em contato por aqui. Até lá!",
		b.ClientName, dateStr, svc.Name, prof.Name, tenant.Name,
	)
}

// CancellationMessage is the pt-BR cancellation text sent to the client.
func CancellationMessage(b *db.Booking, svc *db.Service, tenant *db.Tenant) string {
	return fmt.Sprintf(
		"Olá %s, infelizmente seu agendamento para *%s* na *%s* precisou ser cancelado. Por favor, entre em contato para reagendar.",
		b.ClientName, svc.Name, tenant.Name,
	)
}

// WhatsAppLink builds a wa.me link with the message prefilled, used by the
// admin UI so the tenant can message the client manually.
func WhatsAppLink(toDigits, message string) string {
	return "https://wa.me/" + toDigits + "?text=" + url.QueryEscape(message)
}

// FormatDatePtBR renders "05 de março às 14:30".
func FormatDatePtBR(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%02d de %s às %s", local.Day(), monthsPtBR[local.Month()-1], local.Format("15:04"))
}

func tenantLocation(tenant *db.Tenant) *time.Location {
	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

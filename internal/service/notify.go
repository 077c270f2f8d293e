package service

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SendWhatsApp delivers a message through the Twilio WhatsApp channel.
// toDigits is a normalized number without the leading '+'.
func SendWhatsApp(toDigits string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_WHATSAPP_FROM")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("AVISO: credenciais do Twilio (SID, Token ou From) não configuradas. A mensagem não será enviada.")
		return fmt.Errorf("twilio credentials not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + toDigits)
	params.SetFrom("whatsapp:" + fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Erro ao enviar WhatsApp para %s via Twilio: %v", toDigits, err)
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("WhatsApp enviado para %s. SID da mensagem: %s", toDigits, *resp.Sid)
	}
	return nil
}

// SendEmailWithSendGrid sends the tenant-facing notification email.
func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("AVISO: SENDGRID_API_KEY não configurada. O e-mail não será enviado.")
		return fmt.Errorf("SENDGRID_API_KEY not configured")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("AVISO: SENDGRID_FROM_EMAIL não configurada. O e-mail não será enviado.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL not configured")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "AgendaJá"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Erro ao enviar e-mail via SendGrid para %s: %v", toEmailAddress, err)
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("E-mail enviado para %s (assunto: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Erro ao enviar e-mail para %s via SendGrid. Status: %d, corpo: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
}

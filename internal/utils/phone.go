package utils

import (
	"fmt"
	"strings"
)

// NormalizeWhatsApp strips formatting from a WhatsApp contact handle and
// returns digits only, the format wa.me and the Twilio WhatsApp channel expect.
// Numbers without a country code (10-11 digits, Brazilian local format) get 55
// prepended.
func NormalizeWhatsApp(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", fmt.Errorf("invalid whatsapp number %q", raw)
	}
	if len(digits) <= 11 {
		digits = "55" + digits
	}
	return digits, nil
}

// E164 formats a normalized WhatsApp number for the Twilio API.
func E164(digits string) string {
	return "+" + digits
}

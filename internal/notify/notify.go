package notify

import (
	"context"
	"log"
	"strings"
)

// Notifier delivers a short text message to a phone number.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// Console logs messages instead of sending them; used when no provider is
// configured.
type Console struct{}

func (Console) Send(_ context.Context, phone, message string) error {
	log.Printf("[notify placeholder] to=%s message=%q", phone, message)
	return nil
}

// WhatsAppAddress normalizes a local phone number into a Twilio WhatsApp
// address. Numbers without a country code are assumed Sri Lankan (+94).
func WhatsAppAddress(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	p := digits.String()
	if strings.HasPrefix(p, "94") {
		return "whatsapp:+" + p
	}
	return "whatsapp:+94" + strings.TrimPrefix(p, "0")
}

package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nallenclassics/barber-booking/internal/config"
)

type TwilioWhatsApp struct {
	AccountSID string
	AuthToken  string
	From       string
	Client     *http.Client
}

func NewTwilioWhatsApp(sid, token, from string) *TwilioWhatsApp {
	return &TwilioWhatsApp{
		AccountSID: sid,
		AuthToken:  token,
		From:       from,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFromConfig picks the Twilio sender when credentials are present and the
// console placeholder otherwise.
func NewFromConfig(cfg *config.Config) Notifier {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return Console{}
	}
	return NewTwilioWhatsApp(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
}

func (t *TwilioWhatsApp) Send(ctx context.Context, phone, message string) error {
	endpoint := "https://api.twilio.com/2010-04-01/Accounts/" + t.AccountSID + "/Messages.json"

	form := url.Values{}
	form.Set("To", WhatsAppAddress(phone))
	form.Set("From", t.From)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.AccountSID, t.AuthToken)

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio responded %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

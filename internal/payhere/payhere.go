// Package payhere builds the redirect parameters for the PayHere checkout
// and verifies the md5sig on inbound server-to-server notifications.
package payhere

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const (
	sandboxCheckoutURL = "https://sandbox.payhere.lk/pay/"
	liveCheckoutURL    = "https://www.payhere.lk/pay/"

	// payment_status values reported on the notify callback.
	StatusSuccess    = "2"
	StatusPending    = "0"
	StatusCancelled  = "-1"
	StatusFailed     = "-2"
	StatusChargeback = "-3"
)

type Gateway struct {
	MerchantID     string
	MerchantSecret string
	Sandbox        bool
	BaseURL        string
}

// Enabled reports whether merchant credentials are configured. Without them
// the booking flow confirms synchronously instead of redirecting.
func (g *Gateway) Enabled() bool {
	return g.MerchantID != "" && g.MerchantSecret != ""
}

func (g *Gateway) CheckoutURL() string {
	if g.Sandbox {
		return sandboxCheckoutURL
	}
	return liveCheckoutURL
}

// CheckoutParams returns the form fields the customer's browser posts to the
// PayHere checkout, including the integrity hash over
// (merchant id, order id, amount, currency, merchant secret).
func (g *Gateway) CheckoutParams(orderID string, amount float64, currency, customerName, customerPhone string) map[string]string {
	amountStr := fmt.Sprintf("%.2f", amount)

	first := customerName
	last := "."
	if i := strings.IndexByte(customerName, ' '); i > 0 {
		first = customerName[:i]
		last = strings.TrimSpace(customerName[i+1:])
		if last == "" {
			last = "."
		}
	}

	return map[string]string{
		"merchant_id": g.MerchantID,
		"return_url":  g.BaseURL + "/api/payhere/return?order_id=" + url.QueryEscape(orderID),
		"cancel_url":  g.BaseURL + "/api/payhere/cancel?order_id=" + url.QueryEscape(orderID),
		"notify_url":  g.BaseURL + "/api/payhere/notify",
		"order_id":    orderID,
		"items":       "Barber Appointment Booking",
		"amount":      amountStr,
		"currency":    currency,
		"first_name":  first,
		"last_name":   last,
		"email":       "booking-" + orderID + "@barber.local",
		"phone":       customerPhone,
		"address":     "N. Allen Classics",
		"city":        "Colombo",
		"hash":        g.CheckoutHash(orderID, amountStr, currency),
	}
}

// CheckoutHash is the outbound integrity hash:
// UPPER(MD5(merchant_id + order_id + amount + currency + UPPER(MD5(secret)))).
func (g *Gateway) CheckoutHash(orderID, amount, currency string) string {
	return upperMD5(g.MerchantID + orderID + amount + currency + upperMD5(g.MerchantSecret))
}

// VerifyNotification checks the md5sig field of a notify callback:
// UPPER(MD5(merchant_id + order_id + amount + currency + status_code +
// UPPER(MD5(secret)))). A notification that fails this check must be treated
// as a failure indicator, never as a trusted success.
func (g *Gateway) VerifyNotification(merchantID, orderID, amount, currency, statusCode, md5sig string) bool {
	if merchantID != g.MerchantID {
		return false
	}
	expected := upperMD5(merchantID + orderID + amount + currency + statusCode + upperMD5(g.MerchantSecret))
	return expected == strings.ToUpper(md5sig)
}

func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

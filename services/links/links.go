package links

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Contact and navigation link builders for the trip views. These render
// the exact URLs the dashboard opens, so they live server-side where
// every client gets the same behavior.

// Call returns a tel: link for the given phone number.
func Call(phone string) string {
	return "tel:" + phone
}

// WhatsApp returns a wa.me link carrying the POD request message for the
// trip. The phone is reduced to digits as wa.me requires.
func WhatsApp(phone, tripID string) string {
	base := os.Getenv("FO_LINK_BASE_URL")
	if base == "" {
		base = os.Getenv("FRONTEND_URL")
	}

	message := fmt.Sprintf("Hi, Please provide POD for Trip %s. Link: %s/fo/%s", tripID, base, tripID)
	return fmt.Sprintf("https://wa.me/%s?text=%s", Digits(phone), url.QueryEscape(message))
}

// Maps returns a Google Maps search link for an address.
func Maps(address string) string {
	return "https://maps.google.com/maps?q=" + url.QueryEscape(address)
}

// Digits strips everything but digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

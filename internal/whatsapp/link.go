package whatsapp

import (
	"net/url"
	"strings"
)

const (
	CountryCode = "54"
	linkBase    = "https://wa.me/"
)

// NormalizePhone keeps the digits and prefixes the country code when missing.
// The check is a literal prefix match on the digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, CountryCode) {
		return digits
	}
	return CountryCode + digits
}

// Link builds the wa.me deep link that opens a chat with text prefilled.
func Link(phone, text string) string {
	return linkBase + NormalizePhone(phone) + "?text=" + encodeComponent(text)
}

// encodeComponent matches encodeURIComponent: spaces become %20 and
// the marks !'()* stay literal.
func encodeComponent(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	for _, r := range []struct{ from, to string }{
		{"%21", "!"}, {"%27", "'"}, {"%28", "("}, {"%29", ")"}, {"%2A", "*"},
	} {
		e = strings.ReplaceAll(e, r.from, r.to)
	}
	return e
}

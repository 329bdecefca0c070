// Package money formats peso amounts and dates the way Argentine customers read them.
package money

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

const DateLayout = "02/01/2006"

// Format renders an amount as "$ 1.234.567,50".
func Format(amount float64) string {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return "$ " + printer.Sprintf("%.2f", rounded)
}

// FormatDate renders day/month/year; a nil date renders empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

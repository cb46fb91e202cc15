// Package export renders contracts as spreadsheets and PDF statements.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats an amount as Brazilian Real, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	return printer.Sprint(currency.Symbol(currency.BRL.Amount(d.Round(2).InexactFloat64())))
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

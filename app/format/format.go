// Package format renders calculator numbers and feed dates for display.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DateLayout = "January 2, 2006"

type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale such as "en-US".
// Unknown locales fall back to American English.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Currency formats whole-currency amounts with grouping and two decimals.
func (f *Formatter) Currency(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "n/a"
	}
	amount := f.printer.Sprint(number.Decimal(math.Abs(v), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if v < 0 {
		return "-" + f.symbol + amount
	}
	return f.symbol + amount
}

// Percent formats a value that is already expressed in percent (7 means 7%).
func (f *Formatter) Percent(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "n/a"
	}
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + "%"
}

// Ratio formats plain multiples such as DSCR or gross rent multiplier.
func (f *Formatter) Ratio(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) || math.IsNaN(v) {
		return "n/a"
	}
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + "x"
}

// Date returns "" for a nil time so unparseable feed dates render as blank.
func (f *Formatter) Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

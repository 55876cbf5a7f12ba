// Package money formats commerce backend amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money is an amount in major units together with its currency.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// FromMinor converts an amount in minor units (cents) into Money. The commerce
// backend always stores amounts multiplied by 100, so the division is fixed at
// 100 regardless of the currency's own precision.
func FromMinor(code string, minor int64) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: decimal.New(minor, -2), Currency: unit}, nil
}

// String renders m the way an en-US shopper expects: symbol, grouping and the
// currency's standard number of fraction digits, with a leading minus sign.
func (m Money) String() string {
	p := message.NewPrinter(language.AmericanEnglish)
	scale, _ := currency.Standard.Rounding(m.Currency)
	return render(p, p.Sprint(currency.Symbol(m.Currency)), m.Amount, scale)
}

// FormatAmount formats an amount given in minor units:
//
//	FormatAmount("USD", 0)      == "$0.00"
//	FormatAmount("USD", -250)   == "-$2.50"
//	FormatAmount("USD", 123456) == "$1,234.56"
//
// Unknown currency codes fall back to the upper-cased code as the symbol and
// two fraction digits.
func FormatAmount(code string, minor int64) string {
	m, err := FromMinor(strings.ToUpper(strings.TrimSpace(code)), minor)
	if err != nil {
		p := message.NewPrinter(language.AmericanEnglish)
		return render(p, strings.ToUpper(strings.TrimSpace(code))+" ", decimal.New(minor, -2), 2)
	}
	return m.String()
}

func render(p *message.Printer, symbol string, amount decimal.Decimal, scale int) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	rounded := amount.Round(int32(scale)).InexactFloat64()
	return sign + symbol + p.Sprint(number.Decimal(rounded, number.Scale(scale)))
}

// Package money renders minor-unit amounts for display.
//
// Every amount the dashboard surfaces goes through one Formatter so list
// views, cards and customer totals always agree on the format.
package money

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default values used when config leaves them empty.
const (
	DefaultLocale = "en-US"
	DefaultSymbol = "$"
)

// Formatter formats integer minor units as "<symbol><major><mark><minor>".
//
// The major part is digit-grouped and the decimal mark chosen for the
// configured locale (1,234.56 for en-US, 1.234,56 for de-DE). The
// fraction always has two digits.
type Formatter struct {
	printer *message.Printer
	symbol  string
	decimal string
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale, symbol string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	p := message.NewPrinter(tag)
	if !asciiDigits(p.Sprintf("%d", 1234567890)) {
		return nil, fmt.Errorf("locale %q: only locales with ASCII digits are supported", locale)
	}

	mark := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 1.5), "1"), "5")
	if mark == "" || strings.ContainsAny(mark, "0123456789") {
		return nil, fmt.Errorf("locale %q: no usable decimal mark", locale)
	}
	if mark == strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%d", 1000), "1"), "000") {
		return nil, fmt.Errorf("locale %q: decimal mark equals group separator", locale)
	}

	return &Formatter{
		printer: p,
		symbol:  symbol,
		decimal: mark,
	}, nil
}

// asciiDigits reports whether every digit in s is 0-9.
func asciiDigits(s string) bool {
	for _, r := range s {
		if r >= utf8.RuneSelf && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// MustFormatter is NewFormatter for static inputs; it panics on a bad locale.
func MustFormatter(locale, symbol string) *Formatter {
	f, err := NewFormatter(locale, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders amount (minor units) as a currency string.
//
//	500    -> "$5.00"
//	123456 -> "$1,234.56" (en-US), "$1.234,56" (de-DE)
func (f *Formatter) Format(amount int64) string {
	sign := ""
	// uint64 keeps math.MinInt64 from overflowing on negation.
	abs := uint64(amount)
	if amount < 0 {
		sign = "-"
		abs = uint64(-(amount + 1)) + 1
	}

	major := abs / 100
	minor := abs % 100

	return sign + f.symbol + f.printer.Sprintf("%d", major) + f.decimal + fmt.Sprintf("%02d", minor)
}

// Symbol returns the currency symbol prefixed to every amount.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Parse reverses Format, returning minor units.
//
// Group separators and the symbol are ignored and the locale's decimal
// mark splits major from minor; the fraction is read as an exact decimal
// so no float rounding creeps in.
func (f *Formatter) Parse(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, f.symbol)

	var b strings.Builder
	for i := 0; i < len(raw); {
		if strings.HasPrefix(raw[i:], f.decimal) {
			b.WriteByte('.')
			i += len(f.decimal)
			continue
		}
		r, size := utf8.DecodeRuneInString(raw[i:])
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		i += size
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	minor := d.Shift(2)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("parse amount %q: more than two fraction digits", s)
	}

	v := minor.IntPart()
	if negative {
		v = -v
	}
	return v, nil
}

// ToMajor converts minor units to major units exactly (cents to dollars).
func ToMajor(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

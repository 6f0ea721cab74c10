package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	f := MustFormatter(DefaultLocale, DefaultSymbol)

	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{500, "$5.00"},
		{15795, "$157.95"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-2550, "-$25.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.amount))
		})
	}
}

func TestFormatExtremes(t *testing.T) {
	f := MustFormatter(DefaultLocale, DefaultSymbol)

	assert.Equal(t, "$92,233,720,368,547,758.07", f.Format(math.MaxInt64))
	assert.Equal(t, "-$92,233,720,368,547,758.08", f.Format(math.MinInt64))
}

func TestParseRoundTrip(t *testing.T) {
	f := MustFormatter(DefaultLocale, DefaultSymbol)

	for _, amount := range []int64{0, 1, 99, 100, 666, 54246, 123456789, -2550} {
		got, err := f.Parse(f.Format(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, got)
	}
}

func TestFormatGermanDecimalMark(t *testing.T) {
	f := MustFormatter("de-DE", "$")

	assert.Equal(t, "$1.234.567,89", f.Format(123456789))
	assert.Equal(t, "$0,05", f.Format(5))
	assert.Equal(t, "-$25,50", f.Format(-2550))

	for _, amount := range []int64{0, 5, 99, 100, 123456, 123456789, -2550, math.MaxInt64} {
		got, err := f.Parse(f.Format(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, got)
	}
}

func TestParseRoundTripAcrossLocales(t *testing.T) {
	for _, locale := range []string{"en-US", "en-GB", "de-DE", "fr-FR", "es-ES", "pt-BR"} {
		t.Run(locale, func(t *testing.T) {
			f := MustFormatter(locale, "$")
			for _, amount := range []int64{1, 123456, 100000000} {
				got, err := f.Parse(f.Format(amount))
				require.NoError(t, err)
				assert.Equal(t, amount, got)
			}
		})
	}
}

func TestNewFormatterRejectsNonASCIIDigits(t *testing.T) {
	_, err := NewFormatter("bn", "$")
	assert.Error(t, err)
}

func TestParseRejectsSubCent(t *testing.T) {
	f := MustFormatter(DefaultLocale, DefaultSymbol)

	_, err := f.Parse("$1.005")
	assert.Error(t, err)

	_, err = f.Parse("$")
	assert.Error(t, err)
}

func TestNewFormatterDefaults(t *testing.T) {
	f, err := NewFormatter("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSymbol, f.Symbol())
	assert.Equal(t, "$10.00", f.Format(1000))
}

func TestNewFormatterBadLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!", "$")
	assert.Error(t, err)
}

func TestToMajor(t *testing.T) {
	assert.Equal(t, "157.95", ToMajor(15795).String())
	assert.Equal(t, "5", ToMajor(500).String())
	assert.Equal(t, "6.66", ToMajor(666).String())
}

package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		minor int64
		want  string
	}{
		{name: "zero", code: "USD", minor: 0, want: "$0.00"},
		{name: "negative", code: "USD", minor: -250, want: "-$2.50"},
		{name: "cents only", code: "USD", minor: 5, want: "$0.05"},
		{name: "grouping", code: "USD", minor: 123456, want: "$1,234.56"},
		{name: "lower case code", code: "usd", minor: 1999, want: "$19.99"},
		{name: "unknown code", code: "XYZ1", minor: 1050, want: "XYZ1 10.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.code, tt.minor))
		})
	}
}

func TestFromMinor_AlwaysDividesByHundred(t *testing.T) {
	m, err := FromMinor("USD", 2500)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(m.Amount))

	m, err = FromMinor("JPY", 2500)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(m.Amount))
}

func TestFromMinor_InvalidCurrency(t *testing.T) {
	_, err := FromMinor("not-a-currency", 100)
	assert.Error(t, err)
}

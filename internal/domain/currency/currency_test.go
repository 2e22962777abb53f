package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Run("SupportedCodes", func(t *testing.T) {
		assert.Equal(t, "د.ع", Label(IQD))
		assert.Equal(t, "دينار عراقي", Name(IQD))
		assert.Equal(t, "دولار", Label(USD))
		assert.Equal(t, "دولار أمريكي", Name(USD))
	})

	t.Run("UnknownFallsBackToIQD", func(t *testing.T) {
		assert.Equal(t, Label(IQD), Label("SAR"))
		assert.Equal(t, Name(IQD), Name(""))
	})

	t.Run("LowerCaseIsNormalized", func(t *testing.T) {
		assert.Equal(t, Label(USD), Label("usd"))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		code   Code
		want   string
	}{
		{"Integer", decimal.NewFromInt(1500), IQD, "1500.00 د.ع"},
		{"RoundsHalfUp", decimal.RequireFromString("12.345"), USD, "12.35 دولار"},
		{"MissingCode", decimal.NewFromInt(3), "", "3.00 د.ع"},
		{"LegacyCode", decimal.NewFromInt(3), "SAR", "3.00 د.ع"},
		{"Negative", decimal.RequireFromString("-20.5"), USD, "-20.50 دولار"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestNormalizeAndSupport(t *testing.T) {
	assert.Equal(t, IQD, Normalize(""))
	assert.Equal(t, USD, Normalize(" usd "))
	assert.Equal(t, Code("SAR"), Normalize("sar"))

	assert.True(t, IsSupported(IQD))
	assert.True(t, IsSupported(USD))
	assert.False(t, IsSupported("SAR"))
	assert.False(t, IsSupported(""))

	assert.Equal(t, []Code{IQD, USD}, Supported())
	all := All()
	assert.Len(t, all, 2)
	assert.Equal(t, IQD, all[0].Code)
}

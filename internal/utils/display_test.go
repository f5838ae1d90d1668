package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStringOr(t *testing.T) {
	assert.Equal(t, "value", StringOr("value", "fallback"))
	assert.Equal(t, "fallback", StringOr("", "fallback"))
}

func TestDash(t *testing.T) {
	assert.Equal(t, "SA4420000001234567891234", Dash("SA4420000001234567891234"))
	assert.Equal(t, "-", Dash(""))
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "1500.50", AmountString(decimal.NewFromFloat(1500.5)))
	assert.Equal(t, "0.00", AmountString(decimal.Zero))
}

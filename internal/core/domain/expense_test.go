package domain_test

import (
	"testing"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		name     string
		original string
		rate     string
		want     string
	}{
		{"identity rate", "123.45", "1", "123.45"},
		{"identity rate keeps large amounts", "99999.99", "1", "99999.99"},
		{"usd to crc", "100.00", "520.25", "52025.00"},
		{"fractional rate", "10", "0.85", "8.50"},
		{"rounds to two places", "33.333", "1", "33.33"},
		// Half-up policy: a tie rounds away from zero.
		{"half rounds up", "10.005", "1", "10.01"},
		{"half rounds up through rate", "1.25", "8.02", "10.03"}, // 10.025 -> 10.03
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ConvertAmount(dec(tt.original), dec(tt.rate))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestConvertAmount_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style inputs must come out exact on decimals.
	got := domain.ConvertAmount(dec("0.1"), dec("3"))
	assert.Equal(t, "0.3", got.String())
}

func TestEffectiveExchangeRate(t *testing.T) {
	one := decimal.NewFromInt(1)

	// Same currency: the submitted rate is ignored.
	got := domain.EffectiveExchangeRate("USD", "USD", dec("520.25"))
	assert.True(t, got.Equal(one))

	// Different currencies: the submitted rate applies.
	got = domain.EffectiveExchangeRate("USD", "CRC", dec("520.25"))
	assert.True(t, got.Equal(dec("520.25")))
}

func TestAltProjection(t *testing.T) {
	converted := domain.ConvertAmount(dec("100.00"), dec("520.25")) // 52025.00 CRC
	alt := domain.AltProjection(converted, dec("0.0019"))           // back toward USD-ish
	assert.True(t, alt.Equal(dec("98.85")), "alt = %s", alt)
}

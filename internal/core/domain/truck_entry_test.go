package domain_test

import (
	"testing"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivedTotal(t *testing.T) {
	tests := []struct {
		name  string
		units string
		rate  string
		want  string
	}{
		{
			name:  "whole units and rate",
			units: "10",
			rate:  "22000",
			want:  "220000",
		},
		{
			name:  "fractional units round to two places",
			units: "2.333",
			rate:  "150",
			want:  "349.95",
		},
		{
			name:  "rounding half up",
			units: "1.005",
			rate:  "100",
			want:  "100.5",
		},
		{
			name:  "zero units",
			units: "0",
			rate:  "18000",
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := decimal.RequireFromString(tt.units)
			rate := decimal.RequireFromString(tt.rate)
			want := decimal.RequireFromString(tt.want)
			got := domain.DerivedTotal(units, rate)
			assert.True(t, want.Equal(got), "DerivedTotal(%s, %s) = %s, want %s", tt.units, tt.rate, got, tt.want)
		})
	}
}

func TestTruckEntry_RecomputeTotalIsIdempotent(t *testing.T) {
	entry := domain.TruckEntry{
		Units:       decimal.RequireFromString("8"),
		RatePerUnit: decimal.RequireFromString("18000"),
	}

	entry.RecomputeTotal()
	first := entry.TotalAmount
	entry.RecomputeTotal()

	assert.True(t, first.Equal(entry.TotalAmount))
	assert.True(t, entry.TotalAmount.Equal(decimal.RequireFromString("144000")))
}

func TestTruckEntry_EffectiveTotal(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.TruckEntry
		want  string
	}{
		{
			name: "stored total wins when present",
			entry: domain.TruckEntry{
				Units:       decimal.RequireFromString("10"),
				RatePerUnit: decimal.RequireFromString("22000"),
				TotalAmount: decimal.RequireFromString("219999"),
			},
			want: "219999",
		},
		{
			name: "zeroed total repaired from the factors",
			entry: domain.TruckEntry{
				Units:       decimal.RequireFromString("10"),
				RatePerUnit: decimal.RequireFromString("22000"),
				TotalAmount: decimal.Zero,
			},
			want: "220000",
		},
		{
			name:  "genuinely zero entry stays zero",
			entry: domain.TruckEntry{},
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			got := tt.entry.EffectiveTotal()
			assert.True(t, want.Equal(got), "EffectiveTotal() = %s, want %s", got, tt.want)
		})
	}
}

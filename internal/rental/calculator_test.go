package rental

import (
	"testing"

	"github.com/carrental/carrental/internal/customer"
)

func TestCalculateRent(t *testing.T) {
	tests := []struct {
		name      string
		dailyRate float64
		days      int
		tier      customer.Tier
		want      float64
	}{
		{"vip discount", 200, 3, customer.TierVIP, 570},
		{"enterprise discount", 500, 1, customer.TierEnterprise, 450},
		{"regular no discount", 300, 2, customer.TierRegular, 600},
		{"unknown tier falls back to regular", 100, 5, customer.Tier("unknown-tier"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateRent(tt.dailyRate, tt.days, tt.tier)
			if got != tt.want {
				t.Fatalf("CalculateRent(%v, %d, %s) = %v, want %v",
					tt.dailyRate, tt.days, tt.tier, got, tt.want)
			}
		})
	}
}

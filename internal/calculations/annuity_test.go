package calculations

import (
	"math"
	"testing"

	"github.com/ponchik009/credit-calc/internal/dates"
)

func TestAnnuityPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		months      int
		want        float64
	}{
		{
			name:        "basic annuity",
			principal:   1000000,
			monthlyRate: 0.01,
			months:      12,
			want:        1000000 * 0.01 / (1 - math.Pow(1.01, -12)),
		},
		{
			name:        "zero rate",
			principal:   100000,
			monthlyRate: 0,
			months:      10,
			want:        10000,
		},
		{
			name:        "no months left",
			principal:   500,
			monthlyRate: 0.01,
			months:      0,
			want:        500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnuityPayment(tt.principal, tt.monthlyRate, tt.months)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AnnuityPayment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeriodRate(t *testing.T) {
	tests := []struct {
		name   string
		period dates.Period
		leap   bool
		want   float64
	}{
		{name: "day", period: dates.PerDay, want: 36.5 / 365},
		{name: "leap day", period: dates.PerDay, leap: true, want: 36.5 / 366},
		{name: "month", period: dates.PerMonth, want: 36.5 / 12},
		{name: "year", period: dates.PerYear, want: 36.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodRate(36.5, tt.period, tt.leap); got != tt.want {
				t.Errorf("PeriodRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

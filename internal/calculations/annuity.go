package calculations

import (
	"math"

	"github.com/ponchik009/credit-calc/internal/dates"
)

// AnnuityPayment рассчитывает аннуитетный платеж без округления.
// monthlyRate задается в долях; при нулевой ставке долг делится поровну.
func AnnuityPayment(principal, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return principal
	}
	if monthlyRate == 0.0 {
		return principal / float64(months)
	}
	return principal * monthlyRate / (1.0 - math.Pow(1.0+monthlyRate, float64(-months)))
}

// PeriodRate переводит годовую ставку в процентах в ставку за период (тоже в процентах).
// Для подневной ставки год считается из 366 дней, если leapYear.
func PeriodRate(annualRatePercent float64, period dates.Period, leapYear bool) float64 {
	switch period {
	case dates.PerDay:
		if leapYear {
			return annualRatePercent / 366
		}
		return annualRatePercent / 365
	case dates.PerMonth:
		return annualRatePercent / 12
	default:
		return annualRatePercent
	}
}

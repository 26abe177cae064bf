package validators

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/config"
	"github.com/ponchik009/credit-calc/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число положительное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 0.01, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckTermMonths проверяет срок в месяцах
func CheckTermMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("term_months", months, 1, cfg.TermMonthsLimit())
}

// CheckStartDate проверяет дату начала кредита
func CheckStartDate(date civil.Date) error {
	if date.IsZero() || !date.IsValid() {
		return fmt.Errorf("start_date: дата не задана или некорректна")
	}
	return nil
}

// CheckEarlyPayment проверяет досрочный платеж относительно даты начала кредита
func CheckEarlyPayment(cfg *config.Config, start civil.Date, p calculations.EarlyPayment) error {
	if err := ValidatePositiveNumber("early_payment.amount", p.Amount, 0.01, cfg.MaxPrincipal); err != nil {
		return err
	}
	if !p.Date.IsValid() {
		return fmt.Errorf("early_payment.date: некорректная дата")
	}
	if !p.Date.After(start) {
		return fmt.Errorf("early_payment.date: %s должна быть позже даты начала кредита %s", p.Date, start)
	}
	return nil
}

// CheckCreditOptions проверяет все параметры расчета
func CheckCreditOptions(cfg *config.Config, options calculations.CreditOptions) error {
	if err := CheckPrincipal(cfg, options.Principal); err != nil {
		return err
	}
	if err := CheckRate(cfg, options.AnnualRatePercent); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("term_years", options.TermYears, 1.0/12.0, float64(cfg.TermMonthsLimit())/12.0); err != nil {
		return err
	}
	if err := CheckStartDate(options.StartDate); err != nil {
		return err
	}
	if err := ValidateIntRange("early_payments", len(options.EarlyPayments), 0, cfg.MaxEarlyPayments); err != nil {
		return err
	}
	for _, p := range options.EarlyPayments.Sorted() {
		if err := CheckEarlyPayment(cfg, options.StartDate, p); err != nil {
			return err
		}
	}
	return nil
}

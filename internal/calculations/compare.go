package calculations

import (
	"github.com/ponchik009/credit-calc/pkg/utils"
)

// CompareEarlyPayments сравнивает график с досрочными платежами и график без них
func CompareEarlyPayments(options CreditOptions) (*EarlyPaymentComparison, error) {
	withEarly, err := CreditSchedule(options)
	if err != nil {
		return nil, err
	}

	baselineOptions := options
	baselineOptions.EarlyPayments = nil
	baseline, err := CreditSchedule(baselineOptions)
	if err != nil {
		return nil, err
	}

	baselineEnd := baseline.EndDate()
	end := withEarly.EndDate()
	interestSaved := utils.Round2(baseline.TotalInterest - withEarly.TotalInterest)

	var recommendation string
	switch {
	case len(options.EarlyPayments) == 0:
		recommendation = "Досрочные платежи не заданы."
	case interestSaved <= 0:
		recommendation = "Досрочные платежи не уменьшают переплату по процентам."
	case withEarly.CountPayments(PaymentEarlyDuration) >= withEarly.CountPayments(PaymentEarlyPayment):
		recommendation = "Досрочные платежи сокращают срок кредита: платеж прежний, переплата меньше."
	default:
		recommendation = "Досрочные платежи уменьшают ежемесячный платеж при сохранении срока."
	}

	return &EarlyPaymentComparison{
		Baseline:          baseline,
		WithEarlyPayments: withEarly,
		BaselineEndDate:   baselineEnd,
		EndDate:           end,
		InterestSaved:     interestSaved,
		TotalSaved:        utils.Round2(baseline.TotalPaid - withEarly.TotalPaid),
		DaysSaved:         baselineEnd.DaysSince(end),
		Recommendation:    recommendation,
	}, nil
}

package calculations

import (
	"errors"
	"fmt"
	"math"

	"github.com/ponchik009/credit-calc/internal/dates"
	"github.com/ponchik009/credit-calc/pkg/utils"
)

// ErrInvalidInput параметры кредита не позволяют построить график
var ErrInvalidInput = errors.New("invalid credit options")

// Validate проверяет предусловия расчета
func (o CreditOptions) Validate() error {
	if !utils.IsFinite(o.Principal) || o.Principal <= 0 {
		return fmt.Errorf("%w: сумма кредита должна быть больше 0", ErrInvalidInput)
	}
	if !utils.IsFinite(o.TermYears) || o.TermYears <= 0 {
		return fmt.Errorf("%w: срок кредита должен быть больше 0", ErrInvalidInput)
	}
	if !utils.IsFinite(o.AnnualRatePercent) || o.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: ставка не может быть отрицательной", ErrInvalidInput)
	}
	if o.StartDate.IsZero() || !o.StartDate.IsValid() {
		return fmt.Errorf("%w: не задана дата начала кредита", ErrInvalidInput)
	}
	for date, p := range o.EarlyPayments {
		if date != p.Date {
			return fmt.Errorf("%w: досрочный платеж %s записан под датой %s", ErrInvalidInput, p.Date, date)
		}
		if !utils.IsFinite(p.Amount) || p.Amount <= 0 {
			return fmt.Errorf("%w: сумма досрочного платежа на %s должна быть больше 0", ErrInvalidInput, p.Date)
		}
	}
	return nil
}

// CreditSchedule рассчитывает подневный график аннуитетного кредита
// с досрочными погашениями.
//
// Проценты начисляются каждый день на остаток (act/365, в високосный год act/366)
// и копятся до дня платежа. В день платежа сначала проводится ежемесячный
// платеж, затем досрочный. Функция не хранит состояния между вызовами.
func CreditSchedule(options CreditOptions) (*CreditSummary, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	start := options.StartDate
	end := dates.AddTerm(start, options.TermYears)
	days := dates.Duration(start, end, dates.PerDay)
	months := dates.Duration(start, end, dates.PerMonth)
	if months <= 0 || days <= 0 {
		return nil, fmt.Errorf("%w: срок кредита меньше одного месяца", ErrInvalidInput)
	}

	monthRate := PeriodRate(options.AnnualRatePercent, dates.PerMonth, false) / 100
	basePayment := utils.Round2(AnnuityPayment(options.Principal, monthRate, months))

	res := &CreditSummary{
		Schedule:     make([]PaymentScheduleEntry, 0, days),
		BasePayments: []BasePaymentRecord{{Date: start, Amount: basePayment}},
	}

	paymentDay := start.Day
	balance := utils.Round2(options.Principal)
	accrued := 0.0
	totalInterest := 0.0
	basePaid := 0

	for i := 0; i < days; i++ {
		if balance <= 0 {
			break
		}

		date := dates.AddDays(start, i+1)
		dayRate := PeriodRate(options.AnnualRatePercent, dates.PerDay, dates.IsLeapYear(date)) / 100
		accrued = utils.Round2(accrued + utils.Round2(balance*dayRate))

		day := PaymentScheduleEntry{Date: date}

		// 31-е число пропускается в коротких месяцах, но дата окончания
		// всегда закрывает кредит
		if date.Day == paymentDay || date == end {
			if date == end || basePayment >= balance {
				// проценты последнего платежа в TotalInterest не входят
				final := PaymentScheduleEntry{
					Date:             date,
					PrincipalPortion: balance,
					InterestPortion:  accrued,
					PaymentType:      PaymentBase,
				}
				res.Payments = append(res.Payments, final)
				res.Schedule = append(res.Schedule, final)
				break
			}

			// платеж меньше начисленных процентов гасит только проценты,
			// остаток процентов переносится на следующий период
			interest := math.Min(accrued, basePayment)
			principal := utils.Round2(basePayment - interest)
			totalInterest += interest
			accrued = utils.Round2(accrued - interest)
			balance = utils.Round2(balance - principal)
			basePaid++

			res.Payments = append(res.Payments, PaymentScheduleEntry{
				Date:             date,
				RemainingBalance: balance,
				PrincipalPortion: principal,
				InterestPortion:  interest,
				AccruedInterest:  accrued,
				PaymentType:      PaymentBase,
			})
			day.PrincipalPortion += principal
			day.InterestPortion += interest
			day.PaymentType = PaymentBase
		}

		if early, ok := options.EarlyPayments.Get(date); ok {
			amount := utils.Round2(early.Amount)

			var principal, interest float64
			switch {
			case accrued == 0:
				principal = amount
			case amount >= accrued:
				interest = accrued
				principal = utils.Round2(amount - accrued)
			default:
				interest = amount
			}
			// переплата сверх остатка не проводится
			principal = math.Min(principal, balance)

			totalInterest += interest
			accrued = utils.Round2(accrued - interest)
			balance = utils.Round2(balance - principal)

			paymentType := early.Strategy.PaymentType()
			res.Payments = append(res.Payments, PaymentScheduleEntry{
				Date:             date,
				RemainingBalance: balance,
				PrincipalPortion: principal,
				InterestPortion:  interest,
				AccruedInterest:  accrued,
				PaymentType:      paymentType,
			})
			day.PrincipalPortion += principal
			day.InterestPortion += interest
			day.PaymentType = paymentType

			if early.Strategy == PaymentReduction && balance > 0 {
				if left := months - basePaid; left > 0 {
					recalculated := utils.Round2(AnnuityPayment(balance, monthRate, left))
					basePayment = math.Min(basePayment, recalculated)
					if basePayment != res.BasePayments[len(res.BasePayments)-1].Amount {
						res.BasePayments = append(res.BasePayments, BasePaymentRecord{
							Date:   date,
							Amount: basePayment,
						})
					}
				}
			}
		}

		day.PrincipalPortion = utils.Round2(day.PrincipalPortion)
		day.InterestPortion = utils.Round2(day.InterestPortion)
		day.RemainingBalance = balance
		day.AccruedInterest = accrued
		res.Schedule = append(res.Schedule, day)
	}

	res.TotalInterest = utils.Round2(totalInterest)
	res.TotalPaid = utils.Round2(options.Principal + res.TotalInterest)

	return res, nil
}

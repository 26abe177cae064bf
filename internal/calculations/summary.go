package calculations

import (
	"sort"

	"cloud.google.com/go/civil"
)

// MonthlyPayment первоначальный ежемесячный платеж
func (s *CreditSummary) MonthlyPayment() float64 {
	if s == nil || len(s.BasePayments) == 0 {
		return 0
	}
	return s.BasePayments[0].Amount
}

// EndDate дата последнего платежа
func (s *CreditSummary) EndDate() civil.Date {
	if s == nil || len(s.Payments) == 0 {
		return civil.Date{}
	}
	return s.Payments[len(s.Payments)-1].Date
}

// PaymentsByYear группирует платежи по календарному году
func (s *CreditSummary) PaymentsByYear() map[int][]PaymentScheduleEntry {
	res := make(map[int][]PaymentScheduleEntry)
	if s == nil {
		return res
	}
	for _, p := range s.Payments {
		res[p.Date.Year] = append(res[p.Date.Year], p)
	}
	return res
}

// Years годы, в которых были платежи, по возрастанию
func (s *CreditSummary) Years() []int {
	byYear := s.PaymentsByYear()
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// CountPayments количество платежей заданного типа
func (s *CreditSummary) CountPayments(paymentType PaymentType) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Payments {
		if p.PaymentType == paymentType {
			n++
		}
	}
	return n
}

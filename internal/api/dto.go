package api

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/dates"
)

// OptionsRequest параметры кредита
type OptionsRequest struct {
	Principal         float64 `json:"principal" validate:"required,gt=0"`
	TermYears         float64 `json:"term_years" validate:"gte=0"`
	TermMonths        int     `json:"term_months" validate:"gte=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"gte=0"`
	StartDate         string  `json:"start_date" validate:"required"`
}

// EarlyPaymentRequest досрочный платеж
type EarlyPaymentRequest struct {
	Date     string  `json:"date" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Strategy string  `json:"strategy" validate:"omitempty,oneof=duration_reduction payment_reduction"`
}

// CalculateRequest запрос расчета без сохранения параметров
type CalculateRequest struct {
	OptionsRequest
	EarlyPayments   []EarlyPaymentRequest `json:"early_payments" validate:"dive"`
	IncludeSchedule bool                  `json:"include_schedule"`
}

// SummaryResponse результат расчета
type SummaryResponse struct {
	MonthlyPayment float64                                     `json:"monthly_payment"`
	EndDate        civil.Date                                  `json:"end_date"`
	TotalInterest  float64                                     `json:"total_interest"`
	TotalPaid      float64                                     `json:"total_paid"`
	BasePayments   []calculations.BasePaymentRecord            `json:"base_payments"`
	Years          []int                                       `json:"years"`
	PaymentsByYear map[int][]calculations.PaymentScheduleEntry `json:"payments_by_year"`
	Schedule       []calculations.PaymentScheduleEntry         `json:"schedule,omitempty"`
}

// OptionsResponse сохраненные параметры кредита
type OptionsResponse struct {
	Principal         float64    `json:"principal"`
	TermYears         float64    `json:"term_years"`
	TermMonths        int        `json:"term_months"`
	AnnualRatePercent float64    `json:"annual_rate_percent"`
	StartDate         civil.Date `json:"start_date"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (r OptionsRequest) toOptions() (calculations.CreditOptions, error) {
	var options calculations.CreditOptions

	start, err := dates.Parse(r.StartDate)
	if err != nil {
		return options, err
	}

	termYears := r.TermYears
	if r.TermMonths > 0 {
		termYears = calculations.TermYearsFromMonths(r.TermMonths)
	}
	if termYears <= 0 {
		return options, fmt.Errorf("term_years or term_months must be positive")
	}

	return calculations.CreditOptions{
		Principal:         r.Principal,
		TermYears:         termYears,
		AnnualRatePercent: r.AnnualRatePercent,
		StartDate:         start,
		EarlyPayments:     calculations.EarlyPayments{},
	}, nil
}

func (r EarlyPaymentRequest) toEarlyPayment() (calculations.EarlyPayment, error) {
	var p calculations.EarlyPayment

	date, err := dates.Parse(r.Date)
	if err != nil {
		return p, err
	}
	strategy := calculations.DurationReduction
	if r.Strategy != "" {
		if err := strategy.UnmarshalText([]byte(r.Strategy)); err != nil {
			return p, err
		}
	}
	return calculations.EarlyPayment{Date: date, Amount: r.Amount, Strategy: strategy}, nil
}

func toSummaryResponse(s *calculations.CreditSummary, includeSchedule bool) SummaryResponse {
	resp := SummaryResponse{
		MonthlyPayment: s.MonthlyPayment(),
		EndDate:        s.EndDate(),
		TotalInterest:  s.TotalInterest,
		TotalPaid:      s.TotalPaid,
		BasePayments:   s.BasePayments,
		Years:          s.Years(),
		PaymentsByYear: s.PaymentsByYear(),
	}
	if includeSchedule {
		resp.Schedule = s.Schedule
	}
	return resp
}

func toOptionsResponse(o calculations.CreditOptions) OptionsResponse {
	return OptionsResponse{
		Principal:         o.Principal,
		TermYears:         o.TermYears,
		TermMonths:        int(o.TermYears*12 + 0.5),
		AnnualRatePercent: o.AnnualRatePercent,
		StartDate:         o.StartDate,
	}
}

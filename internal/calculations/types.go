package calculations

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
)

// Strategy стратегия досрочного погашения
type Strategy int

const (
	// DurationReduction сохраняет платеж и сокращает срок
	DurationReduction Strategy = iota
	// PaymentReduction сохраняет срок и уменьшает платеж
	PaymentReduction
)

func (s Strategy) String() string {
	switch s {
	case DurationReduction:
		return "duration_reduction"
	case PaymentReduction:
		return "payment_reduction"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "duration_reduction":
		*s = DurationReduction
	case "payment_reduction":
		*s = PaymentReduction
	default:
		return fmt.Errorf("unknown early payment strategy %q", text)
	}
	return nil
}

// PaymentType тип записи в графике. Совпадает с типом досрочного платежа
// для записей, созданных досрочным погашением.
func (s Strategy) PaymentType() PaymentType {
	if s == PaymentReduction {
		return PaymentEarlyPayment
	}
	return PaymentEarlyDuration
}

// PaymentType тип платежа в записи графика
type PaymentType int

const (
	// PaymentNone день без платежа, только начисление процентов
	PaymentNone PaymentType = iota
	PaymentBase
	PaymentEarlyDuration
	PaymentEarlyPayment
)

func (t PaymentType) String() string {
	switch t {
	case PaymentNone:
		return "none"
	case PaymentBase:
		return "base"
	case PaymentEarlyDuration:
		return "early_duration"
	case PaymentEarlyPayment:
		return "early_payment"
	}
	return fmt.Sprintf("payment_type(%d)", int(t))
}

func (t PaymentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PaymentType) UnmarshalText(text []byte) error {
	for _, v := range []PaymentType{PaymentNone, PaymentBase, PaymentEarlyDuration, PaymentEarlyPayment} {
		if v.String() == string(text) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown payment type %q", text)
}

// EarlyPayment досрочный платеж
type EarlyPayment struct {
	Date     civil.Date `json:"date"`
	Amount   float64    `json:"amount"`
	Strategy Strategy   `json:"strategy"`
}

// EarlyPayments набор досрочных платежей, не более одного на дату
type EarlyPayments map[civil.Date]EarlyPayment

// Add добавляет платеж. Платеж на ту же дату перезаписывается.
func (e EarlyPayments) Add(p EarlyPayment) {
	e[p.Date] = p
}

// Remove удаляет платеж на дату
func (e EarlyPayments) Remove(date civil.Date) {
	delete(e, date)
}

// Get возвращает платеж на дату
func (e EarlyPayments) Get(date civil.Date) (EarlyPayment, bool) {
	p, ok := e[date]
	return p, ok
}

// Sorted возвращает платежи по возрастанию даты
func (e EarlyPayments) Sorted() []EarlyPayment {
	res := make([]EarlyPayment, 0, len(e))
	for _, p := range e {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res
}

// CreditOptions входные параметры расчета кредита
type CreditOptions struct {
	Principal         float64       `json:"principal"`
	TermYears         float64       `json:"term_years"`
	AnnualRatePercent float64       `json:"annual_rate_percent"`
	StartDate         civil.Date    `json:"start_date"`
	EarlyPayments     EarlyPayments `json:"-"`
}

// TermYearsFromMonths переводит срок в месяцах в годы
func TermYearsFromMonths(months int) float64 {
	return float64(months) / 12.0
}

// PaymentScheduleEntry запись графика: состояние кредита после платежей дня
type PaymentScheduleEntry struct {
	Date             civil.Date  `json:"date"`
	RemainingBalance float64     `json:"remaining_balance"`
	PrincipalPortion float64     `json:"principal_portion"`
	InterestPortion  float64     `json:"interest_portion"`
	AccruedInterest  float64     `json:"accrued_interest"`
	PaymentType      PaymentType `json:"payment_type,omitempty"`
}

// BasePaymentRecord значение ежемесячного платежа начиная с даты
type BasePaymentRecord struct {
	Date   civil.Date `json:"date"`
	Amount float64    `json:"amount"`
}

// CreditSummary результат расчета кредита
type CreditSummary struct {
	// Schedule подневный журнал остатка и начисленных процентов
	Schedule []PaymentScheduleEntry `json:"schedule"`
	// Payments платежи в порядке проведения; в один день их может быть два
	Payments      []PaymentScheduleEntry `json:"payments"`
	BasePayments  []BasePaymentRecord    `json:"base_payments"`
	TotalInterest float64                `json:"total_interest"`
	TotalPaid     float64                `json:"total_paid"`
}

// EarlyPaymentComparison сравнение графиков с досрочными платежами и без
type EarlyPaymentComparison struct {
	Baseline          *CreditSummary `json:"baseline"`
	WithEarlyPayments *CreditSummary `json:"with_early_payments"`
	BaselineEndDate   civil.Date     `json:"baseline_end_date"`
	EndDate           civil.Date     `json:"end_date"`
	InterestSaved     float64        `json:"interest_saved"`
	TotalSaved        float64        `json:"total_saved"`
	DaysSaved         int            `json:"days_saved"`
	Recommendation    string         `json:"recommendation"`
}

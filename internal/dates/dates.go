// Package dates содержит календарную арифметику над civil.Date.
//
// Все функции чистые: принимают даты по значению и возвращают новые даты.
// Время суток не учитывается, поэтому переходы на летнее время и часовые
// пояса на расчет не влияют.
package dates

import (
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// Period единица измерения длительности кредита
type Period int

const (
	PerDay Period = iota
	PerMonth
	PerYear
)

// ruLayout формат даты, в котором дата хранилась в пользовательских настройках
const ruLayout = "02.01.2006"

// New создает дату, нормализуя выход за границы месяца
func New(year int, month time.Month, day int) civil.Date {
	return civil.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse разбирает дату в формате 2006-01-02 или 02.01.2006
func Parse(s string) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(ruLayout, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or DD.MM.YYYY", s)
	}
	return civil.DateOf(t), nil
}

// AddDays прибавляет n дней
func AddDays(d civil.Date, n int) civil.Date {
	return d.AddDays(n)
}

// AddMonths прибавляет n месяцев. Если дня нет в итоговом месяце,
// берется последний день месяца (31 января + 1 месяц = 28/29 февраля).
func AddMonths(d civil.Date, n int) civil.Date {
	first := civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	res := civil.DateOf(first.In(time.UTC).AddDate(0, n, 0))
	res.Day = min(d.Day, DaysInMonth(res))
	return res
}

// AddYears прибавляет n лет. 29 февраля в невисокосном году переходит на 1 марта.
func AddYears(d civil.Date, n int) civil.Date {
	return civil.DateOf(d.In(time.UTC).AddDate(n, 0, 0))
}

// AddTerm прибавляет срок в годах, который может быть дробным:
// целые годы через AddYears, остаток округляется до целых месяцев.
func AddTerm(d civil.Date, years float64) civil.Date {
	whole := math.Floor(years)
	months := int(math.Round((years - whole) * 12))
	return AddMonths(AddYears(d, int(whole)), months)
}

// IsLeapYear проверяет, високосный ли год даты
func IsLeapYear(d civil.Date) bool {
	y := d.Year
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth возвращает количество дней в месяце даты
func DaysInMonth(d civil.Date) int {
	switch d.Month {
	case time.February:
		if IsLeapYear(d) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaysBetween количество целых дней между датами, по модулю
func DaysBetween(d1, d2 civil.Date) int {
	days := d2.DaysSince(d1)
	if days < 0 {
		return -days
	}
	return days
}

// MonthsBetween количество пересеченных границ календарных месяцев от d1 до d2.
// Отрицательный результат приводится к 0.
func MonthsBetween(d1, d2 civil.Date) int {
	months := (d2.Year-d1.Year)*12 - int(d1.Month) + int(d2.Month)
	if months <= 0 {
		return 0
	}
	return months
}

// YearsBetween разница календарных лет
func YearsBetween(d1, d2 civil.Date) int {
	return d2.Year - d1.Year
}

// Duration длительность между датами в заданных единицах
func Duration(d1, d2 civil.Date, period Period) int {
	switch period {
	case PerDay:
		return DaysBetween(d1, d2)
	case PerMonth:
		return MonthsBetween(d1, d2)
	case PerYear:
		return YearsBetween(d1, d2)
	}
	return 0
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"source", "error_type"},
	)

	// CalculationDuration время расчета графика
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "credit_schedule_duration_seconds",
			Help:    "Время расчета графика платежей",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"source"},
	)

	// EarlyPayments количество досрочных платежей в расчетах по стратегиям
	EarlyPayments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "early_payments_total",
			Help: "Досрочные платежи, переданные в расчет",
		},
		[]string{"strategy"},
	)

	// APICalls счетчик HTTP запросов
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы HTTP API",
		},
		[]string{"service", "endpoint", "status"},
	)
)

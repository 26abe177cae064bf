package tools

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/config"
	"github.com/ponchik009/credit-calc/internal/dates"
	"github.com/ponchik009/credit-calc/internal/metrics"
	"github.com/ponchik009/credit-calc/internal/validators"
)

const (
	ToolCreditSchedule       = "credit_schedule"
	ToolCompareEarlyPayments = "compare_early_payments"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry возвращает все инструменты по имени
func Registry(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolCreditSchedule:       CreditScheduleHandler(cfg, tracer, logger),
		ToolCompareEarlyPayments: CompareEarlyPaymentsHandler(cfg, tracer, logger),
	}
}

// CreditScheduleHandler обрабатывает запрос на расчет графика с досрочными платежами
func CreditScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCreditSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		options, err := prepareOptions(cfg, toolName, span, params)
		if err != nil {
			logger.Debug("invalid tool parameters", zap.String("op", toolName), zap.Error(err))
			return nil, err
		}

		started := time.Now()
		result, err := calculations.CreditSchedule(options)
		metrics.CalculationDuration.WithLabelValues(toolName).Observe(time.Since(started).Seconds())
		if err != nil {
			span.SetAttributes(attribute.String("error", "calculation_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
			logger.Warn("calculation failed", zap.String("op", toolName), zap.Error(err))
			return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_payment", result.MonthlyPayment()),
			attribute.Float64("total_paid", result.TotalPaid),
			attribute.String("end_date", result.EndDate().String()),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// CompareEarlyPaymentsHandler обрабатывает запрос на сравнение графиков с досрочными платежами и без
func CompareEarlyPaymentsHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareEarlyPayments

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		options, err := prepareOptions(cfg, toolName, span, params)
		if err != nil {
			logger.Debug("invalid tool parameters", zap.String("op", toolName), zap.Error(err))
			return nil, err
		}

		started := time.Now()
		result, err := calculations.CompareEarlyPayments(options)
		metrics.CalculationDuration.WithLabelValues(toolName).Observe(time.Since(started).Seconds())
		if err != nil {
			span.SetAttributes(attribute.String("error", "calculation_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
			logger.Warn("comparison failed", zap.String("op", toolName), zap.Error(err))
			return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("interest_saved", result.InterestSaved),
			attribute.Int("days_saved", result.DaysSaved),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// prepareOptions разбирает и валидирует параметры кредита
func prepareOptions(cfg *config.Config, toolName string, span trace.Span, params map[string]interface{}) (calculations.CreditOptions, error) {
	options, err := parseOptions(params)
	if err != nil {
		span.SetAttributes(attribute.String("error", "invalid_parameter"))
		metrics.ToolCalls.WithLabelValues(toolName, "invalid_parameter").Inc()
		return options, err
	}

	span.SetAttributes(
		attribute.Float64("principal", options.Principal),
		attribute.Float64("annual_rate_percent", options.AnnualRatePercent),
		attribute.Float64("term_years", options.TermYears),
		attribute.String("start_date", options.StartDate.String()),
		attribute.Int("early_payments", len(options.EarlyPayments)),
	)

	if err := validators.CheckCreditOptions(cfg, options); err != nil {
		span.SetAttributes(attribute.String("error", "validation_error"))
		metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
		metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
		return options, fmt.Errorf("неверные параметры: %w", err)
	}

	for _, p := range options.EarlyPayments {
		metrics.EarlyPayments.WithLabelValues(p.Strategy.String()).Inc()
	}
	return options, nil
}

func parseOptions(params map[string]interface{}) (calculations.CreditOptions, error) {
	var options calculations.CreditOptions

	principal, ok := params["principal"].(float64)
	if !ok {
		return options, fmt.Errorf("invalid parameter: principal")
	}
	annualRatePercent, ok := params["annual_rate_percent"].(float64)
	if !ok {
		return options, fmt.Errorf("invalid parameter: annual_rate_percent")
	}

	var termYears float64
	if months, ok := params["term_months"].(float64); ok {
		if months != math.Trunc(months) {
			return options, fmt.Errorf("invalid parameter: term_months must be a whole number of months")
		}
		termYears = calculations.TermYearsFromMonths(int(months))
	} else if years, ok := params["term_years"].(float64); ok {
		termYears = years
	} else {
		return options, fmt.Errorf("invalid parameter: term_months or term_years required")
	}

	startRaw, ok := params["start_date"].(string)
	if !ok {
		return options, fmt.Errorf("invalid parameter: start_date")
	}
	start, err := dates.Parse(startRaw)
	if err != nil {
		return options, fmt.Errorf("invalid parameter: start_date: %w", err)
	}

	early := calculations.EarlyPayments{}
	if raw, ok := params["early_payments"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return options, fmt.Errorf("invalid parameter: early_payments")
		}
		for i, item := range list {
			p, err := parseEarlyPayment(item)
			if err != nil {
				return options, fmt.Errorf("invalid parameter: early_payments[%d]: %w", i, err)
			}
			early.Add(p)
		}
	}

	options = calculations.CreditOptions{
		Principal:         principal,
		TermYears:         termYears,
		AnnualRatePercent: annualRatePercent,
		StartDate:         start,
		EarlyPayments:     early,
	}
	return options, nil
}

func parseEarlyPayment(item interface{}) (calculations.EarlyPayment, error) {
	var p calculations.EarlyPayment

	fields, ok := item.(map[string]interface{})
	if !ok {
		return p, fmt.Errorf("expected object")
	}
	rawDate, ok := fields["date"].(string)
	if !ok {
		return p, fmt.Errorf("date")
	}
	date, err := dates.Parse(rawDate)
	if err != nil {
		return p, err
	}
	amount, ok := fields["amount"].(float64)
	if !ok {
		return p, fmt.Errorf("amount")
	}

	strategy := calculations.DurationReduction
	if raw, ok := fields["strategy"].(string); ok {
		if err := strategy.UnmarshalText([]byte(raw)); err != nil {
			return p, err
		}
	}

	return calculations.EarlyPayment{Date: date, Amount: amount, Strategy: strategy}, nil
}

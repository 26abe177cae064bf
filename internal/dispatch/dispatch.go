// Package dispatch запускает расчет графика вне вызывающей горутины.
//
// Каждый запрос получает свой канал с ровно одним результатом. Запущенный
// расчет не отменяется; контекст ограничивает только ожидание вызывающего.
// Последний завершившийся успешный расчет доступен через Latest.
package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/metrics"
)

// ComputeFunc функция расчета графика
type ComputeFunc func(calculations.CreditOptions) (*calculations.CreditSummary, error)

// Result результат одного запроса
type Result struct {
	Summary *calculations.CreditSummary
	Err     error
}

// Calculator выполняет расчеты в отдельных горутинах
type Calculator struct {
	logger  *zap.Logger
	compute ComputeFunc

	mu     sync.RWMutex
	latest *calculations.CreditSummary

	wg sync.WaitGroup
}

// New создает Calculator поверх calculations.CreditSchedule
func New(logger *zap.Logger) *Calculator {
	return NewWithCompute(logger, calculations.CreditSchedule)
}

// NewWithCompute создает Calculator с заданной функцией расчета
func NewWithCompute(logger *zap.Logger, compute ComputeFunc) *Calculator {
	return &Calculator{logger: logger, compute: compute}
}

// Submit запускает расчет и возвращает канал с его результатом
func (c *Calculator) Submit(options calculations.CreditOptions) <-chan Result {
	options.EarlyPayments = clonePayments(options.EarlyPayments)
	out := make(chan Result, 1)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		started := time.Now()
		summary, err := c.compute(options)
		metrics.CalculationDuration.WithLabelValues("dispatch").Observe(time.Since(started).Seconds())

		if err != nil {
			metrics.CalculationErrors.WithLabelValues("dispatch", "calculation").Inc()
			c.logger.Debug("calculation failed", zap.String("op", "dispatch.Submit"), zap.Error(err))
		} else {
			c.mu.Lock()
			c.latest = summary
			c.mu.Unlock()
		}
		out <- Result{Summary: summary, Err: err}
	}()

	return out
}

// Calculate запускает расчет и ждет его результат не дольше, чем живет ctx
func (c *Calculator) Calculate(ctx context.Context, options calculations.CreditOptions) (*calculations.CreditSummary, error) {
	select {
	case res := <-c.Submit(options):
		return res.Summary, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Latest последний завершившийся успешный расчет
func (c *Calculator) Latest() *calculations.CreditSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Wait ждет завершения всех запущенных расчетов
func (c *Calculator) Wait() {
	c.wg.Wait()
}

func clonePayments(src calculations.EarlyPayments) calculations.EarlyPayments {
	if src == nil {
		return nil
	}
	dst := make(calculations.EarlyPayments, len(src))
	for date, p := range src {
		dst[date] = p
	}
	return dst
}

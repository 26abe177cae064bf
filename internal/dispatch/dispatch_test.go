package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
)

func testOptions() calculations.CreditOptions {
	return calculations.CreditOptions{
		Principal:         1000000,
		TermYears:         10,
		AnnualRatePercent: 10,
		StartDate:         civil.Date{Year: 2024, Month: time.January, Day: 15},
		EarlyPayments:     calculations.EarlyPayments{},
	}
}

func TestCalculator_Calculate(t *testing.T) {
	c := New(zap.NewNop())

	summary, err := c.Calculate(context.Background(), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "2034-01-15", summary.EndDate().String())
	assert.Same(t, summary, c.Latest())
}

func TestCalculator_InvalidInputKeepsLatest(t *testing.T) {
	c := New(zap.NewNop())

	good, err := c.Calculate(context.Background(), testOptions())
	require.NoError(t, err)

	bad := testOptions()
	bad.Principal = 0
	_, err = c.Calculate(context.Background(), bad)
	assert.ErrorIs(t, err, calculations.ErrInvalidInput)
	assert.Same(t, good, c.Latest())
}

func TestCalculator_ContextBoundsWaitOnly(t *testing.T) {
	release := make(chan struct{})
	c := NewWithCompute(zap.NewNop(), func(o calculations.CreditOptions) (*calculations.CreditSummary, error) {
		<-release
		return calculations.CreditSchedule(o)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Calculate(ctx, testOptions())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Nil(t, c.Latest())

	// расчет продолжается и после отказа от ожидания
	close(release)
	c.Wait()
	assert.NotNil(t, c.Latest())
}

func TestCalculator_LastCompletedWins(t *testing.T) {
	slowRelease := make(chan struct{})
	c := NewWithCompute(zap.NewNop(), func(o calculations.CreditOptions) (*calculations.CreditSummary, error) {
		if o.Principal == 1 {
			<-slowRelease
		}
		return &calculations.CreditSummary{TotalPaid: o.Principal}, nil
	})

	slow := testOptions()
	slow.Principal = 1
	slowCh := c.Submit(slow)

	fast := testOptions()
	fast.Principal = 2
	res := <-c.Submit(fast)
	require.NoError(t, res.Err)
	assert.Equal(t, 2.0, c.Latest().TotalPaid)

	close(slowRelease)
	<-slowCh
	assert.Equal(t, 1.0, c.Latest().TotalPaid)
}

func TestCalculator_OwnsEarlyPayments(t *testing.T) {
	var (
		mu   sync.Mutex
		seen int
	)
	release := make(chan struct{})
	c := NewWithCompute(zap.NewNop(), func(o calculations.CreditOptions) (*calculations.CreditSummary, error) {
		<-release
		mu.Lock()
		seen = len(o.EarlyPayments)
		mu.Unlock()
		return &calculations.CreditSummary{}, nil
	})

	options := testOptions()
	options.EarlyPayments.Add(calculations.EarlyPayment{Date: civil.Date{Year: 2024, Month: time.March, Day: 1}, Amount: 1})
	ch := c.Submit(options)

	options.EarlyPayments.Add(calculations.EarlyPayment{Date: civil.Date{Year: 2024, Month: time.April, Day: 1}, Amount: 1})
	close(release)
	<-ch

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, seen)
}

func TestCalculator_ConcurrentSubmits(t *testing.T) {
	c := New(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			options := testOptions()
			options.Principal = float64(100000 + i*1000)
			res := <-c.Submit(options)
			assert.NoError(t, res.Err)
		}(i)
	}
	wg.Wait()
	assert.NotNil(t, c.Latest())
}

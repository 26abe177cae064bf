package sqlite_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestStore_Options_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadOptions(ctx)
	assert.ErrorIs(t, err, sqlite.ErrNotFound)

	options := calculations.CreditOptions{
		Principal:         1200000,
		TermYears:         calculations.TermYearsFromMonths(18),
		AnnualRatePercent: 12.5,
		StartDate:         day(2024, 1, 15),
	}
	require.NoError(t, store.SaveOptions(ctx, options))

	options.Principal = 900000
	require.NoError(t, store.SaveOptions(ctx, options))

	got, err := store.LoadOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900000.0, got.Principal)
	assert.Equal(t, 1.5, got.TermYears)
	assert.Equal(t, 12.5, got.AnnualRatePercent)
	assert.Equal(t, day(2024, 1, 15), got.StartDate)
	assert.Empty(t, got.EarlyPayments)
}

func TestStore_EarlyPayments_SameDateOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutEarlyPayment(ctx, calculations.EarlyPayment{
		Date: day(2024, 7, 15), Amount: 100000, Strategy: calculations.DurationReduction,
	}))
	require.NoError(t, store.PutEarlyPayment(ctx, calculations.EarlyPayment{
		Date: day(2024, 3, 1), Amount: 5000, Strategy: calculations.DurationReduction,
	}))
	require.NoError(t, store.PutEarlyPayment(ctx, calculations.EarlyPayment{
		Date: day(2024, 7, 15), Amount: 50000, Strategy: calculations.PaymentReduction,
	}))

	list, err := store.ListEarlyPayments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(2024, 3, 1), list[0].Date)
	assert.Equal(t, 50000.0, list[1].Amount)
	assert.Equal(t, calculations.PaymentReduction, list[1].Strategy)

	set, err := store.EarlyPayments(ctx)
	require.NoError(t, err)
	p, ok := set.Get(day(2024, 7, 15))
	require.True(t, ok)
	assert.Equal(t, 50000.0, p.Amount)
}

func TestStore_DeleteEarlyPayment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutEarlyPayment(ctx, calculations.EarlyPayment{Date: day(2024, 7, 15), Amount: 1000}))
	require.NoError(t, store.DeleteEarlyPayment(ctx, day(2024, 7, 15)))

	err := store.DeleteEarlyPayment(ctx, day(2024, 7, 15))
	assert.ErrorIs(t, err, sqlite.ErrNotFound)

	list, err := store.ListEarlyPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_LoadOptions_IncludesEarlyPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveOptions(ctx, calculations.CreditOptions{
		Principal: 1000000, TermYears: 10, AnnualRatePercent: 10, StartDate: day(2024, 1, 15),
	}))
	require.NoError(t, store.PutEarlyPayment(ctx, calculations.EarlyPayment{
		Date: day(2024, 7, 15), Amount: 100000, Strategy: calculations.PaymentReduction,
	}))

	options, err := store.LoadOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options.EarlyPayments, 1)

	summary, err := calculations.CreditSchedule(options)
	require.NoError(t, err)
	assert.Len(t, summary.BasePayments, 2)
}

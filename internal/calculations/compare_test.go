package calculations

import "testing"

func TestCompareEarlyPayments(t *testing.T) {
	options := baseOptions()
	options.EarlyPayments = withEarly(EarlyPayment{
		Date:     date(2024, 7, 15),
		Amount:   100000,
		Strategy: DurationReduction,
	})

	result, err := CompareEarlyPayments(options)
	if err != nil {
		t.Fatalf("CompareEarlyPayments() error = %v", err)
	}

	if result.InterestSaved <= 0 {
		t.Errorf("expected positive interest saved, got %v", result.InterestSaved)
	}
	if result.TotalSaved != result.InterestSaved {
		t.Errorf("total saved %v must equal interest saved %v for the same principal", result.TotalSaved, result.InterestSaved)
	}
	if result.DaysSaved <= 0 {
		t.Errorf("expected positive days saved, got %d", result.DaysSaved)
	}
	if result.BaselineEndDate != date(2034, 1, 15) {
		t.Errorf("unexpected baseline end date %s", result.BaselineEndDate)
	}
	if len(options.EarlyPayments) != 1 {
		t.Error("comparison must not modify the caller's early payments")
	}
	if result.Recommendation == "" {
		t.Error("expected recommendation")
	}
}

func TestCompareEarlyPaymentsWithoutEarlyPayments(t *testing.T) {
	result, err := CompareEarlyPayments(baseOptions())
	if err != nil {
		t.Fatalf("CompareEarlyPayments() error = %v", err)
	}
	if result.InterestSaved != 0 || result.DaysSaved != 0 {
		t.Errorf("expected no savings, got %v / %d", result.InterestSaved, result.DaysSaved)
	}
}

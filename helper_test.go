package stockbook

import (
	"testing"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// day is a helper for tests to create dates in 2024 from a day number.
func day(n int) date.Date { return date.New(2024, 1, 1).Add(n) }

// assertDecimal fails the test if got is not exactly want.
func assertDecimal(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(D(want)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}

// assertClose fails the test if got is further than tolerance from want.
func assertClose(t *testing.T, name string, got decimal.Decimal, want float64, tolerance float64) {
	t.Helper()
	if got.Sub(D(want)).Abs().GreaterThan(D(tolerance)) {
		t.Errorf("%s = %s, want %v (±%v)", name, got, want, tolerance)
	}
}

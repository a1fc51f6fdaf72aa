package stockbook

import (
	"math"
	"slices"

	"github.com/etnz/stockbook/date"
)

const (
	defaultXIRRGuess  = 0.10
	xirrMaxIterations = 50
	xirrTolerance     = 1e-7
	xirrMinDerivative = 1e-9
	xirrFloor         = -0.99999999 // rates at or below -100% are clamped here.
)

// CashFlow is a dated amount: negative when money goes in the portfolio,
// positive when it comes out.
type CashFlow struct {
	Date   date.Date
	Amount float64
}

// XIRRResult is the outcome of SolveXIRR.
type XIRRResult struct {
	Rate       float64 // annualized, in percent.
	Iterations int
	Converged  bool
}

// XIRR returns the annualized internal rate of return of flows, in percent.
//
// It returns 0 when there are fewer than two flows or when flows are not of
// mixed signs. When Newton-Raphson does not converge it returns the last
// rate reached, or 0 if that rate is not finite. Use SolveXIRR to tell a
// converged rate from an estimate.
func XIRR(flows []CashFlow, guess ...float64) float64 {
	g := defaultXIRRGuess
	if len(guess) > 0 {
		g = guess[0]
	}
	return SolveXIRR(flows, g).Rate
}

// SolveXIRR finds the rate r, from guess, such that the sum of
// amount/(1+r)^t is zero, where t is the time in years (of 365 days) since
// the earliest flow.
func SolveXIRR(flows []CashFlow, guess float64) XIRRResult {
	if !mixedSigns(flows) {
		return XIRRResult{}
	}
	flows = slices.Clone(flows)
	slices.SortStableFunc(flows, func(a, b CashFlow) int { return a.Date.Compare(b.Date) })

	base := flows[0].Date
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(f.Date.Sub(base)) / 365
	}

	r := guess
	if r <= -1 {
		r = xirrFloor
	}
	var res XIRRResult
	for i := range xirrMaxIterations {
		res.Iterations = i + 1
		npv, dnpv := npvAt(flows, years, r)
		if math.Abs(npv) < xirrTolerance {
			res.Converged = true
			break
		}
		if math.Abs(dnpv) < xirrMinDerivative {
			break
		}
		next := r - npv/dnpv
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if next <= -1 {
			next = xirrFloor
		}
		r = next
	}

	res.Rate = r * 100
	if math.IsNaN(res.Rate) || math.IsInf(res.Rate, 0) {
		return XIRRResult{Iterations: res.Iterations}
	}
	return res
}

// npvAt returns the net present value of flows at rate r, and its derivative.
func npvAt(flows []CashFlow, years []float64, r float64) (npv, dnpv float64) {
	for i, f := range flows {
		t := years[i]
		npv += f.Amount / math.Pow(1+r, t)
		dnpv -= t * f.Amount / math.Pow(1+r, t+1)
	}
	return npv, dnpv
}

// mixedSigns reports whether flows has at least two entries, one positive
// and one negative.
func mixedSigns(flows []CashFlow) bool {
	if len(flows) < 2 {
		return false
	}
	var pos, neg bool
	for _, f := range flows {
		pos = pos || f.Amount > 0
		neg = neg || f.Amount < 0
	}
	return pos && neg
}

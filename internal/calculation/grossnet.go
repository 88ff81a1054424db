package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rimpay/payroll-calculator/pkg/money"
)

// GrossFromNet solves the inverse payroll problem: the smallest-step gross
// whose derived net does not exceed the target net. CNSS, CNAM and ITS are
// nonlinear in gross, so there is no closed form; the solver runs a bounded
// linear search from an upper estimate (net*2 + benefits in kind) downward in
// unit decrements, recomputing the full chain at each candidate.
//
// Precondition: NetFromGross must be monotonic non-decreasing in gross. The
// bracket tables satisfy this today; a future table change that violates it
// breaks the solver, which is why the property is pinned by a test.
//
// When no candidate crosses the target the last examined value is returned as
// a fallback and the event is logged.
func (s *TaxCalculationService) GrossFromNet(netAmount, benefitsInKind decimal.Decimal, applyCNSS, applyCNAM, expatriate bool, year int) decimal.Decimal {
	if !netAmount.IsPositive() {
		return decimal.Zero.Round(2)
	}

	maxGross := netAmount.Mul(decimal.NewFromInt(2)).Add(benefitsInKind)
	step := decimal.NewFromInt(1)

	candidate := maxGross
	for candidate.IsPositive() {
		calculatedNet := s.NetFromGross(candidate, benefitsInKind, applyCNSS, applyCNAM, true, expatriate, year)
		if calculatedNet.LessThanOrEqual(netAmount) {
			return money.Round(candidate)
		}
		candidate = candidate.Sub(step)
	}

	s.Logger.Warnf("gross-from-net search exhausted for net %s, returning last candidate", netAmount.StringFixed(2))
	return money.Round(candidate)
}

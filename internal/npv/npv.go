// Package npv defines the data structures for a net present value
// calculation and the engine that computes one. Inputs and results are
// transient value objects: built per request, never mutated afterwards.
package npv

import (
	"math"

	"github.com/iwvelando/npv-calculator/pkg/constants"
)

// Input holds a validated calculation request.
type Input struct {
	DiscountRatePercent float64   `json:"discountRate"`
	InitialInvestment   float64   `json:"initialInvestment"`
	CashFlows           []float64 `json:"cashFlows"`
}

// Result holds everything derived from one calculation. CumulativeValues has
// one more element than CashFlows; index 0 is the negated initial investment.
type Result struct {
	DiscountedCashFlows []float64 `json:"discountedCashFlows"`
	CumulativeValues    []float64 `json:"cumulativeValues"`
	NPV                 float64   `json:"npv"`
	Viable              bool      `json:"viable"`
}

// Compute discounts each cash flow back to present value and totals the
// series. It is deterministic and cannot fail for a validated Input: the
// discount factor is at least 1 whenever the rate is non-negative.
func Compute(in Input) Result {
	rate := in.DiscountRatePercent / constants.PercentageMultiplier

	discounted := make([]float64, len(in.CashFlows))
	cumulative := make([]float64, len(in.CashFlows)+1)
	cumulative[0] = -in.InitialInvestment

	npv := -in.InitialInvestment
	for i, flow := range in.CashFlows {
		// Periods are 1-indexed: the first cash flow lands one period out.
		present := flow / math.Pow(1+rate, float64(i+1))
		discounted[i] = present
		npv += present
		cumulative[i+1] = npv
	}

	return Result{
		DiscountedCashFlows: discounted,
		CumulativeValues:    cumulative,
		NPV:                 npv,
		// A project breaking exactly even is not considered viable.
		Viable: npv > 0,
	}
}

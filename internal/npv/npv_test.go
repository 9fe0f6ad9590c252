package npv

import (
	"math"
	"testing"

	"github.com/iwvelando/npv-calculator/pkg/constants"
	"github.com/iwvelando/npv-calculator/pkg/mathutil"
)

func TestComputeReferenceCase(t *testing.T) {
	// rate=10%, investment=5000, flows 1000..3000
	in := Input{
		DiscountRatePercent: 10,
		InitialInvestment:   5000,
		CashFlows:           []float64{1000, 1500, 2000, 2500, 3000},
	}

	result := Compute(in)

	expectedDiscounted := []float64{909.09, 1239.67, 1502.63, 1707.53, 1862.76}
	if len(result.DiscountedCashFlows) != len(expectedDiscounted) {
		t.Fatalf("expected %d discounted cash flows, got %d",
			len(expectedDiscounted), len(result.DiscountedCashFlows))
	}
	for i, expected := range expectedDiscounted {
		if !mathutil.WithinTolerance(result.DiscountedCashFlows[i], expected, constants.CurrencyTolerance) {
			t.Errorf("discounted[%d] = %.4f, expected %.2f", i, result.DiscountedCashFlows[i], expected)
		}
	}

	if !mathutil.WithinTolerance(result.NPV, 2221.68, constants.CurrencyTolerance) {
		t.Errorf("NPV = %.4f, expected 2221.68", result.NPV)
	}
	if !result.Viable {
		t.Error("expected a positive-NPV project to be viable")
	}
}

func TestComputeZeroRateIdentity(t *testing.T) {
	// With a zero rate every discount factor is exactly 1, so the NPV is the
	// plain sum of flows minus the investment, with no floating point drift.
	in := Input{
		DiscountRatePercent: 0,
		InitialInvestment:   5000,
		CashFlows:           []float64{1000, 1000, 1000},
	}

	result := Compute(in)

	if result.NPV != -2000 {
		t.Errorf("NPV = %v, expected exactly -2000", result.NPV)
	}
	if result.Viable {
		t.Error("expected a negative-NPV project to be non-viable")
	}
	for i, flow := range in.CashFlows {
		if result.DiscountedCashFlows[i] != flow {
			t.Errorf("discounted[%d] = %v, expected undiscounted %v", i, result.DiscountedCashFlows[i], flow)
		}
	}
}

func TestComputeSeriesInvariants(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		investment float64
		cashFlows  []float64
	}{
		{"Reference case", 10, 5000, []float64{1000, 1500, 2000, 2500, 3000}},
		{"Single cash flow", 5, 100, []float64{500}},
		{"Zero rate", 0, 2500, []float64{1000, 1000, 1000}},
		{"Zero investment", 8, 0, []float64{100, 200}},
		{"Negative cash flows", 12, 1000, []float64{-500, 2000, -300, 1500}},
		{"High rate", 95, 10000, []float64{4000, 4000, 4000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				DiscountRatePercent: tt.rate,
				InitialInvestment:   tt.investment,
				CashFlows:           tt.cashFlows,
			}
			result := Compute(in)

			if len(result.DiscountedCashFlows) != len(tt.cashFlows) {
				t.Errorf("got %d discounted cash flows for %d inputs",
					len(result.DiscountedCashFlows), len(tt.cashFlows))
			}
			if len(result.CumulativeValues) != len(tt.cashFlows)+1 {
				t.Errorf("got %d cumulative values, expected %d",
					len(result.CumulativeValues), len(tt.cashFlows)+1)
			}
			if result.CumulativeValues[0] != -tt.investment {
				t.Errorf("cumulative[0] = %v, expected %v", result.CumulativeValues[0], -tt.investment)
			}

			last := result.CumulativeValues[len(result.CumulativeValues)-1]
			if last != result.NPV {
				t.Errorf("final cumulative value %v does not equal NPV %v", last, result.NPV)
			}

			// Each cumulative step advances by exactly the discounted flow.
			running := -tt.investment
			for i, d := range result.DiscountedCashFlows {
				running += d
				if !mathutil.WithinTolerance(result.CumulativeValues[i+1], running, 1e-9) {
					t.Errorf("cumulative[%d] = %v, expected running sum %v",
						i+1, result.CumulativeValues[i+1], running)
				}
			}
		})
	}
}

func TestComputeMonotonicDiscount(t *testing.T) {
	in := Input{
		DiscountRatePercent: 7.5,
		InitialInvestment:   1000,
		CashFlows:           []float64{800, 800, 800, 800},
	}

	result := Compute(in)

	for i, flow := range in.CashFlows {
		if result.DiscountedCashFlows[i] >= flow {
			t.Errorf("discounted[%d] = %v, expected strictly less than %v at a positive rate",
				i, result.DiscountedCashFlows[i], flow)
		}
		if i > 0 && result.DiscountedCashFlows[i] >= result.DiscountedCashFlows[i-1] {
			t.Errorf("equal flows should discount more deeply each period: got %v then %v",
				result.DiscountedCashFlows[i-1], result.DiscountedCashFlows[i])
		}
	}
}

func TestComputeViabilityBoundary(t *testing.T) {
	tests := []struct {
		name       string
		investment float64
		cashFlows  []float64
		viable     bool
	}{
		{"Exactly break-even is non-viable", 3000, []float64{1000, 1000, 1000}, false},
		{"Slightly positive is viable", 2999.99, []float64{1000, 1000, 1000}, true},
		{"Clearly negative is non-viable", 5000, []float64{100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				DiscountRatePercent: 0,
				InitialInvestment:   tt.investment,
				CashFlows:           tt.cashFlows,
			}
			result := Compute(in)
			if result.Viable != tt.viable {
				t.Errorf("NPV = %v: Viable = %v, expected %v", result.NPV, result.Viable, tt.viable)
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := Input{
		DiscountRatePercent: 10,
		InitialInvestment:   5000,
		CashFlows:           []float64{1000, 1500, 2000},
	}

	first := Compute(in)
	second := Compute(in)

	if first.NPV != second.NPV {
		t.Errorf("repeated computation diverged: %v vs %v", first.NPV, second.NPV)
	}
	for i := range first.CumulativeValues {
		if first.CumulativeValues[i] != second.CumulativeValues[i] {
			t.Errorf("cumulative[%d] diverged: %v vs %v",
				i, first.CumulativeValues[i], second.CumulativeValues[i])
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	flows := []float64{1000, 2000, 3000}
	in := Input{DiscountRatePercent: 10, InitialInvestment: 500, CashFlows: flows}

	_ = Compute(in)

	for i, expected := range []float64{1000, 2000, 3000} {
		if flows[i] != expected {
			t.Errorf("input cash flow %d mutated to %v", i, flows[i])
		}
	}
}

func TestComputeLargeSeries(t *testing.T) {
	flows := make([]float64, 600)
	for i := range flows {
		flows[i] = 1000
	}
	in := Input{DiscountRatePercent: 10, InitialInvestment: 9000, CashFlows: flows}

	result := Compute(in)

	// A perpetuity of 1000 at 10% is worth 10000; 600 periods gets close.
	if math.Abs(result.NPV-1000.0) > 1.0 {
		t.Errorf("NPV = %v, expected about 1000 for a near-perpetuity", result.NPV)
	}
	if !result.Viable {
		t.Error("expected viable project")
	}
}

// Package cashflow generates sample cash-flow series for pre-populating the
// calculator form. The random source is injected so tests can fix a seed.
package cashflow

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/npv-calculator/pkg/constants"
)

// Random returns count integers uniformly sampled from the inclusive range
// [constants.RandomCashFlowMin, constants.RandomCashFlowMax]. A nil rng uses
// a time-seeded source; a non-positive count falls back to the default.
func Random(rng *rand.Rand, count int) []int {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if count <= 0 {
		count = constants.DefaultCashFlowCount
	}

	span := constants.RandomCashFlowMax - constants.RandomCashFlowMin + 1
	flows := make([]int, count)
	for i := range flows {
		flows[i] = constants.RandomCashFlowMin + rng.Intn(span)
	}
	return flows
}

// Join renders a cash-flow sequence the way the form displays it ("a, b, c").
func Join(flows []int) string {
	parts := make([]string, len(flows))
	for i, flow := range flows {
		parts[i] = strconv.Itoa(flow)
	}
	return strings.Join(parts, ", ")
}

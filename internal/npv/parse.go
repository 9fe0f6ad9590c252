package npv

import (
	"math"
	"strconv"
	"strings"
)

// Validation error codes. Every input failure maps to exactly one of these.
const (
	CodeInvalidDiscountRate = "InvalidDiscountRate"
	CodeInvalidInvestment   = "InvalidInvestment"
	CodeInvalidCashFlows    = "InvalidCashFlows"
)

// User-facing validation messages, surfaced verbatim by the CLI and the API.
const (
	MsgInvalidDiscountRate = "Please enter a valid (non-negative) discount rate."
	MsgInvalidInvestment   = "Please enter a valid (non-negative) initial investment."
	MsgEmptyCashFlows      = "Please enter at least one cash flow."
	MsgInvalidCashFlows    = "Please enter valid cash flows separated by commas."
)

// ValidationError describes a rejected input. It is always recoverable: the
// caller shows Message to the user and waits for a corrected submission.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseInput validates raw form values and assembles an Input. Checks run in
// a fixed order (discount rate, investment, cash flows) and stop at the first
// violation, so simultaneous problems report only the earliest rule.
func ParseInput(rawRate, rawInvestment, rawCashFlows string) (*Input, error) {
	rate, err := parseFiniteNumber(rawRate)
	if err != nil || rate < 0 {
		return nil, &ValidationError{Code: CodeInvalidDiscountRate, Message: MsgInvalidDiscountRate}
	}

	investment, err := parseFiniteNumber(rawInvestment)
	if err != nil || investment < 0 {
		return nil, &ValidationError{Code: CodeInvalidInvestment, Message: MsgInvalidInvestment}
	}

	flows, err := ParseCashFlows(rawCashFlows)
	if err != nil {
		return nil, err
	}

	return &Input{
		DiscountRatePercent: rate,
		InitialInvestment:   investment,
		CashFlows:           flows,
	}, nil
}

// ParseCashFlows splits a comma-separated cash-flow string into numbers.
// Whitespace around each token is ignored; every token must be a finite
// number and at least one token is required.
func ParseCashFlows(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Code: CodeInvalidCashFlows, Message: MsgEmptyCashFlows}
	}

	tokens := strings.Split(raw, ",")
	flows := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		value, err := parseFiniteNumber(token)
		if err != nil {
			return nil, &ValidationError{Code: CodeInvalidCashFlows, Message: MsgInvalidCashFlows}
		}
		flows = append(flows, value)
	}

	return flows, nil
}

// Validate applies the same rules as ParseInput to an already-numeric Input,
// in the same order, so the JSON API and the form report identically.
func (in Input) Validate() error {
	if err := ValidateRate(in.DiscountRatePercent); err != nil {
		return err
	}
	if err := ValidateInvestment(in.InitialInvestment); err != nil {
		return err
	}
	return ValidateFlows(in.CashFlows)
}

// ValidateRate rejects a negative or non-finite discount rate.
func ValidateRate(rate float64) error {
	if !isFinite(rate) || rate < 0 {
		return &ValidationError{Code: CodeInvalidDiscountRate, Message: MsgInvalidDiscountRate}
	}
	return nil
}

// ValidateInvestment rejects a negative or non-finite initial investment.
func ValidateInvestment(investment float64) error {
	if !isFinite(investment) || investment < 0 {
		return &ValidationError{Code: CodeInvalidInvestment, Message: MsgInvalidInvestment}
	}
	return nil
}

// ValidateFlows rejects an empty cash-flow series or any non-finite element.
func ValidateFlows(flows []float64) error {
	if len(flows) == 0 {
		return &ValidationError{Code: CodeInvalidCashFlows, Message: MsgEmptyCashFlows}
	}
	for _, flow := range flows {
		if !isFinite(flow) {
			return &ValidationError{Code: CodeInvalidCashFlows, Message: MsgInvalidCashFlows}
		}
	}
	return nil
}

func parseFiniteNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(value) {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Package output provides utilities for formatting and displaying
// calculation results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/npv-calculator/internal/npv"
	"github.com/iwvelando/npv-calculator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Verdict returns the viability banner for a result, e.g.
// "The project is viable. NPV = 2,221.68".
func Verdict(result npv.Result) string {
	if result.Viable {
		return fmt.Sprintf("The project is viable. NPV = %s", format.NumericCurrency(result.NPV))
	}
	return fmt.Sprintf("The project is not viable. NPV = %s", format.NumericCurrency(result.NPV))
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(in npv.Input, result npv.Result) {
	p := message.NewPrinter(language.English)

	p.Printf("--- Net present value at %s discount rate ---\n", format.Percent(in.DiscountRatePercent))
	fmt.Printf("Period | Cash Flow     | Discounted    | Cumulative\n")
	fmt.Printf("______ | _____________ | _____________ | __________\n")
	_, _ = p.Printf("%6d | %13s | %13s | %.2f\n", 0, "", "", result.CumulativeValues[0])
	for i, flow := range in.CashFlows {
		_, _ = p.Printf("%6d | %13s | %13s | %.2f\n",
			i+1,
			p.Sprintf("%.2f", flow),
			p.Sprintf("%.2f", result.DiscountedCashFlows[i]),
			result.CumulativeValues[i+1],
		)
	}
	fmt.Printf("\n%s\n", Verdict(result))
}

// CsvString renders the result in comma-separated value format.
func CsvString(in npv.Input, result npv.Result) string {
	var builder strings.Builder

	builder.WriteString(`"period","cash flow","discounted","cumulative"` + "\n")
	builder.WriteString(fmt.Sprintf(`"0","","","%.2f"`+"\n", result.CumulativeValues[0]))
	for i, flow := range in.CashFlows {
		builder.WriteString(fmt.Sprintf(`"%d","%.2f","%.2f","%.2f"`+"\n",
			i+1, flow, result.DiscountedCashFlows[i], result.CumulativeValues[i+1]))
	}

	return builder.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(in npv.Input, result npv.Result) {
	fmt.Print(CsvString(in, result))
}

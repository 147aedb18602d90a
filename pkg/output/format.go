// Package output provides utilities for formatting and displaying
// projection and sweep results.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lufenny/rentvsbuy/internal/projection"
	"github.com/lufenny/rentvsbuy/internal/sweep"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []projection.Result) {
	WritePretty(os.Stdout, results)
}

// WritePretty renders each result as a year table followed by its summary.
func WritePretty(w io.Writer, results []projection.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		fmt.Fprintf(w, "Year | Property Value | Mortgage Balance | Buy Wealth     | Invest Wealth  | Annual Rent\n")
		fmt.Fprintf(w, "____ | ______________ | ________________ | ______________ | ______________ | ___________\n")
		for _, row := range result.Rows {
			_, _ = p.Fprintf(w, "%4d | $%13.2f | $%15.2f | $%13.2f | $%13.2f | $%10.2f\n",
				row.Year, row.PropertyValue, row.MortgageBalance, row.BuyWealth, row.InvestWealth, row.AnnualRent)
		}

		summary := result.Summary
		_, _ = p.Fprintf(w, "Annual mortgage payment: $%.2f\n", result.AnnualPayment)
		_, _ = p.Fprintf(w, "Final buy wealth: $%.2f (CAGR %.2f%%)\n", summary.FinalBuyWealth, summary.BuyCAGR*100)
		_, _ = p.Fprintf(w, "Final invest wealth: $%.2f (CAGR %.2f%%)\n", summary.FinalInvestWealth, summary.InvestCAGR*100)
		_, _ = p.Fprintf(w, "Total rent paid: $%.2f\n", summary.TotalRentPaid)
		if summary.BreakEvenYear != nil {
			fmt.Fprintf(w, "Break-even year: %d\n", *summary.BreakEvenYear)
		} else {
			fmt.Fprintf(w, "Break-even year: none within horizon\n")
		}
		fmt.Fprintf(w, "Winner: %s\n", summary.Winner)
		if i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []projection.Result) {
	WriteCsv(os.Stdout, results)
}

// WriteCsv emits one row per scenario-year with plain decimal currency
// values.
func WriteCsv(w io.Writer, results []projection.Result) {
	fmt.Fprintf(w, "scenario,year,propertyValue,mortgageBalance,buyWealth,investWealth,annualRent,cumulativeRent\n")
	for _, result := range results {
		for _, row := range result.Rows {
			fmt.Fprintf(w, "%s,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
				result.Name, row.Year, row.PropertyValue, row.MortgageBalance,
				row.BuyWealth, row.InvestWealth, row.AnnualRent, row.CumulativeRent)
		}
	}
}

// ProjectionCsv renders a single result as a CSV document without the
// scenario column, matching the downloadable table shape.
func ProjectionCsv(result projection.Result) string {
	var b strings.Builder
	b.WriteString("year,propertyValue,mortgageBalance,buyWealth,investWealth,annualRent,cumulativeRent\n")
	for _, row := range result.Rows {
		fmt.Fprintf(&b, "%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			row.Year, row.PropertyValue, row.MortgageBalance,
			row.BuyWealth, row.InvestWealth, row.AnnualRent, row.CumulativeRent)
	}
	return b.String()
}

// SweepCsvFormat outputs the sweep grid in comma-separated value format.
func SweepCsvFormat(points []sweep.Point) {
	WriteSweepCsv(os.Stdout, points)
}

// WriteSweepCsv emits one row per sweep combination. The parameter columns
// come from the first point; all points in a sweep share the same axes.
func WriteSweepCsv(w io.Writer, points []sweep.Point) {
	if len(points) == 0 {
		return
	}
	for _, setting := range points[0].Settings {
		fmt.Fprintf(w, "%s,", setting.Parameter)
	}
	fmt.Fprintf(w, "finalBuyWealth,finalInvestWealth,advantage,winner\n")
	for _, point := range points {
		for _, setting := range point.Settings {
			fmt.Fprintf(w, "%.4f,", setting.Value)
		}
		fmt.Fprintf(w, "%.2f,%.2f,%.2f,%s\n",
			point.FinalBuyWealth, point.FinalInvestWealth, point.Advantage, point.Winner)
	}
}

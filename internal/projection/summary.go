package projection

import (
	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/lufenny/rentvsbuy/pkg/loans"
	"github.com/lufenny/rentvsbuy/pkg/mathutil"
	"go.uber.org/zap"
)

// Summary holds the derived metrics for one projection.
type Summary struct {
	FinalBuyWealth    float64 `json:"finalBuyWealth"`
	FinalInvestWealth float64 `json:"finalInvestWealth"`
	BuyCAGR           float64 `json:"buyCAGR"`
	InvestCAGR        float64 `json:"investCAGR"`
	// BreakEvenYear is the first year where the buy strategy's wealth
	// exceeds the invest strategy's. It is a first crossing, not a stable
	// lead; nil when no crossing occurs within the horizon.
	BreakEvenYear *int    `json:"breakEvenYear"`
	Winner        string  `json:"winner"`
	TotalRentPaid float64 `json:"totalRentPaid"`
}

// Summarize derives the summary metrics from a projection's rows.
// Final wealth values within a cent of each other are reported as a tie
// rather than silently resolved to one side.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{Winner: constants.WinnerTie}
	}

	first := rows[0]
	last := rows[len(rows)-1]

	summary := Summary{
		FinalBuyWealth:    last.BuyWealth,
		FinalInvestWealth: last.InvestWealth,
		BuyCAGR:           mathutil.CAGR(first.BuyWealth, last.BuyWealth, last.Year),
		InvestCAGR:        mathutil.CAGR(first.InvestWealth, last.InvestWealth, last.Year),
		TotalRentPaid:     last.CumulativeRent,
	}

	for _, row := range rows {
		if row.BuyWealth > row.InvestWealth {
			year := row.Year
			summary.BreakEvenYear = &year
			break
		}
	}

	switch {
	case mathutil.WithinTolerance(last.BuyWealth, last.InvestWealth, constants.CurrencyTolerance):
		summary.Winner = constants.WinnerTie
	case last.BuyWealth > last.InvestWealth:
		summary.Winner = constants.WinnerBuy
	default:
		summary.Winner = constants.WinnerInvest
	}

	return summary
}

// Result bundles a named projection with its derived metrics.
type Result struct {
	Name          string      `json:"name"`
	Assumptions   Assumptions `json:"assumptions"`
	AnnualPayment float64     `json:"annualPayment"`
	Rows          []Row       `json:"rows"`
	Summary       Summary     `json:"summary"`
}

// Run projects one named set of assumptions and summarizes the outcome.
func Run(logger *zap.Logger, name string, a Assumptions) (Result, error) {
	rows, err := Project(logger, a)
	if err != nil {
		return Result{}, err
	}

	a.Normalize()
	return Result{
		Name:          name,
		Assumptions:   a,
		AnnualPayment: loans.AnnualPayment(a.LoanAmount, a.MortgageRate, a.LoanTermYears),
		Rows:          rows,
		Summary:       Summarize(rows),
	}, nil
}

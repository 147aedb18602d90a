// Package projection implements the buy vs. rent-and-invest wealth engine.
//
// The engine is a pure function of its assumptions: each call recomputes
// the full year-indexed table from scratch, holds no state between calls,
// and performs no I/O. Concurrent calls are safe because every invocation
// operates on its own locals.
package projection

import (
	"fmt"
	"math"

	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/lufenny/rentvsbuy/pkg/loans"
	"go.uber.org/zap"
)

// Assumptions collects every input the projection depends on. Rates are
// fractions (0.05 means 5% per year).
type Assumptions struct {
	PropertyPrice    float64  `json:"propertyPrice" yaml:"propertyPrice"`
	DownPayment      float64  `json:"downPayment" yaml:"downPayment"`
	LoanAmount       float64  `json:"loanAmount" yaml:"loanAmount"`
	MortgageRate     float64  `json:"mortgageRate" yaml:"mortgageRate"`
	LoanTermYears    int      `json:"loanTermYears" yaml:"loanTermYears"`
	PropertyGrowth   float64  `json:"propertyGrowth" yaml:"propertyGrowth"`
	InvestmentReturn float64  `json:"investmentReturn" yaml:"investmentReturn"`
	RentYield        float64  `json:"rentYield" yaml:"rentYield"`
	CustomAnnualRent *float64 `json:"customAnnualRent,omitempty" yaml:"customAnnualRent,omitempty"`
	ProjectionYears  int      `json:"projectionYears" yaml:"projectionYears"`
}

// Normalize fills in whichever of DownPayment or LoanAmount was left
// unset, treating the property price as the sum of the two. When both are
// zero the purchase is fully financed.
func (a *Assumptions) Normalize() {
	if a.LoanAmount == 0 && a.DownPayment == 0 {
		a.LoanAmount = a.PropertyPrice
		return
	}
	if a.LoanAmount == 0 {
		a.LoanAmount = a.PropertyPrice - a.DownPayment
		return
	}
	if a.DownPayment == 0 {
		a.DownPayment = a.PropertyPrice - a.LoanAmount
	}
}

// Validate rejects structurally invalid assumptions. Zero rates are valid
// (the linear branches apply); a negative mortgage rate is not.
func (a Assumptions) Validate() error {
	if a.PropertyPrice <= 0 {
		return fmt.Errorf("propertyPrice must be positive, got %.2f", a.PropertyPrice)
	}
	if a.LoanAmount < 0 || a.LoanAmount > a.PropertyPrice {
		return fmt.Errorf("loanAmount must be within [0, propertyPrice], got %.2f", a.LoanAmount)
	}
	if a.DownPayment < 0 {
		return fmt.Errorf("downPayment must not be negative, got %.2f", a.DownPayment)
	}
	if a.MortgageRate < 0 {
		return fmt.Errorf("mortgageRate must not be negative, got %.4f", a.MortgageRate)
	}
	if a.LoanTermYears <= 0 {
		return fmt.Errorf("loanTermYears must be positive, got %d", a.LoanTermYears)
	}
	if a.ProjectionYears <= 0 {
		return fmt.Errorf("projectionYears must be positive, got %d", a.ProjectionYears)
	}
	if a.PropertyGrowth <= -1 {
		return fmt.Errorf("propertyGrowth must be greater than -100%%, got %.4f", a.PropertyGrowth)
	}
	if a.InvestmentReturn <= -1 {
		return fmt.Errorf("investmentReturn must be greater than -100%%, got %.4f", a.InvestmentReturn)
	}
	if a.RentYield < 0 {
		return fmt.Errorf("rentYield must not be negative, got %.4f", a.RentYield)
	}
	if a.CustomAnnualRent != nil && *a.CustomAnnualRent < 0 {
		return fmt.Errorf("customAnnualRent must not be negative, got %.2f", *a.CustomAnnualRent)
	}
	return nil
}

// annualRent returns the rent bill for a year given the current property
// value. A custom rent is fixed for the whole horizon; otherwise rent
// tracks the appreciated property value through the yield.
func (a Assumptions) annualRent(propertyValue float64) float64 {
	if a.CustomAnnualRent != nil {
		return *a.CustomAnnualRent
	}
	return propertyValue * a.RentYield
}

// Row is one year of the projection. Row 0 is the purchase-year state,
// not one compounding period elapsed.
type Row struct {
	Year            int     `json:"year"`
	PropertyValue   float64 `json:"propertyValue"`
	MortgageBalance float64 `json:"mortgageBalance"`
	BuyWealth       float64 `json:"buyWealth"`
	AnnualRent      float64 `json:"annualRent"`
	CumulativeRent  float64 `json:"cumulativeRent"`
	InvestWealth    float64 `json:"investWealth"`
}

// Project computes the year-indexed wealth table for both strategies.
// The buyer's wealth is property value net of the outstanding mortgage.
// The renter invests the down payment as a lump sum and thereafter the
// annual mortgage payment net of rent, clamped at zero; the investment
// balance compounds monthly within each year. After the loan is repaid
// the full payment amount keeps flowing into the investment path.
func Project(logger *zap.Logger, a Assumptions) ([]Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	monthlyPayment := loans.MonthlyPayment(a.LoanAmount, a.MortgageRate, a.LoanTermYears)
	annualPayment := monthlyPayment * constants.MonthsPerYear
	logger.Debug(fmt.Sprintf("projecting %d years with annual payment %.2f", a.ProjectionYears, annualPayment),
		zap.String("op", "projection.Project"),
	)

	propertyValue := a.PropertyPrice
	balance := a.LoanAmount
	investWealth := a.DownPayment

	rows := make([]Row, 0, a.ProjectionYears+1)
	rent := a.annualRent(propertyValue)
	cumulativeRent := rent
	rows = append(rows, Row{
		Year:            0,
		PropertyValue:   propertyValue,
		MortgageBalance: balance,
		BuyWealth:       propertyValue - balance,
		AnnualRent:      rent,
		CumulativeRent:  cumulativeRent,
		InvestWealth:    investWealth,
	})

	growthFactor := yearlyCompound(a.InvestmentReturn)
	for t := 1; t <= a.ProjectionYears; t++ {
		propertyValue *= 1 + a.PropertyGrowth

		step := loans.AmortizeYear(balance, a.MortgageRate, monthlyPayment)
		balance = step.Balance

		rent = a.annualRent(propertyValue)
		cumulativeRent += rent

		// Opportunity-cost framing: the cash that would have gone to the
		// mortgage, net of rent actually paid, is invested. Never negative;
		// the model does not borrow to cover a rent shortfall.
		investable := math.Max(0, annualPayment-rent)
		investWealth = investWealth*growthFactor + investable

		rows = append(rows, Row{
			Year:            t,
			PropertyValue:   propertyValue,
			MortgageBalance: balance,
			BuyWealth:       propertyValue - balance,
			AnnualRent:      rent,
			CumulativeRent:  cumulativeRent,
			InvestWealth:    investWealth,
		})
	}

	return rows, nil
}

// yearlyCompound turns an annual rate into the growth factor for one year
// of monthly compounding.
func yearlyCompound(annualRate float64) float64 {
	return math.Pow(1+annualRate/constants.MonthsPerYear, constants.MonthsPerYear)
}

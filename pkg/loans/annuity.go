// Package loans provides annuity payment and amortization utilities.
//
// Rates throughout this package are fractions (0.04 means 4% per year),
// not percentages. The payment convention is fixed: the true monthly
// annuity payment is derived from the monthly rate over the full term in
// months, and twelve of those payments form the annual cash-flow figure
// used by the yearly projection loop. Amortization follows the same
// monthly convention so a loan held to term pays down to zero.
package loans

import (
	"math"

	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/lufenny/rentvsbuy/pkg/mathutil"
)

// MonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	termMonths := termYears * constants.MonthsPerYear
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// AnnualPayment is the yearly mortgage cash flow: twelve monthly payments.
func AnnualPayment(principal, annualRate float64, termYears int) float64 {
	return MonthlyPayment(principal, annualRate, termYears) * constants.MonthsPerYear
}

// YearStep holds the result of rolling a loan balance forward by one year.
type YearStep struct {
	Interest  float64
	Principal float64
	Balance   float64
}

// AmortizeYear advances an outstanding balance through twelve monthly
// payments. Interest accrues at the monthly rate on each month's opening
// balance and the remainder of the payment retires principal. The closing
// balance never drops below zero; once the balance is zero the remaining
// months are a no-op.
func AmortizeYear(balance, annualRate, monthlyPayment float64) YearStep {
	var step YearStep
	for m := 0; m < constants.MonthsPerYear; m++ {
		if balance <= 0 {
			break
		}
		interest := balance * annualRate / constants.MonthsPerYear
		principal := monthlyPayment - interest
		if principal > balance {
			principal = balance
		}
		step.Interest += interest
		step.Principal += principal
		balance -= principal
	}
	if mathutil.Round(balance) == 0 {
		// We will get machine error otherwise so just set to 0.
		balance = 0
	}
	step.Balance = math.Max(0, balance)
	return step
}

// Package sweep evaluates the projection engine over a grid of assumption
// values for sensitivity analysis. It is a batch caller of the engine and
// adds no semantics of its own: every combination in the Cartesian product
// of the discretized ranges is projected independently.
package sweep

import (
	"fmt"

	"github.com/lufenny/rentvsbuy/internal/projection"
	"go.uber.org/zap"
)

// Parameters a range may vary.
const (
	ParamPropertyGrowth   = "propertyGrowth"
	ParamInvestmentReturn = "investmentReturn"
	ParamRentYield        = "rentYield"
	ParamMortgageRate     = "mortgageRate"
)

// MaxDimensions bounds the sweep grid; beyond four axes the Cartesian
// product stops being renderable as a tornado chart or heatmap.
const MaxDimensions = 4

// Range discretizes one assumption dimension into Steps evenly spaced
// values from Min to Max inclusive.
type Range struct {
	Parameter string  `json:"parameter" yaml:"parameter"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Steps     int     `json:"steps" yaml:"steps"`
}

// Values expands the range into its grid points. A single-step range
// collapses to Min.
func (r Range) Values() []float64 {
	if r.Steps <= 1 {
		return []float64{r.Min}
	}
	values := make([]float64, r.Steps)
	width := (r.Max - r.Min) / float64(r.Steps-1)
	for i := range values {
		values[i] = r.Min + width*float64(i)
	}
	return values
}

// Validate checks a range in isolation.
func (r Range) Validate() error {
	switch r.Parameter {
	case ParamPropertyGrowth, ParamInvestmentReturn, ParamRentYield, ParamMortgageRate:
	default:
		return fmt.Errorf("unknown sweep parameter %q", r.Parameter)
	}
	if r.Steps <= 0 {
		return fmt.Errorf("sweep range for %s must have at least one step, got %d", r.Parameter, r.Steps)
	}
	if r.Min > r.Max {
		return fmt.Errorf("sweep range for %s has min %.4f > max %.4f", r.Parameter, r.Min, r.Max)
	}
	return nil
}

// Setting is one parameter value within a sweep point, in range order.
type Setting struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
}

// Point is the final-year outcome for one combination of swept values.
type Point struct {
	Settings          []Setting `json:"settings"`
	FinalBuyWealth    float64   `json:"finalBuyWealth"`
	FinalInvestWealth float64   `json:"finalInvestWealth"`
	// Advantage is buy wealth minus invest wealth at the horizon.
	Advantage float64 `json:"advantage"`
	Winner    string  `json:"winner"`
}

// Run projects every combination in the Cartesian product of the ranges
// applied over the base assumptions. Points are emitted in row-major
// order: the last range varies fastest.
func Run(logger *zap.Logger, base projection.Assumptions, ranges []Range) ([]Point, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(ranges) == 0 {
		return nil, fmt.Errorf("sweep requires at least one range")
	}
	if len(ranges) > MaxDimensions {
		return nil, fmt.Errorf("sweep supports at most %d dimensions, got %d", MaxDimensions, len(ranges))
	}

	seen := make(map[string]bool)
	grid := make([][]float64, len(ranges))
	total := 1
	for i, r := range ranges {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if seen[r.Parameter] {
			return nil, fmt.Errorf("duplicate sweep parameter %q", r.Parameter)
		}
		seen[r.Parameter] = true
		grid[i] = r.Values()
		total *= len(grid[i])
	}

	logger.Debug(fmt.Sprintf("sweeping %d combinations across %d dimensions", total, len(ranges)),
		zap.String("op", "sweep.Run"),
	)

	points := make([]Point, 0, total)
	indices := make([]int, len(ranges))
	for {
		a := base
		settings := make([]Setting, len(ranges))
		for i, r := range ranges {
			value := grid[i][indices[i]]
			applyParameter(&a, r.Parameter, value)
			settings[i] = Setting{Parameter: r.Parameter, Value: value}
		}

		rows, err := projection.Project(nil, a)
		if err != nil {
			return nil, fmt.Errorf("sweep combination %v: %w", settings, err)
		}
		summary := projection.Summarize(rows)
		points = append(points, Point{
			Settings:          settings,
			FinalBuyWealth:    summary.FinalBuyWealth,
			FinalInvestWealth: summary.FinalInvestWealth,
			Advantage:         summary.FinalBuyWealth - summary.FinalInvestWealth,
			Winner:            summary.Winner,
		})

		// Advance the index vector, last dimension fastest.
		carry := len(indices) - 1
		for carry >= 0 {
			indices[carry]++
			if indices[carry] < len(grid[carry]) {
				break
			}
			indices[carry] = 0
			carry--
		}
		if carry < 0 {
			break
		}
	}

	return points, nil
}

func applyParameter(a *projection.Assumptions, parameter string, value float64) {
	switch parameter {
	case ParamPropertyGrowth:
		a.PropertyGrowth = value
	case ParamInvestmentReturn:
		a.InvestmentReturn = value
	case ParamRentYield:
		a.RentYield = value
	case ParamMortgageRate:
		a.MortgageRate = value
	}
}

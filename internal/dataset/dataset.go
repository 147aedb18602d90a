// Package dataset derives projection assumptions from a historical CSV.
//
// The expected file carries percentage columns PriceGrowth, EPF, OPR_avg
// and RentYield; column means are converted to fractions, and the OPR
// average gains a fixed bank spread to approximate a retail mortgage rate.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lufenny/rentvsbuy/pkg/constants"
	"go.uber.org/zap"
)

// Averages holds dataset-derived assumption rates, already converted to
// fractions.
type Averages struct {
	PropertyGrowth   float64
	InvestmentReturn float64
	MortgageRate     float64
	RentYield        float64
}

// requiredColumns maps CSV headers to their position in the accumulator.
var requiredColumns = []string{
	constants.ColumnPriceGrowth,
	constants.ColumnEPF,
	constants.ColumnOPR,
	constants.ColumnRentYield,
}

// LoadAverages reads the CSV at path and computes the column means. Cells
// that do not parse as numbers are skipped; a column with no usable cells
// falls back to its illustrative default with a logged warning. A missing
// file or a missing required column is an error so the caller can fall
// back to configured assumptions.
func LoadAverages(logger *zap.Logger, path string) (*Averages, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	header := records[0]
	indices := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		indices[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, column := range requiredColumns {
		if _, ok := indices[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset %s is missing required columns: %s", path, strings.Join(missing, ", "))
	}

	sums := make(map[string]float64, len(requiredColumns))
	counts := make(map[string]int, len(requiredColumns))
	for _, record := range records[1:] {
		for _, column := range requiredColumns {
			index := indices[column]
			if index >= len(record) {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(record[index]), 64)
			if err != nil {
				continue
			}
			sums[column] += value
			counts[column]++
		}
	}

	mean := func(column string, fallback float64) float64 {
		if counts[column] == 0 {
			logger.Warn(fmt.Sprintf("dataset column %s has no numeric values, using default", column),
				zap.String("op", "dataset.LoadAverages"),
				zap.String("path", path),
			)
			return fallback
		}
		return (sums[column] / float64(counts[column])) / constants.PercentageMultiplier
	}

	averages := &Averages{
		PropertyGrowth:   mean(constants.ColumnPriceGrowth, constants.DefaultPropertyGrowth),
		InvestmentReturn: mean(constants.ColumnEPF, constants.DefaultInvestmentReturn),
		RentYield:        mean(constants.ColumnRentYield, constants.DefaultRentYield),
	}
	if counts[constants.ColumnOPR] == 0 {
		logger.Warn(fmt.Sprintf("dataset column %s has no numeric values, using default", constants.ColumnOPR),
			zap.String("op", "dataset.LoadAverages"),
			zap.String("path", path),
		)
		averages.MortgageRate = constants.DefaultMortgageRate
	} else {
		averages.MortgageRate = (sums[constants.ColumnOPR]/float64(counts[constants.ColumnOPR]))/constants.PercentageMultiplier + constants.OPRSpread
	}

	logger.Debug(fmt.Sprintf("dataset averages: growth %.4f, return %.4f, mortgage %.4f, yield %.4f",
		averages.PropertyGrowth, averages.InvestmentReturn, averages.MortgageRate, averages.RentYield),
		zap.String("op", "dataset.LoadAverages"),
		zap.String("path", path),
	)

	return averages, nil
}

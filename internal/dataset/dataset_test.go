package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestLoadAverages(t *testing.T) {
	path := writeDataset(t, `Year,PriceGrowth,EPF,OPR_avg,RentYield
2020,3.0,5.0,2.0,4.0
2021,5.0,6.0,3.0,4.5
2022,4.0,7.0,2.5,3.5
`)

	averages, err := LoadAverages(nil, path)
	if err != nil {
		t.Fatalf("LoadAverages() returned error: %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{name: "PropertyGrowth", got: averages.PropertyGrowth, expected: 0.04},
		{name: "InvestmentReturn", got: averages.InvestmentReturn, expected: 0.06},
		{name: "MortgageRate", got: averages.MortgageRate, expected: 0.025 + 0.02},
		{name: "RentYield", got: averages.RentYield, expected: 0.04},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-9 {
				t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoadAveragesSkipsJunkCells(t *testing.T) {
	path := writeDataset(t, `PriceGrowth,EPF,OPR_avg,RentYield
3.0,n/a,2.0,4.0
,5.0,3.0,4.0
5.0,7.0,abc,4.0
`)

	averages, err := LoadAverages(nil, path)
	if err != nil {
		t.Fatalf("LoadAverages() returned error: %v", err)
	}

	if math.Abs(averages.PropertyGrowth-0.04) > 1e-9 {
		t.Errorf("PropertyGrowth = %v, expected 0.04 (mean of 3 and 5)", averages.PropertyGrowth)
	}
	if math.Abs(averages.InvestmentReturn-0.06) > 1e-9 {
		t.Errorf("InvestmentReturn = %v, expected 0.06 (mean of 5 and 7)", averages.InvestmentReturn)
	}
	if math.Abs(averages.MortgageRate-(0.025+0.02)) > 1e-9 {
		t.Errorf("MortgageRate = %v, expected OPR mean of 2 and 3 plus spread", averages.MortgageRate)
	}
}

func TestLoadAveragesColumnWithNoValuesFallsBack(t *testing.T) {
	path := writeDataset(t, `PriceGrowth,EPF,OPR_avg,RentYield
3.0,none,2.0,4.0
5.0,none,3.0,4.0
`)

	averages, err := LoadAverages(nil, path)
	if err != nil {
		t.Fatalf("LoadAverages() returned error: %v", err)
	}

	if averages.InvestmentReturn != 0.06 {
		t.Errorf("all-junk EPF column should fall back to 0.06, got %v", averages.InvestmentReturn)
	}
	if math.Abs(averages.PropertyGrowth-0.04) > 1e-9 {
		t.Errorf("other columns should still use their means, got %v", averages.PropertyGrowth)
	}
}

func TestLoadAveragesMissingFile(t *testing.T) {
	if _, err := LoadAverages(nil, filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadAveragesMissingColumns(t *testing.T) {
	path := writeDataset(t, `PriceGrowth,EPF
3.0,5.0
`)

	if _, err := LoadAverages(nil, path); err == nil {
		t.Errorf("expected error for missing required columns")
	}
}

func TestLoadAveragesEmptyFile(t *testing.T) {
	path := writeDataset(t, `PriceGrowth,EPF,OPR_avg,RentYield
`)

	if _, err := LoadAverages(nil, path); err == nil {
		t.Errorf("expected error for dataset with no data rows")
	}
}

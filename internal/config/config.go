// Package config defines the data structures related to configuration and
// includes functions for loading, validating, and resolving the config
// into concrete projection assumptions.
package config

import (
	"fmt"

	"github.com/lufenny/rentvsbuy/internal/dataset"
	"github.com/lufenny/rentvsbuy/internal/projection"
	"github.com/lufenny/rentvsbuy/internal/sweep"
	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for rentvsbuy.
type Configuration struct {
	Assumptions projection.Assumptions
	Scenarios   []Scenario
	Sweep       SweepConfig   `yaml:"sweep,omitempty"`
	Dataset     DatasetConfig `yaml:"dataset,omitempty"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Server      ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize int64  `yaml:"maxBodySize,omitempty"`
}

// DatasetConfig points at an optional historical-averages CSV. When set,
// the dataset's column means replace the four configured rates.
type DatasetConfig struct {
	Path string `yaml:"path,omitempty"`
}

// SweepConfig holds the sensitivity sweep ranges.
type SweepConfig struct {
	Ranges []sweep.Range `yaml:"ranges,omitempty"`
}

// Scenario overrides selected rates on top of the base assumptions. Nil
// fields inherit the base value.
type Scenario struct {
	Name             string
	Active           bool
	PropertyGrowth   *float64
	InvestmentReturn *float64
	MortgageRate     *float64
	RentYield        *float64
	CustomAnnualRent *float64
	ProjectionYears  *int
}

// NamedAssumptions is one resolved scenario ready for projection.
type NamedAssumptions struct {
	Name        string
	Assumptions projection.Assumptions
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Hard validation of assumption preconditions
// happens in the projection engine; these checks only catch setups that
// are legal but probably unintended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Assumptions.ProjectionYears > 0 && c.Assumptions.LoanTermYears > c.Assumptions.ProjectionYears {
		warnings = append(warnings, fmt.Sprintf("loan term of %d years extends past the %d-year projection horizon - the mortgage will still be outstanding at the end",
			c.Assumptions.LoanTermYears, c.Assumptions.ProjectionYears))
	}

	if c.Assumptions.CustomAnnualRent != nil && c.Assumptions.RentYield > 0 {
		warnings = append(warnings, "both customAnnualRent and rentYield are set - the custom rent takes precedence")
	}

	seen := make(map[string]bool)
	anyActive := len(c.Scenarios) == 0
	for _, scenario := range c.Scenarios {
		if scenario.Name == "" {
			warnings = append(warnings, "a scenario has no name")
		}
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q", scenario.Name))
		}
		seen[scenario.Name] = true
		if scenario.Active {
			anyActive = true
		}
	}
	if !anyActive {
		warnings = append(warnings, "no scenarios are active - nothing will be projected")
	}

	for _, r := range c.Sweep.Ranges {
		if err := r.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("sweep range: %v", err))
		}
	}

	return warnings
}

// Resolve merges the optional dataset averages and the scenario overrides
// into one set of concrete assumptions per active scenario. Without any
// configured scenarios a single baseline entry is returned.
func (c *Configuration) Resolve(logger *zap.Logger) []NamedAssumptions {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := c.Assumptions
	if c.Dataset.Path != "" {
		averages, err := dataset.LoadAverages(logger, c.Dataset.Path)
		if err != nil {
			logger.Warn("falling back to configured assumptions",
				zap.String("op", "config.Resolve"),
				zap.Error(err),
			)
		} else {
			base.PropertyGrowth = averages.PropertyGrowth
			base.InvestmentReturn = averages.InvestmentReturn
			base.MortgageRate = averages.MortgageRate
			base.RentYield = averages.RentYield
			logger.Info(fmt.Sprintf("using dataset averages from %s", c.Dataset.Path),
				zap.String("op", "config.Resolve"),
			)
		}
	}

	if len(c.Scenarios) == 0 {
		return []NamedAssumptions{{Name: "baseline", Assumptions: base}}
	}

	var resolved []NamedAssumptions
	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "config.Resolve"),
			)
			continue
		}

		a := base
		if scenario.PropertyGrowth != nil {
			a.PropertyGrowth = *scenario.PropertyGrowth
		}
		if scenario.InvestmentReturn != nil {
			a.InvestmentReturn = *scenario.InvestmentReturn
		}
		if scenario.MortgageRate != nil {
			a.MortgageRate = *scenario.MortgageRate
		}
		if scenario.RentYield != nil {
			a.RentYield = *scenario.RentYield
		}
		if scenario.CustomAnnualRent != nil {
			rent := *scenario.CustomAnnualRent
			a.CustomAnnualRent = &rent
		}
		if scenario.ProjectionYears != nil {
			a.ProjectionYears = *scenario.ProjectionYears
		}
		resolved = append(resolved, NamedAssumptions{Name: scenario.Name, Assumptions: a})
	}

	return resolved
}

// ResolvedServer applies defaults to the server block.
func (c *Configuration) ResolvedServer() ServerConfig {
	server := c.Server
	if server.Address == "" {
		server.Address = constants.DefaultServerAddress
	}
	if server.MaxBodySize <= 0 {
		server.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	return server
}

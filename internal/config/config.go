// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"strings"

	"github.com/loanlogic/loan-logic/pkg/constants"
	"github.com/loanlogic/loan-logic/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-logic.
type Configuration struct {
	Logging     LoggingConfig     `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output,omitempty" mapstructure:"output"`
	Reference   LoanConfig        `yaml:"reference" mapstructure:"reference"`
	Alternative *LoanConfig       `yaml:"alternative,omitempty" mapstructure:"alternative"`
	Investment  *InvestmentConfig `yaml:"investment,omitempty" mapstructure:"investment"`
	Parties     *PartiesConfig    `yaml:"parties,omitempty" mapstructure:"parties"`
	Solver      *SolverConfig     `yaml:"solver,omitempty" mapstructure:"solver"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format      string `yaml:"format,omitempty" mapstructure:"format"`           // pretty, csv, yaml
	Granularity string `yaml:"granularity,omitempty" mapstructure:"granularity"` // monthly, annual
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Any key can be overridden from the environment, e.g.
// LOANLOGIC_OUTPUT_FORMAT=csv.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.granularity", constants.GranularityMonthly)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset loan and solver fields with their defaults.
func (c *Configuration) ApplyDefaults() {
	c.Reference.applyDefaults()
	if c.Alternative != nil {
		c.Alternative.applyDefaults()
	}
	if c.Solver != nil {
		c.Solver.applyDefaults()
	}
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Output.Granularity == "" {
		c.Output.Granularity = constants.GranularityMonthly
	}
}

// Validate returns an error for configurations that cannot be simulated.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateGranularity(c.Output.Granularity); err != nil {
		return err
	}
	if err := c.Reference.validate("reference"); err != nil {
		return err
	}
	if c.Alternative != nil {
		if err := c.Alternative.validate("alternative"); err != nil {
			return err
		}
	}
	if c.Investment != nil && c.Alternative == nil {
		return fmt.Errorf("investment simulation requires an alternative loan")
	}
	if c.Solver != nil {
		if _, err := c.Solver.ToSolverConfig(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Loans: []validation.LoanConfig{c.Reference.validationInfo("reference")},
	}
	if c.Alternative != nil {
		validator.Loans = append(validator.Loans, c.Alternative.validationInfo("alternative"))
	}
	if c.Investment != nil {
		bounds := c.SolverConfig()
		validator.Growth = &validation.GrowthConfig{
			MonthlyRate: c.Investment.MonthlyGrowthRate(),
			LowerBound:  bounds.LowerBound,
			UpperBound:  bounds.UpperBound,
		}
	}
	return validator.ValidateAll()
}

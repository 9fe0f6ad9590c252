// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/npv-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for npv-calculator.
type Configuration struct {
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// DefaultsConfig holds the values the calculator starts from when the user
// has not entered anything yet.
type DefaultsConfig struct {
	DiscountRatePercent float64 `yaml:"discountRatePercent,omitempty"`
	InitialInvestment   float64 `yaml:"initialInvestment,omitempty"`
	CashFlowCount       int     `yaml:"cashFlowCount,omitempty"`
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

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing path yields the built-in defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return unmarshal(v)
}

// LoadConfigurationFromReader loads the YAML-formatted configuration from an
// in-memory source; used by tests and request-scoped config payloads.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.discountRatePercent", constants.DefaultDiscountRatePercent)
	v.SetDefault("defaults.initialInvestment", constants.DefaultInitialInvestment)
	v.SetDefault("defaults.cashFlowCount", constants.DefaultCashFlowCount)
}

func unmarshal(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration checks the loaded values and returns non-fatal
// warnings; the calculator still runs with whatever the user supplied at
// request time.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Defaults.DiscountRatePercent < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"default discount rate %.2f is negative and will be rejected by validation",
			conf.Defaults.DiscountRatePercent))
	}
	if conf.Defaults.InitialInvestment < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"default initial investment %.2f is negative and will be rejected by validation",
			conf.Defaults.InitialInvestment))
	}
	if conf.Defaults.CashFlowCount <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"default cash flow count %d is not positive; the generator will fall back to %d",
			conf.Defaults.CashFlowCount, constants.DefaultCashFlowCount))
	}

	return warnings
}

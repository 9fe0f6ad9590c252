package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/npv-calculator/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Empty path falls back to defaults",
			configPath: "",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Defaults.DiscountRatePercent != constants.DefaultDiscountRatePercent {
		t.Errorf("DiscountRatePercent = %v, expected %v",
			config.Defaults.DiscountRatePercent, constants.DefaultDiscountRatePercent)
	}
	if config.Defaults.InitialInvestment != constants.DefaultInitialInvestment {
		t.Errorf("InitialInvestment = %v, expected %v",
			config.Defaults.InitialInvestment, constants.DefaultInitialInvestment)
	}
	if config.Defaults.CashFlowCount != constants.DefaultCashFlowCount {
		t.Errorf("CashFlowCount = %v, expected %v",
			config.Defaults.CashFlowCount, constants.DefaultCashFlowCount)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yamlData := `
defaults:
  discountRatePercent: 7.5
  initialInvestment: 12000
  cashFlowCount: 8
logging:
  level: debug
  format: console
output:
  format: csv
`

	config, err := LoadConfigurationFromReader(strings.NewReader(yamlData))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Defaults.DiscountRatePercent != 7.5 {
		t.Errorf("DiscountRatePercent = %v, expected 7.5", config.Defaults.DiscountRatePercent)
	}
	if config.Defaults.InitialInvestment != 12000 {
		t.Errorf("InitialInvestment = %v, expected 12000", config.Defaults.InitialInvestment)
	}
	if config.Defaults.CashFlowCount != 8 {
		t.Errorf("CashFlowCount = %v, expected 8", config.Defaults.CashFlowCount)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", config.Logging.Level)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, expected console", config.Logging.Format)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, expected csv", config.Output.Format)
	}
}

func TestLoadConfigurationFromReaderPartial(t *testing.T) {
	// Unspecified defaults keep their built-in values.
	config, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, expected warn", config.Logging.Level)
	}
	if config.Defaults.DiscountRatePercent != constants.DefaultDiscountRatePercent {
		t.Errorf("DiscountRatePercent = %v, expected built-in default",
			config.Defaults.DiscountRatePercent)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name             string
		config           Configuration
		expectedWarnings int
	}{
		{
			name: "Sane configuration",
			config: Configuration{
				Defaults: DefaultsConfig{DiscountRatePercent: 10, InitialInvestment: 5000, CashFlowCount: 5},
			},
			expectedWarnings: 0,
		},
		{
			name: "Negative rate",
			config: Configuration{
				Defaults: DefaultsConfig{DiscountRatePercent: -1, InitialInvestment: 5000, CashFlowCount: 5},
			},
			expectedWarnings: 1,
		},
		{
			name: "Everything off",
			config: Configuration{
				Defaults: DefaultsConfig{DiscountRatePercent: -1, InitialInvestment: -1, CashFlowCount: 0},
			},
			expectedWarnings: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if len(warnings) != tt.expectedWarnings {
				t.Errorf("got %d warnings %v, expected %d", len(warnings), warnings, tt.expectedWarnings)
			}
		})
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/iwvelando/npv-calculator/internal/config"
	"github.com/iwvelando/npv-calculator/internal/logging"
	"github.com/iwvelando/npv-calculator/internal/npv"
	"github.com/iwvelando/npv-calculator/pkg/cashflow"
	"github.com/iwvelando/npv-calculator/pkg/constants"
	"github.com/iwvelando/npv-calculator/pkg/output"
	"github.com/iwvelando/npv-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	rateFlag := flag.String("rate", "", "discount rate in percent")
	investmentFlag := flag.String("investment", "", "initial investment")
	cashFlowsFlag := flag.String("cash-flows", "", "comma-separated cash flows")
	randomFlag := flag.Bool("random", false, "generate random cash flows instead of reading -cash-flows")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get defaults and logging configuration. A
	// missing file at the default location is not an error.
	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Fall back to configured defaults for anything not given on the CLI.
	rawRate := *rateFlag
	if rawRate == "" {
		rawRate = strconv.FormatFloat(conf.Defaults.DiscountRatePercent, 'f', -1, 64)
	}
	rawInvestment := *investmentFlag
	if rawInvestment == "" {
		rawInvestment = strconv.FormatFloat(conf.Defaults.InitialInvestment, 'f', -1, 64)
	}
	rawCashFlows := *cashFlowsFlag
	if *randomFlag || rawCashFlows == "" {
		flows := cashflow.Random(nil, conf.Defaults.CashFlowCount)
		rawCashFlows = cashflow.Join(flows)
		logger.Info("generated random cash flows",
			zap.String("op", "main"),
			zap.String("cashFlows", rawCashFlows),
		)
	}

	in, err := npv.ParseInput(rawRate, rawInvestment, rawCashFlows)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	result := npv.Compute(*in)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(*in, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(*in, result)
	}
}

// loadConfiguration loads the config file, tolerating an absent file at the
// default path so the CLI runs standalone.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == constants.DefaultConfigFile {
			return config.LoadConfiguration("")
		}
		return nil, err
	}
	return config.LoadConfiguration(path)
}

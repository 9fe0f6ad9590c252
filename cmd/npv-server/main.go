package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iwvelando/npv-calculator/internal/config"
	"github.com/iwvelando/npv-calculator/internal/logging"
	"github.com/iwvelando/npv-calculator/internal/server"
	"github.com/iwvelando/npv-calculator/pkg/constants"
	"go.uber.org/zap"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	// A .env file is optional; environment wins when both are set.
	_ = godotenv.Load()

	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	appConfigLocation := flag.String("config", constants.DefaultConfigFile, "path to application configuration file")
	listenOverride := flag.String("listen", "", "listen address override (e.g. :8050)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		return
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	appConf, err := loadAppConfiguration(*appConfigLocation)
	if err != nil {
		logger.Fatal("failed to load application configuration",
			zap.String("op", "main"),
			zap.String("path", *appConfigLocation),
			zap.Error(err),
		)
	}

	for _, warning := range appConf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	address := cfg.Address
	if port := os.Getenv("PORT"); port != "" {
		address = ":" + port
	}
	if *listenOverride != "" {
		address = *listenOverride
	}

	handler := server.NewHandler(logger, appConf.Defaults, cfg.BodySizeBytes(), version)

	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("npv-server listening",
		zap.String("op", "main"),
		zap.String("address", address),
		zap.String("version", version),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// loadAppConfiguration tolerates an absent file at the default path; the
// built-in form defaults apply in that case.
func loadAppConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == constants.DefaultConfigFile {
			return config.LoadConfiguration("")
		}
		return nil, err
	}
	return config.LoadConfiguration(path)
}

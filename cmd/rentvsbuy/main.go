package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lufenny/rentvsbuy/internal/config"
	"github.com/lufenny/rentvsbuy/internal/projection"
	"github.com/lufenny/rentvsbuy/internal/server"
	"github.com/lufenny/rentvsbuy/internal/sweep"
	"github.com/lufenny/rentvsbuy/pkg/constants"
	"github.com/lufenny/rentvsbuy/pkg/output"
	"github.com/lufenny/rentvsbuy/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	runSweep := flag.Bool("sweep", false, "run the configured sensitivity sweep instead of the scenario projections")
	serve := flag.Bool("serve", false, "serve the projection HTTP API")
	listen := flag.String("listen", "", "listen address override for -serve")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
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
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serve {
		serverConfig := conf.ResolvedServer()
		address := serverConfig.Address
		if *listen != "" {
			address = *listen
		}
		handler := server.NewHandler(logger, serverConfig.MaxBodySize, version)
		httpServer := &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("serving projection API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := httpServer.ListenAndServe(); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Resolve dataset averages and scenario overrides into concrete
	// assumptions per scenario.
	scenarios := conf.Resolve(logger)
	if len(scenarios) == 0 {
		logger.Fatal("no active scenarios to project",
			zap.String("op", "main"),
		)
	}

	if *runSweep {
		if len(conf.Sweep.Ranges) == 0 {
			logger.Fatal("no sweep ranges configured",
				zap.String("op", "main"),
			)
		}
		points, err := sweep.Run(logger, scenarios[0].Assumptions, conf.Sweep.Ranges)
		if err != nil {
			logger.Fatal("failed to compute sweep",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		output.SweepCsvFormat(points)
		return
	}

	// Run the projection for every active scenario.
	var results []projection.Result
	for _, scenario := range scenarios {
		result, err := projection.Run(logger, scenario.Name, scenario.Assumptions)
		if err != nil {
			logger.Fatal("failed to compute projection",
				zap.String("op", "main"),
				zap.String("scenario", scenario.Name),
				zap.Error(err),
			)
		}
		results = append(results, result)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}

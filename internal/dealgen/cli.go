package dealgen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/showdown/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "deal_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the deal generator tool.
func ShowHelp() {
	os.Stdout.WriteString(`Showdown Deal Generator
=======================

A concurrent tool for dealing random hands into the Showdown evaluation service
and verifying the showcase against a local evaluation.

Usage:
  go run cmd/deal-gen/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -hands int
        Number of hands to deal and submit (default 10000)
  -top int
        Number of top entries to fetch from the showcase (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated hands (default: generated_hands_TIMESTAMP.json)
  -log string
        Log file for run output (default: deal_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Deal with default settings
  go run cmd/deal-gen/main.go

  # Deal with custom parameters
  go run cmd/deal-gen/main.go -hands 50000 -workers 16 -url http://localhost:8080

  # Deal with verbose output
  go run cmd/deal-gen/main.go -verbose -hands 10000

  # Deal with custom log file
  go run cmd/deal-gen/main.go -hands 50000 -log my_run.log
`)
}

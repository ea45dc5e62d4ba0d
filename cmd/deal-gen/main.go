package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/showdown/internal/dealgen"
)

// Default configuration constants.
const (
	defaultNumHands   = 10000
	defaultTopN       = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numHands   = flag.Int("hands", defaultNumHands, "Number of hands to deal and submit")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from the showcase")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated hands (default: generated_hands_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: deal_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		dealgen.ShowHelp()
		return
	}

	// Setup logging
	if err := dealgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &dealgen.Config{
		BaseURL:    *baseURL,
		NumHands:   *numHands,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the deal generator
	if err := dealgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Run failed: " + err.Error() + "\n")
		return
	}
}

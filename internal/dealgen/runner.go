package dealgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/showdown/pkg/logger"
)

const (
	directoryPermission = 0750

	// processingWait gives the worker pool time to drain the queue before the
	// showcase is fetched.
	processingWait = 2 * time.Second

	percentageMultiplier = 100
)

// Run executes the complete deal generator run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting showdown deal run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("hands", config.NumHands),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate hands
	hands, err := generateHands(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("hand generation failed: %w", err)
	}

	// Step 3: Submit hands concurrently
	if err := submitHands(ctx, config, hands, stats); err != nil {
		return fmt.Errorf("hand submission failed: %w", err)
	}

	// Step 4: Wait for processing
	logger.Get().Info(ctx, "waiting for hands to be evaluated")
	time.Sleep(processingWait)

	// Step 5: Get showcase
	showcase, err := fetchShowcase(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("showcase retrieval failed: %w", err)
	}

	// Step 6: Verify results
	if err := verifyShowcase(ctx, hands, showcase); err != nil {
		return fmt.Errorf("showcase verification failed: %w", err)
	}

	// Step 7: Save hands to file
	if err := saveHandsToFile(ctx, config, hands); err != nil {
		logger.Get().Warn(ctx, "failed to save hands to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveHandsToFile saves the generated hands to a JSON file.
func saveHandsToFile(ctx context.Context, config *Config, hands []Hand) error {
	if len(hands) == 0 {
		return fmt.Errorf("no hands to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_hands_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write hands to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, h := range hands {
		jsonData, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to marshal hand %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write hand %d: %w", i, err)
		}

		// Add comma except for last hand
		if i < len(hands)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "hands saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, handsPerSecond float64

	if stats.HandsSubmitted > 0 {
		successRate = float64(stats.HandsSuccessful) / float64(stats.HandsSubmitted) * percentageMultiplier
	}

	if stats.Duration > 0 {
		handsPerSecond = float64(stats.HandsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("handsGenerated", stats.HandsGenerated),
		logger.Int("handsSubmitted", stats.HandsSubmitted),
		logger.Int("handsSuccessful", stats.HandsSuccessful),
		logger.Int("handsDuplicate", stats.HandsDuplicate),
		logger.Int("handsFailed", stats.HandsFailed),
		logger.Int("showcaseEntries", stats.ShowcaseEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("handsPerSecond", handsPerSecond))
}

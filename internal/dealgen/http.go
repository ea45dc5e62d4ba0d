package dealgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/showdown/pkg/logger"
)

// HTTP status codes the submitter distinguishes.
const (
	statusOK       = 200
	statusAccepted = 202
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitHands submits hands concurrently using a worker pool.
func submitHands(ctx context.Context, config *Config, hands []Hand, stats *Stats) error {
	logger.Get().Info(ctx, "submitting hands",
		logger.Int("count", len(hands)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/hands"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	handChan := make(chan Hand, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := range handChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result := submitSingleHand(ctx, client, url, h)

				atomic.AddInt64(&submitted, 1)
				switch result {
				case "success":
					atomic.AddInt64(&successful, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				case "failed":
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(handChan)
		for _, h := range hands {
			select {
			case <-ctx.Done():
				return
			case handChan <- h:
			}
		}
	}()

	wg.Wait()

	stats.HandsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.HandsSuccessful = int(atomic.LoadInt64(&successful))
	stats.HandsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.HandsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "hand submission completed",
		logger.Int("successful", stats.HandsSuccessful),
		logger.Int("duplicate", stats.HandsDuplicate),
		logger.Int("failed", stats.HandsFailed),
	)

	return nil
}

// submitSingleHand submits a single hand and classifies the outcome.
func submitSingleHand(ctx context.Context, client *HTTPClient, url string, h Hand) string {
	resp, err := client.Post(ctx, url, h)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case statusAccepted:
		return "success"
	case statusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}

// fetchShowcase retrieves the top-N showcase entries.
func fetchShowcase(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/showcase?limit=" + strconv.Itoa(config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch showcase: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase response: %w", err)
	}

	if resp.StatusCode != statusOK {
		return nil, fmt.Errorf("showcase request failed with status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse showcase response: %w", err)
	}

	stats.ShowcaseEntries = len(entries)
	return entries, nil
}

// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	handqueue "github.com/okian/showdown/internal/adapters/mq/queue"
	workerpool "github.com/okian/showdown/internal/adapters/mq/worker"
	repository "github.com/okian/showdown/internal/adapters/repository"
	"github.com/okian/showdown/internal/domain/card"
	"github.com/okian/showdown/internal/domain/dedupe"
	"github.com/okian/showdown/internal/domain/eval"
	"github.com/okian/showdown/internal/domain/model"
	"github.com/okian/showdown/internal/domain/types"
	"github.com/okian/showdown/pkg/logger"
	"github.com/okian/showdown/pkg/metrics"
)

// handEvaluator implements worker.Evaluator on top of the card and eval
// packages. Parsing is lenient: tokens that are not cards are dropped, and
// whatever survives is evaluated if at least five cards remain.
type handEvaluator struct{}

func (handEvaluator) Evaluate(ctx context.Context, h model.Hand) (model.Evaluation, error) {
	cards := card.ParseMany(h.Hole + " " + h.Board)

	score, err := eval.BestHand(cards)
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("hand %s: %w", h.HandID, err)
	}

	return model.Evaluation{
		HandID:      h.HandID,
		Category:    score.Category.String(),
		Strength:    eval.Packed(score),
		Description: eval.Describe(score),
		Street:      model.StreetForCards(len(cards)),
		CardsUsed:   len(cards),
	}, nil
}

// Service implements the API dependencies for the showdown system.
type Service struct {
	mu sync.RWMutex

	// Core components
	showcase   repository.Store
	deduper    dedupe.Deduper
	handQueue  handqueue.Queue
	evaluator  handEvaluator
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the hand queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   100000,
		dedupeSize:  50000,
		stopCh:      make(chan struct{}),
		logger:      nil, // set on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting showdown service...")

	s.showcase = repository.NewTreapStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.handQueue = handqueue.NewInMemoryQueue(
		handqueue.WithCapacity(s.queueSize),
		handqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.handQueue, s.evaluator, s.showcase)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "showdown service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping showdown service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if s.showcase != nil {
		if closer, ok := s.showcase.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	if q, ok := s.handQueue.(*handqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "showdown service stopped")
}

// SeenAndRecord atomically checks whether a hand id was seen and records it
// if not. Returns true if the hand was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordHandDuplicate()
	}
	return seen
}

// Unrecord removes a hand ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Submit enqueues a journaled hand for asynchronous evaluation.
// Returns false on backpressure.
func (s *Service) Submit(ctx context.Context, h model.Hand) bool {
	s.logger.Debug(ctx, "received hand",
		logger.String("handID", h.HandID),
		logger.String("hole", h.Hole),
		logger.String("board", h.Board),
	)

	ok := s.handQueue.Enqueue(ctx, h)
	if ok {
		metrics.RecordHandSubmitted()
		metrics.UpdateQueueSize(s.handQueue.Len(ctx))
	}
	return ok
}

// Evaluate synchronously evaluates the given hole and board text and returns
// the rendered evaluation. It does not touch the showcase store.
func (s *Service) Evaluate(ctx context.Context, hole, board string) (model.Evaluation, error) {
	ev, err := s.evaluator.Evaluate(ctx, model.Hand{Hole: hole, Board: board})
	if err != nil {
		return model.Evaluation{}, err
	}
	metrics.RecordEvaluation(ev.Category)
	return ev, nil
}

// Showcase returns the top N showcase entries.
func (s *Service) Showcase(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.showcase.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, entry := range entries {
		apiEntries[i] = toAPIEntry(entry)
	}

	return apiEntries, nil
}

// Best returns the showcase rank and evaluation for a given hand id.
func (s *Service) Best(ctx context.Context, handID string) (types.Entry, error) {
	entry, err := s.showcase.Best(ctx, handID)
	if err != nil {
		return types.Entry{}, err
	}

	return toAPIEntry(entry), nil
}

func toAPIEntry(entry repository.Entry) types.Entry {
	return types.Entry{
		Rank:        entry.Rank,
		HandID:      entry.HandID,
		Category:    entry.Category,
		Strength:    entry.Strength,
		Description: entry.Description,
		Street:      entry.Street,
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.handQueue.Len(ctx)
		totalHands := s.showcase.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalHands"] = totalHands

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalHands(totalHands)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Package worker defines worker contracts for asynchronous hand evaluation.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/showdown/internal/domain/eval"
	"github.com/okian/showdown/internal/domain/model"
	"github.com/okian/showdown/pkg/logger"
	"github.com/okian/showdown/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 20 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Hand abstracts what workers read off the queue.
type Hand = model.Hand

// Evaluator computes the best five-card evaluation for a journaled hand.
type Evaluator interface {
	Evaluate(ctx context.Context, h Hand) (model.Evaluation, error)
}

// Recorder persists an evaluation into the showcase store.
// It reports whether the store changed as a result.
type Recorder interface {
	Record(ctx context.Context, ev model.Evaluation) (bool, error)
}

// Queue defines how workers receive hands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Hand
}

// Worker processes hands and records evaluations using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing hands.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	recorder  Recorder
	name      string

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	handChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case h, ok := <-handChan:
			if !ok {
				// Channel closed, worker should stop.
				return
			}

			if err := w.processHand(ctx, h); err != nil {
				w.logger.Error(ctx, "error processing hand", logger.Error(err))
			}
		}
	}
}

// signalShutdown closes the shutdown channel exactly once, so the pool and
// a direct Shutdown call can both signal the same worker.
func (w *InMemoryWorker) signalShutdown() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.signalShutdown()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processHand evaluates a single hand and records the result.
func (w *InMemoryWorker) processHand(ctx context.Context, h Hand) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	evalStart := time.Now()
	evaluation, err := w.evaluator.Evaluate(ctx, h)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))

	if err != nil {
		if errors.Is(err, eval.ErrInsufficientCards) {
			// Journal text that never reaches five cards is not a fault;
			// count it and move on.
			metrics.RecordHandDropped()
			w.logger.Warn(ctx, "hand dropped, fewer than five cards",
				logger.String("handID", h.HandID),
			)
			return nil
		}
		metrics.RecordEvaluationError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "evaluation_error")
		metrics.RecordErrorByType("evaluation_error", "high")
		w.logger.Error(ctx, "evaluation failed for hand",
			logger.String("handID", h.HandID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to evaluate hand %s: %w", h.HandID, err)
	}

	metrics.RecordEvaluation(evaluation.Category)

	updated, err := w.recorder.Record(ctx, evaluation)
	if err != nil {
		metrics.RecordShowcaseError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "showcase_error")
		metrics.RecordErrorByType("showcase_error", "high")
		w.logger.Error(ctx, "showcase update failed for hand",
			logger.String("handID", h.HandID),
			logger.Error(err),
		)
		return fmt.Errorf("showcase update failed: %w", err)
	}

	if updated {
		metrics.RecordShowcaseUpdate()
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	evaluator Evaluator
	recorder  Recorder

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Metrics tracking
	processedCount    int64
	lastProcessedTime time.Time

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:           make([]*InMemoryWorker, workerCount),
		queue:             queue,
		evaluator:         evaluator,
		recorder:          recorder,
		shutdown:          make(chan struct{}),
		done:              make(chan struct{}),
		lastProcessedTime: time.Now(),
		logger:            logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			evaluator,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)
	metrics.UpdateWorkerIdleCount(0)
	metrics.UpdateWorkerMessagesPerSecond(0.0)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}

	go p.startMetricsUpdater(ctx)
}

// startMetricsUpdater periodically refreshes worker throughput metrics.
func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.updateMetrics()
		}
	}
}

func (p *Pool) updateMetrics() {
	now := time.Now()
	timeDiff := now.Sub(p.lastProcessedTime).Seconds()
	if timeDiff > 0 {
		metrics.UpdateWorkerMessagesPerSecond(float64(p.processedCount) / timeDiff)
	}

	p.processedCount = 0
	p.lastProcessedTime = now
}

// RecordProcessedMessage increments the processed message count.
func (p *Pool) RecordProcessedMessage() {
	p.processedCount++
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		worker.signalShutdown()
	}

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new hands arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}

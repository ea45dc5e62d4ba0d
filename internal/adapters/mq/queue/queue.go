// Package queue defines the contract for buffering journaled hands between
// the HTTP surface and the evaluation workers.
//
// The in-memory bounded queue is the only implementation for now; the
// interface keeps the door open for a broker-backed one.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/showdown/internal/domain/model"
	"github.com/okian/showdown/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 100000
	defaultBufferSize    = 100000
)

// Hand is the payload type flowing through the queue.
type Hand = model.Hand

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a hand to the queue.
	// Returns false if the queue is full and the hand was not enqueued.
	Enqueue(ctx context.Context, h Hand) bool

	// Dequeue returns a channel that will receive hands as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Hand

	// Len returns the current number of queued hands.
	Len(ctx context.Context) int

	// Close shuts down the queue. After closing, no new hands can be
	// enqueued and the dequeue channel is closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	hands      chan Hand
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.hands = make(chan Hand, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a hand to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, h Hand) bool {
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	if len(q.hands) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "capacity_exceeded")
		return false
	}

	select {
	case q.hands <- h:
		metrics.RecordQueueEnqueue()
		currentSize := len(q.hands)
		metrics.UpdateQueueSize(currentSize)
		metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive hands as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Hand {
	// Wrap the channel so dequeues are counted.
	out := make(chan Hand)
	go func() {
		defer close(out)
		for h := range q.hands {
			select {
			case out <- h:
				metrics.RecordQueueDequeue()
				currentSize := len(q.hands)
				metrics.UpdateQueueSize(currentSize)
				metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued hands.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.hands)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.hands)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/showdown/internal/domain/model"
)

func sampleHand(id string) model.Hand {
	return model.Hand{
		HandID: id,
		Hole:   "As Kd",
		Board:  "Qh Jc Ts",
		TS:     time.Now(),
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, sampleHand("hand-1")) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	handChan := q.Dequeue(ctx)
	h := <-handChan
	if h.HandID != "hand-1" {
		t.Errorf("expected hand-1, got %v", h.HandID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, sampleHand("hand-1")) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, sampleHand("hand-2")) {
		t.Error("expected enqueue to succeed")
	}

	// Full queue rejects without blocking.
	if q.Enqueue(ctx, sampleHand("hand-3")) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	if q.IsClosed() {
		t.Error("new queue should not be closed")
	}

	if !q.Enqueue(ctx, sampleHand("hand-1")) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("queue should report closed")
	}
	if err := q.Close(); err != nil {
		t.Errorf("double close should be a no-op, got %v", err)
	}

	if q.Enqueue(ctx, sampleHand("hand-2")) {
		t.Error("enqueue after close should fail")
	}

	// Buffered hands drain, then the channel closes.
	handChan := q.Dequeue(ctx)
	h, ok := <-handChan
	if !ok || h.HandID != "hand-1" {
		t.Errorf("expected buffered hand-1, got %v (ok=%v)", h.HandID, ok)
	}
	if _, ok := <-handChan; ok {
		t.Error("dequeue channel should be closed after drain")
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				id := fmt.Sprintf("hand-%d-%d", p, i)
				if !q.Enqueue(ctx, sampleHand(id)) {
					t.Errorf("enqueue of %s failed", id)
				}
			}
		}(p)
	}
	wg.Wait()

	if l := q.Len(ctx); l != producers*perProducer {
		t.Errorf("expected length %d, got %d", producers*perProducer, l)
	}

	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	seen := 0
	for range q.Dequeue(ctx) {
		seen++
	}
	if seen != producers*perProducer {
		t.Errorf("expected to drain %d hands, got %d", producers*perProducer, seen)
	}
}

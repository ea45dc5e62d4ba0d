package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/okian/showdown/internal/domain/model"
)

func evaluation(handID string, strength uint32, category string) model.Evaluation {
	return model.Evaluation{
		HandID:      handID,
		Category:    category,
		Strength:    strength,
		Description: category,
		Street:      model.StreetRiver,
		CardsUsed:   7,
	}
}

func TestTreapStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	updated, err := store.Record(ctx, evaluation("hand-1", 1000, "Pair"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected record to succeed")
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	entry, err := store.Best(ctx, "hand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("expected rank 1, got %d", entry.Rank)
	}
	if entry.Strength != 1000 {
		t.Errorf("expected strength 1000, got %d", entry.Strength)
	}
	if entry.Category != "Pair" {
		t.Errorf("expected category Pair, got %s", entry.Category)
	}

	entries, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestTreapStore_KeepsStrongestEvaluation(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	if updated, _ := store.Record(ctx, evaluation("hand-1", 500, "Pair")); !updated {
		t.Error("first record should update")
	}

	// Weaker or equal evaluations do not displace the stored one.
	if updated, _ := store.Record(ctx, evaluation("hand-1", 400, "High Card")); updated {
		t.Error("weaker record should not update")
	}
	if updated, _ := store.Record(ctx, evaluation("hand-1", 500, "Pair")); updated {
		t.Error("equal record should not update")
	}

	if updated, _ := store.Record(ctx, evaluation("hand-1", 900, "Trips")); !updated {
		t.Error("stronger record should update")
	}

	entry, err := store.Best(ctx, "hand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Strength != 900 || entry.Category != "Trips" {
		t.Errorf("expected strength 900/Trips, got %d/%s", entry.Strength, entry.Category)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestTreapStore_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for _, tc := range []struct {
		id       string
		strength uint32
	}{
		{"hand-c", 300},
		{"hand-a", 100},
		{"hand-e", 500},
		{"hand-b", 200},
		{"hand-d", 400},
	} {
		if _, err := store.Record(ctx, evaluation(tc.id, tc.strength, "High Card")); err != nil {
			t.Fatalf("record %s: %v", tc.id, err)
		}
	}

	entries, err := store.TopN(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hand-e", "hand-d", "hand-c"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].HandID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, entries[i].HandID)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, entries[i].Rank)
		}
	}
}

func TestTreapStore_TiesShareRankAndSortByID(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	// Equal strengths order by hand ID ascending and share a rank.
	for _, id := range []string{"hand-b", "hand-a", "hand-c"} {
		if _, err := store.Record(ctx, evaluation(id, 777, "Flush")); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	if _, err := store.Record(ctx, evaluation("hand-z", 999, "Quads")); err != nil {
		t.Fatalf("record hand-z: %v", err)
	}

	entries, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIDs := []string{"hand-z", "hand-a", "hand-b", "hand-c"}
	wantRanks := []int{1, 2, 2, 2}
	for i := range wantIDs {
		if entries[i].HandID != wantIDs[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantIDs[i], entries[i].HandID)
		}
		if entries[i].Rank != wantRanks[i] {
			t.Errorf("position %d: expected rank %d, got %d", i, wantRanks[i], entries[i].Rank)
		}
	}
}

func TestTreapStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	_, err := store.Best(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTreapStore_InvalidLimit(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	for _, n := range []int{0, -1} {
		if _, err := store.TopN(ctx, n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("TopN(%d): expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestTreapStore_PeriodicSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx, WithSnapshotInterval(10*time.Millisecond), WithTopCacheSize(2))
	defer store.Close()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("hand-%d", i)
		if _, err := store.Record(ctx, evaluation(id, uint32(100*(i+1)), "Straight")); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	deadline := time.Now().Add(time.Second)
	var snap *Snapshot
	for time.Now().Before(deadline) {
		snap = store.snapshot.Load()
		if snap != nil && len(snap.TopCache) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if snap == nil {
		t.Fatal("no snapshot published")
	}
	if len(snap.TopCache) != 2 {
		t.Fatalf("expected top cache of 2, got %d", len(snap.TopCache))
	}
	if snap.TopCache[0].HandID != "hand-4" {
		t.Errorf("expected hand-4 at the top, got %s", snap.TopCache[0].HandID)
	}
	if snap.RankByHand["hand-0"] != 5 {
		t.Errorf("expected hand-0 at rank 5, got %d", snap.RankByHand["hand-0"])
	}
}

func TestTreapStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	const writers = 8
	const perWriter = 100

	rng := rand.New(rand.NewSource(7))
	strengths := make([]uint32, writers*perWriter)
	for i := range strengths {
		strengths[i] = uint32(rng.Intn(1 << 24))
	}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("hand-%d-%d", w, i)
				if _, err := store.Record(ctx, evaluation(id, strengths[w*perWriter+i], "Pair")); err != nil {
					t.Errorf("record %s: %v", id, err)
				}
				if i%10 == 0 {
					if _, err := store.TopN(ctx, 10); err != nil {
						t.Errorf("topn: %v", err)
					}
				}
			}
		}(w)
	}
	wg.Wait()

	if count := store.Count(ctx); count != writers*perWriter {
		t.Errorf("expected count %d, got %d", writers*perWriter, count)
	}

	// TopN must come back strictly ordered.
	entries, err := store.TopN(ctx, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Strength > entries[i-1].Strength {
			t.Errorf("entries out of order at %d: %d > %d", i, entries[i].Strength, entries[i-1].Strength)
		}
	}
}

package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
)

func seedStore(b *testing.B, store *TreapStore, n int) {
	b.Helper()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("hand-%d", i)
		if _, err := store.Record(ctx, evaluation(id, uint32(rng.Intn(1<<24)), "Pair")); err != nil {
			b.Fatalf("seed record: %v", err)
		}
	}
}

func BenchmarkTreapStoreRecord(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()

	rng := rand.New(rand.NewSource(2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("hand-%d", i)
		if _, err := store.Record(ctx, evaluation(id, uint32(rng.Intn(1<<24)), "Pair")); err != nil {
			b.Fatalf("record: %v", err)
		}
	}
}

func BenchmarkTreapStoreTopN(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()
	seedStore(b, store, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.TopN(ctx, 100); err != nil {
			b.Fatalf("topn: %v", err)
		}
	}
}

func BenchmarkTreapStoreBest(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(ctx)
	defer store.Close()
	seedStore(b, store, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("hand-%d", i%10000)
		if _, err := store.Best(ctx, id); err != nil {
			b.Fatalf("best: %v", err)
		}
	}
}

// Package repository defines the showcase store interface and errors.
package repository

import (
	"context"

	"github.com/okian/showdown/internal/domain/model"
)

// Entry represents a showcase row.
type Entry struct {
	Rank        int
	HandID      string
	Strength    uint32
	Category    string
	Description string
	Street      string
	CardsUsed   int
}

// Store provides read/write access to the evaluated-hand state.
type Store interface {
	// Record stores an evaluation for a hand. A hand seen before keeps
	// its strongest evaluation. Returns true if the store changed.
	Record(ctx context.Context, ev model.Evaluation) (bool, error)

	// Best returns the current showcase rank and evaluation for a hand.
	// Returns ErrNotFound if the hand is unknown.
	Best(ctx context.Context, handID string) (Entry, error)

	// TopN returns the top-N entries ordered by strength desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of hands tracked in the showcase.
	Count(ctx context.Context) int
}

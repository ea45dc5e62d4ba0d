// Package model contains domain models passed between layers.
package model

import "time"

// Street names for how far a board ran out.
const (
	StreetPreflop = "preflop"
	StreetFlop    = "flop"
	StreetTurn    = "turn"
	StreetRiver   = "river"
)

// Hand is a journaled hand submitted for evaluation. Hole and Board carry
// raw card tokens exactly as journaled; parsing happens at the worker.
type Hand struct {
	HandID string    // unique id for idempotency
	Hole   string    // hero's two hole-card tokens
	Board  string    // zero to five community-card tokens
	TS     time.Time // when the hand was journaled
}

// Evaluation is the classified result for a hand's furthest street.
type Evaluation struct {
	HandID      string
	Category    string // display name, e.g. "Full House"
	Strength    uint32 // order-preserving packed score
	Description string // e.g. "Full House, 7s full of 2s"
	Street      string // street implied by how many cards parsed
	CardsUsed   int    // total cards that survived parsing
}

// StreetForCards maps the number of parsed cards (hole + board) to the
// street it implies. Anything below five cannot be evaluated.
func StreetForCards(n int) string {
	switch {
	case n >= 7:
		return StreetRiver
	case n == 6:
		return StreetTurn
	case n == 5:
		return StreetFlop
	default:
		return StreetPreflop
	}
}

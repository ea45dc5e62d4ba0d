// Package card defines playing-card value types and token parsing.
//
// Cards arrive as free-form journal tokens ("Kh", "K♥", "10d", sometimes a
// bare "K" when the suit was never recorded), so the types here keep an
// explicit Unknown suit instead of rejecting suitless input.
package card

import "strconv"

// Rank is a card rank, 2 through 14 with Ace high.
type Rank int

// Rank constants. Ten is the canonical form of the "10" token alias.
const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the canonical single-character token for the rank.
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	case Ten:
		return "T"
	default:
		if r >= Two && r <= Nine {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Name returns the display name used in hand descriptions: Ace, King,
// Queen, Jack, Ten, then numerals.
func (r Rank) Name() string {
	switch r {
	case Ace:
		return "Ace"
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Jack:
		return "Jack"
	case Ten:
		return "Ten"
	default:
		if r >= Two && r <= Nine {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Valid reports whether r is inside the playing range.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Suit is one of the four French suits, or Unknown when the journal token
// carried no recognizable suit marker. Unknown never counts toward a flush.
type Suit int

// Suit constants. Unknown is the zero value on purpose.
const (
	Unknown Suit = iota
	Spade
	Heart
	Diamond
	Club
)

// String returns the canonical lowercase suit letter, or "" for Unknown.
func (s Suit) String() string {
	switch s {
	case Spade:
		return "s"
	case Heart:
		return "h"
	case Diamond:
		return "d"
	case Club:
		return "c"
	default:
		return ""
	}
}

// Card is an immutable rank/suit pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the canonical token, e.g. "Kh", or "K" for unknown suit.
// Parse round-trips every card produced by String.
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

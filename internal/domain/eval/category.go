// Package eval classifies and ranks poker hands.
//
// Everything in this package is a pure function over value types: no state,
// no I/O, safe to call from any number of goroutines.
package eval

// Category is the hand class, ordered ascending by strength.
type Category int

// Category constants, weakest first.
const (
	HighCard Category = iota
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

// String returns the display name for the category.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case Trips:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case Quads:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

package eval

import (
	"strings"

	"github.com/okian/showdown/internal/domain/card"
)

// Describe renders a score as a human-readable label, e.g.
// "Two Pair, Aces and Kings, kicker Queen". It is total: every score a
// classifier can produce has a description.
func Describe(s Score) string {
	tb := func(i int) card.Rank {
		if i < len(s.Tiebreak) {
			return s.Tiebreak[i]
		}
		return 0
	}

	switch s.Category {
	case StraightFlush:
		return "Straight Flush, " + tb(0).Name() + "-high"
	case Quads:
		return "Four of a Kind, " + plural(tb(0)) + ", kicker " + tb(1).Name()
	case FullHouse:
		return "Full House, " + plural(tb(0)) + " full of " + plural(tb(1))
	case Flush:
		return "Flush, " + tb(0).Name() + "-high"
	case Straight:
		return "Straight, " + tb(0).Name() + "-high"
	case Trips:
		return "Three of a Kind, " + plural(tb(0)) + kickers(s.Tiebreak[1:])
	case TwoPair:
		return "Two Pair, " + plural(tb(0)) + " and " + plural(tb(1)) + kickers(s.Tiebreak[2:])
	case Pair:
		return "Pair of " + plural(tb(0)) + kickers(s.Tiebreak[1:])
	default:
		return "High Card, " + tb(0).Name() + "-high"
	}
}

// plural returns the plural display name for a rank ("Aces", "9s").
func plural(r card.Rank) string {
	return r.Name() + "s"
}

// kickers renders ", kicker X" or ", kickers X and Y" for the trailing
// tiebreak ranks, or "" when there are none.
func kickers(ranks []card.Rank) string {
	if len(ranks) == 0 {
		return ""
	}
	names := make([]string, len(ranks))
	for i, r := range ranks {
		names[i] = r.Name()
	}
	if len(names) == 1 {
		return ", kicker " + names[0]
	}
	return ", kickers " + strings.Join(names, ", ")
}

package eval

import (
	"fmt"

	"github.com/okian/showdown/internal/domain/card"
)

// handSize is the number of cards in a scored poker hand.
const handSize = 5

// BestHand returns the strongest five-card score obtainable from the given
// cards (hole plus however much board has been dealt: 5, 6, or 7 in play,
// though any n >= 5 works). Fewer than five cards fail with
// ErrInsufficientCards. When distinct subsets tie, the first in
// lexicographic source order wins; callers may rely on score equality only.
func BestHand(cards []card.Card) (Score, error) {
	if len(cards) < handSize {
		return Score{}, fmt.Errorf("%w: got %d", ErrInsufficientCards, len(cards))
	}

	var (
		best  Score
		first = true
	)
	for _, subset := range Combinations(cards, handSize) {
		var five [5]card.Card
		copy(five[:], subset)
		s := Evaluate5(five)
		if first || Compare(s, best) > 0 {
			best = s
			first = false
		}
	}
	return best, nil
}

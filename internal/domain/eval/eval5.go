package eval

import (
	"sort"

	"github.com/okian/showdown/internal/domain/card"
)

// rankGroup is a rank and how many times it appears in the hand.
type rankGroup struct {
	rank  card.Rank
	count int
}

// Evaluate5 classifies exactly five cards into a Score.
func Evaluate5(cards [5]card.Card) Score {
	ranks := make([]card.Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	var src [5]card.Rank
	copy(src[:], ranks)

	flush := isFlush(cards)
	straightHigh := straightHigh(ranks)
	groups := groupRanks(ranks)

	score := Score{SourceRanks: src}
	switch {
	case flush && straightHigh > 0:
		score.Category = StraightFlush
		score.Tiebreak = []card.Rank{straightHigh}
	case groups[0].count == 4:
		score.Category = Quads
		score.Tiebreak = []card.Rank{groups[0].rank, groups[1].rank}
	case groups[0].count == 3 && groups[1].count >= 2:
		score.Category = FullHouse
		score.Tiebreak = []card.Rank{groups[0].rank, groups[1].rank}
	case flush:
		score.Category = Flush
		score.Tiebreak = ranks
	case straightHigh > 0:
		score.Category = Straight
		score.Tiebreak = []card.Rank{straightHigh}
	case groups[0].count == 3:
		score.Category = Trips
		score.Tiebreak = []card.Rank{groups[0].rank, groups[1].rank, groups[2].rank}
	case groups[0].count == 2 && groups[1].count == 2:
		score.Category = TwoPair
		score.Tiebreak = []card.Rank{groups[0].rank, groups[1].rank, groups[2].rank}
	case groups[0].count == 2:
		score.Category = Pair
		score.Tiebreak = []card.Rank{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}
	default:
		score.Category = HighCard
		score.Tiebreak = ranks
	}
	return score
}

// isFlush is true only when all five cards carry the same known suit.
// An Unknown suit can suppress a flush but never assert one.
func isFlush(cards [5]card.Card) bool {
	first := cards[0].Suit
	if first == card.Unknown {
		return false
	}
	for _, c := range cards[1:] {
		if c.Suit != first {
			return false
		}
	}
	return true
}

// straightHigh returns the top rank of the highest run of five consecutive
// unique ranks, or 0 when no straight exists. The Ace counts both high and
// low, so A-2-3-4-5 is a straight with high rank Five.
func straightHigh(ranks []card.Rank) card.Rank {
	var present [16]bool // index 1..14
	for _, r := range ranks {
		present[r] = true
	}
	present[1] = present[card.Ace] // wheel

	for high := card.Ace; high >= card.Five; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	return 0
}

// groupRanks buckets the sorted ranks by multiplicity, ordered by count
// descending then rank descending. The input must already be sorted
// descending.
func groupRanks(ranks []card.Rank) []rankGroup {
	var groups []rankGroup
	for _, r := range ranks {
		if len(groups) > 0 && groups[len(groups)-1].rank == r {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, rankGroup{rank: r, count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

package eval

import "github.com/okian/showdown/internal/domain/card"

// Score is the comparable result of classifying exactly five cards.
// Tiebreak length and meaning are category-specific (a straight carries
// only its high rank, a flush all five ranks descending, and so on).
// SourceRanks records the five evaluated ranks descending; it exists for
// description and debugging only and never participates in comparison.
type Score struct {
	Category    Category
	Tiebreak    []card.Rank
	SourceRanks [5]card.Rank
}

// Compare orders two scores: negative if a < b, positive if a > b, zero on
// a true tie. Category decides first; equal categories fall through to
// element-wise tiebreak comparison with missing trailing elements read as
// zero. The result is a strict total order up to ties, independent of
// SourceRanks.
func Compare(a, b Score) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	n := len(a.Tiebreak)
	if len(b.Tiebreak) > n {
		n = len(b.Tiebreak)
	}
	for i := 0; i < n; i++ {
		var av, bv card.Rank
		if i < len(a.Tiebreak) {
			av = a.Tiebreak[i]
		}
		if i < len(b.Tiebreak) {
			bv = b.Tiebreak[i]
		}
		if av != bv {
			return int(av) - int(bv)
		}
	}
	return 0
}

// Packed folds a score into a uint32 whose integer order matches Compare:
// four bits of category followed by five four-bit tiebreak ranks (ranks top
// out at 14, so each fits a nibble). Repositories can rank hands with plain
// integer comparison.
func Packed(s Score) uint32 {
	p := uint32(s.Category) << 20
	for i := 0; i < 5; i++ {
		var r card.Rank
		if i < len(s.Tiebreak) {
			r = s.Tiebreak[i]
		}
		p |= uint32(r&0xf) << (16 - 4*i)
	}
	return p
}

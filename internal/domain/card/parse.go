package card

import (
	"fmt"
	"strings"
)

// rankTokens maps uppercase rank symbols to ranks. "10" is handled before
// this table because it is the only two-character symbol.
var rankTokens = map[byte]Rank{
	'A': Ace,
	'K': King,
	'Q': Queen,
	'J': Jack,
	'T': Ten,
	'9': Nine,
	'8': Eight,
	'7': Seven,
	'6': Six,
	'5': Five,
	'4': Four,
	'3': Three,
	'2': Two,
}

// suitMarks maps suit letters and Unicode glyphs to suits.
var suitMarks = map[rune]Suit{
	's': Spade, 'S': Spade, '♠': Spade,
	'h': Heart, 'H': Heart, '♥': Heart,
	'd': Diamond, 'D': Diamond, '♦': Diamond,
	'c': Club, 'C': Club, '♣': Club,
}

// Parse converts a single token into a Card. The rank symbol is mandatory
// and matched case-insensitively; "10" is accepted as an alias for "T".
// A suit marker (s/h/d/c or a suit glyph) is optional: a token without one
// parses successfully with Suit Unknown. A token without a rank fails with
// ErrInvalidToken.
func Parse(token string) (Card, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Card{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	var (
		rank Rank
		rest string
	)
	switch {
	case strings.HasPrefix(t, "10"):
		rank = Ten
		rest = t[2:]
	default:
		r, ok := rankTokens[upperByte(t[0])]
		if !ok {
			return Card{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
		}
		rank = r
		rest = t[1:]
	}

	suit := Unknown
	for _, r := range rest {
		if s, ok := suitMarks[r]; ok {
			suit = s
		}
		// Only the first rune after the rank can be a marker.
		break
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseMany extracts every parsable card from free-form text. The text is
// split on whitespace, commas, pipes, and slashes; tokens that fail the
// strict parse are silently dropped. Journal input routinely mixes card
// tokens with narrative prose, so batch mode never reports partial failure.
func ParseMany(text string) []Card {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', '|', '/':
			return true
		}
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// MustParse parses a token or panics. Test helper.
func MustParse(token string) Card {
	c, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return c
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

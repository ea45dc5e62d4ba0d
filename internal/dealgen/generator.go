package dealgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/showdown/internal/domain/card"
	"github.com/okian/showdown/pkg/logger"
)

// Board size by street.
const (
	flopBoardSize  = 3
	turnBoardSize  = 4
	riverBoardSize = 5
	holeSize       = 2
	streetDivisor  = 3
)

// fullDeck returns all 52 cards.
func fullDeck() []card.Card {
	deck := make([]card.Card, 0, 52)
	for r := card.Two; r <= card.Ace; r++ {
		for _, s := range []card.Suit{card.Spade, card.Heart, card.Diamond, card.Club} {
			deck = append(deck, card.Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// randInt returns a uniform random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// shuffle performs a Fisher-Yates shuffle in place.
func shuffle(deck []card.Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := randInt(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// generateHands creates the specified number of random hands.
func generateHands(ctx context.Context, config *Config, stats *Stats) ([]Hand, error) {
	logger.Get().Info(ctx, "generating hands", logger.Int("numHands", config.NumHands))

	hands := make([]Hand, config.NumHands)
	for i := range hands {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during hand generation: %w", ctx.Err())
		default:
		}
		hands[i] = generateSingleHand()
	}

	stats.HandsGenerated = len(hands)
	logger.Get().Info(ctx, "generated hands successfully", logger.Int("count", len(hands)))

	return hands, nil
}

// generateSingleHand deals a fresh shuffled deck into hole cards and a board
// at a random street.
func generateSingleHand() Hand {
	deck := fullDeck()
	shuffle(deck)

	boardSize := flopBoardSize
	switch randInt(streetDivisor) {
	case 1:
		boardSize = turnBoardSize
	case 2:
		boardSize = riverBoardSize
	}

	return Hand{
		HandID: uuid.New().String(),
		Hole:   tokens(deck[:holeSize]),
		Board:  tokens(deck[holeSize : holeSize+boardSize]),
		TS:     time.Now().UTC().Format(time.RFC3339),
	}
}

func tokens(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

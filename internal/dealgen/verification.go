package dealgen

import (
	"context"
	"fmt"

	"github.com/okian/showdown/internal/domain/card"
	"github.com/okian/showdown/internal/domain/eval"
	"github.com/okian/showdown/pkg/logger"
)

// verifyShowcase checks the service's showcase against a local evaluation of
// the same hands.
func verifyShowcase(ctx context.Context, hands []Hand, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("empty showcase")
	}

	// Showcase must be ordered strongest first.
	for i := 1; i < len(entries); i++ {
		if entries[i].Strength > entries[i-1].Strength {
			return fmt.Errorf("showcase not ordered: entry %d is stronger than entry %d", i, i-1)
		}
	}

	// Evaluate every generated hand locally and index by id.
	expected := make(map[string]uint32, len(hands))
	var bestID string
	var bestStrength uint32
	for _, h := range hands {
		cards := card.ParseMany(h.Hole + " " + h.Board)
		score, err := eval.BestHand(cards)
		if err != nil {
			continue
		}
		strength := eval.Packed(score)
		expected[h.HandID] = strength
		if strength > bestStrength || bestID == "" {
			bestID = h.HandID
			bestStrength = strength
		}
	}

	// Every showcase entry we generated must carry the strength we computed.
	for _, entry := range entries {
		want, ok := expected[entry.HandID]
		if !ok {
			continue // submitted by someone else
		}
		if entry.Strength != want {
			return fmt.Errorf("hand %s: showcase strength %d does not match local evaluation %d",
				entry.HandID, entry.Strength, want)
		}
	}

	// The top entry should be at least as strong as our local best.
	if entries[0].Strength < bestStrength {
		return fmt.Errorf("top showcase entry (%d) is weaker than local best %s (%d)",
			entries[0].Strength, bestID, bestStrength)
	}

	logger.Get().Info(ctx, "showcase verified",
		logger.Int("entries", len(entries)),
		logger.String("topHand", entries[0].HandID),
		logger.String("topDescription", entries[0].Description),
	)
	return nil
}

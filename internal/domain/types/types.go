// Package types contains common types used across the application
package types

// Entry represents a showcase row: a journaled hand ranked by the strength
// of its best five-card hand.
type Entry struct {
	Rank        int    `json:"rank"`
	HandID      string `json:"hand_id"`
	Category    string `json:"category"`
	Strength    uint32 `json:"strength"`
	Description string `json:"description"`
	Street      string `json:"street"`
}

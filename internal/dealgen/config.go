// Package dealgen generates random journaled hands and drives them through a
// running showdown service, then checks the showcase against a local
// evaluation of the same hands.
package dealgen

import "time"

// Config holds configuration for the deal generator run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumHands   int           // Number of hands to generate
	TopN       int           // Number of showcase entries to fetch
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated hands
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Hand mirrors the POST /hands request schema.
type Hand struct {
	HandID string `json:"hand_id"`
	Hole   string `json:"hole"`
	Board  string `json:"board"`
	TS     string `json:"ts"`
}

// Entry mirrors a showcase entry.
type Entry struct {
	Rank        int    `json:"rank"`
	HandID      string `json:"hand_id"`
	Category    string `json:"category"`
	Strength    uint32 `json:"strength"`
	Description string `json:"description"`
	Street      string `json:"street"`
}

// AckResponse mirrors the response from hand submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	HandsGenerated  int
	HandsSubmitted  int
	HandsSuccessful int
	HandsDuplicate  int
	HandsFailed     int
	ShowcaseEntries int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

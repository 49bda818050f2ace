// Package evidence extracts tagged, turn-grounded behavioral events from a
// parsed transcript.
package evidence

import (
	"context"

	"github.com/spigell/practice-evaluator/internal/transcript"
)

// Event is one observable behavior grounded in transcript turns.
type Event struct {
	EventType      string `json:"event_type" mapstructure:"event_type"`
	Category       string `json:"category" mapstructure:"category"`
	TurnIDs        []int  `json:"turn_ids" mapstructure:"turn_ids"`
	Quote          string `json:"quote" mapstructure:"quote"`
	ContextSummary string `json:"context_summary" mapstructure:"context_summary"`
}

// Set is the extractor output.
type Set struct {
	Events        []Event        `json:"events"`
	SummaryCounts map[string]int `json:"summary_counts"`
}

// Extractor produces an evidence set from a parsed transcript.
type Extractor interface {
	Extract(ctx context.Context, doc transcript.Document) (*Set, error)
	Name() string
}

// Package rubric scores a session against the variant's fixed rubric and
// normalizes the result to the canonical 0-10 scale.
package rubric

import (
	"context"
	"strings"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// Item is one scored metric, or the red-flag summary.
type Item struct {
	Category string  `json:"category"`
	Metric   string  `json:"metric"`
	Score    float64 `json:"score"`
	Comments string  `json:"comments"`
}

// Scale tells the normalizer how to read Item.Score.
type Scale int

const (
	// ScaleModel is the prompt scale, 0.0 to 2.0.
	ScaleModel Scale = iota
	// ScaleCanonical is already 0 to 10.
	ScaleCanonical
)

// Pathway describes the career path the session practices for.
type Pathway struct {
	Role       string `json:"role,omitempty" mapstructure:"role"`
	Domain     string `json:"domain,omitempty" mapstructure:"domain"`
	Aspiration string `json:"aspiration,omitempty" mapstructure:"aspiration"`
}

// Hints is optional caller context.
type Hints struct {
	Company   string   `json:"company,omitempty"`
	JobRole   string   `json:"jobRole,omitempty"`
	FocusRole string   `json:"focusRole,omitempty"`
	Pathway   *Pathway `json:"pathway,omitempty"`
}

// Label is the single role label the heuristic path uses.
func (h Hints) Label() string {
	for _, s := range []string{h.FocusRole, h.JobRole} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	if h.Pathway != nil {
		return strings.TrimSpace(h.Pathway.Role)
	}
	return ""
}

// Input is everything a scorer may look at.
type Input struct {
	Transcript transcript.Document
	Evidence   *evidence.Set
	Hints      Hints
}

// Result holds scorer output before normalization.
type Result struct {
	Items []Item
	Scale Scale
}

// Scorer produces the complete ordered item list for a session.
type Scorer interface {
	Score(ctx context.Context, in Input) (*Result, error)
	Name() string
}

package evidence

import (
	"context"
	"fmt"

	"github.com/spigell/practice-evaluator/internal/transcript"
	"github.com/spigell/practice-evaluator/internal/utils"
)

const (
	// SamplingCategory is the category of every heuristic event.
	SamplingCategory = "Turn Sampling"

	EventCandidateTurn    = "CANDIDATE_TURN"
	EventInterviewerTurn  = "INTERVIEWER_TURN"
	EventUnclassifiedTurn = "UNCLASSIFIED_TURN"

	CountTotalTurns       = "total_turns"
	CountCandidateTurns   = "candidate_turns"
	CountInterviewerTurns = "interviewer_turns"

	DefaultSampledTurns = 8

	summaryQuoteLimit = 80
)

// HeuristicExtractor tags the leading turns by speaker role. It performs no
// semantic analysis and never fails.
type HeuristicExtractor struct {
	roles      transcript.Roles
	maxSampled int
}

func NewHeuristicExtractor(roles transcript.Roles, maxSampled int) *HeuristicExtractor {
	if maxSampled <= 0 {
		maxSampled = DefaultSampledTurns
	}
	return &HeuristicExtractor{roles: roles, maxSampled: maxSampled}
}

func (e *HeuristicExtractor) Name() string {
	return "heuristic"
}

func (e *HeuristicExtractor) Extract(_ context.Context, doc transcript.Document) (*Set, error) {
	turns := doc.Turns
	sampled := turns
	if len(sampled) > e.maxSampled {
		sampled = sampled[:e.maxSampled]
	}

	events := make([]Event, 0, len(sampled))
	for _, t := range sampled {
		role := e.roles.Classify(t.Speaker)
		events = append(events, Event{
			EventType:      eventTypeFor(role),
			Category:       SamplingCategory,
			TurnIDs:        []int{t.Number},
			Quote:          t.Text,
			ContextSummary: summarize(t, role),
		})
	}

	counts := e.roles.Count(turns)

	return &Set{
		Events: events,
		SummaryCounts: map[string]int{
			CountTotalTurns:       len(turns),
			CountCandidateTurns:   counts[transcript.RolePrimary],
			CountInterviewerTurns: counts[transcript.RoleCounterpart],
		},
	}, nil
}

func eventTypeFor(role transcript.Role) string {
	switch role {
	case transcript.RolePrimary:
		return EventCandidateTurn
	case transcript.RoleCounterpart:
		return EventInterviewerTurn
	default:
		return EventUnclassifiedTurn
	}
}

func summarize(t transcript.Turn, role transcript.Role) string {
	who := "An unclassified speaker"
	switch role {
	case transcript.RolePrimary:
		who = "The candidate"
	case transcript.RoleCounterpart:
		who = "The interviewer"
	}
	return fmt.Sprintf("%s (%s) speaks in %s: %q.", who, t.Speaker, t.Label(), utils.Clip(t.Text, summaryQuoteLimit))
}

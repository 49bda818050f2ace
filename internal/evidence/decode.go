package evidence

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// Issue describes a payload defect that was tolerated rather than rejected.
type Issue struct {
	Index  int
	Reason string
}

func (i Issue) String() string {
	if i.Index < 0 {
		return i.Reason
	}
	return fmt.Sprintf("event %d: %s", i.Index, i.Reason)
}

// turnIDHook lets "T3", "3" and 3.0 all decode into the int 3.
func turnIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "T"), "t")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid turn id %q", data)
	}
	return n, nil
}

func decodeEvent(raw any) (Event, error) {
	var ev Event
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       turnIDHook,
		WeaklyTypedInput: true,
		Result:           &ev,
	})
	if err != nil {
		return Event{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Decode turns a model reply into a Set. The payload must be a JSON object;
// individual events that cannot be decoded are dropped and reported.
func Decode(raw string, def *taxonomy.Definition, doc transcript.Document) (*Set, []Issue, error) {
	var payload map[string]any
	if err := ai.ParseJSON(StageName, raw, &payload); err != nil {
		return nil, nil, err
	}

	var issues []Issue
	set := &Set{Events: []Event{}, SummaryCounts: map[string]int{}}

	if rawEvents, ok := payload["events"]; ok && rawEvents != nil {
		list, ok := rawEvents.([]any)
		if !ok {
			return nil, nil, &ai.MalformedResponseError{
				Stage: StageName,
				Raw:   raw,
				Err:   fmt.Errorf("events must be an array, got %T", rawEvents),
			}
		}

		for i, item := range list {
			ev, err := decodeEvent(item)
			if err != nil {
				issues = append(issues, Issue{Index: i, Reason: fmt.Sprintf("dropped: %v", err)})
				continue
			}
			set.Events = append(set.Events, ev)
		}
	}

	if counts, ok := payload["summary_counts"].(map[string]any); ok {
		for eventType, v := range counts {
			n := ai.CoerceFloat(v)
			if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
				issues = append(issues, Issue{Index: -1, Reason: fmt.Sprintf("summary count for %s is not a count", eventType)})
				continue
			}
			set.SummaryCounts[eventType] = int(math.Round(n))
		}
	}

	issues = append(issues, Validate(set, def, doc)...)
	Complete(set, def)

	return set, issues, nil
}

// Validate reports events outside the taxonomy or without valid grounding.
// Turn ids must match a turn number written in doc. It never mutates the set.
func Validate(set *Set, def *taxonomy.Definition, doc transcript.Document) []Issue {
	var issues []Issue
	for i, ev := range set.Events {
		category, known := def.CategoryOf(ev.EventType)
		switch {
		case !known:
			issues = append(issues, Issue{Index: i, Reason: fmt.Sprintf("unknown event type %q", ev.EventType)})
		case ev.Category != "" && ev.Category != category:
			issues = append(issues, Issue{Index: i, Reason: fmt.Sprintf("category %q does not match %q", ev.Category, category)})
		}

		if len(ev.TurnIDs) == 0 {
			issues = append(issues, Issue{Index: i, Reason: "no turn ids"})
		}
		for _, id := range ev.TurnIDs {
			if !doc.HasTurn(id) {
				issues = append(issues, Issue{Index: i, Reason: fmt.Sprintf("turn id %d not in transcript", id)})
			}
		}

		if strings.TrimSpace(ev.Quote) == "" {
			issues = append(issues, Issue{Index: i, Reason: "empty quote"})
		}
	}
	return issues
}

// Complete fills blank categories from the taxonomy and gives every taxonomy
// event type a summary count. Missing counts are derived from the events.
func Complete(set *Set, def *taxonomy.Definition) {
	observed := map[string]int{}
	for i, ev := range set.Events {
		if ev.Category == "" {
			if category, ok := def.CategoryOf(ev.EventType); ok {
				set.Events[i].Category = category
			}
		}
		observed[ev.EventType]++
	}

	if set.SummaryCounts == nil {
		set.SummaryCounts = map[string]int{}
	}
	for _, eventType := range def.EventTypes() {
		if _, ok := set.SummaryCounts[eventType]; !ok {
			set.SummaryCounts[eventType] = observed[eventType]
		}
	}
}

// Package taxonomy holds the closed event vocabularies and scoring rubrics for
// every evaluation variant. Prompts are rendered from these tables and model
// responses are validated against them.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Variant selects which taxonomy and rubric an evaluation uses.
type Variant string

const (
	VariantInterview Variant = "interview"
	VariantCoaching  Variant = "coaching"
)

const (
	// RedFlagsCategory is the category of the single unscored summary item.
	RedFlagsCategory = "RED_FLAGS"
	// RedFlagsMetric is the metric name of the red-flag summary item.
	RedFlagsMetric = "Session Red Flags Summary"
	// NoRedFlags is the bullet used when nothing was flagged.
	NoRedFlags = "• No significant red flags detected."
)

// EventCategory groups event types under one display name.
type EventCategory struct {
	Name   string
	Events []string
}

// Section is one scored rubric section with its four metrics in order.
type Section struct {
	Code     string
	Category string
	Metrics  []string
}

// Slot addresses one position of the canonical score list.
type Slot struct {
	Category string
	Metric   string
}

// Definition bundles everything a variant needs.
type Definition struct {
	Variant Variant
	// Subject names the practice activity in prompts, e.g. "behavioral interview".
	Subject string
	// Assessor describes who scores the transcript.
	Assessor string
	// Framework is the competency framework the extractor targets.
	Framework string

	EventCategories []EventCategory
	Sections        []Section

	// RedFlagExamples is the non-exhaustive list rendered into the scoring prompt.
	RedFlagExamples string

	// PrimaryKeywords and CounterpartKeywords extend speaker classification.
	PrimaryKeywords     []string
	CounterpartKeywords []string

	eventIndex map[string]string
}

var registry = map[Variant]*Definition{}

func register(d *Definition) {
	d.eventIndex = make(map[string]string)
	for _, c := range d.EventCategories {
		for _, e := range c.Events {
			d.eventIndex[e] = c.Name
		}
	}

	registry[d.Variant] = d
}

// ParseVariant normalizes a configured variant name. Empty means interview.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return VariantInterview, nil
	}
	if _, ok := registry[v]; !ok {
		return "", fmt.Errorf("unknown evaluation variant %q", s)
	}
	return v, nil
}

// Variants lists the registered variants in name order.
func Variants() []Variant {
	out := make([]Variant, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the definition for v.
func Lookup(v Variant) (*Definition, error) {
	d, ok := registry[v]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation variant %q", v)
	}
	return d, nil
}

// EventTypes lists every event type in taxonomy order.
func (d *Definition) EventTypes() []string {
	types := make([]string, 0, len(d.eventIndex))
	for _, c := range d.EventCategories {
		types = append(types, c.Events...)
	}
	return types
}

// CategoryNames lists the event category names in order.
func (d *Definition) CategoryNames() []string {
	names := make([]string, 0, len(d.EventCategories))
	for _, c := range d.EventCategories {
		names = append(names, c.Name)
	}
	return names
}

// CategoryOf reports the category an event type belongs to.
func (d *Definition) CategoryOf(eventType string) (string, bool) {
	c, ok := d.eventIndex[eventType]
	return c, ok
}

// Slots returns the canonical ordered score positions: every section metric
// followed by the red-flag item.
func (d *Definition) Slots() []Slot {
	slots := make([]Slot, 0, d.ItemCount())
	for _, s := range d.Sections {
		for _, m := range s.Metrics {
			slots = append(slots, Slot{Category: s.Category, Metric: m})
		}
	}
	return append(slots, Slot{Category: RedFlagsCategory, Metric: RedFlagsMetric})
}

// ItemCount is the length of a complete score list.
func (d *Definition) ItemCount() int {
	n := 1
	for _, s := range d.Sections {
		n += len(s.Metrics)
	}
	return n
}

// IsRedFlags reports whether category names the red-flag section.
func IsRedFlags(category string) bool {
	return category == RedFlagsCategory
}

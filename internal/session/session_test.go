package session

import (
	"testing"
	"time"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

func sampleItems() []rubric.Item {
	return []rubric.Item{
		{Category: "Structure", Metric: "Logical Flow", Score: 8, Comments: " T1 "},
		{Category: "Structure", Metric: "Defines Task/Responsibility", Score: 5.5},
		{Category: "Completeness", Metric: "Quantifies Impact", Score: 5},
		{Category: "Completeness", Metric: "", Score: 12},
		{Category: taxonomy.RedFlagsCategory, Metric: taxonomy.RedFlagsMetric, Score: 0, Comments: taxonomy.NoRedFlags},
	}
}

func TestNewRecord(t *testing.T) {
	originalNow, originalID := now, newID
	now = func() time.Time { return time.UnixMilli(1700000000123) }
	newID = func() string { return "session_fixed" }
	defer func() { now, newID = originalNow, originalID }()

	res := &pipeline.Result{
		Evidence: &evidence.Set{Events: []evidence.Event{}, SummaryCounts: map[string]int{}},
		Scores:   sampleItems(),
	}

	rec := NewRecord(RecordInput{
		ProblemID:    "p-1",
		ProblemTitle: "Tell me about a conflict",
		Difficulty:   "medium",
		Transcript:   "T1 (Candidate): hi",
		Duration:     95*time.Second + 400*time.Millisecond,
	}, res)

	if rec.ID != "session_fixed" || rec.CreatedAt != 1700000000123 {
		t.Fatalf("unexpected identity %s/%d", rec.ID, rec.CreatedAt)
	}
	if rec.Duration != 95 {
		t.Fatalf("expected duration in seconds, got %d", rec.Duration)
	}
	// (8 + 5.5 + 5 + 12) / 40
	if rec.OverallScore != 76 {
		t.Fatalf("expected overall score 76, got %d", rec.OverallScore)
	}
	if len(rec.Scores) != 5 || rec.Evidence == nil {
		t.Fatalf("expected result to be attached")
	}
}

func TestDefaultIDHasPrefix(t *testing.T) {
	t.Parallel()

	id := newID()
	if len(id) != len("session_")+36 || id[:8] != "session_" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestMemoryMetrics(t *testing.T) {
	t.Parallel()

	got := MemoryMetrics(sampleItems())
	if len(got) != 4 {
		t.Fatalf("expected red flags to be excluded, got %d metrics", len(got))
	}

	expect := []struct {
		score float64
		class Classification
	}{
		{score: 8, class: Strength},
		{score: 5.5, class: Neutral},
		{score: 5, class: Weakness},
		{score: 10, class: Strength},
	}
	for i, e := range expect {
		if got[i].Score != e.score || got[i].Classification != e.class {
			t.Fatalf("metric %d: expected %v/%s, got %v/%s", i, e.score, e.class, got[i].Score, got[i].Classification)
		}
	}

	if got[0].Comments != "T1" {
		t.Fatalf("expected trimmed comments, got %q", got[0].Comments)
	}
	if got[3].Metric != "Unknown Metric" {
		t.Fatalf("expected placeholder metric name, got %q", got[3].Metric)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  float64
		expect Classification
	}{
		{score: 7, expect: Strength},
		{score: 6.9, expect: Neutral},
		{score: 5.1, expect: Neutral},
		{score: 5, expect: Weakness},
		{score: 0, expect: Weakness},
	}
	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.expect {
			t.Fatalf("Classify(%v): expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func TestCategoryAverages(t *testing.T) {
	t.Parallel()

	got := CategoryAverages(sampleItems())
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %+v", got)
	}
	if got[0].Category != "Structure" || got[0].AvgScore != 6.8 {
		t.Fatalf("unexpected structure average %+v", got[0])
	}
	if got[1].Category != "Completeness" || got[1].AvgScore != 8.5 {
		t.Fatalf("unexpected completeness average %+v", got[1])
	}
}

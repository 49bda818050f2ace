// Package session builds the records handed to the session store and the
// long-term memory collaborators once an evaluation completes.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

var (
	now   = time.Now
	newID = func() string { return "session_" + uuid.NewString() }
)

// RecordInput is the metadata the caller knows about a practice session.
type RecordInput struct {
	ProblemID    string
	ProblemTitle string
	Difficulty   string
	Transcript   string
	Duration     time.Duration
}

// Record is an immutable finished session.
type Record struct {
	ID           string        `json:"id"`
	ProblemID    string        `json:"problemId"`
	ProblemTitle string        `json:"problemTitle"`
	Difficulty   string        `json:"difficulty"`
	Transcript   string        `json:"transcript"`
	Evidence     *evidence.Set `json:"evidence"`
	Scores       []rubric.Item `json:"scores"`
	OverallScore int           `json:"overallScore"`
	// Duration is in whole seconds.
	Duration int64 `json:"duration"`
	// CreatedAt is in Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// NewRecord combines caller metadata with an evaluation result.
func NewRecord(in RecordInput, res *pipeline.Result) Record {
	rec := Record{
		ID:           newID(),
		ProblemID:    in.ProblemID,
		ProblemTitle: in.ProblemTitle,
		Difficulty:   in.Difficulty,
		Transcript:   in.Transcript,
		Duration:     int64(in.Duration / time.Second),
		CreatedAt:    now().UnixMilli(),
	}
	if res != nil {
		rec.Evidence = res.Evidence
		rec.Scores = res.Scores
		rec.OverallScore = rubric.OverallScore(res.Scores)
	}
	return rec
}

// Classification buckets a metric score for long-term memory.
type Classification string

const (
	Strength Classification = "STRENGTH"
	Weakness Classification = "WEAKNESS"
	Neutral  Classification = "NEUTRAL"

	StrengthThreshold = 7
	WeaknessThreshold = 5
)

// Classify maps a 0-10 score to a bucket.
func Classify(score float64) Classification {
	switch {
	case score >= StrengthThreshold:
		return Strength
	case score <= WeaknessThreshold:
		return Weakness
	default:
		return Neutral
	}
}

// MemoryMetric is one scored metric as the memory store receives it.
type MemoryMetric struct {
	Category       string         `json:"category"`
	Metric         string         `json:"metric"`
	Score          float64        `json:"score"`
	Comments       string         `json:"comments"`
	Classification Classification `json:"classification"`
}

// MemoryMetrics drops the red-flag item, clamps scores and classifies them.
func MemoryMetrics(items []rubric.Item) []MemoryMetric {
	out := make([]MemoryMetric, 0, len(items))
	for _, item := range items {
		if taxonomy.IsRedFlags(item.Category) {
			continue
		}

		score := rubric.Canonicalize(item.Score)

		metric := strings.TrimSpace(item.Metric)
		if metric == "" {
			metric = "Unknown Metric"
		}
		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = "General"
		}

		out = append(out, MemoryMetric{
			Category:       category,
			Metric:         metric,
			Score:          score,
			Comments:       strings.TrimSpace(item.Comments),
			Classification: Classify(score),
		})
	}
	return out
}

// CategoryAverage is the mean score of one rubric category.
type CategoryAverage struct {
	Category string  `json:"category"`
	AvgScore float64 `json:"avgScore"`
}

// CategoryAverages averages scores per category in first-seen order,
// skipping the red-flag item.
func CategoryAverages(items []rubric.Item) []CategoryAverage {
	type total struct {
		sum   float64
		count int
	}

	var order []string
	totals := map[string]*total{}
	for _, item := range items {
		if taxonomy.IsRedFlags(item.Category) {
			continue
		}
		t, ok := totals[item.Category]
		if !ok {
			t = &total{}
			totals[item.Category] = t
			order = append(order, item.Category)
		}
		t.sum += item.Score
		t.count++
	}

	out := make([]CategoryAverage, 0, len(order))
	for _, category := range order {
		t := totals[category]
		out = append(out, CategoryAverage{Category: category, AvgScore: rubric.Round1(t.sum / float64(t.count))})
	}
	return out
}

package rubric

import (
	"math"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

const (
	// ModelScaleFactor maps the prompt's 0-2 scale onto 0-10.
	ModelScaleFactor = 5

	MinScore = 0
	MaxScore = 10
)

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Clamp bounds x to the canonical range.
func Clamp(x float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, x))
}

// Rescale converts a raw model score to the canonical scale. Non-finite input
// yields 0.
func Rescale(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	return Clamp(Round1(raw * ModelScaleFactor))
}

// Canonicalize clamps and rounds an already canonical score.
func Canonicalize(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return Clamp(Round1(score))
}

// Normalize returns a copy of items on the canonical scale. Red-flag items
// always score 0.
func Normalize(items []Item, scale Scale) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		switch {
		case taxonomy.IsRedFlags(item.Category):
			item.Score = 0
		case scale == ScaleModel:
			item.Score = Rescale(item.Score)
		default:
			item.Score = Canonicalize(item.Score)
		}
		out[i] = item
	}
	return out
}

// OverallScore is the 0-100 percentage over every non-red-flag item.
func OverallScore(items []Item) int {
	var (
		sum   float64
		count int
	)
	for _, item := range items {
		if taxonomy.IsRedFlags(item.Category) {
			continue
		}
		sum += item.Score
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count*MaxScore) * 100))
}

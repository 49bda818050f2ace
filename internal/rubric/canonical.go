package rubric

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spigell/practice-evaluator/internal/ai"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

const missingComment = "No score was returned for this metric."

type slotKey struct {
	category string
	metric   string
}

func keyOf(category, metric string) slotKey {
	return slotKey{
		category: strings.ToLower(strings.TrimSpace(category)),
		metric:   strings.ToLower(strings.TrimSpace(metric)),
	}
}

// DecodeItems parses a model reply into raw-scale items. The payload must be
// a JSON array; elements that are not objects are skipped.
func DecodeItems(raw string) ([]Item, error) {
	var payload []any
	if err := ai.ParseJSON(StageName, raw, &payload); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(payload))
	for _, element := range payload {
		obj, ok := element.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, Item{
			Category: ai.CoerceString(obj["category"]),
			Metric:   ai.CoerceString(obj["metric"]),
			Score:    ai.CoerceFloat(obj["score"]),
			Comments: ai.CoerceString(obj["comments"]),
		})
	}

	return items, nil
}

// Canonical arranges items into the rubric's fixed order. Metrics the model
// skipped score 0 with an explanatory comment; the red-flag item is always
// present and scores 0. It reports the items that matched no slot.
func Canonical(def *taxonomy.Definition, items []Item) ([]Item, []Item, error) {
	known := make(map[slotKey]bool)
	for _, slot := range def.Slots() {
		known[keyOf(slot.Category, slot.Metric)] = true
	}

	byKey := make(map[slotKey]Item, len(items))
	var (
		redFlags  *Item
		unmatched []Item
	)

	for i := range items {
		item := items[i]
		if strings.EqualFold(strings.TrimSpace(item.Category), taxonomy.RedFlagsCategory) {
			if redFlags == nil {
				redFlags = &item
			}
			continue
		}

		k := keyOf(item.Category, item.Metric)
		if !known[k] {
			unmatched = append(unmatched, item)
			continue
		}
		if _, dup := byKey[k]; !dup {
			byKey[k] = item
		}
	}

	if len(byKey) == 0 {
		return nil, unmatched, errors.New("no item matches a rubric metric")
	}

	slots := def.Slots()
	out := make([]Item, 0, len(slots))
	for _, slot := range slots {
		if taxonomy.IsRedFlags(slot.Category) {
			out = append(out, redFlagItem(redFlags))
			continue
		}

		item, ok := byKey[keyOf(slot.Category, slot.Metric)]
		if !ok {
			out = append(out, Item{Category: slot.Category, Metric: slot.Metric, Score: 0, Comments: missingComment})
			continue
		}
		if math.IsNaN(item.Score) || math.IsInf(item.Score, 0) {
			item.Score = 0
		}
		item.Category = slot.Category
		item.Metric = slot.Metric
		out = append(out, item)
	}

	return out, unmatched, nil
}

func redFlagItem(src *Item) Item {
	item := Item{
		Category: taxonomy.RedFlagsCategory,
		Metric:   taxonomy.RedFlagsMetric,
		Score:    0,
		Comments: taxonomy.NoRedFlags,
	}
	if src != nil && strings.TrimSpace(src.Comments) != "" {
		item.Comments = strings.TrimSpace(src.Comments)
	}
	return item
}

// CheckComplete verifies the canonical shape: the rubric's item count, the
// red-flag item last with score 0, and every score within range.
func CheckComplete(def *taxonomy.Definition, items []Item) error {
	if len(items) != def.ItemCount() {
		return fmt.Errorf("expected %d items, got %d", def.ItemCount(), len(items))
	}
	last := items[len(items)-1]
	if !taxonomy.IsRedFlags(last.Category) || last.Score != 0 {
		return fmt.Errorf("last item must be the red-flag summary with score 0, got %s/%v", last.Category, last.Score)
	}
	for _, item := range items {
		if item.Score < MinScore || item.Score > MaxScore || Round1(item.Score) != item.Score {
			return fmt.Errorf("score %v for %s/%s is not canonical", item.Score, item.Category, item.Metric)
		}
	}
	return nil
}

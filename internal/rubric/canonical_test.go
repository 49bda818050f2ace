package rubric

import (
	"strings"
	"testing"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

func definition(t *testing.T, v taxonomy.Variant) *taxonomy.Definition {
	t.Helper()

	def, err := taxonomy.Lookup(v)
	if err != nil {
		t.Fatalf("lookup %s: %v", v, err)
	}
	return def
}

func slotIndex(t *testing.T, def *taxonomy.Definition, category, metric string) int {
	t.Helper()

	for i, slot := range def.Slots() {
		if slot.Category == category && slot.Metric == metric {
			return i
		}
	}
	t.Fatalf("no slot %s/%s", category, metric)
	return -1
}

func TestDecodeItemsCoercesScores(t *testing.T) {
	t.Parallel()

	items, err := DecodeItems("```json\n" + `[
		{"category": "Structure", "metric": "Logical Flow", "score": "1.4", "comments": "T2 shows order."},
		{"category": "Structure", "metric": "Defines Task/Responsibility", "score": 0.9, "comments": "T1"},
		"noise"
	]` + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Score != 1.4 || items[1].Score != 0.9 {
		t.Fatalf("unexpected scores %+v", items)
	}
}

func TestDecodeItemsRejectsObject(t *testing.T) {
	t.Parallel()

	if _, err := DecodeItems(`{"scores": []}`); err == nil {
		t.Fatalf("expected an error for a non-array payload")
	}
}

func TestCanonicalOrdersAndFills(t *testing.T) {
	t.Parallel()

	def := definition(t, taxonomy.VariantInterview)
	items := []Item{
		{Category: "RED_FLAGS", Metric: "whatever", Score: 1.2, Comments: "• T4 blames the team."},
		{Category: "professionalism", Metric: "respectful language", Score: 1.6, Comments: "T3"},
		{Category: "Structure", Metric: "Sets Up Situation/Context", Score: 1.1, Comments: "T1"},
		{Category: "Structure", Metric: "Sets Up Situation/Context", Score: 0.2, Comments: "duplicate"},
		{Category: "Vibes", Metric: "Charisma", Score: 2, Comments: "T1"},
	}

	out, unmatched, err := Canonical(def, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out) != def.ItemCount() {
		t.Fatalf("expected %d items, got %d", def.ItemCount(), len(out))
	}
	if len(unmatched) != 1 || unmatched[0].Category != "Vibes" {
		t.Fatalf("unexpected unmatched items %+v", unmatched)
	}

	if out[0].Score != 1.1 || out[0].Comments != "T1" {
		t.Fatalf("first matching item should win, got %+v", out[0])
	}

	idx := slotIndex(t, def, "Professionalism", "Respectful Language")
	if out[idx].Score != 1.6 || out[idx].Category != "Professionalism" || out[idx].Metric != "Respectful Language" {
		t.Fatalf("case-insensitive match should adopt canonical names, got %+v", out[idx])
	}

	if out[1].Score != 0 || out[1].Comments != missingComment {
		t.Fatalf("missing metric should be filled, got %+v", out[1])
	}

	last := out[len(out)-1]
	if last.Category != taxonomy.RedFlagsCategory || last.Metric != taxonomy.RedFlagsMetric || last.Score != 0 {
		t.Fatalf("unexpected red-flag item %+v", last)
	}
	if !strings.Contains(last.Comments, "T4") {
		t.Fatalf("red-flag comments should be kept, got %q", last.Comments)
	}
}

func TestCanonicalDefaultsRedFlags(t *testing.T) {
	t.Parallel()

	def := definition(t, taxonomy.VariantCoaching)
	out, _, err := Canonical(def, []Item{{Category: "Maintains Presence", Metric: "Lets Client Lead", Score: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out[len(out)-1].Comments; got != taxonomy.NoRedFlags {
		t.Fatalf("expected default red-flag bullet, got %q", got)
	}
}

func TestCanonicalRejectsUnrelatedArray(t *testing.T) {
	t.Parallel()

	def := definition(t, taxonomy.VariantInterview)
	if _, _, err := Canonical(def, []Item{{Category: "Foo", Metric: "Bar"}}); err == nil {
		t.Fatalf("expected an error when nothing matches the rubric")
	}
	if _, _, err := Canonical(def, nil); err == nil {
		t.Fatalf("expected an error for an empty array")
	}
}

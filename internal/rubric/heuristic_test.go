package rubric

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

const (
	withNumbers = "T1 (Candidate): I led a project that improved latency by 40%.\n" +
		"T2 (Interviewer): What did you learn?\n" +
		"T3 (Candidate): I learned to communicate earlier with stakeholders."
	withoutNumbers = "T1 (Candidate): I led a project that improved latency significantly.\n" +
		"T2 (Interviewer): What did you learn?\n" +
		"T3 (Candidate): I learned to communicate earlier with stakeholders."
)

func heuristicScore(t *testing.T, variant taxonomy.Variant, text string, hints Hints) []Item {
	t.Helper()

	def := definition(t, variant)
	roles := transcript.DefaultRoles().With(def.PrimaryKeywords, def.CounterpartKeywords)
	scorer := NewHeuristicScorer(def, roles, DefaultThresholds())

	res, err := scorer.Score(context.Background(), Input{Transcript: transcript.NewDocument(text), Hints: hints})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scale != ScaleCanonical {
		t.Fatalf("heuristic scores must already be canonical")
	}
	if err := CheckComplete(def, res.Items); err != nil {
		t.Fatalf("incomplete result: %v", err)
	}
	return res.Items
}

func TestDetect(t *testing.T) {
	t.Parallel()

	f := Detect("I led a project that improved latency by 40%. I learned to communicate earlier with stakeholders.", DefaultThresholds())
	if !f.HasNumbers || !f.HasLearning || !f.HasActions || !f.HasResults || !f.HasContext {
		t.Fatalf("expected detectors to fire, got %+v", f)
	}
	if f.HasNegative || f.HasPositive || f.Fillers != 0 {
		t.Fatalf("unexpected detectors fired: %+v", f)
	}
	if !f.TooShort || f.Verbose {
		t.Fatalf("expected a short answer, got %+v", f)
	}

	fillers := Detect("Um, like, you know, I basically, uh, sort of did it.", DefaultThresholds())
	if fillers.Fillers != 6 {
		t.Fatalf("expected 6 fillers, got %d", fillers.Fillers)
	}
}

func TestHeuristicRewardsNumericEvidence(t *testing.T) {
	t.Parallel()

	def := definition(t, taxonomy.VariantInterview)
	idx := slotIndex(t, def, "Completeness", "States Clear Results/Outcomes")

	with := heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{})
	without := heuristicScore(t, taxonomy.VariantInterview, withoutNumbers, Hints{})

	if with[idx].Score != 8.5 {
		t.Fatalf("expected 8.5 with numbers, got %v", with[idx].Score)
	}
	if with[idx].Score <= without[idx].Score {
		t.Fatalf("expected numeric evidence to score higher: %v vs %v", with[idx].Score, without[idx].Score)
	}
	if !strings.Contains(with[idx].Comments, "T1, T3") {
		t.Fatalf("comments should reference candidate turns, got %q", with[idx].Comments)
	}
}

func TestHeuristicIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := json.Marshal(heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{JobRole: "Engineer"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{JobRole: "Engineer"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("heuristic output differs between runs")
	}
}

func TestHeuristicRoleLabel(t *testing.T) {
	t.Parallel()

	def := definition(t, taxonomy.VariantInterview)
	idx := slotIndex(t, def, "Professionalism", "Role Alignment")

	plain := heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{})
	labelled := heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{FocusRole: "Backend Engineer"})

	if labelled[idx].Score-plain[idx].Score != 1 {
		t.Fatalf("expected role label to add 1, got %v vs %v", labelled[idx].Score, plain[idx].Score)
	}
}

func TestHeuristicRedFlags(t *testing.T) {
	t.Parallel()

	answer := strings.Repeat("um honestly the previous manager was terrible and I blame the team for everything that went wrong ", 30)
	items := heuristicScore(t, taxonomy.VariantInterview, "T1 (Candidate): "+answer+"\nT2 (Interviewer): Thanks.", Hints{})

	flags := items[len(items)-1].Comments
	bullets := strings.Split(flags, "\n")
	if len(bullets) != 3 {
		t.Fatalf("expected three red-flag bullets, got %q", flags)
	}
	for _, b := range bullets {
		if !strings.HasPrefix(b, "•") {
			t.Fatalf("bullet without marker: %q", b)
		}
	}

	clean := heuristicScore(t, taxonomy.VariantInterview, withNumbers, Hints{})
	if clean[len(clean)-1].Comments != taxonomy.NoRedFlags {
		t.Fatalf("expected no red flags, got %q", clean[len(clean)-1].Comments)
	}
}

func TestHeuristicScoresStayInRange(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"T1 (Interviewer): Tell me about yourself.",
		withNumbers,
		"T1 (Candidate): " + strings.Repeat("I love this opportunity and I led the team during the project, the result improved revenue by 25%. I learned a lot. ", 40),
	}

	for _, variant := range []taxonomy.Variant{taxonomy.VariantInterview, taxonomy.VariantCoaching} {
		for _, in := range inputs {
			for _, item := range heuristicScore(t, variant, in, Hints{}) {
				if item.Score < 0 || item.Score > 10 {
					t.Fatalf("%s: score out of range %+v", variant, item)
				}
				if Round1(item.Score) != item.Score {
					t.Fatalf("%s: score has more than one decimal %+v", variant, item)
				}
			}
		}
	}
}

package rubric

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// rule scores one metric from features. note explains the adjustment.
type rule func(f Features, hasLabel bool) (delta float64, note string)

type section struct {
	base  func(f Features) float64
	rules [4]rule
}

func when(ok bool, delta float64, note string) (float64, string) {
	if ok {
		return delta, note
	}
	return 0, ""
}

// sections are positional: the i-th entry scores the i-th rubric section.
var sections = [4]section{
	{
		// structure
		base: func(f Features) float64 {
			s := 3.0
			s += pick(f.HasContext, 2)
			s += pick(f.HasActions, 2)
			s += pick(f.HasResults, 1)
			s -= pick(f.TooShort, 1)
			return s
		},
		rules: [4]rule{
			func(f Features, _ bool) (float64, string) {
				if f.HasContext {
					return 1.5, "situation is framed"
				}
				return -1, "no situational framing found"
			},
			func(f Features, _ bool) (float64, string) {
				return when(f.HasActions, 1, "responsibility stated in first person")
			},
			func(f Features, _ bool) (float64, string) {
				if f.HasActions {
					return 1.5, "specific first-person actions"
				}
				return -1.5, "no first-person actions found"
			},
			func(f Features, _ bool) (float64, string) {
				var delta float64
				var notes []string
				if f.HasContext && f.HasResults {
					delta += 0.5
					notes = append(notes, "context leads to an outcome")
				}
				if f.Verbose {
					delta--
					notes = append(notes, "long answers blur the flow")
				}
				return delta, strings.Join(notes, "; ")
			},
		},
	},
	{
		// completeness
		base: func(f Features) float64 {
			s := 3.0
			s += pick(f.HasResults, 2)
			s += pick(f.HasNumbers, 1.5)
			s += pick(f.HasLearning, 1)
			s -= pick(f.TooShort, 1.5)
			return s
		},
		rules: [4]rule{
			func(f Features, _ bool) (float64, string) {
				var delta float64
				var notes []string
				if f.HasResults {
					delta += 1.5
					notes = append(notes, "outcome stated")
				}
				if f.HasNumbers {
					delta++
					notes = append(notes, "outcome backed by numbers")
				}
				return delta, strings.Join(notes, "; ")
			},
			func(f Features, _ bool) (float64, string) {
				if f.HasNumbers {
					return 2, "impact quantified"
				}
				return -2, "no numbers given"
			},
			func(f Features, _ bool) (float64, string) {
				if f.HasLearning {
					return 2, "learning stated"
				}
				return -1.5, "no reflection on learnings"
			},
			func(f Features, _ bool) (float64, string) {
				return when(!f.TooShort, 0.5, "answers have substance")
			},
		},
	},
	{
		// communication
		base: func(f Features) float64 {
			s := 6.0
			s -= pick(f.Verbose, 2)
			s -= pick(f.TooShort, 1.5)
			s -= pick(f.HeavyFillers, 1)
			return s
		},
		rules: [4]rule{
			func(f Features, _ bool) (float64, string) {
				if f.Verbose {
					return -1.5, "answers run long"
				}
				return when(!f.TooShort, 1, "answer length is balanced")
			},
			func(f Features, _ bool) (float64, string) {
				if f.Fillers == 0 {
					return 1, "no filler words"
				}
				penalty := 0.3 * float64(f.Fillers)
				if penalty > 3 {
					penalty = 3
				}
				return -penalty, fmt.Sprintf("%d filler words", f.Fillers)
			},
			func(f Features, _ bool) (float64, string) {
				return when(f.HasActions, 1, "actions described concretely")
			},
			func(f Features, _ bool) (float64, string) {
				var delta float64
				var notes []string
				if f.TooShort {
					delta--
					notes = append(notes, "too little detail")
				}
				if f.HasNumbers {
					delta += 0.5
					notes = append(notes, "concrete figures")
				}
				return delta, strings.Join(notes, "; ")
			},
		},
	},
	{
		// professionalism
		base: func(f Features) float64 {
			s := 5.5
			s += pick(f.HasPositive, 1.5)
			s -= pick(f.HasNegative, 3)
			s += pick(f.HasActions, 1)
			return s
		},
		rules: [4]rule{
			func(f Features, _ bool) (float64, string) {
				if f.HasNegative {
					return -1.5, "negative language"
				}
				return when(f.HasPositive, 1.5, "positive framing")
			},
			func(f Features, _ bool) (float64, string) {
				var delta float64
				var notes []string
				if f.HasActions {
					delta += 1.5
					notes = append(notes, "takes ownership of actions")
				}
				if f.HasNegative {
					delta--
					notes = append(notes, "assigns blame")
				}
				return delta, strings.Join(notes, "; ")
			},
			func(f Features, _ bool) (float64, string) {
				if f.HasNegative {
					return -2, "disrespectful wording"
				}
				return 2, "respectful wording"
			},
			func(f Features, hasLabel bool) (float64, string) {
				var delta float64
				var notes []string
				if hasLabel {
					delta++
					notes = append(notes, "target role given")
				}
				if f.HasContext {
					delta += 0.5
					notes = append(notes, "relevant context")
				}
				return delta, strings.Join(notes, "; ")
			},
		},
	},
}

func pick(ok bool, v float64) float64 {
	if ok {
		return v
	}
	return 0
}

// HeuristicScorer is a deterministic stand-in for the model scorer. Its
// scores depend only on surface lexical features of the primary speaker's
// turns; it does not understand the transcript.
type HeuristicScorer struct {
	def        *taxonomy.Definition
	roles      transcript.Roles
	thresholds Thresholds
}

func NewHeuristicScorer(def *taxonomy.Definition, roles transcript.Roles, thresholds Thresholds) *HeuristicScorer {
	return &HeuristicScorer{def: def, roles: roles, thresholds: thresholds.withDefaults()}
}

func (s *HeuristicScorer) Name() string {
	return "heuristic"
}

func (s *HeuristicScorer) Score(_ context.Context, in Input) (*Result, error) {
	primary := s.roles.Select(in.Transcript.Turns, transcript.RolePrimary)

	texts := make([]string, 0, len(primary))
	for _, t := range primary {
		texts = append(texts, t.Text)
	}
	f := Detect(strings.Join(texts, " "), s.thresholds)

	ref := "no candidate turns"
	if len(primary) > 0 {
		ref = "candidate turns " + strings.Join(transcript.Labels(primary), ", ")
	}
	hasLabel := in.Hints.Label() != ""

	items := make([]Item, 0, s.def.ItemCount())
	for i, sec := range s.def.Sections {
		if i >= len(sections) {
			break
		}
		base := sections[i].base(f)
		for j, metric := range sec.Metrics {
			if j >= len(sections[i].rules) {
				break
			}
			delta, note := sections[i].rules[j](f, hasLabel)
			items = append(items, Item{
				Category: sec.Category,
				Metric:   metric,
				Score:    Canonicalize(base + delta),
				Comments: comment(ref, f.Words, note),
			})
		}
	}

	items = append(items, Item{
		Category: taxonomy.RedFlagsCategory,
		Metric:   taxonomy.RedFlagsMetric,
		Score:    0,
		Comments: redFlags(f, s.thresholds, ref),
	})

	return &Result{Items: items, Scale: ScaleCanonical}, nil
}

func comment(ref string, words int, note string) string {
	if note == "" {
		note = "no distinguishing signal"
	}
	return fmt.Sprintf("Heuristic estimate from %s (%d words): %s.", ref, words, note)
}

func redFlags(f Features, t Thresholds, ref string) string {
	var bullets []string
	if f.Verbose {
		bullets = append(bullets, fmt.Sprintf("• Answers exceed %d words (%s).", t.VerboseWords, ref))
	}
	if f.HeavyFillers {
		bullets = append(bullets, fmt.Sprintf("• Heavy filler usage: %d filler words (%s).", f.Fillers, ref))
	}
	if f.HasNegative {
		bullets = append(bullets, fmt.Sprintf("• Negative or blaming language detected (%s).", ref))
	}
	if len(bullets) == 0 {
		return taxonomy.NoRedFlags
	}
	return strings.Join(bullets, "\n")
}

package rubric

import (
	"regexp"
	"strings"
)

var (
	numberPattern   = regexp.MustCompile(`\d`)
	contextPattern  = regexp.MustCompile(`\b(when|while|during|project|team|company|situation|role|client|customer|at the time|previously|last (year|quarter|month|week))\b`)
	actionPattern   = regexp.MustCompile(`\bi (led|built|created|designed|implemented|managed|drove|launched|organized|developed|improved|resolved|owned|initiated|coordinated|analyzed|negotiated|mentored|delivered)\b`)
	resultPattern   = regexp.MustCompile(`\b(result|results|outcome|outcomes|impact|improved|increased|reduced|saved|achieved|grew|delivered|shipped)\b`)
	learningPattern = regexp.MustCompile(`\b(learn\w*|lesson\w*|realiz\w*|takeaway\w*|reflect\w*|next time)\b`)
	fillerPattern   = regexp.MustCompile(`\b(um|uh|like|you know|basically|actually|literally|sort of|kind of|i mean)\b`)
	positivePattern = regexp.MustCompile(`\b(excited|enjoy\w*|passionate|grateful|opportunit\w*|proud|glad|love)\b`)
	negativePattern = regexp.MustCompile(`\b(hate|stupid|idiot|useless|terrible|awful|incompetent|lazy|blame\w*|fault)\b`)
)

// Thresholds are the tunable cutoffs of the heuristic scorer.
type Thresholds struct {
	VerboseWords    int
	ShortWords      int
	FillerThreshold int
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VerboseWords:    450,
		ShortWords:      80,
		FillerThreshold: 8,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.VerboseWords <= 0 {
		t.VerboseWords = d.VerboseWords
	}
	if t.ShortWords <= 0 {
		t.ShortWords = d.ShortWords
	}
	if t.FillerThreshold <= 0 {
		t.FillerThreshold = d.FillerThreshold
	}
	return t
}

// Features are surface lexical signals of the primary speaker's text.
type Features struct {
	Words       int
	HasNumbers  bool
	HasContext  bool
	HasActions  bool
	HasResults  bool
	HasLearning bool
	Fillers     int
	// HeavyFillers is set when Fillers exceeds the configured threshold.
	HeavyFillers bool
	HasPositive  bool
	HasNegative  bool
	Verbose      bool
	TooShort     bool
}

// Detect runs every detector over text.
func Detect(text string, t Thresholds) Features {
	t = t.withDefaults()
	lower := strings.ToLower(text)
	words := len(strings.Fields(lower))
	fillers := len(fillerPattern.FindAllString(lower, -1))

	return Features{
		Words:        words,
		HasNumbers:   numberPattern.MatchString(lower),
		HasContext:   contextPattern.MatchString(lower),
		HasActions:   actionPattern.MatchString(lower),
		HasResults:   resultPattern.MatchString(lower),
		HasLearning:  learningPattern.MatchString(lower),
		Fillers:      fillers,
		HeavyFillers: fillers > t.FillerThreshold,
		HasPositive:  positivePattern.MatchString(lower),
		HasNegative:  negativePattern.MatchString(lower),
		Verbose:      words > t.VerboseWords,
		TooShort:     words < t.ShortWords,
	}
}

package rubric

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// PromptVersion identifies the scoring instruction in logs.
const PromptVersion = "score/v1"

//go:embed prompts/score.md
var promptTemplate string

// SystemPrompt renders the scoring instruction for a rubric.
func SystemPrompt(def *taxonomy.Definition) string {
	var sections strings.Builder
	metrics := 0
	for i, s := range def.Sections {
		if i > 0 {
			sections.WriteString("\n\n")
		}
		fmt.Fprintf(&sections, "%s - %s -> category = %q", s.Code, s.Category, s.Category)
		for j, m := range s.Metrics {
			fmt.Fprintf(&sections, "\n  %s.%d metric = %q", s.Code, j+1, m)
			metrics++
		}
	}

	replacer := strings.NewReplacer(
		"{{ASSESSOR}}", def.Assessor,
		"{{SUBJECT}}", def.Subject,
		"{{ITEM_COUNT}}", strconv.Itoa(def.ItemCount()),
		"{{METRIC_COUNT}}", strconv.Itoa(metrics),
		"{{SECTIONS}}", sections.String(),
		"{{RED_FLAGS_CATEGORY}}", taxonomy.RedFlagsCategory,
		"{{RED_FLAGS_METRIC}}", taxonomy.RedFlagsMetric,
		"{{NO_RED_FLAGS}}", taxonomy.NoRedFlags,
		"{{RED_FLAG_EXAMPLES}}", def.RedFlagExamples,
	)
	return strings.TrimSpace(replacer.Replace(promptTemplate))
}

// UserPrompt renders the scoring request: optional context, the evidence,
// the transcript as submitted and the fixed order reminder.
func UserPrompt(def *taxonomy.Definition, set *evidence.Set, doc transcript.Document, hints Hints) (string, error) {
	evidenceJSON, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal evidence: %w", err)
	}

	var b strings.Builder
	if preface := contextPreface(hints); preface != "" {
		b.WriteString(preface)
		b.WriteString("\n\n")
	}

	b.WriteString("1) Extracted evidence events JSON:\n")
	b.Write(evidenceJSON)
	b.WriteString("\n\n2) Transcript turns:\n")
	b.WriteString(doc.Raw)
	b.WriteString("\n\nReturn a JSON array with objects in this exact order:")

	pos := 1
	for _, s := range def.Sections {
		end := pos + len(s.Metrics) - 1
		fmt.Fprintf(&b, "\n%d-%d: category %q with its %d metrics", pos, end, s.Category, len(s.Metrics))
		pos = end + 1
	}
	fmt.Fprintf(&b, "\n%d: the %s object", pos, taxonomy.RedFlagsCategory)

	return b.String(), nil
}

func contextPreface(h Hints) string {
	var lines []string
	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, value))
		}
	}

	add("Company", h.Company)
	add("Job role", h.JobRole)
	add("Focus role", h.FocusRole)
	if h.Pathway != nil {
		add("Pathway role", h.Pathway.Role)
		add("Pathway domain", h.Pathway.Domain)
		add("Pathway aspiration", h.Pathway.Aspiration)
	}

	if len(lines) == 0 {
		return ""
	}
	return "Session context (use only to judge relevance, not to add evidence):\n" + strings.Join(lines, "\n")
}

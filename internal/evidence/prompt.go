package evidence

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spigell/practice-evaluator/internal/taxonomy"
	"github.com/spigell/practice-evaluator/internal/transcript"
)

// PromptVersion identifies the extraction instruction in logs.
const PromptVersion = "extract/v1"

//go:embed prompts/extract.md
var promptTemplate string

// SystemPrompt renders the extraction instruction for a taxonomy.
func SystemPrompt(def *taxonomy.Definition) string {
	var taxonomyBlock strings.Builder
	for i, c := range def.EventCategories {
		if i > 0 {
			taxonomyBlock.WriteString("\n\n")
		}
		taxonomyBlock.WriteString(c.Name)
		taxonomyBlock.WriteString(":\n")
		taxonomyBlock.WriteString(strings.Join(c.Events, ", "))
	}

	types := def.EventTypes()
	counts := make([]string, 0, len(types))
	for _, e := range types {
		counts = append(counts, fmt.Sprintf("    %q: 0", e))
	}

	names := def.CategoryNames()
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{SUBJECT}}", def.Subject)
	prompt = strings.ReplaceAll(prompt, "{{FRAMEWORK}}", def.Framework)
	prompt = strings.ReplaceAll(prompt, "{{TAXONOMY}}", taxonomyBlock.String())
	prompt = strings.ReplaceAll(prompt, "{{CATEGORY_CHOICES}}", strings.Join(names, " | "))
	prompt = strings.ReplaceAll(prompt, "{{SUMMARY_COUNTS}}", strings.Join(counts, ",\n"))
	prompt = strings.ReplaceAll(prompt, "{{CATEGORY_LIST}}", strings.Join(quoted, ", "))
	return strings.TrimSpace(prompt)
}

// UserPrompt embeds the transcript exactly as submitted.
func UserPrompt(doc transcript.Document) string {
	return "Transcript turns:\n" + doc.Raw
}

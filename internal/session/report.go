package session

import (
	"encoding/json"
	"os"

	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

// Report is what the evaluate command shows: the record plus the tuples the
// memory and dashboard collaborators would derive from it.
type Report struct {
	Record
	MemoryMetrics    []MemoryMetric    `json:"memoryMetrics"`
	CategoryAverages []CategoryAverage `json:"categoryAverages"`
}

func NewReport(rec Record) *Report {
	return &Report{
		Record:           rec,
		MemoryMetrics:    MemoryMetrics(rec.Scores),
		CategoryAverages: CategoryAverages(rec.Scores),
	}
}

// RedFlags returns the comment of the red-flag item, or "" when absent.
func (r *Report) RedFlags() string {
	for _, item := range r.Scores {
		if taxonomy.IsRedFlags(item.Category) {
			return item.Comments
		}
	}
	return ""
}

// Scored returns every item except the red-flag summary.
func (r *Report) Scored() []rubric.Item {
	out := make([]rubric.Item, 0, len(r.Scores))
	for _, item := range r.Scores {
		if !taxonomy.IsRedFlags(item.Category) {
			out = append(out, item)
		}
	}
	return out
}

// DumpToTmpFile writes the report as indented JSON and returns the file name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "session_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Package transcript turns line-oriented session transcripts into turns.
//
// A well-formed line looks like "T12 (Candidate): text". Lines of any other
// shape are skipped; parsing never fails.
package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var linePattern = regexp.MustCompile(`^T?(\d+)\s+\(([^)]+)\):(.*)$`)

// Turn is one utterance of a session.
type Turn struct {
	// ID is the 1-based position among parsed turns.
	ID int `json:"id"`
	// Number is the ordinal written in the source line.
	Number  int    `json:"number"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Label renders the turn reference as written in the source, e.g. "T3".
func (t Turn) Label() string {
	return Label(t.Number)
}

// Label renders a turn number as a reference token.
func Label(number int) string {
	return fmt.Sprintf("T%d", number)
}

// Document is a submitted transcript with its parsed turns. Raw is the
// trimmed input and is what backends see, continuation lines included.
type Document struct {
	Raw   string
	Turns []Turn
}

func NewDocument(raw string) Document {
	raw = strings.TrimSpace(raw)
	return Document{Raw: raw, Turns: Parse(raw)}
}

// HasTurn reports whether some parsed turn carries the written number.
func (d Document) HasTurn(number int) bool {
	for _, t := range d.Turns {
		if t.Number == number {
			return true
		}
	}
	return false
}

// Parse splits transcript into turns. Empty input yields no turns.
func Parse(transcript string) []Turn {
	var turns []Turn

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		number, err := strconv.Atoi(m[1])
		if err != nil {
			// digits too long for int
			continue
		}

		turns = append(turns, Turn{
			ID:      len(turns) + 1,
			Number:  number,
			Speaker: strings.TrimSpace(m[2]),
			Text:    strings.TrimSpace(m[3]),
		})
	}

	return turns
}

// Labels lists the reference tokens of turns, e.g. ["T1", "T3"].
func Labels(turns []Turn) []string {
	labels := make([]string, 0, len(turns))
	for _, t := range turns {
		labels = append(labels, t.Label())
	}
	return labels
}

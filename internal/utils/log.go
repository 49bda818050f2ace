package utils

import (
	"fmt"
	"strings"
)

// TruncateForLog shortens s to limit runes for log previews. A cut preview
// ends with the number of runes left out, e.g. "hello... (+6 runes)", so a
// truncated model reply is never mistaken for a short one.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return fmt.Sprintf("%s... (+%d runes)", string(runes[:limit]), len(runes)-limit)
}

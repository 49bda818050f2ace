package utils

import "strings"

// CollapseSpaces trims s and replaces every whitespace run with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clip collapses whitespace and cuts the result to at most limit runes,
// ending with "..." when something was removed.
func Clip(s string, limit int) string {
	s = CollapseSpaces(s)
	if s == "" || limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?is)```(?:json)?[ \\t]*\\r?\\n?(.*?)```")

// UnwrapCodeFence returns the body of the first triple-backtick fence in raw,
// with an optional "json" language tag removed. Text without a closed fence is
// returned trimmed, minus a dangling opening fence line.
func UnwrapCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)

	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	if strings.HasPrefix(raw, "```") {
		if idx := strings.IndexByte(raw, '\n'); idx != -1 {
			return strings.TrimSpace(raw[idx+1:])
		}
		return strings.TrimSpace(strings.TrimLeft(raw, "`"))
	}

	return raw
}

// ParseJSON strips an optional fence and decodes the payload into v. Failures
// come back as *MalformedResponseError carrying the untouched raw text.
func ParseJSON(stage, raw string, v any) error {
	payload := UnwrapCodeFence(raw)
	if payload == "" {
		return &MalformedResponseError{Stage: stage, Raw: raw, Err: errors.New("empty response")}
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &MalformedResponseError{Stage: stage, Raw: raw, Err: fmt.Errorf("decode json: %w", err)}
	}

	return nil
}

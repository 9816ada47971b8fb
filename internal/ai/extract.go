package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first JSON object out of a raw model response.
// Models sometimes wrap their payload in prose or markdown fences, so the
// candidate is the substring from the first '{' to the last '}' inclusive.
// When no braces are present the whole text is tried as-is. Returns nil if
// the candidate does not parse as a JSON object.
func ExtractJSON(raw string) map[string]any {
	candidate := raw
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		candidate = raw[start : end+1]
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil
	}
	return out
}

package generation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// bracketSpan matches the first squared-bracket span in a reply,
// non-greedy so the shortest balanced candidate is tried.
var bracketSpan = regexp.MustCompile(`(?s)\[.*?\]`)

// ParseTags recovers a tag list from a raw model reply. It tolerates a
// bare JSON array, an array fenced in a triple-backtick code block
// (optionally annotated "json"), and an array embedded anywhere inside
// surrounding prose.
//
// It never fails: malformed output degrades to an empty list, because
// the pipeline cannot block on an unreliable natural-language producer.
func ParseTags(raw string) []string {
	text := stripCodeFence(strings.TrimSpace(raw))

	if tags, ok := parseStringArray(text); ok {
		return tags
	}

	// The reply was prose; try the first bracketed substring.
	if span := bracketSpan.FindString(text); span != "" {
		if tags, ok := parseStringArray(span); ok {
			return tags
		}
	}

	return []string{}
}

// parseStringArray parses text as a JSON array of strings, rejecting
// arrays with any non-string element.
func parseStringArray(text string) ([]string, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, false
	}

	tags := make([]string, 0, len(elements))
	for _, el := range elements {
		var s string
		if err := json.Unmarshal(el, &s); err != nil {
			return nil, false
		}
		tags = append(tags, s)
	}

	return tags, true
}

// stripCodeFence removes a surrounding triple-backtick block, with or
// without a language annotation, and returns the inner text.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	inner := strings.TrimPrefix(text, "```")
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		// Drop the annotation line ("json", "JSON", or empty).
		firstLine := strings.TrimSpace(inner[:idx])
		if firstLine == "" || strings.EqualFold(firstLine, "json") {
			inner = inner[idx+1:]
		}
	}

	inner = strings.TrimSuffix(strings.TrimSpace(inner), "```")
	return strings.TrimSpace(inner)
}

package service

import (
	"encoding/json"
	"strings"
)

// ParseList accepts a JSON array string ("[\"a\",\"b\"]") or a comma separated
// string ("a, b") and returns the cleaned entries.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return CleanList(items)
		}
	}
	return CleanList(strings.Split(raw, ","))
}

// CleanList trims entries and drops empty ones. The result is never nil.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

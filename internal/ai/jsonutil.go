package ai

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for JSON extraction from model responses.
var (
	// jsonBlockPattern matches JSON inside markdown code blocks: ```json { ... } ```
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// jsonObjectPattern matches any JSON object (greedy fallback).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls a JSON object out of a model response. Models routinely
// wrap their output in markdown fences or surround it with commentary; this
// is the single normalization step applied before every parse attempt.
// Returns an empty string when no object-shaped text is found.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)

	raw := ""
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}
	if raw == "" {
		return ""
	}

	// Trailing commas before } or ] are a common model artifact.
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}

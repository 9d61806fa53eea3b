package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lower-cases text, turns every character outside [a-z0-9\s] into
// a space, collapses whitespace runs and trims. It never fails and is
// idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	cleaned := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// tokenize splits normalized text on whitespace.
func tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

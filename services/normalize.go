package services

import "strings"

// Normalize canonicalizes a description for matching: lowercase, all
// whitespace runs (spaces, tabs, newlines) collapsed to single spaces,
// leading/trailing whitespace trimmed. Excel multiline descriptions and
// JSON strings with embedded "\n" compare equal after normalization.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

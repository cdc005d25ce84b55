package match

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize cleans a piece of card text for comparison: lowercased, surrounding
// whitespace trimmed, and line endings normalized.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return s
}

// Answers reports whether a user-supplied answer matches the stored one.
// Comparison is case-insensitive and ignores surrounding whitespace, so
// " paris \n" matches "Paris".
func Answers(given, stored string) bool {
	return Normalize(given) == Normalize(stored)
}

// Fingerprint returns a stable identity for a card's content, used to detect
// already-imported cards. The question and answer are normalized and joined
// with a newline so "ab"+"c" and "a"+"bc" fingerprint differently.
func Fingerprint(question, answer string) string {
	normalized := Normalize(question) + "\n" + Normalize(answer)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(normalized)))
}

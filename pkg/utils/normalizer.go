package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextNormalizer wraps transform.Transformer to provide convenient string normalization methods.
// The engagement scorer uses it to detect posts that share identical text despite cosmetic
// differences in casing, diacritics, or whitespace. This is not safe for concurrent use.
type TextNormalizer struct {
	transformer transform.Transformer
}

// NewTextNormalizer creates a new TextNormalizer instance.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		transformer: transform.Chain(
			norm.NFKD,                          // Decompose with compatibility decomposition
			runes.Remove(runes.In(unicode.Mn)), // Remove non-spacing marks
			runes.Map(unicode.ToLower),         // Convert to lowercase before normalization
			norm.NFKC,                          // Normalize with compatibility composition
		),
	}
}

// Normalize cleans up text using the normalizer.
// Returns empty string if normalization fails or input is empty.
func (n *TextNormalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = CompressAllWhitespace(s)
	if s == "" {
		return ""
	}

	result, _, err := transform.String(n.transformer, s)
	if err != nil || result == "" {
		return ""
	}

	return result
}

// Equal reports whether two strings are identical after normalization.
// Falls back to a case-insensitive comparison when normalization fails.
func (n *TextNormalizer) Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	normalizedA := n.Normalize(a)
	normalizedB := n.Normalize(b)

	if normalizedA == "" || normalizedB == "" {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}

	return normalizedA == normalizedB
}

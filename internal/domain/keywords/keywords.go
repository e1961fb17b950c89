// Package keywords derives fallback search terms from a natural-language
// question by stripping English function words.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultStopWords lists the function words dropped during extraction:
// articles, interrogatives, copulas, and common prepositions, conjunctions
// and pronouns. Proper nouns, numerals and domain nouns always survive.
func DefaultStopWords() []string {
	return []string{
		"a", "an", "the",
		"what", "which", "who", "whom", "whose", "how", "why", "when", "where",
		"is", "are", "was", "were", "be", "been", "being", "am",
		"do", "does", "did", "have", "has", "had",
		"in", "of", "on", "at", "to", "for", "with", "from", "by", "as",
		"and", "or", "but", "not", "no",
		"it", "its", "this", "that", "these", "those", "there",
		"can", "could", "will", "would", "should", "may", "might",
		"many", "much", "some", "any", "all",
	}
}

// Extractor tokenizes questions and filters out stop words. The stop-word
// set is injected at construction so tests and config can substitute it.
type Extractor struct {
	stop map[string]struct{}
}

// New creates an extractor with the given stop-word list.
func New(stopWords []string) *Extractor {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{stop: stop}
}

// Extract returns the meaningful tokens of text, lower-cased, in first-seen
// order and without duplicates. Tokens of rune length <= 2 are dropped
// unless fully numeric. Never fails; a query with no surviving tokens
// yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		if _, stop := e.stop[tok]; stop {
			continue
		}
		if utf8.RuneCountInString(tok) <= 2 && !isNumeric(tok) {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

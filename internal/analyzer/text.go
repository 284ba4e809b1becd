package analyzer

import (
	"strings"
	"unicode"
)

// stopwords is the usual English list, trimmed to words long enough to
// survive the tokenizer's length filter.
var stopwords = map[string]bool{}

func init() {
	list := []string{
		"about", "above", "after", "again", "against", "all", "and", "any",
		"are", "because", "been", "before", "being", "below", "between",
		"both", "but", "can", "did", "does", "doing", "down", "during",
		"each", "few", "for", "from", "further", "had", "has", "have",
		"having", "her", "here", "hers", "herself", "him", "himself", "his",
		"how", "into", "its", "itself", "just", "more", "most", "myself",
		"nor", "not", "now", "off", "once", "only", "other", "our", "ours",
		"ourselves", "out", "over", "own", "same", "she", "should", "some",
		"such", "than", "that", "the", "their", "theirs", "them",
		"themselves", "then", "there", "these", "they", "this", "those",
		"through", "too", "under", "until", "very", "was", "were", "what",
		"when", "where", "which", "while", "who", "whom", "why", "will",
		"with", "you", "your", "yours", "yourself", "yourselves",
	}
	for _, w := range list {
		stopwords[w] = true
	}
}

// tokenize lowercases text, turns punctuation into spaces and returns the
// remaining words that are at least three characters and not stopwords.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

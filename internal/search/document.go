package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text into lowercase word tokens of at least two runes.
// Letters, digits, marks and underscores form words; everything else separates them.
func Tokenize(text string) []string {
	f := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c) && !unicode.IsMark(c) && c != '_'
	}
	fields := strings.FieldsFunc(strings.ToLower(text), f)
	var tokens []string
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// Analyze tokenizes text and drops English stop words
func Analyze(text string) []string {
	tokens := Tokenize(text)
	terms := tokens[:0]
	for _, token := range tokens {
		if !IsStopWord(token) {
			terms = append(terms, token)
		}
	}
	return terms
}

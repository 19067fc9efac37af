// Package text normalizes free text into tokens shared by catalog
// documents and incoming queries: lowercase, letter-only tokens,
// stopword removal, lemmatization (or snowball stemming).
package text

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Analyzer selects the token reduction strategy.
type Analyzer string

// Analyzer constants.
const (
	// AnalyzerLemma applies noun lemmatization (default).
	AnalyzerLemma Analyzer = "lemma"
	// AnalyzerStem applies snowball English stemming instead.
	AnalyzerStem Analyzer = "stem"
)

// IsValid checks if the analyzer is one of the supported values.
func (a Analyzer) IsValid() bool {
	return a == AnalyzerLemma || a == AnalyzerStem
}

// minTokenLength drops one-letter runs left over after punctuation
// splitting ("it's" -> "it", "s").
const minTokenLength = 2

// Normalizer produces normalized tokens. Safe for concurrent use.
type Normalizer struct {
	analyzer Analyzer
}

// NewNormalizer creates a normalizer with the given analyzer.
func NewNormalizer(analyzer Analyzer) (*Normalizer, error) {
	if analyzer == "" {
		analyzer = AnalyzerLemma
	}
	if !analyzer.IsValid() {
		return nil, fmt.Errorf("unknown analyzer %q", analyzer)
	}
	return &Normalizer{analyzer: analyzer}, nil
}

// Tokens splits text into normalized tokens. Digits and punctuation act
// as separators and never survive into tokens, so release years reach
// the ranking pipeline only through filter extraction.
func (n *Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength || isStopword(f) {
			continue
		}
		tokens = append(tokens, n.reduce(f))
	}
	return tokens
}

// Normalize returns the tokens joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

func (n *Normalizer) reduce(token string) string {
	if n.analyzer == AnalyzerStem {
		return english.Stem(token, false)
	}
	return Lemmatize(token)
}

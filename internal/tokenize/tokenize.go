// Package tokenize splits dictated text into the token stream used by every
// text metric, and provides the sentence and syllable heuristics used for
// reading level estimates.
package tokenize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StripSet is the punctuation removed from text before splitting.
const StripSet = ".,!?;:'\"()[]{}"

const vowels = "aeiouy"

// casers are not safe for concurrent use.
var casePool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Tokenize lowercases text, strips StripSet and splits on whitespace runs.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	caser := casePool.Get().(*cases.Caser)
	lowered := caser.String(text)
	caser.Reset()
	casePool.Put(caser)

	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(StripSet, r) {
			return -1
		}
		return r
	}, lowered)
	return strings.Fields(stripped)
}

// Len returns the length of a token in runes.
func Len(token string) int {
	return utf8.RuneCountInString(token)
}

// Sentences counts non-empty segments delimited by '.', '!' or '?'.
// Any text with a non-space rune counts as at least one sentence.
func Sentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	count := 0
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// Syllables estimates the syllable count of a lowercase word.
func Syllables(word string) int {
	runes := []rune(word)
	if len(runes) <= 3 {
		return 1
	}
	runes = trimSilentSuffix(runes)
	if len(runes) > 0 && runes[0] == 'y' {
		runes = runes[1:]
	}
	count := 0
	inRun := false
	for _, r := range runes {
		if isVowel(r) {
			if !inRun {
				count++
			}
			inRun = true
			continue
		}
		inRun = false
	}
	if count < 1 {
		return 1
	}
	return count
}

func trimSilentSuffix(runes []rune) []rune {
	n := len(runes)
	for _, suffix := range []string{"es", "ed", "e"} {
		sl := len(suffix)
		if n <= sl || string(runes[n-sl:]) != suffix {
			continue
		}
		if isVowel(runes[n-sl-1]) {
			return runes
		}
		return runes[:n-sl]
	}
	return runes
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

// NGrams returns contiguous n-token windows joined by single spaces.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

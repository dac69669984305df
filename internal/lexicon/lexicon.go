// Package lexicon holds the static word tables used by text metrics.
package lexicon

import (
	"strings"
	"sync"
)

// Set is a read-only set of lowercase words.
type Set map[string]struct{}

// Has reports whether word is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

func newSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

// Lexicon bundles every word table the aggregator consults.
// A Lexicon is never mutated after construction and is safe to share.
type Lexicon struct {
	fillers             []string
	fillerSet           Set
	positive            Set
	negative            Set
	phraseStopwords     Set
	vocabularyStopwords Set
	common              Set
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex = &Lexicon{
			fillers:             append([]string(nil), fillerWords...),
			fillerSet:           newSet(fillerWords),
			positive:            newSet(strings.Fields(positiveWords)),
			negative:            newSet(strings.Fields(negativeWords)),
			phraseStopwords:     newSet(strings.Fields(phraseStopwords)),
			vocabularyStopwords: newSet(strings.Fields(vocabularyStopwords)),
			common:              newSet(strings.Fields(commonWords)),
		}
	})
	return defaultLex
}

// WithCommonWords returns a copy of l whose common-word list also contains words.
func (l *Lexicon) WithCommonWords(words []string) *Lexicon {
	cp := *l
	common := make(Set, len(l.common)+len(words))
	for w := range l.common {
		common[w] = struct{}{}
	}
	for w := range newSet(words) {
		common[w] = struct{}{}
	}
	cp.common = common
	return &cp
}

// Fillers returns the filler words in display order.
func (l *Lexicon) Fillers() []string {
	return append([]string(nil), l.fillers...)
}

// IsFiller reports whether word is a filler word.
func (l *Lexicon) IsFiller(word string) bool { return l.fillerSet.Has(word) }

// IsPositive reports whether word carries positive sentiment.
func (l *Lexicon) IsPositive(word string) bool { return l.positive.Has(word) }

// IsNegative reports whether word carries negative sentiment.
func (l *Lexicon) IsNegative(word string) bool { return l.negative.Has(word) }

// IsPhraseStopword reports whether word is ignored when ranking phrases.
func (l *Lexicon) IsPhraseStopword(word string) bool { return l.phraseStopwords.Has(word) }

// IsStopword reports whether word is excluded from top-word lists.
func (l *Lexicon) IsStopword(word string) bool { return l.vocabularyStopwords.Has(word) }

// IsCommon reports whether word is in the common-word list.
func (l *Lexicon) IsCommon(word string) bool { return l.common.Has(word) }

// CommonCount returns the size of the common-word list.
func (l *Lexicon) CommonCount() int { return len(l.common) }

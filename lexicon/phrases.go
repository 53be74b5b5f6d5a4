package lexicon

import (
	"sort"
	"strings"
)

// PhraseTable maps multi-word phrases to values. Lookups are keyed by the
// first word and always prefer the longest phrase.
type PhraseTable[V any] struct {
	byFirst map[string][]phraseEntry[V]
}

type phraseEntry[V any] struct {
	words []string
	value V
}

// Add registers phrase (space separated) with value v.
func (t *PhraseTable[V]) Add(phrase string, v V) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return
	}
	if t.byFirst == nil {
		t.byFirst = make(map[string][]phraseEntry[V])
	}
	list := append(t.byFirst[words[0]], phraseEntry[V]{words: words, value: v})
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].words) > len(list[j].words)
	})
	t.byFirst[words[0]] = list
}

// Match returns the value and word count of the longest phrase starting at
// words[i].
func (t PhraseTable[V]) Match(words []string, i int) (V, int, bool) {
	var zero V
	if i < 0 || i >= len(words) || t.byFirst == nil {
		return zero, 0, false
	}
	for _, e := range t.byFirst[words[i]] {
		if i+len(e.words) > len(words) {
			continue
		}
		ok := true
		for k, w := range e.words {
			if words[i+k] != w {
				ok = false
				break
			}
		}
		if ok {
			return e.value, len(e.words), true
		}
	}
	return zero, 0, false
}

// Has reports whether a single word is a complete phrase in the table.
func (t PhraseTable[V]) Has(word string) bool {
	_, n, ok := t.Match([]string{word}, 0)
	return ok && n == 1
}

// Len returns the number of registered phrases.
func (t PhraseTable[V]) Len() int {
	n := 0
	for _, list := range t.byFirst {
		n += len(list)
	}
	return n
}

// Phrases is a set of phrases without values.
type Phrases struct {
	PhraseTable[struct{}]
}

// NewPhrases builds a set from the given phrases.
func NewPhrases(phrases ...string) Phrases {
	var p Phrases
	for _, s := range phrases {
		p.Add(s, struct{}{})
	}
	return p
}

// MatchLen returns the length of the longest phrase at words[i], or 0.
func (p Phrases) MatchLen(words []string, i int) int {
	_, n, _ := p.Match(words, i)
	return n
}

// WordSet is a set of single words.
type WordSet map[string]struct{}

// NewWordSet builds a set from words.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

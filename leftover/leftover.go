// Package leftover rebuilds the part of an utterance that was not consumed by
// a temporal expression.
package leftover

import (
	"strings"
	"unicode"

	"go_dateparse/lexicon"
	"go_dateparse/tokenize"
)

// Surface cuts the consumed tokens out of text and keeps everything else as
// written, case included. Whitespace runs collapse to one space and dangling
// punctuation at either end is dropped. With nothing consumed text is
// returned unchanged.
func Surface(text string, toks []tokenize.Token, consumed []int) string {
	if len(consumed) == 0 {
		return text
	}
	norm := tokenize.Normalize(text)
	buf := []byte(norm)
	for _, idx := range consumed {
		if idx < 0 || idx >= len(toks) {
			continue
		}
		tok := toks[idx]
		for b := tok.Start; b < tok.End && b < len(buf); b++ {
			buf[b] = ' '
		}
	}

	fields := strings.Fields(string(buf))
	for len(fields) > 0 && isPunctOnly(fields[0]) {
		fields = fields[1:]
	}
	for len(fields) > 0 && isPunctOnly(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// Normalized joins the normalized text of the tokens that were not consumed,
// dropping punctuation, the language's drop words, prepositions that led into
// the consumed expression and conjunctions that sat between consumed parts.
func Normalized(toks []tokenize.Token, consumed []int, rules lexicon.LeftoverRules) string {
	used := make([]bool, len(toks))
	for _, idx := range consumed {
		if idx >= 0 && idx < len(toks) {
			used[idx] = true
		}
	}

	skippable := func(k int) bool {
		return !used[k] && (toks[k].Kind == tokenize.Punct || rules.DropWords.Has(toks[k].Text))
	}
	next := func(k int) int {
		j := k + 1
		for j < len(toks) && skippable(j) {
			j++
		}
		return j
	}
	prev := func(k int) int {
		j := k - 1
		for j >= 0 && skippable(j) {
			j--
		}
		return j
	}

	var keep []string
	for k, tok := range toks {
		if used[k] || tok.Kind == tokenize.Punct || rules.DropWords.Has(tok.Text) {
			continue
		}
		if rules.Prepositions.Has(tok.Text) {
			if j := next(k); j < len(toks) && used[j] {
				continue
			}
		}
		if rules.Conjunctions.Has(tok.Text) {
			j, p := next(k), prev(k)
			if j < len(toks) && used[j] && p >= 0 && used[p] {
				continue
			}
		}
		keep = append(keep, tok.Text)
	}
	return strings.Join(keep, " ")
}

func isPunctOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

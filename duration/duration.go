// Package duration extracts spoken durations ("3 days 8 hours", "an hour and
// a half") from an utterance.
package duration

import (
	"time"

	"go_dateparse/leftover"
	"go_dateparse/lexicon"
	"go_dateparse/numwords"
	"go_dateparse/tokenize"
	"go_dateparse/units"
)

// Result is a found duration and the text around it. Length is exact,
// Duration saturates at the largest time.Duration for spans beyond about
// 292 years.
type Result struct {
	Duration time.Duration
	Length   units.Length
	Leftover string
	Consumed []int
}

// Pair is one "<quantity> <unit>" phrase.
type Pair struct {
	Count float64
	Unit  units.Spec
	Start int
	End   int
}

// Extractor finds durations for one language.
type Extractor struct {
	lex *lexicon.Lexicon
	tok *tokenize.Tokenizer
	num *numwords.Parser
}

// New creates an extractor from the components of one language pipeline.
func New(lex *lexicon.Lexicon, tok *tokenize.Tokenizer, num *numwords.Parser) *Extractor {
	return &Extractor{lex: lex, tok: tok, num: num}
}

// Extract sums every quantity/unit pair in text. Calendar units are
// approximated (month = 30 days, year = 365 days). When no pair is found the
// second return value is false and Leftover is text unchanged.
func (e *Extractor) Extract(text string) (Result, bool) {
	toks := e.tok.Tokenize(text)
	total, consumed := e.Scan(toks)
	if len(consumed) == 0 {
		return Result{Leftover: text}, false
	}
	d, _ := total.Duration()
	return Result{
		Duration: d,
		Length:   total,
		Leftover: leftover.Surface(text, toks, consumed),
		Consumed: consumed,
	}, true
}

// Scan walks toks left to right and adds up every pair it finds.
func (e *Extractor) Scan(toks []tokenize.Token) (units.Length, []int) {
	words := tokenize.Texts(toks)
	var total units.Length
	var consumed []int
	for i := 0; i < len(toks); {
		p, ok := ReadPair(e.lex, e.num, toks, words, i)
		if !ok || p.Unit.Kind == units.Weekend {
			i++
			continue
		}
		total = total.Add(p.Unit.Approximate(p.Count))
		for k := p.Start; k < p.End; k++ {
			consumed = append(consumed, k)
		}
		i = p.End
	}
	return total, consumed
}

// ReadPair reads "<quantity> <unit>" at toks[i], including a trailing
// "and a half" after the unit.
func ReadPair(lex *lexicon.Lexicon, num *numwords.Parser, toks []tokenize.Token, words []string, i int) (Pair, bool) {
	n, ok := num.Parse(toks, i)
	if !ok || n.Ordinal {
		return Pair{}, false
	}
	unit, size, ok := lex.Unit(words, n.End)
	if !ok {
		return Pair{}, false
	}
	p := Pair{Count: n.Value, Unit: unit, Start: i, End: n.End + size}

	nums := lex.Numbers
	j := p.End
	if j >= len(toks) || !nums.Connectors.Has(words[j]) {
		return p, true
	}
	j++
	if j < len(toks) && nums.Articles.Has(words[j]) {
		j++
	}
	if j >= len(toks) {
		return p, true
	}
	f, ok := nums.Fractions[words[j]]
	if !ok {
		return p, true
	}
	if _, _, isUnit := lex.Unit(words, j+1); isUnit {
		return p, true
	}
	p.Count += f
	p.End = j + 1
	return p, true
}

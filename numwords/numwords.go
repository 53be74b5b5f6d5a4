// Package numwords reads quantities written as digits or number words.
package numwords

import (
	"math"
	"strconv"
	"strings"

	"go_dateparse/lexicon"
	"go_dateparse/tokenize"
)

// Number is a quantity found in a token sequence.
type Number struct {
	Value    float64
	Start    int // first token index
	End      int // one past the last consumed token
	Digits   bool
	Article  bool // a bare article such as "a" or "an"
	Fraction bool
	Ordinal  bool
	Raw      string // the digit token as written
}

// IsInteger reports whether the value has no fractional part.
func (n Number) IsInteger() bool {
	return n.Value == math.Trunc(n.Value)
}

// Int returns the value truncated to an int.
func (n Number) Int() int {
	return int(n.Value)
}

// Parser parses numbers with the tables of one lexicon. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	lex *lexicon.Lexicon
}

// New creates a parser for lex.
func New(lex *lexicon.Lexicon) *Parser {
	return &Parser{lex: lex}
}

type wordKind int

const (
	none wordKind = iota
	unitWord
	tensWord
	multiplierWord
	connectorWord
)

// Parse reads the number starting at toks[i].
func (p *Parser) Parse(toks []tokenize.Token, i int) (Number, bool) {
	if i < 0 || i >= len(toks) {
		return Number{}, false
	}
	tok := toks[i]
	nums := p.lex.Numbers

	if tok.IsDigits() {
		v, ok := p.parseDigits(tok.Text)
		if !ok {
			return Number{}, false
		}
		n := Number{Value: v, Start: i, End: i + 1, Digits: true, Ordinal: tok.Kind == tokenize.Ordinal, Raw: tok.Text}
		return p.andFraction(toks, n), true
	}
	if tok.Kind != tokenize.Word {
		return Number{}, false
	}

	w := tok.Text
	switch {
	case nums.Articles.Has(w):
		j := i + 1
		if j < len(toks) && nums.Couple.Has(toks[j].Text) {
			return Number{Value: 2, Start: i, End: p.skipFillers(toks, j+1)}, true
		}
		if j < len(toks) {
			if f, ok := nums.Fractions[toks[j].Text]; ok {
				return Number{Value: f, Start: i, End: p.skipFillers(toks, j+1), Fraction: true}, true
			}
			if _, ok := nums.Multipliers[toks[j].Text]; ok {
				if n, ok := p.parseWords(toks, j, 1); ok {
					n.Start = i
					return p.andFraction(toks, n), true
				}
			}
		}
		n := p.andFraction(toks, Number{Value: 1, Start: i, End: i + 1})
		n.Article = n.End == i+1
		return n, true
	case nums.Couple.Has(w):
		return Number{Value: 2, Start: i, End: p.skipFillers(toks, i+1)}, true
	}
	if f, ok := nums.Fractions[w]; ok {
		return Number{Value: f, Start: i, End: p.skipFillers(toks, i+1), Fraction: true}, true
	}

	n, ok := p.parseWords(toks, i, 0)
	if !ok {
		return Number{}, false
	}
	return p.andFraction(toks, p.digitTail(toks, n)), true
}

// digitTail extends a word number ending in a multiplier over a following
// digit group smaller than that multiplier: "three hundred 91.6".
func (p *Parser) digitTail(toks []tokenize.Token, n Number) Number {
	scale, ok := p.lex.Numbers.Multipliers[toks[n.End-1].Text]
	if !ok || n.End >= len(toks) || !toks[n.End].IsDigits() || toks[n.End].Kind == tokenize.Ordinal {
		return n
	}
	v, ok := p.parseDigits(toks[n.End].Text)
	if !ok || v >= scale {
		return n
	}
	n.Value += v
	n.End++
	return n
}

// parseWords composes number words: "twenty five", "two hundred and six",
// "treinta y cinco", "einundzwanzig".
func (p *Parser) parseWords(toks []tokenize.Token, i int, seed float64) (Number, bool) {
	nums := p.lex.Numbers
	total, current := 0.0, seed
	last := none
	if seed > 0 {
		last = unitWord
	}
	lastUnit := seed
	j := i

loop:
	for ; j < len(toks); j++ {
		if toks[j].Kind != tokenize.Word {
			break
		}
		w := toks[j].Text
		if v, ok := nums.Units[w]; ok {
			switch {
			case last == unitWord && !(lastUnit == 10 && v < 10):
				break loop
			case last == tensWord && v >= 10:
				break loop
			}
			current += v
			last, lastUnit = unitWord, v
			continue
		}
		if v, ok := nums.Tens[w]; ok {
			if last == unitWord || last == tensWord {
				break
			}
			current += v
			last = tensWord
			continue
		}
		if v, ok := nums.Multipliers[w]; ok {
			if last == none || last == connectorWord {
				break
			}
			if current == 0 {
				current = 1
			}
			if v == 100 {
				current *= v
			} else {
				total += current * v
				current = 0
			}
			last = multiplierWord
			continue
		}
		if nums.Connectors.Has(w) && (last == multiplierWord || last == tensWord) && j+1 < len(toks) {
			if v, ok := nums.Units[toks[j+1].Text]; ok && (last == multiplierWord || v < 10) {
				last = connectorWord
				continue
			}
			break
		}
		if last == none || last == multiplierWord {
			if v, ok := p.compound(w); ok {
				current += v
				last = tensWord
				continue
			}
			if v, ok := p.suffixFraction(w); ok {
				current += v
				last = tensWord
				j++
				break
			}
		}
		break
	}
	if last == connectorWord {
		j--
	}
	if j == i || last == none {
		return Number{}, false
	}
	n := Number{Value: total + current, Start: i, End: j}

	// "three quarters of an hour"
	if j < len(toks) {
		if f, ok := nums.Fractions[toks[j].Text]; ok && n.Value > 0 {
			n.Value *= f
			n.Fraction = true
			n.End = p.skipFillers(toks, j+1)
		}
	}
	return n, true
}

// andFraction extends n over a trailing "and a half".
func (p *Parser) andFraction(toks []tokenize.Token, n Number) Number {
	nums := p.lex.Numbers
	j := n.End
	if j >= len(toks) || !nums.Connectors.Has(toks[j].Text) {
		return n
	}
	j++
	if j < len(toks) && nums.Articles.Has(toks[j].Text) {
		j++
	}
	if j >= len(toks) {
		return n
	}
	f, ok := nums.Fractions[toks[j].Text]
	if !ok {
		return n
	}
	n.Value += f
	n.End = j + 1
	return n
}

func (p *Parser) skipFillers(toks []tokenize.Token, j int) int {
	for j < len(toks) && p.lex.Numbers.FractionFillers.Has(toks[j].Text) {
		j++
	}
	return j
}

func (p *Parser) parseDigits(s string) (float64, bool) {
	sep := p.lex.Numbers.DecimalSeparator
	if strings.Count(s, sep) == 1 {
		s = strings.Replace(s, sep, ".", 1)
	} else if strings.ContainsAny(s, ".,") {
		return 0, false
	}
	if strings.ContainsAny(s, ":/-") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Value returns the value of a single number word.
func (p *Parser) Value(w string) (float64, bool) {
	nums := p.lex.Numbers
	if v, ok := nums.Units[w]; ok {
		return v, true
	}
	if v, ok := nums.Tens[w]; ok {
		return v, true
	}
	if v, ok := p.compound(w); ok {
		return v, true
	}
	return p.suffixFraction(w)
}

// compound reads single-word numbers joined by a connector, such as German
// "einundzwanzig" or Danish "enogtyve".
func (p *Parser) compound(w string) (float64, bool) {
	nums := p.lex.Numbers
	for _, joiner := range nums.CompoundJoiners {
		for off := 0; ; {
			idx := strings.Index(w[off:], joiner)
			if idx < 0 {
				break
			}
			idx += off
			left, right := w[:idx], w[idx+len(joiner):]
			lv, lok := nums.Units[left]
			rv, rok := nums.Tens[right]
			if lok && rok && lv < 10 {
				return lv + rv, true
			}
			off = idx + 1
		}
	}
	return 0, false
}

// suffixFraction reads words like "viereinhalb".
func (p *Parser) suffixFraction(w string) (float64, bool) {
	nums := p.lex.Numbers
	for suffix, f := range nums.FractionSuffixes {
		if len(w) <= len(suffix) || !strings.HasSuffix(w, suffix) {
			continue
		}
		prefix := strings.TrimSuffix(w, suffix)
		if v, ok := nums.Units[prefix]; ok {
			return v + f, true
		}
		if v, ok := p.compound(prefix); ok {
			return v + f, true
		}
	}
	return 0, false
}

// ParseOrdinal reads a day-of-month style ordinal at toks[i]: "3rd", "3.",
// "third", "twenty first", "einundzwanzigsten". It returns the value and the
// index after the ordinal.
func (p *Parser) ParseOrdinal(toks []tokenize.Token, i int) (int, int, bool) {
	if i < 0 || i >= len(toks) {
		return 0, 0, false
	}
	tok := toks[i]
	if tok.Kind == tokenize.Ordinal {
		v, err := strconv.Atoi(tok.Text)
		if err != nil {
			return 0, 0, false
		}
		return v, i + 1, true
	}
	if tok.Kind != tokenize.Word {
		return 0, 0, false
	}
	if v, ok := p.ordinalWord(tok.Text); ok {
		return v, i + 1, true
	}
	nums := p.lex.Numbers
	if tens, ok := nums.Tens[tok.Text]; ok && i+1 < len(toks) {
		if v, ok := p.ordinalWord(toks[i+1].Text); ok && v < 10 {
			return int(tens) + v, i + 2, true
		}
	}
	for _, joiner := range nums.CompoundJoiners {
		idx := strings.LastIndex(tok.Text, joiner)
		if idx <= 0 {
			continue
		}
		left, right := tok.Text[:idx], tok.Text[idx+len(joiner):]
		lv, lok := nums.Units[left]
		rv, rok := p.ordinalWord(right)
		if lok && rok && lv < 10 && rv >= 20 {
			return int(lv) + rv, i + 1, true
		}
	}
	return 0, 0, false
}

func (p *Parser) ordinalWord(w string) (int, bool) {
	nums := p.lex.Numbers
	if len(nums.OrdinalEndings) == 0 {
		v, ok := nums.Ordinals[w]
		return v, ok
	}
	for _, ending := range nums.OrdinalEndings {
		if len(w) <= len(ending) || !strings.HasSuffix(w, ending) {
			continue
		}
		if v, ok := nums.Ordinals[strings.TrimSuffix(w, ending)]; ok {
			return v, true
		}
	}
	return 0, false
}

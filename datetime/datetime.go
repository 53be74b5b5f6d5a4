// Package datetime resolves spoken dates and times ("next friday at 3pm",
// "in 2 weeks", "the 4th of july at noon") against an anchor.
//
// Every recognizer scans the token list independently and yields a Match.
// Matches are merged afterwards: an absolute date beats a relative day,
// offsets are applied next and the time of day comes last.
package datetime

import (
	"sort"
	"time"

	"golang.org/x/text/language"

	"go_dateparse/leftover"
	"go_dateparse/lexicon"
	"go_dateparse/numwords"
	"go_dateparse/tokenize"
	"go_dateparse/units"
)

// Result is a resolved point in time and the text around it.
type Result struct {
	Time     time.Time
	Leftover string
	Consumed []int
	Matches  []Match
}

// Resolver finds and resolves date/time fragments for one language. It holds
// no mutable state and is safe for concurrent use.
type Resolver struct {
	lex        *lexicon.Lexicon
	num        *numwords.Parser
	monthFirst bool
}

// New creates a resolver from the components of one language pipeline.
func New(lex *lexicon.Lexicon, num *numwords.Parser) *Resolver {
	return &Resolver{lex: lex, num: num, monthFirst: monthFirst(lex.Tag)}
}

// monthFirst reports whether numeric dates are written month first in the
// region of tag.
func monthFirst(tag string) bool {
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	region, conf := t.Region()
	return conf == language.Exact && region.String() == "US"
}

type rule struct {
	name string
	scan func(*scan, int) (Match, bool)
}

// rules are tried in order at every unconsumed position, the first match
// wins.
var rules = []rule{
	{"compact", (*scan).compact},
	{"date_literal", (*scan).dateLiteral},
	{"offset", (*scan).offset},
	{"relative_unit", (*scan).relativeUnit},
	{"weekday", (*scan).weekday},
	{"tonight", (*scan).tonight},
	{"relative_day", (*scan).relativeDay},
	{"now", (*scan).now},
	{"month_date", (*scan).monthDate},
	{"year", (*scan).year},
	{"time_phrase", (*scan).timePhrase},
	{"clock", (*scan).clock},
	{"day_period", (*scan).dayPeriod},
}

// Resolve finds every date/time fragment in toks and merges them into one
// point in time. defaultTime is used when no time of day was said; nil means
// midnight. The second return value is false when nothing was found.
func (r *Resolver) Resolve(toks []tokenize.Token, anchor time.Time, defaultTime *lexicon.Clock) (Result, bool) {
	s := r.newScan(toks, anchor)
	s.run()
	if len(s.matches) == 0 {
		return Result{}, false
	}
	consumed := s.consumed()
	return Result{
		Time:     s.merge(defaultTime),
		Leftover: leftover.Normalized(toks, consumed, r.lex.Leftover),
		Consumed: consumed,
		Matches:  s.matches,
	}, true
}

// Scan returns the fragments found in toks without merging them.
func (r *Resolver) Scan(toks []tokenize.Token, anchor time.Time) []Match {
	s := r.newScan(toks, anchor)
	s.run()
	return s.matches
}

// scan is the state of one resolution pass.
type scan struct {
	*Resolver
	toks    []tokenize.Token
	words   []string
	used    []bool
	anchor  time.Time
	today   time.Time
	past    bool
	matches []Match
}

func (r *Resolver) newScan(toks []tokenize.Token, anchor time.Time) *scan {
	s := &scan{
		Resolver: r,
		toks:     toks,
		words:    tokenize.Texts(toks),
		used:     make([]bool, len(toks)),
		anchor:   anchor,
		today:    midnight(anchor),
	}
	for _, w := range s.words {
		if r.lex.Markers.PastTense.Has(w) {
			s.past = true
			break
		}
	}
	return s
}

func (s *scan) run() {
	for i := 0; i < len(s.toks); i++ {
		if s.used[i] || s.toks[i].Kind == tokenize.Punct && s.words[i] != "+" {
			continue
		}
		for _, rl := range rules {
			m, ok := rl.scan(s, i)
			if !ok || m.End <= m.Start {
				continue
			}
			m.Rule = rl.name
			for k := m.Start; k < m.End; k++ {
				s.used[k] = true
			}
			s.matches = append(s.matches, m)
			i = m.End - 1
			break
		}
	}
}

func (s *scan) consumed() []int {
	var idx []int
	for _, m := range s.matches {
		idx = append(idx, m.span()...)
	}
	sort.Ints(idx)
	return idx
}

// word returns the token text at i, or "" out of range.
func (s *scan) word(i int) string {
	if i < 0 || i >= len(s.words) {
		return ""
	}
	return s.words[i]
}

// skipFillers returns the first index at or after i that is not a filler
// word such as "the".
func (s *scan) skipFillers(i int) int {
	for i < len(s.words) && s.lex.Markers.Fillers.Has(s.words[i]) {
		i++
	}
	return i
}

// prevWord returns the index of the closest token before i that is not a
// filler, or -1.
func (s *scan) prevWord(i int) int {
	k := i - 1
	for k >= 0 && s.lex.Markers.Fillers.Has(s.words[k]) {
		k--
	}
	return k
}

// merge combines the matches into one point in time.
func (s *scan) merge(defaultTime *lexicon.Clock) time.Time {
	var (
		date      *DatePart
		day       *time.Time
		offset    units.Offset
		hasOffset bool
		keepClock bool
		clock     *TimePart
		period    *lexicon.Period
		now       bool
	)
	for _, m := range s.matches {
		if m.Date != nil && date == nil {
			date = m.Date
		}
		if m.Day != nil && day == nil {
			day = m.Day
		}
		if m.Offset != nil {
			offset = offset.Add(*m.Offset)
			hasOffset = true
		}
		if m.Time != nil && clock == nil {
			clock = m.Time
		}
		if m.Period != nil && period == nil {
			period = m.Period
		}
		keepClock = keepClock || m.KeepClock
		now = now || m.Now
	}

	loc := s.anchor.Location()
	base := s.today
	dated := false
	switch {
	case date != nil:
		base, dated = date.In(loc), true
	case day != nil:
		base, dated = *day, true
	}

	if hasOffset {
		if keepClock {
			ref := s.anchor
			if dated {
				ref = at(base, s.anchor.Hour(), s.anchor.Minute(), s.anchor.Second())
			}
			t := offset.ApplyTo(ref)
			if clock == nil && period == nil {
				return t
			}
			base = midnight(t)
		} else {
			base = offset.ApplyTo(base)
		}
		dated = true
	}

	switch {
	case clock != nil:
		t := s.resolveClock(*clock, period, base)
		if !dated && t.Before(s.anchor) {
			t = t.AddDate(0, 0, 1)
		}
		return t
	case period != nil:
		return at(base, period.Hour, 0, 0)
	case now:
		return at(base, s.anchor.Hour(), s.anchor.Minute(), s.anchor.Second())
	case defaultTime != nil:
		return at(base, defaultTime.Hour, defaultTime.Minute, 0)
	}
	return base
}

package datetime

import (
	"math"
	"time"

	"go_dateparse/duration"
	"go_dateparse/lexicon"
	"go_dateparse/units"
)

type markerKind int

const (
	noMarker markerKind = iota
	nextMarker
	lastMarker
	thisMarker
)

// marker matches the longest next/last/this marker at i.
func (s *scan) marker(i int) (markerKind, int) {
	mk := s.lex.Markers
	best, size := noMarker, 0
	for _, c := range []struct {
		kind    markerKind
		phrases lexicon.Phrases
	}{
		{nextMarker, mk.Next},
		{lastMarker, mk.Last},
		{thisMarker, mk.This},
	} {
		if n := c.phrases.MatchLen(s.words, i); n > size {
			best, size = c.kind, n
		}
	}
	return best, size
}

// postMarker matches a next/last marker written after its noun ("la semana
// que viene", "lunes pasado").
func (s *scan) postMarker(i int) (markerKind, int) {
	kind, n := s.marker(i)
	if kind == nextMarker || kind == lastMarker {
		return kind, n
	}
	return noMarker, 0
}

func (s *scan) daysFromToday(n int) *time.Time {
	day := s.today.AddDate(0, 0, n)
	return &day
}

// relativeDay reads today, tomorrow, day after tomorrow and friends.
func (s *scan) relativeDay(i int) (Match, bool) {
	n, size, ok := s.lex.RelativeDays.Match(s.words, i)
	if !ok {
		return Match{}, false
	}
	// "morgen" is tomorrow, "am morgen" and "heute morgen" are a morning.
	if _, psize, period := s.lex.Time.DayPeriods.Match(s.words, i); period && psize >= size {
		if p := i - 1; p >= 0 && (s.used[p] || s.lex.Markers.Fillers.Has(s.words[p])) {
			return Match{}, false
		}
	}
	return Match{Start: i, End: i + size, Day: s.daysFromToday(n)}, true
}

func (s *scan) tonight(i int) (Match, bool) {
	n := s.lex.Time.Tonight.MatchLen(s.words, i)
	if n == 0 {
		return Match{}, false
	}
	period := s.lex.Time.TonightPeriod
	return Match{Start: i, End: i + n, Day: s.daysFromToday(0), Period: &period}, true
}

func (s *scan) now(i int) (Match, bool) {
	n := s.lex.Markers.Now.MatchLen(s.words, i)
	if n == 0 {
		return Match{}, false
	}
	return Match{Start: i, End: i + n, Now: true}, true
}

// weekday reads "[this|next|last] <weekday>". A bare weekday is the next
// occurrence within a week, today included, unless the sentence is in the
// past tense.
func (s *scan) weekday(i int) (Match, bool) {
	kind, n := s.marker(i)
	j := i
	if n > 0 {
		j = s.skipFillers(i + n)
	}
	wd, size, ok := s.lex.Weekday(s.words, j)
	if !ok {
		return Match{}, false
	}
	end := j + size
	if kind == noMarker {
		var pn int
		kind, pn = s.postMarker(end)
		end += pn
	}

	d := (int(wd) - int(s.anchor.Weekday()) + 7) % 7
	switch kind {
	case nextMarker:
		if d <= s.lex.NextWeekdayThreshold {
			d += 7
		}
	case lastMarker:
		d -= 7
	case noMarker:
		if s.past && d > 0 {
			d -= 7
		}
	}
	return Match{Start: i, End: end, Day: s.daysFromToday(d)}, true
}

// relativeUnit reads a marker with a unit and no quantity: "next week",
// "last month", "this year", "la semana que viene".
func (s *scan) relativeUnit(i int) (Match, bool) {
	kind, n := s.marker(i)
	var (
		unit units.Spec
		end  int
	)
	if n > 0 {
		j := s.skipFillers(i + n)
		u, size, ok := s.lex.Unit(s.words, j)
		if !ok {
			return Match{}, false
		}
		unit, end = u, j+size
	} else {
		u, size, ok := s.lex.Unit(s.words, i)
		if !ok {
			return Match{}, false
		}
		pk, pn := s.postMarker(i + size)
		if pk == noMarker {
			return Match{}, false
		}
		unit, kind, end = u, pk, i+size+pn
	}

	m := Match{Start: i, End: end}
	wd := int(s.anchor.Weekday())
	y, mo, _ := s.today.Date()
	loc := s.today.Location()

	switch kind {
	case thisMarker:
		m.Day = s.daysFromToday(0)
	case nextMarker:
		switch {
		case unit == units.Week:
			d := (int(time.Monday) - wd + 7) % 7
			if d == 0 {
				d = 7
			}
			m.Day = s.daysFromToday(d)
		case unit == units.Month:
			first := time.Date(y, mo+1, 1, 0, 0, 0, 0, loc)
			m.Day = &first
		case unit == units.Year:
			first := time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
			m.Day = &first
		case unit.Kind == units.Weekend:
			d := (int(time.Saturday) - wd + 7) % 7
			if d == 0 {
				d = 7
			}
			m.Day = s.daysFromToday(d)
		default:
			off := unit.Offset(1)
			m.Offset, m.KeepClock = &off, off.HasClock()
		}
	case lastMarker:
		switch {
		case unit == units.Week:
			m.Day = s.daysFromToday(-7)
		case unit == units.Month:
			first := time.Date(y, mo-1, 1, 0, 0, 0, 0, loc)
			m.Day = &first
		case unit.Kind == units.Weekend:
			back := (wd - int(time.Saturday) + 7) % 7
			if back == 0 {
				back = 7
			}
			m.Day = s.daysFromToday(-back)
		default:
			off := unit.Offset(1).Neg()
			m.Offset, m.KeepClock = &off, off.HasClock()
		}
	}
	return m, true
}

// offset reads "<qty> <unit> [and <qty> <unit>]..." with a prefix marker
// ("in", "within", "vor", "hace") or a suffix marker ("ago", "later",
// "from tomorrow"). One of the two is required.
func (s *scan) offset(i int) (Match, bool) {
	mk := s.lex.Markers
	sign, within, prefix := 1, false, 0
	for _, c := range []struct {
		phrases lexicon.Phrases
		sign    int
		within  bool
	}{
		{mk.In, 1, false},
		{mk.Within, 1, true},
		{mk.For, 1, false},
		{mk.Next, 1, false},
		{mk.Last, -1, false},
		{mk.AgoPrefix, -1, false},
	} {
		if n := c.phrases.MatchLen(s.words, i); n > prefix {
			prefix, sign, within = n, c.sign, c.within
		}
	}

	pairs, k := s.readPairs(i + prefix)
	if len(pairs) == 0 && within {
		pairs, k = s.articleUnit(i + prefix)
	}
	if len(pairs) == 0 {
		return Match{}, false
	}

	suffixed := false
	var base *time.Time
	ago, later, from := mk.AgoSuffix.MatchLen(s.words, k), mk.Later.MatchLen(s.words, k), mk.From.MatchLen(s.words, k)
	// "depois de amanhã" is a day of its own, not "depois de" + "amanhã"
	if n, size, ok := s.lex.RelativeDays.Match(s.words, k); ok && from > 0 && size > from {
		base, k, suffixed = s.daysFromToday(n), k+size, true
		ago, later, from = 0, 0, 0
	}
	switch {
	case ago > 0 && ago >= later && ago >= from:
		sign, k, suffixed = -1, k+ago, true
	case later > 0 && later >= from:
		k, suffixed = k+later, true
	case from > 0:
		if day, end, ok := s.baseDay(k + from); ok {
			base, k, suffixed = day, end, true
		}
	}
	if prefix == 0 && !suffixed {
		return Match{}, false
	}

	if pairs[0].Unit.Kind == units.Weekend {
		if len(pairs) > 1 || base != nil {
			return Match{}, false
		}
		return Match{Start: i, End: k, Day: s.weekendDay(pairs[0].Count, sign)}, true
	}

	var off units.Offset
	for _, p := range pairs {
		if p.Unit.Kind == units.Weekend {
			return Match{}, false
		}
		if within {
			off = off.Add(p.Unit.Approximate(p.Count).Offset())
		} else {
			off = off.Add(p.Unit.Offset(p.Count))
		}
	}
	if sign < 0 {
		off = off.Neg()
	}
	return Match{Start: i, End: k, Day: base, Offset: &off, KeepClock: off.HasClock()}, true
}

// readPairs reads consecutive quantity/unit pairs separated by nothing, a
// comma or a connector. It returns the pairs and the index after the last.
func (s *scan) readPairs(j int) ([]duration.Pair, int) {
	var pairs []duration.Pair
	k := j
	for {
		p, ok := duration.ReadPair(s.lex, s.num, s.toks, s.words, k)
		if !ok {
			break
		}
		pairs = append(pairs, p)
		k = p.End

		m := k
		if s.word(m) == "," {
			m++
		}
		if s.lex.Numbers.Connectors.Has(s.word(m)) {
			m++
		}
		if m == k {
			continue
		}
		if _, ok := duration.ReadPair(s.lex, s.num, s.toks, s.words, m); !ok {
			break
		}
		k = m
	}
	return pairs, k
}

// articleUnit reads a unit behind a filler as a single one: "within the
// hour".
func (s *scan) articleUnit(j int) ([]duration.Pair, int) {
	k := s.skipFillers(j)
	if k == j {
		return nil, j
	}
	u, size, ok := s.lex.Unit(s.words, k)
	if !ok {
		return nil, j
	}
	return []duration.Pair{{Count: 1, Unit: u, Start: k, End: k + size}}, k + size
}

// baseDay reads the reference point after "from"/"after": a relative day, a
// weekday phrase or "now". Fillers and prepositions in front of it are
// skipped ("fra på lørdag"). A nil day means now, which leaves the offset
// counted from today.
func (s *scan) baseDay(j int) (*time.Time, int, bool) {
	for ; j < len(s.words); j++ {
		if n, size, ok := s.lex.RelativeDays.Match(s.words, j); ok {
			return s.daysFromToday(n), j + size, true
		}
		if m, ok := s.weekday(j); ok {
			return m.Day, m.End, true
		}
		if n := s.lex.Markers.Now.MatchLen(s.words, j); n > 0 {
			return nil, j + n, true
		}
		w := s.words[j]
		if !s.lex.Markers.Fillers.Has(w) && !s.lex.Leftover.Prepositions.Has(w) {
			break
		}
	}
	return nil, 0, false
}

// weekendDay resolves "in N weekends" to the Monday after the Nth coming
// weekend and "N weekends ago" to the Friday before the Nth past one.
func (s *scan) weekendDay(count float64, sign int) *time.Time {
	n := int(math.Max(1, math.Round(count)))
	wd := int(s.anchor.Weekday())
	if sign > 0 {
		d := (int(time.Saturday) - wd + 7) % 7
		if d == 0 {
			d = 7
		}
		return s.daysFromToday(d + 2 + 7*(n-1))
	}
	back := (wd - int(time.Friday) + 7) % 7
	if back == 0 {
		back = 7
	}
	return s.daysFromToday(-back - 7*(n-1))
}

package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"go_dateparse/tokenize"
	"go_dateparse/units"
)

// Numeric layouts tried when dateparse cannot read a literal or when the
// literal uses dots, which dateparse always reads month first.
var (
	dayFirstLayouts = []string{
		"2.1.2006",
		"2.1.06",
		"2-1-2006",
		"2/1/2006",
		"2/1/06",
		"2006-1-2",
		"2006/1/2",
	}
	monthFirstLayouts = []string{
		"1.2.2006",
		"1.2.06",
		"1-2-2006",
		"1/2/2006",
		"1/2/06",
		"2006-1-2",
		"2006/1/2",
	}
)

// dateLiteral reads numeric dates: 2017-06-05, 05/06/2017, 5.6.2017, 6/5.
// An ISO date directly followed by HH:MM takes the time as well.
func (s *scan) dateLiteral(i int) (Match, bool) {
	tok := s.toks[i]
	if tok.Kind != tokenize.Number || !isDateLiteral(tok.Text) {
		return Match{}, false
	}
	d, ok := s.parseDateLiteral(tok.Text)
	if !ok {
		return Match{}, false
	}
	m := Match{Start: i, End: i + 1, Date: &d}
	if strings.Count(tok.Text, "-") == 2 {
		if tp, ok := parseClock(s.word(i+1), ":"); ok {
			tp.Exact = true
			m.Time, m.End = &tp, i+2
		}
	}
	return m, true
}

func isDateLiteral(text string) bool {
	if strings.ContainsAny(text, ":,") {
		return false
	}
	dashes, slashes, dots := strings.Count(text, "-"), strings.Count(text, "/"), strings.Count(text, ".")
	switch {
	case dashes == 2 && slashes == 0 && dots == 0:
		return true
	case slashes >= 1 && slashes <= 2 && dashes == 0 && dots == 0:
		return true
	case dots == 2 && dashes == 0 && slashes == 0:
		return true
	}
	return false
}

func (s *scan) parseDateLiteral(text string) (DatePart, bool) {
	if strings.Count(text, "/") == 1 {
		return s.parseShortDate(text)
	}
	loc := s.anchor.Location()
	var t time.Time
	var err error
	if !strings.Contains(text, ".") {
		t, err = dateparse.ParseIn(text, loc, dateparse.PreferMonthFirst(s.monthFirst))
	}
	if strings.Contains(text, ".") || err != nil {
		t, err = s.parseLayouts(text, loc)
		if err != nil {
			return DatePart{}, false
		}
	}
	return DatePart{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

func (s *scan) parseLayouts(text string, loc *time.Location) (time.Time, error) {
	layouts := dayFirstLayouts
	if s.monthFirst {
		layouts = monthFirstLayouts
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parseShortDate reads day/month (month/day in the US) without a year.
func (s *scan) parseShortDate(text string) (DatePart, bool) {
	a, b, _ := strings.Cut(text, "/")
	first, err1 := strconv.Atoi(a)
	second, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return DatePart{}, false
	}
	day, month := first, second
	if s.monthFirst {
		day, month = second, first
	}
	if month < 1 || month > 12 {
		return DatePart{}, false
	}
	return s.completeDate(time.Month(month), day, 0, noMarker)
}

// monthDate reads dates written with a month name: "june 5th", "july the
// 4th, 2018", "the 4th of july", "3. dezember", "5 de junio de 2017",
// "in september", "next march".
func (s *scan) monthDate(i int) (Match, bool) {
	if m, ok := s.monthFirstDate(i); ok {
		return m, true
	}
	return s.dayFirstDate(i)
}

func (s *scan) monthFirstDate(i int) (Match, bool) {
	kind, n := s.marker(i)
	j := i
	if n > 0 {
		j = s.skipFillers(i + n)
	}
	month, size, ok := s.lex.Month(s.words, j)
	if !ok {
		return Match{}, false
	}
	end := j + size

	k := s.skipFillers(end)
	if day, dEnd, ordinal, ok := s.dayOfMonth(k); ok && (k == end || ordinal) {
		year, yEnd := s.yearAfter(dEnd)
		d, ok := s.completeDate(month, day, year, kind)
		if !ok {
			return Match{}, false
		}
		return Match{Start: i, End: yEnd, Date: &d}, true
	}

	if year, yEnd := s.yearAfter(end); year > 0 {
		return Match{Start: i, End: yEnd, Date: &DatePart{Year: year, Month: month, Day: 1}}, true
	}

	if kind == noMarker && size == 1 && s.lex.AmbiguousMonths.Has(s.words[j]) && !s.monthContext(j) {
		return Match{}, false
	}
	d, ok := s.completeDate(month, 0, 0, kind)
	if !ok {
		return Match{}, false
	}
	return Match{Start: i, End: end, Date: &d}, true
}

func (s *scan) dayFirstDate(i int) (Match, bool) {
	day, k, _, ok := s.dayOfMonth(i)
	if !ok {
		return Match{}, false
	}
	k += s.lex.Markers.Of.MatchLen(s.words, k)
	k = s.skipFillers(k)
	month, size, ok := s.lex.Month(s.words, k)
	if !ok {
		return Match{}, false
	}
	year, end := s.yearAfter(k + size)
	d, ok := s.completeDate(month, day, year, noMarker)
	if !ok {
		return Match{}, false
	}
	return Match{Start: i, End: end, Date: &d}, true
}

// monthContext reports whether an ambiguous month word ("may", "march") is
// introduced by a preposition such as "in" or "of".
func (s *scan) monthContext(j int) bool {
	p := s.prevWord(j)
	if p < 0 {
		return false
	}
	w := s.words[p]
	return s.lex.Leftover.Prepositions.Has(w) || s.lex.Markers.Of.Has(w) || s.lex.Markers.In.Has(w)
}

// dayOfMonth reads a day number at k: an ordinal ("3rd", "third", "3.") or
// plain digits that are not an hour or a quantity.
func (s *scan) dayOfMonth(k int) (int, int, bool, bool) {
	if k >= len(s.toks) {
		return 0, 0, false, false
	}
	if v, end, ok := s.num.ParseOrdinal(s.toks, k); ok {
		if v < 1 || v > 31 {
			return 0, 0, false, false
		}
		return v, end, true, true
	}
	tok := s.toks[k]
	if tok.Kind != tokenize.Number || len(tok.Text) > 2 {
		return 0, 0, false, false
	}
	v, err := strconv.Atoi(tok.Text)
	if err != nil || v < 1 || v > 31 {
		return 0, 0, false, false
	}
	if s.isMeridiem(k+1) || s.lex.Time.ClockWords.MatchLen(s.words, k+1) > 0 {
		return 0, 0, false, false
	}
	if _, _, unit := s.lex.Unit(s.words, k+1); unit {
		return 0, 0, false, false
	}
	return v, k + 1, false, true
}

// yearAfter reads an optional year after a date: ", 2018", "de 2017". It
// returns 0 and k when there is none.
func (s *scan) yearAfter(k int) (int, int) {
	j := k
	if s.word(j) == "," {
		j++
	}
	j += s.lex.Markers.Of.MatchLen(s.words, j)
	if y, ok := s.yearAt(j); ok {
		if _, _, unit := s.lex.Unit(s.words, j+1); !unit {
			return y, j + 1
		}
	}
	return 0, k
}

func (s *scan) yearAt(j int) (int, bool) {
	if j >= len(s.toks) || s.toks[j].Kind != tokenize.Number || len(s.words[j]) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s.words[j])
	if err != nil {
		return 0, false
	}
	return y, true
}

// completeDate picks the year of a date written without one and validates
// the day. A zero day means the month alone was said.
//
// Without a marker the next occurrence is chosen (the current month counts
// for a month alone), or the most recent one when the sentence is in the
// past tense.
func (s *scan) completeDate(month time.Month, day, year int, kind markerKind) (DatePart, bool) {
	if year == 0 {
		year = s.anchor.Year()
		cmp := compareDate(month, day, s.today)
		switch {
		case kind == nextMarker:
			if cmp <= 0 {
				year++
			}
		case kind == lastMarker:
			if cmp >= 0 {
				year--
			}
		case kind == thisMarker:
		case s.past:
			if cmp > 0 {
				year--
			}
		default:
			if cmp < 0 {
				year++
			}
		}
	}
	if day == 0 {
		return DatePart{Year: year, Month: month, Day: 1}, true
	}
	if day > units.DaysIn(year, month) {
		return DatePart{}, false
	}
	return DatePart{Year: year, Month: month, Day: day}, true
}

// compareDate compares month/day with the date of t in the same year. With
// a zero day only the months are compared.
func compareDate(month time.Month, day int, t time.Time) int {
	switch {
	case month < t.Month():
		return -1
	case month > t.Month():
		return 1
	case day == 0:
		return 0
	case day < t.Day():
		return -1
	case day > t.Day():
		return 1
	}
	return 0
}

// year reads "in 2007" and "in the year 2007".
func (s *scan) year(i int) (Match, bool) {
	n := s.lex.Markers.In.MatchLen(s.words, i)
	if n == 0 {
		return Match{}, false
	}
	j := s.skipFillers(i + n)
	if u, size, ok := s.lex.Unit(s.words, j); ok && u == units.Year {
		j += size
	}
	y, ok := s.yearAt(j)
	if !ok {
		return Match{}, false
	}
	if _, _, unit := s.lex.Unit(s.words, j+1); unit {
		return Match{}, false
	}
	month := s.today.Month()
	day := min(s.today.Day(), units.DaysIn(y, month))
	return Match{Start: i, End: j + 1, Date: &DatePart{Year: y, Month: month, Day: day}}, true
}

package datetime

import (
	"math"
	"strconv"
	"strings"

	"go_dateparse/lexicon"
	"go_dateparse/tokenize"
	"go_dateparse/units"
)

// clock reads explicit times of day: named times ("noon"), "10:45",
// "3pm", "7 30 pm", "10 o'clock", "7 uhr 30", "0700 hours", "at 6".
func (s *scan) clock(i int) (Match, bool) {
	t := s.lex.Time
	if c, n, ok := t.NamedTimes.Match(s.words, i); ok {
		tp := TimePart{Hour: c.Hour, Minute: c.Minute, Exact: true}
		return Match{Start: i, End: i + n, Time: &tp}, true
	}

	tok := s.toks[i]
	if tok.Kind == tokenize.Number {
		if tp, ok := parseClock(tok.Text, t.Separators); ok {
			end := s.clockSuffix(&tp, i+1)
			return Match{Start: i, End: end, Time: &tp}, true
		}
		if m, ok := s.military(i); ok {
			return m, true
		}
	}

	h, j, ok := s.hourAt(i)
	if !ok {
		return Match{}, false
	}
	tp := TimePart{Hour: h, Exact: hasLeadingZero(tok)}

	// 10 o'clock, 7 uhr 30; "uur" and "heures" are units as well
	if n := t.ClockWords.MatchLen(s.words, j); n > 0 {
		if s.isUnit(j) && !s.afterHourPreposition(i) && !s.beforeDayPeriod(j+n) {
			return Match{}, false
		}
		end := j + n
		if minute, mEnd, ok := s.minuteAt(end); ok && !s.isUnit(mEnd) {
			tp.Minute, end = minute, mEnd
		}
		end = s.clockSuffix(&tp, end)
		return Match{Start: i, End: end, Time: &tp}, true
	}
	if s.isUnit(j) {
		return Match{}, false
	}

	// 3pm, 7 30 pm
	if mer, n := s.meridiemAt(j); n > 0 {
		tp.Meridiem = mer
		return Match{Start: i, End: j + n, Time: &tp}, true
	}
	if minute, mEnd, ok := s.minuteAt(j); ok {
		if mer, n := s.meridiemAt(mEnd); n > 0 {
			tp.Minute, tp.Meridiem = minute, mer
			return Match{Start: i, End: mEnd + n, Time: &tp}, true
		}
	}

	// 9 on weekdays
	if k, ok := s.eveningCue(j); ok && h >= 1 && h < 12 {
		tp.Meridiem = PM
		return Match{Start: i, End: k, Time: &tp}, true
	}

	// at 6, at 6 30, 06 30, 8 in the morning
	twoDigits := tok.Kind == tokenize.Number && len(tok.Text) == 2 &&
		j < len(s.toks) && s.toks[j].Kind == tokenize.Number && len(s.words[j]) == 2
	if twoDigits || s.afterHourPreposition(i) || s.beforeDayPeriod(j) {
		end := j
		if minute, mEnd, ok := s.minuteAt(j); ok {
			switch {
			case twoDigits && s.lex.Time.MilitaryWords.Has(s.word(mEnd)):
				tp.Minute, tp.Exact, end = minute, true, mEnd+1
			case !s.isUnit(mEnd):
				tp.Minute, end = minute, mEnd
			}
		}
		end = s.clockSuffix(&tp, end)
		return Match{Start: i, End: end, Time: &tp}, true
	}
	return Match{}, false
}

// military reads 3-4 digit times after an hour preposition or before a
// military or clock word: "at 1530", "0700 hours".
func (s *scan) military(i int) (Match, bool) {
	text := s.words[i]
	if len(text) < 3 || len(text) > 4 || !isDigits(text) {
		return Match{}, false
	}
	end := i + 1
	switch {
	case s.lex.Time.MilitaryWords.Has(s.word(end)):
		end++
	case s.lex.Time.ClockWords.MatchLen(s.words, end) > 0:
		end += s.lex.Time.ClockWords.MatchLen(s.words, end)
	case s.afterHourPreposition(i):
	default:
		return Match{}, false
	}
	v, _ := strconv.Atoi(text)
	h, m := v/100, v%100
	if h > 24 || m > 59 || h == 24 && m != 0 {
		return Match{}, false
	}
	tp := TimePart{Hour: h % 24, Minute: m, Exact: true}
	return Match{Start: i, End: end, Time: &tp}, true
}

// timePhrase reads compound times from the language's phrase table
// ("quarter past two", "halb neun", "siete y media") and minute relations
// ("twenty five minutes to four", "zehn vor acht").
func (s *scan) timePhrase(i int) (Match, bool) {
	if tp, ok := s.lex.TimePhrase(s.words, i); ok && tp.Position == lexicon.BeforeHour {
		if h, end, ok := s.hourAt(i + len(tp.Words)); ok && !s.isUnit(end) {
			part := withMinutes(h, tp.Minutes)
			end = s.clockSuffix(&part, end)
			return Match{Start: i, End: end, Time: &part}, true
		}
	}

	if n, ok := s.num.Parse(s.toks, i); ok && !n.Article && !n.Fraction && n.IsInteger() && n.Value >= 1 && n.Value < 60 {
		j := n.End
		if u, size, ok := s.lex.Unit(s.words, j); ok && u == units.Minute {
			j += size
		}
		if rel, ok := s.lex.Time.MinuteRelations[s.word(j)]; ok {
			if h, end, ok := s.hourAt(j + 1); ok && !s.isUnit(end) {
				part := withMinutes(h, rel*n.Int())
				end = s.clockSuffix(&part, end)
				return Match{Start: i, End: end, Time: &part}, true
			}
		}
	}

	if h, j, ok := s.hourAt(i); ok {
		k := j + s.lex.Time.ClockWords.MatchLen(s.words, j)
		if tp, ok := s.lex.TimePhrase(s.words, k); ok && tp.Position == lexicon.AfterHour {
			part := withMinutes(h, tp.Minutes)
			end := s.clockSuffix(&part, k+len(tp.Words))
			return Match{Start: i, End: end, Time: &part}, true
		}
	}
	return Match{}, false
}

// dayPeriod reads parts of the day: "morning", "this evening", "abends",
// "last night".
func (s *scan) dayPeriod(i int) (Match, bool) {
	kind, n := s.marker(i)
	p, size, ok := s.lex.Time.DayPeriods.Match(s.words, i+n)
	if !ok {
		return Match{}, false
	}
	m := Match{Start: i, End: i + n + size, Period: &p}
	switch kind {
	case nextMarker:
		m.Day = s.daysFromToday(1)
	case lastMarker:
		m.Day = s.daysFromToday(-1)
	}
	return m, true
}

// withMinutes builds a clock from an hour and a signed minute offset; a
// negative offset counts back from the hour on a 12-hour clock.
func withMinutes(h, minutes int) TimePart {
	tp := TimePart{Hour: h, Minute: minutes, Exact: h == 0 || h > 12}
	if minutes < 0 {
		tp.Minute = 60 + minutes
		switch tp.Hour {
		case 0:
			tp.Hour = 23
		case 1:
			tp.Hour = 12
		default:
			tp.Hour--
		}
	}
	return tp
}

// clockSuffix reads an am/pm marker and a clock word after a time and
// returns the index after them.
func (s *scan) clockSuffix(tp *TimePart, k int) int {
	if mer, n := s.meridiemAt(k); n > 0 {
		tp.Meridiem = mer
		k += n
	}
	return k + s.lex.Time.ClockWords.MatchLen(s.words, k)
}

func (s *scan) meridiemAt(k int) (Meridiem, int) {
	if n := s.lex.Time.AM.MatchLen(s.words, k); n > 0 {
		return AM, n
	}
	if n := s.lex.Time.PM.MatchLen(s.words, k); n > 0 {
		return PM, n
	}
	return NoMeridiem, 0
}

func (s *scan) isMeridiem(k int) bool {
	_, n := s.meridiemAt(k)
	return n > 0
}

func (s *scan) isUnit(k int) bool {
	_, _, ok := s.lex.Unit(s.words, k)
	return ok
}

// hourAt reads an hour (0-24) written with digits or words.
func (s *scan) hourAt(j int) (int, int, bool) {
	if j < 0 || j >= len(s.toks) {
		return 0, 0, false
	}
	tok := s.toks[j]
	switch tok.Kind {
	case tokenize.Number:
		if len(tok.Text) > 2 || !isDigits(tok.Text) {
			return 0, 0, false
		}
		h, _ := strconv.Atoi(tok.Text)
		if h > 24 {
			return 0, 0, false
		}
		return h, j + 1, true
	case tokenize.Word:
		if n, ok := s.num.Parse(s.toks, j); ok && !n.Article && !n.Fraction && n.IsInteger() && n.Value <= 24 {
			return n.Int(), n.End, true
		}
		// "siete y media" reads as 7.5 above
		if v, ok := s.num.Value(tok.Text); ok && v == math.Trunc(v) && v <= 24 {
			return int(v), j + 1, true
		}
	}
	return 0, 0, false
}

// minuteAt reads the minutes after an hour: two digits or number words.
func (s *scan) minuteAt(j int) (int, int, bool) {
	if j >= len(s.toks) {
		return 0, 0, false
	}
	tok := s.toks[j]
	switch tok.Kind {
	case tokenize.Number:
		if len(tok.Text) != 2 || !isDigits(tok.Text) {
			return 0, 0, false
		}
		m, _ := strconv.Atoi(tok.Text)
		return m, j + 1, m < 60
	case tokenize.Word:
		n, ok := s.num.Parse(s.toks, j)
		if ok && !n.Article && !n.Fraction && n.IsInteger() && n.Value >= 1 && n.Value < 60 {
			return n.Int(), n.End, true
		}
	}
	return 0, 0, false
}

// afterHourPreposition reports whether the token at i is introduced by an
// hour preposition such as "at", "um" or "a las".
func (s *scan) afterHourPreposition(i int) bool {
	k := s.prevWord(i)
	for n := 1; n <= 3 && k-n+1 >= 0; n++ {
		if s.lex.Time.HourPrepositions.MatchLen(s.words, k-n+1) == n {
			return true
		}
	}
	return false
}

// eveningCue reports whether an evening cue follows k after prepositions.
// The returned index is the cue itself, which stays in the leftover.
func (s *scan) eveningCue(k int) (int, bool) {
	for k < len(s.words) && s.lex.Leftover.Prepositions.Has(s.words[k]) {
		k++
	}
	return k, s.lex.Time.EveningCues.Has(s.word(k))
}

// beforeDayPeriod reports whether a part of the day follows k, possibly
// after prepositions and fillers: "8 in the morning", "7 de la tarde".
func (s *scan) beforeDayPeriod(k int) bool {
	rules, mk := s.lex.Leftover, s.lex.Markers
	for k < len(s.words) {
		w := s.words[k]
		if !rules.Prepositions.Has(w) && !rules.DropWords.Has(w) && !mk.Fillers.Has(w) && !mk.Of.Has(w) {
			break
		}
		k++
	}
	_, _, ok := s.lex.Time.DayPeriods.Match(s.words, k)
	return ok || s.lex.Time.Tonight.MatchLen(s.words, k) > 0
}

// parseClock reads H:MM and H:MM:SS using any of the separators seps.
func parseClock(text, seps string) (TimePart, bool) {
	idx := strings.IndexAny(text, seps)
	if idx <= 0 {
		return TimePart{}, false
	}
	parts := strings.Split(text, text[idx:idx+1])
	if len(parts) < 2 || len(parts) > 3 || len(parts[0]) > 2 {
		return TimePart{}, false
	}
	for _, p := range parts {
		if !isDigits(p) {
			return TimePart{}, false
		}
	}
	for _, p := range parts[1:] {
		if len(p) != 2 {
			return TimePart{}, false
		}
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	sec := 0
	if len(parts) == 3 {
		sec, _ = strconv.Atoi(parts[2])
	}
	if h > 24 || m > 59 || sec > 59 || h == 24 && (m != 0 || sec != 0) {
		return TimePart{}, false
	}
	h %= 24
	exact := h == 0 || h > 12 || parts[0][0] == '0'
	return TimePart{Hour: h, Minute: m, Second: sec, Exact: exact}, true
}

func hasLeadingZero(tok tokenize.Token) bool {
	return tok.Kind == tokenize.Number && len(tok.Text) == 2 && tok.Text[0] == '0'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

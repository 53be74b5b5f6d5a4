package datetime

import (
	"time"

	"go_dateparse/lexicon"
	"go_dateparse/units"
)

// Meridiem is an explicit am/pm marker.
type Meridiem int

const (
	NoMeridiem Meridiem = iota
	AM
	PM
)

func (m Meridiem) String() string {
	switch m {
	case AM:
		return "am"
	case PM:
		return "pm"
	}
	return ""
}

// DatePart is a calendar date written in the utterance. Month and Day are
// zero when only a year was given.
type DatePart struct {
	Year  int
	Month time.Month
	Day   int
}

// In returns the date at midnight in loc.
func (d DatePart) In(loc *time.Location) time.Time {
	month, day := d.Month, d.Day
	if month == 0 {
		month = time.January
	}
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, month, day, 0, 0, 0, 0, loc)
}

// TimePart is a time of day written in the utterance.
type TimePart struct {
	Hour     int
	Minute   int
	Second   int
	Meridiem Meridiem
	Exact    bool // 24-hour form, never disambiguated
}

// Match is one recognized fragment and the token span [Start, End) it
// consumed. Exactly the fields the fragment contributes are set.
type Match struct {
	Rule      string
	Start     int
	End       int
	Date      *DatePart       // absolute date
	Day       *time.Time      // date relative to the anchor, midnight
	Offset    *units.Offset   // shift from the anchor or from Day
	KeepClock bool            // the offset keeps the anchor's time of day
	Time      *TimePart       // explicit clock
	Period    *lexicon.Period // part of the day
	Now       bool
}

func (m Match) span() []int {
	idx := make([]int, 0, m.End-m.Start)
	for k := m.Start; k < m.End; k++ {
		idx = append(idx, k)
	}
	return idx
}

func midnight(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func at(day time.Time, hour, minute, second int) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hour, minute, second, 0, day.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

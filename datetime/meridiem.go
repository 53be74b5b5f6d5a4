package datetime

import (
	"time"

	"go_dateparse/lexicon"
)

// resolveClock places a clock time on day. Hours written on a 12-hour clock
// without am/pm are disambiguated here, once per pass:
//   - a part of the day said in the same sentence decides;
//   - on the anchor's date the first of h and h+12 not before the anchor wins;
//   - on any other date the hour is kept.
func (s *scan) resolveClock(tp TimePart, period *lexicon.Period, day time.Time) time.Time {
	h := tp.Hour
	switch tp.Meridiem {
	case AM:
		if h == 12 {
			h = 0
		}
		return at(day, h, tp.Minute, tp.Second)
	case PM:
		if h < 12 {
			h += 12
		}
		return at(day, h, tp.Minute, tp.Second)
	}

	if tp.Exact || h == 0 || h > 12 {
		return at(day, h, tp.Minute, tp.Second)
	}
	if period != nil {
		return at(day, period.Apply(h), tp.Minute, tp.Second)
	}
	if h == 12 || !sameDate(day, s.anchor) {
		return at(day, h, tp.Minute, tp.Second)
	}

	for _, candidate := range []int{h, h + 12} {
		t := at(day, candidate, tp.Minute, tp.Second)
		if !t.Before(s.anchor) {
			return t
		}
	}
	return at(day, h, tp.Minute, tp.Second)
}

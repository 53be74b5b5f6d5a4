// Package units describes the time units that temporal phrases can be
// measured in and how a quantity of each is applied to a point in time.
//
// Fixed units (second through fortnight) have a constant length. Calendar
// units (month, year, decade, century, millennium) are counted in months and
// must be added with calendar arithmetic so that month lengths and leap years
// are respected.
package units

import (
	"math"
	"strconv"
	"time"
)

// Day is 24 hours. Calendar days are added with AddDate, this constant is only
// used for approximations and sub-day remainders.
const Day = 24 * time.Hour

// Approximate day counts for calendar units when no anchor date is available.
const (
	DaysPerMonth = 30
	DaysPerYear  = 365
)

// Kind tells how a unit is applied.
type Kind int

const (
	Fixed    Kind = iota // constant length
	Calendar             // counted in months
	Weekend              // Saturday/Sunday pair, resolved against weekdays
)

// Spec describes one unit.
type Spec struct {
	Name   string
	Kind   Kind
	Length time.Duration // Fixed units only
	Days   int           // Fixed units of whole days
	Months int           // Calendar units only
}

var (
	Second     = Spec{Name: "second", Kind: Fixed, Length: time.Second}
	Minute     = Spec{Name: "minute", Kind: Fixed, Length: time.Minute}
	Hour       = Spec{Name: "hour", Kind: Fixed, Length: time.Hour}
	DayUnit    = Spec{Name: "day", Kind: Fixed, Length: Day, Days: 1}
	Week       = Spec{Name: "week", Kind: Fixed, Length: 7 * Day, Days: 7}
	Fortnight  = Spec{Name: "fortnight", Kind: Fixed, Length: 14 * Day, Days: 14}
	Month      = Spec{Name: "month", Kind: Calendar, Months: 1}
	Year       = Spec{Name: "year", Kind: Calendar, Months: 12}
	Decade     = Spec{Name: "decade", Kind: Calendar, Months: 120}
	Century    = Spec{Name: "century", Kind: Calendar, Months: 1200}
	Millennium = Spec{Name: "millennium", Kind: Calendar, Months: 12000}
	WeekendSet = Spec{Name: "weekend", Kind: Weekend, Days: 7}
)

var byName = map[string]Spec{}

func init() {
	for _, s := range []Spec{Second, Minute, Hour, DayUnit, Week, Fortnight,
		Month, Year, Decade, Century, Millennium, WeekendSet} {
		byName[s.Name] = s
	}
}

// Lookup returns the unit with the given canonical name.
func Lookup(name string) (Spec, bool) {
	s, ok := byName[name]
	return s, ok
}

// IsCalendarRelative reports whether the unit needs calendar arithmetic.
func (s Spec) IsCalendarRelative() bool {
	return s.Kind == Calendar
}

// SubDay reports whether the unit is shorter than a day.
func (s Spec) SubDay() bool {
	return s.Kind == Fixed && s.Days == 0
}

// Approximate converts count units into a fixed length. Calendar units use
// DaysPerMonth and DaysPerYear.
func (s Spec) Approximate(count float64) Length {
	switch s.Kind {
	case Calendar:
		if s.Months%12 == 0 {
			return daysLength(count * float64(s.Months/12*DaysPerYear))
		}
		return daysLength(count * float64(s.Months*DaysPerMonth))
	case Weekend:
		return daysLength(count * 2)
	}
	if s.Days > 0 {
		return daysLength(count * float64(s.Days))
	}
	ns := count * float64(s.Length)
	days := math.Floor(ns / float64(Day))
	return Length{Days: int64(days)}.Add(Length{Clock: time.Duration(math.Round(ns - days*float64(Day)))})
}

func daysLength(days float64) Length {
	days = snap(days)
	whole := math.Floor(days)
	return Length{Days: int64(whole)}.Add(Length{Clock: time.Duration(math.Round((days - whole) * float64(Day)))})
}

// Length is a non-negative span counted in whole days plus a clock part
// shorter than a day. Unlike time.Duration it holds centuries and millennia.
type Length struct {
	Days  int64
	Clock time.Duration
}

// maxDays is the largest day count a time.Duration can hold.
const maxDays = int64(math.MaxInt64 / int64(Day))

// Add returns the sum of two lengths with the clock part carried into days.
func (l Length) Add(other Length) Length {
	sum := Length{Days: l.Days + other.Days, Clock: l.Clock + other.Clock}
	sum.Days += int64(sum.Clock / Day)
	sum.Clock %= Day
	return sum
}

// Duration converts l to a time.Duration. When l does not fit, the result
// saturates at the largest duration and ok is false.
func (l Length) Duration() (d time.Duration, ok bool) {
	if l.Days > maxDays || (l.Days == maxDays && l.Clock > time.Duration(math.MaxInt64-maxDays*int64(Day))) {
		return time.Duration(math.MaxInt64), false
	}
	return time.Duration(l.Days)*Day + l.Clock, true
}

// Seconds returns the whole seconds in l.
func (l Length) Seconds() int64 {
	return l.Days*86400 + int64(l.Clock/time.Second)
}

// String renders lengths that fit a time.Duration the way time.Duration
// does, and longer ones as days plus the clock part: "365000d0s".
func (l Length) String() string {
	if d, ok := l.Duration(); ok {
		return d.String()
	}
	return strconv.FormatInt(l.Days, 10) + "d" + l.Clock.String()
}

// Offset returns l as a calendar offset of days and clock time.
func (l Length) Offset() Offset {
	return Offset{Days: int(l.Days), Clock: l.Clock}
}

// Offset converts count units into a calendar-aware offset.
func (s Spec) Offset(count float64) Offset {
	switch s.Kind {
	case Calendar:
		months := snap(count * float64(s.Months))
		whole := math.Floor(months)
		days := (months - whole) * DaysPerMonth
		return Offset{Months: int(whole)}.Add(dayOffset(days))
	case Fixed:
		if s.Days > 0 {
			return dayOffset(count * float64(s.Days))
		}
		return Offset{Clock: time.Duration(math.Round(count * float64(s.Length)))}
	}
	return Offset{Days: int(snap(count)) * s.Days}
}

// dayOffset splits a fractional day count into whole days plus a clock part.
func dayOffset(days float64) Offset {
	days = snap(days)
	whole := math.Floor(days)
	rest := time.Duration(math.Round((days - whole) * float64(Day)))
	return Offset{Days: int(whole), Clock: rest}
}

// snap rounds away floating point noise such as 1.1*120 = 132.00000000000003.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		return r
	}
	return v
}

// Offset is a signed, calendar-aware shift in time.
type Offset struct {
	Months int
	Days   int
	Clock  time.Duration
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{
		Months: o.Months + other.Months,
		Days:   o.Days + other.Days,
		Clock:  o.Clock + other.Clock,
	}
}

// Neg returns the offset pointing the other way.
func (o Offset) Neg() Offset {
	return Offset{Months: -o.Months, Days: -o.Days, Clock: -o.Clock}
}

// IsZero reports whether the offset moves nothing.
func (o Offset) IsZero() bool {
	return o.Months == 0 && o.Days == 0 && o.Clock == 0
}

// HasClock reports whether the offset carries a sub-day part, which means the
// time of day of the anchor is kept.
func (o Offset) HasClock() bool {
	return o.Clock != 0
}

// ApplyTo moves t by the offset: months first (clamped), then days, then the
// clock part.
func (o Offset) ApplyTo(t time.Time) time.Time {
	if o.Months != 0 {
		t = AddMonths(t, o.Months)
	}
	if o.Days != 0 {
		t = t.AddDate(0, 0, o.Days)
	}
	return t.Add(o.Clock)
}

// AddMonths adds n months to t. Unlike time.AddDate it never overflows into
// the following month: Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := DaysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears adds n years with the same clamping rules as AddMonths.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

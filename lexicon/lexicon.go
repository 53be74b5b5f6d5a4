// Package lexicon holds the per-language word tables that drive tokenizing,
// number parsing and temporal phrase recognition.
//
// A Lexicon is compiled once from an embedded YAML resource and is read-only
// afterwards, so it can be shared by any number of goroutines.
package lexicon

import (
	"fmt"
	"strings"
	"time"

	"go_dateparse/units"
)

// PeriodName identifies a part of the day.
type PeriodName string

const (
	Morning   PeriodName = "morning"
	Noon      PeriodName = "noon"
	Afternoon PeriodName = "afternoon"
	Evening   PeriodName = "evening"
	Night     PeriodName = "night"
)

// Period is a part of the day with its default hour.
type Period struct {
	Name PeriodName
	Hour int
}

// PM reports whether the period lies in the second half of the day.
func (p Period) PM() bool {
	return p.Name != Morning
}

// Apply maps an hour written on a 12-hour clock into the period.
func (p Period) Apply(hour int) int {
	switch p.Name {
	case Morning:
		if hour == 12 {
			return 0
		}
	case Noon:
		if hour >= 1 && hour <= 5 {
			return hour + 12
		}
	case Afternoon, Evening:
		if hour < 12 {
			return hour + 12
		}
	case Night:
		switch {
		case hour == 12:
			return 0
		case hour >= 6 && hour < 12:
			return hour + 12
		}
	}
	return hour
}

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
}

// PhrasePosition tells where a compound time phrase sits relative to the hour.
type PhrasePosition string

const (
	BeforeHour PhrasePosition = "before_hour" // "quarter past two", "halb neun"
	AfterHour  PhrasePosition = "after_hour"  // "las siete y media"
)

// TimePhrase is one rule of the compound time table. Minutes is the offset
// from the full hour, negative values count back from it.
type TimePhrase struct {
	Words    []string
	Minutes  int
	Position PhrasePosition
}

// Markers holds the relative marker phrases of a language.
type Markers struct {
	Next      Phrases
	Last      Phrases
	This      Phrases
	In        Phrases
	Within    Phrases
	For       Phrases // span prefix, only before a quantity
	AgoPrefix Phrases
	AgoSuffix Phrases
	Later     Phrases
	From      Phrases
	Now       Phrases
	Of        Phrases
	Fillers   WordSet
	PastTense WordSet
}

// Numbers holds the number word tables of a language.
type Numbers struct {
	Units            map[string]float64
	Tens             map[string]float64
	Multipliers      map[string]float64
	Fractions        map[string]float64
	FractionSuffixes map[string]float64
	Ordinals         map[string]int
	OrdinalSuffixes  []string
	OrdinalEndings   []string
	Connectors       WordSet
	Articles         WordSet
	FractionFillers  WordSet
	Couple           WordSet
	CompoundJoiners  []string
	DecimalSeparator string
}

// TimeWords holds clock related vocabulary.
type TimeWords struct {
	AM               Phrases
	PM               Phrases
	ClockWords       Phrases
	MilitaryWords    WordSet
	HourPrepositions Phrases
	EveningCues      WordSet // a bare hour before these is pm: "9 on weekdays"
	NamedTimes       PhraseTable[Clock]
	DayPeriods       PhraseTable[Period]
	Tonight          Phrases
	TonightPeriod    Period
	TimePhrases      []TimePhrase
	MinuteRelations  map[string]int
	Separators       string
}

// LeftoverRules configures how the date/time leftover is cleaned.
type LeftoverRules struct {
	DropWords    WordSet
	Prepositions WordSet
	Conjunctions WordSet
}

// Replacement is a literal rewrite applied to lowercased input.
type Replacement struct {
	From string
	To   string
}

// Lexicon is the compiled, read-only table set of one language.
type Lexicon struct {
	Code                 string
	Tag                  string
	Weekdays             PhraseTable[time.Weekday]
	Months               PhraseTable[time.Month]
	AmbiguousMonths      WordSet
	RelativeDays         PhraseTable[int]
	Units                PhraseTable[units.Spec]
	Markers              Markers
	Numbers              Numbers
	Time                 TimeWords
	Leftover             LeftoverRules
	Replacements         []Replacement
	PossessiveSuffixes   []string
	Elisions             []string
	NextWeekdayThreshold int
}

// Weekday matches a weekday name at words[i].
func (l *Lexicon) Weekday(words []string, i int) (time.Weekday, int, bool) {
	return l.Weekdays.Match(words, i)
}

// Month matches a month name at words[i].
func (l *Lexicon) Month(words []string, i int) (time.Month, int, bool) {
	return l.Months.Match(words, i)
}

// Unit matches a unit word at words[i].
func (l *Lexicon) Unit(words []string, i int) (units.Spec, int, bool) {
	return l.Units.Match(words, i)
}

// IsNumberWord reports whether w is part of the number vocabulary.
func (l *Lexicon) IsNumberWord(w string) bool {
	n := l.Numbers
	if _, ok := n.Units[w]; ok {
		return true
	}
	if _, ok := n.Tens[w]; ok {
		return true
	}
	if _, ok := n.Multipliers[w]; ok {
		return true
	}
	_, ok := n.Fractions[w]
	return ok
}

// StripPossessive removes a possessive suffix ("monday's") from a lowercased
// word.
func (l *Lexicon) StripPossessive(w string) string {
	for _, s := range l.PossessiveSuffixes {
		if len(w) > len(s) && strings.HasSuffix(w, s) {
			return strings.TrimSuffix(w, s)
		}
	}
	return w
}

// TimePhrase matches the longest compound time phrase at words[i].
func (l *Lexicon) TimePhrase(words []string, i int) (TimePhrase, bool) {
	var best TimePhrase
	found := false
	for _, p := range l.Time.TimePhrases {
		if len(p.Words) <= len(best.Words) || i+len(p.Words) > len(words) {
			continue
		}
		match := true
		for k, w := range p.Words {
			if words[i+k] != w {
				match = false
				break
			}
		}
		if match {
			best, found = p, true
		}
	}
	return best, found
}

// String implements fmt.Stringer.
func (l *Lexicon) String() string {
	return fmt.Sprintf("Lexicon(%s)", l.Code)
}

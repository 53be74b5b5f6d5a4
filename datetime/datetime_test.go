package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/lexicon"
	"go_dateparse/numwords"
	"go_dateparse/tokenize"
)

// Tuesday, June 27, 2017 at 13:04
var anchor = time.Date(2017, 6, 27, 13, 4, 0, 0, time.UTC)

var repo = lexicon.NewRepository()

type pipeline struct {
	tok *tokenize.Tokenizer
	res *Resolver
}

func setup(t *testing.T, code string) pipeline {
	t.Helper()
	lex, err := repo.Get(code)
	require.NoError(t, err)
	return pipeline{tok: tokenize.New(lex), res: New(lex, numwords.New(lex))}
}

func (p pipeline) resolve(text string, at time.Time) (Result, bool) {
	return p.res.Resolve(p.tok.Tokenize(text), at, nil)
}

func date(y int, m time.Month, d, h, min, sec int) time.Time {
	return time.Date(y, m, d, h, min, sec, 0, time.UTC)
}

func TestResolveEnglish(t *testing.T) {
	p := setup(t, "en")

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		// Relative days
		{"today", "what is the weather today", date(2017, 6, 27, 0, 0, 0)},
		{"tomorrow", "remind me tomorrow", date(2017, 6, 28, 0, 0, 0)},
		{"yesterday", "what happened yesterday", date(2017, 6, 26, 0, 0, 0)},
		{"day after tomorrow", "day after tomorrow", date(2017, 6, 29, 0, 0, 0)},
		{"now", "now", anchor},

		// Weekdays (anchor is a Tuesday)
		{"next friday", "next friday", date(2017, 6, 30, 0, 0, 0)},
		{"next wednesday skips a week", "next wednesday", date(2017, 7, 5, 0, 0, 0)},
		{"last friday", "last friday", date(2017, 6, 23, 0, 0, 0)},
		{"bare monday", "on monday", date(2017, 7, 3, 0, 0, 0)},
		{"bare weekday is today", "tuesday", date(2017, 6, 27, 0, 0, 0)},

		// Offsets
		{"in days", "in 3 days", date(2017, 6, 30, 0, 0, 0)},
		{"in hours keeps clock", "in 2 hours", date(2017, 6, 27, 15, 4, 0)},
		{"minutes ago", "5 minutes ago", date(2017, 6, 27, 12, 59, 0)},
		{"days ago", "3 days ago", date(2017, 6, 24, 0, 0, 0)},
		{"from tomorrow", "2 weeks from tomorrow", date(2017, 7, 12, 0, 0, 0)},
		{"from now", "2 hours from now", date(2017, 6, 27, 15, 4, 0)},
		{"within", "within 2 weeks", date(2017, 7, 11, 0, 0, 0)},
		{"within the unit", "i want it within the hour", date(2017, 6, 27, 14, 4, 0)},
		{"for a span", "set the ambush for half an hour", date(2017, 6, 27, 13, 34, 0)},
		{"for the next days", "for the next 2 days", date(2017, 6, 29, 0, 0, 0)},
		{"compound offset", "in 3 days, 8 hours, 10 minutes and 49 seconds", date(2017, 6, 30, 21, 14, 49)},
		{"couple of decades", "a couple of decades ago", date(1997, 6, 27, 0, 0, 0)},
		{"century", "in a century", date(2117, 6, 27, 0, 0, 0)},
		{"fractional decades", "in 1.5 decades", date(2032, 6, 27, 0, 0, 0)},
		{"compact", "+1h30m", date(2017, 6, 27, 14, 34, 0)},

		// Marker with a unit
		{"next week", "next week", date(2017, 7, 3, 0, 0, 0)},
		{"next month", "next month", date(2017, 7, 1, 0, 0, 0)},
		{"next year", "next year", date(2018, 1, 1, 0, 0, 0)},
		{"last month", "last month", date(2017, 5, 1, 0, 0, 0)},
		{"last week", "last week", date(2017, 6, 20, 0, 0, 0)},
		{"next decade", "next decade", date(2027, 6, 27, 0, 0, 0)},
		{"next weekend", "next weekend", date(2017, 7, 1, 0, 0, 0)},
		{"last weekend", "last weekend", date(2017, 6, 24, 0, 0, 0)},
		{"in weekends", "in 2 weekends", date(2017, 7, 10, 0, 0, 0)},
		{"weekends ago", "2 weekends ago", date(2017, 6, 16, 0, 0, 0)},

		// Clock times
		{"quarter past", "quarter past 2", date(2017, 6, 27, 14, 15, 0)},
		{"half past pm", "half past 8 pm", date(2017, 6, 27, 20, 30, 0)},
		{"quarter to", "quarter to 3", date(2017, 6, 27, 14, 45, 0)},
		{"minutes to", "twenty five minutes to 4", date(2017, 6, 27, 15, 35, 0)},
		{"hh:mm pm", "at 10:45 pm", date(2017, 6, 27, 22, 45, 0)},
		{"24 hour", "at 13:30", date(2017, 6, 27, 13, 30, 0)},
		{"pm tomorrow", "at 3pm tomorrow", date(2017, 6, 28, 15, 0, 0)},
		{"noon", "tomorrow at noon", date(2017, 6, 28, 12, 0, 0)},
		{"passed time rolls over", "midnight", date(2017, 6, 28, 0, 0, 0)},
		{"military", "at 0700 hours", date(2017, 6, 28, 7, 0, 0)},
		{"military with a space", "remind me to call mom at 06 30 hours", date(2017, 6, 28, 6, 30, 0)},
		{"bare hour on weekdays", "set alarm for 9 on weekdays", date(2017, 6, 27, 21, 0, 0)},
		{"hour in the morning", "8 in the morning", date(2017, 6, 28, 8, 0, 0)},

		// Parts of the day
		{"this evening", "this evening", date(2017, 6, 27, 19, 0, 0)},
		{"tonight at", "tonight at 8", date(2017, 6, 27, 20, 0, 0)},
		{"tomorrow morning", "tomorrow morning", date(2017, 6, 28, 8, 0, 0)},
		{"weekday evening", "friday evening at 7", date(2017, 6, 30, 19, 0, 0)},

		// Dates
		{"ordinal of month", "on the 4th of july", date(2017, 7, 4, 0, 0, 0)},
		{"passed date is next year", "june 5th", date(2018, 6, 5, 0, 0, 0)},
		{"month day year", "june 5, 2020", date(2020, 6, 5, 0, 0, 0)},
		{"month alone", "in september", date(2017, 9, 1, 0, 0, 0)},
		{"ambiguous month after in", "in march", date(2018, 3, 1, 0, 0, 0)},
		{"last month name", "last september", date(2016, 9, 1, 0, 0, 0)},
		{"past tense month", "what was the weather in january", date(2017, 1, 1, 0, 0, 0)},
		{"year keeps month and day", "in 2007", date(2007, 6, 27, 0, 0, 0)},
		{"iso date", "on 2017-06-05", date(2017, 6, 5, 0, 0, 0)},
		{"iso date time", "2017-06-05T10:30", date(2017, 6, 5, 10, 30, 0)},
		{"us numeric date", "on 05/06/2017", date(2017, 5, 6, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := p.resolve(tt.input, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Time)
		})
	}
}

func TestResolveLeftover(t *testing.T) {
	p := setup(t, "en")

	tests := []struct {
		input string
		want  string
	}{
		{"remind me to call mom next friday", "remind me to call mom"},
		{"feed fish at 10 o'clock", "feed fish"},
		{"what is the weather on the 4th of july", "what is weather"},
		{"set an alarm for 7:30 tomorrow", "set alarm"},
		{"remind me in 8 weeks and 2 days to water the plants", "remind me to water plants"},
		{"next friday", ""},
		{"remind me to call mom at 06 30 hours", "remind me to call mom"},
		{"set the ambush for half an hour", "set ambush"},
		{"i want it within the hour", "i want it"},
		{"set alarm for 9 on weekdays", "set alarm weekdays"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, ok := p.resolve(tt.input, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Leftover)

			_, again := p.resolve(res.Leftover, anchor)
			assert.False(t, again, "leftover %q matched again", res.Leftover)
		})
	}
}

func TestResolveNoMatch(t *testing.T) {
	p := setup(t, "en")
	for _, in := range []string{"", "week", "remind me to call mom", "I may go", "the 3rd day"} {
		t.Run(in, func(t *testing.T) {
			res, ok := p.resolve(in, anchor)
			assert.False(t, ok)
			assert.Empty(t, res.Consumed)
		})
	}
}

func TestAmbiguousHour(t *testing.T) {
	p := setup(t, "en")

	tests := []struct {
		name   string
		anchor time.Time
		want   time.Time
	}{
		{"morning", date(2017, 6, 27, 8, 1, 0), date(2017, 6, 27, 10, 0, 0)},
		{"noon", date(2017, 6, 27, 12, 1, 0), date(2017, 6, 27, 22, 0, 0)},
		{"evening", date(2017, 6, 27, 20, 1, 0), date(2017, 6, 27, 22, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := p.resolve("feed fish at 10 o'clock", tt.anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Time)
			assert.Equal(t, "feed fish", res.Leftover)
		})
	}
}

func TestAmbiguousHourOnAnotherDay(t *testing.T) {
	p := setup(t, "en")
	res, ok := p.resolve("tomorrow at 7:30", anchor)
	require.True(t, ok)
	assert.Equal(t, date(2017, 6, 28, 7, 30, 0), res.Time)
}

func TestDefaultTime(t *testing.T) {
	p := setup(t, "en")
	nine := &lexicon.Clock{Hour: 9}

	res, ok := p.res.Resolve(p.tok.Tokenize("tomorrow"), anchor, nine)
	require.True(t, ok)
	assert.Equal(t, date(2017, 6, 28, 9, 0, 0), res.Time)

	res, ok = p.res.Resolve(p.tok.Tokenize("tomorrow at 3pm"), anchor, nine)
	require.True(t, ok)
	assert.Equal(t, date(2017, 6, 28, 15, 0, 0), res.Time)
}

func TestRelativeAbsoluteEquivalence(t *testing.T) {
	p := setup(t, "en")

	pairs := [][2]string{
		{"in 1 week", "in 7 days"},
		{"next decade", "in 10 years"},
		{"in a fortnight", "in 2 weeks"},
		{"in an hour and a half", "in 90 minutes"},
	}
	for _, pair := range pairs {
		t.Run(pair[0], func(t *testing.T) {
			a, ok := p.resolve(pair[0], anchor)
			require.True(t, ok)
			b, ok := p.resolve(pair[1], anchor)
			require.True(t, ok)
			assert.Equal(t, b.Time, a.Time)
		})
	}
}

func TestCalendarArithmetic(t *testing.T) {
	p := setup(t, "en")

	tests := []struct {
		name   string
		input  string
		anchor time.Time
		want   time.Time
	}{
		{"end of january", "in 1 month", date(2017, 1, 31, 10, 0, 0), date(2017, 2, 28, 0, 0, 0)},
		{"leap day plus a year", "in 1 year", date(2016, 2, 29, 10, 0, 0), date(2017, 2, 28, 0, 0, 0)},
		{"leap day plus four years", "in 4 years", date(2016, 2, 29, 10, 0, 0), date(2020, 2, 29, 0, 0, 0)},
		{"leap day in a plain year", "in 2019", date(2016, 2, 29, 10, 0, 0), date(2019, 2, 28, 0, 0, 0)},
		{"month ago from march 31", "1 month ago", date(2017, 3, 31, 10, 0, 0), date(2017, 2, 28, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := p.resolve(tt.input, tt.anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Time)
		})
	}
}

func TestDeterminism(t *testing.T) {
	p := setup(t, "en")
	first, ok := p.resolve("remind me next friday at quarter past 8 pm", anchor)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := p.resolve("remind me next friday at quarter past 8 pm", anchor)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, date(2017, 6, 30, 20, 15, 0), first.Time)
}

func TestScanRules(t *testing.T) {
	p := setup(t, "en")
	matches := p.res.Scan(p.tok.Tokenize("tomorrow at 3pm"), anchor)

	var rules []string
	for _, m := range matches {
		rules = append(rules, m.Rule)
	}
	assert.Equal(t, []string{"relative_day", "clock"}, rules)
}

func TestResolveOtherLanguages(t *testing.T) {
	tests := []struct {
		lang  string
		input string
		want  time.Time
	}{
		{"de", "morgen um 10 Uhr", date(2017, 6, 28, 10, 0, 0)},
		{"de", "heute Morgen", date(2017, 6, 27, 8, 0, 0)},
		{"de", "in drei Tagen", date(2017, 6, 30, 0, 0, 0)},
		{"de", "vor 2 Stunden", date(2017, 6, 27, 11, 4, 0)},
		{"de", "nächsten Freitag", date(2017, 7, 7, 0, 0, 0)},
		{"de", "am 3. Dezember", date(2017, 12, 3, 0, 0, 0)},
		{"de", "halb neun abends", date(2017, 6, 27, 20, 30, 0)},
		{"de", "um 7.30", date(2017, 6, 27, 19, 30, 0)},
		{"es", "mañana a las 7 y media", date(2017, 6, 28, 7, 30, 0)},
		{"fr", "dans 2 heures", date(2017, 6, 27, 15, 4, 0)},
		{"fr", "il y a 3 jours", date(2017, 6, 24, 0, 0, 0)},
		{"nl", "over 3 dagen", date(2017, 6, 30, 0, 0, 0)},
		{"sv", "om 2 timmar", date(2017, 6, 27, 15, 4, 0)},
		{"da", "i morgen", date(2017, 6, 28, 0, 0, 0)},
		{"it", "tra 3 giorni", date(2017, 6, 30, 0, 0, 0)},
		{"pt", "em 2 dias", date(2017, 6, 29, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.input, func(t *testing.T) {
			res, ok := setup(t, tt.lang).resolve(tt.input, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Time)
		})
	}
}

func TestResolveOtherLanguagesAtMidnight(t *testing.T) {
	midnight := date(2017, 6, 27, 0, 0, 0)
	tests := []struct {
		lang  string
		input string
		want  time.Time
	}{
		{"da", "hvordan er vejret på næste torsdag", date(2017, 7, 6, 0, 0, 0)},
		{"da", "start inversionen 3:45 pm på torsdag", date(2017, 6, 29, 15, 45, 0)},
		{"da", "start inversionen 3:45 p.m. på torsdag", date(2017, 6, 29, 15, 45, 0)},
		{"da", "påmind mig at ringe min mor den tredie august", date(2017, 8, 3, 0, 0, 0)},
		{"da", "køb fyrværkeri den enogtyvende juli", date(2017, 7, 21, 0, 0, 0)},
		{"da", "forbered et besøg på 2 uger og 6 dage fra på lørdag", date(2017, 7, 21, 0, 0, 0)},
		{"da", "start invasionen på torsdag ved middag", date(2017, 6, 29, 12, 0, 0)},
		{"da", "begynd invasionen klokken 8 am på torsdag", date(2017, 6, 29, 8, 0, 0)},
		{"de", "spiele happy birthday musik 5 jahre von heute", date(2022, 6, 27, 0, 0, 0)},
		{"de", "starte die invasion um 3:45 pm am Donnerstag", date(2017, 6, 29, 15, 45, 0)},
		{"de", "spiele rick astley musik 2 tage von freitag", date(2017, 7, 2, 0, 0, 0)},
		{"sv", "Planera bakhållet 5 dagar från nu", date(2017, 7, 2, 0, 0, 0)},
		{"sv", "vad blir vädret på fredag morgon", date(2017, 6, 30, 8, 0, 0)},
		{"sv", "nästa torsdag", date(2017, 7, 6, 0, 0, 0)},
		{"pt", "que dia foi antes de ontem", date(2017, 6, 25, 0, 0, 0)},
		{"pt", "dorme 3 dias depois de amanha", date(2017, 7, 2, 0, 0, 0)},
		{"pt", "como esta o tempo 1 dia a seguir a amanha", date(2017, 6, 29, 0, 0, 0)},
		{"pt", "Toca satanic black metal 2 dias para esta sexta", date(2017, 7, 2, 0, 0, 0)},
		{"pt", "compra facas no 13º dia de maio", date(2018, 5, 13, 0, 0, 0)},
		{"pt", "próxima quinta", date(2017, 6, 29, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.input, func(t *testing.T) {
			res, ok := setup(t, tt.lang).resolve(tt.input, midnight)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Time)
		})
	}
}

func TestMonthFirst(t *testing.T) {
	assert.True(t, monthFirst("en-us"))
	assert.False(t, monthFirst("en-gb"))
	assert.False(t, monthFirst("de-de"))
	assert.False(t, monthFirst("not a tag"))
}

func TestWithMinutes(t *testing.T) {
	assert.Equal(t, TimePart{Hour: 2, Minute: 15}, withMinutes(2, 15))
	assert.Equal(t, TimePart{Hour: 12, Minute: 45}, withMinutes(1, -15))
	assert.Equal(t, TimePart{Hour: 8, Minute: 30}, withMinutes(9, -30))
	assert.Equal(t, TimePart{Hour: 23, Minute: 30, Exact: true}, withMinutes(0, -30))
}

package duration

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/lexicon"
	"go_dateparse/numwords"
	"go_dateparse/tokenize"
	"go_dateparse/units"
)

var repo = lexicon.NewRepository()

func extractor(t *testing.T, code string) *Extractor {
	t.Helper()
	lex, err := repo.Get(code)
	require.NoError(t, err)
	return New(lex, tokenize.New(lex), numwords.New(lex))
}

const day = units.Day

func TestExtractEnglish(t *testing.T) {
	e := extractor(t, "en")

	tests := []struct {
		in       string
		want     time.Duration
		leftover string
	}{
		{"10 seconds", 10 * time.Second, ""},
		{"5 minutes", 5 * time.Minute, ""},
		{"2 hours", 2 * time.Hour, ""},
		{"3 days", 3 * day, ""},
		{"25 weeks", 25 * 7 * day, ""},
		{"seven hours", 7 * time.Hour, ""},
		{"7.5 seconds", 7500 * time.Millisecond, ""},
		{"eight and a half days thirty nine seconds", 8*day + 12*time.Hour + 39*time.Second, ""},
		{"Set a timer for 30 minutes", 30 * time.Minute, "Set a timer for"},
		{"Four and a half minutes until sunset", 4*time.Minute + 30*time.Second, "until sunset"},
		{"Nineteen minutes past the hour", 19 * time.Minute, "past the hour"},
		{"3 days 8 hours 10 minutes and 49 seconds",
			3*day + 8*time.Hour + 10*time.Minute + 49*time.Second, "and"},
		{"wake me up in 3 days, 8 hours, 10 minutes and 49 seconds",
			3*day + 8*time.Hour + 10*time.Minute + 49*time.Second, "wake me up in , , and"},
		{"The movie is one hour, fifty seven and a half minutes long",
			time.Hour + 57*time.Minute + 30*time.Second, "The movie is , long"},
		{"wake me up in three weeks, four hundred ninety seven days, and three hundred 91.6 seconds",
			518*day + 391600*time.Millisecond, "wake me up in , , and"},
		{"10-seconds", 10 * time.Second, ""},
		{"5-minutes", 5 * time.Minute, ""},
		{"wait an hour and a half", 90 * time.Minute, "wait"},
		{"half an hour", 30 * time.Minute, ""},
		{"a quarter of an hour", 15 * time.Minute, ""},
		{"a couple of minutes", 2 * time.Minute, ""},
		{"1 month", 30 * day, ""},
		{"3 months", 90 * day, ""},
		{"1 year", 365 * day, ""},
		{"a decade", 3650 * day, ""},
		{"2 centuries", 2 * 36500 * day, ""},
		{"a fortnight", 14 * day, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, ok := e.Extract(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Duration)
			assert.Equal(t, tt.leftover, res.Leftover)
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	e := extractor(t, "en")

	for _, in := range []string{"", "week", "remind me to call mom", "the 3rd day", "next weekend"} {
		t.Run(in, func(t *testing.T) {
			res, ok := e.Extract(in)
			assert.False(t, ok)
			assert.Zero(t, res.Duration)
			assert.Equal(t, in, res.Leftover)
		})
	}
}

func TestExtractOtherLanguages(t *testing.T) {
	tests := []struct {
		lang     string
		in       string
		want     time.Duration
		leftover string
	}{
		{"de", "stell einen Timer auf 5 Minuten", 5 * time.Minute, "stell einen Timer auf"},
		{"de", "viereinhalb Stunden", 4*time.Hour + 30*time.Minute, ""},
		{"de", "einer halben Stunde", 30 * time.Minute, ""},
		{"es", "dos horas y media", 2*time.Hour + 30*time.Minute, ""},
		{"fr", "une demi-heure", 30 * time.Minute, ""},
		{"pt", "três dias", 3 * day, ""},
		{"it", "dieci minuti", 10 * time.Minute, ""},
		{"nl", "twee uur en tien minuten", 2*time.Hour + 10*time.Minute, "en"},
		{"sv", "en och en halv timme", 90 * time.Minute, ""},
		{"da", "tre dage", 3 * day, ""},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.in, func(t *testing.T) {
			res, ok := extractor(t, tt.lang).Extract(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Duration)
			assert.Equal(t, tt.leftover, res.Leftover)
		})
	}
}

func TestExtractLongSpans(t *testing.T) {
	e := extractor(t, "en")

	tests := []struct {
		in   string
		days int64
	}{
		{"3 centuries", 3 * 36500},
		{"5 centuries", 5 * 36500},
		{"1 millennium", 365000},
		{"5 millenniums", 5 * 365000},
		{"a millennium and 2 days", 365002},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, ok := e.Extract(tt.in)
			require.True(t, ok)
			assert.Equal(t, units.Length{Days: tt.days}, res.Length)
			assert.Equal(t, time.Duration(math.MaxInt64), res.Duration)
		})
	}
}

func TestLeftoverDoesNotMatchAgain(t *testing.T) {
	e := extractor(t, "en")
	res, ok := e.Extract("remind me in 8 weeks and 2 days to water the plants")
	require.True(t, ok)

	_, ok = e.Extract(res.Leftover)
	assert.False(t, ok)
}

package numwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_dateparse/lexicon"
	"go_dateparse/tokenize"
)

var repo = lexicon.NewRepository()

func setup(t *testing.T, code string) (*Parser, *tokenize.Tokenizer) {
	t.Helper()
	lex, err := repo.Get(code)
	require.NoError(t, err)
	return New(lex), tokenize.New(lex)
}

func TestParse(t *testing.T) {
	tests := []struct {
		lang     string
		in       string
		value    float64
		end      int
		fraction bool
		article  bool
	}{
		{"en", "5 minutes", 5, 1, false, false},
		{"en", "7.5 seconds", 7.5, 1, false, false},
		{"en", "twenty five minutes", 25, 2, false, false},
		{"en", "two hundred and six days", 206, 4, false, false},
		{"en", "a thousand years", 1000, 2, false, false},
		{"en", "two and a half hours", 2.5, 4, false, false},
		{"en", "2 and a half hours", 2.5, 4, false, false},
		{"en", "half an hour", 0.5, 2, true, false},
		{"en", "a quarter of an hour", 0.25, 4, true, false},
		{"en", "three quarters of an hour", 0.75, 4, true, false},
		{"en", "a couple of decades", 2, 3, false, false},
		{"en", "an hour", 1, 1, false, true},
		{"en", "seven thirty", 7, 1, false, false},
		{"en", "three hundred 91.6 seconds", 391.6, 3, false, false},
		{"en", "two thousand 17 years", 2017, 3, false, false},
		{"en", "one hundred 200 seconds", 100, 2, false, false},
		{"de", "einundzwanzig tage", 21, 1, false, false},
		{"de", "viereinhalb stunden", 4.5, 1, false, false},
		{"de", "einer halben stunde", 0.5, 2, true, false},
		{"de", "1,5 stunden", 1.5, 1, false, false},
		{"es", "treinta y cinco minutos", 35, 3, false, false},
		{"fr", "dix sept jours", 17, 2, false, false},
		{"fr", "vingt et un jours", 21, 3, false, false},
		{"nl", "eenentwintig dagen", 21, 1, false, false},
		{"da", "enogtyve dage", 21, 1, false, false},
		{"sv", "en och en halv timme", 1.5, 4, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.in, func(t *testing.T) {
			p, tok := setup(t, tt.lang)
			n, ok := p.Parse(tok.Tokenize(tt.in), 0)
			require.True(t, ok)
			assert.InDelta(t, tt.value, n.Value, 1e-9)
			assert.Equal(t, tt.end, n.End)
			assert.Equal(t, tt.fraction, n.Fraction)
			assert.Equal(t, tt.article, n.Article)
		})
	}
}

func TestParseRejects(t *testing.T) {
	p, tok := setup(t, "en")
	for _, in := range []string{"week", "and five", ",", "10:45", "2017-06-05"} {
		t.Run(in, func(t *testing.T) {
			_, ok := p.Parse(tok.Tokenize(in), 0)
			assert.False(t, ok)
		})
	}
}

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		lang  string
		in    string
		value int
		end   int
	}{
		{"en", "3rd of july", 3, 1},
		{"en", "third of july", 3, 1},
		{"en", "twenty first of june", 21, 2},
		{"en", "thirtieth", 30, 1},
		{"de", "3. dezember", 3, 1},
		{"de", "dritten dezember", 3, 1},
		{"de", "einundzwanzigsten juni", 21, 1},
		{"nl", "eerste mei", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.in, func(t *testing.T) {
			p, tok := setup(t, tt.lang)
			v, end, ok := p.ParseOrdinal(tok.Tokenize(tt.in), 0)
			require.True(t, ok)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.end, end)
		})
	}

	p, tok := setup(t, "de")
	_, _, ok := p.ParseOrdinal(tok.Tokenize("erst morgen"), 0)
	assert.False(t, ok)
}

func TestValue(t *testing.T) {
	p, _ := setup(t, "de")
	v, ok := p.Value("dreiundvierzig")
	require.True(t, ok)
	assert.Equal(t, 43.0, v)

	_, ok = p.Value("montag")
	assert.False(t, ok)
}

func TestNumberHelpers(t *testing.T) {
	assert.True(t, Number{Value: 3}.IsInteger())
	assert.False(t, Number{Value: 2.5}.IsInteger())
	assert.Equal(t, 2, Number{Value: 2.5}.Int())
}

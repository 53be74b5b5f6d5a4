package extract

import (
	"time"

	"go_dateparse/datetime"
	"go_dateparse/duration"
	"go_dateparse/lexicon"
	"go_dateparse/numwords"
	"go_dateparse/tokenize"
)

// Extractor finds dates, times and durations in text of one language.
type Extractor interface {
	// ExtractDateTime resolves the date/time fragments of text against
	// anchor. defaultTime applies when no time of day was said.
	ExtractDateTime(text string, anchor time.Time, defaultTime *lexicon.Clock) (datetime.Result, bool)
	ExtractDuration(text string) (duration.Result, bool)
	Language() string
}

// Pipeline is the Extractor built from a lexicon: tokenizer, number parser,
// duration extractor and date/time resolver.
type Pipeline struct {
	lex *lexicon.Lexicon
	tok *tokenize.Tokenizer
	dur *duration.Extractor
	res *datetime.Resolver
}

var _ Extractor = (*Pipeline)(nil)

// NewPipeline builds the pipeline of the lexicon code from repo.
func NewPipeline(repo *lexicon.Repository, code string) (*Pipeline, error) {
	lex, err := repo.Get(code)
	if err != nil {
		return nil, err
	}
	return FromLexicon(lex), nil
}

// FromLexicon builds a pipeline around an already loaded lexicon.
func FromLexicon(lex *lexicon.Lexicon) *Pipeline {
	tok := tokenize.New(lex)
	num := numwords.New(lex)
	return &Pipeline{
		lex: lex,
		tok: tok,
		dur: duration.New(lex, tok, num),
		res: datetime.New(lex, num),
	}
}

func (p *Pipeline) ExtractDateTime(text string, anchor time.Time, defaultTime *lexicon.Clock) (datetime.Result, bool) {
	res, ok := p.res.Resolve(p.tok.Tokenize(text), anchor, defaultTime)
	if !ok {
		return datetime.Result{}, false
	}
	return res, true
}

func (p *Pipeline) ExtractDuration(text string) (duration.Result, bool) {
	res, ok := p.dur.Extract(text)
	if !ok {
		return duration.Result{}, false
	}
	return res, true
}

// Language returns the tag of the underlying lexicon.
func (p *Pipeline) Language() string {
	return p.lex.Tag
}

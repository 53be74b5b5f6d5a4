// Package tokenize splits an utterance into normalized, positioned tokens.
//
// Every token remembers the byte span of the NFC-normalized input it came
// from, so consumed tokens can later be cut out of the original text.
package tokenize

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"go_dateparse/lexicon"
)

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	Number
	Ordinal // digits written with an ordinal suffix: 3rd, 21st, 3.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Number:
		return "number"
	case Ordinal:
		return "ordinal"
	case Punct:
		return "punct"
	}
	return "unknown"
}

// Token is one normalized unit of input.
type Token struct {
	Text    string // normalized form
	Surface string // original slice of the input
	Index   int
	Start   int // byte offset into the normalized input
	End     int
	Kind    Kind
}

// IsDigits reports whether the token is a number written with digits.
func (t Token) IsDigits() bool {
	return t.Kind == Number || t.Kind == Ordinal
}

// Tokenizer splits text using the normalization rules of one lexicon.
// It is safe for concurrent use.
type Tokenizer struct {
	lex      *lexicon.Lexicon
	tag      language.Tag
	multi    []multiReplacement
	single   map[string]string
	elisions []string
}

type multiReplacement struct {
	from []string
	to   string
}

// New creates a tokenizer for lex.
func New(lex *lexicon.Lexicon) *Tokenizer {
	tag, err := language.Parse(lex.Tag)
	if err != nil {
		tag = language.Und
	}
	t := &Tokenizer{
		lex:    lex,
		tag:    tag,
		single: make(map[string]string),
	}
	for _, r := range lex.Replacements {
		words := strings.Fields(r.From)
		if len(words) > 1 {
			t.multi = append(t.multi, multiReplacement{from: words, to: r.To})
			continue
		}
		t.single[r.From] = r.To
	}
	sort.SliceStable(t.multi, func(i, j int) bool {
		return len(t.multi[i].from) > len(t.multi[j].from)
	})
	t.elisions = append(t.elisions, lex.Elisions...)
	sort.SliceStable(t.elisions, func(i, j int) bool {
		return len(t.elisions[i]) > len(t.elisions[j])
	})
	return t
}

// Normalize returns text in the form token offsets refer to.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

type chunk struct {
	text       string
	low        string
	start, end int
}

// Tokenize splits text into tokens. Offsets refer to Normalize(text).
func (t *Tokenizer) Tokenize(text string) []Token {
	text = Normalize(text)
	lower := cases.Lower(t.tag)
	chunks := splitChunks(text, lower)

	b := &builder{tok: t, src: text}
	for c := 0; c < len(chunks); {
		if n := t.applyMulti(b, chunks, c); n > 0 {
			c += n
			continue
		}
		b.chunk(chunks[c], c == len(chunks)-1)
		c++
	}
	return b.out
}

// Texts returns the normalized text of every token.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func splitChunks(text string, lower cases.Caser) []chunk {
	var chunks []chunk
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				chunks = append(chunks, newChunk(text, start, i, lower))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		chunks = append(chunks, newChunk(text, start, len(text), lower))
	}
	return chunks
}

func newChunk(text string, start, end int, lower cases.Caser) chunk {
	s := text[start:end]
	return chunk{text: s, low: lower.String(s), start: start, end: end}
}

func (t *Tokenizer) applyMulti(b *builder, chunks []chunk, c int) int {
	for _, m := range t.multi {
		if c+len(m.from) > len(chunks) {
			continue
		}
		match := true
		for k, w := range m.from {
			if chunks[c+k].low != w {
				match = false
				break
			}
		}
		if match {
			last := chunks[c+len(m.from)-1]
			b.expand(m.to, chunks[c].start, last.end)
			return len(m.from)
		}
	}
	return 0
}

type builder struct {
	tok *Tokenizer
	src string
	out []Token
}

func (b *builder) emit(text string, start, end int, kind Kind) {
	if text == "" {
		return
	}
	b.out = append(b.out, Token{
		Text:    text,
		Surface: b.src[start:end],
		Index:   len(b.out),
		Start:   start,
		End:     end,
		Kind:    kind,
	})
}

// expand emits the words of a replacement, all sharing one span.
func (b *builder) expand(to string, start, end int) {
	for _, w := range strings.Fields(to) {
		b.core(w, start, end, false)
	}
}

func (b *builder) chunk(c chunk, last bool) {
	if to, ok := b.tok.single[c.low]; ok {
		b.expand(to, c.start, c.end)
		return
	}
	exact := len(c.low) == len(c.text)
	low := c.low

	// leading punctuation
	start := c.start
	for low != "" {
		r, size := utf8.DecodeRuneInString(low)
		if !isEdgePunct(r) {
			break
		}
		if exact {
			b.emit(string(r), start, start+size, Punct)
			start += size
		}
		low = low[size:]
	}
	if !exact {
		start = c.start
	}

	// trailing punctuation, emitted after the core
	var trailing []rune
	for low != "" {
		r, size := utf8.DecodeLastRuneInString(low)
		if !isEdgePunct(r) {
			break
		}
		if r == '\'' && b.isElision(low) {
			break
		}
		trailing = append([]rune{r}, trailing...)
		low = low[:len(low)-size]
	}
	end := start + len(low)
	if !exact {
		end = c.end
	}

	if to, ok := b.tok.single[low]; ok {
		b.expand(to, start, end)
	} else if len(trailing) > 0 && trailing[0] == '.' && !last && isAllDigits(low) && b.dotIsOrdinal() {
		b.emit(low, start, end+1, Ordinal)
		trailing = trailing[1:]
		end++
	} else {
		b.core(low, start, end, exact)
	}

	for _, r := range trailing {
		size := utf8.RuneLen(r)
		if exact {
			b.emit(string(r), end, end+size, Punct)
			end += size
		} else {
			b.emit(string(r), c.start, c.end, Punct)
		}
	}
}

func (b *builder) dotIsOrdinal() bool {
	for _, s := range b.tok.lex.Numbers.OrdinalSuffixes {
		if s == "." {
			return true
		}
	}
	return false
}

func (b *builder) isElision(w string) bool {
	for _, e := range b.tok.elisions {
		if w == e {
			return true
		}
	}
	return false
}

// core splits one punctuation-free word. When exact is false every produced
// token shares the span [start, end).
func (b *builder) core(w string, start, end int, exact bool) {
	span := func(from, to int) (int, int) {
		if !exact {
			return start, end
		}
		return start + from, start + to
	}

	w = b.tok.lex.StripPossessive(w)

	offset := 0
	for _, e := range b.tok.elisions {
		if len(w) > len(e) && strings.HasPrefix(w, e) {
			s, t := span(0, len(e))
			b.emit(e, s, t, Word)
			offset = len(e)
			break
		}
	}
	rest := w[offset:]
	if rest == "" {
		return
	}

	// 2017-06-05t10:30
	if date, clock, ok := strings.Cut(rest, "t"); ok && strings.Count(date, "-") == 2 &&
		isNumericLiteral(date) && isNumericLiteral(clock) {
		s, t := span(offset, offset+len(date))
		b.emit(date, s, t, Number)
		s, t = span(offset+len(date)+1, offset+len(rest))
		b.emit(clock, s, t, Number)
		return
	}
	if isNumericLiteral(rest) {
		s, t := span(offset, offset+len(rest))
		b.emit(rest, s, t, Number)
		return
	}

	pos := offset
	for _, part := range strings.FieldsFunc(rest, isHyphen) {
		idx := strings.Index(w[pos:], part)
		if idx < 0 {
			idx = 0
		}
		b.splitMixed(part, pos+idx, span)
		pos += idx + len(part)
	}
}

// splitMixed separates digit runs from letter runs: 10am, 5minutes, 7h30, 3rd.
func (b *builder) splitMixed(part string, base int, span func(int, int) (int, int)) {
	runs := mixedRuns(part)
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		from, to := base+r.from, base+r.to
		if !r.digits {
			s, t := span(from, to)
			b.emit(r.text, s, t, Word)
			continue
		}
		if i+1 < len(runs) && b.isOrdinalSuffix(runs[i+1].text) && isAllDigits(r.text) {
			s, t := span(from, base+runs[i+1].to)
			b.emit(r.text, s, t, Ordinal)
			i++
			continue
		}
		s, t := span(from, to)
		b.emit(r.text, s, t, Number)
	}
}

func (b *builder) isOrdinalSuffix(s string) bool {
	for _, suffix := range b.tok.lex.Numbers.OrdinalSuffixes {
		if s == suffix {
			return true
		}
	}
	return false
}

type run struct {
	text     string
	from, to int
	digits   bool
}

func mixedRuns(s string) []run {
	var runs []run
	cur := run{from: -1}
	flush := func(at int) {
		if cur.from >= 0 {
			cur.to = at
			cur.text = s[cur.from:at]
			runs = append(runs, cur)
		}
		cur = run{from: -1}
	}
	for i, r := range s {
		digit := unicode.IsDigit(r)
		if !digit && cur.digits && isNumberJoiner(r) && i+1 < len(s) && isDigitByte(s[i+1]) {
			continue
		}
		if cur.from >= 0 && digit == cur.digits {
			continue
		}
		flush(i)
		cur = run{from: i, digits: digit}
	}
	flush(len(s))
	return runs
}

func isNumericLiteral(s string) bool {
	if s == "" || !isDigitByte(s[0]) || !isDigitByte(s[len(s)-1]) {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !isNumberJoiner(r) && r != '-' && r != '/' {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberJoiner(r rune) bool {
	return r == ':' || r == '.' || r == ','
}

func isHyphen(r rune) bool {
	return r == '-' || r == '‐' || r == '–'
}

func isEdgePunct(r rune) bool {
	if r == '@' || r == '#' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

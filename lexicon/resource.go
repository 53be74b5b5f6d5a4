package lexicon

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go_dateparse/units"
)

// resource is the on-disk YAML layout of one language.
type resource struct {
	Code            string              `yaml:"code"`
	Tag             string              `yaml:"tag"`
	Weekdays        map[string][]string `yaml:"weekdays"`
	Months          map[int][]string    `yaml:"months"`
	AmbiguousMonths []string            `yaml:"ambiguous_months"`
	RelativeDays    map[string]int      `yaml:"relative_days"`
	Markers         struct {
		Next      []string `yaml:"next"`
		Last      []string `yaml:"last"`
		This      []string `yaml:"this"`
		In        []string `yaml:"in"`
		Within    []string `yaml:"within"`
		For       []string `yaml:"for"`
		AgoPrefix []string `yaml:"ago_prefix"`
		AgoSuffix []string `yaml:"ago_suffix"`
		Later     []string `yaml:"later"`
		From      []string `yaml:"from"`
		Now       []string `yaml:"now"`
		Of        []string `yaml:"of"`
		Fillers   []string `yaml:"fillers"`
		PastTense []string `yaml:"past_tense"`
	} `yaml:"markers"`
	Units   map[string][]string `yaml:"units"`
	Numbers struct {
		Units            map[string]float64 `yaml:"units"`
		Tens             map[string]float64 `yaml:"tens"`
		Multipliers      map[string]float64 `yaml:"multipliers"`
		Fractions        map[string]float64 `yaml:"fractions"`
		FractionSuffixes map[string]float64 `yaml:"fraction_suffixes"`
		Ordinals         map[string]int     `yaml:"ordinals"`
		OrdinalSuffixes  []string           `yaml:"ordinal_suffixes"`
		OrdinalEndings   []string           `yaml:"ordinal_endings"`
		Connectors       []string           `yaml:"connectors"`
		Articles         []string           `yaml:"articles"`
		FractionFillers  []string           `yaml:"fraction_fillers"`
		Couple           []string           `yaml:"couple"`
		CompoundJoiners  []string           `yaml:"compound_joiners"`
		DecimalSeparator string             `yaml:"decimal_separator"`
	} `yaml:"numbers"`
	Time struct {
		AM               []string          `yaml:"am"`
		PM               []string          `yaml:"pm"`
		ClockWords       []string          `yaml:"clock_words"`
		MilitaryWords    []string          `yaml:"military_words"`
		HourPrepositions []string          `yaml:"hour_prepositions"`
		EveningCues      []string          `yaml:"evening_cues"`
		NamedTimes       map[string]string `yaml:"named_times"`
		Tonight          []string          `yaml:"tonight"`
		DayPeriods       []struct {
			Words  []string `yaml:"words"`
			Period string   `yaml:"period"`
			Hour   int      `yaml:"hour"`
		} `yaml:"day_periods"`
		TimePhrases []struct {
			Words    []string `yaml:"words"`
			Minutes  int      `yaml:"minutes"`
			Position string   `yaml:"position"`
		} `yaml:"time_phrases"`
		MinuteRelations map[string]int `yaml:"minute_relations"`
		Separators      string         `yaml:"separators"`
	} `yaml:"time"`
	Calendar struct {
		NextWeekdayThreshold int `yaml:"next_weekday_threshold"`
	} `yaml:"calendar"`
	Normalization struct {
		Replacements []struct {
			From string `yaml:"from"`
			To   string `yaml:"to"`
		} `yaml:"replacements"`
		PossessiveSuffixes []string `yaml:"possessive_suffixes"`
		Elisions           []string `yaml:"elisions"`
	} `yaml:"normalization"`
	Leftover struct {
		DropWords    []string `yaml:"drop_words"`
		Prepositions []string `yaml:"prepositions"`
		Conjunctions []string `yaml:"conjunctions"`
	} `yaml:"leftover"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var periodNames = map[string]PeriodName{
	"morning":   Morning,
	"noon":      Noon,
	"afternoon": Afternoon,
	"evening":   Evening,
	"night":     Night,
}

// Parse decodes and compiles a YAML language resource.
func Parse(data []byte) (*Lexicon, error) {
	var r resource
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "decoding lexicon")
	}
	lex, err := r.compile()
	if err != nil {
		return nil, errors.Wrapf(err, "compiling lexicon %q", r.Code)
	}
	return lex, nil
}

func (r *resource) compile() (*Lexicon, error) {
	if r.Code == "" {
		return nil, errors.New("missing code")
	}
	lex := &Lexicon{
		Code:                 r.Code,
		Tag:                  r.Tag,
		AmbiguousMonths:      NewWordSet(lower(r.AmbiguousMonths)...),
		PossessiveSuffixes:   r.Normalization.PossessiveSuffixes,
		Elisions:             lower(r.Normalization.Elisions),
		NextWeekdayThreshold: r.Calendar.NextWeekdayThreshold,
	}
	if lex.Tag == "" {
		lex.Tag = r.Code
	}

	for name, words := range r.Weekdays {
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, errors.Errorf("unknown weekday %q", name)
		}
		for _, w := range lower(words) {
			lex.Weekdays.Add(w, wd)
		}
	}
	if lex.Weekdays.Len() == 0 {
		return nil, errors.New("no weekdays")
	}

	for m, words := range r.Months {
		if m < 1 || m > 12 {
			return nil, errors.Errorf("month %d out of range", m)
		}
		for _, w := range lower(words) {
			lex.Months.Add(w, time.Month(m))
		}
	}
	if lex.Months.Len() == 0 {
		return nil, errors.New("no months")
	}

	for phrase, offset := range r.RelativeDays {
		lex.RelativeDays.Add(strings.ToLower(phrase), offset)
	}

	for name, words := range r.Units {
		spec, ok := units.Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown unit %q", name)
		}
		for _, w := range lower(words) {
			lex.Units.Add(w, spec)
		}
	}

	m := r.Markers
	lex.Markers = Markers{
		Next:      NewPhrases(lower(m.Next)...),
		Last:      NewPhrases(lower(m.Last)...),
		This:      NewPhrases(lower(m.This)...),
		In:        NewPhrases(lower(m.In)...),
		Within:    NewPhrases(lower(m.Within)...),
		For:       NewPhrases(lower(m.For)...),
		AgoPrefix: NewPhrases(lower(m.AgoPrefix)...),
		AgoSuffix: NewPhrases(lower(m.AgoSuffix)...),
		Later:     NewPhrases(lower(m.Later)...),
		From:      NewPhrases(lower(m.From)...),
		Now:       NewPhrases(lower(m.Now)...),
		Of:        NewPhrases(lower(m.Of)...),
		Fillers:   NewWordSet(lower(m.Fillers)...),
		PastTense: NewWordSet(lower(m.PastTense)...),
	}

	n := r.Numbers
	lex.Numbers = Numbers{
		Units:            n.Units,
		Tens:             n.Tens,
		Multipliers:      n.Multipliers,
		Fractions:        n.Fractions,
		FractionSuffixes: n.FractionSuffixes,
		Ordinals:         n.Ordinals,
		OrdinalSuffixes:  n.OrdinalSuffixes,
		OrdinalEndings:   n.OrdinalEndings,
		Connectors:       NewWordSet(lower(n.Connectors)...),
		Articles:         NewWordSet(lower(n.Articles)...),
		FractionFillers:  NewWordSet(lower(n.FractionFillers)...),
		Couple:           NewWordSet(lower(n.Couple)...),
		CompoundJoiners:  lower(n.CompoundJoiners),
		DecimalSeparator: n.DecimalSeparator,
	}
	if lex.Numbers.DecimalSeparator == "" {
		lex.Numbers.DecimalSeparator = "."
	}

	tw, err := r.compileTime()
	if err != nil {
		return nil, err
	}
	lex.Time = tw

	for _, rep := range r.Normalization.Replacements {
		if rep.From == "" {
			return nil, errors.New("empty replacement")
		}
		lex.Replacements = append(lex.Replacements, Replacement{From: strings.ToLower(rep.From), To: rep.To})
	}

	lex.Leftover = LeftoverRules{
		DropWords:    NewWordSet(lower(r.Leftover.DropWords)...),
		Prepositions: NewWordSet(lower(r.Leftover.Prepositions)...),
		Conjunctions: NewWordSet(lower(r.Leftover.Conjunctions)...),
	}
	return lex, nil
}

func (r *resource) compileTime() (TimeWords, error) {
	t := r.Time
	tw := TimeWords{
		AM:               NewPhrases(lower(t.AM)...),
		PM:               NewPhrases(lower(t.PM)...),
		ClockWords:       NewPhrases(lower(t.ClockWords)...),
		MilitaryWords:    NewWordSet(lower(t.MilitaryWords)...),
		HourPrepositions: NewPhrases(lower(t.HourPrepositions)...),
		EveningCues:      NewWordSet(lower(t.EveningCues)...),
		Tonight:          NewPhrases(lower(t.Tonight)...),
		MinuteRelations:  t.MinuteRelations,
		Separators:       t.Separators,
		TonightPeriod:    Period{Name: Night, Hour: 22},
	}
	if tw.Separators == "" {
		tw.Separators = ":"
	}

	for phrase, value := range t.NamedTimes {
		c, err := parseClock(value)
		if err != nil {
			return tw, errors.Wrapf(err, "named time %q", phrase)
		}
		tw.NamedTimes.Add(strings.ToLower(phrase), c)
	}

	for _, p := range t.DayPeriods {
		name, ok := periodNames[p.Period]
		if !ok {
			return tw, errors.Errorf("unknown day period %q", p.Period)
		}
		if p.Hour < 0 || p.Hour > 23 {
			return tw, errors.Errorf("day period %q hour %d out of range", p.Period, p.Hour)
		}
		period := Period{Name: name, Hour: p.Hour}
		if name == Night {
			tw.TonightPeriod = period
		}
		for _, w := range lower(p.Words) {
			tw.DayPeriods.Add(w, period)
		}
	}

	for _, p := range t.TimePhrases {
		pos := PhrasePosition(p.Position)
		if pos != BeforeHour && pos != AfterHour {
			return tw, errors.Errorf("time phrase %v: bad position %q", p.Words, p.Position)
		}
		if p.Minutes <= -60 || p.Minutes >= 60 {
			return tw, errors.Errorf("time phrase %v: minutes %d out of range", p.Words, p.Minutes)
		}
		for _, w := range lower(p.Words) {
			tw.TimePhrases = append(tw.TimePhrases, TimePhrase{
				Words:    strings.Fields(w),
				Minutes:  p.Minutes,
				Position: pos,
			})
		}
	}
	return tw, nil
}

func parseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func lower(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

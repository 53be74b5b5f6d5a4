package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"go_dateparse/config"
	"go_dateparse/lexicon"
)

// clockValue is a pflag.Value for HH:MM times.
type clockValue struct {
	clock *lexicon.Clock
	raw   string
}

var _ pflag.Value = (*clockValue)(nil)

func (c *clockValue) String() string { return c.raw }
func (c *clockValue) Type() string   { return "HH:MM" }

func (c *clockValue) Set(s string) error {
	clock, err := config.ParseClock(s)
	if err != nil {
		return err
	}
	c.clock, c.raw = clock, s
	return nil
}

// timeValue is a pflag.Value for RFC 3339 timestamps.
type timeValue struct {
	t *time.Time
}

var _ pflag.Value = (*timeValue)(nil)

func (v *timeValue) String() string {
	if v.t == nil {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v *timeValue) Type() string { return "RFC3339" }

func (v *timeValue) Set(s string) error {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("anchor must be RFC 3339, e.g. 2017-06-27T13:04:00Z: %w", err)
	}
	v.t = &t
	return nil
}

// extractFlags are the flags shared by the extraction commands.
type extractFlags struct {
	lang        string
	anchor      timeValue
	defaultTime clockValue
	json        bool
}

func (f *extractFlags) flagSet(withTime bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	fs.StringVarP(&f.lang, "lang", "l", "", "BCP-47 language tag (default from config)")
	fs.BoolVar(&f.json, "json", false, "print the result as JSON")
	if withTime {
		fs.Var(&f.anchor, "anchor", "resolve relative expressions against this time")
		fs.Var(&f.defaultTime, "default-time", "time of day used when only a day is named")
	}
	return fs
}

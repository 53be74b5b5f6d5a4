// Package extract is the entry point of the library. It picks the language
// pipeline for a BCP-47 tag and runs date/time or duration extraction.
//
//	res, ok, err := extract.DateTime("remind me next friday at 3pm", "en-us")
//	// res.Time is next Friday 15:00, res.Leftover is "remind me"
package extract

import (
	"log/slog"
	"sync"
	"time"

	"go_dateparse/datetime"
	"go_dateparse/duration"
	"go_dateparse/lexicon"
)

type options struct {
	anchor      *time.Time
	defaultTime *lexicon.Clock
	loc         *time.Location
	now         func() time.Time
}

// Option tunes a single DateTime call.
type Option func(*options)

// WithAnchor resolves relative expressions against t instead of the
// current time.
func WithAnchor(t time.Time) Option {
	return func(o *options) { o.anchor = &t }
}

// WithDefaultTime sets the time of day used when the text names a day but
// no time.
func WithDefaultTime(hour, minute int) Option {
	return func(o *options) { o.defaultTime = &lexicon.Clock{Hour: hour, Minute: minute} }
}

// WithLocation interprets the anchor in loc.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// WithNow replaces the clock used when no anchor is given.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func (o options) resolveAnchor() time.Time {
	var t time.Time
	switch {
	case o.anchor != nil:
		t = *o.anchor
	case o.now != nil:
		t = o.now()
	default:
		t = time.Now()
	}
	if o.loc != nil {
		t = t.In(o.loc)
	}
	return t
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process wide registry over the embedded lexicons.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry(lexicon.Default(), slog.Default())
	})
	return defaultRegistry
}

// DateTime extracts a point in time from text with the default registry.
func DateTime(text, lang string, opts ...Option) (datetime.Result, bool, error) {
	return Default().DateTime(text, lang, opts...)
}

// Duration extracts a duration from text with the default registry.
func Duration(text, lang string) (duration.Result, bool, error) {
	return Default().Duration(text, lang)
}

// DateTime extracts a point in time from text. The bool is false when the
// text holds no date or time; the error is only set for unsupported
// languages.
func (r *Registry) DateTime(text, lang string, opts ...Option) (datetime.Result, bool, error) {
	ext, err := r.Lookup(lang)
	if err != nil {
		return datetime.Result{}, false, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	res, ok := ext.ExtractDateTime(text, o.resolveAnchor(), o.defaultTime)
	return res, ok, nil
}

// Duration extracts a duration from text.
func (r *Registry) Duration(text, lang string) (duration.Result, bool, error) {
	ext, err := r.Lookup(lang)
	if err != nil {
		return duration.Result{}, false, err
	}
	res, ok := ext.ExtractDuration(text)
	return res, ok, nil
}

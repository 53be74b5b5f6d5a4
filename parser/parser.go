// Package parser finds [remind_me <utterance>] markers in text files and turns
// them into reminders with the extract registry.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"go_dateparse/extract"
	"go_dateparse/lexicon"
	"go_dateparse/reminder"
)

// DefaultMarker is the keyword that opens a reminder: [remind_me ...].
const DefaultMarker = "remind_me"

// ErrNoDateTime is returned for an utterance without a date or time.
var ErrNoDateTime = errors.New("no date or time found")

// Pattern matches #tag tokens (word characters after #, must be preceded by start or whitespace)
var tagPattern = regexp.MustCompile(`(?:^|\s)#(\w+)`)

// Parser extracts reminders from text. It is safe for concurrent use.
type Parser struct {
	registry    *extract.Registry
	lang        string
	defaultTime *lexicon.Clock
	pattern     *regexp.Regexp
	logger      *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguage sets the language of markers that do not name one.
func WithLanguage(lang string) Option {
	return func(p *Parser) { p.lang = lang }
}

// WithMarker replaces the remind_me keyword.
func WithMarker(marker string) Option {
	return func(p *Parser) { p.pattern = markerPattern(marker) }
}

// WithDefaultTime sets the time used for reminders that only name a day.
func WithDefaultTime(c *lexicon.Clock) Option {
	return func(p *Parser) { p.defaultTime = c }
}

// WithLogger sets the logger used for skipped markers.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New creates a parser over registry.
func New(registry *extract.Registry, opts ...Option) *Parser {
	p := &Parser{
		registry: registry,
		lang:     "en",
		pattern:  markerPattern(DefaultMarker),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// markerPattern matches [marker <content>] and [marker:lang <content>].
func markerPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`\[` + regexp.QuoteMeta(marker) + `(?::([A-Za-z_-]+))?\s+([^\]]+)\]`)
}

// ParseFile reads a file and extracts all reminders.
// relativeTo is used as the base time for relative datetime parsing.
func (p *Parser) ParseFile(path string, relativeTo time.Time) ([]*reminder.Reminder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file, path, relativeTo)
}

// Parse extracts the reminders of r. source is recorded on every reminder.
// Markers that hold no date or time are skipped.
func (p *Parser) Parse(r io.Reader, source string, relativeTo time.Time) ([]*reminder.Reminder, error) {
	var reminders []*reminder.Reminder
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		for _, match := range p.pattern.FindAllStringSubmatch(scanner.Text(), -1) {
			lang := match[1]
			if lang == "" {
				lang = p.lang
			}
			content := strings.TrimSpace(match[2])

			rem, err := p.ParseUtterance(content, lang, relativeTo)
			if err != nil {
				p.logger.Debug("skipping marker",
					slog.String("file", source),
					slog.Int("line", lineNumber),
					slog.Any("error", err))
				continue
			}
			rem.ID = reminder.NewID(source, lineNumber, content)
			rem.SourceFile = source
			rem.LineNumber = lineNumber
			reminders = append(reminders, rem)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return reminders, nil
}

// ParseUtterance turns one utterance into a pending reminder. The text left
// after the date/time and the tags is the description.
func (p *Parser) ParseUtterance(utterance, lang string, relativeTo time.Time) (*reminder.Reminder, error) {
	text, tags := ExtractTags(utterance)

	opts := []extract.Option{extract.WithAnchor(relativeTo)}
	if p.defaultTime != nil {
		opts = append(opts, extract.WithDefaultTime(p.defaultTime.Hour, p.defaultTime.Minute))
	}
	res, ok, err := p.registry.DateTime(text, lang, opts...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDateTime, utterance)
	}

	return &reminder.Reminder{
		ID:          reminder.NewID("", 0, utterance),
		DateTime:    res.Time,
		Description: res.Leftover,
		Tags:        tags,
		Lang:        lang,
		Utterance:   utterance,
		Status:      reminder.Pending,
	}, nil
}

// ExtractTags extracts #tag tokens from text and returns the cleaned text and tags.
// Tags must be preceded by whitespace or be at the start of the string.
func ExtractTags(text string) (cleanText string, tags []string) {
	for _, match := range tagPattern.FindAllStringSubmatch(text, -1) {
		tags = append(tags, match[1])
	}

	cleanText = tagPattern.ReplaceAllString(text, " ")
	cleanText = strings.Join(strings.Fields(cleanText), " ")
	return cleanText, tags
}

package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"go_dateparse/lexicon"
)

// ErrUnsupportedLanguage is returned when no pipeline is registered for a
// language tag or any of its prefixes.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Builder creates the extractor of one registry entry.
type Builder func() (Extractor, error)

type entry struct {
	build Builder
	once  sync.Once
	ext   Extractor
	err   error
}

func (e *entry) get() (Extractor, error) {
	e.once.Do(func() { e.ext, e.err = e.build() })
	return e.ext, e.err
}

// Registry maps language tag prefixes to extractors. Extractors are built on
// first use and reused afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{entries: make(map[string]*entry), logger: logger}
}

// NewDefaultRegistry registers a pipeline for every lexicon in repo.
func NewDefaultRegistry(repo *lexicon.Repository, logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	for _, code := range repo.Codes() {
		code := code
		if err := r.Register(code, func() (Extractor, error) {
			return NewPipeline(repo, code)
		}); err != nil {
			r.logger.Warn("skipping language", slog.String("code", code), slog.Any("error", err))
		}
	}
	return r
}

// Register adds a builder under a tag prefix such as "en" or "pt-br".
func (r *Registry) Register(prefix string, build Builder) error {
	key, err := Canonical(prefix)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("language already registered: %q", key)
	}
	r.entries[key] = &entry{build: build}
	return nil
}

// Lookup returns the extractor of the longest registered prefix of tag:
// "en-us" resolves to "en-us" when registered, else to "en".
func (r *Registry) Lookup(tag string) (Extractor, error) {
	key, err := Canonical(tag)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	var e *entry
	for k := key; k != ""; k = parent(k) {
		if found, ok := r.entries[k]; ok {
			e = found
			break
		}
	}
	r.mu.RUnlock()
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
	ext, err := e.get()
	if err != nil {
		return nil, fmt.Errorf("building extractor for %q: %w", key, err)
	}
	return ext, nil
}

// Languages returns the registered prefixes in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.entries))
	for k := range r.entries {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// Canonical normalizes a BCP-47 tag to lowercase with dashes: "pt_BR" gives
// "pt-br".
func Canonical(tag string) (string, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if raw == "" {
		return "", fmt.Errorf("%w: empty tag", ErrUnsupportedLanguage)
	}
	t, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, tag, err)
	}
	return strings.ToLower(t.String()), nil
}

func parent(key string) string {
	i := strings.LastIndex(key, "-")
	if i < 0 {
		return ""
	}
	return key[:i]
}

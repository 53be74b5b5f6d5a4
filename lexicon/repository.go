package lexicon

import (
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// DefaultCode is the language used when a resource cannot be loaded.
const DefaultCode = "en"

//go:embed resources/*.yaml
var embedded embed.FS

// Repository loads lexicons on first use and caches them. After a code has
// been loaded its Lexicon is never rebuilt.
type Repository struct {
	fsys     fs.FS
	fallback string
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Lexicon
	group singleflight.Group
}

// Option configures a Repository.
type Option func(*Repository)

// WithFS reads resources from fsys instead of the embedded set. Files are
// looked up as resources/<code>.yaml.
func WithFS(fsys fs.FS) Option {
	return func(r *Repository) { r.fsys = fsys }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithFallback changes the fallback language code.
func WithFallback(code string) Option {
	return func(r *Repository) { r.fallback = code }
}

// NewRepository creates a repository over the embedded resources.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		fsys:     embedded,
		fallback: DefaultCode,
		logger:   slog.Default(),
		cache:    make(map[string]*Lexicon),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRepo     *Repository
	defaultRepoOnce sync.Once
)

// Default returns the process wide repository over the embedded resources.
func Default() *Repository {
	defaultRepoOnce.Do(func() { defaultRepo = NewRepository() })
	return defaultRepo
}

// Get returns the lexicon for code. When the resource is missing or broken the
// fallback lexicon is returned instead and a warning is logged. Only a failure
// to load the fallback itself is an error.
func (r *Repository) Get(code string) (*Lexicon, error) {
	code = strings.ToLower(code)
	lex, err := r.load(code)
	if err == nil {
		return lex, nil
	}
	if code == r.fallback {
		return nil, err
	}
	r.logger.Warn("lexicon unavailable, using fallback",
		slog.String("code", code),
		slog.String("fallback", r.fallback),
		slog.Any("error", err))
	lex, ferr := r.load(r.fallback)
	if ferr != nil {
		return nil, errors.Wrapf(ferr, "loading fallback lexicon after %v", err)
	}
	return lex, nil
}

// MustGet is Get for codes known to be embedded.
func (r *Repository) MustGet(code string) *Lexicon {
	lex, err := r.Get(code)
	if err != nil {
		panic(err)
	}
	return lex
}

// Codes lists the language codes available in the resource set.
func (r *Repository) Codes() []string {
	entries, err := fs.ReadDir(r.fsys, "resources")
	if err != nil {
		return nil
	}
	var codes []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		codes = append(codes, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(codes)
	return codes
}

func (r *Repository) load(code string) (*Lexicon, error) {
	r.mu.RLock()
	lex, ok := r.cache[code]
	r.mu.RUnlock()
	if ok {
		return lex, nil
	}

	v, err, _ := r.group.Do(code, func() (interface{}, error) {
		r.mu.RLock()
		cached, ok := r.cache[code]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		data, err := fs.ReadFile(r.fsys, path.Join("resources", code+".yaml"))
		if err != nil {
			return nil, errors.Wrapf(err, "reading lexicon %q", code)
		}
		built, err := Parse(data)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[code] = built
		r.mu.Unlock()
		r.logger.Debug("lexicon loaded", slog.String("code", code))
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Lexicon), nil
}

// Package watcher re-parses reminder files with fsnotify whenever they
// change and publishes the result as FileEvents.
package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"go_dateparse/parser"
	"go_dateparse/reminder"
)

// DefaultExtensions are the file types scanned for reminders.
var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// FileEvent is sent when files are updated with new reminders
type FileEvent struct {
	FilePath  string
	Reminders []*reminder.Reminder
	Err       error
}

// Watcher watches files/directories for changes and parses reminders
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	parser     *parser.Parser
	extensions []string
	now        func() time.Time
	logger     *slog.Logger

	Events   chan FileEvent
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions limits scanning to files with these extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) { w.extensions = normalizeExtensions(exts) }
}

// WithClock replaces the anchor used for relative expressions.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

// WithLogger sets the logger for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New creates a new Watcher
func New(p *parser.Parser, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher:  fsw,
		parser:     p,
		extensions: DefaultExtensions,
		now:        time.Now,
		logger:     slog.Default(),
		Events:     make(chan FileEvent, 10),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func (w *Watcher) matches(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

// Watch adds a file or a directory tree to the watch list.
func (w *Watcher) Watch(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.WatchDirectory(path)
	}
	return w.WatchFile(path)
}

// WatchFile adds a single file to the watch list
func (w *Watcher) WatchFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsWatcher.Add(absPath)
}

// WatchDirectory adds a directory and its subdirectories to the watch list.
func (w *Watcher) WatchDirectory(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	return filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.logger.Warn("could not watch directory", slog.String("path", path), slog.Any("error", err))
		}
		return nil
	})
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.run()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
	})
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.WatchDirectory(event.Name); err != nil {
				w.logger.Warn("could not watch new directory", slog.String("path", event.Name), slog.Any("error", err))
			}
			w.parseTree(event.Name)
			return
		}
	}
	if !w.matches(event.Name) {
		return
	}
	w.emit(event.Name)
}

func (w *Watcher) parseTree(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && w.matches(path) {
			w.emit(path)
		}
		return nil
	})
}

func (w *Watcher) emit(path string) {
	reminders, err := w.parser.ParseFile(path, w.now())
	select {
	case w.Events <- FileEvent{FilePath: path, Reminders: reminders, Err: err}:
	case <-w.done:
	}
}

// ParseInitial parses a file or directory and returns initial reminders
func (w *Watcher) ParseInitial(path string) ([]*reminder.Reminder, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}

	now := w.now()
	if !info.IsDir() {
		reminders, err := w.parser.ParseFile(path, now)
		return reminders, false, err
	}

	var all []*reminder.Reminder
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !w.matches(filePath) {
			return nil
		}
		reminders, parseErr := w.parser.ParseFile(filePath, now)
		if parseErr != nil {
			w.logger.Warn("could not parse file", slog.String("path", filePath), slog.Any("error", parseErr))
			return nil
		}
		all = append(all, reminders...)
		return nil
	})
	return all, true, err
}

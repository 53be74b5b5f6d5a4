package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go_dateparse/observability"
	"go_dateparse/parser"
	"go_dateparse/reminder"
	"go_dateparse/state"
	"go_dateparse/tui"
	"go_dateparse/watcher"
)

func (a *app) newParser() (*parser.Parser, error) {
	clock, err := a.cfg.DefaultClock()
	if err != nil {
		return nil, err
	}
	return parser.New(a.reg,
		parser.WithLanguage(a.cfg.Language),
		parser.WithMarker(a.cfg.Watch.Marker),
		parser.WithDefaultTime(clock),
		parser.WithLogger(observability.WithComponent(a.logger, "parser")),
	), nil
}

func (a *app) newWatcher() (*watcher.Watcher, error) {
	p, err := a.newParser()
	if err != nil {
		return nil, err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	return watcher.New(p,
		watcher.WithExtensions(a.cfg.Watch.Extensions...),
		watcher.WithClock(func() time.Time { return time.Now().In(loc) }),
		watcher.WithLogger(observability.WithComponent(a.logger, "watcher")),
	)
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file-or-directory>",
		Short: "Print reminders found in files and re-print them on change",
		Long: `watch scans files for [remind_me <utterance>] markers, prints the reminders
it finds and keeps printing as the files change. Use [remind_me:de ...] to
write a reminder in another language than the configured one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, out io.Writer, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	reminders, _, err := w.ParseInitial(absPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", absPath, err)
	}
	reminder.SortByDateTime(reminders)
	printReminders(out, reminders)

	if err := w.Watch(absPath); err != nil {
		return fmt.Errorf("watching %s: %w", absPath, err)
	}
	w.Start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events:
			if event.Err != nil {
				a.logger.Warn("could not parse file", slog.String("path", event.FilePath), slog.Any("error", event.Err))
				continue
			}
			fmt.Fprintf(out, "# %s changed\n", event.FilePath)
			printReminders(out, event.Reminders)
		}
	}
}

func printReminders(out io.Writer, reminders []*reminder.Reminder) {
	for _, r := range reminders {
		fmt.Fprintf(out, "%s:%d\t%s\t%s\n", filepath.Base(r.SourceFile), r.LineNumber, r.DateTime.Format("Mon Jan 2 2006 15:04"), r.Description)
	}
}

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file-or-directory]",
		Short: "Interactive playground and reminder list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(args)
		},
	}
}

func (a *app) runTUI(args []string) error {
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}
	clock, err := a.cfg.DefaultClock()
	if err != nil {
		return err
	}

	var store *state.Store
	if dir, err := state.DefaultDir(); err == nil {
		store = state.NewStore(dir)
	} else {
		a.logger.Warn("state disabled", slog.Any("error", err))
	}

	cfg := tui.Config{
		Registry:    a.reg,
		Language:    a.cfg.Language,
		DefaultTime: clock,
		Store:       store,
		Now:         func() time.Time { return time.Now().In(loc) },
	}

	if len(args) == 1 {
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		w, err := a.newWatcher()
		if err != nil {
			return err
		}
		defer w.Stop()

		reminders, _, err := w.ParseInitial(absPath)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", absPath, err)
		}
		if store != nil {
			if err := store.RestoreStatus(reminders); err != nil {
				a.logger.Warn("could not restore reminder state", slog.Any("error", err))
			}
		}
		reminder.SortByDateTime(reminders)
		cfg.Reminders = reminders

		if err := w.Watch(absPath); err != nil {
			return fmt.Errorf("watching %s: %w", absPath, err)
		}
		w.Start()

		events := make(chan tui.FileUpdateMsg, 10)
		go func() {
			for event := range w.Events {
				if event.Err != nil {
					continue
				}
				events <- tui.FileUpdateMsg{FilePath: event.FilePath, Reminders: event.Reminders}
			}
		}()
		cfg.WatcherEvents = events
	}

	p := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

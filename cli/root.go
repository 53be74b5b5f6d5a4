// Package cli implements the go_dateparse command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"go_dateparse/config"
	"go_dateparse/extract"
	"go_dateparse/lexicon"
	"go_dateparse/observability"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	repo    *lexicon.Repository
	reg     *extract.Registry
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "go_dateparse",
		Short: "Find dates, times and durations in natural language",
		Long: `go_dateparse extracts points in time ("next friday at 3pm") and durations
("2 hours and 30 minutes") from free text in several languages and shows what
is left of the sentence once they are removed.

Reminders written as [remind_me <utterance>] in text files can be watched
and shown in a terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	// Flags override config and env only when set explicitly.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./config.yaml or $HOME/.go_dateparse/config.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		newDateTimeCommand(a),
		newDurationCommand(a),
		newLangsCommand(a),
		newWatchCommand(a),
		newTUICommand(a),
		newConfigCommand(a),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute(out, errOut io.Writer) error {
	if err := NewRootCommand(out, errOut).Execute(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return err
	}
	return nil
}

func (a *app) init(cmd *cobra.Command, errOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		cfg.Logging.Level = strings.ToLower(level)
	}
	if flags.Changed("log-format") {
		format, _ := flags.GetString("log-format")
		cfg.Logging.Format = strings.ToLower(format)
	}
	if cfg.Logging.Level == "warning" {
		cfg.Logging.Level = "warn"
	}

	a.cfg = cfg
	a.logger = observability.NewLoggerWithWriter(cfg.Logging, errOut)
	slog.SetDefault(a.logger)

	a.repo = lexicon.NewRepository(lexicon.WithLogger(observability.WithComponent(a.logger, "lexicon")))
	a.reg = extract.NewDefaultRegistry(a.repo, observability.WithComponent(a.logger, "extract"))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go_dateparse/extract"
)

type dateTimeOutput struct {
	Found    bool      `json:"found"`
	Time     time.Time `json:"time,omitzero"`
	Leftover string    `json:"leftover"`
	Rules    []string  `json:"rules,omitempty"`
}

type durationOutput struct {
	Found    bool   `json:"found"`
	Duration string `json:"duration,omitempty"`
	Seconds  int64  `json:"seconds"`
	Leftover string `json:"leftover"`
}

func newDateTimeCommand(a *app) *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "datetime <text>",
		Short: "Extract a point in time from text",
		Example: `  go_dateparse datetime "remind me to call mom next friday at 3pm"
  go_dateparse datetime --lang de "morgen um 10 Uhr Zahnarzt"
  go_dateparse datetime --anchor 2017-06-27T13:04:00Z "in 3 days"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			opts, err := a.dateTimeOptions(&f)
			if err != nil {
				return err
			}
			res, ok, err := a.reg.DateTime(text, a.lang(f.lang), opts...)
			if err != nil {
				return err
			}

			out := dateTimeOutput{Found: ok, Leftover: text}
			if ok {
				out.Time, out.Leftover = res.Time, res.Leftover
				for _, m := range res.Matches {
					out.Rules = append(out.Rules, m.Rule)
				}
			}
			return printDateTime(cmd.OutOrStdout(), out, f.json)
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet(true))
	return cmd
}

func newDurationCommand(a *app) *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:     "duration <text>",
		Short:   "Extract a duration from text",
		Example: `  go_dateparse duration "set a timer for 3 days 8 hours and 10 minutes"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			res, ok, err := a.reg.Duration(text, a.lang(f.lang))
			if err != nil {
				return err
			}

			out := durationOutput{Found: ok, Leftover: text}
			if ok {
				out.Duration = res.Length.String()
				out.Seconds = res.Length.Seconds()
				out.Leftover = res.Leftover
			}
			return printDuration(cmd.OutOrStdout(), out, f.json)
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet(false))
	return cmd
}

func newLangsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, lang := range a.reg.Languages() {
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}
			return nil
		},
	}
}

func (a *app) lang(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Language
}

func (a *app) dateTimeOptions(f *extractFlags) ([]extract.Option, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	var opts []extract.Option
	switch {
	case f.anchor.t == nil:
		opts = append(opts, extract.WithLocation(loc))
	case a.cfg.Timezone != "":
		opts = append(opts, extract.WithAnchor(*f.anchor.t), extract.WithLocation(loc))
	default:
		// an explicit anchor keeps its own offset
		opts = append(opts, extract.WithAnchor(*f.anchor.t))
	}

	clock := f.defaultTime.clock
	if clock == nil {
		if clock, err = a.cfg.DefaultClock(); err != nil {
			return nil, err
		}
	}
	if clock != nil {
		opts = append(opts, extract.WithDefaultTime(clock.Hour, clock.Minute))
	}
	return opts, nil
}

func printDateTime(w io.Writer, out dateTimeOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	if !out.Found {
		_, err := fmt.Fprintln(w, "no date or time found")
		return err
	}
	_, err := fmt.Fprintf(w, "time:     %s\nleftover: %q\n", out.Time.Format(time.RFC3339), out.Leftover)
	return err
}

func printDuration(w io.Writer, out durationOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	if !out.Found {
		_, err := fmt.Fprintln(w, "no duration found")
		return err
	}
	_, err := fmt.Fprintf(w, "duration: %s\nleftover: %q\n", out.Duration, out.Leftover)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

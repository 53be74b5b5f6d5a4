package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Dump the effective configuration",
		Long: `Dump the effective configuration in YAML format: defaults, then the config
file, then DATEPARSE_ environment variables.

  go_dateparse config dump > config.yaml

Environment variables use the DATEPARSE_ prefix and underscores for nesting.
Example: logging.level -> DATEPARSE_LOGGING_LEVEL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return configCmd
}

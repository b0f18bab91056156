package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize luxedir storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"when none exists, and attach the storage backend once. With seed_demo enabled\n" +
			"an empty directory is filled with the demo schema, listings and accounts.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, cfg, dataDir, err := resolveSettings(f)
			if err != nil {
				return sysError(err)
			}
			written, err := writeConfigIfMissing(configDir, cfg)
			if err != nil {
				return sysError(err)
			}

			s, err := attachSession(cfg, dataDir)
			if err != nil {
				return err
			}
			defer s.close()

			stats, err := s.backend.Stats()
			if err != nil {
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			if f.jsonMode {
				return printJSON(out, map[string]any{
					"configDir":     configDir,
					"dataDir":       dataDir,
					"configWritten": written,
					"stats":         stats,
				})
			}
			fmt.Fprintf(out, "Directory initialized at %s\n", dataDir)
			if written {
				fmt.Fprintf(out, "Wrote default configuration to %s\n", configDir)
			}
			fmt.Fprintf(out, "%d fields, %d records, %d users\n", stats.Fields, stats.Records, stats.Users)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// settingSetters assigns a system setting from its command-line form.
var settingSetters = map[string]func(c *types.SystemConfig, v string) error{
	"logo":          func(c *types.SystemConfig, v string) error { c.Logo = v; return nil },
	"heroImage":     func(c *types.SystemConfig, v string) error { c.HeroImage = v; return nil },
	"heroText":      func(c *types.SystemConfig, v string) error { c.HeroText = v; return nil },
	"primaryColor":  func(c *types.SystemConfig, v string) error { c.PrimaryColor = v; return nil },
	"accentColor":   func(c *types.SystemConfig, v string) error { c.AccentColor = v; return nil },
	"defaultLayout": func(c *types.SystemConfig, v string) error { c.DefaultLayout = types.Layout(v); return nil },
	"anonymousAccess": func(c *types.SystemConfig, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: anonymousAccess must be true or false", types.ErrValidation)
		}
		c.AnonymousAccess = b
		return nil
	},
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change the site settings",
	}
	cmd.AddCommand(newConfigShowCmd(f), newConfigSetCmd(f), newConfigResetCmd(f))
	return cmd
}

func newConfigShowCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the site settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				cfg := s.dir.Config()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), cfg)
				}
				rows := [][]string{
					{"logo", cfg.Logo},
					{"heroImage", cfg.HeroImage},
					{"heroText", cfg.HeroText},
					{"primaryColor", cfg.PrimaryColor},
					{"accentColor", cfg.AccentColor},
					{"defaultLayout", string(cfg.DefaultLayout)},
					{"anonymousAccess", strconv.FormatBool(cfg.AnonymousAccess)},
				}
				table(cmd.OutOrStdout(), []string{"KEY", "VALUE"}, rows)
				return nil
			})
		},
	}
}

func newConfigSetCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Change one or more site settings",
		Long:  "Keys: " + strings.Join(settingKeys(), ", "),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanEditSettings); err != nil {
					return err
				}
				cfg := s.dir.Config()
				for _, kv := range args {
					key, val, ok := strings.Cut(kv, "=")
					if !ok {
						return userError(fmt.Errorf("invalid setting %q (expected key=value)", kv))
					}
					set, known := settingSetters[key]
					if !known {
						return userError(fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeys(), ", ")))
					}
					if err := set(&cfg, val); err != nil {
						return classify(err)
					}
				}
				if err := s.dir.UpdateConfig(cfg); err != nil {
					return classify(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
				return nil
			})
		},
	}
}

func newConfigResetCmd(f *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default site settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanEditSettings); err != nil {
					return err
				}
				if err := confirm(cmd, s.dir.RequestResetConfig(), yes); err != nil {
					return err
				}
				s.dir.ResetConfig()
				fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newLoginCmd(f *rootFlags) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in; the session is kept in the data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				u, err := s.dir.Login(args[0], password)
				if err != nil {
					return classify(err)
				}
				return printUser(cmd, f, "Signed in as", u)
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				s.dir.Logout()
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				u := s.dir.CurrentUser()
				if u == nil {
					if f.jsonMode {
						return printJSON(cmd.OutOrStdout(), nil)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
					return nil
				}
				return printUser(cmd, f, "Signed in as", *u)
			})
		},
	}
}

func newSwitchRoleCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "switch-role <Admin|Owner|User>",
		Short:     "Sign in as the first active account with a role (demo shortcut)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(types.RoleAdmin), string(types.RoleOwner), string(types.RoleUser)},
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := types.ParseRole(args[0])
			if err != nil {
				return userError(err)
			}
			return withSession(f, func(s *session) error {
				u, err := s.dir.SwitchRole(role)
				if err != nil {
					return classify(err)
				}
				return printUser(cmd, f, "Switched to", u)
			})
		},
	}
}

func printUser(cmd *cobra.Command, f *rootFlags, prefix string, u types.User) error {
	if f.jsonMode {
		return printJSON(cmd.OutOrStdout(), u.Public())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> (%s)\n", prefix, u.Name, u.Email, u.Role)
	return nil
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newUserCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage accounts (admins only)",
	}
	cmd.AddCommand(
		newUserListCmd(f),
		newUserAddCmd(f),
		newUserUpdateCmd(f),
		newUserDeleteCmd(f),
	)
	return cmd
}

func newUserListCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageUsers); err != nil {
					return err
				}
				users := s.dir.Users()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), users)
				}
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role), strconv.FormatBool(u.IsActive)})
				}
				table(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"}, rows)
				return nil
			})
		},
	}
}

// userFlags collects an account profile from flags.
type userFlags struct {
	email    string
	name     string
	role     string
	avatar   string
	password string
	inactive bool
}

func (uf *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&uf.email, "email", "", "sign-in email")
	cmd.Flags().StringVar(&uf.name, "name", "", "display name")
	cmd.Flags().StringVar(&uf.role, "role", "", "Admin, Owner or User")
	cmd.Flags().StringVar(&uf.avatar, "avatar", "", "avatar image URL")
	cmd.Flags().StringVar(&uf.password, "password", "", "sign-in password")
	cmd.Flags().BoolVar(&uf.inactive, "inactive", false, "disable sign-in (--inactive=false enables it again)")
}

// apply overrides the fields of u named by changed flags.
func (uf *userFlags) apply(cmd *cobra.Command, u types.User) (types.User, error) {
	changed := cmd.Flags().Changed
	if changed("email") {
		u.Email = uf.email
	}
	if changed("name") {
		u.Name = uf.name
	}
	if changed("avatar") {
		u.Avatar = uf.avatar
	}
	if changed("inactive") {
		u.IsActive = !uf.inactive
	}
	if changed("role") {
		role, err := types.ParseRole(uf.role)
		if err != nil {
			return types.User{}, userError(err)
		}
		u.Role = role
	}
	return u, nil
}

func newUserAddCmd(f *rootFlags) *cobra.Command {
	uf := &userFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := uf.apply(cmd, types.User{Role: types.RoleUser, IsActive: true})
			if err != nil {
				return err
			}
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageUsers); err != nil {
					return err
				}
				created, err := s.dir.AddUser(u, uf.password)
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", created.Role, created.Email, created.ID)
				return nil
			})
		},
	}
	uf.register(cmd)
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserUpdateCmd(f *rootFlags) *cobra.Command {
	uf := &userFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an account; unspecified values are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageUsers); err != nil {
					return err
				}
				var current *types.User
				for _, u := range s.dir.Users() {
					if u.ID == args[0] {
						current = &u
						break
					}
				}
				if current == nil {
					return userError(fmt.Errorf("user %s: %w", args[0], types.ErrUserNotFound))
				}
				u, err := uf.apply(cmd, *current)
				if err != nil {
					return err
				}
				updated, err := s.dir.UpdateUser(u, uf.password)
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.ID)
				return nil
			})
		},
	}
	uf.register(cmd)
	return cmd
}

func newUserDeleteCmd(f *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an account; its listings are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageUsers); err != nil {
					return err
				}
				d, err := s.dir.RequestDeleteUser(args[0])
				if err != nil {
					return classify(err)
				}
				if err := confirm(cmd, d, yes); err != nil {
					return err
				}
				if err := s.dir.DeleteUser(args[0]); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the removal")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newSchemaCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and change the field schema",
	}
	cmd.AddCommand(
		newSchemaListCmd(f),
		newSchemaApplyCmd(f),
		newSchemaValidateCmd(f),
		newSchemaPagesCmd(f),
		newSchemaAddCmd(f),
		newSchemaRemoveCmd(f),
		newSchemaMoveCmd(f),
	)
	return cmd
}

func newSchemaListCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the schema fields in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireBrowse(); err != nil {
					return err
				}
				schema := s.dir.Schema()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), schema)
				}
				rows := make([][]string, 0, len(schema))
				for _, fd := range schema {
					rows = append(rows, []string{fd.ID, truncate(fd.Name, 30), string(fd.Type), fieldFlags(fd), fd.GroupName(), fd.PageName()})
				}
				table(cmd.OutOrStdout(), []string{"ID", "NAME", "TYPE", "FLAGS", "GROUP", "PAGE"}, rows)
				return nil
			})
		},
	}
}

// fieldFlags abbreviates the behavior flags of a field.
func fieldFlags(fd types.Field) string {
	var flags []string
	for _, fl := range []struct {
		on   bool
		name string
	}{
		{fd.Navigable, "nav"},
		{fd.Filterable, "filter"},
		{fd.Sortable, "sort"},
		{fd.DisplayInListing, "card"},
		{fd.Required, "req"},
	} {
		if fl.on {
			flags = append(flags, fl.name)
		}
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// readSchema decodes a JSON array of fields from path, or stdin for "-".
func readSchema(cmd *cobra.Command, path string) ([]types.Field, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, userError(fmt.Errorf("opening schema: %w", err))
		}
		defer file.Close()
		r = file
	}
	var fields []types.Field
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return nil, userError(fmt.Errorf("%w: schema must be a JSON array of fields: %v", types.ErrValidation, err))
	}
	return fields, nil
}

func newSchemaApplyCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <file|->",
		Short: "Replace the schema with the fields in a JSON file",
		Long: "Apply reads a JSON array of field definitions and replaces the whole schema.\n" +
			"Existing records keep their values; values of removed fields are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readSchema(cmd, args[0])
			if err != nil {
				return err
			}
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageSchema); err != nil {
					return err
				}
				if err := s.dir.UpdateSchema(fields); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema updated: %d fields\n", len(fields))
				return nil
			})
		},
	}
}

func newSchemaValidateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check a schema file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readSchema(cmd, args[0])
			if err != nil {
				return err
			}
			if err := types.ValidateSchema(fields); err != nil {
				return classify(err)
			}
			pages := listing.BuildPages(fields)
			if f.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"valid": true, "fields": len(fields), "pages": len(pages)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is valid: %d fields on %d pages\n", len(fields), len(pages))
			return nil
		},
	}
}

func newSchemaPagesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "Show how the entry form is split into pages and groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdminArea(); err != nil {
					return err
				}
				pages := s.dir.FormPages()
				out := cmd.OutOrStdout()
				if f.jsonMode {
					return printJSON(out, pages)
				}
				for i, p := range pages {
					fmt.Fprintf(out, "Step %d of %d: %s (%d fields)\n", i+1, len(pages), p.Name, p.FieldCount())
					for _, g := range p.Groups {
						fmt.Fprintf(out, "  %s\n", g.Name)
						for _, fd := range g.Fields {
							req := ""
							if fd.Required {
								req = " *"
							}
							fmt.Fprintf(out, "    %s%s (%s)\n", fd.Name, req, fd.Type.Label())
						}
					}
				}
				return nil
			})
		},
	}
}

func newSchemaAddCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Append a text field with default settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageSchema); err != nil {
					return err
				}
				fd, err := s.dir.AddField(args[0])
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), fd)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added field %s (%s)\n", fd.ID, fd.Name)
				return nil
			})
		},
	}
}

func newSchemaRemoveCmd(f *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <field-id>",
		Short: "Remove a field from the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageSchema); err != nil {
					return err
				}
				d, err := s.dir.RequestRemoveField(args[0])
				if err != nil {
					return classify(err)
				}
				if err := confirm(cmd, d, yes); err != nil {
					return err
				}
				if err := s.dir.RemoveField(args[0]); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed field %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the removal")
	return cmd
}

func newSchemaMoveCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "move <field-id> up|down",
		Short:     "Move a field one place up or down the schema",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int
			switch strings.ToLower(args[1]) {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return userError(fmt.Errorf("direction %q must be up or down", args[1]))
			}
			return withSession(f, func(s *session) error {
				if err := s.requireAdmin(auth.CanManageSchema); err != nil {
					return err
				}
				if err := s.dir.MoveField(args[0], delta); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved field %s %s\n", args[0], strings.ToLower(args[1]))
				return nil
			})
		},
	}
}

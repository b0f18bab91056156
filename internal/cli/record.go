package cli

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newRecordCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "Manage directory listings",
	}
	cmd.AddCommand(
		newRecordListCmd(f),
		newRecordGetCmd(f),
		newRecordAddCmd(f),
		newRecordUpdateCmd(f),
		newRecordDeleteCmd(f),
	)
	return cmd
}

func newRecordListCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the listings you manage",
		Long:  "Admins see every listing; owners see the listings they own.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdminArea(); err != nil {
					return err
				}
				records := s.dir.ManagedRecords()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), records)
				}
				printRecordTable(cmd, records)
				return nil
			})
		},
	}
}

func printRecordTable(cmd *cobra.Command, records []types.Record) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ID, truncate(r.Name, 40), string(r.Category), r.OwnerID, truncate(r.Address, 40)})
	}
	table(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY", "OWNER", "ADDRESS"}, rows)
}

func newRecordGetCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one listing with every field value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireBrowse(); err != nil {
					return err
				}
				r, err := s.dir.Record(args[0])
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), r)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", r.ID)
				fmt.Fprintf(out, "Name:      %s\n", r.Name)
				fmt.Fprintf(out, "Category:  %s\n", r.Category)
				fmt.Fprintf(out, "Owner:     %s\n", r.OwnerID)
				fmt.Fprintf(out, "Address:   %s\n", r.Address)
				fmt.Fprintf(out, "Image:     %s\n", r.Image)
				schema := s.dir.Schema()
				if len(schema) > 0 {
					fmt.Fprintln(out, "\nFields:")
				}
				for _, fd := range schema {
					v := r.Value(fd.ID)
					if v.IsZero() {
						continue
					}
					fmt.Fprintf(out, "  %s: %s\n", fd.Name, strings.Join(v.Strings(), ", "))
				}
				return nil
			})
		},
	}
}

// recordFlags collects the entry form of add and update from flags.
type recordFlags struct {
	name     string
	address  string
	category string
	image    string
	set      []string
	unset    []string
}

func (rf *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.name, "name", "", "listing name")
	cmd.Flags().StringVar(&rf.address, "address", "", "street address")
	cmd.Flags().StringVar(&rf.category, "category", "", "Premium, Executive or Boutique (default Boutique)")
	cmd.Flags().StringVar(&rf.image, "image", "", "image URL")
	cmd.Flags().StringArrayVar(&rf.set, "set", nil, "field value as field-id=value; repeat a field for several choices")
}

// form merges the flags into base, the way a submitted entry form
// overrides the values it was pre-filled with.
func (rf *recordFlags) form(cmd *cobra.Command, base url.Values) (url.Values, error) {
	form := url.Values{}
	for k, v := range base {
		form[k] = append([]string(nil), v...)
	}
	core := []struct {
		flag string
		key  string
		val  string
	}{
		{"name", listing.FormKeyName, rf.name},
		{"address", listing.FormKeyAddress, rf.address},
		{"category", listing.FormKeyCategory, rf.category},
		{"image", listing.FormKeyImage, rf.image},
	}
	for _, c := range core {
		if cmd.Flags().Changed(c.flag) {
			form.Set(c.key, c.val)
		}
	}
	for _, id := range rf.unset {
		form.Del(id)
	}

	replaced := map[string]bool{}
	for _, kv := range rf.set {
		id, val, ok := strings.Cut(kv, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, userError(fmt.Errorf("invalid --set %q (expected field-id=value)", kv))
		}
		if !replaced[id] {
			form.Del(id)
			replaced[id] = true
		}
		form.Add(id, val)
	}
	return form, nil
}

func newRecordAddCmd(f *rootFlags) *cobra.Command {
	rf := &recordFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a listing owned by the signed-in user",
		Example: `  luxedir record add --name "Villa Aurora" --category Premium \
    --set State_01=Gujarat --set Rating_01=4.8 --set Amenities_01=Pool --set Amenities_01=Gym`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := rf.form(cmd, nil)
			if err != nil {
				return err
			}
			return withSession(f, func(s *session) error {
				if err := s.requireAdminArea(); err != nil {
					return err
				}
				in := listing.DecodeForm(s.dir.Schema(), form, time.Now())
				r, err := s.dir.AddRecord(in)
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created listing %s\n", r.ID)
				return nil
			})
		},
	}
	rf.register(cmd)
	return cmd
}

func newRecordUpdateCmd(f *rootFlags) *cobra.Command {
	rf := &recordFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a listing; unspecified values are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				existing, err := s.requireRecord(args[0])
				if err != nil {
					return err
				}
				form, err := rf.form(cmd, listing.EncodeForm(s.dir.Schema(), existing))
				if err != nil {
					return err
				}
				in := listing.DecodeForm(s.dir.Schema(), form, time.Now())
				r, err := s.dir.UpdateRecord(args[0], in)
				if err != nil {
					return classify(err)
				}
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated listing %s\n", r.ID)
				return nil
			})
		},
	}
	rf.register(cmd)
	cmd.Flags().StringArrayVar(&rf.unset, "unset", nil, "clear the value of a field")
	return cmd
}

func newRecordDeleteCmd(f *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if _, err := s.requireRecord(args[0]); err != nil {
					return err
				}
				d, err := s.dir.RequestDeleteRecord(args[0])
				if err != nil {
					return classify(err)
				}
				if err := confirm(cmd, d, yes); err != nil {
					return err
				}
				if err := s.dir.DeleteRecord(args[0]); err != nil {
					return classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted listing %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

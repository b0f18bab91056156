package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newBrowseCmd(f *rootFlags) *cobra.Command {
	var (
		filters []string
		sortBy  string
		dir     string
		layout  string
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the public listing with filters and sorting",
		Long: "Browse shows the listing as a visitor sees it. Values chosen for the same\n" +
			"field widen the result (any of them); values of different fields narrow it.",
		Example: `  luxedir browse --filter State_01=Gujarat --filter State_01=Rajasthan --sort Rating_01
  luxedir browse --filter Amenities_01=Pool --layout list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := listing.Query{Selection: listing.Selection{}}
			for _, kv := range filters {
				id, val, ok := strings.Cut(kv, "=")
				if !ok || id == "" {
					return userError(fmt.Errorf("invalid --filter %q (expected field-id=value)", kv))
				}
				if !q.Selection.IsSelected(id, val) {
					q.Selection = q.Selection.Toggle(id, val)
				}
			}
			if sortBy != "" {
				q.Sort = listing.SortState{FieldID: sortBy, Direction: listing.ParseDirection(dir)}
			}

			return withSession(f, func(s *session) error {
				if err := s.requireBrowse(); err != nil {
					return err
				}
				if q.Sort.IsActive() && !isSortable(s.dir.Schema(), sortBy) {
					return userError(fmt.Errorf("%w: field %q is not sortable", types.ErrValidation, sortBy))
				}
				lay := s.dir.Config().DefaultLayout
				if layout != "" {
					lay = types.Layout(strings.ToUpper(layout[:1]) + strings.ToLower(layout[1:]))
					if !lay.Valid() {
						return userError(fmt.Errorf("%w %q", types.ErrLayoutUnknown, layout))
					}
				}

				res := s.dir.Browse(q)
				schema := s.dir.Schema()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), browseView(schema, res, lay))
				}
				printBrowse(cmd, schema, res, lay)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "narrow to field-id=value; repeatable")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sortable field id to order by")
	cmd.Flags().StringVar(&dir, "dir", string(listing.Descending), "sort direction: asc or desc")
	cmd.Flags().StringVar(&layout, "layout", "", "Grid or List (default from settings)")
	return cmd
}

func isSortable(schema []types.Field, id string) bool {
	for _, fd := range listing.SortableFields(schema) {
		if fd.ID == id {
			return true
		}
	}
	return false
}

type browseCard struct {
	types.Record
	Card []listing.CardField `json:"card"`
}

func browseView(schema []types.Field, res listing.Result, layout types.Layout) map[string]any {
	cards := make([]browseCard, 0, len(res.Records))
	for _, r := range res.Records {
		cards = append(cards, browseCard{Record: r, Card: listing.CardFields(schema, r, layout)})
	}
	return map[string]any{
		"layout":         layout,
		"records":        cards,
		"facets":         res.Facets,
		"sortableFields": res.SortableFields,
		"sort":           res.Sort,
		"total":          res.Total,
		"count":          res.Count,
	}
}

func printBrowse(cmd *cobra.Command, schema []types.Field, res listing.Result, layout types.Layout) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Showing %d of %d listings\n", res.Count, res.Total)
	if res.Sort.IsActive() {
		fmt.Fprintf(out, "Sorted by %s (%s)\n", res.Sort.FieldID, res.Sort.Direction)
	}
	for _, r := range res.Records {
		fmt.Fprintf(out, "\n%s [%s]  %s\n", r.Name, r.Category, r.ID)
		if r.Address != "" {
			fmt.Fprintf(out, "  %s\n", r.Address)
		}
		for _, cf := range listing.CardFields(schema, r, layout) {
			val := cf.Value
			if cf.Items != nil {
				val = strings.Join(cf.Items, ", ")
				if cf.Overflow > 0 {
					val += fmt.Sprintf(" +%d more", cf.Overflow)
				}
			}
			fmt.Fprintf(out, "  %s: %s\n", cf.Name, val)
		}
	}
}

func newFacetsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List the filter groups and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireBrowse(); err != nil {
					return err
				}
				facets := s.dir.Facets()
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), facets)
				}
				rows := make([][]string, 0, len(facets))
				for _, fc := range facets {
					rows = append(rows, []string{fc.Field.ID, fc.Field.Name, strings.Join(fc.AvailableValues, ", ")})
				}
				table(cmd.OutOrStdout(), []string{"FIELD", "NAME", "VALUES"}, rows)
				return nil
			})
		},
	}
}

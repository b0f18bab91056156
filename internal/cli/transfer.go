package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/internal/transfer"
)

func newImportCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Add the listings of a JSON export to the front of the directory",
		Long: "Import reads a JSON array of listings. The whole file is rejected when any\n" +
			"element is not an object. Imported listings are placed first and are not\n" +
			"deduplicated against existing ones.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return userError(fmt.Errorf("opening import file: %w", err))
				}
				defer file.Close()
				r = file
			}
			records, err := transfer.Decode(r)
			if err != nil {
				return classify(err)
			}
			return withSession(f, func(s *session) error {
				if err := s.requireAdminArea(); err != nil {
					return err
				}
				n := s.dir.ImportRecords(records)
				if f.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s listings\n", humanize.Comma(int64(n)))
				return nil
			})
		},
	}
}

func newExportCmd(f *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the listings you manage as a JSON file",
		Long: "Export writes the listings visible in the admin area: all of them for admins,\n" +
			"their own for owners. Without --output the file is named after today's date;\n" +
			"\"-\" writes to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(f, func(s *session) error {
				if err := s.requireAdminArea(); err != nil {
					return err
				}
				records := s.dir.ManagedRecords()

				var buf bytes.Buffer
				if err := transfer.Encode(&buf, records); err != nil {
					return sysError(err)
				}
				if output == "-" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				path := output
				if path == "" {
					path = transfer.ExportFileName(time.Now())
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return sysError(fmt.Errorf("writing export: %w", err))
				}
				s.log.Infow("records exported", "count", len(records), "path", path)
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s listings (%s) to %s\n",
					humanize.Comma(int64(len(records))), humanize.Bytes(uint64(buf.Len())), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, or - for stdout")
	return cmd
}

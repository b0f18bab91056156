package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/internal/httpapi"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the directory as a JSON API",
		Long: "Serve exposes the listing, facets, schema and settings over HTTP until\n" +
			"interrupted. Requests act as the account signed in from the command line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withSession(f, func(s *session) error {
				if addr == "" {
					addr = s.cfg.ListenAddr
				}
				if err := httpapi.NewServer(s.dir, s.log).Run(ctx, addr); err != nil {
					return sysError(err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default listen_addr from config.yaml)")
	return cmd
}

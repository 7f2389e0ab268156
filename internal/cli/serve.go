package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/designkit/internal/config"
	"github.com/jmylchreest/designkit/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Long: `Serve the design API used by web front ends:

  POST /api/generate-guide      draft a design system
  POST /api/recommend-colors    accessibility advice for a colour pair
  POST /api/contrast            contrast and deuteranopia report
  POST /api/export              export a colour system as code

The same endpoints are served under /.netlify/functions/ for older clients.
The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  designkit serve --listen :8080 --provider openai`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen, err := a.generator(ctx)
			if err != nil {
				return err
			}

			addr := config.DefaultListen
			if a.cfg != nil && a.cfg.Listen != "" {
				addr = a.cfg.Listen
			}

			srv := server.New(gen,
				server.WithLogger(a.logger),
				server.WithExporter(a.exporter()),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("listen", "", "listen address (default "+config.DefaultListen+")")
	cmd.Flags().String("template-dir", "", "directory of export template overrides")
	return cmd
}

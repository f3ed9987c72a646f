package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the delivery search API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.New(server.Config{
				Port:             port,
				DefaultTenantURL: config.GetTenantURL(),
				HTTPTimeout:      config.GetHTTPTimeout(),
				CacheTTL:         config.GetCacheTTL(),
				PruneSchedule:    config.GetCachePruneSchedule(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.GetServerPort(), "Port to listen on")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/tenant"
)

// NewTenantCommand creates the tenant command
func NewTenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Work with the tenant API",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [URL]",
		Short: "Check that a tenant API URL is reachable",
		Long: `Check that a tenant API URL is reachable by requesting its current tenant.
Without URL the configured tenant.url is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := config.GetTenantURL()
			if len(args) > 0 {
				url = args[0]
			}

			client, err := tenant.NewClient(url, tenant.WithTimeout(config.GetHTTPTimeout()))
			if err != nil {
				return err
			}

			info, err := client.CheckTenant(cmd.Context())
			if err != nil {
				return fmt.Errorf("tenant %s is not reachable: %w", client.BaseURL(), err)
			}

			fmt.Printf("Tenant %s is reachable\n", client.BaseURL())
			for _, key := range []string{"id", "name"} {
				if value, ok := info[key]; ok {
					fmt.Printf(" %-6s %v\n", key+":", value)
				}
			}
			return nil
		},
	})
	return cmd
}

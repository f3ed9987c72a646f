package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/examples"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/form"
)

// NewExamplesCommand creates the examples command
func NewExamplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Browse the predefined example queries",
	}

	cmd.AddCommand(newExamplesListCommand())
	cmd.AddCommand(newExamplesShowCommand())
	return cmd
}

func newExamplesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the example queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "NAME", "CLASSIFICATION"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			for i, ex := range examples.All() {
				table.Append([]string{strconv.Itoa(i + 1), ex.Name, ex.Query.Classification})
			}
			table.Render()
			return nil
		},
	}
}

func newExamplesShowCommand() *cobra.Command {
	var tenantURL string

	cmd := &cobra.Command{
		Use:               "show NAME",
		Short:             "Show the link and query data of an example",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeExampleNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			example, err := examples.Get(args[0])
			if err != nil {
				return err
			}

			if tenantURL == "" {
				tenantURL = config.GetTenantURL()
			}
			store := form.New()
			store.SetTenantURL(tenantURL)
			store.LoadExample(example)

			link, err := store.Link()
			if err != nil {
				return fmt.Errorf("failed to build link: %w", err)
			}
			data, err := yaml.Marshal(store.Snapshot())
			if err != nil {
				return fmt.Errorf("failed to format query data: %w", err)
			}

			fmt.Println(link)
			fmt.Println()
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantURL, "tenant-url", "", "Tenant API URL (defaults to the configured tenant.url)")
	return cmd
}

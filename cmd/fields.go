package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/tenant"
)

// NewFieldsCommand creates the fields command
func NewFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Inspect the searchable fields",
	}

	cmd.AddCommand(newFieldsListCommand())
	cmd.AddCommand(newFieldsValuesCommand())
	return cmd
}

func newFieldsListCommand() *cobra.Command {
	var classification string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the fields of a classification, or every field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := query.DefaultCatalog.Names()
			if classification != "" {
				if !query.IsClassification(classification) {
					return fmt.Errorf("unknown classification %q, expected one of %s",
						classification, strings.Join(query.Classifications, ", "))
				}
				names = query.DefaultCatalog.FieldsFor(classification)
			}
			sortable := query.Sortable(names)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"FIELD", "API NAME", "CONTROL", "SORTABLE", "OPTIONS"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			for _, name := range names {
				cfg := query.DefaultCatalog.Config(name)
				table.Append([]string{
					name,
					query.DefaultFieldNames.API(name),
					cfg.ControlType().String(),
					yesNo(slices.Contains(sortable, name)),
					describeOptions(cfg),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&classification, "classification", "c", "", "Only list the fields of this classification")
	cmd.RegisterFlagCompletionFunc("classification", completeClassifications)
	return cmd
}

func describeOptions(cfg query.FieldConfig) string {
	switch f := cfg.(type) {
	case query.TextField:
		return strings.Join(f.Operators, ", ")
	case query.DateField:
		return strings.Join(f.Ranges, ", ")
	case query.DropdownField:
		if !f.StaticOptions() {
			return "(from tenant)"
		}
		return strings.Join(f.Options, ", ")
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newFieldsValuesCommand() *cobra.Command {
	var tenantURL, outputFormat string

	cmd := &cobra.Command{
		Use:   "values FIELD",
		Short: "List the values a field can be filtered by",
		Long: `List the values a field can be filtered by. Dropdown fields list their
options, fetched from the tenant when they are not fixed. Other fields list
the distinct values found in the tenant's content.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFieldNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "json" && outputFormat != "text" {
				return fmt.Errorf("invalid output format %q, must be 'json' or 'text'", outputFormat)
			}
			if tenantURL == "" {
				tenantURL = config.GetTenantURL()
			}
			return runFieldValues(cmd.Context(), tenantURL, args[0], outputFormat)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&tenantURL, "tenant-url", "", "Tenant API URL (defaults to the configured tenant.url)")
	flags.StringVar(&outputFormat, "output", "text", "Output format (json or text)")
	return cmd
}

func runFieldValues(ctx context.Context, tenantURL, field, outputFormat string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := query.DefaultCatalog.Config(field)

	var options []query.Option
	if dd, ok := cfg.(query.DropdownField); ok && dd.StaticOptions() {
		options = tenant.StaticOptions(dd.Options)
	} else {
		client, err := tenant.NewClient(tenantURL, tenant.WithTimeout(config.GetHTTPTimeout()))
		if err != nil {
			return err
		}
		log.Debug("Fetching values of %s from %s", field, client.BaseURL())

		if ok {
			options, err = client.FieldOptions(ctx, field, cfg)
		} else {
			var values []string
			values, err = client.UniqueFieldValues(ctx, field)
			options = tenant.StaticOptions(values)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch values of %s: %w", field, err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(options, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format values as JSON: %v", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	if len(options) == 0 {
		fmt.Printf("No values found for %s\n", field)
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "NAME"})
	table.SetAutoFormatHeaders(false)
	for _, o := range options {
		table.Append([]string{o.ID, o.Name})
	}
	table.Render()
	return nil
}

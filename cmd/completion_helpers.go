package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/examples"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
)

// completeExampleNames provides completion for the predefined example names.
func completeExampleNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return withPrefix(examples.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeClassifications provides completion for the classification flag.
func completeClassifications(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return withPrefix(query.Classifications, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFieldNames completes field names, restricted to the classification
// flag of the command when it is set.
func completeFieldNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := query.DefaultCatalog.Names()
	if flag := cmd.Flags().Lookup("classification"); flag != nil && query.IsClassification(flag.Value.String()) {
		names = query.DefaultCatalog.FieldsFor(flag.Value.String())
	}
	return withPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func withPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}

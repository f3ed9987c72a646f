package cmd

import (
	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/logger"
)

var log = logger.New()

var rootCmd = &cobra.Command{
	Use:   "dsearch",
	Short: "Build delivery search links",
	Long: `dsearch builds search links for the content delivery API of a tenant.

Pick a classification, add filter fields, choose the fields to return and the
sort order, and dsearch prints the matching search URL.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevelName(config.GetLogLevel())
		if file := config.ConfigFileUsed(); file != "" {
			log.Debug("Using config file %s", file)
		}
	},
}

func init() {
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(NewLinkCommand())
	rootCmd.AddCommand(NewExamplesCommand())
	rootCmd.AddCommand(NewFieldsCommand())
	rootCmd.AddCommand(NewTenantCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

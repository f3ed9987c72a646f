package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/version"
)

const versionTemplate = `{{.Title}}:
 Version:           {{.Info.Version}}
 API version:       {{.Info.APIVersion}}
 Go version:        {{.Info.GoVersion}}
 Git commit:        {{.Info.GitCommit}}
 Built:             {{.Info.FormattedTime}}
 OS/Arch:           {{.Info.OS}}/{{.Info.Arch}}
`

// VersionOptions holds command options
type VersionOptions struct {
	OutputFormat string
	ShortFormat  bool
	ServerURL    string
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client and server version information",
		Long:  `Display detailed version information about the dsearch client and API server`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ServerURL == "" {
				opts.ServerURL = config.GetServerURL()
			}
			return runVersion(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")
	flags.BoolVarP(&opts.ShortFormat, "version", "v", false, "Print only the client version number")
	flags.StringVar(&opts.ServerURL, "server", "", "API server URL (defaults to the configured server.url)")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runVersion executes the version command logic
func runVersion(ctx context.Context, opts *VersionOptions) error {
	clientInfo := version.Current()

	// If short format requested, just print the version and exit
	if opts.ShortFormat {
		fmt.Printf("dsearch version %s, build %s\n", clientInfo.Version, clientInfo.GitCommit)
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Try to get server info but don't fail if server is not available
	serverInfo, serverErr := version.GetServerInfo(ctx, opts.ServerURL)

	if opts.OutputFormat == "json" {
		result := map[string]interface{}{
			"Client": clientInfo,
		}

		if serverErr == nil {
			result["Server"] = serverInfo
		} else {
			result["Server"] = map[string]string{
				"Error": serverErr.Error(),
			}
		}

		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format version as JSON: %v", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	tmpl, err := template.New("version").Parse(versionTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse version template: %v", err)
	}

	err = tmpl.Execute(os.Stdout, struct {
		Title string
		Info  version.Info
	}{"Client", clientInfo})
	if err != nil {
		return err
	}

	if serverErr != nil {
		fmt.Printf("\n%s\n", serverErr)
		return nil
	}

	fmt.Println()
	return tmpl.Execute(os.Stdout, struct {
		Title string
		Info  version.Info
	}{"Server", *serverInfo})
}

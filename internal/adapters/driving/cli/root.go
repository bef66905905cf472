package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// cfgFile overrides the default config file lookup.
	cfgFile string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "hublink",
	Short: "HubSpot CRM integration service",
	Long: `Hublink connects workspaces to HubSpot CRM over OAuth2 and exposes
the connected portal's contacts, companies and deals as normalised
integration items over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default hublink.yaml)")
}

// =============================================================================
// Back Order Report Generator - Version Command
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/ginjaninja78/backorder-report-generator/cmd.Version=...".
var Version = "1.0.0"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backorder-report version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"storage-valuation/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\n", version.Version, version.Commit)
	},
}

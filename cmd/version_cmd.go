package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaspa-auth/siwk/internal/utilities"
)

var versionCmd = cobra.Command{
	Run: showVersion,
	Use: "version",
}

func showVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, utilities.Version)

	if vi, err := utilities.ParseVersion(utilities.Version); err == nil {
		fmt.Fprintf(out, "major=%d minor=%d patch=%d rc=%d\n", vi.Major, vi.Minor, vi.Patch, vi.RC)
	}
}

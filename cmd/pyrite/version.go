package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyrite/internal/version"
)

var versionShowFull bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pyrite build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "pyrite %s\n", version.Version)
		if versionShowFull {
			if version.GitCommit != "" {
				fmt.Fprintf(w, "commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(w, "built:  %s\n", version.BuildDate)
			}
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
}

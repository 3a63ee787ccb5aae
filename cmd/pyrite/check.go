package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.pyr...",
	Short: "Type-check and lower source files without writing output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("builtins", "", "builtins artifact to load before lowering")
	checkCmd.Flags().Int("max-instantiation-depth", 0, "instantiation depth ceiling (0 = project default)")
	checkCmd.Flags().Int("max-instantiations", 0, "total instantiation ceiling (0 = project default)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.CheckOnly = true
	if err := runPipeline(cmd, args, opts); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

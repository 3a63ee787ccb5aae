package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyrite/internal/builtins"
	"pyrite/internal/obj"
)

var genBuiltinsCmd = &cobra.Command{
	Use:   "gen-builtins out.pyro",
	Short: "Write the runtime contract as a builtins artifact",
	Long: `Gen-builtins serializes the runtime-contract declarations into a reusable
artifact. Compilations load it with --builtins; the result is identical to
the baked-in contract, so the artifact mostly serves as a merge base for
object files produced with --emit-object.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenBuiltins,
}

func runGenBuiltins(cmd *cobra.Command, args []string) error {
	m := builtins.NewModule()
	if err := obj.Write(args[0], m); err != nil {
		return err
	}
	digest, err := obj.Digest(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s sha256:%s\n", args[0], digest)
	return nil
}

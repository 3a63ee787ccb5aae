package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyrite/internal/diagfmt"
	"pyrite/internal/driver"
	"pyrite/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file.pyr...",
	Short: "Compile pyrite source files to C++ headers",
	Long: `Build compiles each source file through the full pipeline and writes one
generated C++ header per input. Independent files compile concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output path (single input only)")
	buildCmd.Flags().String("builtins", "", "builtins artifact to load before lowering")
	buildCmd.Flags().String("emit-object", "", "also write the post-optimization graph as an artifact")
	buildCmd.Flags().Int("max-instantiation-depth", 0, "instantiation depth ceiling (0 = project default)")
	buildCmd.Flags().Int("max-instantiations", 0, "total instantiation ceiling (0 = project default)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Out != "" && len(args) > 1 {
		return errors.New("-o is only valid with a single input file")
	}
	if opts.EmitObject != "" && len(args) > 1 {
		return errors.New("--emit-object is only valid with a single input file")
	}
	return runPipeline(cmd, args, opts)
}

// buildOptions merges command-line flags over the project manifest; an
// explicit flag always wins.
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg, manifest, err := project.Find(".")
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{
		MaxInstantiationDepth: cfg.Limits.MaxInstantiationDepth,
		MaxInstantiations:     cfg.Limits.MaxInstantiations,
		MaxDiagnostics:        maxDiagnostics(cmd),
	}
	if cfg.Output.Dir != "" {
		// a relative manifest dir resolves against the manifest's location
		opts.OutDir = cfg.Output.Dir
		if manifest != "" && !filepath.IsAbs(opts.OutDir) {
			opts.OutDir = filepath.Join(filepath.Dir(manifest), opts.OutDir)
		}
	}
	if cfg.Limits.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = cfg.Limits.MaxDiagnostics
	}
	if f := cmd.Flags(); f != nil {
		opts.Out, _ = f.GetString("output")
		opts.Builtins, _ = f.GetString("builtins")
		if f.Lookup("emit-object") != nil {
			opts.EmitObject, _ = f.GetString("emit-object")
		}
		if n, _ := f.GetInt("max-instantiation-depth"); n > 0 {
			opts.MaxInstantiationDepth = n
		}
		if n, _ := f.GetInt("max-instantiations"); n > 0 {
			opts.MaxInstantiations = n
		}
	}
	return opts, nil
}

func runPipeline(cmd *cobra.Command, args []string, opts driver.Options) error {
	outs, err := driver.CompileAll(args, opts)
	if err != nil {
		return err
	}
	failed := false
	popts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), ShowNotes: true}
	for i, out := range outs {
		if out.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, out.Bag, out.FileSet, popts)
		}
		if out.Failed() {
			failed = true
			continue
		}
		if !opts.CheckOnly {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[i], out.OutPath)
		}
	}
	if failed {
		return errors.New("compilation failed")
	}
	return nil
}

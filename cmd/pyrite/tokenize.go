package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrite/internal/diagfmt"
	"pyrite/internal/driver"
	"pyrite/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pyr",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.Tokenize(args[0], maxDiagnostics(cmd))
	if err != nil {
		return err
	}

	if result.Bag.Len() > 0 {
		popts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), ShowNotes: true}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, popts)
	}

	w := cmd.OutOrStdout()
	for _, t := range result.Tokens {
		_, lc := result.FileSet.Position(t.Span)
		switch t.Kind {
		case token.Ident, token.Int, token.String:
			fmt.Fprintf(w, "%4d:%-3d %-8s %q\n", lc.Line, lc.Col, t.Kind, t.Text)
		default:
			fmt.Fprintf(w, "%4d:%-3d %s\n", lc.Line, lc.Col, t.Kind)
		}
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("tokenization failed")
	}
	return nil
}

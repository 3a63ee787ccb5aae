package driver

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// TokenizeResult is the outcome of lexing one file for inspection.
type TokenizeResult struct {
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file to completion, collecting diagnostics alongside
// the token stream.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	bag.Sort()
	bag.Dedup()
	return &TokenizeResult{FileSet: fs, Tokens: toks, Bag: bag}, nil
}

package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pyrite/internal/builtins"
	"pyrite/internal/cppgen"
	"pyrite/internal/diag"
	"pyrite/internal/ir1"
	"pyrite/internal/lexer"
	"pyrite/internal/lower"
	"pyrite/internal/obj"
	"pyrite/internal/opt"
	"pyrite/internal/parser"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Options configures one compilation.
type Options struct {
	// Builtins is an optional artifact path loaded before lowering. The
	// baked-in contract is always present; artifact declarations join it.
	Builtins string

	// Out is the generated header path. Empty derives it from the input
	// name, placed under OutDir when that is set. CheckOnly skips all
	// output.
	Out       string
	OutDir    string
	CheckOnly bool

	// EmitObject, when non-empty, also writes the post-optimization
	// declaration graph as a reusable artifact.
	EmitObject string

	MaxInstantiationDepth int
	MaxInstantiations     int
	MaxDiagnostics        int
}

// Outcome is the result of one compilation. Bag always holds whatever
// diagnostics were produced; Header is empty unless the pipeline ran to
// completion.
type Outcome struct {
	Bag            *diag.Bag
	FileSet        *source.FileSet
	Header         string
	OutPath        string
	BuiltinsDigest string
}

// Failed reports whether the compilation produced any error.
func (o *Outcome) Failed() bool { return o.Bag.HasErrors() }

// Compile runs the whole pipeline over one source file: frontend, IR1,
// lowering, optimization and code generation. The frontend collects as many
// diagnostics as it can; later stages stop at the first failure.
func Compile(fs *source.FileSet, path string, opts Options) (*Outcome, error) {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}
	bag := diag.NewBag(maxDiag)
	rep := diag.BagReporter{Bag: bag}
	out := &Outcome{Bag: bag, FileSet: fs}

	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep})
	pres := parser.ParseFile(fileID, lx, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		finish(bag)
		return out, nil
	}

	in := types.NewInterner()
	info, nerr := sema.Check(pres.Builder, in, rep)
	if nerr > 0 || bag.HasErrors() {
		finish(bag)
		return out, nil
	}

	modName := moduleName(path)
	m1, err := ir1.Build(modName, pres.Builder, info, in)
	if err != nil {
		return nil, fmt.Errorf("driver: %s: %w", path, err)
	}

	m0 := builtins.NewModule()
	if opts.Builtins != "" {
		digest, err := obj.Load(opts.Builtins, m0)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
		out.BuiltinsDigest = digest
	}

	if res := lower.Lower(m1, m0, lower.Options{Reporter: rep}); res.Errors > 0 {
		finish(bag)
		return out, nil
	}
	ores := opt.Optimize(m0, opt.Options{
		Reporter:          rep,
		MaxDepth:          opts.MaxInstantiationDepth,
		MaxInstantiations: opts.MaxInstantiations,
	})
	if ores.Errors > 0 {
		finish(bag)
		return out, nil
	}

	out.Header = cppgen.Generate(m0, cppgen.Options{
		HeaderLines: []string{
			fmt.Sprintf("Generated from %s. Do not edit.", modName+".pyr"),
		},
	})
	out.OutPath = opts.Out
	if out.OutPath == "" {
		if opts.OutDir != "" {
			out.OutPath = filepath.Join(opts.OutDir, modName+".h")
		} else {
			out.OutPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".h"
		}
	}
	finish(bag)

	if opts.CheckOnly {
		return out, nil
	}
	if opts.Out == "" && opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
	}
	if err := os.WriteFile(out.OutPath, []byte(out.Header), 0o644); err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	if opts.EmitObject != "" {
		if err := obj.Write(opts.EmitObject, m0); err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
	}
	return out, nil
}

func finish(bag *diag.Bag) {
	bag.Sort()
	bag.Dedup()
}

// moduleName is the source file's base name without extension; it seeds
// generated-name mangling, so renaming the file changes nothing inside.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

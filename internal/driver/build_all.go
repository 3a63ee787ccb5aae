package driver

import (
	"golang.org/x/sync/errgroup"

	"pyrite/internal/source"
)

// CompileAll compiles several independent source files concurrently, one
// pipeline per file. Each compilation owns its file set and elaboration
// cache: nothing is shared across files except read-only options, so
// results are identical to compiling sequentially. Outcomes align with
// paths.
func CompileAll(paths []string, opts Options) ([]*Outcome, error) {
	outs := make([]*Outcome, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			fs := source.NewFileSet()
			o, err := Compile(fs, path, opts)
			if err != nil {
				return err
			}
			outs[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

package diagfmt

import (
	"encoding/json"
	"io"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

type jsonNote struct {
	Path    string `json:"path,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Category string     `json:"category"`
	Message  string     `json:"message"`
	Path     string     `json:"path"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes diagnostics as one JSON array, for editor and CI consumption.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]jsonDiagnostic, 0, len(items))
	for _, d := range items {
		path, lc := fs.Position(d.Primary)
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Category: d.Code.Category().String(),
			Message:  d.Message,
			Path:     path,
		}
		if opts.IncludePositions {
			jd.Line = lc.Line
			jd.Col = lc.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				npath, nlc := fs.Position(n.Span)
				jn := jsonNote{Path: npath, Message: n.Msg}
				if opts.IncludePositions {
					jn.Line = nlc.Line
					jn.Col = nlc.Col
				}
				jd.Notes = append(jd.Notes, jn)
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

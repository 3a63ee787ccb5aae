package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.pyr", []byte("x = missing\n"))
	sp := source.Span{File: id, Start: 4, End: 11}
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.TypeUndefinedName, sp, `undefined name "missing"`).
		WithNote(source.Span{File: id, Start: 0, End: 1}, "binding starts here"))
	return bag, fs, sp
}

func TestPrettyLayout(t *testing.T) {
	bag, fs, _ := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()

	if !strings.Contains(out, `bad.pyr:1:5: ERROR PYR3001: undefined name "missing"`) {
		t.Fatalf("header line wrong:\n%s", out)
	}
	if !strings.Contains(out, "    x = missing\n") {
		t.Fatalf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "    "+strings.Repeat(" ", 4)+"^~~~~~~\n") {
		t.Fatalf("underline wrong:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Fatalf("notes shown without ShowNotes:\n%s", out)
	}
}

func TestPrettyShowsNotesOnRequest(t *testing.T) {
	bag, fs, _ := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: binding starts here") {
		t.Fatalf("note missing:\n%s", buf.String())
	}
}

func TestPrettyWithoutColorEmitsNoEscapes(t *testing.T) {
	bag, fs, _ := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape codes without Color:\n%q", buf.String())
	}
}

func TestJSONRecords(t *testing.T) {
	bag, fs, _ := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []struct {
		Severity string `json:"severity"`
		Code     string `json:"code"`
		Category string `json:"category"`
		Message  string `json:"message"`
		Path     string `json:"path"`
		Line     uint32 `json:"line"`
		Col      uint32 `json:"col"`
		Notes    []struct {
			Message string `json:"message"`
		} `json:"notes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(out) != 1 {
		t.Fatalf("records = %d", len(out))
	}
	r := out[0]
	if r.Severity != "ERROR" || r.Code != "PYR3001" || r.Category != "type" {
		t.Fatalf("record wrong: %+v", r)
	}
	if r.Path != "bad.pyr" || r.Line != 1 || r.Col != 5 {
		t.Fatalf("position wrong: %+v", r)
	}
	if len(r.Notes) != 1 || r.Notes[0].Message != "binding starts here" {
		t.Fatalf("notes wrong: %+v", r.Notes)
	}
}

func TestJSONTruncatesAtMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.pyr", []byte("a b c\n"))
	bag := diag.NewBag(8)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: i, End: i + 1}, "bad"))
	}
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("records = %d, want 2", len(out))
	}
	if bag.Len() != 3 {
		t.Fatalf("truncation touched the bag")
	}
}

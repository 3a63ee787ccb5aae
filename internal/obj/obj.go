package obj

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"pyrite/internal/ir0"
)

// Artifact framing. SchemaVersion bumps on any record change; readers reject
// unknown versions instead of guessing.
const (
	Magic         = "PYRO"
	SchemaVersion = 1
)

type fileRec struct {
	Magic   string `msgpack:"magic"`
	Version uint32 `msgpack:"version"`
	Digest  string `msgpack:"digest"`
	Payload []byte `msgpack:"payload"`
}

type payloadRec struct {
	Decls []declRec `msgpack:"decls"`
}

type declRec struct {
	Name         string    `msgpack:"name"`
	Origin       string    `msgpack:"origin,omitempty"`
	Params       []paramRec `msgpack:"params"`
	ResultIsType bool      `msgpack:"result_is_type"`
	HasError     bool      `msgpack:"has_error"`
	Public       bool      `msgpack:"public"`
	Builtin      bool      `msgpack:"builtin"`
	IsError      bool      `msgpack:"is_error"`
	ErrorMessage string    `msgpack:"error_message,omitempty"`
	Main         *specRec  `msgpack:"main,omitempty"`
	Specs        []specRec `msgpack:"specs,omitempty"`
}

type paramRec struct {
	Name         string  `msgpack:"name"`
	Kind         uint8   `msgpack:"kind"`
	TemplateArgs []uint8 `msgpack:"template_args,omitempty"`
	Pack         bool    `msgpack:"pack,omitempty"`
}

type specRec struct {
	Params   []paramRec `msgpack:"params"`
	Patterns []*exprRec `msgpack:"patterns,omitempty"`
	Body     []bindRec  `msgpack:"body"`
}

type bindRec struct {
	Name   string   `msgpack:"name"`
	IsType bool     `msgpack:"is_type"`
	Expr   *exprRec `msgpack:"expr"`
}

// exprRec flattens ir0.Expr. Declaration references travel by name so an
// artifact can be loaded into any arena.
type exprRec struct {
	Kind uint8      `msgpack:"kind"`
	Bool bool       `msgpack:"bool,omitempty"`
	Int  int64      `msgpack:"int,omitempty"`
	Name string     `msgpack:"name,omitempty"`
	Pack bool       `msgpack:"pack,omitempty"`
	Decl string     `msgpack:"decl,omitempty"`
	X    *exprRec   `msgpack:"x,omitempty"`
	Y    *exprRec   `msgpack:"y,omitempty"`
	Args []*exprRec `msgpack:"args,omitempty"`
	Op   uint8      `msgpack:"op,omitempty"`
}

// Write serializes every live declaration of m atomically: the artifact is
// written to a temp file in the target directory and renamed into place, so
// readers never observe a half-written file.
func Write(path string, m *ir0.Module) error {
	payload, digest, err := encode(m)
	if err != nil {
		return err
	}
	blob, err := msgpack.Marshal(fileRec{
		Magic:   Magic,
		Version: SchemaVersion,
		Digest:  digest,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("obj: encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("obj: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".pyro-*")
	if err != nil {
		return fmt.Errorf("obj: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("obj: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("obj: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("obj: rename %s: %w", path, err)
	}
	return nil
}

// Digest computes the content identity Write would store, without writing.
func Digest(m *ir0.Module) (string, error) {
	_, digest, err := encode(m)
	return digest, err
}

func encode(m *ir0.Module) ([]byte, string, error) {
	var p payloadRec
	for _, d := range m.Decls() {
		if d.Dead {
			continue
		}
		p.Decls = append(p.Decls, encodeDecl(m, d))
	}
	payload, err := msgpack.Marshal(p)
	if err != nil {
		return nil, "", fmt.Errorf("obj: encode payload: %w", err)
	}
	sum := sha256.Sum256(payload)
	return payload, hex.EncodeToString(sum[:]), nil
}

// Load reads an artifact and installs its declarations into m, skipping
// names the arena already holds (reloading the contract over a pre-seeded
// arena is a no-op). Returns the artifact's content digest.
func Load(path string, m *ir0.Module) (string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("obj: %w", err)
	}
	var f fileRec
	if err := msgpack.Unmarshal(blob, &f); err != nil {
		return "", fmt.Errorf("obj: decode %s: %w", path, err)
	}
	if f.Magic != Magic {
		return "", fmt.Errorf("obj: %s is not a builtins artifact", path)
	}
	if f.Version != SchemaVersion {
		return "", fmt.Errorf("obj: %s has schema version %d, want %d", path, f.Version, SchemaVersion)
	}
	sum := sha256.Sum256(f.Payload)
	if got := hex.EncodeToString(sum[:]); got != f.Digest {
		return "", fmt.Errorf("obj: %s is corrupt: digest mismatch", path)
	}
	var p payloadRec
	if err := msgpack.Unmarshal(f.Payload, &p); err != nil {
		return "", fmt.Errorf("obj: decode %s payload: %w", path, err)
	}

	// Shells first so that bodies can reference any declaration in the
	// artifact regardless of order, then bodies.
	type pending struct {
		d  *ir0.Decl
		dr declRec
	}
	var todo []pending
	for _, dr := range p.Decls {
		if m.ByName(dr.Name) != nil {
			continue
		}
		d := decodeShell(dr)
		m.Add(d)
		todo = append(todo, pending{d, dr})
	}
	for _, pd := range todo {
		if err := decodeBodies(m, pd.d, pd.dr); err != nil {
			return "", fmt.Errorf("obj: %s: %w", path, err)
		}
	}
	return f.Digest, nil
}

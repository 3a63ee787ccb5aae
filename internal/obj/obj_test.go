package obj

import (
	"os"
	"path/filepath"
	"testing"

	"pyrite/internal/builtins"
	"pyrite/internal/ir0"
)

func artifactPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "builtins.pyro")
}

func TestRoundTripPreservesEveryDeclaration(t *testing.T) {
	src := builtins.NewModule()
	path := artifactPath(t)
	if err := Write(path, src); err != nil {
		t.Fatalf("write: %v", err)
	}

	dst := ir0.NewModule()
	digest, err := Load(path, dst)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if digest == "" {
		t.Fatalf("load returned no digest")
	}
	if dst.Len() != src.Len() {
		t.Fatalf("got %d declarations, want %d", dst.Len(), src.Len())
	}
	for _, d := range src.Decls() {
		got := dst.ByName(d.Name)
		if got == nil {
			t.Fatalf("%s missing after reload", d.Name)
		}
		if dst.Fingerprint(got) != src.Fingerprint(d) {
			t.Fatalf("%s changed across the round trip", d.Name)
		}
		if got.Builtin != d.Builtin || got.ResultIsType != d.ResultIsType {
			t.Fatalf("%s flags changed across the round trip", d.Name)
		}
	}
}

func TestDigestMatchesWrittenArtifact(t *testing.T) {
	src := builtins.NewModule()
	want, err := Digest(src)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	path := artifactPath(t)
	if err := Write(path, src); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path, ir0.NewModule())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("digest %s, want %s", got, want)
	}
}

func TestLoadSkipsNamesAlreadyInArena(t *testing.T) {
	path := artifactPath(t)
	if err := Write(path, builtins.NewModule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := builtins.NewModule()
	n := m.Len()
	if _, err := Load(path, m); err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Len() != n {
		t.Fatalf("reloading over a seeded arena grew it from %d to %d", n, m.Len())
	}
}

func TestDeadDeclarationsAreNotWritten(t *testing.T) {
	src := ir0.NewModule()
	keep := src.New("keep")
	keep.Params = []ir0.Param{{Name: "n", Kind: ir0.PKInt64}}
	keep.Main = &ir0.Spec{
		Params: keep.Params,
		Body:   []ir0.Binding{{Name: ir0.MemberValue, Expr: ir0.ParamRef("n")}},
	}
	gone := src.New("gone")
	gone.Dead = true

	path := artifactPath(t)
	if err := Write(path, src); err != nil {
		t.Fatalf("write: %v", err)
	}
	dst := ir0.NewModule()
	if _, err := Load(path, dst); err != nil {
		t.Fatalf("load: %v", err)
	}
	if dst.ByName("keep") == nil {
		t.Fatalf("live declaration dropped")
	}
	if dst.ByName("gone") != nil {
		t.Fatalf("dead declaration serialized")
	}
}

func TestTamperedPayloadRejected(t *testing.T) {
	path := artifactPath(t)
	if err := Write(path, builtins.NewModule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	blob[len(blob)-1] ^= 0xff
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if _, err := Load(path, ir0.NewModule()); err == nil {
		t.Fatalf("corrupt artifact loaded without error")
	}
}

func TestForeignFileRejected(t *testing.T) {
	path := artifactPath(t)
	if err := os.WriteFile(path, []byte("#include <pyrite/pyrite.h>\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path, ir0.NewModule()); err == nil {
		t.Fatalf("non-artifact file loaded without error")
	}
}

func TestMissingFileReported(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.pyro"), ir0.NewModule()); err == nil {
		t.Fatalf("expected an error for a missing artifact")
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadReadsLimitsAndOutput(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[limits]
max_instantiation_depth = 250
max_instantiations = 1000
max_diagnostics = 5

[output]
dir = "gen"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.MaxInstantiationDepth != 250 {
		t.Fatalf("depth = %d", cfg.Limits.MaxInstantiationDepth)
	}
	if cfg.Limits.MaxInstantiations != 1000 {
		t.Fatalf("instantiations = %d", cfg.Limits.MaxInstantiations)
	}
	if cfg.Limits.MaxDiagnostics != 5 {
		t.Fatalf("diagnostics = %d", cfg.Limits.MaxDiagnostics)
	}
	if cfg.Output.Dir != "gen" {
		t.Fatalf("output dir = %q", cfg.Output.Dir)
	}
}

func TestOmittedKeysKeepDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[output]\ndir = \"out\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.MaxDiagnostics != Default().Limits.MaxDiagnostics {
		t.Fatalf("default diagnostics lost: %d", cfg.Limits.MaxDiagnostics)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[limits]\nmax_instantiation_dept = 10\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("typoed key accepted")
	}
}

func TestMalformedManifestRejected(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[limits\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed manifest accepted")
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[limits]\nmax_diagnostics = 7\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, path, err := Find(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("found %q", path)
	}
	if cfg.Limits.MaxDiagnostics != 7 {
		t.Fatalf("diagnostics = %d", cfg.Limits.MaxDiagnostics)
	}
}

func TestFindPrefersNearestManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[limits]\nmax_diagnostics = 1\n")
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeManifest(t, nested, "[limits]\nmax_diagnostics = 2\n")
	cfg, path, err := Find(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if path != filepath.Join(nested, ManifestName) {
		t.Fatalf("found %q", path)
	}
	if cfg.Limits.MaxDiagnostics != 2 {
		t.Fatalf("diagnostics = %d", cfg.Limits.MaxDiagnostics)
	}
}

func TestFindWithoutManifestUsesDefaults(t *testing.T) {
	cfg, path, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if path != "" {
		t.Fatalf("unexpected manifest %q", path)
	}
	if cfg.Limits.MaxDiagnostics != 100 {
		t.Fatalf("diagnostics = %d", cfg.Limits.MaxDiagnostics)
	}
}

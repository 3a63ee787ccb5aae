package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the per-project configuration file.
const ManifestName = "pyrite.toml"

// Limits bounds the optimizer's elaboration and diagnostic output.
type Limits struct {
	MaxInstantiationDepth int `toml:"max_instantiation_depth"`
	MaxInstantiations     int `toml:"max_instantiations"`
	MaxDiagnostics        int `toml:"max_diagnostics"`
}

// Output controls where generated files land.
type Output struct {
	Dir string `toml:"dir"`
}

// Config is the parsed manifest. Zero values mean "use the default".
type Config struct {
	Limits Limits `toml:"limits"`
	Output Output `toml:"output"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Limits: Limits{MaxDiagnostics: 100},
	}
}

// Load reads path as a manifest. Unknown keys are rejected so typos fail
// loudly instead of silently falling back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("project: %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("project: %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

// Find walks from dir toward the filesystem root looking for a manifest and
// loads the first one found. Returns the default configuration when none
// exists.
func Find(dir string) (Config, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, "", fmt.Errorf("project: %w", err)
	}
	for {
		path := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), "", nil
		}
		dir = parent
	}
}

package qit

import (
	"os"

	"github.com/goccy/go-yaml"
)

// FileConfig is the shape of an optional qit.yaml host-configuration
// file (SPEC_FULL §3 "Configuration", §12 "qit.yaml host configuration
// file"): a YAML-expressible mirror of Runner's fields, read by cmd/qit
// before flag overrides are applied. This has no equivalent in the
// Python original, which only exposed Qit(__init__) kwargs.
type FileConfig struct {
	SourceDir   string `yaml:"source_dir"`
	BuildDir    string `yaml:"build_dir"`
	Verbose     int    `yaml:"verbose"`
	CreateFiles bool   `yaml:"create_files"`
	Debug       bool   `yaml:"debug"`
	Compiler    string `yaml:"compiler"` // "g++" or "clang++"
}

// LoadConfigFile reads and parses a qit.yaml file at path. A missing
// file is not an error: the caller gets a zero-value FileConfig and
// falls back to Runner's own defaults.
func LoadConfigFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Apply overlays non-zero fields of cfg onto r, returning r for
// chaining. Flags parsed on top of a loaded config should call this
// before applying their own overrides.
func (cfg FileConfig) Apply(r *Runner) *Runner {
	if cfg.SourceDir != "" {
		r.SourceDir = cfg.SourceDir
	}
	if cfg.BuildDir != "" {
		r.BuildDir = cfg.BuildDir
	}
	if cfg.Verbose != 0 {
		r.Verbose = cfg.Verbose
	}
	if cfg.CreateFiles {
		r.CreateFiles = cfg.CreateFiles
	}
	if cfg.Debug {
		r.Debug = cfg.Debug
	}
	switch cfg.Compiler {
	case "clang++":
		r.Compiler = Clang
	case "g++":
		r.Compiler = GCC
	}
	return r
}

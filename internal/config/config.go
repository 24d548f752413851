// Package config loads the optional zinc.yaml that overrides where the
// assembler and linker live and what happens to intermediate build
// artifacts.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the toolchain and output settings for one compilation.
type Config struct {
	Assembler     string `yaml:"assembler"`
	Linker        string `yaml:"linker"`
	OutputDir     string `yaml:"output_dir"`
	KeepArtifacts bool   `yaml:"keep_artifacts"`
}

// Default returns the configuration the compiler uses absent a
// zinc.yaml: nasm and ld from PATH, the current working directory, and
// discarding the intermediate .asm and .o after linking.
func Default() *Config {
	return &Config{
		Assembler:     "nasm",
		Linker:        "ld",
		OutputDir:     ".",
		KeepArtifacts: false,
	}
}

// Load reads path and overlays it onto Default(). A missing file at
// path is an error; LoadOptional is the variant that treats a missing
// file as "no config" and returns Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns Default() unchanged when
// path does not exist, which is the normal case: most Zinc programs
// are compiled without a zinc.yaml at all.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

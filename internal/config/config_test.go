package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "nasm", cfg.Assembler)
	assert.Equal(t, "ld", cfg.Linker)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.False(t, cfg.KeepArtifacts)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zinc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assembler: /usr/bin/nasm\nkeep_artifacts: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/nasm", cfg.Assembler)
	assert.Equal(t, "ld", cfg.Linker) // unset fields keep the default
	assert.True(t, cfg.KeepArtifacts)
}

func TestLoadOptionalFallsBackToDefault(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

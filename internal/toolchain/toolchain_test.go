package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("toolchain tests assume a POSIX shell")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunReportsExitCode(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "exit3.sh", "exit 3\n")

	code, err := Run(bin)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRunReportsSuccess(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "ok.sh", "exit 0\n")

	code, err := Run(bin)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestRunReportsSignalKill(t *testing.T) {
	dir := t.TempDir()
	bin := writeScript(t, dir, "selfkill.sh", "kill -TERM $$\n")

	_, err := Run(bin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "killed by signal")
}

func TestAssembleInvokesAssemblerWithExpectedArgs(t *testing.T) {
	dir := t.TempDir()
	recorded := filepath.Join(dir, "args.txt")
	fakeNasm := writeScript(t, dir, "fake-nasm.sh", `echo "$@" > `+recorded+"\n")

	err := Assemble(fakeNasm, "out.asm", "out.o")
	require.NoError(t, err)

	contents, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "-f elf64 out.asm -o out.o")
}

func TestLinkInvokesLinkerWithExpectedArgs(t *testing.T) {
	dir := t.TempDir()
	recorded := filepath.Join(dir, "args.txt")
	fakeLd := writeScript(t, dir, "fake-ld.sh", `echo "$@" > `+recorded+"\n")

	err := Link(fakeLd, "out.o", "test")
	require.NoError(t, err)

	contents, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "out.o -o test")
}

func TestAssembleFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	fakeNasm := writeScript(t, dir, "fail-nasm.sh", "echo bad syntax >&2\nexit 1\n")

	err := Assemble(fakeNasm, "out.asm", "out.o")
	require.Error(t, err)
}

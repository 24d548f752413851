// Package toolchain shells out to the external assembler and linker
// named in config, then runs the resulting binary and reports how it
// exited.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Assemble invokes `<assembler> -f elf64 <asmPath> -o <objPath>`,
// forwarding the tool's own stderr on failure.
func Assemble(assembler, asmPath, objPath string) error {
	return run(assembler, "-f", "elf64", asmPath, "-o", objPath)
}

// Link invokes `<linker> <objPath> -o <binPath>`.
func Link(linker, objPath, binPath string) error {
	return run(linker, objPath, "-o", binPath)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Run executes binPath and reports its fate: a normal exit reports its
// exit code, and a signal-killed child is distinguished from that
// using golang.org/x/sys/unix's WaitStatus decoding rather than just
// trusting *exec.ExitError's flattened ExitCode (which collapses
// "killed by signal" down to -1, losing which signal it was).
func Run(binPath string) (exitCode int, err error) {
	cmd := exec.Command(binPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return -1, fmt.Errorf("running %s: %w", binPath, err)
	}

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return exitErr.ExitCode(), nil
	}

	ws := unix.WaitStatus(status)
	if ws.Signaled() {
		return -1, fmt.Errorf("%s was killed by signal %s", binPath, ws.Signal())
	}
	return ws.ExitStatus(), nil
}

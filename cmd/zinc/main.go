// Command zinc compiles a single .zinc source file down to a native
// x86-64 Linux executable: lex, parse, check, generate NASM, then
// shell out to an assembler and linker.
package main

import (
	"fmt"
	"os"

	"github.com/zinc-lang/zinc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

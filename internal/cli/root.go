// Package cli wires the Zinc pipeline stages into a single cobra
// command: lex, parse, check, generate, assemble, link, and optionally
// run the resulting binary.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type options struct {
	out        string
	keepAsm    bool
	asmOnly    bool
	assembler  string
	linker     string
	configPath string
}

// NewRootCommand builds the zinc root command: a single positional
// .zinc source path plus the flags that steer the toolchain stage.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "zinc <source.zinc>",
		Short:         "Compile a Zinc source file to a native executable",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if !strings.HasSuffix(source, ".zinc") {
				return fmt.Errorf("%s: not a .zinc source file", source)
			}
			return compile(source, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.out, "out", "test", "name of the produced executable")
	flags.BoolVar(&opts.keepAsm, "keep-asm", false, "keep the generated .asm and .o files")
	flags.BoolVar(&opts.asmOnly, "asm-only", false, "stop after emitting the .asm file")
	flags.StringVar(&opts.assembler, "assembler", "", "assembler to invoke (overrides zinc.yaml)")
	flags.StringVar(&opts.linker, "linker", "", "linker to invoke (overrides zinc.yaml)")
	flags.StringVar(&opts.configPath, "config", "zinc.yaml", "path to a zinc.yaml config file")

	return cmd
}

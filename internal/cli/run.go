package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zinc-lang/zinc/internal/codegen"
	"github.com/zinc-lang/zinc/internal/config"
	"github.com/zinc-lang/zinc/internal/diagnostics"
	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser"
	"github.com/zinc-lang/zinc/internal/semantic"
	"github.com/zinc-lang/zinc/internal/toolchain"
)

// compile runs the full pipeline over the source file at path: lex,
// parse, check, generate, assemble, link, then run the result. It
// never returns an error for a stage failure — each stage failure is
// printed as a Diagnostic and ends the process with exit code 1, to
// keep the target program's own exit code (reported via os.Exit after
// a successful run) uncontaminated by a parent error return.
func compile(path string, opts *options) error {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.configPath, err)
	}
	if opts.assembler != "" {
		cfg.Assembler = opts.assembler
	}
	if opts.linker != "" {
		cfg.Linker = opts.linker
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lex := lexer.New(string(source), path)

	p, err := parser.New(lex)
	if err != nil {
		fail(diagnostics.StageLex, err)
	}

	prog, err := p.ParseProgram()
	if err != nil {
		fail(diagnostics.StageParse, err)
	}

	if err := semantic.New().Analyze(prog); err != nil {
		fail(diagnostics.StageSemantic, err)
	}

	asm, err := codegen.New().Generate(prog)
	if err != nil {
		fail(diagnostics.StageCodegen, err)
	}

	asmPath := filepath.Join(cfg.OutputDir, "out.asm")
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", asmPath, err)
	}

	if opts.asmOnly {
		return nil
	}

	objPath := filepath.Join(cfg.OutputDir, "out.o")
	binPath := filepath.Join(cfg.OutputDir, opts.out)

	if err := toolchain.Assemble(cfg.Assembler, asmPath, objPath); err != nil {
		fail(diagnostics.StageToolchain, err)
	}
	if err := toolchain.Link(cfg.Linker, objPath, binPath); err != nil {
		fail(diagnostics.StageToolchain, err)
	}

	if !opts.keepAsm && !cfg.KeepArtifacts {
		os.Remove(asmPath)
		os.Remove(objPath)
	}

	exitCode, err := toolchain.Run(binPath)
	if err != nil {
		fail(diagnostics.StageToolchain, err)
	}
	os.Exit(exitCode)
	return nil
}

func fail(stage diagnostics.Stage, err error) {
	diagnostics.Print(os.Stderr, diagnostics.New(stage, lexer.Position{}, err))
	os.Exit(1)
}

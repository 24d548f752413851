// Package diagnostics defines the single error shape every compiler
// stage reports through, and the stderr renderer the driver uses to
// print them.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/zinc-lang/zinc/internal/lexer"
)

// Stage identifies which pipeline stage raised a Diagnostic.
type Stage string

const (
	StageLex       Stage = "lex"
	StageParse     Stage = "parse"
	StageSemantic  Stage = "semantic"
	StageCodegen   Stage = "codegen"
	StageToolchain Stage = "toolchain"
)

// Diagnostic is a single fatal error from one pipeline stage. There is
// no severity field and no accumulation — the pipeline stops at the
// first Diagnostic any stage produces.
type Diagnostic struct {
	Stage   Stage
	Pos     lexer.Position
	Message string
}

// Error formats as "file:line:col: message", or just "message" when no
// position is available (tooling failures, for instance).
func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", d.Pos.String(), d.Message)
	}
	return d.Message
}

// New wraps err, produced by stage, as a Diagnostic carrying pos.
func New(stage Stage, pos lexer.Position, err error) *Diagnostic {
	return &Diagnostic{Stage: stage, Pos: pos, Message: err.Error()}
}

// Print renders a Diagnostic to w, in red when w is a terminal and in
// plain text otherwise.
func Print(w io.Writer, d *Diagnostic) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	prefix := fmt.Sprintf("%s error:", d.Stage)
	if useColor {
		prefix = color.New(color.FgRed, color.Bold).Sprint(prefix)
	}
	fmt.Fprintf(w, "%s %s\n", prefix, d.Error())
}

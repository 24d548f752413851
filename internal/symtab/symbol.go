// Package symtab implements Zinc's symbol table: a chain of scopes
// mapping name to Symbol, used by the semantic analyzer for name
// resolution and type checking. The code generator does not use it; it
// keeps its own name-to-stack-offset frames.
package symtab

import (
	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/types"
)

// SymbolKind distinguishes the handful of things a name can denote.
//
// DESIGN CHOICE: Builtin is its own kind, not a Function with a relaxed
// signature, because print/scan's arity and type checking are
// genuinely different from an ordinary function call — giving them a
// dedicated kind lets the analyzer skip the arity/type check entirely
// instead of special-casing a Function symbol by name.
type SymbolKind int

const (
	SymbolVar SymbolKind = iota
	SymbolFunction
	SymbolBuiltin
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Symbol is a named entity: a variable or a function (including the
// print/scan builtins).
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.Type
	Pos  lexer.Position

	// ParamTypes is only meaningful for SymbolFunction; ReturnType is
	// meaningful for SymbolFunction and SymbolBuiltin.
	ParamTypes []types.Type
	ReturnType types.Type

	// StackOffset holds a positive, 8-byte-aligned byte offset from the
	// function's frame base pointer. No pass in this module sets it: the
	// code generator tracks stack offsets in its own frames, so it stays
	// zero.
	StackOffset int
}

// String renders "kind name: type at position", useful in error
// messages and debug dumps.
func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + string(s.Type) + " at " + s.Pos.String()
}

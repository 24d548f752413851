// Package semantic implements Zinc's semantic analyzer: name resolution
// and type checking over the AST produced by the parser.
//
// DESIGN CHOICE: unlike an analyzer that collects every error into a
// slice and keeps walking, Analyze returns a single error and stops at
// the first one. Zinc has no error-recovery story — a
// broken scope or a cascade of "undefined" errors stemming from one
// bad declaration would be more noise than signal, so the first
// semantic error is also the last one reported.
package semantic

import (
	"fmt"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
	"github.com/zinc-lang/zinc/internal/symtab"
	"github.com/zinc-lang/zinc/internal/types"
)

// Analyzer walks a Program, resolving names against an Environment and
// computing a types.Type for every expression.
type Analyzer struct {
	env *symtab.Environment

	// currentFunction is the symbol for the function body currently
	// being checked, used to validate return statements. nil at the
	// top level, where a bare 'return' is a fatal error.
	currentFunction *symtab.Symbol
}

// New creates an Analyzer with print and scan predeclared as builtins.
func New() *Analyzer {
	a := &Analyzer{env: symtab.NewEnvironment()}
	a.declareBuiltins()
	return a
}

func (a *Analyzer) declareBuiltins() {
	_ = a.env.Define(&symtab.Symbol{Name: "print", Kind: symtab.SymbolBuiltin, Type: types.Unknown, ReturnType: types.Int})
	_ = a.env.Define(&symtab.Symbol{Name: "scan", Kind: symtab.SymbolBuiltin, Type: types.Unknown, ReturnType: types.Int})
}

// Analyze checks prog in two passes: first every top-level function
// signature is declared, so a function may call another defined later
// in the file, then every statement (function bodies included) is
// checked in declaration order.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if err := a.declareFunctionSignature(fn); err != nil {
			return err
		}
	}

	for _, stmt := range prog.Stmts {
		if err := stmt.Accept(a); err != nil {
			return err
		}
	}

	return nil
}

func (a *Analyzer) declareFunctionSignature(fn *ast.FunctionDecl) error {
	paramTypes := make([]types.Type, len(fn.Params))
	for i, param := range fn.Params {
		if param.Type == "" {
			paramTypes[i] = types.Unknown
			continue
		}
		if !types.Valid(param.Type) {
			return a.errorf(param.NamePos.Position, "unknown type %q for parameter %q", param.Type, param.Name)
		}
		paramTypes[i] = types.Type(param.Type)
	}

	returnType := types.Void
	if fn.ReturnType != "" {
		if !types.Valid(fn.ReturnType) {
			return a.errorf(fn.FnPos.Position, "unknown return type %q", fn.ReturnType)
		}
		returnType = types.Type(fn.ReturnType)
	}

	symbol := &symtab.Symbol{
		Name:       fn.Name,
		Kind:       symtab.SymbolFunction,
		Type:       returnType,
		Pos:        fn.FnPos.Position,
		ParamTypes: paramTypes,
		ReturnType: returnType,
	}
	if err := a.env.Define(symbol); err != nil {
		return a.errorf(fn.FnPos.Position, "%s", err.Error())
	}
	return nil
}

func (a *Analyzer) errorf(pos lexer.Position, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", pos.String(), fmt.Sprintf(format, args...))
}

// exprType runs e.Accept(a) and type-asserts the result, which every
// expression visitor method below always produces on success.
func (a *Analyzer) exprType(e ast.Expr) (types.Type, error) {
	result, err := e.Accept(a)
	if err != nil {
		return types.Unknown, err
	}
	return result.(types.Type), nil
}

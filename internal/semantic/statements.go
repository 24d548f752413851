package semantic

import (
	"github.com/zinc-lang/zinc/internal/parser/ast"
	"github.com/zinc-lang/zinc/internal/symtab"
	"github.com/zinc-lang/zinc/internal/types"
)

func (a *Analyzer) VisitExprStmt(s *ast.ExprStmt) error {
	_, err := a.exprType(s.Expr)
	return err
}

func (a *Analyzer) VisitReturnStmt(s *ast.ReturnStmt) error {
	if a.currentFunction == nil {
		return a.errorf(s.ReturnPos.Position, "return statement outside of a function")
	}

	valueType := types.Void
	if s.Value != nil {
		t, err := a.exprType(s.Value)
		if err != nil {
			return err
		}
		valueType = t
	}

	if !types.Equal(valueType, a.currentFunction.ReturnType) {
		return a.errorf(s.ReturnPos.Position, "function %q returns %s, got %s", a.currentFunction.Name, a.currentFunction.ReturnType, valueType)
	}
	return nil
}

func (a *Analyzer) VisitLetStmt(s *ast.LetStmt) error {
	if s.DeclaredType == "" && s.Init == nil {
		return a.errorf(s.NamePos.Position, "let %q needs a type annotation, an initializer, or both", s.Name)
	}

	var declared types.Type
	if s.DeclaredType != "" {
		if !types.Valid(s.DeclaredType) {
			return a.errorf(s.NamePos.Position, "unknown type %q", s.DeclaredType)
		}
		declared = types.Type(s.DeclaredType)
	}

	var finalType types.Type
	if s.Init != nil {
		initType, err := a.exprType(s.Init)
		if err != nil {
			return err
		}
		if declared != "" && !types.Equal(declared, initType) {
			return a.errorf(s.NamePos.Position, "let %q declared as %s but initialized with %s", s.Name, declared, initType)
		}
		finalType = initType
		if declared != "" {
			finalType = declared
		}
	} else {
		finalType = declared
	}

	if existing := a.env.LookupCurrent(s.Name); existing != nil {
		return a.errorf(s.NamePos.Position, "%q already declared in this scope", s.Name)
	}

	return a.env.Define(&symtab.Symbol{
		Name: s.Name,
		Kind: symtab.SymbolVar,
		Type: finalType,
		Pos:  s.NamePos.Position,
	})
}

func (a *Analyzer) VisitBlockStmt(s *ast.BlockStmt) error {
	a.env.Push()
	defer a.env.Pop()

	for _, stmt := range s.Stmts {
		if err := stmt.Accept(a); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) VisitIfStmt(s *ast.IfStmt) error {
	condType, err := a.exprType(s.Cond)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.Bool) {
		return a.errorf(s.Cond.Pos(), "if condition must be bool, got %s", condType)
	}

	if err := s.Then.Accept(a); err != nil {
		return err
	}

	if s.Else != nil {
		return s.Else.Accept(a)
	}
	if s.ElseDecl != nil {
		return s.ElseDecl.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitWhileStmt(s *ast.WhileStmt) error {
	condType, err := a.exprType(s.Cond)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.Bool) {
		return a.errorf(s.Cond.Pos(), "while condition must be bool, got %s", condType)
	}
	return s.Body.Accept(a)
}

// VisitFunctionDecl checks a function body. The signature itself was
// already declared by Analyze's first pass so other functions can
// refer to it regardless of source order; nested function declarations
// are rejected here since they aren't part of the language.
func (a *Analyzer) VisitFunctionDecl(s *ast.FunctionDecl) error {
	if !a.env.AtGlobal() {
		return a.errorf(s.FnPos.Position, "functions may only be declared at the top level")
	}

	sym := a.env.Lookup(s.Name)
	prevFunction := a.currentFunction
	a.currentFunction = sym

	a.env.Push()
	for i, param := range s.Params {
		if err := a.env.Define(&symtab.Symbol{
			Name: param.Name,
			Kind: symtab.SymbolVar,
			Type: sym.ParamTypes[i],
			Pos:  param.NamePos.Position,
		}); err != nil {
			a.env.Pop()
			a.currentFunction = prevFunction
			return a.errorf(param.NamePos.Position, "%s", err.Error())
		}
	}

	err := s.Body.Accept(a)

	a.env.Pop()
	a.currentFunction = prevFunction
	return err
}

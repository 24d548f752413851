package semantic

import (
	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
	"github.com/zinc-lang/zinc/internal/symtab"
	"github.com/zinc-lang/zinc/internal/types"
)

func (a *Analyzer) VisitIdentifier(e *ast.Identifier) (interface{}, error) {
	sym := a.env.Lookup(e.Name)
	if sym == nil {
		return types.Unknown, a.errorf(e.Token.Position, "undefined identifier %q", e.Name)
	}
	return sym.Type, nil
}

func (a *Analyzer) VisitNumberLiteral(e *ast.NumberLiteral) (interface{}, error) {
	return types.Int, nil
}

func (a *Analyzer) VisitStringLiteral(e *ast.StringLiteral) (interface{}, error) {
	return types.String, nil
}

func (a *Analyzer) VisitBoolLiteral(e *ast.BoolLiteral) (interface{}, error) {
	return types.Bool, nil
}

func (a *Analyzer) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	operand, err := a.exprType(e.Operand)
	if err != nil {
		return types.Unknown, err
	}
	switch e.Operator.Type {
	case lexer.TokenMinus:
		if !types.Equal(operand, types.Int) {
			return types.Unknown, a.errorf(e.Operator.Position, "unary - requires int operand, got %s", operand)
		}
		return types.Int, nil
	case lexer.TokenBang:
		if !types.Equal(operand, types.Bool) {
			return types.Unknown, a.errorf(e.Operator.Position, "unary ! requires bool operand, got %s", operand)
		}
		return types.Bool, nil
	default:
		return types.Unknown, a.errorf(e.Operator.Position, "unknown unary operator %q", e.Operator.Lexeme)
	}
}

func (a *Analyzer) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	if e.IsAssignment() {
		return a.visitAssignment(e)
	}

	left, err := a.exprType(e.Left)
	if err != nil {
		return types.Unknown, err
	}
	right, err := a.exprType(e.Right)
	if err != nil {
		return types.Unknown, err
	}

	switch e.Operator.Type {
	case lexer.TokenPlus:
		// string + string concatenates; every other arithmetic operator,
		// + included, otherwise requires two ints.
		if types.Equal(left, types.String) && types.Equal(right, types.String) {
			return types.String, nil
		}
		return a.checkArithmetic(e, left, right)

	case lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return a.checkArithmetic(e, left, right)

	case lexer.TokenEqual, lexer.TokenNotEqual:
		if !types.Equal(left, right) {
			return types.Unknown, a.errorf(e.Operator.Position, "cannot compare %s and %s", left, right)
		}
		return types.Bool, nil

	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		if !types.Equal(left, types.Int) || !types.Equal(right, types.Int) {
			return types.Unknown, a.errorf(e.Operator.Position, "relational operator %s requires int operands", e.Operator.Lexeme)
		}
		return types.Bool, nil

	case lexer.TokenAnd, lexer.TokenOr:
		if !types.Equal(left, types.Bool) || !types.Equal(right, types.Bool) {
			return types.Unknown, a.errorf(e.Operator.Position, "logical operator %s requires bool operands", e.Operator.Lexeme)
		}
		return types.Bool, nil

	case lexer.TokenBitAnd, lexer.TokenBitOr, lexer.TokenBitXor, lexer.TokenShl, lexer.TokenShr:
		if !types.Equal(left, types.Int) || !types.Equal(right, types.Int) {
			return types.Unknown, a.errorf(e.Operator.Position, "operator %s requires int operands", e.Operator.Lexeme)
		}
		return types.Int, nil

	default:
		return types.Unknown, a.errorf(e.Operator.Position, "unknown binary operator %q", e.Operator.Lexeme)
	}
}

func (a *Analyzer) checkArithmetic(e *ast.BinaryExpr, left, right types.Type) (interface{}, error) {
	if !types.Equal(left, types.Int) || !types.Equal(right, types.Int) {
		return types.Unknown, a.errorf(e.Operator.Position, "operator %s requires int operands, got %s and %s", e.Operator.Lexeme, left, right)
	}
	return types.Int, nil
}

// visitAssignment checks `target = value`. The parser guarantees
// target is an *ast.Identifier; it must already be declared and must
// name a plain variable, not a function or builtin.
func (a *Analyzer) visitAssignment(e *ast.BinaryExpr) (interface{}, error) {
	target := e.Left.(*ast.Identifier)
	sym := a.env.Lookup(target.Name)
	if sym == nil {
		return types.Unknown, a.errorf(target.Token.Position, "undefined identifier %q", target.Name)
	}
	if sym.Kind != symtab.SymbolVar {
		return types.Unknown, a.errorf(target.Token.Position, "cannot assign to %s %q", sym.Kind.String(), target.Name)
	}

	valueType, err := a.exprType(e.Right)
	if err != nil {
		return types.Unknown, err
	}
	if sym.Type.IsUnknown() && !valueType.IsUnknown() {
		sym.Type = valueType
	}
	if !types.Equal(sym.Type, valueType) {
		return types.Unknown, a.errorf(e.Operator.Position, "cannot assign %s to variable %q of type %s", valueType, target.Name, sym.Type)
	}
	return sym.Type, nil
}

func (a *Analyzer) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	callee, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return types.Unknown, a.errorf(e.Pos(), "call target must be a function name")
	}
	sym := a.env.Lookup(callee.Name)
	if sym == nil {
		return types.Unknown, a.errorf(callee.Token.Position, "undefined function %q", callee.Name)
	}
	if sym.Kind != symtab.SymbolFunction && sym.Kind != symtab.SymbolBuiltin {
		return types.Unknown, a.errorf(callee.Token.Position, "%q is not callable", callee.Name)
	}

	// print and scan are builtins: their argument types are intentionally
	// not checked here, unlike an ordinary function call. print accepts
	// any number of arguments; scan takes exactly zero.
	if sym.Kind == symtab.SymbolBuiltin {
		if callee.Name == "scan" && len(e.Args) != 0 {
			return types.Unknown, a.errorf(e.RightParen.Position, "scan takes no arguments, got %d", len(e.Args))
		}
		for _, arg := range e.Args {
			if _, err := a.exprType(arg); err != nil {
				return types.Unknown, err
			}
		}
		return sym.ReturnType, nil
	}

	if len(e.Args) != len(sym.ParamTypes) {
		return types.Unknown, a.errorf(e.RightParen.Position, "function %q expects %d argument(s), got %d", callee.Name, len(sym.ParamTypes), len(e.Args))
	}
	for i, arg := range e.Args {
		argType, err := a.exprType(arg)
		if err != nil {
			return types.Unknown, err
		}
		if !types.Equal(argType, sym.ParamTypes[i]) {
			return types.Unknown, a.errorf(arg.Pos(), "argument %d to %q: expected %s, got %s", i+1, callee.Name, sym.ParamTypes[i], argType)
		}
	}
	return sym.ReturnType, nil
}

func (a *Analyzer) VisitIfExpr(e *ast.IfExpr) (interface{}, error) {
	condType, err := a.exprType(e.Cond)
	if err != nil {
		return types.Unknown, err
	}
	if !types.Equal(condType, types.Bool) {
		return types.Unknown, a.errorf(e.Cond.Pos(), "if-expression condition must be bool, got %s", condType)
	}

	thenType, err := a.exprType(e.Then)
	if err != nil {
		return types.Unknown, err
	}
	elseType, err := a.exprType(e.Else)
	if err != nil {
		return types.Unknown, err
	}
	if !types.Equal(thenType, elseType) {
		return types.Unknown, a.errorf(e.Pos(), "if-expression branches have mismatched types: %s and %s", thenType, elseType)
	}
	if thenType.IsUnknown() {
		return elseType, nil
	}
	return thenType, nil
}

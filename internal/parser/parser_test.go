package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	lex := lexer.New(src, "test.zinc")
	p, err := New(lex)
	require.NoError(t, err)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	return prog
}

func mustFail(t *testing.T, src string) error {
	t.Helper()
	lex := lexer.New(src, "test.zinc")
	p, err := New(lex)
	require.NoError(t, err)
	_, err = p.ParseProgram()
	require.Error(t, err)
	return err
}

func TestParseLetDecl(t *testing.T) {
	prog := mustParse(t, `let x: int = 1;`)
	require.Len(t, prog.Stmts, 1)
	let, ok := prog.Stmts[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	assert.Equal(t, "int", let.DeclaredType)
	require.NotNil(t, let.Init)
	_, ok = let.Init.(*ast.NumberLiteral)
	assert.True(t, ok)
}

func TestParseLetDeclNoInit(t *testing.T) {
	prog := mustParse(t, `let x: int;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	assert.Equal(t, "int", let.DeclaredType)
	assert.Nil(t, let.Init)
}

func TestParseFuncDecl(t *testing.T) {
	prog := mustParse(t, `fn add(a: int, b: int): int { return a + b; }`)
	fn, ok := prog.Stmts[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "int", fn.Params[0].Type)
	assert.Equal(t, "int", fn.ReturnType)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseFuncDeclNoParamsNoReturnType(t *testing.T) {
	prog := mustParse(t, `fn main() { }`)
	fn := prog.Stmts[0].(*ast.FunctionDecl)
	assert.Empty(t, fn.Params)
	assert.Equal(t, "", fn.ReturnType)
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3)
	prog := mustParse(t, `let r = 1 + 2 * 3;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	outer, ok := let.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenPlus, outer.Operator.Type)
	_, ok = outer.Left.(*ast.NumberLiteral)
	require.True(t, ok)
	inner, ok := outer.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenStar, inner.Operator.Type)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// a = b = 1 should parse as a = (b = 1)
	prog := mustParse(t, `a = b = 1;`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.True(t, outer.IsAssignment())
	_, ok = outer.Left.(*ast.Identifier)
	require.True(t, ok)
	inner, ok := outer.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.True(t, inner.IsAssignment())
}

func TestArithmeticIsLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3
	prog := mustParse(t, `let r = 1 - 2 - 3;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	outer := let.Init.(*ast.BinaryExpr)
	_, ok := outer.Left.(*ast.BinaryExpr)
	assert.True(t, ok, "left operand should itself be the (1 - 2) subtree")
	_, ok = outer.Right.(*ast.NumberLiteral)
	assert.True(t, ok)
}

func TestComparisonBelowTerm(t *testing.T) {
	// 1 + 2 < 3 * 4 should parse as (1 + 2) < (3 * 4)
	prog := mustParse(t, `let r = 1 + 2 < 3 * 4;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	cmp := let.Init.(*ast.BinaryExpr)
	assert.Equal(t, lexer.TokenLess, cmp.Operator.Type)
	_, ok := cmp.Left.(*ast.BinaryExpr)
	assert.True(t, ok)
	_, ok = cmp.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestLogicalAndBindsTighterThanOr(t *testing.T) {
	prog := mustParse(t, `let r = true || false && true;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	or := let.Init.(*ast.BinaryExpr)
	assert.Equal(t, lexer.TokenOr, or.Operator.Type)
	and, ok := or.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenAnd, and.Operator.Type)
}

func TestUnaryChaining(t *testing.T) {
	prog := mustParse(t, `let r = --1;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	outer, ok := let.Init.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenMinus, outer.Operator.Type)
	_, ok = outer.Operand.(*ast.UnaryExpr)
	assert.True(t, ok)
}

func TestCallExpr(t *testing.T) {
	prog := mustParse(t, `print("hi", 1 + 2);`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "print", callee.Name)
	require.Len(t, call.Args, 2)
}

func TestChainedCalls(t *testing.T) {
	prog := mustParse(t, `f()();`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	_, ok = outer.Callee.(*ast.CallExpr)
	assert.True(t, ok)
}

func TestIfStmtWithElseIfChain(t *testing.T) {
	prog := mustParse(t, `
		if a { return 1; } else if b { return 2; } else { return 3; }
	`)
	top, ok := prog.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.True(t, top.HasElse())
	require.Nil(t, top.Else)
	require.NotNil(t, top.ElseDecl)
	mid, ok := top.ElseDecl.(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, mid.Else)
}

func TestWhileStmt(t *testing.T) {
	prog := mustParse(t, `while x { x = x - 1; }`)
	w, ok := prog.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, w.Body.Stmts, 1)
}

func TestIfExprBothBranchesRequired(t *testing.T) {
	prog := mustParse(t, `let r = if cond { 1 } else { 2 };`)
	let := prog.Stmts[0].(*ast.LetStmt)
	ifExpr, ok := let.Init.(*ast.IfExpr)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Then)
	require.NotNil(t, ifExpr.Else)
}

func TestIfExprMissingElseIsFatal(t *testing.T) {
	mustFail(t, `let r = if cond { 1 };`)
}

func TestIfExprSemicolonInsideBranchIsFatal(t *testing.T) {
	mustFail(t, `let r = if cond { 1; } else { 2 };`)
}

func TestInvalidAssignmentTargetIsFatal(t *testing.T) {
	err := mustFail(t, `1 = 2;`)
	assert.Contains(t, err.Error(), "invalid assignment target")
}

func TestMalformedFunctionDeclIsFatal(t *testing.T) {
	mustFail(t, `fn (a) { }`)
}

func TestUnterminatedBlockIsFatal(t *testing.T) {
	mustFail(t, `fn main() { return 1;`)
}

func TestParseIsDeterministic(t *testing.T) {
	src := `fn main(): int { let x: int = 1 + 2 * 3; return x; }`
	first := mustParse(t, src)
	second := mustParse(t, src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two parses of the same source produced different trees (-first +second):\n%s", diff)
	}
}

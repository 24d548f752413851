// Package ast defines the Zinc abstract syntax tree: two disjoint sum
// types, Expr and Stmt, each a closed set of tagged node variants.
//
// DESIGN CHOICE: interfaces plus a marker method (exprNode/stmtNode)
// rather than a class hierarchy with downcasts — analysis and lowering
// are then expressed as the Visitor below or as type switches. Adding a
// variant to the Visitor makes every implementation that lacks it fail
// to build; a type switch that lacks it reaches its default branch at
// run time instead.
package ast

import "github.com/zinc-lang/zinc/internal/lexer"

// Node is the base interface every AST node satisfies: it can report its
// own source position for diagnostics.
type Node interface {
	Pos() lexer.Position
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	Accept(v Visitor) (interface{}, error)
	exprNode()
}

// Stmt is a node that performs an action. Only expressions carry values
// in Zinc; statements don't.
type Stmt interface {
	Node
	Accept(v Visitor) error
	stmtNode()
}

// Visitor implements one operation over every node variant, letting the
// semantic analyzer and the code generator's string-collection pre-pass
// each implement their own pass without a type switch scattered through
// the tree-walking code. Assembly emission itself uses type switches.
//
// DESIGN CHOICE: expression visits return (interface{}, error) because
// different passes need different payloads — the analyzer returns a
// types.Type, the code generator's collector doesn't need a return
// value at all and returns nil (its real effect is the string table and
// scan flag it records on itself).
type Visitor interface {
	VisitIdentifier(e *Identifier) (interface{}, error)
	VisitNumberLiteral(e *NumberLiteral) (interface{}, error)
	VisitStringLiteral(e *StringLiteral) (interface{}, error)
	VisitBoolLiteral(e *BoolLiteral) (interface{}, error)
	VisitUnaryExpr(e *UnaryExpr) (interface{}, error)
	VisitBinaryExpr(e *BinaryExpr) (interface{}, error)
	VisitCallExpr(e *CallExpr) (interface{}, error)
	VisitIfExpr(e *IfExpr) (interface{}, error)

	VisitExprStmt(s *ExprStmt) error
	VisitReturnStmt(s *ReturnStmt) error
	VisitLetStmt(s *LetStmt) error
	VisitBlockStmt(s *BlockStmt) error
	VisitIfStmt(s *IfStmt) error
	VisitWhileStmt(s *WhileStmt) error
	VisitFunctionDecl(s *FunctionDecl) error
}

// Program is an ordered sequence of top-level statements — typically
// function declarations and top-level lets.
type Program struct {
	Stmts []Stmt
}

package ast

import "github.com/zinc-lang/zinc/internal/lexer"

// Identifier is a name reference: a variable or function use.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) Pos() lexer.Position { return i.Token.Position }
func (i *Identifier) exprNode()           {}
func (i *Identifier) Accept(v Visitor) (interface{}, error) {
	return v.VisitIdentifier(i)
}

// NumberLiteral is an integer literal. The digits are kept as decimal
// text in the AST; the code generator emits that text directly as the
// immediate operand of a mov.
type NumberLiteral struct {
	Token  lexer.Token
	Digits string
}

func (n *NumberLiteral) Pos() lexer.Position { return n.Token.Position }
func (n *NumberLiteral) exprNode()           {}
func (n *NumberLiteral) Accept(v Visitor) (interface{}, error) {
	return v.VisitNumberLiteral(n)
}

// StringLiteral holds the string's content with surrounding quotes
// stripped but escape sequences unresolved — resolution happens in the
// code generator, where the final .data bytes are produced.
type StringLiteral struct {
	Token lexer.Token
	Raw   string
}

func (s *StringLiteral) Pos() lexer.Position { return s.Token.Position }
func (s *StringLiteral) exprNode()           {}
func (s *StringLiteral) Accept(v Visitor) (interface{}, error) {
	return v.VisitStringLiteral(s)
}

// BoolLiteral is the `true`/`false` literal.
type BoolLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BoolLiteral) Pos() lexer.Position { return b.Token.Position }
func (b *BoolLiteral) exprNode()           {}
func (b *BoolLiteral) Accept(v Visitor) (interface{}, error) {
	return v.VisitBoolLiteral(b)
}

// UnaryExpr is a prefix operator applied to one operand: -x, !flag.
// Zinc only has these two prefix forms; there is no postfix unary
// operator.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) exprNode()           {}
func (u *UnaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitUnaryExpr(u)
}

// BinaryExpr covers every two-operand infix operator, assignment
// included — the operator lexeme on
// Operator is what both the semantic analyzer and the code generator
// switch on to pick the lowering rule.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) exprNode()           {}
func (b *BinaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitBinaryExpr(b)
}

// IsAssignment reports whether this binary node is really `target = value`
// rather than an ordinary infix operator — the parser only ever builds a
// BinaryExpr with TokenAssign when the left-hand side was an Identifier
// (see parser.go), so the code generator and analyzer can rely on that
// invariant once they see it.
func (b *BinaryExpr) IsAssignment() bool {
	return b.Operator.Type == lexer.TokenAssign
}

// CallExpr is a function call `callee(args...)`. Zinc restricts the
// callee to an identifier in practice (no first-class functions), but
// the node keeps Callee as a general Expr to mirror how the grammar
// parses it: a primary followed by a postfix call.
type CallExpr struct {
	Callee     Expr
	Args       []Expr
	RightParen lexer.Token
}

func (c *CallExpr) Pos() lexer.Position { return c.Callee.Pos() }
func (c *CallExpr) exprNode()           {}
func (c *CallExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitCallExpr(c)
}

// IfExpr is the primary-position `if cond { expr } else { expr }` form.
// Both branches are mandatory and each must be a single expression with
// no trailing semicolon.
type IfExpr struct {
	IfPos lexer.Token
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (i *IfExpr) Pos() lexer.Position { return i.IfPos.Position }
func (i *IfExpr) exprNode()           {}
func (i *IfExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitIfExpr(i)
}

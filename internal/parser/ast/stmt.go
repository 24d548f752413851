package ast

import "github.com/zinc-lang/zinc/internal/lexer"

// ExprStmt wraps an expression used for its side effect; its value is
// discarded (e.g. a bare call like `print(x);`).
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) Pos() lexer.Position { return e.Expr.Pos() }
func (e *ExprStmt) stmtNode()           {}
func (e *ExprStmt) Accept(v Visitor) error {
	return v.VisitExprStmt(e)
}

// ReturnStmt is `return;` or `return expr;`. Value is nil for the
// valueless form.
type ReturnStmt struct {
	ReturnPos lexer.Token
	Value     Expr
}

func (r *ReturnStmt) Pos() lexer.Position { return r.ReturnPos.Position }
func (r *ReturnStmt) stmtNode()           {}
func (r *ReturnStmt) Accept(v Visitor) error {
	return v.VisitReturnStmt(r)
}

// LetStmt declares a local: `let name: type? = init?;`. At least one of
// DeclaredType and Init must be present — the parser accepts a bare
// `let name;`, and the semantic analyzer rejects it as a fatal error.
type LetStmt struct {
	NamePos      lexer.Token
	Name         string
	DeclaredType string // empty if omitted
	Init         Expr   // nil if omitted
}

func (l *LetStmt) Pos() lexer.Position { return l.NamePos.Position }
func (l *LetStmt) stmtNode()           {}
func (l *LetStmt) Accept(v Visitor) error {
	return v.VisitLetStmt(l)
}

// BlockStmt is a brace-delimited sequence of declarations/statements.
type BlockStmt struct {
	LeftBrace lexer.Token
	Stmts     []Stmt
}

func (b *BlockStmt) Pos() lexer.Position { return b.LeftBrace.Position }
func (b *BlockStmt) stmtNode()           {}
func (b *BlockStmt) Accept(v Visitor) error {
	return v.VisitBlockStmt(b)
}

// IfStmt is the statement-position `if cond { ... } else ...`. Else may
// be nil, another block, or (via ElseDecl) a further declaration/
// statement — which is how `else if` chains fall out of the grammar.
type IfStmt struct {
	IfPos    lexer.Token
	Cond     Expr
	Then     *BlockStmt
	Else     *BlockStmt // set when the else branch is a `{ ... }` block
	ElseDecl Stmt       // set when the else branch is `else if ...` or any other decl
}

func (i *IfStmt) Pos() lexer.Position { return i.IfPos.Position }
func (i *IfStmt) stmtNode()           {}
func (i *IfStmt) Accept(v Visitor) error {
	return v.VisitIfStmt(i)
}

// HasElse reports whether any else branch was parsed, in either form.
func (i *IfStmt) HasElse() bool {
	return i.Else != nil || i.ElseDecl != nil
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	WhilePos lexer.Token
	Cond     Expr
	Body     *BlockStmt
}

func (w *WhileStmt) Pos() lexer.Position { return w.WhilePos.Position }
func (w *WhileStmt) stmtNode()           {}
func (w *WhileStmt) Accept(v Visitor) error {
	return v.VisitWhileStmt(w)
}

// Param is one entry in a function's parameter list: a name and an
// optional declared type.
type Param struct {
	NamePos lexer.Token
	Name    string
	Type    string // empty if omitted
}

// FunctionDecl is `fn name(params) : returnType? { body }`.
type FunctionDecl struct {
	FnPos      lexer.Token
	Name       string
	Params     []Param
	ReturnType string // empty if omitted; the analyzer treats that as "void"
	Body       *BlockStmt
}

func (f *FunctionDecl) Pos() lexer.Position { return f.FnPos.Position }
func (f *FunctionDecl) stmtNode()           {}
func (f *FunctionDecl) Accept(v Visitor) error {
	return v.VisitFunctionDecl(f)
}

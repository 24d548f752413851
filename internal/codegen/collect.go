package codegen

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/zinc-lang/zinc/internal/parser/ast"
)

// collector is the pre-pass described for code generation: it walks
// the whole program once, registering every distinct string literal
// into strs in first-insertion order (so `.data` emission is
// deterministic instead of depending on map iteration order) and
// noting whether `scan` is referenced anywhere, which decides whether
// input_buf needs a `.bss` slot at all.
type collector struct {
	strs     *orderedmap.OrderedMap[string, string]
	nextID   int
	usesScan bool
}

func newCollector() *collector {
	return &collector{strs: orderedmap.New[string, string]()}
}

func (c *collector) register(content string) string {
	if label, ok := c.strs.Get(content); ok {
		return label
	}
	label := fmt.Sprintf("str_%d", c.nextID)
	c.nextID++
	c.strs.Set(content, label)
	return label
}

func (c *collector) VisitIdentifier(e *ast.Identifier) (interface{}, error) { return nil, nil }

func (c *collector) VisitNumberLiteral(e *ast.NumberLiteral) (interface{}, error) { return nil, nil }

func (c *collector) VisitStringLiteral(e *ast.StringLiteral) (interface{}, error) {
	c.register(e.Raw)
	return nil, nil
}

func (c *collector) VisitBoolLiteral(e *ast.BoolLiteral) (interface{}, error) { return nil, nil }

func (c *collector) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	return nil, c.visitExpr(e.Operand)
}

func (c *collector) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	if err := c.visitExpr(e.Left); err != nil {
		return nil, err
	}
	return nil, c.visitExpr(e.Right)
}

func (c *collector) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	if callee, ok := e.Callee.(*ast.Identifier); ok && callee.Name == "scan" {
		c.usesScan = true
	}
	if err := c.visitExpr(e.Callee); err != nil {
		return nil, err
	}
	for _, arg := range e.Args {
		if err := c.visitExpr(arg); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (c *collector) VisitIfExpr(e *ast.IfExpr) (interface{}, error) {
	if err := c.visitExpr(e.Cond); err != nil {
		return nil, err
	}
	if err := c.visitExpr(e.Then); err != nil {
		return nil, err
	}
	return nil, c.visitExpr(e.Else)
}

func (c *collector) visitExpr(e ast.Expr) error {
	_, err := e.Accept(c)
	return err
}

func (c *collector) VisitExprStmt(s *ast.ExprStmt) error {
	return c.visitExpr(s.Expr)
}

func (c *collector) VisitReturnStmt(s *ast.ReturnStmt) error {
	if s.Value == nil {
		return nil
	}
	return c.visitExpr(s.Value)
}

func (c *collector) VisitLetStmt(s *ast.LetStmt) error {
	if s.Init == nil {
		return nil
	}
	return c.visitExpr(s.Init)
}

func (c *collector) VisitBlockStmt(s *ast.BlockStmt) error {
	for _, stmt := range s.Stmts {
		if err := stmt.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) VisitIfStmt(s *ast.IfStmt) error {
	if err := c.visitExpr(s.Cond); err != nil {
		return err
	}
	if err := s.Then.Accept(c); err != nil {
		return err
	}
	if s.Else != nil {
		return s.Else.Accept(c)
	}
	if s.ElseDecl != nil {
		return s.ElseDecl.Accept(c)
	}
	return nil
}

func (c *collector) VisitWhileStmt(s *ast.WhileStmt) error {
	if err := c.visitExpr(s.Cond); err != nil {
		return err
	}
	return s.Body.Accept(c)
}

func (c *collector) VisitFunctionDecl(s *ast.FunctionDecl) error {
	return s.Body.Accept(c)
}

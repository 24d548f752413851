package codegen

import (
	"fmt"
	"strings"

	"github.com/zinc-lang/zinc/internal/parser/ast"
)

func (g *Generator) genStmt(out *strings.Builder, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return g.genExprStmt(out, n)
	case *ast.ReturnStmt:
		return g.genReturnStmt(out, n)
	case *ast.LetStmt:
		return g.genLetStmt(out, n)
	case *ast.BlockStmt:
		return g.genBlockStmt(out, n)
	case *ast.IfStmt:
		return g.genIfStmt(out, n)
	case *ast.WhileStmt:
		return g.genWhileStmt(out, n)
	case *ast.FunctionDecl:
		return fmt.Errorf("%s: internal error: nested function declaration reached code generation", n.Pos().String())
	default:
		return fmt.Errorf("%s: internal error: unhandled statement type %T", s.Pos().String(), s)
	}
}

func (g *Generator) genExprStmt(out *strings.Builder, s *ast.ExprStmt) error {
	return g.genExpr(out, s.Expr)
}

func (g *Generator) genReturnStmt(out *strings.Builder, s *ast.ReturnStmt) error {
	if s.Value != nil {
		if err := g.genExpr(out, s.Value); err != nil {
			return err
		}
	}
	out.WriteString("    leave\n")
	out.WriteString("    ret\n")
	return nil
}

func (g *Generator) genLetStmt(out *strings.Builder, s *ast.LetStmt) error {
	off := g.allocate(s.Name)
	if s.Init == nil {
		return nil
	}
	if err := g.genExpr(out, s.Init); err != nil {
		return err
	}
	fmt.Fprintf(out, "    mov [rbp-%d], rax\n", off)
	return nil
}

func (g *Generator) genBlockStmt(out *strings.Builder, s *ast.BlockStmt) error {
	g.pushFrame()
	defer g.popFrame()

	for _, stmt := range s.Stmts {
		if err := g.genStmt(out, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genIfStmt(out *strings.Builder, s *ast.IfStmt) error {
	if err := g.genExpr(out, s.Cond); err != nil {
		return err
	}

	elseLabel := g.nextLabel("else")
	endLabel := g.nextLabel("end")

	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", elseLabel)

	if err := g.genBlockStmt(out, s.Then); err != nil {
		return err
	}
	fmt.Fprintf(out, "    jmp %s\n", endLabel)
	fmt.Fprintf(out, "%s:\n", elseLabel)

	if s.Else != nil {
		if err := g.genBlockStmt(out, s.Else); err != nil {
			return err
		}
	} else if s.ElseDecl != nil {
		if err := g.genStmt(out, s.ElseDecl); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%s:\n", endLabel)
	return nil
}

func (g *Generator) genWhileStmt(out *strings.Builder, s *ast.WhileStmt) error {
	startLabel := g.nextLabel("start")
	endLabel := g.nextLabel("end")

	fmt.Fprintf(out, "%s:\n", startLabel)
	if err := g.genExpr(out, s.Cond); err != nil {
		return err
	}
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", endLabel)

	if err := g.genBlockStmt(out, s.Body); err != nil {
		return err
	}
	fmt.Fprintf(out, "    jmp %s\n", startLabel)
	fmt.Fprintf(out, "%s:\n", endLabel)
	return nil
}

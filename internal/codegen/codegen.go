// Package codegen lowers a semantically valid AST directly to x86-64
// NASM assembly for Linux, targeting the System V AMD64 calling
// convention with direct syscalls for I/O. There is no intermediate
// representation and no optimization pass: every AST node is lowered
// straight to its instruction sequence.
package codegen

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
)

const maxParams = 6

// frame is one node in the code generator's own chain of name→offset
// scopes, built fresh for each function. It mirrors the shape of
// symtab.Environment but is deliberately a separate structure: the
// semantic analyzer's scopes carry types, this one carries stack
// offsets, and the two are cross-linked only through the names that
// appear in the source, not through shared pointers.
type frame struct {
	parent  *frame
	offsets map[string]int
}

func newFrame(parent *frame) *frame {
	return &frame{parent: parent, offsets: make(map[string]int)}
}

func (f *frame) lookup(name string) (int, bool) {
	for s := f; s != nil; s = s.parent {
		if off, ok := s.offsets[name]; ok {
			return off, true
		}
	}
	return 0, false
}

// Generator holds the state threaded through a single Generate call: a
// label counter shared by every function in the output, the
// deduplicated string-literal table,
// and the current function's stack frame.
type Generator struct {
	strs         *orderedmap.OrderedMap[string, string]
	nextStringID int
	usesScan     bool

	labelCounter int

	curFrame   *frame
	nextOffset int
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{strs: orderedmap.New[string, string]()}
}

// Generate lowers prog to a complete NASM source file.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	c := newCollector()
	for _, stmt := range prog.Stmts {
		if err := stmt.Accept(c); err != nil {
			return "", err
		}
	}
	g.strs = c.strs
	g.nextStringID = c.nextID
	g.usesScan = c.usesScan

	var out strings.Builder
	g.writeDataSection(&out)
	g.writeBSSSection(&out)

	out.WriteString("section .text\n")
	out.WriteString("global _start\n")
	out.WriteString("_start:\n")
	out.WriteString("    call main\n")
	out.WriteString("    mov rax, 60\n")
	out.WriteString("    xor rdi, rdi\n")
	out.WriteString("    syscall\n\n")

	writeRuntimeHelpers(&out, g.usesScan)

	for _, stmt := range prog.Stmts {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if err := g.genFunction(&out, fn); err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

func (g *Generator) nextLabel(base string) string {
	g.labelCounter++
	return fmt.Sprintf("%s_%d", base, g.labelCounter)
}

func (g *Generator) pushFrame() {
	g.curFrame = newFrame(g.curFrame)
}

func (g *Generator) popFrame() {
	g.curFrame = g.curFrame.parent
}

// allocate assigns the next stack slot to name in the current frame.
func (g *Generator) allocate(name string) int {
	g.nextOffset += 8
	g.curFrame.offsets[name] = g.nextOffset
	return g.nextOffset
}

func (g *Generator) genFunction(out *strings.Builder, fn *ast.FunctionDecl) error {
	if len(fn.Params) > maxParams {
		return fmt.Errorf("%s: function %q has %d parameters, more than the supported maximum of %d", fn.FnPos.Position.String(), fn.Name, len(fn.Params), maxParams)
	}

	g.curFrame = newFrame(nil)
	g.nextOffset = 0
	for _, param := range fn.Params {
		g.allocate(param.Name)
	}

	frameSize := (len(fn.Params) + countLocalSlots(fn.Body)) * 8

	fmt.Fprintf(out, "%s:\n", fn.Name)
	out.WriteString("    push rbp\n")
	out.WriteString("    mov rbp, rsp\n")
	if frameSize > 0 {
		fmt.Fprintf(out, "    sub rsp, %d\n", frameSize)
	}

	argRegs := []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
	for i, param := range fn.Params {
		off, _ := g.curFrame.lookup(param.Name)
		fmt.Fprintf(out, "    mov [rbp-%d], %s\n", off, argRegs[i])
	}

	if err := g.genBlockStmt(out, fn.Body); err != nil {
		return err
	}

	out.WriteString("    leave\n")
	out.WriteString("    ret\n\n")

	g.curFrame = nil
	return nil
}

func (g *Generator) lookupOffsetOrErr(name string, pos lexer.Position) (int, error) {
	off, ok := g.curFrame.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%s: internal error: %q has no allocated stack slot", pos.String(), name)
	}
	return off, nil
}

// countLocalSlots counts the let-bound names reachable from a function
// body, recursing through blocks, both branches of an if, and while
// bodies, but never descending into a nested function declaration.
// This runs before prologue emission so the frame size is known up
// front, and genBlockStmt/genLetStmt allocate slots in the exact same
// traversal order, so the two always agree on the final frame size.
func countLocalSlots(s ast.Stmt) int {
	switch n := s.(type) {
	case *ast.LetStmt:
		return 1
	case *ast.BlockStmt:
		total := 0
		for _, stmt := range n.Stmts {
			total += countLocalSlots(stmt)
		}
		return total
	case *ast.IfStmt:
		total := countLocalSlots(n.Then)
		if n.Else != nil {
			total += countLocalSlots(n.Else)
		}
		if n.ElseDecl != nil {
			total += countLocalSlots(n.ElseDecl)
		}
		return total
	case *ast.WhileStmt:
		return countLocalSlots(n.Body)
	case *ast.FunctionDecl:
		return 0
	default:
		return 0
	}
}

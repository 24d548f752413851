package codegen

import (
	"fmt"
	"strings"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
)

var argRegisters = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// genExpr lowers e, leaving its value in rax on return.
func (g *Generator) genExpr(out *strings.Builder, e ast.Expr) error {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		fmt.Fprintf(out, "    mov rax, %s\n", n.Digits)
		return nil

	case *ast.Identifier:
		off, err := g.lookupOffsetOrErr(n.Name, n.Token.Position)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "    mov rax, [rbp-%d]\n", off)
		return nil

	case *ast.BoolLiteral:
		if n.Value {
			out.WriteString("    mov rax, 1\n")
		} else {
			out.WriteString("    mov rax, 0\n")
		}
		return nil

	case *ast.StringLiteral:
		// A bare string literal outside of print has no defined
		// runtime representation (no pointer/length value type), but
		// nothing stops it from type-checking as a call argument
		// elsewhere, so genCallExpr's print path handles StringLiteral
		// directly and never reaches here for that case. Anywhere else
		// we fall back to loading its address, which is at least
		// well-defined even though nothing in the language reads it.
		fmt.Fprintf(out, "    mov rax, %s\n", g.stringLabel(n.Raw))
		return nil

	case *ast.UnaryExpr:
		return g.genUnaryExpr(out, n)

	case *ast.BinaryExpr:
		return g.genBinaryExpr(out, n)

	case *ast.CallExpr:
		return g.genCallExpr(out, n)

	case *ast.IfExpr:
		return g.genIfExpr(out, n)

	default:
		return fmt.Errorf("%s: internal error: unhandled expression type %T", e.Pos().String(), e)
	}
}

func (g *Generator) genUnaryExpr(out *strings.Builder, e *ast.UnaryExpr) error {
	if err := g.genExpr(out, e.Operand); err != nil {
		return err
	}
	switch e.Operator.Type {
	case lexer.TokenMinus:
		out.WriteString("    neg rax\n")
	case lexer.TokenBang:
		out.WriteString("    cmp rax, 0\n")
		out.WriteString("    sete al\n")
		out.WriteString("    movzx rax, al\n")
	default:
		return fmt.Errorf("%s: internal error: unhandled unary operator %q", e.Operator.Position.String(), e.Operator.Lexeme)
	}
	return nil
}

func (g *Generator) genBinaryExpr(out *strings.Builder, e *ast.BinaryExpr) error {
	if e.IsAssignment() {
		return g.genAssignment(out, e)
	}

	switch e.Operator.Type {
	case lexer.TokenAnd:
		return g.genShortCircuit(out, e, true)
	case lexer.TokenOr:
		return g.genShortCircuit(out, e, false)
	}

	if err := g.genExpr(out, e.Left); err != nil {
		return err
	}
	out.WriteString("    push rax\n")
	if err := g.genExpr(out, e.Right); err != nil {
		return err
	}
	out.WriteString("    mov rbx, rax\n")
	out.WriteString("    pop rax\n")

	switch e.Operator.Type {
	case lexer.TokenPlus:
		out.WriteString("    add rax, rbx\n")
	case lexer.TokenMinus:
		out.WriteString("    sub rax, rbx\n")
	case lexer.TokenStar:
		out.WriteString("    imul rax, rbx\n")
	case lexer.TokenSlash:
		out.WriteString("    cqo\n")
		out.WriteString("    idiv rbx\n")
	case lexer.TokenPercent:
		out.WriteString("    cqo\n")
		out.WriteString("    idiv rbx\n")
		out.WriteString("    mov rax, rdx\n")
	case lexer.TokenEqual:
		g.genCompare(out, "sete")
	case lexer.TokenNotEqual:
		g.genCompare(out, "setne")
	case lexer.TokenLess:
		g.genCompare(out, "setl")
	case lexer.TokenLessEqual:
		g.genCompare(out, "setle")
	case lexer.TokenGreater:
		g.genCompare(out, "setg")
	case lexer.TokenGreaterEqual:
		g.genCompare(out, "setge")
	case lexer.TokenBitAnd:
		out.WriteString("    and rax, rbx\n")
	case lexer.TokenBitOr:
		out.WriteString("    or rax, rbx\n")
	case lexer.TokenBitXor:
		out.WriteString("    xor rax, rbx\n")
	case lexer.TokenShl:
		out.WriteString("    mov cl, bl\n")
		out.WriteString("    shl rax, cl\n")
	case lexer.TokenShr:
		out.WriteString("    mov cl, bl\n")
		out.WriteString("    shr rax, cl\n")
	default:
		return fmt.Errorf("%s: internal error: unhandled binary operator %q", e.Operator.Position.String(), e.Operator.Lexeme)
	}
	return nil
}

func (g *Generator) genCompare(out *strings.Builder, setcc string) {
	out.WriteString("    cmp rax, rbx\n")
	fmt.Fprintf(out, "    %s al\n", setcc)
	out.WriteString("    movzx rax, al\n")
}

// genShortCircuit lowers && (isAnd) and ||, evaluating the right
// operand only when the left one didn't already decide the result.
func (g *Generator) genShortCircuit(out *strings.Builder, e *ast.BinaryExpr, isAnd bool) error {
	shortLabel := g.nextLabel(".sc_short")
	endLabel := g.nextLabel(".sc_end")

	if err := g.genExpr(out, e.Left); err != nil {
		return err
	}
	out.WriteString("    cmp rax, 0\n")
	if isAnd {
		fmt.Fprintf(out, "    je %s\n", shortLabel)
	} else {
		fmt.Fprintf(out, "    jne %s\n", shortLabel)
	}

	if err := g.genExpr(out, e.Right); err != nil {
		return err
	}
	out.WriteString("    cmp rax, 0\n")
	if isAnd {
		fmt.Fprintf(out, "    je %s\n", shortLabel)
		out.WriteString("    mov rax, 1\n")
	} else {
		fmt.Fprintf(out, "    jne %s\n", shortLabel)
		out.WriteString("    mov rax, 0\n")
	}
	fmt.Fprintf(out, "    jmp %s\n", endLabel)

	fmt.Fprintf(out, "%s:\n", shortLabel)
	if isAnd {
		out.WriteString("    mov rax, 0\n")
	} else {
		out.WriteString("    mov rax, 1\n")
	}
	fmt.Fprintf(out, "%s:\n", endLabel)
	return nil
}

// genAssignment lowers `target = value`. The RHS is left in rax after
// the store, so the assignment expression's own value is the assigned
// value — no extra register hop through rbx.
func (g *Generator) genAssignment(out *strings.Builder, e *ast.BinaryExpr) error {
	target := e.Left.(*ast.Identifier)
	off, err := g.lookupOffsetOrErr(target.Name, target.Token.Position)
	if err != nil {
		return err
	}
	if err := g.genExpr(out, e.Right); err != nil {
		return err
	}
	fmt.Fprintf(out, "    mov [rbp-%d], rax\n", off)
	return nil
}

func (g *Generator) genIfExpr(out *strings.Builder, e *ast.IfExpr) error {
	if err := g.genExpr(out, e.Cond); err != nil {
		return err
	}

	elseLabel := g.nextLabel(".expr_else")
	endLabel := g.nextLabel(".expr_end")

	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", elseLabel)

	if err := g.genExpr(out, e.Then); err != nil {
		return err
	}
	fmt.Fprintf(out, "    jmp %s\n", endLabel)
	fmt.Fprintf(out, "%s:\n", elseLabel)

	if err := g.genExpr(out, e.Else); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s:\n", endLabel)
	return nil
}

func (g *Generator) genCallExpr(out *strings.Builder, e *ast.CallExpr) error {
	callee, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return fmt.Errorf("%s: internal error: call target is not a plain identifier", e.Pos().String())
	}

	switch callee.Name {
	case "print":
		return g.genPrintCall(out, e)
	case "scan":
		out.WriteString("    call zinc_rt_scan_int\n")
		return nil
	}

	if len(e.Args) > maxParams {
		return fmt.Errorf("%s: internal error: call to %q has %d arguments, more than the supported maximum of %d", e.Pos().String(), callee.Name, len(e.Args), maxParams)
	}

	for _, arg := range e.Args {
		if err := g.genExpr(out, arg); err != nil {
			return err
		}
		out.WriteString("    push rax\n")
	}
	for i := len(e.Args) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "    pop %s\n", argRegisters[i])
	}
	fmt.Fprintf(out, "    call %s\n", callee.Name)
	return nil
}

// genPrintCall lowers each argument in order, writing string literals
// directly via a write syscall and routing every other argument
// through the integer-to-ASCII runtime helper, accumulating the total
// bytes written in r12 as the call's result.
func (g *Generator) genPrintCall(out *strings.Builder, e *ast.CallExpr) error {
	out.WriteString("    xor r12, r12\n")

	for _, arg := range e.Args {
		if str, ok := arg.(*ast.StringLiteral); ok {
			label := g.stringLabel(str.Raw)
			length := stringByteLen(str.Raw)
			out.WriteString("    mov rax, 1\n")
			out.WriteString("    mov rdi, 1\n")
			fmt.Fprintf(out, "    mov rsi, %s\n", label)
			fmt.Fprintf(out, "    mov rdx, %d\n", length)
			out.WriteString("    syscall\n")
			out.WriteString("    add r12, rax\n")
			continue
		}

		if err := g.genExpr(out, arg); err != nil {
			return err
		}
		out.WriteString("    call zinc_rt_print_int\n")
		out.WriteString("    add r12, rax\n")
	}

	out.WriteString("    mov rax, r12\n")
	return nil
}

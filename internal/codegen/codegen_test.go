package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser"
	"github.com/zinc-lang/zinc/internal/parser/ast"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	lex := lexer.New(src, "test.zinc")
	p, err := parser.New(lex)
	require.NoError(t, err)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	asm, err := New().Generate(prog)
	require.NoError(t, err)
	return asm
}

func TestGeneratesStartRoutine(t *testing.T) {
	asm := generate(t, `fn main(): int { return 0; }`)
	assert.Contains(t, asm, "_start:")
	assert.Contains(t, asm, "call main")
	assert.Contains(t, asm, "mov rax, 60")
	assert.Contains(t, asm, "syscall")
}

func TestStringLiteralsDeduplicatedAndOrdered(t *testing.T) {
	asm := generate(t, `
		fn main(): int {
			print("hi");
			print("bye");
			print("hi");
			return 0;
		}
	`)
	firstHi := strings.Index(asm, "str_0:")
	bye := strings.Index(asm, "str_1:")
	require.NotEqual(t, -1, firstHi)
	require.NotEqual(t, -1, bye)
	assert.Less(t, firstHi, bye)
	assert.Equal(t, 1, strings.Count(asm, "str_0:"), "each distinct string literal gets exactly one label definition")
	assert.NotContains(t, asm, "str_2:")
}

func TestInputBufOnlyEmittedWhenScanUsed(t *testing.T) {
	withScan := generate(t, `fn main(): int { let x: int = scan(); return x; }`)
	assert.Contains(t, withScan, "input_buf")

	withoutScan := generate(t, `fn main(): int { return 0; }`)
	assert.NotContains(t, withoutScan, "input_buf")
}

func TestAssignmentDoesNotUseRbxHop(t *testing.T) {
	asm := generate(t, `fn main(): int { let x: int = 0; x = 5 + 2; return x; }`)
	// the assignment's own store must come straight from rax
	assert.Contains(t, asm, "mov [rbp-8], rax")
	assert.NotContains(t, asm, "mov [rbp-8], rbx")
}

func TestFrameSizeAccountsForNestedLets(t *testing.T) {
	asm := generate(t, `
		fn main(): int {
			let a: int = 1;
			if true {
				let b: int = 2;
			} else {
				let c: int = 3;
			}
			return a;
		}
	`)
	// 1 (a) + 1 (b) + 1 (c) = 3 slots => 24 bytes, even though b and c
	// never coexist at runtime.
	assert.Contains(t, asm, "sub rsp, 24")
}

func TestIfExpressionLabelsAreDotPrefixed(t *testing.T) {
	asm := generate(t, `fn main(): int { let x: int = if true { 1 } else { 2 }; return x; }`)
	assert.Contains(t, asm, ".expr_else_")
	assert.Contains(t, asm, ".expr_end_")
}

func TestIfStatementLabelsAreBare(t *testing.T) {
	asm := generate(t, `fn main(): int { if true { return 1; } return 0; }`)
	assert.Regexp(t, `(^|\n)else_\d+:`, asm)
	assert.Regexp(t, `(^|\n)end_\d+:`, asm)
}

func TestWhileLabels(t *testing.T) {
	asm := generate(t, `fn main(): int { let i: int = 0; while i < 3 { i = i + 1; } return i; }`)
	assert.Regexp(t, `(^|\n)start_\d+:`, asm)
}

func TestLabelsAreUnique(t *testing.T) {
	asm := generate(t, `
		fn main(): int {
			if true { return 1; } else { return 2; }
			if true { return 3; } else { return 4; }
			return 0;
		}
	`)
	seen := map[string]bool{}
	for _, line := range strings.Split(asm, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			require.False(t, seen[line], "duplicate label %q", line)
			seen[line] = true
		}
	}
}

func TestTooManyParametersIsRejected(t *testing.T) {
	lex := lexer.New(`fn f(a: int, b: int, c: int, d: int, e: int, f: int, g: int): int { return a; }`, "test.zinc")
	p, err := parser.New(lex)
	require.NoError(t, err)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	_, err = New().Generate(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than the supported maximum")
}

func TestEscapeResolution(t *testing.T) {
	assert.Equal(t, []byte{'h', 'i', 0x0A}, resolveEscapes(`hi\n`))
	assert.Equal(t, []byte{0x09}, resolveEscapes(`\t`))
	assert.Equal(t, []byte{0x5C}, resolveEscapes(`\\`))
	assert.Equal(t, []byte{'\\', 'r'}, resolveEscapes(`\r`))
	assert.Equal(t, []byte{'\\', '"'}, resolveEscapes(`\"`))
}

func TestCountLocalSlotsSkipsNestedFunctionDecl(t *testing.T) {
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.LetStmt{Name: "a"},
		&ast.FunctionDecl{Name: "inner", Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.LetStmt{Name: "b"},
		}}},
	}}
	assert.Equal(t, 1, countLocalSlots(block))
}

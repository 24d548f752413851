package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// resolveEscapes turns a string literal's raw lexeme — quotes already
// stripped by the lexer, escape sequences still backslash-and-letter
// pairs — into the byte sequence that belongs in `.data`. Only \n, \t,
// and \\ are resolved to their single-byte form; every other escape
// (\r, \", \0, ...) is emitted as the literal two bytes, matching the
// lexer's decision to leave resolution entirely to this stage.
func resolveEscapes(raw string) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i == len(raw)-1 {
			out = append(out, raw[i])
			continue
		}
		switch raw[i+1] {
		case 'n':
			out = append(out, 0x0A)
			i++
		case 't':
			out = append(out, 0x09)
			i++
		case '\\':
			out = append(out, 0x5C)
			i++
		default:
			out = append(out, '\\', raw[i+1])
			i++
		}
	}
	return out
}

func (g *Generator) writeDataSection(out *strings.Builder) {
	out.WriteString("section .data\n")
	for pair := g.strs.Oldest(); pair != nil; pair = pair.Next() {
		bytes := resolveEscapes(pair.Key)
		digits := make([]string, 0, len(bytes)+1)
		for _, b := range bytes {
			digits = append(digits, strconv.Itoa(int(b)))
		}
		digits = append(digits, "0")
		fmt.Fprintf(out, "%s: db %s\n", pair.Value, strings.Join(digits, ","))
	}
	out.WriteString("\n")
}

func (g *Generator) writeBSSSection(out *strings.Builder) {
	out.WriteString("section .bss\n")
	out.WriteString("num_buf: resb 20\n")
	if g.usesScan {
		out.WriteString("input_buf: resb 32\n")
	}
	out.WriteString("\n")
}

// stringLabel returns the label assigned to a string literal's content
// during the collection pre-pass. It is always present by the time
// expression lowering runs, since every StringLiteral node was visited
// by the collector before genFunction is ever called.
func (g *Generator) stringLabel(content string) string {
	label, _ := g.strs.Get(content)
	return label
}

// stringByteLen returns the number of bytes the write syscall should
// report for a string literal, excluding the .data terminator.
func stringByteLen(raw string) int {
	return len(resolveEscapes(raw))
}

package parser

import "github.com/zinc-lang/zinc/internal/lexer"

// Precedence levels, lowest to highest. All are left-associative
// except assignment, which is right-associative.
//
// DESIGN CHOICE: integer levels rather than a per-operator struct table —
// precedence climbing only ever needs "is this level higher than that
// one", which a plain int comparison answers, and the const block below
// doubles as the precedence table itself.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment // =
	PrecOr         // ||
	PrecAnd        // &&
	PrecBitOr      // |
	PrecBitXor     // ^
	PrecBitAnd     // &
	PrecEquality   // ==, !=
	PrecComparison // <, <=, >, >=
	PrecShift      // <<, >>
	PrecTerm       // +, -
	PrecFactor     // *, /, %
	PrecUnary      // unary !, unary -
	PrecCall       // f(args)
	PrecPrimary
)

// precedenceOf returns the binding power of tokenType as an infix
// operator, or PrecNone if it can't start an infix continuation.
func precedenceOf(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenAssign:
		return PrecAssignment
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenBitOr:
		return PrecBitOr
	case lexer.TokenBitXor:
		return PrecBitXor
	case lexer.TokenBitAnd:
		return PrecBitAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		return PrecComparison
	case lexer.TokenShl, lexer.TokenShr:
		return PrecShift
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	case lexer.TokenLeftParen:
		return PrecCall
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether tokenType binds right-to-left.
// Assignment is the only right-associative operator in the grammar.
func isRightAssociative(tokenType lexer.TokenType) bool {
	return tokenType == lexer.TokenAssign
}

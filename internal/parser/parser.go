// Package parser implements Zinc's recursive-descent parser: statement
// grammar by direct recursive descent, expression grammar by precedence
// climbing (a Pratt parser) over the levels in precedence.go.
package parser

import (
	"fmt"

	"github.com/zinc-lang/zinc/internal/lexer"
	"github.com/zinc-lang/zinc/internal/parser/ast"
)

// Parser consumes a token stream and builds a Program, aborting on the
// first syntax error — there is no error recovery.
//
// DESIGN CHOICE: single-token lookahead (cur) is enough for this
// grammar — every decision point (fn/let/if/while/block/expr, and
// every expression continuation) is resolved by the current token
// alone, so there's no need for lexer-level comment tokens or a
// two-token lookahead buffer.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

// New creates a Parser reading from lex.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseProgram parses an entire source file into a Program: an ordered
// sequence of top-level declarations.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur.Type != lexer.TokenEOF {
		stmt, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.cur.Type == tt
}

// match consumes the current token and advances if it has type tt.
func (p *Parser) match(tt lexer.TokenType) (bool, error) {
	if !p.check(tt) {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expect consumes the current token if it has type tt, otherwise
// reports a fatal "missing expected token" error naming what was wanted.
func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if !p.check(tt) {
		return lexer.Token{}, p.errorf("expected %s, got %s", what, p.cur.Type.String())
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// optionalSemicolon consumes a trailing ';' if present; statement
// terminators are optional throughout the grammar.
func (p *Parser) optionalSemicolon() error {
	_, err := p.match(lexer.TokenSemicolon)
	return err
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", p.cur.Position.String(), fmt.Sprintf(format, args...))
}

// parseDecl implements `decl := 'fn' funcDecl | 'let' letDecl | stmt`.
func (p *Parser) parseDecl() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.TokenFn:
		return p.parseFuncDecl()
	case lexer.TokenLet:
		return p.parseLetDecl()
	default:
		return p.parseStmt()
	}
}

// parseFuncDecl implements `funcDecl := ident '(' params? ')' (':' ident)? block`,
// having already seen and consumed the leading 'fn'.
func (p *Parser) parseFuncDecl() (*ast.FunctionDecl, error) {
	fnTok := p.cur
	if err := p.advance(); err != nil { // consume 'fn'
		return nil, err
	}

	nameTok, err := p.expect(lexer.TokenIdentifier, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenLeftParen, "'('"); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.check(lexer.TokenRightParen) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			matched, err := p.match(lexer.TokenComma)
			if err != nil {
				return nil, err
			}
			if !matched {
				break
			}
		}
	}
	if _, err := p.expect(lexer.TokenRightParen, "')'"); err != nil {
		return nil, err
	}

	returnType := ""
	if matched, err := p.match(lexer.TokenColon); err != nil {
		return nil, err
	} else if matched {
		rtTok, err := p.expect(lexer.TokenIdentifier, "return type")
		if err != nil {
			return nil, err
		}
		returnType = rtTok.Lexeme
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{
		FnPos:      fnTok,
		Name:       nameTok.Lexeme,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

// parseParam implements `param := ident (':' ident)?`.
func (p *Parser) parseParam() (ast.Param, error) {
	nameTok, err := p.expect(lexer.TokenIdentifier, "parameter name")
	if err != nil {
		return ast.Param{}, err
	}
	typeName := ""
	if matched, err := p.match(lexer.TokenColon); err != nil {
		return ast.Param{}, err
	} else if matched {
		typeTok, err := p.expect(lexer.TokenIdentifier, "parameter type")
		if err != nil {
			return ast.Param{}, err
		}
		typeName = typeTok.Lexeme
	}
	return ast.Param{NamePos: nameTok, Name: nameTok.Lexeme, Type: typeName}, nil
}

// parseLetDecl implements `letDecl := ident (':' ident)? ( '=' expr ';'? | ';' )`,
// having already seen and consumed the leading 'let'.
func (p *Parser) parseLetDecl() (*ast.LetStmt, error) {
	if err := p.advance(); err != nil { // consume 'let'
		return nil, err
	}

	nameTok, err := p.expect(lexer.TokenIdentifier, "variable name")
	if err != nil {
		return nil, err
	}

	declaredType := ""
	if matched, err := p.match(lexer.TokenColon); err != nil {
		return nil, err
	} else if matched {
		typeTok, err := p.expect(lexer.TokenIdentifier, "variable type")
		if err != nil {
			return nil, err
		}
		declaredType = typeTok.Lexeme
	}

	var init ast.Expr
	if matched, err := p.match(lexer.TokenAssign); err != nil {
		return nil, err
	} else if matched {
		init, err = p.parseExpression(PrecAssignment)
		if err != nil {
			return nil, err
		}
		if err := p.optionalSemicolon(); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(lexer.TokenSemicolon, "';'"); err != nil {
			return nil, err
		}
	}

	return &ast.LetStmt{
		NamePos:      nameTok,
		Name:         nameTok.Lexeme,
		DeclaredType: declaredType,
		Init:         init,
	}, nil
}

// parseStmt implements
// `stmt := 'return' expr? ';'? | 'if' ifStmt | 'while' whileStmt | block | expr ';'?`.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	case lexer.TokenIf:
		return p.parseIfStmt()
	case lexer.TokenWhile:
		return p.parseWhileStmt()
	case lexer.TokenLeftBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	retTok := p.cur
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}

	var value ast.Expr
	if !p.check(lexer.TokenSemicolon) && !p.check(lexer.TokenRightBrace) && !p.check(lexer.TokenEOF) {
		v, err := p.parseExpression(PrecAssignment)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.optionalSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{ReturnPos: retTok, Value: value}, nil
}

// parseIfStmt implements `ifStmt := expr block ('else' (block | decl))?`,
// having already seen and consumed the leading 'if'.
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	ifTok := p.cur
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}

	cond, err := p.parseExpression(PrecAssignment)
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{IfPos: ifTok, Cond: cond, Then: then}

	if matched, err := p.match(lexer.TokenElse); err != nil {
		return nil, err
	} else if matched {
		if p.check(lexer.TokenLeftBrace) {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		} else {
			// `else if ...` (or any other declaration) — parse as a
			// nested decl rather than requiring a block, which is what
			// makes else-if chains fall out of the grammar for free.
			decl, err := p.parseDecl()
			if err != nil {
				return nil, err
			}
			stmt.ElseDecl = decl
		}
	}

	return stmt, nil
}

// parseWhileStmt implements `whileStmt := expr block`, having already
// seen and consumed the leading 'while'.
func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	whileTok := p.cur
	if err := p.advance(); err != nil { // consume 'while'
		return nil, err
	}
	cond, err := p.parseExpression(PrecAssignment)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{WhilePos: whileTok, Cond: cond, Body: body}, nil
}

// parseBlock implements `block := '{' decl* '}'`.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	lbrace, err := p.expect(lexer.TokenLeftBrace, "'{'")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRightBrace) && !p.check(lexer.TokenEOF) {
		stmt, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{LeftBrace: lbrace, Stmts: stmts}, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	expr, err := p.parseExpression(PrecAssignment)
	if err != nil {
		return nil, err
	}
	if err := p.optionalSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

// parseExpression is the precedence-climbing core: it parses a unary
// operand, then repeatedly folds in infix operators whose precedence is
// at least minPrec, recursing at the operator's own precedence (or one
// level higher, for left-associative operators) to build the right
// operand.
func (p *Parser) parseExpression(minPrec Precedence) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec := precedenceOf(p.cur.Type)
		if prec == PrecNone || prec < minPrec {
			break
		}

		if p.cur.Type == lexer.TokenLeftParen {
			left, err = p.finishCall(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}

		nextMinPrec := prec + 1
		if isRightAssociative(opTok.Type) {
			nextMinPrec = prec
		}
		right, err := p.parseExpression(nextMinPrec)
		if err != nil {
			return nil, err
		}

		if opTok.Type == lexer.TokenAssign {
			if _, ok := left.(*ast.Identifier); !ok {
				return nil, fmt.Errorf("%s: invalid assignment target", opTok.Position.String())
			}
		}

		left = &ast.BinaryExpr{Left: left, Operator: opTok, Right: right}
	}

	return left, nil
}

// parseUnary implements precedence level 12: right-associative unary
// `!` and `-`, falling through to a call-postfixed primary otherwise.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Type == lexer.TokenBang || p.cur.Type == lexer.TokenMinus {
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Operator: opTok, Operand: operand}, nil
	}
	return p.parseCallChain()
}

// parseCallChain implements precedence level 13: a primary followed by
// zero or more `(args)` postfixes.
func (p *Parser) parseCallChain() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenLeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Expr
	if !p.check(lexer.TokenRightParen) {
		for {
			arg, err := p.parseExpression(PrecAssignment)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			matched, err := p.match(lexer.TokenComma)
			if err != nil {
				return nil, err
			}
			if !matched {
				break
			}
		}
	}
	rparen, err := p.expect(lexer.TokenRightParen, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Callee: callee, Args: args, RightParen: rparen}, nil
}

// parsePrimary implements precedence level 14: literals, identifiers,
// parenthesized expressions, and the if-expression form.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Type {
	case lexer.TokenNumber:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Digits: tok.Lexeme}, nil

	case lexer.TokenString:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Token: tok, Raw: tok.Lexeme}, nil

	case lexer.TokenTrue, lexer.TokenFalse:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Token: tok, Value: tok.Type == lexer.TokenTrue}, nil

	case lexer.TokenIdentifier:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil

	case lexer.TokenLeftParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(PrecAssignment)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRightParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenIf:
		return p.parseIfExpr()

	default:
		return nil, p.errorf("unexpected token in expression: %s", p.cur.Type.String())
	}
}

// parseIfExpr implements the primary-position `if cond { expr } else
// { expr }` form. Both branches are mandatory and each must contain
// exactly one expression with no trailing semicolon.
func (p *Parser) parseIfExpr() (*ast.IfExpr, error) {
	ifTok := p.cur
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}

	cond, err := p.parseExpression(PrecAssignment)
	if err != nil {
		return nil, err
	}

	then, err := p.parseIfExprBranch()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenElse, "'else' (if-expressions require an else branch)"); err != nil {
		return nil, err
	}

	elseExpr, err := p.parseIfExprBranch()
	if err != nil {
		return nil, err
	}

	return &ast.IfExpr{IfPos: ifTok, Cond: cond, Then: then, Else: elseExpr}, nil
}

// parseIfExprBranch parses `'{' expr '}'`, rejecting a trailing
// semicolon as fatal — the block must contain exactly one expression.
func (p *Parser) parseIfExprBranch() (ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLeftBrace, "'{'"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(PrecAssignment)
	if err != nil {
		return nil, err
	}
	if p.check(lexer.TokenSemicolon) {
		return nil, p.errorf("unexpected ';' inside if-expression branch")
	}
	if _, err := p.expect(lexer.TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}
	return expr, nil
}

package parser

import (
	"strings"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/lexer"
	"github.com/laorg/lacc/internal/token"
)

// parseExpression is the Pratt-parser core: parse a prefix expression,
// then keep folding in infix operators whose precedence exceeds prec.
func (p *Parser) parseExpression(prec int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.syntaxError(p.curToken)
		return nil
	}
	left := prefix()

	for !p.fatal() && prec < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.curToken
	return &ast.IntLit{TokLine: tok.Line, Value: lexer.ParseIntLiteral(tok.Lexeme), Raw: tok.Lexeme}
}

func (p *Parser) parseRealLiteral() ast.Expr {
	tok := p.curToken
	return &ast.RealLit{TokLine: tok.Line, Value: lexer.ParseRealLiteral(tok.Lexeme), Raw: tok.Lexeme}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.curToken
	return &ast.StringLit{TokLine: tok.Line, Value: strings.Trim(tok.Lexeme, `"`), Raw: tok.Lexeme}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.curToken
	return &ast.BoolLit{TokLine: tok.Line, Value: tok.Lexeme == "verdadeiro", Raw: tok.Lexeme}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.curToken
	op := tok.Lexeme
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{TokLine: tok.Line, Op: op, Operand: operand}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.curToken
	op := tok.Lexeme
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{TokLine: tok.Line, Op: op, Left: left, Right: right}
}

func (p *Parser) parseParenExpr() ast.Expr {
	tok := p.curToken
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.ParenExpr{TokLine: tok.Line, Inner: inner}
}

// parseIdentifierOrCall parses a bare identifier, a call "f(args)", or
// a composite dotted/indexed reference ("a.b", "vet[i]"), all folded
// into a single ast.Identifier's verbatim Name: identifier use treats
// owner.field and owner[index] as one reference, not a nested
// field/index expression.
func (p *Parser) parseIdentifierOrCall() ast.Expr {
	tok := p.curToken
	name := tok.Lexeme

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // consume '('
		args := p.parseCallArgs()
		return &ast.CallExpr{TokLine: tok.Line, Name: name, Args: args}
	}

	for {
		if p.peekTokenIs(token.DOT) {
			p.nextToken() // consume '.'
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			name += "." + p.curToken.Lexeme
			continue
		}
		if p.peekTokenIs(token.LBRACKET) {
			p.nextToken() // consume '['
			p.nextToken() // move to index expression
			idx := p.parseExpression(LOWEST)
			if idx == nil {
				return nil
			}
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			name += "[" + idx.Text() + "]"
			continue
		}
		break
	}

	return &ast.Identifier{TokLine: tok.Line, Name: name}
}

func (p *Parser) parseCallArgs() []ast.Expr {
	var args []ast.Expr
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}

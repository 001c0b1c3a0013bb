package parser

import (
	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/token"
)

// parseTypeExpr parses one of: a basic type name, "^" + a type name,
// a custom type name, or an inline "registro ... fimregistro" body.
// curToken is the first token of the type on entry.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	tok := p.curToken

	if p.curTokenIs(token.REGISTRO) {
		fields := p.parseFieldList(token.FIMREGISTRO)
		if !p.expectPeek(token.FIMREGISTRO) {
			return nil
		}
		return &ast.TypeExpr{TokLine: tok.Line, Fields: fields}
	}

	name := ""
	if p.curTokenIs(token.POINTER) {
		p.nextToken()
		name = "^" + p.curToken.Lexeme
	} else {
		name = p.curToken.Lexeme
	}
	return &ast.TypeExpr{TokLine: tok.Line, Basic: name}
}

// parseFieldList parses a sequence of "nome, nome2 : tipo" lines until
// stop is the peek token, used for registro bodies (both "tipo"
// declarations and inline registro types).
func (p *Parser) parseFieldList(stop token.TokenType) []*ast.VarDecl {
	var fields []*ast.VarDecl
	for !p.peekTokenIs(stop) && !p.fatal() {
		p.nextToken()
		fields = append(fields, p.parseVarDeclLine())
	}
	return fields
}

// parseVarDeclLine parses "nome1, nome2[10] : tipo" with curToken on
// the first name.
func (p *Parser) parseVarDeclLine() *ast.VarDecl {
	tok := p.curToken
	var names []string
	names = append(names, p.parseDeclName())

	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // consume ','
		p.nextToken() // move to next name
		names = append(names, p.parseDeclName())
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken() // move to type
	typ := p.parseTypeExpr()

	return &ast.VarDecl{TokLine: tok.Line, Names: names, Type: typ}
}

// parseDeclName parses a declared name with an optional "[n]" array
// dimension suffix, returning the verbatim text (e.g. "vet[10]").
func (p *Parser) parseDeclName() string {
	name := p.curToken.Lexeme
	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken() // consume '['
		p.nextToken() // move to dimension
		dim := p.curToken.Lexeme
		if !p.expectPeek(token.RBRACKET) {
			return name
		}
		name += "[" + dim + "]"
	}
	return name
}

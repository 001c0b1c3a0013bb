package parser

import (
	"strconv"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/token"
)

// ParseProgram parses a whole compilation unit:
//
//	programa <nome>
//	{ constante | tipo | declare ... }
//	{ funcao | procedimento ... }
//	inicio { comando } fim
func (p *Parser) ParseProgram() *ast.Program {
	if !p.curTokenIs(token.PROGRAMA) {
		p.syntaxError(p.curToken)
		return nil
	}
	prog := &ast.Program{TokLine: p.curToken.Line}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prog.Name = p.curToken.Lexeme

	for !p.fatal() {
		switch p.peekToken.Type {
		case token.CONSTANTE:
			p.nextToken()
			prog.Constants = append(prog.Constants, p.parseConstDecl())
		case token.TIPO:
			p.nextToken()
			prog.Types = append(prog.Types, p.parseTypeDecl())
		case token.DECLARE:
			p.nextToken()
			prog.Vars = append(prog.Vars, p.parseDeclareBlock()...)
		case token.FUNCAO, token.PROCEDIMENTO:
			p.nextToken()
			prog.Funcs = append(prog.Funcs, p.parseFuncDecl())
		default:
			goto body
		}
	}

body:
	if p.fatal() {
		return prog
	}
	if !p.expectPeek(token.INICIO) {
		return prog
	}
	prog.Body = p.parseStmtsUntil(token.FIM)
	p.expectPeek(token.FIM)
	return prog
}

// parseConstDecl parses "constante NOME : tipo <- valor".
func (p *Parser) parseConstDecl() *ast.ConstDecl {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	typ := p.parseTypeExpr()
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	value := p.curToken.Lexeme
	return &ast.ConstDecl{TokLine: tok.Line, Name: name, Type: typ, Value: value}
}

// parseTypeDecl parses "tipo NOME : registro ... fimregistro".
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme
	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.REGISTRO) {
		return nil
	}
	fields := p.parseFieldList(token.FIMREGISTRO)
	if !p.expectPeek(token.FIMREGISTRO) {
		return nil
	}
	return &ast.TypeDecl{TokLine: tok.Line, Name: name, Fields: fields}
}

// parseDeclareBlock parses the var-declaration lines following
// "declare", one or more "nome, nome2 : tipo" lines separated by ';'
// until the next section keyword.
func (p *Parser) parseDeclareBlock() []*ast.VarDecl {
	var decls []*ast.VarDecl
	p.nextToken() // move to first name
	decls = append(decls, p.parseVarDeclLine())
	for p.peekTokenIs(token.SEMI) {
		p.nextToken() // consume ';'
		if !isDeclStart(p.peekToken.Type) {
			break
		}
		p.nextToken()
		decls = append(decls, p.parseVarDeclLine())
	}
	return decls
}

func isDeclStart(t token.TokenType) bool {
	return t == token.IDENT
}

// parseFuncDecl parses "funcao NOME(params) : tipo inicio ... fim" or
// "procedimento NOME(params) inicio ... fim".
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	tok := p.curToken
	isFunc := tok.Type == token.FUNCAO
	endTok := token.FIM

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList()

	var retType *ast.TypeExpr
	if isFunc {
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		retType = p.parseTypeExpr()
	}

	if !p.expectPeek(token.INICIO) {
		return nil
	}
	body := p.parseStmtsUntil(endTok)
	p.expectPeek(endTok)

	return &ast.FuncDecl{TokLine: tok.Line, Name: name, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	tok := p.curToken
	// "var" marks a by-reference parameter; the reference semantics are
	// not lowered, only the declared name and type matter downstream.
	if p.curTokenIs(token.VAR) {
		p.nextToken()
		tok = p.curToken
	}
	name := p.curToken.Lexeme
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	typ := p.parseTypeExpr()
	return &ast.Param{TokLine: tok.Line, Name: name, Type: typ}
}

// parseStmtsUntil parses commands until peekToken is one of the stop
// types (a section's closing keyword or "senao").
func (p *Parser) parseStmtsUntil(stop token.TokenType, moreStop ...token.TokenType) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.fatal() {
		if p.peekTokenIs(stop) {
			break
		}
		stopped := false
		for _, s := range moreStop {
			if p.peekTokenIs(s) {
				stopped = true
				break
			}
		}
		if stopped {
			break
		}
		p.nextToken()
		if p.curTokenIs(token.SEMI) {
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.fatal() {
			break
		}
	}
	return stmts
}

// parseStmt dispatches on the current token to parse a single command.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curToken.Type {
	case token.LEIA:
		return p.parseReadStmt()
	case token.ESCREVA:
		return p.parseWriteStmt()
	case token.SE:
		return p.parseIfStmt()
	case token.CASO:
		return p.parseCaseStmt()
	case token.PARA:
		return p.parseForStmt()
	case token.ENQUANTO:
		return p.parseWhileStmt()
	case token.FACA:
		return p.parseDoUntilStmt()
	case token.RETORNE:
		return p.parseReturnStmt()
	case token.IDENT:
		return p.parseAssignOrCallStmt()
	case token.POINTER:
		return p.parseAssignOrCallStmt()
	default:
		p.syntaxError(p.curToken)
		return nil
	}
}

func (p *Parser) parseReadStmt() ast.Stmt {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var targets []string
	p.nextToken()
	targets = append(targets, p.parseIdentRef())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		targets = append(targets, p.parseIdentRef())
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.ReadStmt{TokLine: tok.Line, Targets: targets}
}

// parseIdentRef parses a dotted/indexed identifier reference, reusing
// the expression parser's composite-name logic.
func (p *Parser) parseIdentRef() string {
	expr := p.parseIdentifierOrCall()
	if id, ok := expr.(*ast.Identifier); ok {
		return id.Name
	}
	return p.curToken.Lexeme
}

func (p *Parser) parseWriteStmt() ast.Stmt {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var items []ast.Expr
	p.nextToken()
	items = append(items, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		items = append(items, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.WriteStmt{TokLine: tok.Line, Items: items}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.ENTAO) {
		return nil
	}
	then := p.parseStmtsUntil(token.SENAO, token.FIMSE)
	var elseBody []ast.Stmt
	if p.peekTokenIs(token.SENAO) {
		p.nextToken()
		elseBody = p.parseStmtsUntil(token.FIMSE)
	}
	p.expectPeek(token.FIMSE)
	return &ast.IfStmt{TokLine: tok.Line, Cond: cond, Then: then, Else: elseBody}
}

// parseCaseStmt parses "caso <expr> seja <labels>: ... senao ... fimcaso".
func (p *Parser) parseCaseStmt() ast.Stmt {
	tok := p.curToken
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(token.SEJA) {
		return nil
	}

	stmt := &ast.CaseStmt{TokLine: tok.Line, Subject: subject}
	for p.peekIsCaseLabelStart() {
		p.nextToken()
		armTok := p.curToken
		labels := []ast.CaseLabel{p.parseCaseLabel()}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			labels = append(labels, p.parseCaseLabel())
		}
		if !p.expectPeek(token.COLON) {
			return stmt
		}
		body := p.parseCaseArmBody()
		stmt.Arms = append(stmt.Arms, &ast.CaseArm{TokLine: armTok.Line, Labels: labels, Body: body})
	}

	if p.peekTokenIs(token.SENAO) {
		p.nextToken()
		stmt.Default = p.parseStmtsUntil(token.FIMCASO)
	}
	p.expectPeek(token.FIMCASO)
	return stmt
}

// peekIsCaseLabelStart reports whether peekToken begins a new "seja"
// label: a bare integer literal, or a unary-minus-negated one.
func (p *Parser) peekIsCaseLabelStart() bool {
	if p.peekTokenIs(token.NUM_INT) {
		return true
	}
	if p.peekTokenIs(token.MINUS) {
		after := p.stream.Peek(1)
		return len(after) > 0 && after[0].Type == token.NUM_INT
	}
	return false
}

// parseCaseArmBody parses one arm's command list, stopping at the next
// label, "senao" or "fimcaso" without consuming the stop token.
func (p *Parser) parseCaseArmBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.fatal() {
		if p.peekIsCaseLabelStart() || p.peekTokenIs(token.SENAO) || p.peekTokenIs(token.FIMCASO) {
			break
		}
		p.nextToken()
		if p.curTokenIs(token.SEMI) {
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.fatal() {
			break
		}
	}
	return stmts
}

// parseCaseLabel parses a literal int or a "lo..hi" range, either
// bound optionally negated by a leading unary minus.
func (p *Parser) parseCaseLabel() ast.CaseLabel {
	lo := p.parseCaseLabelBound()
	hi := lo
	if p.peekTokenIs(token.RANGE) {
		p.nextToken() // consume '..'
		p.nextToken() // move to hi (or its leading '-')
		hi = p.parseCaseLabelBound()
	}
	return ast.CaseLabel{Lo: lo, Hi: hi}
}

// parseCaseLabelBound parses one signed integer bound starting at
// curToken, advancing past the literal (and past a leading '-', if
// present) so curToken ends on the literal itself.
func (p *Parser) parseCaseLabelBound() int {
	neg := false
	if p.curTokenIs(token.MINUS) {
		neg = true
		p.nextToken()
	}
	n, _ := strconv.Atoi(p.curToken.Lexeme)
	if neg {
		n = -n
	}
	return n
}

func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	v := p.curToken.Lexeme
	if !p.expectPeek(token.DE) {
		return nil
	}
	p.nextToken()
	from := p.parseExpression(LOWEST)
	if !p.expectPeek(token.ATE) {
		return nil
	}
	p.nextToken()
	to := p.parseExpression(LOWEST)
	if !p.expectPeek(token.FACA) {
		return nil
	}
	body := p.parseStmtsUntil(token.FIMPARA)
	p.expectPeek(token.FIMPARA)
	return &ast.ForStmt{TokLine: tok.Line, Var: v, From: from, To: to, Body: body}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.FACA) {
		return nil
	}
	body := p.parseStmtsUntil(token.FIMENQUANTO)
	p.expectPeek(token.FIMENQUANTO)
	return &ast.WhileStmt{TokLine: tok.Line, Cond: cond, Body: body}
}

// parseDoUntilStmt parses "faca ... ate E".
func (p *Parser) parseDoUntilStmt() ast.Stmt {
	tok := p.curToken
	body := p.parseStmtsUntil(token.ATE)
	if !p.expectPeek(token.ATE) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	return &ast.DoUntilStmt{TokLine: tok.Line, Body: body, Cond: cond}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.curToken
	var value ast.Expr
	if !p.peekTokenIs(token.SEMI) && !isStmtTerminator(p.peekToken.Type) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}
	return &ast.ReturnStmt{TokLine: tok.Line, Value: value}
}

func isStmtTerminator(t token.TokenType) bool {
	switch t {
	case token.FIM, token.FIMSE, token.SENAO, token.FIMPARA, token.FIMENQUANTO, token.ATE, token.FIMCASO, token.EOF:
		return true
	}
	return false
}

// parseAssignOrCallStmt parses "lhs <- expr", "^lhs <- expr" or a
// bare procedure call used as a command.
func (p *Parser) parseAssignOrCallStmt() ast.Stmt {
	tok := p.curToken
	deref := false
	if p.curTokenIs(token.POINTER) {
		deref = true
		p.nextToken()
	}

	name := p.curToken.Lexeme
	if p.peekTokenIs(token.LPAREN) && !deref {
		p.nextToken() // consume '('
		args := p.parseCallArgs()
		return &ast.CallStmt{TokLine: tok.Line, Name: name, Args: args}
	}

	idExpr := p.parseIdentifierOrCall()
	if id, ok := idExpr.(*ast.Identifier); ok {
		name = id.Name
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	rhs := p.parseExpression(LOWEST)
	return &ast.AssignStmt{TokLine: tok.Line, LHSName: name, Deref: deref, RHS: rhs}
}

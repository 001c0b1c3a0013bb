// Package parser builds an ast.Program from a token stream using a
// recursive-descent parser with Pratt expression parsing:
// curToken/peekToken, prefix/infix function tables, precedence
// climbing, scaled down to LA's small expression grammar.
package parser

import (
	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/pipeline"
	"github.com/laorg/lacc/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Precedence levels, lowest to highest.
const (
	LOWEST = iota
	LOGIC     // e, ou
	RELATIONAL // = <> < > <= >=
	ADDITIVE  // + -
	MULTIPLY  // * /
	UNARY     // prefix - + nao
	CALL      // f(x)
)

var precedences = map[token.TokenType]int{
	token.E:      LOGIC,
	token.OU:     LOGIC,
	token.EQ:     RELATIONAL,
	token.NEQ:    RELATIONAL,
	token.LT:     RELATIONAL,
	token.GT:     RELATIONAL,
	token.LE:     RELATIONAL,
	token.GE:     RELATIONAL,
	token.PLUS:   ADDITIVE,
	token.MINUS:  ADDITIVE,
	token.TIMES:  MULTIPLY,
	token.DIVIDE: MULTIPLY,
}

// Parser holds parsing state for a single compilation unit.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
	sink      *diagnostics.Sink

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New returns a parser reading from stream and reporting syntactic
// diagnostics into sink.
func New(stream pipeline.TokenStream, sink *diagnostics.Sink) *Parser {
	p := &Parser{stream: stream, sink: sink}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:      p.parseIdentifierOrCall,
		token.NUM_INT:    p.parseIntLiteral,
		token.NUM_REAL:   p.parseRealLiteral,
		token.CADEIA:     p.parseStringLiteral,
		token.VERDADEIRO: p.parseBoolLiteral,
		token.FALSO:      p.parseBoolLiteral,
		token.MINUS:      p.parseUnaryExpr,
		token.PLUS:       p.parseUnaryExpr,
		token.NAO:        p.parseUnaryExpr,
		token.LPAREN:     p.parseParenExpr,
		token.POINTER:    p.parseUnaryExpr,
		token.AMP:        p.parseUnaryExpr,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:   p.parseBinaryExpr,
		token.MINUS:  p.parseBinaryExpr,
		token.TIMES:  p.parseBinaryExpr,
		token.DIVIDE: p.parseBinaryExpr,
		token.EQ:     p.parseBinaryExpr,
		token.NEQ:    p.parseBinaryExpr,
		token.LT:     p.parseBinaryExpr,
		token.GT:     p.parseBinaryExpr,
		token.LE:     p.parseBinaryExpr,
		token.GE:     p.parseBinaryExpr,
		token.E:      p.parseBinaryExpr,
		token.OU:     p.parseBinaryExpr,
	}

	// prime curToken/peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	peeked := p.stream.Peek(1)
	if len(peeked) > 0 {
		p.peekToken = peeked[0]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
	p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, otherwise
// reports a syntactic diagnostic at the offending token and halts
// further parsing: exactly one syntactic diagnostic per run, fatal.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.syntaxError(p.peekToken)
	return false
}

// syntaxError reports a syntactic diagnostic, unless the sink is
// already fatal: a lexical error upstream has already halted the
// pipeline, and the garbage ILLEGAL tokens it leaves behind in the
// stream must not cascade into a second, spurious syntactic
// diagnostic — the lexer's fatal report is always alone before
// "Fim da compilacao".
func (p *Parser) syntaxError(offending token.Token) {
	if p.sink.Fatal() {
		return
	}
	text := offending.Lexeme
	if offending.Type == token.EOF {
		text = "<EOF>"
	}
	p.sink.ReportFatal(diagnostics.PhaseParser, offending.Line, diagnostics.SyntacticMessage(text))
}

func (p *Parser) fatal() bool { return p.sink.Fatal() }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// Processor is the pipeline stage that parses ctx.TokenStream into
// ctx.AstRoot.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.TokenStream, ctx.Sink)
	ctx.AstRoot = p.ParseProgram()
	return ctx
}

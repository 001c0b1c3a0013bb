package lexer

import (
	"testing"

	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	l := New(src, sink)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || sink.Fatal() {
			break
		}
	}
	return toks, sink
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks, sink := scanAll(t, "declare x : inteiro")
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	want := []token.TokenType{token.DECLARE, token.IDENT, token.COLON, token.INTEIRO, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestAssignmentArrowAndRelational(t *testing.T) {
	toks, _ := scanAll(t, "x <- y <> 3")
	want := []token.TokenType{token.IDENT, token.ARROW, token.IDENT, token.NEQ, token.NUM_INT, token.EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestRealLiteral(t *testing.T) {
	toks, _ := scanAll(t, "3.14")
	if toks[0].Type != token.NUM_REAL || toks[0].Lexeme != "3.14" {
		t.Errorf("got %+v, want NUM_REAL 3.14", toks[0])
	}
}

func TestUnterminatedCommentIsFatal(t *testing.T) {
	_, sink := scanAll(t, "declare x { sem fim")
	if !sink.Fatal() {
		t.Fatalf("expected unterminated comment to be fatal")
	}
	want := "Linha 1: comentario nao fechado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, sink := scanAll(t, `escreva "sem fim`)
	if !sink.Fatal() {
		t.Fatalf("expected unterminated string to be fatal")
	}
	want := "Linha 1: cadeia literal nao fechada\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIllegalCharacterIsFatal(t *testing.T) {
	_, sink := scanAll(t, "x <- 1 @ 2")
	if !sink.Fatal() {
		t.Fatalf("expected illegal character to be fatal")
	}
	want := "Linha 1: @ - simbolo nao identificado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommentIsSkipped(t *testing.T) {
	toks, sink := scanAll(t, "x {isto e um comentario} <- 1")
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	want := []token.TokenType{token.IDENT, token.ARROW, token.NUM_INT, token.EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

package prettyprinter

import (
	"strings"
	"testing"

	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/lexer"
	"github.com/laorg/lacc/internal/parser"
)

func TestDumpRendersDeclarationsAndBody(t *testing.T) {
	src := "programa P\ndeclare\n\tx : inteiro\ninicio\n\tx <- 1\n\tescreva(x)\nfim\n"
	sink := diagnostics.NewSink()
	l := lexer.New(src, sink)
	p := parser.New(lexer.NewTokenStream(l), sink)
	prog := p.ParseProgram()
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}

	out := Dump(prog)
	for _, want := range []string{"(Program P", "(Var x : inteiro)", "(Assign x <- 1)", "(Escreva x)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in dump:\n%s", want, out)
		}
	}
}

package analyzer

import (
	"testing"

	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/lexer"
	"github.com/laorg/lacc/internal/parser"
	"github.com/laorg/lacc/internal/symbols"
)

func analyze(t *testing.T, src string) *diagnostics.Sink {
	t.Helper()
	sink := diagnostics.NewSink()
	l := lexer.New(src, sink)
	stream := lexer.NewTokenStream(l)
	p := parser.New(stream, sink)
	prog := p.ParseProgram()
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic before analysis: %s", sink.Render())
	}
	st := symbols.NewSymbolTable()
	New(st, sink).Analyze(prog)
	return sink
}

func TestDuplicateDeclarationReportsOnceAtSecondLine(t *testing.T) {
	src := "programa P\ndeclare\n\tx : inteiro;\n\tx : real\ninicio\nfim\n"
	sink := analyze(t, src)
	want := "Linha 4: identificador x ja declarado anteriormente\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLiteralAssignedIntegerIsIncompatible(t *testing.T) {
	src := "programa P\ndeclare\n\ts : literal\ninicio\n\ts <- 3\nfim\n"
	sink := analyze(t, src)
	want := "Linha 5: atribuicao nao compativel para s\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUndeclaredIdentifierInExpression(t *testing.T) {
	src := "programa P\ndeclare\n\ty : inteiro\ninicio\n\ty <- z + 1\nfim\n"
	sink := analyze(t, src)
	want := "Linha 5: identificador z nao declarado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReturnInsideProcedureIsRejected(t *testing.T) {
	src := "programa P\nprocedimento p()\ninicio\n\tretorne 1\nfim\ninicio\nfim\n"
	sink := analyze(t, src)
	want := "Linha 4: comando retorne nao permitido nesse escopo\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCleanProgramProducesOnlyTrailer(t *testing.T) {
	src := "programa P\ndeclare\n\tx : inteiro\ninicio\n\tx <- 1\n\tescreva(x)\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPointerDereferenceAssignmentIsCompatible(t *testing.T) {
	src := "programa P\ndeclare\n\tp : ^inteiro\ninicio\n\t^p <- 5\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAddressOfAndDereferenceInExpressions(t *testing.T) {
	src := "programa P\ndeclare\n\tp : ^inteiro;\n\tx : inteiro\ninicio\n\tp <- &x\n\tx <- ^p\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIntegerAndRealMixFreelyInAssignment(t *testing.T) {
	src := "programa P\ndeclare\n\ti : inteiro;\n\tr : real\ninicio\n\ti <- r\n\tr <- i\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRelationalRhsRequiresLogicoTarget(t *testing.T) {
	src := "programa P\ndeclare\n\tx : inteiro;\n\tok : logico\ninicio\n\tx <- x > 0\n\tok <- x > 0\nfim\n"
	sink := analyze(t, src)
	want := "Linha 6: atribuicao nao compativel para x\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRecordFieldAccessResolves(t *testing.T) {
	src := "programa P\ntipo Ponto : registro\n\tx, y : inteiro\nfimregistro\ndeclare\n\tp : Ponto\ninicio\n\tp.x <- 1\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUndeclaredRecordFieldIsReported(t *testing.T) {
	src := "programa P\ntipo Ponto : registro\n\tx, y : inteiro\nfimregistro\ndeclare\n\tp : Ponto\ninicio\n\tp.z <- 1\nfim\n"
	sink := analyze(t, src)
	want := "Linha 8: identificador p.z nao declarado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFunctionCallArityMismatch(t *testing.T) {
	src := "programa P\nfuncao dobro(n: inteiro) : inteiro\ninicio\n\tretorne n * 2\nfim\ninicio\n\tescreva(dobro(1, 2))\nfim\n"
	sink := analyze(t, src)
	want := "Linha 7: incompatibilidade de parametros na chamada de dobro\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFunctionCallArgumentTypeMismatch(t *testing.T) {
	src := "programa P\ndeclare\n\ts : literal\nfuncao dobro(n: inteiro) : inteiro\ninicio\n\tretorne n * 2\nfim\ninicio\n\tescreva(dobro(s))\nfim\n"
	sink := analyze(t, src)
	want := "Linha 9: incompatibilidade de parametros na chamada de dobro\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArrayElementAssignmentResolves(t *testing.T) {
	src := "programa P\ndeclare\n\tvet[10] : inteiro;\n\ti : inteiro\ninicio\n\tvet[i] <- 0\nfim\n"
	sink := analyze(t, src)
	want := "Fim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnresolvedLhsSuppressesAssignCheckButNotRhs(t *testing.T) {
	src := "programa P\ndeclare\n\ty : inteiro\ninicio\n\tnope <- y\nfim\n"
	sink := analyze(t, src)
	want := "Linha 5: identificador nope nao declarado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

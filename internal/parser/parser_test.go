package parser

import (
	"testing"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	l := lexer.New(src, sink)
	stream := lexer.NewTokenStream(l)
	p := New(stream, sink)
	prog := p.ParseProgram()
	return prog, sink
}

const helloProgram = `
programa Ola
declare
	x : inteiro
inicio
	x <- 1
	escreva(x)
fim
`

func TestParseProgramHeaderAndBody(t *testing.T) {
	prog, sink := parseSource(t, helloProgram)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	if prog.Name != "Ola" {
		t.Errorf("got program name %q, want Ola", prog.Name)
	}
	if len(prog.Vars) != 1 || prog.Vars[0].Names[0] != "x" {
		t.Fatalf("unexpected vars: %+v", prog.Vars)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(prog.Body), prog.Body)
	}
	if _, ok := prog.Body[0].(*ast.AssignStmt); !ok {
		t.Errorf("stmt 0 is %T, want *ast.AssignStmt", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ast.WriteStmt); !ok {
		t.Errorf("stmt 1 is %T, want *ast.WriteStmt", prog.Body[1])
	}
}

func TestParseConstAndTypeDecl(t *testing.T) {
	src := `
programa P
constante MAX : inteiro <- 10
tipo Ponto : registro
	x, y : real
fimregistro
declare
	p : Ponto
inicio
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	if len(prog.Constants) != 1 || prog.Constants[0].Name != "MAX" || prog.Constants[0].Value != "10" {
		t.Fatalf("unexpected constants: %+v", prog.Constants)
	}
	if len(prog.Types) != 1 || prog.Types[0].Name != "Ponto" || len(prog.Types[0].Fields) != 1 {
		t.Fatalf("unexpected types: %+v", prog.Types)
	}
	if prog.Types[0].Fields[0].Names[0] != "x" || prog.Types[0].Fields[0].Names[1] != "y" {
		t.Fatalf("unexpected record fields: %+v", prog.Types[0].Fields[0])
	}
	if prog.Vars[0].Type.Basic != "Ponto" {
		t.Fatalf("expected p's type to reference Ponto, got %+v", prog.Vars[0].Type)
	}
}

func TestParseArrayAndPointerDecls(t *testing.T) {
	src := `
programa P
declare
	vet[10] : inteiro;
	p : ^inteiro
inicio
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	if len(prog.Vars) != 2 {
		t.Fatalf("got %d var decls, want 2: %+v", len(prog.Vars), prog.Vars)
	}
	if prog.Vars[0].Names[0] != "vet[10]" {
		t.Errorf("got array name %q, want vet[10]", prog.Vars[0].Names[0])
	}
	if !prog.Vars[1].Type.IsPointer() || prog.Vars[1].Type.PointeeName() != "inteiro" {
		t.Errorf("unexpected pointer type: %+v", prog.Vars[1].Type)
	}
}

func TestParseFuncDecl(t *testing.T) {
	src := `
programa P
funcao dobro(n: inteiro) : inteiro
inicio
	retorne n * 2
fim
inicio
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	if len(prog.Funcs) != 1 {
		t.Fatalf("got %d funcs, want 1", len(prog.Funcs))
	}
	fn := prog.Funcs[0]
	if fn.Name != "dobro" || fn.IsProcedure() {
		t.Fatalf("unexpected func decl: %+v", fn)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "n" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ReturnStmt", fn.Body[0])
	}
	if ret.Value == nil {
		t.Fatalf("expected a return value")
	}
}

func TestParseIfSenao(t *testing.T) {
	src := `
programa P
declare
	x : inteiro
inicio
	se x > 0 entao
		escreva(x)
	senao
		x <- 0
	fimse
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	ifs, ok := prog.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.IfStmt", prog.Body[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("unexpected if branches: then=%d else=%d", len(ifs.Then), len(ifs.Else))
	}
	bin, ok := ifs.Cond.(*ast.BinaryExpr)
	if !ok || !bin.IsRelational() {
		t.Fatalf("unexpected condition: %+v", ifs.Cond)
	}
}

func TestParseCaseWithRangeAndDefault(t *testing.T) {
	src := `
programa P
declare
	x : inteiro
inicio
	caso x seja
		1, 2..5:
			escreva(x)
		senao
			x <- 0
	fimcaso
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	cs, ok := prog.Body[0].(*ast.CaseStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.CaseStmt", prog.Body[0])
	}
	if len(cs.Arms) != 1 {
		t.Fatalf("got %d arms, want 1", len(cs.Arms))
	}
	arm := cs.Arms[0]
	if len(arm.Labels) != 2 {
		t.Fatalf("got %d labels, want 2: %+v", len(arm.Labels), arm.Labels)
	}
	if arm.Labels[0].Lo != 1 || arm.Labels[0].Hi != 1 {
		t.Errorf("unexpected first label: %+v", arm.Labels[0])
	}
	if arm.Labels[1].Lo != 2 || arm.Labels[1].Hi != 5 {
		t.Errorf("unexpected range label: %+v", arm.Labels[1])
	}
	if len(cs.Default) != 1 {
		t.Fatalf("unexpected default arm: %+v", cs.Default)
	}
}

func TestParseCaseWithNegativeLabels(t *testing.T) {
	src := `
programa P
declare
	x : inteiro
inicio
	caso x seja
		-3..-1:
			escreva(x)
		0:
			escreva(0)
	fimcaso
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	cs, ok := prog.Body[0].(*ast.CaseStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.CaseStmt", prog.Body[0])
	}
	if len(cs.Arms) != 2 {
		t.Fatalf("got %d arms, want 2", len(cs.Arms))
	}
	if got := cs.Arms[0].Labels[0]; got.Lo != -3 || got.Hi != -1 {
		t.Errorf("unexpected negative range label: %+v", got)
	}
	if got := cs.Arms[1].Labels[0]; got.Lo != 0 || got.Hi != 0 {
		t.Errorf("unexpected second arm label: %+v", got)
	}
}

func TestParseForAndWhile(t *testing.T) {
	src := `
programa P
declare
	i : inteiro
inicio
	para i de 1 ate 10 faca
		escreva(i)
	fimpara
	enquanto i > 0 faca
		i <- i - 1
	fimenquanto
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	forStmt, ok := prog.Body[0].(*ast.ForStmt)
	if !ok || forStmt.Var != "i" {
		t.Fatalf("unexpected for stmt: %+v", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ast.WhileStmt); !ok {
		t.Fatalf("body[1] is %T, want *ast.WhileStmt", prog.Body[1])
	}
}

func TestParseDoUntilPreservesInvertedCondition(t *testing.T) {
	src := `
programa P
declare
	i : inteiro
inicio
	faca
		i <- i + 1
	ate i = 10
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	du, ok := prog.Body[0].(*ast.DoUntilStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.DoUntilStmt", prog.Body[0])
	}
	if len(du.Body) != 1 {
		t.Fatalf("unexpected body: %+v", du.Body)
	}
	bin, ok := du.Cond.(*ast.BinaryExpr)
	if !ok || bin.Op != "=" {
		t.Fatalf("unexpected condition: %+v", du.Cond)
	}
}

func TestParseProcedureCallAndDottedIdentifier(t *testing.T) {
	src := `
programa P
declare
	p : Ponto
inicio
	inicializa(p)
	p.x <- 1
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	call, ok := prog.Body[0].(*ast.CallStmt)
	if !ok || call.Name != "inicializa" || len(call.Args) != 1 {
		t.Fatalf("unexpected call stmt: %+v", prog.Body[0])
	}
	assign, ok := prog.Body[1].(*ast.AssignStmt)
	if !ok || assign.LHSName != "p.x" {
		t.Fatalf("unexpected assign stmt: %+v", prog.Body[1])
	}
}

func TestParsePointerDereferenceAssignment(t *testing.T) {
	src := `
programa P
declare
	p : ^inteiro
inicio
	^p <- 5
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	assign, ok := prog.Body[0].(*ast.AssignStmt)
	if !ok || !assign.Deref || assign.LHSName != "p" {
		t.Fatalf("unexpected assign stmt: %+v", prog.Body[0])
	}
}

func TestParseIndexedAssignment(t *testing.T) {
	src := `
programa P
declare
	vet[10] : inteiro;
	i : inteiro
inicio
	vet[i] <- 0
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	assign, ok := prog.Body[0].(*ast.AssignStmt)
	if !ok || assign.LHSName != "vet[i]" {
		t.Fatalf("unexpected assign stmt: %+v", prog.Body[0])
	}
}

func TestMissingFimIsFatalSyntaxError(t *testing.T) {
	src := `
programa P
inicio
	x <- 1
`
	_, sink := parseSource(t, src)
	if !sink.Fatal() {
		t.Fatalf("expected a missing fim to produce a fatal syntax error")
	}
}

func TestReadStmtMultipleTargets(t *testing.T) {
	src := `
programa P
declare
	a, b : inteiro
inicio
	leia(a, b)
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	read, ok := prog.Body[0].(*ast.ReadStmt)
	if !ok || len(read.Targets) != 2 || read.Targets[0] != "a" || read.Targets[1] != "b" {
		t.Fatalf("unexpected read stmt: %+v", prog.Body[0])
	}
}

func TestExpressionPrecedence(t *testing.T) {
	src := `
programa P
declare
	x : inteiro
inicio
	x <- 1 + 2 * 3
fim
`
	prog, sink := parseSource(t, src)
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostic: %s", sink.Render())
	}
	assign := prog.Body[0].(*ast.AssignStmt)
	bin, ok := assign.RHS.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %+v", assign.RHS)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected nested '*', got %+v", bin.Right)
	}
}

// TestFatalLexicalErrorSuppressesSyntacticDiagnostic reproduces the
// scenario where an illegal character appears as an expression operand:
// the lexer's fatal report must be the only diagnostic line before the
// "Fim da compilacao" trailer, since finding no prefix-parse function
// for the resulting ILLEGAL token would otherwise also report a
// syntactic diagnostic.
func TestFatalLexicalErrorSuppressesSyntacticDiagnostic(t *testing.T) {
	src := "programa P\ndeclare\n\tx : inteiro\ninicio\n\tx <- @\nfim\n"
	_, sink := parseSource(t, src)
	if !sink.Fatal() {
		t.Fatalf("expected a fatal diagnostic")
	}
	want := "Linha 5: @ - simbolo nao identificado\nFim da compilacao\n"
	if got := sink.Render(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// Package prettyprinter dumps a parsed ast.Program as an indented
// S-expression tree, used by cmd/lacc's "-dump-ast" debug flag to
// inspect the hand-rolled parser's output while it is being developed.
//
// Indentation strategy: a bytes.Buffer, one write per node, two spaces
// per nesting level, walking LA's small node set with a type switch.
package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/laorg/lacc/internal/ast"
)

// TreePrinter accumulates an indented dump of an AST.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

// Dump renders prog as a complete indented tree, the convenience
// entry point cmd/lacc calls.
func Dump(prog *ast.Program) string {
	p := &TreePrinter{}
	p.printProgram(prog)
	return p.buf.String()
}

func (p *TreePrinter) String() string { return p.buf.String() }

func (p *TreePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *TreePrinter) printProgram(prog *ast.Program) {
	if prog == nil {
		p.line("(Program <nil>)")
		return
	}
	p.line("(Program %s", prog.Name)
	p.nested(func() {
		for _, c := range prog.Constants {
			p.printConstDecl(c)
		}
		for _, t := range prog.Types {
			p.printTypeDecl(t)
		}
		for _, v := range prog.Vars {
			p.printVarDecl(v)
		}
		for _, f := range prog.Funcs {
			p.printFuncDecl(f)
		}
		p.line("(Body")
		p.nested(func() { p.printStmts(prog.Body) })
		p.line(")")
	})
	p.line(")")
}

func (p *TreePrinter) printConstDecl(c *ast.ConstDecl) {
	p.line("(Const %s : %s <- %s)", c.Name, typeText(c.Type), c.Value)
}

func (p *TreePrinter) printTypeDecl(t *ast.TypeDecl) {
	p.line("(Tipo %s", t.Name)
	p.nested(func() {
		for _, f := range t.Fields {
			p.printVarDecl(f)
		}
	})
	p.line(")")
}

func (p *TreePrinter) printVarDecl(v *ast.VarDecl) {
	p.line("(Var %s : %s)", strings.Join(v.Names, ", "), typeText(v.Type))
}

func (p *TreePrinter) printFuncDecl(f *ast.FuncDecl) {
	kind := "Funcao"
	ret := typeText(f.ReturnType)
	if f.IsProcedure() {
		kind = "Procedimento"
		ret = "-"
	}
	p.line("(%s %s(%s) : %s", kind, f.Name, paramsText(f.Params), ret)
	p.nested(func() { p.printStmts(f.Body) })
	p.line(")")
}

func typeText(t *ast.TypeExpr) string {
	if t == nil {
		return "?"
	}
	if t.IsRecord() {
		return "registro"
	}
	return t.Basic
}

func paramsText(params []*ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ":" + typeText(p.Type)
	}
	return strings.Join(parts, ", ")
}

func (p *TreePrinter) printStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

// printStmt dispatches by type switch, the same idiom the analyzer and
// emitter use to walk LA's small statement set.
func (p *TreePrinter) printStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		lhs := n.LHSName
		if n.Deref {
			lhs = "^" + lhs
		}
		p.line("(Assign %s <- %s)", lhs, n.RHS.Text())
	case *ast.ReadStmt:
		p.line("(Leia %s)", strings.Join(n.Targets, ", "))
	case *ast.WriteStmt:
		items := make([]string, len(n.Items))
		for i, it := range n.Items {
			items[i] = it.Text()
		}
		p.line("(Escreva %s)", strings.Join(items, ", "))
	case *ast.IfStmt:
		p.line("(Se %s", n.Cond.Text())
		p.nested(func() { p.printStmts(n.Then) })
		if len(n.Else) > 0 {
			p.line("Senao")
			p.nested(func() { p.printStmts(n.Else) })
		}
		p.line(")")
	case *ast.CaseStmt:
		p.line("(Caso %s", n.Subject.Text())
		p.nested(func() {
			for _, arm := range n.Arms {
				p.line("(Seja %s", labelsText(arm.Labels))
				p.nested(func() { p.printStmts(arm.Body) })
				p.line(")")
			}
			if len(n.Default) > 0 {
				p.line("Senao")
				p.nested(func() { p.printStmts(n.Default) })
			}
		})
		p.line(")")
	case *ast.ForStmt:
		p.line("(Para %s de %s ate %s", n.Var, n.From.Text(), n.To.Text())
		p.nested(func() { p.printStmts(n.Body) })
		p.line(")")
	case *ast.WhileStmt:
		p.line("(Enquanto %s", n.Cond.Text())
		p.nested(func() { p.printStmts(n.Body) })
		p.line(")")
	case *ast.DoUntilStmt:
		p.line("(Faca")
		p.nested(func() { p.printStmts(n.Body) })
		p.line("Ate %s)", n.Cond.Text())
	case *ast.ReturnStmt:
		if n.Value == nil {
			p.line("(Retorne)")
		} else {
			p.line("(Retorne %s)", n.Value.Text())
		}
	case *ast.CallStmt:
		p.line("(Call %s(%s))", n.Name, argsText(n.Args))
	default:
		p.line("(? %T)", s)
	}
}

func labelsText(labels []ast.CaseLabel) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if l.Lo == l.Hi {
			parts[i] = fmt.Sprintf("%d", l.Lo)
		} else {
			parts[i] = fmt.Sprintf("%d..%d", l.Lo, l.Hi)
		}
	}
	return strings.Join(parts, ", ")
}

func argsText(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Text()
	}
	return strings.Join(parts, ", ")
}

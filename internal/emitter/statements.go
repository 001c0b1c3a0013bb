package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/typesystem"
)

// emitBlock writes every statement in stmts at the current indent
// level.
func (e *Emitter) emitBlock(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

// emitStmt dispatches on the command kind via a plain type switch,
// matching the analyzer's own dispatch style.
func (e *Emitter) emitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		e.emitAssignStmt(n)
	case *ast.ReadStmt:
		e.emitReadStmt(n)
	case *ast.WriteStmt:
		e.emitWriteStmt(n)
	case *ast.IfStmt:
		e.emitIfStmt(n)
	case *ast.CaseStmt:
		e.emitCaseStmt(n)
	case *ast.ForStmt:
		e.emitForStmt(n)
	case *ast.WhileStmt:
		e.emitWhileStmt(n)
	case *ast.DoUntilStmt:
		e.emitDoUntilStmt(n)
	case *ast.ReturnStmt:
		e.emitReturnStmt(n)
	case *ast.CallStmt:
		e.emitCallStmt(n)
	}
}

// emitAssignStmt implements the assignment rules: a
// pointer-dereferencing LHS ("^p <- e") emits "*p = e;", a
// literal-typed field/variable assignment emits "strcpy(lhs, rhs);",
// everything else emits a plain "lhs = rhs;".
func (e *Emitter) emitAssignStmt(n *ast.AssignStmt) {
	rhs := e.exprText(n.RHS)

	if n.Deref {
		e.writeLine(fmt.Sprintf("*%s = %s;", n.LHSName, rhs))
		return
	}

	if lhsType, err := e.symbols.Resolve(n.LHSName); err == nil {
		if b, ok := lhsType.(typesystem.TBasic); ok && b.Name == typesystem.Literal {
			e.writeLine(fmt.Sprintf("strcpy(%s, %s);", n.LHSName, rhs))
			return
		}
	}
	e.writeLine(fmt.Sprintf("%s = %s;", n.LHSName, rhs))
}

// emitReadStmt implements "leia": a literal target reads with gets (no
// '&', since a char[80] buffer already decays to a pointer); every
// other target reads with scanf using its type's format.
func (e *Emitter) emitReadStmt(n *ast.ReadStmt) {
	for _, target := range n.Targets {
		t, err := e.symbols.Resolve(target)
		if err == nil {
			if b, ok := t.(typesystem.TBasic); ok && b.Name == typesystem.Literal {
				e.writeLine(fmt.Sprintf("gets(%s);", target))
				continue
			}
			if b, ok := typesystem.BasicName(t); ok {
				e.writeLine(fmt.Sprintf("scanf(\"%s\", &%s);", formatSpecOf(b), target))
				continue
			}
		}
		e.writeLine(fmt.Sprintf("scanf(\"%%d\", &%s);", target))
	}
}

// emitWriteStmt implements "escreva": one printf per comma-separated
// item; a string literal is emitted inline with no conversion.
func (e *Emitter) emitWriteStmt(n *ast.WriteStmt) {
	for _, item := range n.Items {
		if lit := stringLiteralOf(item); lit != nil {
			e.writeLine(fmt.Sprintf("printf(%s);", lit.Raw))
			continue
		}
		fmtSpec := e.writeFormat(item)
		e.writeLine(fmt.Sprintf("printf(\"%s\", %s);", fmtSpec, e.exprText(item)))
	}
}

// stringLiteralOf unwraps parentheses and returns the string literal
// item resolves to, or nil when item is not a bare string literal.
func stringLiteralOf(item ast.Expr) *ast.StringLit {
	switch n := item.(type) {
	case *ast.StringLit:
		return n
	case *ast.ParenExpr:
		return stringLiteralOf(n.Inner)
	}
	return nil
}

func (e *Emitter) emitIfStmt(n *ast.IfStmt) {
	e.writeLine(fmt.Sprintf("if (%s) {", e.exprText(n.Cond)))
	e.indent++
	e.emitBlock(n.Then)
	e.indent--
	if len(n.Else) > 0 {
		e.writeLine("} else {")
		e.indent++
		e.emitBlock(n.Else)
		e.indent--
	}
	e.writeLine("}")
}

// emitCaseStmt implements "caso...seja...senao...fimcaso": each arm's
// labels expand to consecutive "case k:" lines (a range "lo..hi"
// becomes hi-lo+1 labels) followed by the arm's body and a "break;";
// the default arm has no trailing break.
func (e *Emitter) emitCaseStmt(n *ast.CaseStmt) {
	e.writeLine(fmt.Sprintf("switch (%s) {", e.exprText(n.Subject)))
	e.indent++
	for _, arm := range n.Arms {
		for _, label := range arm.Labels {
			for k := label.Lo; k <= label.Hi; k++ {
				e.writeLine(fmt.Sprintf("case %s:", strconv.Itoa(k)))
			}
		}
		e.indent++
		e.emitBlock(arm.Body)
		e.writeLine("break;")
		e.indent--
	}
	if len(n.Default) > 0 {
		e.writeLine("default:")
		e.indent++
		e.emitBlock(n.Default)
		e.indent--
	}
	e.indent--
	e.writeLine("}")
}

func (e *Emitter) emitForStmt(n *ast.ForStmt) {
	from := e.exprText(n.From)
	to := e.exprText(n.To)
	e.writeLine(fmt.Sprintf("for (%s = %s; %s <= %s; %s++) {", n.Var, from, n.Var, to, n.Var))
	e.indent++
	e.emitBlock(n.Body)
	e.indent--
	e.writeLine("}")
}

func (e *Emitter) emitWhileStmt(n *ast.WhileStmt) {
	e.writeLine(fmt.Sprintf("while (%s) {", e.exprText(n.Cond)))
	e.indent++
	e.emitBlock(n.Body)
	e.indent--
	e.writeLine("}")
}

// emitDoUntilStmt emits "do { ... } while (E);" with the condition
// unmodified — "ate" is not negated.
func (e *Emitter) emitDoUntilStmt(n *ast.DoUntilStmt) {
	e.writeLine("do {")
	e.indent++
	e.emitBlock(n.Body)
	e.indent--
	e.writeLine(fmt.Sprintf("} while (%s);", e.exprText(n.Cond)))
}

func (e *Emitter) emitReturnStmt(n *ast.ReturnStmt) {
	if n.Value == nil {
		e.writeLine("return;")
		return
	}
	e.writeLine(fmt.Sprintf("return %s;", e.exprText(n.Value)))
}

func (e *Emitter) emitCallStmt(n *ast.CallStmt) {
	e.writeLine(fmt.Sprintf("%s(%s);", n.Name, e.joinArgs(n.Args)))
}

func (e *Emitter) joinArgs(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.exprText(a)
	}
	return strings.Join(parts, ", ")
}

package emitter

import (
	"regexp"
	"strings"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/config"
	"github.com/laorg/lacc/internal/typesystem"
)

// exprText renders e's C form by taking its verbatim LA text and
// applying the operator-translation table textually: a typed-AST
// translation would be more direct, but this rewrites the source text
// in place, guarding the "="->"==" rewrite against "<="/">=".
func (e *Emitter) exprText(expr ast.Expr) string {
	return rewriteOperators(expr.Text())
}

// rewriteOperators applies the operator table to raw LA expression
// text: "<=" and ">=" pass through unchanged, a lone "="
// becomes "==", "<>" becomes "!=", a "^" dereference becomes "*", and
// the word operators "nao"/"e"/"ou" become "!"/"&&"/"||".
func rewriteOperators(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "<="):
			b.WriteString("<=")
			i += 2
		case strings.HasPrefix(s[i:], ">="):
			b.WriteString(">=")
			i += 2
		case strings.HasPrefix(s[i:], "<>"):
			b.WriteString("!=")
			i += 2
		case s[i] == '=':
			b.WriteString("==")
			i++
		case s[i] == '^':
			b.WriteByte('*')
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	out := b.String()
	out = wordBoundaryNao.ReplaceAllString(out, "!")
	out = wordBoundaryE.ReplaceAllString(out, "&&")
	out = wordBoundaryOu.ReplaceAllString(out, "||")
	return out
}

var (
	wordBoundaryNao = regexp.MustCompile(`\bnao\b`)
	wordBoundaryE   = regexp.MustCompile(`\be\b`)
	wordBoundaryOu  = regexp.MustCompile(`\bou\b`)
)

// writeFormat selects the printf conversion for one escreva argument
// (string literals never reach here — emitWriteStmt prints those
// inline): a bare identifier (including dotted/indexed forms, folded
// into ast.Identifier per the parser's contract) uses its type's
// format; a function call uses the function's return-type format; an
// expression is classified relational/logical -> "%d", arithmetic ->
// "%f" if any participating identifier/parameter is real, else "%d".
func (e *Emitter) writeFormat(item ast.Expr) string {
	switch n := item.(type) {
	case *ast.Identifier:
		if t, err := e.symbols.Resolve(n.Name); err == nil {
			if b, ok := typesystem.BasicName(t); ok {
				return formatSpecOf(b)
			}
		}
		return "%d"
	case *ast.CallExpr:
		if fn, ok := e.symbols.LookupFunction(n.Name); ok && fn.ReturnType != nil {
			if b, ok := typesystem.BasicName(fn.ReturnType); ok {
				return formatSpecOf(b)
			}
		}
		return "%d"
	case *ast.ParenExpr:
		return e.writeFormat(n.Inner)
	case *ast.RealLit:
		return "%f"
	case *ast.UnaryExpr:
		if n.IsLogical() {
			return "%d"
		}
		return e.arithmeticFormat(n)
	case *ast.BinaryExpr:
		if n.IsRelational() || n.IsLogical() {
			return "%d"
		}
		return e.arithmeticFormat(n)
	}
	return "%d"
}

func formatSpecOf(basicName string) string {
	if f, ok := config.FormatSpecOf[basicName]; ok {
		return f
	}
	return "%d"
}

// arithmeticFormat implements the "arithmetic -> %f if any
// participating identifier/parameter is real, else %d" rule by
// scanning every identifier leaf of the expression tree.
func (e *Emitter) arithmeticFormat(expr ast.Expr) string {
	if e.anyOperandIsReal(expr) {
		return "%f"
	}
	return "%d"
}

func (e *Emitter) anyOperandIsReal(expr ast.Expr) bool {
	switch n := expr.(type) {
	case *ast.Identifier:
		t, err := e.symbols.Resolve(n.Name)
		if err != nil {
			return false
		}
		b, ok := typesystem.BasicName(t)
		return ok && b == typesystem.RealT
	case *ast.RealLit:
		return true
	case *ast.CallExpr:
		fn, ok := e.symbols.LookupFunction(n.Name)
		if !ok || fn.ReturnType == nil {
			return false
		}
		b, ok := typesystem.BasicName(fn.ReturnType)
		return ok && b == typesystem.RealT
	case *ast.BinaryExpr:
		return e.anyOperandIsReal(n.Left) || e.anyOperandIsReal(n.Right)
	case *ast.UnaryExpr:
		return e.anyOperandIsReal(n.Operand)
	case *ast.ParenExpr:
		return e.anyOperandIsReal(n.Inner)
	}
	return false
}

package analyzer

import (
	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/typesystem"
)

// checkUses walks e reporting every unresolved identifier and every
// function-call arity/argument-type mismatch it contains. It is
// the generic walk used for conditions, escreva items, loop bounds,
// case subjects and (via checkAssignStmt) the RHS of an assignment —
// anywhere an expression occurs that isn't itself being leaf-checked
// against a target type.
func (a *Analyzer) checkUses(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Identifier:
		if _, err := a.symbolTable.Resolve(n.Name); err != nil {
			a.report(n.TokLine, msgIdentNotDeclared(n.Name))
		}
	case *ast.CallExpr:
		a.checkCallArgs(n.Name, n.Args, n.TokLine)
	case *ast.UnaryExpr:
		a.checkUses(n.Operand)
	case *ast.BinaryExpr:
		a.checkUses(n.Left)
		a.checkUses(n.Right)
	case *ast.ParenExpr:
		a.checkUses(n.Inner)
	}
}

// checkCallArgs enforces the call contract: argument count must equal
// parameter count, and every bare identifier argument's declared type
// must equal the corresponding parameter's declared type, positionally.
// Composite expressions and nested calls are not type-checked.
func (a *Analyzer) checkCallArgs(name string, args []ast.Expr, line int) {
	for _, arg := range args {
		a.checkUses(arg)
	}

	fn, ok := a.symbolTable.LookupFunction(name)
	if !ok {
		a.report(line, msgIdentNotDeclared(name))
		return
	}

	if len(args) != len(fn.Params) {
		a.report(line, msgCallArity(name))
		return
	}

	for i, arg := range args {
		id, ok := arg.(*ast.Identifier)
		if !ok {
			continue
		}
		argType, err := a.symbolTable.Resolve(id.Name)
		if err != nil {
			continue
		}
		if !sameType(argType, fn.Params[i].Type) {
			a.report(line, msgCallArity(name))
		}
	}
}

func sameType(a, b typesystem.Type) bool {
	return a.String() == b.String()
}

// checkAssignCompat implements the assignment-compatibility matrix,
// walking every leaf of rhs and comparing it to lhsType. A single
// assignment may produce multiple diagnostics, one per incompatible
// leaf.
//
// A relational/logical right-hand side is additionally checked as a
// whole: when rhs contains a comparison, a logical conjunction/
// disjunction, a "nao" negation, or a boolean literal anywhere in its
// structure, lhs must itself be logico or the assignment is rejected,
// reported once for the top-level expression.
func (a *Analyzer) checkAssignCompat(rhs ast.Expr, lhsType typesystem.Type, lhsText string, line int) {
	if hasRelationalOrLogical(rhs) {
		if !isLogico(lhsType) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	}
	a.checkAssignLeaves(rhs, lhsType, lhsText, line)
}

func (a *Analyzer) checkAssignLeaves(e ast.Expr, lhsType typesystem.Type, lhsText string, line int) {
	switch n := e.(type) {
	case *ast.BinaryExpr:
		if n.IsRelational() || n.IsLogical() {
			// A comparison/conjunction's operands are compared to each
			// other, not to lhs; the top-level relational/logical rule
			// in checkAssignCompat already covers this subtree.
			return
		}
		a.checkAssignLeaves(n.Left, lhsType, lhsText, line)
		a.checkAssignLeaves(n.Right, lhsType, lhsText, line)
	case *ast.UnaryExpr:
		if n.IsLogical() {
			return
		}
		a.checkAssignLeaves(n.Operand, lhsType, lhsText, line)
	case *ast.ParenExpr:
		a.checkAssignLeaves(n.Inner, lhsType, lhsText, line)
	case *ast.IntLit:
		if !acceptsNumericLiteral(lhsType) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	case *ast.RealLit:
		if !acceptsNumericLiteral(lhsType) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	case *ast.StringLit:
		if !isBasicNamed(lhsType, typesystem.Literal) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	case *ast.BoolLit:
		// Covered by the top-level relational/logical rule in
		// checkAssignCompat, which already reported a non-logico lhs.
		return
	case *ast.Identifier:
		rhsType, err := a.symbolTable.Resolve(n.Name)
		if err != nil {
			return
		}
		if !acceptsIdentifierType(lhsType, rhsType) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	case *ast.CallExpr:
		fn, ok := a.symbolTable.LookupFunction(n.Name)
		if !ok || fn.ReturnType == nil {
			return
		}
		if !acceptsIdentifierType(lhsType, fn.ReturnType) {
			a.report(line, msgAssignIncompatible(lhsText))
		}
	}
}

func hasRelationalOrLogical(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.BoolLit:
		return true
	case *ast.BinaryExpr:
		if n.IsRelational() || n.IsLogical() {
			return true
		}
		return hasRelationalOrLogical(n.Left) || hasRelationalOrLogical(n.Right)
	case *ast.UnaryExpr:
		if n.IsLogical() {
			return true
		}
		return hasRelationalOrLogical(n.Operand)
	case *ast.ParenExpr:
		return hasRelationalOrLogical(n.Inner)
	}
	return false
}

func isLogico(t typesystem.Type) bool {
	return isBasicNamed(t, typesystem.Logico)
}

func isBasicNamed(t typesystem.Type, name string) bool {
	b, ok := typesystem.BasicName(t)
	return ok && b == name
}

// acceptsNumericLiteral implements the integer/real-literal leaf rule:
// accepted if lhs (after stripping one pointer indirection) is inteiro
// or real.
func acceptsNumericLiteral(lhsType typesystem.Type) bool {
	b, ok := typesystem.BasicName(lhsType)
	return ok && typesystem.IsNumericName(b)
}

// acceptsIdentifierType implements the identifier-leaf rule: accepted
// if rhsType is lhsType or logico, or if both sides are numeric
// (inteiro/real mix freely in either direction).
func acceptsIdentifierType(lhsType, rhsType typesystem.Type) bool {
	if sameType(lhsType, rhsType) {
		return true
	}
	if isLogico(rhsType) {
		return true
	}
	lb, lok := typesystem.BasicName(lhsType)
	rb, rok := typesystem.BasicName(rhsType)
	if lok && rok && typesystem.IsNumericName(lb) && typesystem.IsNumericName(rb) {
		return true
	}
	return false
}

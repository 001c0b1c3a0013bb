package analyzer

import (
	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/typesystem"
)

// checkBlock checks every statement in order; semantic errors never
// stop the walk — they accumulate and the checker continues.
func (a *Analyzer) checkBlock(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.checkStmt(s)
	}
}

// checkStmt dispatches on the command kind via a plain type switch —
// LA's node set is small enough that this reads more directly than a
// Visitor/Accept double dispatch.
func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		a.checkAssignStmt(n)
	case *ast.ReadStmt:
		a.checkReadStmt(n)
	case *ast.WriteStmt:
		for _, item := range n.Items {
			a.checkUses(item)
		}
	case *ast.IfStmt:
		a.checkUses(n.Cond)
		a.checkBlock(n.Then)
		a.checkBlock(n.Else)
	case *ast.CaseStmt:
		a.checkUses(n.Subject)
		for _, arm := range n.Arms {
			a.checkBlock(arm.Body)
		}
		a.checkBlock(n.Default)
	case *ast.ForStmt:
		if _, err := a.symbolTable.Resolve(n.Var); err != nil {
			a.report(n.TokLine, msgIdentNotDeclared(n.Var))
		}
		a.checkUses(n.From)
		a.checkUses(n.To)
		a.checkBlock(n.Body)
	case *ast.WhileStmt:
		a.checkUses(n.Cond)
		a.checkBlock(n.Body)
	case *ast.DoUntilStmt:
		a.checkBlock(n.Body)
		a.checkUses(n.Cond)
	case *ast.ReturnStmt:
		a.checkReturnStmt(n)
	case *ast.CallStmt:
		a.checkCallArgs(n.Name, n.Args, n.TokLine)
	}
}

func (a *Analyzer) checkReadStmt(n *ast.ReadStmt) {
	for _, target := range n.Targets {
		if _, err := a.symbolTable.Resolve(target); err != nil {
			a.report(n.TokLine, msgIdentNotDeclared(target))
		}
	}
}

func (a *Analyzer) checkReturnStmt(n *ast.ReturnStmt) {
	if a.curFuncIsProcedure && n.Value != nil {
		a.report(n.TokLine, msgReturnNotAllowed)
		return
	}
	if n.Value != nil {
		a.checkUses(n.Value)
	}
}

// checkAssignStmt implements the assignment contract. lhsText is the
// textual LHS (prefixed with "^" when the
// assignment dereferences a pointer) used in diagnostics; the bare
// LHSName is what goes through the dotted/indexed resolution rule. An
// unresolved lhs suppresses the
// whole check for this statement, but the RHS is still walked for its
// own identifier/call-site diagnostics.
func (a *Analyzer) checkAssignStmt(n *ast.AssignStmt) {
	a.checkUses(n.RHS)

	lhsText := n.LHSName
	if n.Deref {
		lhsText = "^" + lhsText
	}

	lhsType, err := a.symbolTable.Resolve(n.LHSName)
	if err != nil {
		a.report(n.TokLine, msgIdentNotDeclared(n.LHSName))
		return
	}
	if n.Deref {
		ptr, ok := lhsType.(typesystem.TPointer)
		if !ok {
			return
		}
		lhsType = ptr.Elem
	}

	a.checkAssignCompat(n.RHS, lhsType, lhsText, n.TokLine)
}

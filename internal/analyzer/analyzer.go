// Package analyzer is the semantic checker: a single tree-directed pass
// that populates a symbols.SymbolTable from an ast.Program and reports
// every non-fatal semantic diagnostic. One exported Analyzer with an
// Analyze entry point feeds a shared symbol table; dispatch is a plain
// type switch rather than a Visitor/Accept double-dispatch — LA's node
// set is small enough that a switch is the idiomatic fit.
package analyzer

import (
	"strconv"
	"strings"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/symbols"
	"github.com/laorg/lacc/internal/typesystem"
)

// Analyzer walks a parsed Program, declaring symbols and checking uses
// as it goes. It never mutates the parse tree and never halts on its
// own diagnostics — only a fatal lexical/syntactic error upstream stops
// the pipeline before Analyze ever runs.
type Analyzer struct {
	symbolTable *symbols.SymbolTable
	sink        *diagnostics.Sink

	// constantValues holds the verbatim literal text of every declared
	// constant, keyed by name, so an array dimension naming a constant
	// resolves via strconv.Atoi over the stored text — never full
	// constant folding.
	constantValues map[string]string

	// curFuncIsProcedure is set while walking a function body, so a
	// stray "retorne <expr>" inside a procedure can be reported at its
	// own line.
	curFuncIsProcedure bool
}

// New returns an Analyzer sharing st and reporting into sink.
func New(st *symbols.SymbolTable, sink *diagnostics.Sink) *Analyzer {
	return &Analyzer{
		symbolTable:    st,
		sink:           sink,
		constantValues: make(map[string]string),
	}
}

// Analyze runs the full checker pass over prog.
func (a *Analyzer) Analyze(prog *ast.Program) {
	if prog == nil {
		return
	}

	// Declarations are processed by section — every constant, then every
	// tipo, then every variable, then every function signature, each
	// section in source order — so variables see all constants/types and
	// function bodies see every signature, matching LA's single flat
	// namespace.
	for _, c := range prog.Constants {
		a.declareConst(c)
	}
	for _, t := range prog.Types {
		a.declareTypeDecl(t)
	}
	for _, v := range prog.Vars {
		a.declareVarDecl(v)
	}
	for _, f := range prog.Funcs {
		a.declareFuncSignature(f)
	}
	for _, f := range prog.Funcs {
		a.checkFuncBody(f)
	}

	a.curFuncIsProcedure = false
	a.checkBlock(prog.Body)
}

// report is a thin wrapper so every call site reads the same way.
func (a *Analyzer) report(line int, message string) {
	a.sink.Report(diagnostics.PhaseAnalyzer, line, message)
}

// ---- declarations --------------------------------------------------------

func (a *Analyzer) declareConst(c *ast.ConstDecl) {
	typ, ok := a.resolveTypeExpr(c.Type, c.TokLine)
	if !ok {
		return
	}
	if !a.symbolTable.DeclareConstant(c.Name, typ, c.TokLine) {
		a.report(c.TokLine, msgAlreadyDeclared(c.Name))
		return
	}
	a.constantValues[c.Name] = c.Value
}

func (a *Analyzer) declareTypeDecl(t *ast.TypeDecl) {
	fields := a.buildRecordFields(t.Fields)
	if !a.symbolTable.DeclareCustomType(t.Name, fields, t.TokLine) {
		a.report(t.TokLine, msgAlreadyDeclared(t.Name))
	}
}

// buildRecordFields resolves a registro's field list into a TRecord,
// declaring nothing in the symbol table — callers decide whether the
// result names a customTipos entry or a record-instance variable.
func (a *Analyzer) buildRecordFields(fields []*ast.VarDecl) typesystem.TRecord {
	rec := typesystem.TRecord{Fields: make(map[string]typesystem.Type)}
	for _, vd := range fields {
		if vd == nil {
			continue
		}
		typ, ok := a.resolveTypeExpr(vd.Type, vd.TokLine)
		if !ok {
			continue
		}
		for _, rawName := range vd.Names {
			name, dim, isArray := splitArrayName(rawName)
			fieldType := typ
			if isArray {
				fieldType = typesystem.TArray{Size: a.resolveDim(dim), Elem: typ}
			}
			rec.Order = append(rec.Order, name)
			rec.Fields[name] = fieldType
		}
	}
	return rec
}

// declareVarDecl registers every name in vd against the current
// scope, expanding record/array/pointer/custom-type forms per the
// variable declaration contract.
func (a *Analyzer) declareVarDecl(vd *ast.VarDecl) {
	if vd == nil {
		return
	}
	if vd.Type.IsRecord() {
		rec := a.buildRecordFields(vd.Type.Fields)
		for _, rawName := range vd.Names {
			// An array of anonymous records has no declared
			// element type to resolve further; treat the base
			// name as a record instance, matching the source's
			// flat single-dimension array model.
			name, _, _ := splitArrayName(rawName)
			if !a.symbolTable.DeclareRecordInstance(name, rec, vd.TokLine) {
				a.report(vd.TokLine, msgAlreadyDeclared(name))
			}
		}
		return
	}

	typ, ok := a.resolveTypeExpr(vd.Type, vd.TokLine)
	if !ok {
		return
	}

	for _, rawName := range vd.Names {
		name, dim, isArray := splitArrayName(rawName)
		if isArray {
			arr := typesystem.TArray{Size: a.resolveDim(dim), Elem: typ}
			if !a.symbolTable.DeclareArray(name, arr, vd.TokLine) {
				a.report(vd.TokLine, msgAlreadyDeclared(name))
			}
			continue
		}

		if _, named := typ.(typesystem.TNamed); named {
			if !a.symbolTable.DeclareRecordInstance(name, typ, vd.TokLine) {
				a.report(vd.TokLine, msgAlreadyDeclared(name))
			}
			continue
		}

		if !a.symbolTable.DeclareScalar(name, typ, vd.TokLine) {
			a.report(vd.TokLine, msgAlreadyDeclared(name))
		}
	}
}

// splitArrayName separates a declared name's optional "[n]" suffix
// (produced verbatim by the parser) from its base identifier.
func splitArrayName(raw string) (name, dim string, isArray bool) {
	br := strings.IndexByte(raw, '[')
	if br < 0 {
		return raw, "", false
	}
	return raw[:br], raw[br+1 : len(raw)-1], true
}

// resolveDim resolves an array dimension to an integer size. A numeric
// literal is parsed directly; a named constant's stored text is parsed
// the same way. Anything else yields an indeterminate (-1) size with
// no diagnostic.
func (a *Analyzer) resolveDim(dim string) int {
	if n, err := strconv.Atoi(dim); err == nil {
		return n
	}
	if text, ok := a.constantValues[dim]; ok {
		if n, err := strconv.Atoi(text); err == nil {
			return n
		}
	}
	return -1
}

// resolveTypeExpr validates a type occurring in a variable, parameter,
// field, or return position.
func (a *Analyzer) resolveTypeExpr(te *ast.TypeExpr, line int) (typesystem.Type, bool) {
	if te == nil {
		return nil, false
	}
	if te.IsRecord() {
		return a.buildRecordFields(te.Fields), true
	}

	if te.IsPointer() {
		pointee := te.PointeeName()
		if typesystem.IsBasicName(pointee) {
			return typesystem.TPointer{Elem: typesystem.TBasic{Name: pointee}}, true
		}
		if _, ok := a.symbolTable.LookupCustomType(pointee); ok {
			return typesystem.TPointer{Elem: typesystem.TNamed{Name: pointee}}, true
		}
		a.report(line, msgTypeNotDeclared(pointee))
		return nil, false
	}

	name := te.Basic
	if typesystem.IsBasicName(name) {
		return typesystem.TBasic{Name: name}, true
	}
	if _, ok := a.symbolTable.LookupCustomType(name); ok {
		return typesystem.TNamed{Name: name}, true
	}
	a.report(line, msgTypeNotDeclared(name))
	return nil, false
}

// ---- functions -------------------------------------------------------------

func (a *Analyzer) declareFuncSignature(f *ast.FuncDecl) {
	var params []symbols.Param
	for _, p := range f.Params {
		typ, ok := a.resolveTypeExpr(p.Type, p.TokLine)
		if !ok {
			continue
		}
		params = append(params, symbols.Param{Name: p.Name, Type: typ})
	}

	var retType typesystem.Type
	if !f.IsProcedure() {
		typ, ok := a.resolveTypeExpr(f.ReturnType, f.TokLine)
		if ok {
			retType = typ
		}
	}

	if !a.symbolTable.DeclareFunction(f.Name, params, retType, f.TokLine) {
		a.report(f.TokLine, msgAlreadyDeclared(f.Name))
	}
}

func (a *Analyzer) checkFuncBody(f *ast.FuncDecl) {
	a.curFuncIsProcedure = f.IsProcedure()
	// Parameters shadow nothing in LA's flat namespace model; they are
	// declared directly into the same table the function signature used.
	for _, p := range f.Params {
		typ, ok := a.resolveTypeExpr(p.Type, p.TokLine)
		if !ok {
			continue
		}
		if !a.symbolTable.DeclareScalar(p.Name, typ, p.TokLine) {
			a.report(p.TokLine, msgAlreadyDeclared(p.Name))
		}
	}
	a.checkBlock(f.Body)
}

// Package emitter is the C code generator: a second tree walk over an
// already-checked ast.Program, consuming the read-only symbols.SymbolTable
// the analyzer built. It assumes its input has already passed the
// semantic checker and never reports diagnostics of its own.
//
// An AST-consuming lowering pass with one helper method per node kind,
// targeting a strings.Builder-based C-source writer.
package emitter

import (
	"strings"

	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/symbols"
)

// Emitter lowers a checked ast.Program to C source text.
type Emitter struct {
	symbols *symbols.SymbolTable
	buf     strings.Builder
	indent  int
}

// New returns an Emitter that resolves identifiers against st.
func New(st *symbols.SymbolTable) *Emitter {
	return &Emitter{symbols: st}
}

// Emit renders prog as a complete, compilable C source file: the
// stdio/stdlib preamble, every global declaration grouped by kind
// (typedefs, then #define constants, then global variables, then
// function definitions, each group in source order), then an
// "int main() { ... return 0; }" wrapping the program body.
func Emit(prog *ast.Program, st *symbols.SymbolTable) string {
	e := New(st)
	e.emitProgram(prog)
	return e.buf.String()
}

func (e *Emitter) emitProgram(prog *ast.Program) {
	e.writeLine("#include <stdio.h>")
	e.writeLine("#include <stdlib.h>")
	e.writeLine("")

	for _, t := range prog.Types {
		e.emitTypeDecl(t)
	}
	for _, c := range prog.Constants {
		e.emitConstDecl(c)
	}
	if len(prog.Types) > 0 || len(prog.Constants) > 0 {
		e.writeLine("")
	}

	for _, v := range prog.Vars {
		e.emitGlobalVarDecl(v)
	}
	if len(prog.Vars) > 0 {
		e.writeLine("")
	}

	for _, f := range prog.Funcs {
		e.emitFuncDecl(f)
		e.writeLine("")
	}

	e.writeLine("int main() {")
	e.indent++
	e.emitBlock(prog.Body)
	e.writeLine("return 0;")
	e.indent--
	e.writeLine("}")
}

// emitTypeDecl renders a "tipo Nome : registro ... fimregistro"
// declaration as "typedef struct { ... } Name;", reusing the field
// table the analyzer already resolved into customTipos rather than
// re-resolving t.Fields itself.
func (e *Emitter) emitTypeDecl(t *ast.TypeDecl) {
	sym, ok := e.symbols.LookupCustomType(t.Name)
	if !ok {
		return
	}
	e.writeLine("typedef struct { " + renderFields(sym.Fields) + "} " + t.Name + ";")
}

// emitConstDecl renders "constante NOME : tipo <- valor" as a
// "#define NOME valor" — #define has no notion of a C type, so the
// declared type only mattered for the analyzer's checks.
func (e *Emitter) emitConstDecl(c *ast.ConstDecl) {
	e.writeLine("#define " + c.Name + " " + c.Value)
}

// emitGlobalVarDecl renders one "declare" line's names as top-level C
// variable declarations, resolving each name's fully-expanded type
// (including any array dimension the analyzer computed) from the
// symbol table rather than re-deriving it from the TypeExpr.
func (e *Emitter) emitGlobalVarDecl(vd *ast.VarDecl) {
	for _, raw := range vd.Names {
		name := baseName(raw)
		t, err := e.symbols.Resolve(name)
		if err != nil {
			continue
		}
		e.writeLine(declareVar(name, t) + ";")
	}
}

// baseName strips a declared name's optional "[n]" array-dimension
// suffix, mirroring the analyzer's own splitArrayName helper.
func baseName(raw string) string {
	if br := strings.IndexByte(raw, '['); br >= 0 {
		return raw[:br]
	}
	return raw
}

// emitFuncDecl renders a funcao/procedimento as a C function
// definition: "procedimento" maps to "void", a literal parameter
// becomes "char* p", and the body is emitted as an ordinary statement
// block.
func (e *Emitter) emitFuncDecl(f *ast.FuncDecl) {
	fn, ok := e.symbols.LookupFunction(f.Name)
	if !ok {
		return
	}
	retType := voidOrReturnType(fn.ReturnType)

	var params []string
	for _, p := range fn.Params {
		params = append(params, paramOrReturnType(p.Type)+" "+p.Name)
	}

	e.writeLine(retType + " " + f.Name + "(" + strings.Join(params, ", ") + ") {")
	e.indent++
	e.emitBlock(f.Body)
	e.indent--
	e.writeLine("}")
}

func (e *Emitter) writeLine(line string) {
	if line == "" {
		e.buf.WriteByte('\n')
		return
	}
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString("    ")
	}
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Package symbols is the compiler's symbol table: four flat partitions
// mirroring LA's four declaration namespaces, each holding a tagged
// union Symbol value. There is a single global scope — LA treats
// declarations as one flat namespace, function parameters and locals
// included, so a single table is all any compilation unit ever needs.
package symbols

import (
	"strings"

	"github.com/laorg/lacc/internal/typesystem"
)

// Kind tags which declaration namespace a Symbol came from.
type Kind int

const (
	KindScalar Kind = iota
	KindRecord
	KindArray
	KindFunction
	KindConstant
	KindCustomType
)

// Symbol is the tagged union stored in every partition. Only the
// fields relevant to Kind are meaningful; a single struct with many
// fields beats four separate interfaces since LA's symbol shapes are
// few and simple enough for a type switch per field.
type Symbol struct {
	Name string
	Kind Kind
	Line int // line of the declaration that won the binding

	// KindScalar, KindRecord, KindArray, KindConstant
	Type typesystem.Type

	// KindFunction
	Params     []Param
	ReturnType typesystem.Type // nil for a procedure

	// KindCustomType
	Fields typesystem.TRecord
}

// Param is one function/procedure parameter signature.
type Param struct {
	Name string
	Type typesystem.Type
}

// IsProcedure reports whether a KindFunction symbol has no return type.
func (s Symbol) IsProcedure() bool { return s.Kind == KindFunction && s.ReturnType == nil }

// SymbolTable holds LA's four declaration partitions.
type SymbolTable struct {
	identificadores map[string]Symbol
	customTipos     map[string]Symbol
	funcoes         map[string]Symbol
	constantes      map[string]Symbol
}

// NewSymbolTable returns an empty program-level table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		identificadores: make(map[string]Symbol),
		customTipos:     make(map[string]Symbol),
		funcoes:         make(map[string]Symbol),
		constantes:      make(map[string]Symbol),
	}
}

// alreadyDeclared reports whether name exists in the collision set: a
// new binding collides with any prior name in identificadores, funcoes
// or constantes. customTipos names are not in the set — a variable may
// share its name with a tipo, since type names and value names live in
// different syntactic positions.
func (st *SymbolTable) alreadyDeclared(name string) bool {
	if _, ok := st.identificadores[name]; ok {
		return true
	}
	if _, ok := st.funcoes[name]; ok {
		return true
	}
	if _, ok := st.constantes[name]; ok {
		return true
	}
	return false
}

// declare inserts sym into dst unless name collides with a prior
// binding (or dst itself already holds it), in which case the original
// binding is kept and declare reports the collision so the caller can
// emit exactly one "ja declarado anteriormente" diagnostic at the
// *new* declaration's line — the first binding always wins.
func (st *SymbolTable) declare(dst map[string]Symbol, sym Symbol) (ok bool) {
	if st.alreadyDeclared(sym.Name) {
		return false
	}
	if _, exists := dst[sym.Name]; exists {
		return false
	}
	dst[sym.Name] = sym
	return true
}

// DeclareScalar binds a plain inteiro/real/literal/logico (or pointer
// to one, or a reference to a customTipos name) variable.
func (st *SymbolTable) DeclareScalar(name string, t typesystem.Type, line int) bool {
	return st.declare(st.identificadores, Symbol{Name: name, Kind: KindScalar, Type: t, Line: line})
}

// DeclareRecordInstance binds a variable whose type is an inline or
// named record value (as opposed to the tipo declaration itself).
func (st *SymbolTable) DeclareRecordInstance(name string, t typesystem.Type, line int) bool {
	return st.declare(st.identificadores, Symbol{Name: name, Kind: KindRecord, Type: t, Line: line})
}

// DeclareArray binds a fixed- or indeterminate-size array variable.
func (st *SymbolTable) DeclareArray(name string, t typesystem.TArray, line int) bool {
	return st.declare(st.identificadores, Symbol{Name: name, Kind: KindArray, Type: t, Line: line})
}

// DeclareCustomType binds a "tipo Nome : registro ... fimregistro" name
// into customTipos.
func (st *SymbolTable) DeclareCustomType(name string, fields typesystem.TRecord, line int) bool {
	return st.declare(st.customTipos, Symbol{Name: name, Kind: KindCustomType, Fields: fields, Line: line})
}

// DeclareFunction binds a funcao/procedimento signature. returnType is
// nil for a procedure.
func (st *SymbolTable) DeclareFunction(name string, params []Param, returnType typesystem.Type, line int) bool {
	return st.declare(st.funcoes, Symbol{Name: name, Kind: KindFunction, Params: params, ReturnType: returnType, Line: line})
}

// DeclareConstant binds a "constante" name into constantes.
func (st *SymbolTable) DeclareConstant(name string, t typesystem.Type, line int) bool {
	return st.declare(st.constantes, Symbol{Name: name, Kind: KindConstant, Type: t, Line: line})
}

// LookupCustomType resolves a customTipos name.
func (st *SymbolTable) LookupCustomType(name string) (Symbol, bool) {
	sym, ok := st.customTipos[name]
	return sym, ok
}

// LookupFunction resolves a funcoes name.
func (st *SymbolTable) LookupFunction(name string) (Symbol, bool) {
	sym, ok := st.funcoes[name]
	return sym, ok
}

// Resolve looks up a bare, dotted ("owner.field") or indexed
// ("owner[index]") identifier reference against identificadores and
// constantes, returning the type of the referenced leaf and whether it
// resolved at all.
//
// A dotted reference requires owner to be a record-kind identifier
// with the named field; an indexed reference requires owner to be an
// array-kind identifier, and the resolved type is the array's element
// type regardless of whether the index expression itself is valid —
// index expression validity is the caller's concern, not Resolve's.
// Resolve only ever inspects the owner's declared shape.
func (st *SymbolTable) Resolve(ref string) (typesystem.Type, error) {
	if dot := strings.IndexByte(ref, '.'); dot >= 0 {
		owner, field := ref[:dot], ref[dot+1:]
		rec, ok := st.ResolveRecordSymbol(owner)
		if !ok {
			return nil, typesystem.NewNotFoundError(owner)
		}
		ft, ok := rec.Field(field)
		if !ok {
			return nil, typesystem.NewNotFoundError(ref)
		}
		return ft, nil
	}

	if br := strings.IndexByte(ref, '['); br >= 0 {
		owner := ref[:br]
		sym, ok := st.lookupIdentOrConst(owner)
		if !ok {
			return nil, typesystem.NewNotFoundError(owner)
		}
		arr, ok := sym.Type.(typesystem.TArray)
		if !ok {
			return nil, typesystem.NewNotFoundError(ref)
		}
		return arr.Elem, nil
	}

	sym, ok := st.lookupIdentOrConst(ref)
	if !ok {
		return nil, typesystem.NewNotFoundError(ref)
	}
	return sym.Type, nil
}

func (st *SymbolTable) lookupIdentOrConst(name string) (Symbol, bool) {
	if sym, ok := st.identificadores[name]; ok {
		return sym, true
	}
	if sym, ok := st.constantes[name]; ok {
		return sym, true
	}
	return Symbol{}, false
}

// ResolveRecordSymbol is like Resolve's record branch but also
// searches customTipos when the symbol's declared type is a TNamed
// reference, returning the named type's field table. Resolve's dotted
// branch uses it to find the owner's fields, and it reports false when
// the owner is not a record.
func (st *SymbolTable) ResolveRecordSymbol(owner string) (typesystem.TRecord, bool) {
	sym, ok := st.lookupIdentOrConst(owner)
	if !ok {
		return typesystem.TRecord{}, false
	}
	switch t := sym.Type.(type) {
	case typesystem.TRecord:
		return t, true
	case typesystem.TNamed:
		tySym, ok := st.LookupCustomType(t.Name)
		if !ok {
			return typesystem.TRecord{}, false
		}
		return tySym.Fields, true
	}
	return typesystem.TRecord{}, false
}

package emitter

import (
	"strconv"
	"strings"

	"github.com/laorg/lacc/internal/config"
	"github.com/laorg/lacc/internal/typesystem"
)

// cBasicType maps one of LA's four scalar type names to its C
// rendering, without the "literal scalars are char[80], not char*"
// special case declareVar applies to local/global declarations.
func cBasicType(name string) string {
	if c, ok := config.CTypeOf[name]; ok {
		return c
	}
	return "int"
}

// cScalarBase strips literal's "char*" down to "char", the element
// type declareVar uses when emitting a fixed-size char buffer.
func cScalarBase(name string) string {
	return strings.TrimSuffix(cBasicType(name), "*")
}

// paramOrReturnType renders the C type used in a function's return
// position or a parameter declaration. A literal parameter is emitted
// as "char* p"; every other basic, pointer or named type renders as
// its plain C type.
func paramOrReturnType(t typesystem.Type) string {
	switch tt := t.(type) {
	case typesystem.TBasic:
		return cBasicType(tt.Name)
	case typesystem.TPointer:
		return pointerCType(tt)
	case typesystem.TNamed:
		return tt.Name
	}
	return "int"
}

func pointerCType(t typesystem.TPointer) string {
	switch elem := t.Elem.(type) {
	case typesystem.TBasic:
		return cScalarBase(elem.Name) + " *"
	case typesystem.TNamed:
		return elem.Name + " *"
	}
	return "void *"
}

// voidOrReturnType renders a function's C return type, "void" for a
// procedure.
func voidOrReturnType(ret typesystem.Type) string {
	if ret == nil {
		return "void"
	}
	return paramOrReturnType(ret)
}

// declareVar renders the full C declaration (without trailing ';') for
// a variable or field named name with type t: scalars map directly,
// "literal" scalars
// become a fixed-size char buffer, records become an anonymous struct,
// arrays use standard C array syntax (literal elements becoming
// char[n][80]), pointers and named types render as in
// paramOrReturnType.
func declareVar(name string, t typesystem.Type) string {
	switch tt := t.(type) {
	case typesystem.TBasic:
		if tt.Name == typesystem.Literal {
			return "char " + name + "[80]"
		}
		return cBasicType(tt.Name) + " " + name
	case typesystem.TPointer:
		return pointerCType(tt) + name
	case typesystem.TNamed:
		return tt.Name + " " + name
	case typesystem.TRecord:
		return "struct { " + renderFields(tt) + "} " + name
	case typesystem.TArray:
		return declareArray(name, tt)
	}
	return "int " + name
}

func declareArray(name string, arr typesystem.TArray) string {
	dim := "[]"
	if arr.Size >= 0 {
		dim = "[" + strconv.Itoa(arr.Size) + "]"
	}
	switch elem := arr.Elem.(type) {
	case typesystem.TBasic:
		if elem.Name == typesystem.Literal {
			return "char " + name + dim + "[80]"
		}
		return cBasicType(elem.Name) + " " + name + dim
	case typesystem.TPointer:
		return pointerCType(elem) + name + dim
	case typesystem.TNamed:
		return elem.Name + " " + name + dim
	case typesystem.TRecord:
		return "struct { " + renderFields(elem) + "} " + name + dim
	}
	return "int " + name + dim
}

// renderFields renders a TRecord's fields in declaration order, one
// "T name; " entry per field, for use inside an anonymous struct or a
// typedef body.
func renderFields(rec typesystem.TRecord) string {
	var b strings.Builder
	for _, name := range rec.Order {
		b.WriteString(declareVar(name, rec.Fields[name]))
		b.WriteString("; ")
	}
	return b.String()
}

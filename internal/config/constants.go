// Package config holds lacc's fixed translation tables: the LA basic
// type -> C type mapping and the printf/scanf format the emitter infers
// per type.
package config

// SourceFileExt is the conventional extension for LA source files; the
// CLI warns (but does not refuse) when the input file has another.
const SourceFileExt = ".alg"

// CTypeOf maps an LA basic type name to its C rendering.
var CTypeOf = map[string]string{
	"inteiro": "int",
	"real":    "float",
	"literal": "char*",
	"logico":  "int",
}

// FormatSpecOf maps an LA basic type name to the printf/scanf format
// specifier the emitter infers for escreva/leia arguments.
var FormatSpecOf = map[string]string{
	"inteiro": "%d",
	"real":    "%f",
	"literal": "%s",
	"logico":  "%d",
}

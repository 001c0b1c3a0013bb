package pipeline

import (
	"github.com/laorg/lacc/internal/ast"
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/symbols"
)

// PipelineContext carries everything one compilation run needs between
// stages: the source text, the token stream the lexer stage produces,
// the parse tree the parser stage produces, the symbol table the
// analyzer stage populates, and the diagnostic sink every stage
// reports into.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream TokenStream
	AstRoot     *ast.Program
	SymbolTable *symbols.SymbolTable
	Sink        *diagnostics.Sink
	Mode        diagnostics.Mode

	// GeneratedC holds the emitter stage's output in ModeEmit once the
	// pipeline completes with zero diagnostics; empty otherwise.
	GeneratedC string
}

// NewPipelineContext creates an initialized context for compiling
// source under mode (check-only or emit).
func NewPipelineContext(source, filePath string, mode diagnostics.Mode) *PipelineContext {
	return &PipelineContext{
		SourceCode:  source,
		FilePath:    filePath,
		SymbolTable: symbols.NewSymbolTable(),
		Sink:        diagnostics.NewSink(),
		Mode:        mode,
	}
}

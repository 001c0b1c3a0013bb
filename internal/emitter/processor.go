package emitter

import (
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/pipeline"
)

// Processor is the pipeline stage that lowers ctx.AstRoot to C once
// the analyzer stage has run clean. It only fires in ModeEmit, and
// only when the checker produced zero diagnostics: no partial C
// emission occurs when semantic errors are present.
type Processor struct{}

func (cp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Mode != diagnostics.ModeEmit || ctx.Sink.HasErrors() {
		return ctx
	}
	ctx.GeneratedC = Emit(ctx.AstRoot, ctx.SymbolTable)
	return ctx
}

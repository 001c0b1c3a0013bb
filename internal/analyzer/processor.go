package analyzer

import "github.com/laorg/lacc/internal/pipeline"

// Processor is the pipeline stage that runs semantic analysis over
// ctx.AstRoot, populating ctx.SymbolTable and reporting into ctx.Sink.
type Processor struct{}

func (ap *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	New(ctx.SymbolTable, ctx.Sink).Analyze(ctx.AstRoot)
	return ctx
}

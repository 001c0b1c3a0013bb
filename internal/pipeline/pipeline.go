package pipeline

// Pipeline is a sequence of processing stages run in order.
type Pipeline struct {
	processors []Processor
}

// New returns a pipeline running processors in the given order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes each stage in order, stopping immediately after any
// stage leaves the sink fatal: a fatal lexical or syntactic diagnostic
// halts the pipeline — no semantic or emit pass runs on a program that
// never finished parsing.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Sink != nil && ctx.Sink.Fatal() {
			break
		}
	}
	return ctx
}

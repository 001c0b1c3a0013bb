package pipeline

import "github.com/laorg/lacc/internal/token"

// Processor is any component that can process a PipelineContext and
// return a (possibly modified) context. Each compiler stage — lexer,
// parser, analyzer, emitter — is a Processor.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// TokenStream is the contract a lexer exposes to the parser: a
// single-token Next plus bounded lookahead via Peek.
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns the next n tokens without consuming them. If the
	// stream has fewer than n tokens remaining, it returns all of them.
	Peek(n int) []token.Token
}

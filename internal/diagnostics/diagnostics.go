// Package diagnostics is the compiler's diagnostic sink: an append-only
// textual reporter producing the fixed "Linha N: msg" report format,
// with no trailing spaces and LF line endings.
package diagnostics

import (
	"fmt"
	"strings"
)

// Phase identifies which pipeline stage produced a diagnostic.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
)

// Record is a single diagnostic line.
type Record struct {
	Phase   Phase
	Line    int
	Message string
}

func (r *Record) Error() string {
	return fmt.Sprintf("Linha %d: %s", r.Line, r.Message)
}

// Mode selects the compiler's output shape: a diagnostic report
// terminated by "Fim da compilacao" (check-only), or generated C
// source (emit).
type Mode int

const (
	ModeCheckOnly Mode = iota
	ModeEmit
)

// Sink accumulates diagnostics in production order and renders the
// final report. It holds every diagnostic of the run; the emitter
// never reports diagnostics of its own.
type Sink struct {
	records []*Record
	fatal   bool
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends a non-fatal (semantic) diagnostic and continues the
// pipeline: non-fatal semantic errors accumulate and the checker
// continues.
func (s *Sink) Report(phase Phase, line int, message string) {
	s.records = append(s.records, &Record{Phase: phase, Line: line, Message: message})
}

// ReportFatal appends a lexical or syntactic diagnostic and marks the
// sink fatal. Callers must stop the pipeline after a fatal report — no
// semantic or emit pass runs on it.
func (s *Sink) ReportFatal(phase Phase, line int, message string) {
	s.Report(phase, line, message)
	s.fatal = true
}

// Fatal reports whether a fatal lexical/syntactic diagnostic was recorded.
func (s *Sink) Fatal() bool { return s.fatal }

// HasErrors reports whether any diagnostic at all was recorded.
func (s *Sink) HasErrors() bool { return len(s.records) > 0 }

// Records returns the diagnostics recorded so far, in production order.
func (s *Sink) Records() []*Record {
	return s.records
}

// Render returns the full check-only-mode report: one "Linha N: msg"
// line per diagnostic, followed by "Fim da compilacao".
func (s *Sink) Render() string {
	var b strings.Builder
	for _, r := range s.records {
		b.WriteString(r.Error())
		b.WriteByte('\n')
	}
	b.WriteString("Fim da compilacao\n")
	return b.String()
}

// LexicalMessage classifies a lexer failure fragment.
func LexicalMessage(fragment string) string {
	switch {
	case len(fragment) <= 1:
		return fragment + " - simbolo nao identificado"
	case strings.ContainsAny(fragment, "{}"):
		return "comentario nao fechado"
	case strings.Contains(fragment, `"`):
		return "cadeia literal nao fechada"
	default:
		return fragment + " - simbolo nao identificado"
	}
}

// SyntacticMessage renders the compiler's one syntactic diagnostic
// kind, rewriting the literal "<EOF>" token to "EOF".
func SyntacticMessage(offendingText string) string {
	if offendingText == "<EOF>" {
		offendingText = "EOF"
	}
	return "erro sintatico proximo a " + offendingText
}

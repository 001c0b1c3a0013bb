// Command lacc is the LA compiler front-end: it reads one LA source
// file and writes either a diagnostic report (check-only mode, the
// default) or an equivalent C program ("-emit").
//
// Hand-rolled os.Args dispatch and a top-level recover(), no CLI
// framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/laorg/lacc/internal/analyzer"
	"github.com/laorg/lacc/internal/cache"
	"github.com/laorg/lacc/internal/config"
	"github.com/laorg/lacc/internal/diagnostics"
	"github.com/laorg/lacc/internal/emitter"
	"github.com/laorg/lacc/internal/lexer"
	"github.com/laorg/lacc/internal/parser"
	"github.com/laorg/lacc/internal/pipeline"
	"github.com/laorg/lacc/internal/prettyprinter"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: lacc <input-file> <output-file> [-emit] [-dump-ast] [-cache <path>]")
}

type options struct {
	inputPath  string
	outputPath string
	emit       bool
	dumpAST    bool
	cachePath  string
}

func parseArgs(args []string) (options, error) {
	var opts options
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-emit":
			opts.emit = true
		case "-dump-ast":
			opts.dumpAST = true
		case "-cache":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("-cache requires a path argument")
			}
			i++
			opts.cachePath = args[i]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		return opts, fmt.Errorf("expected exactly 2 positional arguments, got %d", len(positional))
	}
	opts.inputPath = positional[0]
	opts.outputPath = positional[1]
	return opts, nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "lacc: internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		usage()
		os.Exit(1)
	}

	if ext := filepath.Ext(opts.inputPath); ext != config.SourceFileExt {
		fmt.Fprintf(os.Stderr, "lacc: warning: input %s does not have the %s extension\n", opts.inputPath, config.SourceFileExt)
	}

	source, err := os.ReadFile(opts.inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lacc: %s\n", err)
		os.Exit(1)
	}

	mode := diagnostics.ModeCheckOnly
	if opts.emit {
		mode = diagnostics.ModeEmit
	}

	var store *cache.Store
	var cacheKey string
	if opts.cachePath != "" {
		store, err = cache.Open(opts.cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lacc: %s\n", err)
			os.Exit(1)
		}
		defer store.Close()

		cacheKey = cache.Key(string(source))
		if cached, ok, err := store.Lookup(cacheKey, modeLabel(mode)); err == nil && ok {
			if err := os.WriteFile(opts.outputPath, cached, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "lacc: %s\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "lacc: ok (cached)")
			return
		}
	}

	ctx := pipeline.NewPipelineContext(string(source), opts.inputPath, mode)
	p := pipeline.New(
		&lexer.Processor{},
		&parser.Processor{},
		&analyzer.Processor{},
		&emitter.Processor{},
	)
	ctx = p.Run(ctx)

	if opts.dumpAST && ctx.AstRoot != nil {
		fmt.Fprint(os.Stderr, prettyprinter.Dump(ctx.AstRoot))
	}

	var output []byte
	if mode == diagnostics.ModeEmit && !ctx.Sink.Fatal() && !ctx.Sink.HasErrors() {
		output = []byte(ctx.GeneratedC)
	} else {
		output = []byte(ctx.Sink.Render())
	}

	if err := os.WriteFile(opts.outputPath, output, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "lacc: %s\n", err)
		os.Exit(1)
	}

	if store != nil {
		id, err := store.Store(cacheKey, modeLabel(mode), output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lacc: %s\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "lacc: cached as %s\n", id)
		}
	}

	if ctx.Sink.HasErrors() {
		fmt.Fprintf(os.Stderr, "lacc: %d error(s)\n", len(ctx.Sink.Records()))
	} else {
		fmt.Fprintln(os.Stderr, "lacc: ok")
	}
}

func modeLabel(mode diagnostics.Mode) string {
	if mode == diagnostics.ModeEmit {
		return "emit"
	}
	return "check-only"
}

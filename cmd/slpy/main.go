// Command slpy drives the source-to-Python compiler: front end, the
// desugaring pass, then code generation. The process exit status is the
// front end's accumulated error count; a failure to write the destination
// is reported distinctly.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/cache"
	"github.com/slpy-lang/slpy/internal/codegen"
	"github.com/slpy-lang/slpy/internal/config"
	"github.com/slpy-lang/slpy/internal/desugar"
	"github.com/slpy-lang/slpy/internal/diagnostics"
	"github.com/slpy-lang/slpy/internal/frontend"
	"github.com/slpy-lang/slpy/internal/pipeline"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: slpy [flags] <input|-> <output|->\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", config.DefaultFileName, "project configuration file")
	stamp := flag.Bool("stamp", false, "prefix the output with a generated-by header carrying a build id")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	reporter := diagnostics.NewReporter(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		reporter.Report([]*diagnostics.Diagnostic{
			diagnostics.NewError(diagnostics.ErrC001, ast.Pos{}, err.Error()),
		})
		os.Exit(1)
	}

	source, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't open %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	var store *cache.Store
	var cacheKey string
	if cfg.CachePath != "" {
		store, err = cache.Open(cfg.CachePath)
		if err != nil {
			// a broken cache never blocks compilation
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			defer store.Close()
			cacheKey = cache.Key(source, cfg.Fingerprint())
			if cached, ok, err := store.Get(cacheKey); err == nil && ok {
				writeOutputOrDie(outputPath, cached, reporter)
				return
			}
		}
	}

	p := pipeline.New(
		frontend.NewProcessor(frontend.Registered()),
		desugar.NewProcessor(),
		codegen.NewProcessor(codegen.Options{
			RuntimeModule: cfg.RuntimeModule,
			ClassName:     cfg.ClassName,
			IndentWidth:   cfg.IndentWidth,
		}),
	)
	ctx := p.Run(&pipeline.Context{FilePath: inputPath, Source: source})

	if ctx.ErrorCount() > 0 {
		reporter.Report(ctx.Errors)
		os.Exit(ctx.ErrorCount())
	}

	output := ctx.Output
	if *stamp {
		header := fmt.Sprintf("# Generated by slpy; build %s\n", uuid.NewString())
		output = append([]byte(header), output...)
	}

	if store != nil && cacheKey != "" {
		if err := store.Put(cacheKey, output); err != nil {
			fmt.Fprintf(os.Stderr, "warning: caching output: %v\n", err)
		}
	}

	writeOutputOrDie(outputPath, output, reporter)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutputOrDie(path string, data []byte, reporter *diagnostics.Reporter) {
	var err error
	if path == "-" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		reporter.Report([]*diagnostics.Diagnostic{
			diagnostics.NewError(diagnostics.ErrIO001, ast.Pos{},
				fmt.Sprintf("couldn't write %s: %v", path, err)),
		})
		os.Exit(1)
	}
}

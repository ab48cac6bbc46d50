// Package frontend is the interface boundary of the compiler front end.
// Lexing, parsing, symbol-table construction, type propagation and
// lint diagnostics all live behind this boundary; the backend receives a
// tree that has completed every one of them and never re-validates it.
//
// A concrete front end links itself into the binary by calling Register
// from an init function or from the main package.
package frontend

import (
	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/diagnostics"
	"github.com/slpy-lang/slpy/internal/pipeline"
)

// FrontEnd turns source text into a fully resolved tree. On failure it
// returns nil and one diagnostic per accumulated error; the caller's exit
// status is the error count.
type FrontEnd interface {
	Name() string
	Compile(src []byte, path string) (*ast.Script, []*diagnostics.Diagnostic)
}

var registered FrontEnd

// Register installs the process-wide front end. Typically called from an
// init function of the front-end package compiled into the binary.
func Register(fe FrontEnd) {
	registered = fe
}

// Registered returns the installed front end, or nil when the binary was
// built without one.
func Registered() FrontEnd {
	return registered
}

// Processor runs the front end as the first pipeline stage.
type Processor struct {
	FE FrontEnd
}

func NewProcessor(fe FrontEnd) *Processor {
	return &Processor{FE: fe}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if p.FE == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrF002,
			ast.Pos{},
			"no front end is linked into this binary",
		))
		return ctx
	}
	script, errs := p.FE.Compile(ctx.Source, ctx.FilePath)
	ctx.Script = script
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

package codegen

import (
	"github.com/slpy-lang/slpy/internal/pipeline"
)

// Processor runs generation as a pipeline stage. It skips itself when an
// earlier stage failed: front-end errors gate generation entirely.
type Processor struct {
	Opts Options
}

func NewProcessor(opts Options) *Processor {
	return &Processor{Opts: opts}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Script == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	ctx.Output = New(p.Opts).Generate(ctx.Script)
	return ctx
}

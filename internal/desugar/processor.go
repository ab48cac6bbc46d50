package desugar

import (
	"github.com/slpy-lang/slpy/internal/pipeline"
)

// Processor runs the desugaring pass as a pipeline stage.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Script == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	Run(ctx.Script)
	return ctx
}

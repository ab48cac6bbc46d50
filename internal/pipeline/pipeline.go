// Package pipeline sequences the compilation stages: front end, desugaring,
// generation. Each stage transforms a shared context and appends its
// diagnostics; stages after a failure see the errors and skip themselves.
package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so the context accumulates diagnostics
		// from every stage that can still run.
	}
	return ctx
}

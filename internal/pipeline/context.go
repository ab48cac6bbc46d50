package pipeline

import (
	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/diagnostics"
)

// Context is the state threaded through the pipeline. One context serves
// one compilation; concurrent compilations use independent contexts.
type Context struct {
	// FilePath is the input path, or "-" for the standard input stream.
	FilePath string

	// Source is the raw source text handed to the front end.
	Source []byte

	// Script is the resolved tree produced by the front end.
	Script *ast.Script

	// Output is the generated program text.
	Output []byte

	// Errors accumulates diagnostics from every stage. Its length is the
	// process exit status.
	Errors []*diagnostics.Diagnostic
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// ErrorCount returns the number of accumulated errors.
func (c *Context) ErrorCount() int {
	return len(c.Errors)
}

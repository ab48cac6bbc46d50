// Package diagnostics carries coded errors across pipeline stages. The
// accumulated error count is the process exit status, so stages append
// rather than abort.
package diagnostics

import (
	"fmt"

	"github.com/slpy-lang/slpy/internal/ast"
)

// Code identifies a diagnostic class.
type Code string

const (
	// ErrF001 wraps failures reported by the linked front end.
	ErrF001 Code = "F001"
	// ErrF002 means no front end is linked into the binary.
	ErrF002 Code = "F002"
	// ErrIO001 means the output destination could not be written. It is
	// reported distinctly from front-end errors.
	ErrIO001 Code = "IO001"
	// ErrC001 is a configuration problem.
	ErrC001 Code = "C001"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Code    Code
	Pos     ast.Pos
	Message string
}

// NewError builds a diagnostic at a position.
func NewError(code Code, pos ast.Pos, message string) *Diagnostic {
	return &Diagnostic{Code: code, Pos: pos, Message: message}
}

func (d *Diagnostic) Error() string {
	if d.Pos.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s", d.Code, d.Pos.Line, d.Pos.Column, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

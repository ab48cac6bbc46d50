// Package codegen translates a resolved source-language tree into an
// equivalent Python program. The translation is a single recursive walk
// that appends to one output buffer while tracking indentation depth; the
// emitted program depends at runtime on the support library for operator
// dispatch, coordinate types, goto emulation and state-machine dispatch.
//
// The tree is trusted: every node kind, operator and type tag is assumed
// to belong to the closed sets the front end guarantees. Anything else
// panics as a contract violation rather than surfacing as a diagnostic.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/types"
)

const (
	// DefaultRuntimeModule is the Python module the generated program
	// star-imports for its runtime support.
	DefaultRuntimeModule = "slrt"
	// DefaultClassName is the name of the generated class.
	DefaultClassName = "Script"
	// DefaultIndentWidth is spaces per indentation level.
	DefaultIndentWidth = 4

	// builtinNamespace is where the runtime library exposes the source
	// language's builtin functions. Fixed by the runtime contract.
	builtinNamespace = "lslfuncs"
	// baseClass implements state dispatch and catches state-change
	// signals. Fixed by the runtime contract.
	baseClass = "BaseLSLScript"
)

// Options tune the emission surface. Zero values select the defaults that
// reproduce the canonical emission grammar.
type Options struct {
	RuntimeModule string
	ClassName     string
	IndentWidth   int
}

// Generator holds the output buffer and indentation depth for one
// translation. A Generator is single-use; independent generators may run
// concurrently, nothing is shared.
type Generator struct {
	buf    bytes.Buffer
	tabs   int
	indent string
	opts   Options
}

func New(opts Options) *Generator {
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = DefaultRuntimeModule
	}
	if opts.ClassName == "" {
		opts.ClassName = DefaultClassName
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = DefaultIndentWidth
	}
	return &Generator{
		indent: strings.Repeat(" ", opts.IndentWidth),
		opts:   opts,
	}
}

// Generate walks the script once and returns the emitted program.
func (g *Generator) Generate(script *ast.Script) []byte {
	g.script(script)
	return g.buf.Bytes()
}

func (g *Generator) write(s string) {
	g.buf.WriteString(s)
}

func (g *Generator) writef(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *Generator) doTabs() {
	for i := 0; i < g.tabs; i++ {
		g.buf.WriteString(g.indent)
	}
}

// indented runs fn one level deeper and restores the previous depth on
// every exit path, panics included.
func (g *Generator) indented(fn func()) {
	old := g.tabs
	g.tabs++
	defer func() { g.tabs = old }()
	fn()
}

func (g *Generator) script(script *ast.Script) {
	g.writef("from %s import *\n\n\n", g.opts.RuntimeModule)
	g.writef("class %s(%s):\n", g.opts.ClassName, baseClass)
	g.indented(func() {
		// type declarations for globals live at class level
		for _, glob := range script.Globals {
			g.doTabs()
			g.writef("%s: %s\n", glob.Sym.Name, glob.Sym.Type.PyName())
		}
		g.write("\n")

		// the attribute-initialization phase is separate: __init__ assigns
		// every global in source order so later initializers observe
		// earlier globals' values
		g.doTabs()
		g.write("def __init__(self):\n")
		g.indented(func() {
			g.doTabs()
			g.write("super().__init__()\n")
			for _, glob := range script.Globals {
				g.globalVariable(glob)
			}
			g.write("\n")
		})

		for _, fn := range script.Functions {
			g.function(fn)
		}
		for _, state := range script.States {
			for _, handler := range state.Handlers {
				g.handler(state, handler)
			}
		}
	})
}

func (g *Generator) globalVariable(glob *ast.GlobalVariable) {
	g.doTabs()
	g.writef("self.%s = ", glob.Sym.Name)
	init := glob.Value
	if init == nil {
		init = ast.ZeroValue(glob.Sym.Type)
	}
	g.expr(init)
	g.write("\n")
}

func (g *Generator) function(fn *ast.Function) {
	g.doTabs()
	g.write("@with_goto\n")
	g.doTabs()
	g.writef("def %s(self", fn.Name)
	for _, param := range fn.Params {
		g.writef(", %s: %s", param.Name, param.Type.PyName())
	}
	g.writef(") -> %s:\n", fn.Ret.PyName())
	g.indented(func() {
		g.stmt(fn.Body)
	})
	g.write("\n")
}

// handler emits one event handler. All states share the generated class's
// method namespace, so the method name concatenates state and event names.
func (g *Generator) handler(state *ast.State, handler *ast.Handler) {
	g.doTabs()
	g.write("@with_goto\n")
	g.doTabs()
	g.writef("def e%s%s(self", state.Name, handler.Name)
	for _, param := range handler.Params {
		g.writef(", %s: %s", param.Name, param.Type.PyName())
	}
	g.writef(") -> %s:\n", types.None.PyName())
	g.indented(func() {
		g.stmt(handler.Body)
	})
	g.write("\n")
}

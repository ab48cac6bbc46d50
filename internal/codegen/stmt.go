package codegen

import (
	"fmt"

	"github.com/slpy-lang/slpy/internal/ast"
)

func (g *Generator) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.Nop:
		g.doTabs()
		g.write("pass\n")
	case *ast.Compound:
		if len(s.Stmts) == 0 {
			g.doTabs()
			g.write("pass\n")
			return
		}
		for _, child := range s.Stmts {
			g.stmt(child)
		}
	case *ast.ExprStmt:
		g.doTabs()
		g.expr(s.Expr)
		g.write("\n")
	case *ast.Decl:
		g.doTabs()
		g.writef("%s: %s = ", s.Sym.Name, s.Sym.Type.PyName())
		init := s.Value
		if init == nil {
			init = ast.ZeroValue(s.Sym.Type)
		}
		g.expr(init)
		g.write("\n")
	case *ast.If:
		g.ifStmt(s)
	case *ast.For:
		g.forStmt(s)
	case *ast.While:
		g.doTabs()
		g.write("while ")
		g.expr(s.Cond)
		g.write(":\n")
		g.indented(func() {
			g.stmt(s.Body)
		})
	case *ast.DoWhile:
		g.doWhileStmt(s)
	case *ast.Jump:
		// No pretending these are structured: every jump routes through
		// the goto primitive uniformly, loops included.
		g.doTabs()
		g.writef("goto .%s\n", s.Label)
	case *ast.Label:
		g.doTabs()
		g.writef("label .%s\n", s.Name)
	case *ast.Return:
		g.doTabs()
		if s.Value != nil {
			g.write("return ")
			g.expr(s.Value)
		} else {
			g.write("return")
		}
		g.write("\n")
	case *ast.StateChange:
		g.doTabs()
		g.writef("raise StateChangeException('%s')\n", s.State)
	default:
		panic(fmt.Sprintf("codegen: unknown statement node %T", s))
	}
}

func (g *Generator) ifStmt(s *ast.If) {
	g.doTabs()
	g.write("if ")
	g.expr(s.Cond)
	g.write(":\n")
	g.indented(func() {
		g.stmt(s.Then)
	})
	if s.Else != nil {
		g.doTabs()
		g.write("else:\n")
		g.indented(func() {
			g.stmt(s.Else)
		})
	}
}

// forStmt lowers the counted loop to an unconditional loop. The source and
// host counted loops disagree on evaluation-order edge cases, so the
// uniform lowering keeps iteration count and evaluation order identical:
// init clauses first as plain statements, then loop forever, break on the
// negated check, run the body, run the increment clauses in order.
func (g *Generator) forStmt(s *ast.For) {
	for _, init := range s.Init {
		g.doTabs()
		g.expr(init)
		g.write("\n")
	}
	g.doTabs()
	g.write("while True:\n")
	g.indented(func() {
		g.doTabs()
		g.write("if not ")
		g.expr(s.Cond)
		g.write(":\n")
		g.indented(func() {
			g.doTabs()
			g.write("break\n")
		})
		g.stmt(s.Body)
		for _, incr := range s.Incr {
			g.doTabs()
			g.expr(incr)
			g.write("\n")
		}
	})
}

func (g *Generator) doWhileStmt(s *ast.DoWhile) {
	g.doTabs()
	g.write("while True:\n")
	g.indented(func() {
		g.stmt(s.Body)
		g.doTabs()
		g.write("if not ")
		g.expr(s.Cond)
		g.write(":\n")
		g.indented(func() {
			g.doTabs()
			g.write("break\n")
		})
	})
}

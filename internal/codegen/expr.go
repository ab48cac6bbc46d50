package codegen

import (
	"fmt"
	"strconv"

	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/types"
)

// Binary operator dispatch helpers in the runtime library. Each helper is
// called with the right operand first, then the left. That is the
// runtime's calling convention, not a mistake to correct.
var binaryHelpers = map[ast.Operator]string{
	ast.OpAdd:     "radd",
	ast.OpSub:     "rsub",
	ast.OpMul:     "rmul",
	ast.OpDiv:     "rdiv",
	ast.OpMod:     "rmod",
	ast.OpEq:      "req",
	ast.OpNeq:     "rneq",
	ast.OpGt:      "rgreater",
	ast.OpLt:      "rless",
	ast.OpGeq:     "rgeq",
	ast.OpLeq:     "rleq",
	ast.OpBoolAnd: "rbooland",
	ast.OpBoolOr:  "rboolor",
	ast.OpBitAnd:  "rbitand",
	ast.OpBitOr:   "rbitor",
	ast.OpBitXor:  "rbitxor",
	ast.OpShl:     "rshl",
	ast.OpShr:     "rshr",
}

var unaryHelpers = map[ast.Operator]string{
	ast.OpNeg:     "neg",
	ast.OpBitNot:  "bitnot",
	ast.OpBoolNot: "boolnot",
}

// memberOffset maps a coordinate member to its fixed offset.
func memberOffset(member string) int {
	switch member {
	case ast.MemberX:
		return 0
	case ast.MemberY:
		return 1
	case ast.MemberZ:
		return 2
	case ast.MemberS:
		return 3
	}
	panic(fmt.Sprintf("codegen: unknown coordinate member %q", member))
}

func (g *Generator) expr(e ast.Expression) {
	switch e := e.(type) {
	case *ast.IntegerLit:
		g.write(strconv.FormatInt(int64(e.Value), 10))
	case *ast.FloatLit:
		g.writeFloat(e.Value)
	case *ast.StringLit:
		g.writef("\"%s\"", pyEscape(e.Value))
	case *ast.KeyLit:
		g.writef("Key(\"%s\")", pyEscape(e.Value))
	case *ast.VectorLit:
		g.write("Vector((")
		g.writeFloat(e.X)
		g.write(", ")
		g.writeFloat(e.Y)
		g.write(", ")
		g.writeFloat(e.Z)
		g.write("))")
	case *ast.QuaternionLit:
		g.write("Quaternion((")
		g.writeFloat(e.X)
		g.write(", ")
		g.writeFloat(e.Y)
		g.write(", ")
		g.writeFloat(e.Z)
		g.write(", ")
		g.writeFloat(e.S)
		g.write("))")
	case *ast.VectorExpr:
		g.write("Vector((")
		g.exprList(e.Components[:])
		g.write("))")
	case *ast.QuaternionExpr:
		g.write("Quaternion((")
		g.exprList(e.Components[:])
		g.write("))")
	case *ast.ListExpr:
		g.write("[")
		g.exprList(e.Elements)
		g.write("]")
	case *ast.Typecast:
		g.typecast(e)
	case *ast.Call:
		g.call(e)
	case *ast.LValue:
		g.lvalue(e)
	case *ast.Binary:
		g.binary(e)
	case *ast.Unary:
		g.unary(e)
	case *ast.Print:
		g.write("print(")
		g.expr(e.Value)
		g.write(")")
	case *ast.Paren:
		g.write("(")
		g.expr(e.Value)
		g.write(")")
	case *ast.BoolConv:
		g.write("cond(")
		g.expr(e.Value)
		g.write(")")
	default:
		panic(fmt.Sprintf("codegen: unknown expression node %T", e))
	}
}

func (g *Generator) exprList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			g.write(", ")
		}
		g.expr(e)
	}
}

func (g *Generator) typecast(e *ast.Typecast) {
	// int to float reads better as a plain conversion and behaves the same
	if e.Value.Type() == types.Integer && e.To == types.Float {
		g.write("float(")
		g.expr(e.Value)
		g.write(")")
		return
	}
	g.write("typecast(")
	g.expr(e.Value)
	g.writef(", %s)", e.To.PyName())
}

func (g *Generator) call(e *ast.Call) {
	if e.Fun.Scope == ast.ScopeBuiltin {
		g.write(builtinNamespace + ".")
	} else {
		g.write("self.")
	}
	g.writef("%s(", e.Fun.Name)
	g.exprList(e.Args)
	g.write(")")
}

func (g *Generator) lvalue(e *ast.LValue) {
	if e.Sym.Scope == ast.ScopeGlobal {
		g.write("self.")
	}
	g.write(e.Sym.Name)
	if e.Member != "" {
		g.writef("[%d]", memberOffset(e.Member))
	}
}

// mutatedMember emits a copy of the coordinate value with one component
// replaced. Coordinate types are never mutated in place, so a member
// assignment rebinds the whole variable to the copy.
func (g *Generator) mutatedMember(sym *ast.Symbol, member string, rhs func()) {
	g.write("replace_coord_axis(")
	if sym.Scope == ast.ScopeGlobal {
		g.write("self.")
	}
	g.writef("%s, %d, ", sym.Name, memberOffset(member))
	rhs()
	g.write(")")
}

func (g *Generator) binary(e *ast.Binary) {
	if e.Op == ast.OpAssign {
		g.assign(e)
		return
	}
	if e.Op.CompoundAssignment() {
		g.compoundAssign(e)
		return
	}
	helper, ok := binaryHelpers[e.Op]
	if !ok {
		panic(fmt.Sprintf("codegen: operator %v outside the closed binary set", e.Op))
	}
	g.write(helper + "(")
	g.expr(e.RHS)
	g.write(", ")
	g.expr(e.LHS)
	g.write(")")
}

func (g *Generator) assign(e *ast.Binary) {
	lv, ok := e.LHS.(*ast.LValue)
	if !ok {
		panic(fmt.Sprintf("codegen: assignment target %T is not an lvalue", e.LHS))
	}
	sym := lv.Sym
	writeRHS := func() { g.expr(e.RHS) }

	if !e.ResultNeeded {
		// statement context: plain rebind
		if sym.Scope == ast.ScopeGlobal {
			g.write("self.")
		}
		g.writef("%s = ", sym.Name)
		if lv.Member != "" {
			g.mutatedMember(sym, lv.Member, writeRHS)
		} else {
			writeRHS()
		}
		return
	}

	// expression context: the assignment must also yield its value
	if sym.Scope == ast.ScopeGlobal {
		// the walrus operator cannot target attributes, so globals go
		// through the assign-and-return helper
		g.writef("assign(self.__dict__, \"%s\", ", sym.Name)
	} else {
		g.writef("(%s := ", sym.Name)
	}
	if lv.Member != "" {
		g.mutatedMember(sym, lv.Member, writeRHS)
	} else {
		writeRHS()
	}
	g.write(")")
	if lv.Member != "" {
		// index the rebuilt coordinate back down to the assigned component
		g.writef("[%d]", memberOffset(lv.Member))
	}
}

// compoundAssign handles compound arithmetic assignment that survives
// desugaring: the operand kinds differ, so the combined value is re-cast
// to the target's own type before the rebind (the source language narrows
// on compound assignment). Same-kind forms arrive here as plain
// assignments; coordinate members never do, their components are always
// float and therefore same-kind.
func (g *Generator) compoundAssign(e *ast.Binary) {
	lv, ok := e.LHS.(*ast.LValue)
	if !ok {
		panic(fmt.Sprintf("codegen: assignment target %T is not an lvalue", e.LHS))
	}
	if lv.Member != "" {
		panic("codegen: compound assignment to a coordinate member was not desugared")
	}
	sym := lv.Sym

	if sym.Scope == ast.ScopeGlobal {
		g.writef("assign(self.__dict__, \"%s\", ", sym.Name)
	} else {
		g.writef("(%s := ", sym.Name)
	}

	helper := binaryHelpers[e.Op.CompoundBase()]
	needCast := lv.Type() != e.RHS.Type()
	if needCast {
		g.write("typecast(")
	}
	g.writef("%s(", helper)
	g.expr(e.RHS)
	g.write(", ")
	g.expr(e.LHS)
	g.write(")")
	if needCast {
		g.writef(", %s)", lv.Type().PyName())
	}
	g.write(")")
}

func (g *Generator) unary(e *ast.Unary) {
	if e.Op.IncDec() {
		g.incDec(e)
		return
	}
	helper, ok := unaryHelpers[e.Op]
	if !ok {
		panic(fmt.Sprintf("codegen: operator %v outside the closed unary set", e.Op))
	}
	g.write(helper + "(")
	g.expr(e.Operand)
	g.write(")")
}

func (g *Generator) incDec(e *ast.Unary) {
	lv, ok := e.Operand.(*ast.LValue)
	if !ok {
		panic(fmt.Sprintf("codegen: increment target %T is not an lvalue", e.Operand))
	}
	sym := lv.Sym
	post := e.Op == ast.OpPostIncr || e.Op == ast.OpPostDecr
	negative := e.Op == ast.OpPreDecr || e.Op == ast.OpPostDecr

	if e.ResultNeeded || lv.Member != "" {
		// expression context (or a member target, which always needs the
		// copy-and-rebind helper): the side effect has to be emulated
		if post {
			g.write("post")
		} else {
			g.write("pre")
		}
		if negative {
			g.write("decr")
		} else {
			g.write("incr")
		}
		g.write("(")
		if sym.Scope == ast.ScopeGlobal {
			g.write("self.__dict__")
		} else {
			g.write("locals()")
		}
		g.writef(", \"%s\"", sym.Name)
		if lv.Member != "" {
			g.writef(", %d", memberOffset(lv.Member))
		}
		g.write(")")
		return
	}

	// statement context: the idiomatic step-by-one form
	if sym.Scope == ast.ScopeGlobal {
		g.write("self.")
	}
	g.write(sym.Name)
	if negative {
		g.write(" -= ")
	} else {
		g.write(" += ")
	}
	g.expr(ast.OneValue(lv.Type()))
}

// Package desugar normalizes a resolved tree for generation. It runs
// exactly once, between front-end resolution and code generation, and is
// the only mutation the backend ever applies to the tree:
//
//   - every implicit coercion becomes an explicit Typecast node
//   - every loop/branch condition is wrapped in a boolean coercion
//   - same-kind compound assignments become plain assignments over the
//     matching operator helper; only kind-narrowing compounds survive
//   - binary/unary expressions are marked with whether their value is
//     consumed by an enclosing expression
//
// The pass is idempotent and never produces diagnostics: the front end
// already validated everything it touches.
package desugar

import (
	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/types"
)

// Run desugars the script in place.
func Run(script *ast.Script) {
	for _, glob := range script.Globals {
		if glob.Value != nil {
			glob.Value = coerce(expr(glob.Value, true), glob.Sym.Type)
		}
	}
	for _, fn := range script.Functions {
		stmt(fn.Body, fn.Ret)
	}
	for _, state := range script.States {
		for _, handler := range state.Handlers {
			stmt(handler.Body, types.None)
		}
	}
}

// coerce wraps e in an explicit cast when the source language would
// implicitly convert it to want. Only the language's implicit coercions
// qualify: integer to float, and string/key in either direction.
func coerce(e ast.Expression, want types.Tag) ast.Expression {
	if e == nil || e.Type() == want {
		return e
	}
	from := e.Type()
	switch {
	case from == types.Integer && want == types.Float,
		from == types.String && want == types.Key,
		from == types.Key && want == types.String:
		return &ast.Typecast{Pos: e.GetPos(), Value: e, To: want}
	}
	return e
}

// condition wraps a check expression in the truthiness coercion unless it
// is already wrapped.
func condition(e ast.Expression) ast.Expression {
	if _, ok := e.(*ast.BoolConv); ok {
		return expr(e, true)
	}
	return &ast.BoolConv{Pos: e.GetPos(), Value: expr(e, true)}
}

func stmt(s ast.Statement, ret types.Tag) {
	switch s := s.(type) {
	case *ast.Nop, *ast.Jump, *ast.Label, *ast.StateChange:
	case *ast.Compound:
		for _, child := range s.Stmts {
			stmt(child, ret)
		}
	case *ast.ExprStmt:
		// the statement discards the value
		s.Expr = expr(s.Expr, false)
	case *ast.Decl:
		if s.Value != nil {
			s.Value = coerce(expr(s.Value, true), s.Sym.Type)
		}
	case *ast.If:
		s.Cond = condition(s.Cond)
		stmt(s.Then, ret)
		if s.Else != nil {
			stmt(s.Else, ret)
		}
	case *ast.For:
		for i, init := range s.Init {
			s.Init[i] = expr(init, false)
		}
		s.Cond = condition(s.Cond)
		stmt(s.Body, ret)
		for i, incr := range s.Incr {
			s.Incr[i] = expr(incr, false)
		}
	case *ast.While:
		s.Cond = condition(s.Cond)
		stmt(s.Body, ret)
	case *ast.DoWhile:
		stmt(s.Body, ret)
		s.Cond = condition(s.Cond)
	case *ast.Return:
		if s.Value != nil {
			s.Value = coerce(expr(s.Value, true), ret)
		}
	}
}

// expr desugars an expression tree. needed records whether an enclosing
// expression consumes the value; only statement roots pass false.
func expr(e ast.Expression, needed bool) ast.Expression {
	switch e := e.(type) {
	case *ast.VectorExpr:
		for i, c := range e.Components {
			e.Components[i] = coerce(expr(c, true), types.Float)
		}
	case *ast.QuaternionExpr:
		for i, c := range e.Components {
			e.Components[i] = coerce(expr(c, true), types.Float)
		}
	case *ast.ListExpr:
		for i, el := range e.Elements {
			e.Elements[i] = expr(el, true)
		}
	case *ast.Typecast:
		e.Value = expr(e.Value, true)
	case *ast.Call:
		for i, arg := range e.Args {
			e.Args[i] = expr(arg, true)
		}
	case *ast.Binary:
		return binary(e, needed)
	case *ast.Unary:
		e.ResultNeeded = needed
		e.Operand = expr(e.Operand, true)
	case *ast.Print:
		e.Value = expr(e.Value, true)
	case *ast.Paren:
		// grouping is transparent to value usage
		e.Value = expr(e.Value, needed)
	case *ast.BoolConv:
		e.Value = expr(e.Value, true)
	}
	return e
}

func binary(e *ast.Binary, needed bool) ast.Expression {
	e.ResultNeeded = needed
	if e.Op == ast.OpAssign {
		e.LHS = expr(e.LHS, true)
		lv := e.LHS.(*ast.LValue)
		e.RHS = coerce(expr(e.RHS, true), lv.Type())
		return e
	}
	if e.Op.CompoundAssignment() {
		return compound(e)
	}
	e.LHS = expr(e.LHS, true)
	e.RHS = expr(e.RHS, true)
	return e
}

// compound rewrites x op= y. When the combined value already has the
// target's kind the statement is just x = x op y; only narrowing forms
// (an integer target combined with a float operand) keep their compound
// shape for the generator's typecast path.
func compound(e *ast.Binary) ast.Expression {
	lv := e.LHS.(*ast.LValue)
	e.RHS = expr(e.RHS, true)

	if lv.Member != "" {
		// coordinate members are float; any integer operand coerces up,
		// making the rewrite same-kind by construction
		e.RHS = coerce(e.RHS, types.Float)
	}

	narrowing := lv.Type() == types.Integer && e.RHS.Type() == types.Float
	if narrowing {
		return e
	}

	read := &ast.LValue{Pos: lv.Pos, Sym: lv.Sym, Member: lv.Member}
	e.RHS = &ast.Binary{
		Pos:          e.Pos,
		Op:           e.Op.CompoundBase(),
		LHS:          read,
		RHS:          e.RHS,
		ResultType:   lv.Type(),
		ResultNeeded: true,
	}
	e.Op = ast.OpAssign
	return e
}

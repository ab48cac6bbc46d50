package ast

import (
	"github.com/slpy-lang/slpy/internal/types"
)

// IntegerLit is a 32-bit integer constant.
type IntegerLit struct {
	Pos   Pos
	Value int32
}

func (e *IntegerLit) GetPos() Pos      { return e.Pos }
func (e *IntegerLit) expressionNode()  {}
func (e *IntegerLit) Type() types.Tag  { return types.Integer }

// FloatLit is a 32-bit float constant. The 32-bit representation is the
// value; emission must round-trip it bit-exactly.
type FloatLit struct {
	Pos   Pos
	Value float32
}

func (e *FloatLit) GetPos() Pos     { return e.Pos }
func (e *FloatLit) expressionNode() {}
func (e *FloatLit) Type() types.Tag { return types.Float }

// StringLit is a string constant.
type StringLit struct {
	Pos   Pos
	Value string
}

func (e *StringLit) GetPos() Pos     { return e.Pos }
func (e *StringLit) expressionNode() {}
func (e *StringLit) Type() types.Tag { return types.String }

// KeyLit is a key constant (an identifier-like string with its own type).
type KeyLit struct {
	Pos   Pos
	Value string
}

func (e *KeyLit) GetPos() Pos     { return e.Pos }
func (e *KeyLit) expressionNode() {}
func (e *KeyLit) Type() types.Tag { return types.Key }

// VectorLit is a constant three-component coordinate value.
type VectorLit struct {
	Pos     Pos
	X, Y, Z float32
}

func (e *VectorLit) GetPos() Pos     { return e.Pos }
func (e *VectorLit) expressionNode() {}
func (e *VectorLit) Type() types.Tag { return types.Vector }

// QuaternionLit is a constant four-component coordinate value.
type QuaternionLit struct {
	Pos        Pos
	X, Y, Z, S float32
}

func (e *QuaternionLit) GetPos() Pos     { return e.Pos }
func (e *QuaternionLit) expressionNode() {}
func (e *QuaternionLit) Type() types.Tag { return types.Quaternion }

// VectorExpr builds a vector from three sub-expressions.
type VectorExpr struct {
	Pos        Pos
	Components [3]Expression
}

func (e *VectorExpr) GetPos() Pos     { return e.Pos }
func (e *VectorExpr) expressionNode() {}
func (e *VectorExpr) Type() types.Tag { return types.Vector }

// QuaternionExpr builds a quaternion from four sub-expressions.
type QuaternionExpr struct {
	Pos        Pos
	Components [4]Expression
}

func (e *QuaternionExpr) GetPos() Pos     { return e.Pos }
func (e *QuaternionExpr) expressionNode() {}
func (e *QuaternionExpr) Type() types.Tag { return types.Quaternion }

// ListExpr is an ordered list of element expressions. Constant lists are
// list expressions whose elements are constants.
type ListExpr struct {
	Pos      Pos
	Elements []Expression
}

func (e *ListExpr) GetPos() Pos     { return e.Pos }
func (e *ListExpr) expressionNode() {}
func (e *ListExpr) Type() types.Tag { return types.List }

// Typecast converts Value to the To type. The desugaring pass guarantees
// every implicit coercion in the source shows up as one of these.
type Typecast struct {
	Pos   Pos
	Value Expression
	To    types.Tag
}

func (e *Typecast) GetPos() Pos     { return e.Pos }
func (e *Typecast) expressionNode() {}
func (e *Typecast) Type() types.Tag { return e.To }

// Call invokes a builtin or user-defined function. Arguments evaluate
// left to right.
type Call struct {
	Pos  Pos
	Fun  *Symbol
	Args []Expression
}

func (e *Call) GetPos() Pos     { return e.Pos }
func (e *Call) expressionNode() {}
func (e *Call) Type() types.Tag { return e.Fun.Type }

// Coordinate member offsets are fixed by the source language.
const (
	MemberX = "x"
	MemberY = "y"
	MemberZ = "z"
	MemberS = "s"
)

// LValue references a variable, optionally narrowed to one coordinate
// member. Member is empty for whole-variable references.
type LValue struct {
	Pos    Pos
	Sym    *Symbol
	Member string
}

func (e *LValue) GetPos() Pos     { return e.Pos }
func (e *LValue) expressionNode() {}

func (e *LValue) Type() types.Tag {
	if e.Member != "" {
		return types.Float
	}
	return e.Sym.Type
}

// Binary is a binary operation, including plain and compound assignment.
// ResultNeeded is false when the expression sits in statement context and
// its value is discarded; the desugaring pass computes it.
type Binary struct {
	Pos          Pos
	Op           Operator
	LHS          Expression
	RHS          Expression
	ResultType   types.Tag
	ResultNeeded bool
}

func (e *Binary) GetPos() Pos     { return e.Pos }
func (e *Binary) expressionNode() {}
func (e *Binary) Type() types.Tag { return e.ResultType }

// Unary is a unary operation, including pre/post increment and decrement.
type Unary struct {
	Pos          Pos
	Op           Operator
	Operand      Expression
	ResultType   types.Tag
	ResultNeeded bool
}

func (e *Unary) GetPos() Pos     { return e.Pos }
func (e *Unary) expressionNode() {}
func (e *Unary) Type() types.Tag { return e.ResultType }

// Print is the source language's debug-print expression.
type Print struct {
	Pos   Pos
	Value Expression
}

func (e *Print) GetPos() Pos     { return e.Pos }
func (e *Print) expressionNode() {}
func (e *Print) Type() types.Tag { return types.None }

// Paren is an explicit grouping.
type Paren struct {
	Pos   Pos
	Value Expression
}

func (e *Paren) GetPos() Pos     { return e.Pos }
func (e *Paren) expressionNode() {}
func (e *Paren) Type() types.Tag { return e.Value.Type() }

// BoolConv coerces a value to the source language's truthiness rules
// (nonzero integers truthy, empty strings and lists falsy, and so on).
type BoolConv struct {
	Pos   Pos
	Value Expression
}

func (e *BoolConv) GetPos() Pos     { return e.Pos }
func (e *BoolConv) expressionNode() {}
func (e *BoolConv) Type() types.Tag { return types.Integer }

package ast

import (
	"fmt"

	"github.com/slpy-lang/slpy/internal/types"
)

// ZeroValue returns the canonical zero-value expression for a declared
// type: integer 0, float 0.0, empty string/key, all-zero coordinates, and
// the empty list. It is the implicit initializer of every declaration that
// lacks an explicit one.
func ZeroValue(t types.Tag) Expression {
	switch t {
	case types.Integer:
		return &IntegerLit{}
	case types.Float:
		return &FloatLit{}
	case types.String:
		return &StringLit{}
	case types.Key:
		return &KeyLit{}
	case types.Vector:
		return &VectorLit{}
	case types.Quaternion:
		return &QuaternionLit{}
	case types.List:
		return &ListExpr{}
	}
	panic(fmt.Sprintf("ast: no zero value for type %v", t))
}

// OneValue returns the unit-step constant for a numeric type. Increment
// and decrement statements count by it.
func OneValue(t types.Tag) Expression {
	switch t {
	case types.Integer:
		return &IntegerLit{Value: 1}
	case types.Float:
		return &FloatLit{Value: 1}
	}
	panic(fmt.Sprintf("ast: no unit value for type %v", t))
}

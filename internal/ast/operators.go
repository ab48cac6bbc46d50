package ast

import "fmt"

// Operator enumerates the closed operator set of the source language.
// The backend treats anything outside this set as a front-end contract
// violation.
type Operator int

const (
	// assignment
	OpAssign Operator = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign

	// arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// comparison
	OpEq
	OpNeq
	OpGt
	OpLt
	OpGeq
	OpLeq

	// boolean
	OpBoolAnd
	OpBoolOr

	// bitwise
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	// unary
	OpNeg
	OpBitNot
	OpBoolNot
	OpPreIncr
	OpPreDecr
	OpPostIncr
	OpPostDecr

	numOperators
)

var operatorNames = [numOperators]string{
	"=", "+=", "-=", "*=", "/=", "%=",
	"+", "-", "*", "/", "%",
	"==", "!=", ">", "<", ">=", "<=",
	"&&", "||",
	"&", "|", "^", "<<", ">>",
	"-", "~", "!", "++", "--", "++", "--",
}

func (op Operator) String() string {
	if op < 0 || op >= numOperators {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorNames[op]
}

// Assignment reports whether op is plain or compound assignment.
func (op Operator) Assignment() bool {
	return op >= OpAssign && op <= OpModAssign
}

// CompoundAssignment reports whether op is a compound arithmetic
// assignment.
func (op Operator) CompoundAssignment() bool {
	return op >= OpAddAssign && op <= OpModAssign
}

// CompoundBase returns the plain arithmetic operator underlying a compound
// assignment (+= -> +).
func (op Operator) CompoundBase() Operator {
	if !op.CompoundAssignment() {
		panic(fmt.Sprintf("ast: %v is not a compound assignment", op))
	}
	return OpAdd + (op - OpAddAssign)
}

// IncDec reports whether op is one of the four increment/decrement forms.
func (op Operator) IncDec() bool {
	return op >= OpPreIncr && op <= OpPostDecr
}

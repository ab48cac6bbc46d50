// Package ast models the input of the code generator: a fully parsed,
// symbol-resolved, type-annotated tree for the source scripting language.
// The front end owns construction; the backend reads it and never mutates
// it, except for the one-time desugaring pass that runs before generation
// and is conceptually part of tree construction.
package ast

import (
	"github.com/slpy-lang/slpy/internal/types"
)

// Pos is a source position. The backend itself never fails on user input,
// but positions ride along for diagnostics produced at the boundary.
type Pos struct {
	Line   int
	Column int
}

// Node is the base interface for all tree nodes.
type Node interface {
	GetPos() Pos
}

// Expression is a Node that produces a value. Every expression carries the
// type the front end resolved for it.
type Expression interface {
	Node
	expressionNode()
	Type() types.Tag
}

// Statement is a Node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Scope classifies where a symbol lives. The classification decides how a
// reference or call is namespaced in the emitted program.
type Scope int

const (
	ScopeBuiltin Scope = iota // runtime-library symbol
	ScopeGlobal               // script top-level
	ScopeLocal                // parameter or block-local
)

func (s Scope) String() string {
	switch s {
	case ScopeBuiltin:
		return "builtin"
	case ScopeGlobal:
		return "global"
	case ScopeLocal:
		return "local"
	}
	return "scope(?)"
}

// Symbol binds an identifier to its scope classification and resolved type.
// Every lvalue and callee resolves to exactly one Symbol.
type Symbol struct {
	Name  string
	Scope Scope
	Type  types.Tag
}

// Script is the root node: ordered global variables, ordered global
// functions, and the states with their event handlers. Global variable
// order is semantically significant: it fixes both attribute-declaration
// order and initializer-evaluation order.
type Script struct {
	Pos       Pos
	Globals   []*GlobalVariable
	Functions []*Function
	States    []*State
}

func (s *Script) GetPos() Pos { return s.Pos }

// GlobalVariable is one top-level variable. Value may be nil, in which case
// the type's canonical zero value is the initializer.
type GlobalVariable struct {
	Pos   Pos
	Sym   *Symbol
	Value Expression
}

func (g *GlobalVariable) GetPos() Pos { return g.Pos }

// Function is a user-defined global function.
type Function struct {
	Pos    Pos
	Name   string
	Ret    types.Tag
	Params []*Symbol
	Body   *Compound
}

func (f *Function) GetPos() Pos { return f.Pos }

// State owns an ordered set of event handlers.
type State struct {
	Pos      Pos
	Name     string
	Handlers []*Handler
}

func (s *State) GetPos() Pos { return s.Pos }

// Handler is one event handler within a state. Handlers never return a
// value; their result type is always none.
type Handler struct {
	Pos    Pos
	Name   string
	Params []*Symbol
	Body   *Compound
}

func (h *Handler) GetPos() Pos { return h.Pos }

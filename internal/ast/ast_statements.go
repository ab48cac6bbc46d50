package ast

// Nop is an empty statement.
type Nop struct {
	Pos Pos
}

func (s *Nop) GetPos() Pos    { return s.Pos }
func (s *Nop) statementNode() {}

// Compound is an ordered statement sequence, possibly empty.
type Compound struct {
	Pos   Pos
	Stmts []Statement
}

func (s *Compound) GetPos() Pos    { return s.Pos }
func (s *Compound) statementNode() {}

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	Pos  Pos
	Expr Expression
}

func (s *ExprStmt) GetPos() Pos    { return s.Pos }
func (s *ExprStmt) statementNode() {}

// Decl declares a typed local. Value may be nil, in which case the type's
// canonical zero value is the initializer.
type Decl struct {
	Pos   Pos
	Sym   *Symbol
	Value Expression
}

func (s *Decl) GetPos() Pos    { return s.Pos }
func (s *Decl) statementNode() {}

// If is a conditional with an optional else branch.
type If struct {
	Pos  Pos
	Cond Expression
	Then Statement
	Else Statement // nil when absent
}

func (s *If) GetPos() Pos    { return s.Pos }
func (s *If) statementNode() {}

// For is the counted loop form: init clauses, check, increment clauses.
type For struct {
	Pos  Pos
	Init []Expression
	Cond Expression
	Incr []Expression
	Body Statement
}

func (s *For) GetPos() Pos    { return s.Pos }
func (s *For) statementNode() {}

// While is the pre-test loop form.
type While struct {
	Pos  Pos
	Cond Expression
	Body Statement
}

func (s *While) GetPos() Pos    { return s.Pos }
func (s *While) statementNode() {}

// DoWhile is the post-test loop form.
type DoWhile struct {
	Pos  Pos
	Body Statement
	Cond Expression
}

func (s *DoWhile) GetPos() Pos    { return s.Pos }
func (s *DoWhile) statementNode() {}

// Jump transfers control to a label declared anywhere in an enclosing
// lexical scope.
type Jump struct {
	Pos   Pos
	Label string
}

func (s *Jump) GetPos() Pos    { return s.Pos }
func (s *Jump) statementNode() {}

// Label is a jump target.
type Label struct {
	Pos  Pos
	Name string
}

func (s *Label) GetPos() Pos    { return s.Pos }
func (s *Label) statementNode() {}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	Pos   Pos
	Value Expression // nil when absent
}

func (s *Return) GetPos() Pos    { return s.Pos }
func (s *Return) statementNode() {}

// StateChange transitions the script to another state.
type StateChange struct {
	Pos   Pos
	State string
}

func (s *StateChange) GetPos() Pos    { return s.Pos }
func (s *StateChange) statementNode() {}

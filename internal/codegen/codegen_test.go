package codegen

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/slpy-lang/slpy/internal/ast"
	"github.com/slpy-lang/slpy/internal/types"
)

func sym(name string, scope ast.Scope, t types.Tag) *ast.Symbol {
	return &ast.Symbol{Name: name, Scope: scope, Type: t}
}

func local(name string, t types.Tag) *ast.LValue {
	return &ast.LValue{Sym: sym(name, ast.ScopeLocal, t)}
}

func global(name string, t types.Tag) *ast.LValue {
	return &ast.LValue{Sym: sym(name, ast.ScopeGlobal, t)}
}

func emitExpr(e ast.Expression) string {
	g := New(Options{})
	g.expr(e)
	return g.buf.String()
}

func emitStmt(s ast.Statement) string {
	g := New(Options{})
	g.stmt(s)
	return g.buf.String()
}

// leHex is the independent oracle for the bin2float wire encoding: the
// little-endian bytes of the 32-bit pattern.
func leHex(f float32) string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	return hex.EncodeToString(b[:])
}

func TestWriteFloatIntegral(t *testing.T) {
	tests := []struct {
		value float32
		want  string
	}{
		{0, "0.0"},
		{2, "2.0"},
		{-3, "-3.0"},
		{1, "1.0"},
		{16777216, "16777216.0"},
		{math.Float32frombits(0x80000000), "-0.0"}, // negative zero keeps its sign
	}
	for _, tt := range tests {
		got := emitExpr(&ast.FloatLit{Value: tt.value})
		if got != tt.want {
			t.Errorf("writeFloat(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestWriteFloatBitExact(t *testing.T) {
	for _, f := range []float32{1.5, -1.5, 3.14, 0.1, -0.001, 2.5e-7} {
		want := fmt.Sprintf("bin2float('%s', '%s')",
			strconv.FormatFloat(float64(f), 'f', 6, 64), leHex(f))
		got := emitExpr(&ast.FloatLit{Value: f})
		if got != want {
			t.Errorf("writeFloat(%v) = %q, want %q", f, got, want)
		}
	}
}

func TestWriteFloatPinned(t *testing.T) {
	got := emitExpr(&ast.FloatLit{Value: 1.5})
	if got != "bin2float('1.500000', '0000c03f')" {
		t.Errorf("writeFloat(1.5) = %q", got)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"integer", &ast.IntegerLit{Value: 42}, "42"},
		{"negative integer", &ast.IntegerLit{Value: -2147483648}, "-2147483648"},
		{"string", &ast.StringLit{Value: "hi"}, `"hi"`},
		{"string escapes", &ast.StringLit{Value: "a\"b\\c\nd"}, `"a\"b\\c\nd"`},
		{"string control byte", &ast.StringLit{Value: "\x01"}, `"\x01"`},
		{"key", &ast.KeyLit{Value: "uuid-here"}, `Key("uuid-here")`},
		{"vector", &ast.VectorLit{X: 1, Y: 2, Z: 3}, "Vector((1.0, 2.0, 3.0))"},
		{"zero vector", &ast.VectorLit{}, "Vector((0.0, 0.0, 0.0))"},
		{
			"quaternion",
			&ast.QuaternionLit{S: 1},
			"Quaternion((0.0, 0.0, 0.0, 1.0))",
		},
		{
			"vector expression",
			&ast.VectorExpr{Components: [3]ast.Expression{
				local("a", types.Float),
				local("b", types.Float),
				&ast.FloatLit{Value: 3},
			}},
			"Vector((a, b, 3.0))",
		},
		{"empty list", &ast.ListExpr{}, "[]"},
		{
			"list",
			&ast.ListExpr{Elements: []ast.Expression{
				&ast.IntegerLit{Value: 1},
				&ast.StringLit{Value: "x"},
			}},
			`[1, "x"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypecast(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"int to float simplifies",
			&ast.Typecast{Value: &ast.IntegerLit{Value: 7}, To: types.Float},
			"float(7)",
		},
		{
			"float to string",
			&ast.Typecast{Value: &ast.FloatLit{Value: 2}, To: types.String},
			"typecast(2.0, str)",
		},
		{
			"string to key",
			&ast.Typecast{Value: &ast.StringLit{Value: "k"}, To: types.Key},
			`typecast("k", Key)`,
		},
		{
			"integer to list",
			&ast.Typecast{Value: &ast.IntegerLit{Value: 1}, To: types.List},
			"typecast(1, list)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallNamespacing(t *testing.T) {
	builtin := &ast.Call{
		Fun:  sym("llSay", ast.ScopeBuiltin, types.None),
		Args: []ast.Expression{&ast.IntegerLit{Value: 0}, &ast.StringLit{Value: "hi"}},
	}
	if got := emitExpr(builtin); got != `lslfuncs.llSay(0, "hi")` {
		t.Errorf("builtin call = %q", got)
	}
	user := &ast.Call{Fun: sym("helper", ast.ScopeGlobal, types.Integer)}
	if got := emitExpr(user); got != "self.helper()" {
		t.Errorf("user call = %q", got)
	}
}

func TestLValue(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"local", local("x", types.Integer), "x"},
		{"global", global("g", types.Integer), "self.g"},
		{
			"member offsets",
			&ast.LValue{Sym: sym("v", ast.ScopeLocal, types.Quaternion), Member: ast.MemberS},
			"v[3]",
		},
		{
			"global member",
			&ast.LValue{Sym: sym("v", ast.ScopeGlobal, types.Vector), Member: ast.MemberZ},
			"self.v[2]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Every dispatch helper takes the right operand first, then the left.
func TestBinaryOperandOrder(t *testing.T) {
	ops := []struct {
		op     ast.Operator
		helper string
	}{
		{ast.OpAdd, "radd"},
		{ast.OpSub, "rsub"},
		{ast.OpMul, "rmul"},
		{ast.OpDiv, "rdiv"},
		{ast.OpMod, "rmod"},
		{ast.OpEq, "req"},
		{ast.OpNeq, "rneq"},
		{ast.OpGt, "rgreater"},
		{ast.OpLt, "rless"},
		{ast.OpGeq, "rgeq"},
		{ast.OpLeq, "rleq"},
		{ast.OpBoolAnd, "rbooland"},
		{ast.OpBoolOr, "rboolor"},
		{ast.OpBitAnd, "rbitand"},
		{ast.OpBitOr, "rbitor"},
		{ast.OpBitXor, "rbitxor"},
		{ast.OpShl, "rshl"},
		{ast.OpShr, "rshr"},
	}
	for _, tt := range ops {
		e := &ast.Binary{
			Op:           tt.op,
			LHS:          local("lhs", types.Integer),
			RHS:          local("rhs", types.Integer),
			ResultType:   types.Integer,
			ResultNeeded: true,
		}
		want := tt.helper + "(rhs, lhs)"
		if got := emitExpr(e); got != want {
			t.Errorf("op %v: got %q, want %q", tt.op, got, want)
		}
	}
}

func TestAssignStatementContext(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"local",
			&ast.Binary{Op: ast.OpAssign, LHS: local("x", types.Integer),
				RHS: &ast.IntegerLit{Value: 5}, ResultType: types.Integer},
			"x = 5",
		},
		{
			"global",
			&ast.Binary{Op: ast.OpAssign, LHS: global("g", types.Integer),
				RHS: &ast.IntegerLit{Value: 5}, ResultType: types.Integer},
			"self.g = 5",
		},
		{
			// a member assignment rebinds the whole composite to a copy
			// with one component replaced, never mutating in place
			"local member",
			&ast.Binary{Op: ast.OpAssign,
				LHS: &ast.LValue{Sym: sym("v", ast.ScopeLocal, types.Vector), Member: ast.MemberX},
				RHS: &ast.FloatLit{Value: 5}, ResultType: types.Float},
			"v = replace_coord_axis(v, 0, 5.0)",
		},
		{
			"global member",
			&ast.Binary{Op: ast.OpAssign,
				LHS: &ast.LValue{Sym: sym("v", ast.ScopeGlobal, types.Vector), Member: ast.MemberY},
				RHS: &ast.FloatLit{Value: 5}, ResultType: types.Float},
			"self.v = replace_coord_axis(self.v, 1, 5.0)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssignExpressionContext(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"local walrus",
			&ast.Binary{Op: ast.OpAssign, LHS: local("x", types.Integer),
				RHS: &ast.IntegerLit{Value: 5}, ResultType: types.Integer, ResultNeeded: true},
			"(x := 5)",
		},
		{
			"global assign helper",
			&ast.Binary{Op: ast.OpAssign, LHS: global("g", types.Integer),
				RHS: &ast.IntegerLit{Value: 5}, ResultType: types.Integer, ResultNeeded: true},
			`assign(self.__dict__, "g", 5)`,
		},
		{
			"local member indexes back down",
			&ast.Binary{Op: ast.OpAssign,
				LHS:          &ast.LValue{Sym: sym("v", ast.ScopeLocal, types.Vector), Member: ast.MemberX},
				RHS:          &ast.FloatLit{Value: 5},
				ResultType:   types.Float,
				ResultNeeded: true},
			"(v := replace_coord_axis(v, 0, 5.0))[0]",
		},
		{
			"global member indexes back down",
			&ast.Binary{Op: ast.OpAssign,
				LHS:          &ast.LValue{Sym: sym("v", ast.ScopeGlobal, types.Vector), Member: ast.MemberZ},
				RHS:          &ast.FloatLit{Value: 5},
				ResultType:   types.Float,
				ResultNeeded: true},
			`assign(self.__dict__, "v", replace_coord_axis(self.v, 2, 5.0))[2]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// An integer target combined with a float operand narrows back to the
// target type on compound assignment.
func TestCompoundAssignNarrowing(t *testing.T) {
	e := &ast.Binary{
		Op:         ast.OpMulAssign,
		LHS:        local("x", types.Integer),
		RHS:        local("f", types.Float),
		ResultType: types.Integer,
	}
	if got := emitExpr(e); got != "(x := typecast(rmul(f, x), int))" {
		t.Errorf("local compound = %q", got)
	}
	e.LHS = global("g", types.Integer)
	if got := emitExpr(e); got != `assign(self.__dict__, "g", typecast(rmul(f, self.g), int))` {
		t.Errorf("global compound = %q", got)
	}
}

func TestIncDecStatementContext(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"pre-increment local int",
			&ast.Unary{Op: ast.OpPreIncr, Operand: local("i", types.Integer), ResultType: types.Integer},
			"i += 1",
		},
		{
			"post-decrement local int",
			&ast.Unary{Op: ast.OpPostDecr, Operand: local("i", types.Integer), ResultType: types.Integer},
			"i -= 1",
		},
		{
			"increment counts by the type's unit",
			&ast.Unary{Op: ast.OpPreIncr, Operand: local("f", types.Float), ResultType: types.Float},
			"f += 1.0",
		},
		{
			"global",
			&ast.Unary{Op: ast.OpPostIncr, Operand: global("g", types.Integer), ResultType: types.Integer},
			"self.g += 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncDecExpressionContext(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{
			"post-increment local",
			&ast.Unary{Op: ast.OpPostIncr, Operand: local("i", types.Integer),
				ResultType: types.Integer, ResultNeeded: true},
			`postincr(locals(), "i")`,
		},
		{
			"pre-decrement global",
			&ast.Unary{Op: ast.OpPreDecr, Operand: global("g", types.Integer),
				ResultType: types.Integer, ResultNeeded: true},
			`predecr(self.__dict__, "g")`,
		},
		{
			// member targets always need the helper, even as statements
			"member target in statement context",
			&ast.Unary{Op: ast.OpPreIncr,
				Operand:    &ast.LValue{Sym: sym("v", ast.ScopeLocal, types.Vector), Member: ast.MemberY},
				ResultType: types.Float},
			`preincr(locals(), "v", 1)`,
		},
		{
			"global member",
			&ast.Unary{Op: ast.OpPostDecr,
				Operand:      &ast.LValue{Sym: sym("q", ast.ScopeGlobal, types.Quaternion), Member: ast.MemberS},
				ResultType:   types.Float,
				ResultNeeded: true},
			`postdecr(self.__dict__, "q", 3)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExpr(tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnaryHelpers(t *testing.T) {
	tests := []struct {
		op   ast.Operator
		want string
	}{
		{ast.OpNeg, "neg(x)"},
		{ast.OpBitNot, "bitnot(x)"},
		{ast.OpBoolNot, "boolnot(x)"},
	}
	for _, tt := range tests {
		e := &ast.Unary{Op: tt.op, Operand: local("x", types.Integer),
			ResultType: types.Integer, ResultNeeded: true}
		if got := emitExpr(e); got != tt.want {
			t.Errorf("op %v: got %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWrapperExpressions(t *testing.T) {
	if got := emitExpr(&ast.Print{Value: local("x", types.String)}); got != "print(x)" {
		t.Errorf("print = %q", got)
	}
	if got := emitExpr(&ast.Paren{Value: local("x", types.Integer)}); got != "(x)" {
		t.Errorf("paren = %q", got)
	}
	if got := emitExpr(&ast.BoolConv{Value: local("x", types.List)}); got != "cond(x)" {
		t.Errorf("bool conversion = %q", got)
	}
}

func TestSimpleStatements(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Statement
		want string
	}{
		{"nop", &ast.Nop{}, "pass\n"},
		{"empty compound", &ast.Compound{}, "pass\n"},
		{
			"declaration with initializer",
			&ast.Decl{Sym: sym("x", ast.ScopeLocal, types.Integer), Value: &ast.IntegerLit{Value: 3}},
			"x: int = 3\n",
		},
		{
			"declaration defaults to zero value",
			&ast.Decl{Sym: sym("v", ast.ScopeLocal, types.Vector)},
			"v: Vector = Vector((0.0, 0.0, 0.0))\n",
		},
		{
			"list declaration default",
			&ast.Decl{Sym: sym("l", ast.ScopeLocal, types.List)},
			"l: list = []\n",
		},
		{"jump", &ast.Jump{Label: "out"}, "goto .out\n"},
		{"label", &ast.Label{Name: "out"}, "label .out\n"},
		{"bare return", &ast.Return{}, "return\n"},
		{"return value", &ast.Return{Value: &ast.IntegerLit{Value: 1}}, "return 1\n"},
		{
			"state change",
			&ast.StateChange{State: "armed"},
			"raise StateChangeException('armed')\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitStmt(tt.stmt); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIfElse(t *testing.T) {
	s := &ast.If{
		Cond: &ast.BoolConv{Value: local("x", types.Integer)},
		Then: &ast.Compound{Stmts: []ast.Statement{&ast.Return{}}},
		Else: &ast.Compound{},
	}
	want := "if cond(x):\n" +
		"    return\n" +
		"else:\n" +
		"    pass\n"
	if got := emitStmt(s); got != want {
		t.Errorf("if/else:\n got %q\nwant %q", got, want)
	}
}

func TestWhile(t *testing.T) {
	s := &ast.While{
		Cond: &ast.BoolConv{Value: local("x", types.Integer)},
		Body: &ast.Compound{Stmts: []ast.Statement{&ast.Jump{Label: "top"}}},
	}
	want := "while cond(x):\n    goto .top\n"
	if got := emitStmt(s); got != want {
		t.Errorf("while:\n got %q\nwant %q", got, want)
	}
}

func TestDoWhile(t *testing.T) {
	s := &ast.DoWhile{
		Body: &ast.Compound{Stmts: []ast.Statement{&ast.Nop{}}},
		Cond: &ast.BoolConv{Value: local("x", types.Integer)},
	}
	want := "while True:\n" +
		"    pass\n" +
		"    if not cond(x):\n" +
		"        break\n"
	if got := emitStmt(s); got != want {
		t.Errorf("do/while:\n got %q\nwant %q", got, want)
	}
}

// The counted loop lowers to: init statements, loop forever, break on the
// negated check, body, then increment statements, preserving the source's
// iteration and evaluation order exactly.
func TestForLowering(t *testing.T) {
	i := sym("i", ast.ScopeLocal, types.Integer)
	s := &ast.For{
		Init: []ast.Expression{&ast.Binary{Op: ast.OpAssign,
			LHS: &ast.LValue{Sym: i}, RHS: &ast.IntegerLit{Value: 0}, ResultType: types.Integer}},
		Cond: &ast.BoolConv{Value: &ast.Binary{Op: ast.OpLt,
			LHS: &ast.LValue{Sym: i}, RHS: &ast.IntegerLit{Value: 10},
			ResultType: types.Integer, ResultNeeded: true}},
		Incr: []ast.Expression{&ast.Unary{Op: ast.OpPreIncr,
			Operand: &ast.LValue{Sym: i}, ResultType: types.Integer}},
		Body: &ast.Compound{Stmts: []ast.Statement{&ast.Nop{}}},
	}
	want := "i = 0\n" +
		"while True:\n" +
		"    if not cond(rless(10, i)):\n" +
		"        break\n" +
		"    pass\n" +
		"    i += 1\n"
	if got := emitStmt(s); got != want {
		t.Errorf("for lowering:\n got %q\nwant %q", got, want)
	}
}

func TestScriptShape(t *testing.T) {
	script := &ast.Script{
		Globals: []*ast.GlobalVariable{
			{Sym: sym("g", ast.ScopeGlobal, types.Integer)},
			{Sym: sym("name", ast.ScopeGlobal, types.String), Value: &ast.StringLit{Value: "hi"}},
		},
		Functions: []*ast.Function{
			{
				Name:   "add",
				Ret:    types.Integer,
				Params: []*ast.Symbol{sym("x", ast.ScopeLocal, types.Integer)},
				Body: &ast.Compound{Stmts: []ast.Statement{
					&ast.Return{Value: local("x", types.Integer)},
				}},
			},
		},
		States: []*ast.State{
			{
				Name: "default",
				Handlers: []*ast.Handler{
					{
						Name: "state_entry",
						Body: &ast.Compound{Stmts: []ast.Statement{
							&ast.ExprStmt{Expr: &ast.Binary{Op: ast.OpAssign,
								LHS: global("g", types.Integer),
								RHS: &ast.IntegerLit{Value: 1}, ResultType: types.Integer}},
						}},
					},
				},
			},
		},
	}

	want := "from slrt import *\n" +
		"\n" +
		"\n" +
		"class Script(BaseLSLScript):\n" +
		"    g: int\n" +
		"    name: str\n" +
		"\n" +
		"    def __init__(self):\n" +
		"        super().__init__()\n" +
		"        self.g = 0\n" +
		"        self.name = \"hi\"\n" +
		"\n" +
		"    @with_goto\n" +
		"    def add(self, x: int) -> int:\n" +
		"        return x\n" +
		"\n" +
		"    @with_goto\n" +
		"    def edefaultstate_entry(self) -> None:\n" +
		"        self.g = 1\n" +
		"\n"

	got := string(New(Options{}).Generate(script))
	if got != want {
		t.Errorf("script shape:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateOptions(t *testing.T) {
	script := &ast.Script{}
	got := string(New(Options{RuntimeModule: "lslrt", ClassName: "Droplet", IndentWidth: 2}).Generate(script))
	if !strings.HasPrefix(got, "from lslrt import *\n") {
		t.Errorf("runtime module not honored: %q", got)
	}
	if !strings.Contains(got, "class Droplet(BaseLSLScript):\n") {
		t.Errorf("class name not honored: %q", got)
	}
	if !strings.Contains(got, "\n  def __init__(self):\n") {
		t.Errorf("indent width not honored: %q", got)
	}
}

// Generators share nothing; concurrent instances must not interfere.
func TestConcurrentGenerators(t *testing.T) {
	script := &ast.Script{
		Globals: []*ast.GlobalVariable{{Sym: sym("g", ast.ScopeGlobal, types.Float)}},
	}
	want := string(New(Options{}).Generate(script))
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- string(New(Options{}).Generate(script))
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Fatalf("concurrent generation diverged:\n got %q\nwant %q", got, want)
		}
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// Anything outside the closed sets is a front-end contract violation and
// aborts rather than producing a diagnostic.
func TestContractViolationsPanic(t *testing.T) {
	mustPanic(t, "unknown operator", func() {
		emitExpr(&ast.Binary{Op: ast.Operator(999),
			LHS: local("a", types.Integer), RHS: local("b", types.Integer)})
	})
	mustPanic(t, "unknown member", func() {
		emitExpr(&ast.LValue{Sym: sym("v", ast.ScopeLocal, types.Vector), Member: "w"})
	})
	mustPanic(t, "unknown type tag", func() {
		emitExpr(&ast.Typecast{Value: &ast.IntegerLit{}, To: types.Tag(99)})
	})
	mustPanic(t, "non-lvalue assignment target", func() {
		emitExpr(&ast.Binary{Op: ast.OpAssign,
			LHS: &ast.IntegerLit{}, RHS: &ast.IntegerLit{}})
	})
}

func TestIndentRestoredAfterPanic(t *testing.T) {
	g := New(Options{})
	func() {
		defer func() { recover() }()
		g.indented(func() {
			panic("boom")
		})
	}()
	if g.tabs != 0 {
		t.Errorf("indentation depth not restored after panic: %d", g.tabs)
	}
}

package parser

import (
	"testing"

	"ex/interpreter-go/pkg/ast"
)

func parse(t *testing.T, source string) []ast.Statement {
	t.Helper()
	statements, err := ParseSource(source)
	if err != nil {
		t.Fatalf("parse %q: unexpected error: %v", source, err)
	}
	return statements
}

func parseOne(t *testing.T, source string) ast.Statement {
	t.Helper()
	statements := parse(t, source)
	if len(statements) != 1 {
		t.Fatalf("parse %q: got %d statements, want 1", source, len(statements))
	}
	return statements[0]
}

func parseErr(t *testing.T, source string) string {
	t.Helper()
	_, err := ParseSource(source)
	if err == nil {
		t.Fatalf("parse %q: expected error, got none", source)
	}
	return err.Error()
}

func binary(t *testing.T, expr ast.Expression, op string) *ast.BinaryExpression {
	t.Helper()
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expression: got %T, want BinaryExpression", expr)
	}
	if bin.Operator != op {
		t.Fatalf("operator: got %q, want %q", bin.Operator, op)
	}
	return bin
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func TestLockFamilyStatements(t *testing.T) {
	statements := parse(t, "lock a unlock b kill c revive d eternal e")
	if len(statements) != 5 {
		t.Fatalf("statement count: got %d, want 5", len(statements))
	}
	if s := statements[0].(*ast.SmartLockStatement); s.Variable != "a" {
		t.Fatalf("lock variable: got %q", s.Variable)
	}
	if s := statements[1].(*ast.SmartUnlockStatement); s.Variable != "b" {
		t.Fatalf("unlock variable: got %q", s.Variable)
	}
	if s := statements[2].(*ast.SmartKillStatement); s.Variable != "c" {
		t.Fatalf("kill variable: got %q", s.Variable)
	}
	if s := statements[3].(*ast.SmartReviveStatement); s.Variable != "d" {
		t.Fatalf("revive variable: got %q", s.Variable)
	}
	if s := statements[4].(*ast.SmartConstStatement); s.Variable != "e" {
		t.Fatalf("eternal variable: got %q", s.Variable)
	}
}

func TestCallableLabel(t *testing.T) {
	stmt := parseOne(t, "label add(a = x, b = y) { log x + y }")
	label, ok := stmt.(*ast.LabelStatement)
	if !ok {
		t.Fatalf("statement: got %T, want LabelStatement", stmt)
	}
	if len(label.Labels) != 1 {
		t.Fatalf("label count: got %d, want 1", len(label.Labels))
	}
	decl := label.Labels[0]
	if decl.Name != "add" || !decl.Callable {
		t.Fatalf("decl: got name %q callable %v", decl.Name, decl.Callable)
	}
	if len(decl.Params) != 2 || decl.Params[0] != "a" || decl.Params[1] != "b" {
		t.Fatalf("params: got %v", decl.Params)
	}
	if len(decl.Internals) != 2 || decl.Internals[0] != "x" || decl.Internals[1] != "y" {
		t.Fatalf("internals: got %v", decl.Internals)
	}
	if len(decl.Body) != 1 {
		t.Fatalf("body: got %d statements, want 1", len(decl.Body))
	}
}

func TestLabelWithVisibilityClause(t *testing.T) {
	stmt := parseOne(t, "label f() visibility[state, counters] { pass }")
	decl := stmt.(*ast.LabelStatement).Labels[0]
	if len(decl.VisibleBlocks) != 2 || decl.VisibleBlocks[0] != "state" || decl.VisibleBlocks[1] != "counters" {
		t.Fatalf("visible blocks: got %v", decl.VisibleBlocks)
	}
}

func TestControlFlowLabel(t *testing.T) {
	stmt := parseOne(t, "label @loop { pass }")
	decl := stmt.(*ast.LabelStatement).Labels[0]
	if decl.Name != "loop" || decl.Callable {
		t.Fatalf("decl: got name %q callable %v", decl.Name, decl.Callable)
	}
	if len(decl.Params) != 0 || len(decl.Body) != 1 {
		t.Fatalf("decl: got %d params, %d body statements", len(decl.Params), len(decl.Body))
	}
}

func TestJumpStatement(t *testing.T) {
	stmt := parseOne(t, "jump loop")
	if s := stmt.(*ast.JumpStatement); s.Target != "loop" {
		t.Fatalf("target: got %q", s.Target)
	}
}

func TestIfElifElse(t *testing.T) {
	stmt := parseOne(t, "if x == 1 { pass } elif x == 2 { pass } elif x == 3 { pass } else { log x }")
	ifStmt, ok := stmt.(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement: got %T, want IfStatement", stmt)
	}
	binary(t, ifStmt.Condition, "==")
	if len(ifStmt.ThenBranch) != 1 {
		t.Fatalf("then branch: got %d statements", len(ifStmt.ThenBranch))
	}
	if len(ifStmt.ElifBranches) != 2 {
		t.Fatalf("elif branches: got %d, want 2", len(ifStmt.ElifBranches))
	}
	if len(ifStmt.ElseBranch) != 1 {
		t.Fatalf("else branch: got %d statements", len(ifStmt.ElseBranch))
	}
}

func TestIfWithoutElse(t *testing.T) {
	stmt := parseOne(t, "if true { pass }")
	ifStmt := stmt.(*ast.IfStatement)
	if ifStmt.ElifBranches != nil || ifStmt.ElseBranch != nil {
		t.Fatalf("expected bare if, got elifs %v else %v", ifStmt.ElifBranches, ifStmt.ElseBranch)
	}
}

func TestForStatement(t *testing.T) {
	stmt := parseOne(t, "for item : [1, 2, 3] { log item }")
	forStmt, ok := stmt.(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement: got %T, want ForStatement", stmt)
	}
	if forStmt.Iterator != "item" {
		t.Fatalf("iterator: got %q", forStmt.Iterator)
	}
	if _, ok := forStmt.Iterable.(*ast.ArrayLiteral); !ok {
		t.Fatalf("iterable: got %T, want ArrayLiteral", forStmt.Iterable)
	}
	if len(forStmt.Body) != 1 {
		t.Fatalf("body: got %d statements", len(forStmt.Body))
	}
}

func TestWhileStatement(t *testing.T) {
	stmt := parseOne(t, "while x < 10 { x = x + 1 }")
	whileStmt := stmt.(*ast.WhileStatement)
	binary(t, whileStmt.Condition, "<")
	if len(whileStmt.Body) != 1 {
		t.Fatalf("body: got %d statements", len(whileStmt.Body))
	}
}

func TestDoWhileStatement(t *testing.T) {
	stmt := parseOne(t, "do { x = x + 1 } while x < 3")
	doStmt := stmt.(*ast.DoWhileStatement)
	if len(doStmt.Body) != 1 {
		t.Fatalf("body: got %d statements", len(doStmt.Body))
	}
	binary(t, doStmt.Condition, "<")
}

func TestVisibleStatement(t *testing.T) {
	stmt := parseOne(t, "visible state { count = 0, total = 100 }")
	visible := stmt.(*ast.VisibleStatement)
	if visible.Name != "state" {
		t.Fatalf("name: got %q", visible.Name)
	}
	if len(visible.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(visible.Entries))
	}
	if visible.Entries[0].Name != "count" || visible.Entries[1].Name != "total" {
		t.Fatalf("entry order: got %q, %q", visible.Entries[0].Name, visible.Entries[1].Name)
	}
}

func TestStructStatement(t *testing.T) {
	source := `struct Point {
		constructor(self, x, y) {
			self.x = x
			self.y = y
		}
		sum(self) {
			log self.x + self.y
		}
	}`
	stmt := parseOne(t, source)
	structStmt := stmt.(*ast.StructDefStatement)
	if structStmt.Name != "Point" {
		t.Fatalf("name: got %q", structStmt.Name)
	}
	if len(structStmt.Methods) != 2 {
		t.Fatalf("methods: got %d, want 2", len(structStmt.Methods))
	}
	ctor := structStmt.Methods[0]
	if ctor.Name != "constructor" {
		t.Fatalf("first method: got %q", ctor.Name)
	}
	if len(ctor.Params) != 3 || ctor.Params[0] != "self" || ctor.Params[1] != "x" {
		t.Fatalf("constructor params: got %v", ctor.Params)
	}
	if structStmt.Methods[1].Name != "sum" {
		t.Fatalf("second method: got %q", structStmt.Methods[1].Name)
	}
}

func TestPassStatement(t *testing.T) {
	stmt := parseOne(t, "pass")
	if _, ok := stmt.(*ast.PassStatement); !ok {
		t.Fatalf("statement: got %T, want PassStatement", stmt)
	}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func TestArithmeticPrecedence(t *testing.T) {
	stmt := parseOne(t, "1 + 2 * 3")
	sum := binary(t, stmt.(ast.Expression), "+")
	if _, ok := sum.Left.(*ast.IntegerLiteral); !ok {
		t.Fatalf("left operand: got %T, want IntegerLiteral", sum.Left)
	}
	binary(t, sum.Right, "*")
}

func TestComparisonBindsTighterThanEquality(t *testing.T) {
	stmt := parseOne(t, "1 < 2 == true")
	eq := binary(t, stmt.(ast.Expression), "==")
	binary(t, eq.Left, "<")
	if _, ok := eq.Right.(*ast.BooleanLiteral); !ok {
		t.Fatalf("right operand: got %T, want BooleanLiteral", eq.Right)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	stmt := parseOne(t, "a && b || c && d")
	or := binary(t, stmt.(ast.Expression), "||")
	binary(t, or.Left, "&&")
	binary(t, or.Right, "&&")
}

func TestUnaryExpressions(t *testing.T) {
	stmt := parseOne(t, "!ready")
	unary, ok := stmt.(*ast.UnaryExpression)
	if !ok {
		t.Fatalf("statement: got %T, want UnaryExpression", stmt)
	}
	if unary.Operator != "!" {
		t.Fatalf("operator: got %q", unary.Operator)
	}

	stmt = parseOne(t, "-(1 + 2)")
	unary = stmt.(*ast.UnaryExpression)
	if unary.Operator != "-" {
		t.Fatalf("operator: got %q", unary.Operator)
	}
	if _, ok := unary.Right.(*ast.Grouping); !ok {
		t.Fatalf("operand: got %T, want Grouping", unary.Right)
	}
}

func TestAssignment(t *testing.T) {
	stmt := parseOne(t, "x = 1 + 2")
	alloc, ok := stmt.(*ast.AllocateVariable)
	if !ok {
		t.Fatalf("statement: got %T, want AllocateVariable", stmt)
	}
	if alloc.Name != "x" {
		t.Fatalf("name: got %q", alloc.Name)
	}
	binary(t, alloc.Value, "+")
}

func TestFunctionCallNamedArguments(t *testing.T) {
	stmt := parseOne(t, "add(a = 1, b = 2 * 3)")
	call, ok := stmt.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("statement: got %T, want FunctionCall", stmt)
	}
	if call.Function != "add" {
		t.Fatalf("function: got %q", call.Function)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args: got %d, want 2", len(call.Args))
	}
	if call.Args[0].Name != "a" || call.Args[1].Name != "b" {
		t.Fatalf("arg names: got %q, %q", call.Args[0].Name, call.Args[1].Name)
	}
	binary(t, call.Args[1].Value, "*")
}

func TestFunctionCallTrailingComma(t *testing.T) {
	stmt := parseOne(t, "f(a = 1,)")
	call := stmt.(*ast.FunctionCall)
	if len(call.Args) != 1 {
		t.Fatalf("args: got %d, want 1", len(call.Args))
	}
}

func TestStructInstantiation(t *testing.T) {
	stmt := parseOne(t, "Point::new(1, 2)")
	inst, ok := stmt.(*ast.StructInstantiation)
	if !ok {
		t.Fatalf("statement: got %T, want StructInstantiation", stmt)
	}
	if inst.StructName != "Point" || inst.MethodName != "new" {
		t.Fatalf("instantiation: got %q::%q", inst.StructName, inst.MethodName)
	}
	if len(inst.Args) != 2 {
		t.Fatalf("args: got %d, want 2", len(inst.Args))
	}
}

func TestAccessChain(t *testing.T) {
	stmt := parseOne(t, `grid[0][1]`)
	access, ok := stmt.(*ast.Access)
	if !ok {
		t.Fatalf("statement: got %T, want Access", stmt)
	}
	if access.Root != "grid" {
		t.Fatalf("root: got %q", access.Root)
	}
	if len(access.Accessors) != 2 {
		t.Fatalf("accessors: got %d, want 2", len(access.Accessors))
	}
}

func TestMemberAccessChain(t *testing.T) {
	stmt := parseOne(t, "p.inner.x")
	outer, ok := stmt.(*ast.MemberAccess)
	if !ok {
		t.Fatalf("statement: got %T, want MemberAccess", stmt)
	}
	if outer.Member != "x" {
		t.Fatalf("member: got %q", outer.Member)
	}
	inner := outer.Object.(*ast.MemberAccess)
	if inner.Member != "inner" {
		t.Fatalf("inner member: got %q", inner.Member)
	}
	if v, ok := inner.Object.(*ast.Variable); !ok || v.Name != "p" {
		t.Fatalf("object: got %T", inner.Object)
	}
}

func TestMemberAssign(t *testing.T) {
	stmt := parseOne(t, "self.x = 5")
	assign, ok := stmt.(*ast.MemberAssign)
	if !ok {
		t.Fatalf("statement: got %T, want MemberAssign", stmt)
	}
	if assign.Member != "x" {
		t.Fatalf("member: got %q", assign.Member)
	}
	if v, ok := assign.Object.(*ast.Variable); !ok || v.Name != "self" {
		t.Fatalf("object: got %T", assign.Object)
	}
}

func TestMethodCall(t *testing.T) {
	stmt := parseOne(t, "p.move(1, 2)")
	call, ok := stmt.(*ast.MethodCall)
	if !ok {
		t.Fatalf("statement: got %T, want MethodCall", stmt)
	}
	if call.Method != "move" || len(call.Args) != 2 {
		t.Fatalf("call: got %q with %d args", call.Method, len(call.Args))
	}
}

func TestPostfixAfterCallForms(t *testing.T) {
	stmt := parseOne(t, "make(a = 1).x")
	access := stmt.(*ast.MemberAccess)
	if _, ok := access.Object.(*ast.FunctionCall); !ok {
		t.Fatalf("object: got %T, want FunctionCall", access.Object)
	}

	stmt = parseOne(t, "Point::new(1, 2).magnitude()")
	call := stmt.(*ast.MethodCall)
	if call.Method != "magnitude" {
		t.Fatalf("method: got %q", call.Method)
	}
	if _, ok := call.Object.(*ast.StructInstantiation); !ok {
		t.Fatalf("object: got %T, want StructInstantiation", call.Object)
	}

	stmt = parseOne(t, "rows[0].first")
	member := stmt.(*ast.MemberAccess)
	if _, ok := member.Object.(*ast.Access); !ok {
		t.Fatalf("object: got %T, want Access", member.Object)
	}
}

func TestArrayLiterals(t *testing.T) {
	stmt := parseOne(t, "[1, 2, 3]")
	arr := stmt.(*ast.ArrayLiteral)
	if len(arr.Elements) != 3 {
		t.Fatalf("elements: got %d, want 3", len(arr.Elements))
	}

	stmt = parseOne(t, "[]")
	arr = stmt.(*ast.ArrayLiteral)
	if len(arr.Elements) != 0 {
		t.Fatalf("elements: got %d, want 0", len(arr.Elements))
	}

	stmt = parseOne(t, "[1, 2,]")
	arr = stmt.(*ast.ArrayLiteral)
	if len(arr.Elements) != 2 {
		t.Fatalf("elements with trailing comma: got %d, want 2", len(arr.Elements))
	}
}

func TestRangeLiteral(t *testing.T) {
	stmt := parseOne(t, "[1 -> 4]")
	iter := stmt.(*ast.IterableLiteral)
	if len(iter.Values) != 4 {
		t.Fatalf("values: got %d, want 4", len(iter.Values))
	}
	for i, want := range []int64{1, 2, 3, 4} {
		if iter.Values[i].Int64() != want {
			t.Fatalf("value %d: got %s, want %d", i, iter.Values[i], want)
		}
	}
}

func TestDescendingRangeLiteral(t *testing.T) {
	stmt := parseOne(t, "[3 -> 1]")
	iter := stmt.(*ast.IterableLiteral)
	if len(iter.Values) != 3 {
		t.Fatalf("values: got %d, want 3", len(iter.Values))
	}
	for i, want := range []int64{3, 2, 1} {
		if iter.Values[i].Int64() != want {
			t.Fatalf("value %d: got %s, want %d", i, iter.Values[i], want)
		}
	}
}

func TestAxisLiteral(t *testing.T) {
	stmt := parseOne(t, `axis[1, "two"]`)
	axis := stmt.(*ast.AxisLiteral)
	if len(axis.Elements) != 2 {
		t.Fatalf("elements: got %d, want 2", len(axis.Elements))
	}
}

func TestDictionaryLiteral(t *testing.T) {
	stmt := parseOne(t, `{"a": 1, "b": 2}`)
	dict := stmt.(*ast.DictionaryLiteral)
	if len(dict.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(dict.Entries))
	}
	key, ok := dict.Entries[0].Key.(*ast.StringLiteral)
	if !ok || key.Value != "a" {
		t.Fatalf("first key: got %T", dict.Entries[0].Key)
	}

	stmt = parseOne(t, "{}")
	dict = stmt.(*ast.DictionaryLiteral)
	if len(dict.Entries) != 0 {
		t.Fatalf("entries: got %d, want 0", len(dict.Entries))
	}
}

func TestLogExpression(t *testing.T) {
	stmt := parseOne(t, "log 1 + 2")
	print, ok := stmt.(*ast.Print)
	if !ok {
		t.Fatalf("statement: got %T, want Print", stmt)
	}
	binary(t, print.Value, "+")
}

func TestBigIntegerLiteral(t *testing.T) {
	wide := "99999999999999999999999999999999999999999999"
	stmt := parseOne(t, wide)
	lit, ok := stmt.(*ast.BigIntLiteral)
	if !ok {
		t.Fatalf("statement: got %T, want BigIntLiteral", stmt)
	}
	if lit.Value != wide {
		t.Fatalf("digits: got %q", lit.Value)
	}
}

//-----------------------------------------------------------------------------
// Errors
//-----------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"lock 5", "[line 1] Error at '5': Expected 'Identifier'"},
		{"jump 1", "[line 1] Error at '1': Expected jump target after 'jump'"},
		{"(1 + 2", "[line 1] Error at end: Expect ')' after expression."},
		{"if true pass }", "[line 1] Error at 'pass': Expected '{' after if condition"},
		{"for x [1] { pass }", "[line 1] Error at '[': Expected ':' after iterator name"},
		{"do { pass } until x", "[line 1] Error at 'until': Expected 'while' after do body"},
		{"label f(a) { pass }", "[line 1] Error at ')': Expected '=' in parameter mapping"},
		{"label f() visibility { pass }", "[line 1] Error at '{': Expected '[' after 'visibility'"},
		{"[x -> 2]", "[line 1] Error at '->': Range bounds must be integer literals"},
		{"f(1)", "[line 1] Error at '1': Expected 'Identifier' for mapping args to parameters"},
		{"f(a = 1 b = 2)", "[line 1] Error at 'b': Expected ')' to enclose function call"},
		{"Point::(1)", "[line 1] Error at '(': Expected method name after '::'"},
		{"p.", "[line 1] Error at end: Expected member name after '.'"},
		{`{"a" 1}`, "[line 1] Error at '1': Expected ':' between key and value"},
		{"visible s { a 1 }", "[line 1] Error at '1': Expected '=' after entry name"},
		{"struct S { m self { pass } }", "[line 1] Error at 'self': Expected '(' after method name"},
		{"+", "[line 1] Error at '+': Expect expression"},
	}
	for _, tc := range cases {
		if got := parseErr(t, tc.source); got != tc.want {
			t.Fatalf("parse %q:\n got  %q\n want %q", tc.source, got, tc.want)
		}
	}
}

func TestErrorRecoveryCollectsAllErrors(t *testing.T) {
	got := parseErr(t, "lock 1\nkill 2")
	want := "[line 1] Error at '1': Expected 'Identifier'\n[line 2] Error at '2': Expected 'Identifier'"
	if got != want {
		t.Fatalf("errors:\n got  %q\n want %q", got, want)
	}
}

func TestErrorListKeepsGoodStatementsOut(t *testing.T) {
	// one bad statement poisons the whole parse
	_, err := ParseSource("x = 1\nlock 2\ny = 3")
	if err == nil {
		t.Fatalf("expected error, got none")
	}
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("error: got %T, want ErrorList", err)
	}
	if len(list) != 1 {
		t.Fatalf("error count: got %d, want 1", len(list))
	}
}

package interpreter

import (
	"bytes"
	"math/big"
	"testing"

	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/parser"
	"ex/interpreter-go/pkg/runtime"
)

func run(t *testing.T, source string) (*Interpreter, string) {
	t.Helper()
	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	statements, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return interp, out.String()
}

func runErr(t *testing.T, source string) string {
	t.Helper()
	interp := New()
	interp.SetOutput(&bytes.Buffer{})
	statements, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = interp.Interpret(statements)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	return err.Error()
}

func globalValue(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	value, err := interp.Environment().Get(name)
	if err != nil {
		t.Fatalf("lookup %s failed: %v", name, err)
	}
	return value
}

func wantInt(t *testing.T, v runtime.Value, want int64) {
	t.Helper()
	iv, ok := v.(runtime.IntValue)
	if !ok || iv.Val.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("expected Int %d, got %#v", want, v)
	}
}

func wantUInt(t *testing.T, v runtime.Value, want int64) {
	t.Helper()
	uv, ok := v.(runtime.UIntValue)
	if !ok || uv.Val.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("expected UInt %d, got %#v", want, v)
	}
}

func wantFloat(t *testing.T, v runtime.Value, want float64) {
	t.Helper()
	fv, ok := v.(runtime.FloatValue)
	if !ok || fv.Val != want {
		t.Fatalf("expected Float %v, got %#v", want, v)
	}
}

func wantString(t *testing.T, v runtime.Value, want string) {
	t.Helper()
	sv, ok := v.(runtime.StringValue)
	if !ok || sv.Val != want {
		t.Fatalf("expected String %q, got %#v", want, v)
	}
}

func wantBool(t *testing.T, v runtime.Value, want bool) {
	t.Helper()
	bv, ok := v.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected Bool %v, got %#v", want, v)
	}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func TestAssignmentUpdatesBinding(t *testing.T) {
	interp, _ := run(t, "x = 41 x = x + 1")
	wantInt(t, globalValue(t, interp, "x"), 42)
}

func TestAssignmentYieldsNil(t *testing.T) {
	interp := New()
	value, err := interp.evaluateExpression(ast.Alloc("x", ast.Int(5)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := value.(runtime.NilValue); !ok {
		t.Fatalf("expected Nil result, got %#v", value)
	}
	wantInt(t, globalValue(t, interp, "x"), 5)
}

func TestAssignmentInsideFunctionUpdatesOuterBinding(t *testing.T) {
	interp, _ := run(t, `
x = 1
label f() { x = 2 }
f()
`)
	wantInt(t, globalValue(t, interp, "x"), 2)
}

func TestLockBlocksReassignment(t *testing.T) {
	got := runErr(t, "x = 1 lock x x = 2")
	if got != "Runtime Error: Cannot reassign smart-locked variable 'x'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestUnlockRestoresAssignment(t *testing.T) {
	interp, _ := run(t, "x = 1 lock x unlock x x = 2")
	wantInt(t, globalValue(t, interp, "x"), 2)
}

func TestEternalBlocksReassignmentAndDeletion(t *testing.T) {
	got := runErr(t, "x = 1 eternal x x = 2")
	if got != "Runtime Error: Cannot reassign constant variable 'x'" {
		t.Fatalf("reassign error: got %q", got)
	}
	got = runErr(t, "x = 1 eternal x kill x")
	if got != "Runtime Error: Cannot delete constant variable 'x'" {
		t.Fatalf("delete error: got %q", got)
	}
}

func TestKillRemovesBinding(t *testing.T) {
	interp, _ := run(t, "x = 1 kill x")
	if _, err := interp.Environment().Get("x"); err == nil {
		t.Fatalf("expected x to be gone")
	}
}

func TestKillLockedBindingFails(t *testing.T) {
	got := runErr(t, "x = 1 lock x kill x")
	if got != "Runtime Error: Cannot delete smart-locked variable 'x'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestReviveRebindsNil(t *testing.T) {
	interp, _ := run(t, "x = 1 kill x revive x")
	if _, ok := globalValue(t, interp, "x").(runtime.NilValue); !ok {
		t.Fatalf("expected revived binding to hold Nil")
	}
}

func TestIfSelectsBranch(t *testing.T) {
	interp, _ := run(t, `
x = 2
if x == 1 { y = "one" } elif x == 2 { y = "two" } else { y = "other" }
`)
	wantString(t, globalValue(t, interp, "y"), "two")
}

func TestIfElseBranch(t *testing.T) {
	interp, _ := run(t, `
x = 9
if x == 1 { y = "one" } elif x == 2 { y = "two" } else { y = "other" }
`)
	wantString(t, globalValue(t, interp, "y"), "other")
}

func TestIfBranchSharesEnclosingScope(t *testing.T) {
	interp, _ := run(t, "if true { y = 7 }")
	wantInt(t, globalValue(t, interp, "y"), 7)
}

func TestWhileLoop(t *testing.T) {
	interp, _ := run(t, "x = 0 while x < 3 { x = x + 1 }")
	wantInt(t, globalValue(t, interp, "x"), 3)
}

func TestWhileBodyVariablesStayScoped(t *testing.T) {
	interp, _ := run(t, "x = 0 while x < 1 { y = 5 x = 1 }")
	if _, err := interp.Environment().Get("y"); err == nil {
		t.Fatalf("expected loop-local binding to be released")
	}
}

func TestDoWhileRunsBodyFirst(t *testing.T) {
	interp, _ := run(t, "x = 10 do { x = x + 1 } while false")
	wantInt(t, globalValue(t, interp, "x"), 11)
}

func TestForLoopIteratesArray(t *testing.T) {
	interp, _ := run(t, "total = 0 for n : [1, 2, 3] { total = total + n }")
	wantInt(t, globalValue(t, interp, "total"), 6)
}

func TestForLoopIteratesRange(t *testing.T) {
	interp, _ := run(t, "total = 0 for n : [1 -> 4] { total = total + n }")
	wantInt(t, globalValue(t, interp, "total"), 10)
}

func TestForIteratorStaysScoped(t *testing.T) {
	interp, _ := run(t, "for n : [1] { pass }")
	if _, err := interp.Environment().Get("n"); err == nil {
		t.Fatalf("expected iterator binding to be released")
	}
}

func TestForRequiresArray(t *testing.T) {
	got := runErr(t, "for n : 5 { pass }")
	if got != "Runtime Error: For-loop expects an Array iterable, got Int" {
		t.Fatalf("error: got %q", got)
	}
}

func TestInterpretStopsAtFirstError(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource("x = 1 boom() y = 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err == nil {
		t.Fatalf("expected a runtime error")
	}
	wantInt(t, globalValue(t, interp, "x"), 1)
	if _, err := interp.Environment().Get("y"); err == nil {
		t.Fatalf("expected later statement to be skipped")
	}
}

//-----------------------------------------------------------------------------
// Labels, jumps and calls
//-----------------------------------------------------------------------------

func TestJumpRunsLabelBody(t *testing.T) {
	interp, _ := run(t, `
x = 0
label @bump { x = x + 1 }
jump bump
jump bump
`)
	wantInt(t, globalValue(t, interp, "x"), 2)
}

func TestJumpBodyVariablesStayScoped(t *testing.T) {
	interp, _ := run(t, "label @t { y = 1 } jump t")
	if _, err := interp.Environment().Get("y"); err == nil {
		t.Fatalf("expected jump-local binding to be released")
	}
}

func TestJumpRejectsNonLabelTargets(t *testing.T) {
	got := runErr(t, "x = 5 jump x")
	if got != "Runtime Error: 'x' is not a valid jump target (must be a control flow label)" {
		t.Fatalf("error: got %q", got)
	}
	got = runErr(t, `
label f() { pass }
jump f
`)
	if got != "Runtime Error: 'f' is not a valid jump target (must be a control flow label)" {
		t.Fatalf("function target error: got %q", got)
	}
}

func TestCallableLabelRunsWithRenamedParameters(t *testing.T) {
	interp, _ := run(t, `
result = 0
label add(a = x, b = y) { result = x + y }
add(a = 2, b = 3)
`)
	wantInt(t, globalValue(t, interp, "result"), 5)
}

func TestExternalParameterNameIsNotBound(t *testing.T) {
	got := runErr(t, `
result = 0
label f(a = x) { result = a }
f(a = 7)
`)
	if got != "Runtime Error: Undefined variable 'a'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestDuplicateArgumentKeepsLastValue(t *testing.T) {
	interp, _ := run(t, `
result = 0
label f(a = x) { result = x }
f(a = 1, a = 2)
`)
	wantInt(t, globalValue(t, interp, "result"), 2)
}

func TestCallReturnsNil(t *testing.T) {
	_, out := run(t, `
label f() { pass }
log f()
`)
	if out != "Nil\n" {
		t.Fatalf("output: got %q", out)
	}
}

func TestMissingParameter(t *testing.T) {
	got := runErr(t, `
label f(a = x) { pass }
f()
`)
	if got != "Runtime Error: Missing required parameter 'a' in function 'f'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestCalleeMustBeCallable(t *testing.T) {
	got := runErr(t, "x = 5 x()")
	if got != "Runtime Error: 'x' is not callable (type: Int)" {
		t.Fatalf("error: got %q", got)
	}
}

func TestFunctionScopeReleasedOnError(t *testing.T) {
	interp := New()
	interp.SetOutput(&bytes.Buffer{})
	statements, err := parser.ParseSource(`
label f(a = x) {
	y = x
	boom()
}
f(a = 1)
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = interp.Interpret(statements)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if got := err.Error(); got != "Runtime Error: Undefined variable 'boom'" {
		t.Fatalf("error: got %q", got)
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed call: got %d, want 1", depth)
	}
	if interp.inFunction {
		t.Fatalf("expected function context to be restored")
	}
}

func TestMissingParameterReleasesScope(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
label f(a = x) { pass }
f()
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err == nil {
		t.Fatalf("expected a runtime error")
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed call: got %d, want 1", depth)
	}
}

func TestJumpScopeReleasedOnError(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
label @t { y = 1 boom() }
jump t
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err == nil {
		t.Fatalf("expected a runtime error")
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed jump: got %d, want 1", depth)
	}
}

//-----------------------------------------------------------------------------
// Visibility blocks
//-----------------------------------------------------------------------------

func TestVisibleBlockInitializesOnFirstCall(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
visible state { count = 10 }
result = 0
label read() visibility[state] { result = count }
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interp.visibleInit["state"] {
		t.Fatalf("expected block to stay uninitialized until a call")
	}

	call, err := parser.ParseSource("read()")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !interp.visibleInit["state"] {
		t.Fatalf("expected block to be initialized by the call")
	}
	wantInt(t, globalValue(t, interp, "result"), 10)
}

func TestVisibleEntriesSeeEarlierEntries(t *testing.T) {
	interp, _ := run(t, `
visible state { base = 2, double = base + base }
result = 0
label read() visibility[state] { result = double }
read()
`)
	wantInt(t, globalValue(t, interp, "result"), 4)
}

func TestVisibleValuesPersistAcrossCalls(t *testing.T) {
	interp, _ := run(t, `
visible state { count = 0 }
label bump() visibility[state] { count = count + 1 }
bump()
bump()
bump()
result = 0
label read() visibility[state] { result = count }
read()
`)
	wantInt(t, globalValue(t, interp, "result"), 3)
}

func TestVisibleNamesHiddenOutsideFunctions(t *testing.T) {
	got := runErr(t, `
visible state { count = 0 }
x = count
`)
	if got != "Runtime Error: Undefined variable 'count'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestVisibleNamesRequireGrant(t *testing.T) {
	got := runErr(t, `
visible state { count = 0 }
result = 0
label f() { result = count }
f()
`)
	if got != "Runtime Error: Undefined variable 'count'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestUndeclaredVisibleBlockRejected(t *testing.T) {
	got := runErr(t, `
label f() visibility[ghost] { pass }
f()
`)
	if got != "Runtime Error: Label 'f' references undefined visible block 'ghost'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestVisibleInitFailureLeavesBlockUninitialized(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
visible state { count = boom }
label f() visibility[state] { pass }
f()
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = interp.Interpret(statements)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if got := err.Error(); got != "Runtime Error: Undefined variable 'boom'" {
		t.Fatalf("error: got %q", got)
	}
	if interp.visibleInit["state"] {
		t.Fatalf("expected failed init to leave the block uninitialized")
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed init: got %d, want 1", depth)
	}
}

func TestVisibleFallbackReadAfterKill(t *testing.T) {
	interp, _ := run(t, `
visible state { count = 9 }
result = 0
label f() visibility[state] {
	kill count
	result = count
}
f()
`)
	wantInt(t, globalValue(t, interp, "result"), 9)
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func TestIntegerAdditionStaysExact(t *testing.T) {
	interp, _ := run(t, "x = 1 + 2")
	wantInt(t, globalValue(t, interp, "x"), 3)
}

func TestIntegerAdditionOverflow(t *testing.T) {
	got := runErr(t, "x = 170141183460469231731687303715884105727 + 1")
	if got != "Runtime Error: Integer overflow" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMixedAdditionWidensToFloat(t *testing.T) {
	interp, _ := run(t, "x = 1 + 2.5")
	wantFloat(t, globalValue(t, interp, "x"), 3.5)
}

func TestStringConcatenation(t *testing.T) {
	interp, _ := run(t, `x = "foo" + "bar"`)
	wantString(t, globalValue(t, interp, "x"), "foobar")
}

func TestSubtractionProducesFloat(t *testing.T) {
	interp, _ := run(t, "x = 5 - 2")
	wantFloat(t, globalValue(t, interp, "x"), 3)
}

func TestMultiplicationProducesFloat(t *testing.T) {
	interp, _ := run(t, "x = 4 * 2")
	wantFloat(t, globalValue(t, interp, "x"), 8)
}

func TestDivision(t *testing.T) {
	interp, _ := run(t, "x = 7 / 2")
	wantFloat(t, globalValue(t, interp, "x"), 3.5)
}

func TestDivisionByZero(t *testing.T) {
	for _, source := range []string{"x = 1 / 0", "x = 1.0 / 0.0", "x = 1 / 0.0"} {
		if got := runErr(t, source); got != "Runtime Error: Division by zero" {
			t.Fatalf("%s: got %q", source, got)
		}
	}
}

func TestInvalidBinaryOperands(t *testing.T) {
	got := runErr(t, `x = "a" + 1`)
	if got != "Runtime Error: Invalid binary operation: String + Int" {
		t.Fatalf("error: got %q", got)
	}
	got = runErr(t, `x = "a" < "b"`)
	if got != "Runtime Error: Invalid binary operation: String < String" {
		t.Fatalf("comparison error: got %q", got)
	}
}

func TestComparisonOperators(t *testing.T) {
	interp, _ := run(t, "a = 2 < 3 b = 2 >= 3 c = 2.5 <= 2.5 d = 3 > 2.9")
	wantBool(t, globalValue(t, interp, "a"), true)
	wantBool(t, globalValue(t, interp, "b"), false)
	wantBool(t, globalValue(t, interp, "c"), true)
	wantBool(t, globalValue(t, interp, "d"), true)
}

func TestEqualityComparesDeeply(t *testing.T) {
	interp, _ := run(t, `
a = [1, [2, 3]] == [1, [2, 3]]
b = [1] == axis[1]
c = 1 == 1.0
d = 1 != 2
`)
	wantBool(t, globalValue(t, interp, "a"), true)
	wantBool(t, globalValue(t, interp, "b"), false)
	wantBool(t, globalValue(t, interp, "c"), false)
	wantBool(t, globalValue(t, interp, "d"), true)
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	interp, _ := run(t, `
a = 0 && 5
b = 2 && 5
c = 0 || 7
d = "" || "fallback"
`)
	wantInt(t, globalValue(t, interp, "a"), 0)
	wantInt(t, globalValue(t, interp, "b"), 5)
	wantInt(t, globalValue(t, interp, "c"), 7)
	wantString(t, globalValue(t, interp, "d"), "fallback")
}

func TestLogicalOperatorsEvaluateBothSides(t *testing.T) {
	got := runErr(t, "x = false && boom()")
	if got != "Runtime Error: Undefined variable 'boom'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestUnaryMinus(t *testing.T) {
	interp, _ := run(t, "y = 5 x = -y f = 2.5 g = -f")
	wantInt(t, globalValue(t, interp, "x"), -5)
	wantFloat(t, globalValue(t, interp, "g"), -2.5)
}

func TestUnaryMinusOverflow(t *testing.T) {
	got := runErr(t, "y = -170141183460469231731687303715884105728 x = -y")
	if got != "Runtime Error: Integer overflow" {
		t.Fatalf("error: got %q", got)
	}
}

func TestUnaryMinusRejectsNonNumbers(t *testing.T) {
	got := runErr(t, `y = "s" x = -y`)
	if got != "Runtime Error: Invalid unary operation '-' on type String" {
		t.Fatalf("error: got %q", got)
	}
}

func TestNotOperator(t *testing.T) {
	interp, _ := run(t, `a = !0 b = !"text" c = !nil`)
	wantBool(t, globalValue(t, interp, "a"), true)
	wantBool(t, globalValue(t, interp, "b"), false)
	wantBool(t, globalValue(t, interp, "c"), true)
}

func TestMacroCallRunsSetupAndBody(t *testing.T) {
	interp := New()
	interp.SetOutput(&bytes.Buffer{})
	macro := ast.Macro(
		[]ast.Expression{ast.Alloc("x", ast.Int(1))},
		ast.Alloc("y", ast.Int(2)),
	)
	value, err := interp.evaluateExpression(macro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantBool(t, value, true)
	wantInt(t, globalValue(t, interp, "x"), 1)
	wantInt(t, globalValue(t, interp, "y"), 2)
}

//-----------------------------------------------------------------------------
// Access chains
//-----------------------------------------------------------------------------

func TestArrayIndexing(t *testing.T) {
	interp, _ := run(t, "a = [10, 20, 30] x = a[1] y = a[-1] z = a[-3]")
	wantInt(t, globalValue(t, interp, "x"), 20)
	wantInt(t, globalValue(t, interp, "y"), 30)
	wantInt(t, globalValue(t, interp, "z"), 10)
}

func TestNestedArrayIndexing(t *testing.T) {
	interp, _ := run(t, "grid = [[1, 2], [3, 4]] x = grid[1][0]")
	wantInt(t, globalValue(t, interp, "x"), 3)
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	got := runErr(t, "a = [1] x = a[5]")
	if got != "Runtime Error: Index 5 out of bounds for array of length 1" {
		t.Fatalf("error: got %q", got)
	}
	got = runErr(t, "a = [1] x = a[-2]")
	if got != "Runtime Error: Index -2 out of bounds for array of length 1" {
		t.Fatalf("negative error: got %q", got)
	}
	got = runErr(t, "a = [] x = a[0]")
	if got != "Runtime Error: Index 0 out of bounds for array of length 0" {
		t.Fatalf("empty error: got %q", got)
	}
}

func TestArrayIndexMustBeInteger(t *testing.T) {
	got := runErr(t, `a = [1] x = a["0"]`)
	if got != "Runtime Error: Array index must be integer, got String" {
		t.Fatalf("error: got %q", got)
	}
}

func TestAxisIndexing(t *testing.T) {
	interp, _ := run(t, `a = axis[1, "two"] x = a[-1]`)
	wantString(t, globalValue(t, interp, "x"), "two")
	got := runErr(t, "a = axis[1] x = a[3]")
	if got != "Runtime Error: Index 3 out of bounds for axis of length 1" {
		t.Fatalf("error: got %q", got)
	}
}

func TestDictionaryAccess(t *testing.T) {
	interp, _ := run(t, `d = {"a": 1, 2: "two", true: 3, 1.5: 4}
x = d["a"]
y = d[2]
z = d[true]
w = d[1.5]
`)
	wantInt(t, globalValue(t, interp, "x"), 1)
	wantString(t, globalValue(t, interp, "y"), "two")
	wantInt(t, globalValue(t, interp, "z"), 3)
	wantInt(t, globalValue(t, interp, "w"), 4)
}

func TestDictionaryKeyNotFound(t *testing.T) {
	got := runErr(t, `d = {"a": 1} x = d["z"]`)
	if got != "Runtime Error: Key 'z' not found in dictionary" {
		t.Fatalf("error: got %q", got)
	}
}

func TestDictionaryDuplicateKeyKeepsLastValue(t *testing.T) {
	interp, _ := run(t, `d = {"a": 1, "a": 2} x = d["a"]`)
	wantInt(t, globalValue(t, interp, "x"), 2)
}

func TestDictionaryLiteralKeyMustBePrimitive(t *testing.T) {
	got := runErr(t, "d = {[1]: 2}")
	if got != "Runtime Error: Dictionary keys must be primitive types, got Array" {
		t.Fatalf("error: got %q", got)
	}
}

func TestDictionaryLiteralChecksKeyBeforeValue(t *testing.T) {
	// The key is rejected before the value expression runs.
	got := runErr(t, "d = {[1]: boom}")
	if got != "Runtime Error: Dictionary keys must be primitive types, got Array" {
		t.Fatalf("error: got %q", got)
	}
}

func TestAccessOnScalarFails(t *testing.T) {
	got := runErr(t, "x = 5 y = x[0]")
	if got != "Runtime Error: Cannot access member on type 'Int'" {
		t.Fatalf("error: got %q", got)
	}
}

//-----------------------------------------------------------------------------
// Output
//-----------------------------------------------------------------------------

func TestLogRendersScalars(t *testing.T) {
	_, out := run(t, `
log 42
log 2.5
log "text"
log true
log nil
`)
	if out != "42\n2.5\ntext\ntrue\nNil\n" {
		t.Fatalf("output: got %q", out)
	}
}

func TestLogRefusesAggregates(t *testing.T) {
	_, out := run(t, "log [1, 2]")
	if out != "Unable to Render On Display\n" {
		t.Fatalf("output: got %q", out)
	}
}

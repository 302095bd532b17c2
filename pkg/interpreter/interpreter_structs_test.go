package interpreter

import (
	"testing"

	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/parser"
	"ex/interpreter-go/pkg/runtime"
)

func TestConstructorBuildsInstance(t *testing.T) {
	interp, _ := run(t, `
struct Point {
	constructor(self, x, y) {
		self.x = x
		self.y = y
	}
}
p = Point::new(1, 2)
x = p.x
y = p.y
`)
	p, ok := globalValue(t, interp, "p").(*runtime.StructInstanceValue)
	if !ok || p.StructName != "Point" {
		t.Fatalf("expected Point instance, got %#v", globalValue(t, interp, "p"))
	}
	wantInt(t, globalValue(t, interp, "x"), 1)
	wantInt(t, globalValue(t, interp, "y"), 2)
}

func TestConstructorCallableByEitherName(t *testing.T) {
	interp, _ := run(t, `
struct Point {
	constructor(self, x) { self.x = x }
}
p = Point::constructor(3)
x = p.x
`)
	wantInt(t, globalValue(t, interp, "x"), 3)
}

func TestNewLooksUpConstructorOnly(t *testing.T) {
	got := runErr(t, `
struct OnlyNew {
	new(self) { pass }
}
p = OnlyNew::new()
`)
	if got != "Runtime Error: Struct 'OnlyNew' has no method 'new' (lookup 'constructor')" {
		t.Fatalf("error: got %q", got)
	}
}

func TestInstantiationUnknownMethod(t *testing.T) {
	got := runErr(t, `
struct Point {
	constructor(self) { pass }
}
p = Point::frob()
`)
	if got != "Runtime Error: Struct 'Point' has no method 'frob' (lookup 'frob')" {
		t.Fatalf("error: got %q", got)
	}
}

func TestInstantiationRequiresStructDef(t *testing.T) {
	got := runErr(t, "x = 5 p = x::new()")
	if got != "Runtime Error: 'x' is not a struct definition" {
		t.Fatalf("error: got %q", got)
	}
	got = runErr(t, "p = Ghost::new()")
	if got != "Runtime Error: Undefined variable 'Ghost'" {
		t.Fatalf("undefined error: got %q", got)
	}
}

func TestConstructorSurplusArgumentsNeverEvaluated(t *testing.T) {
	interp, _ := run(t, `
struct P {
	constructor(self, a) { self.a = a }
}
p = P::new(1, boom)
x = p.a
`)
	wantInt(t, globalValue(t, interp, "x"), 1)
}

func TestConstructorMissingArgumentsStayUnbound(t *testing.T) {
	got := runErr(t, `
struct Q {
	constructor(self, a, b) { self.b = b }
}
q = Q::new(1)
`)
	if got != "Runtime Error: Undefined variable 'b'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestConstructorSelfMustStayStruct(t *testing.T) {
	got := runErr(t, `
struct P {
	constructor(self) { self = 5 }
}
p = P::new()
`)
	if got != "Runtime Error: 'self' was overwritten with a non-struct value" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMemberAccessUnknownField(t *testing.T) {
	got := runErr(t, `
struct Point {
	constructor(self) { pass }
}
p = Point::new()
x = p.z
`)
	if got != "Runtime Error: Struct 'Point' has no field 'z'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMemberAccessOnNonStruct(t *testing.T) {
	got := runErr(t, "y = 5 x = y.field")
	if got != "Runtime Error: Cannot access member 'field' on non-struct type Int" {
		t.Fatalf("error: got %q", got)
	}
}

func TestNestedMemberAccess(t *testing.T) {
	interp, _ := run(t, `
struct Inner {
	constructor(self, x) { self.x = x }
}
struct Outer {
	constructor(self, item) { self.inner = item }
}
b = Inner::new(5)
o = Outer::new(b)
x = o.inner.x
`)
	wantInt(t, globalValue(t, interp, "x"), 5)
}

func TestMemberAssignRebindsVariable(t *testing.T) {
	interp, _ := run(t, `
struct Point {
	constructor(self, x) { self.x = x }
}
p = Point::new(1)
p.x = 10
x = p.x
`)
	wantInt(t, globalValue(t, interp, "x"), 10)
}

func TestMemberAssignOnNonStruct(t *testing.T) {
	got := runErr(t, "y = 5 y.x = 1")
	if got != "Runtime Error: Cannot assign to member 'x' on non-struct type Int" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMemberAssignRequiresVariableTarget(t *testing.T) {
	interp := New()
	_, err := interp.evaluateExpression(ast.MemberSet(ast.Int(1), "x", ast.Int(2)))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got := err.Error(); got != "Runtime Error: Member assignment requires a simple variable reference" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMemberAssignResolvesTargetBeforeValue(t *testing.T) {
	got := runErr(t, "ghost.x = boom")
	if got != "Runtime Error: Undefined variable 'ghost'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMethodUpdatesReceiver(t *testing.T) {
	interp, _ := run(t, `
struct Counter {
	constructor(self) { self.n = 0 }
	bump(self) { self.n = self.n + 1 }
}
c = Counter::new()
c.bump()
c.bump()
x = c.n
`)
	wantInt(t, globalValue(t, interp, "x"), 2)
}

func TestMethodReadsFieldsAsBindings(t *testing.T) {
	interp, _ := run(t, `
result = 0
struct Counter {
	constructor(self) { self.n = 7 }
	read(self) { result = n }
}
c = Counter::new()
c.read()
`)
	wantInt(t, globalValue(t, interp, "result"), 7)
}

func TestMethodArgumentsBindPositionally(t *testing.T) {
	interp, _ := run(t, `
struct Point {
	constructor(self, x) { self.x = x }
	move(self, dx) { self.x = self.x + dx }
}
p = Point::new(1)
p.move(5)
x = p.x
`)
	wantInt(t, globalValue(t, interp, "x"), 6)
}

func TestMethodFieldRefreshWhenSelfOverwritten(t *testing.T) {
	interp, _ := run(t, `
struct P {
	constructor(self, a) { self.a = a }
	wipe(self) {
		a = 42
		self = 5
	}
}
p = P::new(1)
p.wipe()
x = p.a
`)
	wantInt(t, globalValue(t, interp, "x"), 42)
	p, ok := globalValue(t, interp, "p").(*runtime.StructInstanceValue)
	if !ok || p.StructName != "P" {
		t.Fatalf("expected receiver to stay a P instance, got %#v", globalValue(t, interp, "p"))
	}
}

func TestMethodCallOnNonStruct(t *testing.T) {
	got := runErr(t, "y = 1 y.f()")
	if got != "Runtime Error: Cannot call method 'f' on non-struct type Int" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMethodUnknown(t *testing.T) {
	got := runErr(t, `
struct Point {
	constructor(self) { pass }
}
p = Point::new()
p.ghost()
`)
	if got != "Runtime Error: Struct 'Point' has no method 'ghost'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMethodNewIsNotAliased(t *testing.T) {
	interp, _ := run(t, `
struct S {
	constructor(self) { self.x = 1 }
	new(self) { self.x = 99 }
}
s = S::new()
x1 = s.x
s.new()
x2 = s.x
`)
	wantInt(t, globalValue(t, interp, "x1"), 1)
	wantInt(t, globalValue(t, interp, "x2"), 99)

	got := runErr(t, `
struct P {
	constructor(self) { pass }
}
p = P::new()
p.new()
`)
	if got != "Runtime Error: Struct 'P' has no method 'new'" {
		t.Fatalf("error: got %q", got)
	}
}

func TestMethodOnTemporaryReceiver(t *testing.T) {
	interp, _ := run(t, `
result = 0
struct Point {
	constructor(self, x, y) {
		self.x = x
		self.y = y
	}
	sum(self) { result = x + y }
}
Point::new(1, 2).sum()
`)
	wantInt(t, globalValue(t, interp, "result"), 3)
}

func TestMethodScopeReleasedOnError(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
struct P {
	constructor(self) { pass }
	blow(self) { boom() }
}
p = P::new()
p.blow()
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err == nil {
		t.Fatalf("expected a runtime error")
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed method: got %d, want 1", depth)
	}
}

func TestConstructorScopeReleasedOnError(t *testing.T) {
	interp := New()
	statements, err := parser.ParseSource(`
struct P {
	constructor(self) { boom() }
}
p = P::new()
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Interpret(statements); err == nil {
		t.Fatalf("expected a runtime error")
	}
	if depth := interp.Environment().Depth(); depth != 1 {
		t.Fatalf("scope depth after failed constructor: got %d, want 1", depth)
	}
}

func TestStructEquality(t *testing.T) {
	interp, _ := run(t, `
struct Point {
	constructor(self, x) { self.x = x }
}
p = Point::new(1)
q = Point::new(1)
r = Point::new(2)
same = p == q
diff = p == r
`)
	wantBool(t, globalValue(t, interp, "same"), true)
	wantBool(t, globalValue(t, interp, "diff"), false)
}

func TestNestedInstantiationThroughFieldAssign(t *testing.T) {
	interp, _ := run(t, `
struct Inner {
	constructor(self, x) { self.x = x }
}
struct Outer {
	constructor(self) { self.inner = Inner::new(5) }
}
o = Outer::new()
x = o.inner.x
`)
	o, ok := globalValue(t, interp, "o").(*runtime.StructInstanceValue)
	if !ok || o.StructName != "Outer" {
		t.Fatalf("expected Outer instance, got %#v", globalValue(t, interp, "o"))
	}
	wantInt(t, globalValue(t, interp, "x"), 5)
}

func TestNestedInstantiationIntoLocalReplacesSelf(t *testing.T) {
	// Binding a nested instantiation to a plain local rebinds the enclosing
	// self through the scope walk, so the outer constructor yields the
	// inner instance.
	interp, _ := run(t, `
struct Inner {
	constructor(self, x) { self.x = x }
}
struct Outer {
	constructor(self) { tmp = Inner::new(5) }
}
o = Outer::new()
`)
	o, ok := globalValue(t, interp, "o").(*runtime.StructInstanceValue)
	if !ok || o.StructName != "Inner" {
		t.Fatalf("expected the inner instance to leak into o, got %#v", globalValue(t, interp, "o"))
	}
	wantInt(t, o.Fields["x"], 5)
}

package ast

import "math/big"

// Literal helpers.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func IntBig(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value))
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Big(digits string) *BigIntLiteral {
	return NewBigIntLiteral(digits)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Chr(value rune) *CharLiteral {
	return NewCharLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Axis(elements ...Expression) *AxisLiteral {
	return NewAxisLiteral(elements)
}

func DictE(key, value Expression) *DictionaryEntry {
	return NewDictionaryEntry(key, value)
}

func Dict(entries ...*DictionaryEntry) *DictionaryLiteral {
	return NewDictionaryLiteral(entries)
}

func Iter(values ...int64) *IterableLiteral {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return NewIterableLiteral(out)
}

// Expression helpers.

func Grp(expression Expression) *Grouping {
	return NewGrouping(expression)
}

func Macro(setup []Expression, body ...Statement) *MacroCall {
	return NewMacroCall(setup, body)
}

func Acc(root string, accessors ...Expression) *Access {
	return NewAccess(root, accessors)
}

func Un(operator string, right Expression) *UnaryExpression {
	return NewUnaryExpression(operator, right)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Alloc(name string, value Expression) *AllocateVariable {
	return NewAllocateVariable(name, value)
}

func Var(name string) *Variable {
	return NewVariable(name)
}

func Log(value Expression) *Print {
	return NewPrint(value)
}

func Arg(name string, value Expression) *Argument {
	return NewArgument(name, value)
}

func Call(function string, args ...*Argument) *FunctionCall {
	return NewFunctionCall(function, args)
}

func StructInst(structName, methodName string, args ...Expression) *StructInstantiation {
	return NewStructInstantiation(structName, methodName, args)
}

func Member(object Expression, member string) *MemberAccess {
	return NewMemberAccess(object, member)
}

func MemberSet(object Expression, member string, value Expression) *MemberAssign {
	return NewMemberAssign(object, member, value)
}

func Method(object Expression, method string, args ...Expression) *MethodCall {
	return NewMethodCall(object, method, args)
}

// Statement helpers.

func Lock(variable string) *SmartLockStatement {
	return NewSmartLockStatement(variable)
}

func Unlock(variable string) *SmartUnlockStatement {
	return NewSmartUnlockStatement(variable)
}

func Kill(variable string) *SmartKillStatement {
	return NewSmartKillStatement(variable)
}

func Revive(variable string) *SmartReviveStatement {
	return NewSmartReviveStatement(variable)
}

func Const(variable string) *SmartConstStatement {
	return NewSmartConstStatement(variable)
}

func If(condition Expression, then ...Statement) *IfStatement {
	return NewIfStatement(condition, then, nil, nil)
}

func IfElse(condition Expression, then, els []Statement) *IfStatement {
	return NewIfStatement(condition, then, nil, els)
}

func IfElif(condition Expression, then []Statement, elifs []*ElifBranch, els []Statement) *IfStatement {
	return NewIfStatement(condition, then, elifs, els)
}

func Elif(condition Expression, body ...Statement) *ElifBranch {
	return NewElifBranch(condition, body)
}

// Fn declares a callable label; params are the external names, internals
// the positionally paired body names.
func Fn(name string, params, internals []string, body ...Statement) *LabelDecl {
	return NewLabelDecl(name, true, nil, params, internals, body)
}

// FnVis is Fn with visible-block grants.
func FnVis(name string, visibleBlocks, params, internals []string, body ...Statement) *LabelDecl {
	return NewLabelDecl(name, true, visibleBlocks, params, internals, body)
}

// Target declares a control-flow label.
func Target(name string, body ...Statement) *LabelDecl {
	return NewLabelDecl(name, false, nil, nil, nil, body)
}

func Label(labels ...*LabelDecl) *LabelStatement {
	return NewLabelStatement(labels)
}

func Jump(target string) *JumpStatement {
	return NewJumpStatement(target)
}

func Pass() *PassStatement {
	return NewPassStatement()
}

func For(iterator string, iterable Expression, body ...Statement) *ForStatement {
	return NewForStatement(iterator, iterable, body)
}

func While(condition Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func DoWhile(body []Statement, condition Expression) *DoWhileStatement {
	return NewDoWhileStatement(body, condition)
}

func VisE(name string, value Expression) *VisibleEntry {
	return NewVisibleEntry(name, value)
}

func Visible(name string, entries ...*VisibleEntry) *VisibleStatement {
	return NewVisibleStatement(name, entries)
}

func Meth(name string, params []string, body ...Statement) *MethodDecl {
	return NewMethodDecl(name, params, body)
}

func Struct(name string, methods ...*MethodDecl) *StructDefStatement {
	return NewStructDefStatement(name, methods)
}

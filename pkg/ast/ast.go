package ast

import "math/big"

type NodeType string

const (
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeBigIntLiteral        NodeType = "BigIntLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeCharLiteral          NodeType = "CharLiteral"
	NodeNilLiteral           NodeType = "NilLiteral"
	NodeArrayLiteral         NodeType = "ArrayLiteral"
	NodeAxisLiteral          NodeType = "AxisLiteral"
	NodeDictionaryLiteral    NodeType = "DictionaryLiteral"
	NodeDictionaryEntry      NodeType = "DictionaryEntry"
	NodeIterableLiteral      NodeType = "IterableLiteral"
	NodeGrouping             NodeType = "Grouping"
	NodeMacroCall            NodeType = "MacroCall"
	NodeAccess               NodeType = "Access"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeAllocateVariable     NodeType = "AllocateVariable"
	NodeVariable             NodeType = "Variable"
	NodePrint                NodeType = "Print"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeArgument             NodeType = "Argument"
	NodeStructInstantiation  NodeType = "StructInstantiation"
	NodeMemberAccess         NodeType = "MemberAccess"
	NodeMemberAssign         NodeType = "MemberAssign"
	NodeMethodCall           NodeType = "MethodCall"
	NodeSmartLockStatement   NodeType = "SmartLockStatement"
	NodeSmartUnlockStatement NodeType = "SmartUnlockStatement"
	NodeSmartKillStatement   NodeType = "SmartKillStatement"
	NodeSmartReviveStatement NodeType = "SmartReviveStatement"
	NodeSmartConstStatement  NodeType = "SmartConstStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeElifBranch           NodeType = "ElifBranch"
	NodeLabelStatement       NodeType = "LabelStatement"
	NodeLabelDecl            NodeType = "LabelDecl"
	NodeJumpStatement        NodeType = "JumpStatement"
	NodePassStatement        NodeType = "PassStatement"
	NodeForStatement         NodeType = "ForStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeDoWhileStatement     NodeType = "DoWhileStatement"
	NodeVisibleStatement     NodeType = "VisibleStatement"
	NodeVisibleEntry         NodeType = "VisibleEntry"
	NodeStructDefStatement   NodeType = "StructDefStatement"
	NodeMethodDecl           NodeType = "MethodDecl"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Every expression can stand alone as a statement; the
// executor evaluates it and discards the value.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

//-----------------------------------------------------------------------------
// Literals
//-----------------------------------------------------------------------------

// IntegerLiteral holds a signed integer that fits the 128-bit range; wider
// literals arrive as BigIntLiteral instead.
type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value *big.Int `json:"value"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

// BigIntLiteral carries the decimal digits of an integer too wide for the
// 128-bit range.
type BigIntLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewBigIntLiteral(value string) *BigIntLiteral {
	return &BigIntLiteral{nodeImpl: newNodeImpl(NodeBigIntLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type CharLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value rune `json:"value"`
}

func NewCharLiteral(value rune) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

type AxisLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewAxisLiteral(elements []Expression) *AxisLiteral {
	return &AxisLiteral{nodeImpl: newNodeImpl(NodeAxisLiteral), Elements: elements}
}

type DictionaryEntry struct {
	nodeImpl

	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

func NewDictionaryEntry(key, value Expression) *DictionaryEntry {
	return &DictionaryEntry{nodeImpl: newNodeImpl(NodeDictionaryEntry), Key: key, Value: value}
}

type DictionaryLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Entries []*DictionaryEntry `json:"entries"`
}

func NewDictionaryLiteral(entries []*DictionaryEntry) *DictionaryLiteral {
	return &DictionaryLiteral{nodeImpl: newNodeImpl(NodeDictionaryLiteral), Entries: entries}
}

// IterableLiteral is a pre-expanded inclusive integer range; the parser
// computes the values so the evaluator only materializes them.
type IterableLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Values []*big.Int `json:"values"`
}

func NewIterableLiteral(values []*big.Int) *IterableLiteral {
	return &IterableLiteral{nodeImpl: newNodeImpl(NodeIterableLiteral), Values: values}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type Grouping struct {
	nodeImpl
	expressionMarker
	statementMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(expression Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: expression}
}

// MacroCall evaluates its setup expressions, executes its body statements
// and yields true. Macro expansion happens before the runtime sees the
// tree, so these nodes are produced programmatically.
type MacroCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Setup []Expression `json:"setup"`
	Body  []Statement  `json:"body"`
}

func NewMacroCall(setup []Expression, body []Statement) *MacroCall {
	return &MacroCall{nodeImpl: newNodeImpl(NodeMacroCall), Setup: setup, Body: body}
}

// Access walks a chain of index/key accessors starting from a named
// variable: name[i], name[i][j], dict["k"] and so on.
type Access struct {
	nodeImpl
	expressionMarker
	statementMarker

	Root      string       `json:"root"`
	Accessors []Expression `json:"accessors"`
}

func NewAccess(root string, accessors []Expression) *Access {
	return &Access{nodeImpl: newNodeImpl(NodeAccess), Root: root, Accessors: accessors}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewUnaryExpression(operator string, right Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Right: right}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AllocateVariable is the assignment form `name = value`; as an expression
// it yields nil.
type AllocateVariable struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAllocateVariable(name string, value Expression) *AllocateVariable {
	return &AllocateVariable{nodeImpl: newNodeImpl(NodeAllocateVariable), Name: name, Value: value}
}

type Variable struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Print is the `log expr` form; it renders a single scalar to stdout.
type Print struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value Expression `json:"value"`
}

func NewPrint(value Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

type Argument struct {
	nodeImpl

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewArgument(name string, value Expression) *Argument {
	return &Argument{nodeImpl: newNodeImpl(NodeArgument), Name: name, Value: value}
}

// FunctionCall invokes a builtin or a callable label. Arguments are named
// after the callee's external parameters; order is preserved for builtins
// that care about it.
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Function string      `json:"function"`
	Args     []*Argument `json:"args"`
}

func NewFunctionCall(function string, args []*Argument) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Function: function, Args: args}
}

// StructInstantiation is the `Struct::method(args)` form. The method name
// "new" aliases "constructor".
type StructInstantiation struct {
	nodeImpl
	expressionMarker
	statementMarker

	StructName string       `json:"structName"`
	MethodName string       `json:"methodName"`
	Args       []Expression `json:"args"`
}

func NewStructInstantiation(structName, methodName string, args []Expression) *StructInstantiation {
	return &StructInstantiation{nodeImpl: newNodeImpl(NodeStructInstantiation), StructName: structName, MethodName: methodName, Args: args}
}

type MemberAccess struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Member string     `json:"member"`
}

func NewMemberAccess(object Expression, member string) *MemberAccess {
	return &MemberAccess{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Member: member}
}

type MemberAssign struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Member string     `json:"member"`
	Value  Expression `json:"value"`
}

func NewMemberAssign(object Expression, member string, value Expression) *MemberAssign {
	return &MemberAssign{nodeImpl: newNodeImpl(NodeMemberAssign), Object: object, Member: member, Value: value}
}

type MethodCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression   `json:"object"`
	Method string       `json:"method"`
	Args   []Expression `json:"args"`
}

func NewMethodCall(object Expression, method string, args []Expression) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall), Object: object, Method: method, Args: args}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type SmartLockStatement struct {
	nodeImpl
	statementMarker

	Variable string `json:"variable"`
}

func NewSmartLockStatement(variable string) *SmartLockStatement {
	return &SmartLockStatement{nodeImpl: newNodeImpl(NodeSmartLockStatement), Variable: variable}
}

type SmartUnlockStatement struct {
	nodeImpl
	statementMarker

	Variable string `json:"variable"`
}

func NewSmartUnlockStatement(variable string) *SmartUnlockStatement {
	return &SmartUnlockStatement{nodeImpl: newNodeImpl(NodeSmartUnlockStatement), Variable: variable}
}

type SmartKillStatement struct {
	nodeImpl
	statementMarker

	Variable string `json:"variable"`
}

func NewSmartKillStatement(variable string) *SmartKillStatement {
	return &SmartKillStatement{nodeImpl: newNodeImpl(NodeSmartKillStatement), Variable: variable}
}

type SmartReviveStatement struct {
	nodeImpl
	statementMarker

	Variable string `json:"variable"`
}

func NewSmartReviveStatement(variable string) *SmartReviveStatement {
	return &SmartReviveStatement{nodeImpl: newNodeImpl(NodeSmartReviveStatement), Variable: variable}
}

type SmartConstStatement struct {
	nodeImpl
	statementMarker

	Variable string `json:"variable"`
}

func NewSmartConstStatement(variable string) *SmartConstStatement {
	return &SmartConstStatement{nodeImpl: newNodeImpl(NodeSmartConstStatement), Variable: variable}
}

type ElifBranch struct {
	nodeImpl

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewElifBranch(condition Expression, body []Statement) *ElifBranch {
	return &ElifBranch{nodeImpl: newNodeImpl(NodeElifBranch), Condition: condition, Body: body}
}

// IfStatement branches run in the enclosing scope; they do not open one of
// their own.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition    Expression    `json:"condition"`
	ThenBranch   []Statement   `json:"thenBranch"`
	ElifBranches []*ElifBranch `json:"elifBranches,omitempty"`
	ElseBranch   []Statement   `json:"elseBranch,omitempty"`
}

func NewIfStatement(condition Expression, thenBranch []Statement, elifBranches []*ElifBranch, elseBranch []Statement) *IfStatement {
	return &IfStatement{
		nodeImpl:     newNodeImpl(NodeIfStatement),
		Condition:    condition,
		ThenBranch:   thenBranch,
		ElifBranches: elifBranches,
		ElseBranch:   elseBranch,
	}
}

// LabelDecl declares one label. Callable labels become functions whose
// Params are the external argument names and Internals the positionally
// paired names the body uses; non-callable labels become jump targets.
type LabelDecl struct {
	nodeImpl

	Name          string      `json:"name"`
	Callable      bool        `json:"callable"`
	VisibleBlocks []string    `json:"visibleBlocks,omitempty"`
	Params        []string    `json:"params,omitempty"`
	Internals     []string    `json:"internals,omitempty"`
	Body          []Statement `json:"body"`
}

func NewLabelDecl(name string, callable bool, visibleBlocks, params, internals []string, body []Statement) *LabelDecl {
	return &LabelDecl{
		nodeImpl:      newNodeImpl(NodeLabelDecl),
		Name:          name,
		Callable:      callable,
		VisibleBlocks: visibleBlocks,
		Params:        params,
		Internals:     internals,
		Body:          body,
	}
}

type LabelStatement struct {
	nodeImpl
	statementMarker

	Labels []*LabelDecl `json:"labels"`
}

func NewLabelStatement(labels []*LabelDecl) *LabelStatement {
	return &LabelStatement{nodeImpl: newNodeImpl(NodeLabelStatement), Labels: labels}
}

type JumpStatement struct {
	nodeImpl
	statementMarker

	Target string `json:"target"`
}

func NewJumpStatement(target string) *JumpStatement {
	return &JumpStatement{nodeImpl: newNodeImpl(NodeJumpStatement), Target: target}
}

type PassStatement struct {
	nodeImpl
	statementMarker
}

func NewPassStatement() *PassStatement {
	return &PassStatement{nodeImpl: newNodeImpl(NodePassStatement)}
}

type ForStatement struct {
	nodeImpl
	statementMarker

	Iterator string      `json:"iterator"`
	Iterable Expression  `json:"iterable"`
	Body     []Statement `json:"body"`
}

func NewForStatement(iterator string, iterable Expression, body []Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Iterator: iterator, Iterable: iterable, Body: body}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewWhileStatement(condition Expression, body []Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type DoWhileStatement struct {
	nodeImpl
	statementMarker

	Body      []Statement `json:"body"`
	Condition Expression  `json:"condition"`
}

func NewDoWhileStatement(body []Statement, condition Expression) *DoWhileStatement {
	return &DoWhileStatement{nodeImpl: newNodeImpl(NodeDoWhileStatement), Body: body, Condition: condition}
}

type VisibleEntry struct {
	nodeImpl

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewVisibleEntry(name string, value Expression) *VisibleEntry {
	return &VisibleEntry{nodeImpl: newNodeImpl(NodeVisibleEntry), Name: name, Value: value}
}

// VisibleStatement declares a shared block. Entries are not evaluated at
// declaration; the first call of a function granted access initializes
// them in order.
type VisibleStatement struct {
	nodeImpl
	statementMarker

	Name    string          `json:"name"`
	Entries []*VisibleEntry `json:"entries"`
}

func NewVisibleStatement(name string, entries []*VisibleEntry) *VisibleStatement {
	return &VisibleStatement{nodeImpl: newNodeImpl(NodeVisibleStatement), Name: name, Entries: entries}
}

type MethodDecl struct {
	nodeImpl

	Name   string      `json:"name"`
	Params []string    `json:"params,omitempty"`
	Body   []Statement `json:"body"`
}

func NewMethodDecl(name string, params []string, body []Statement) *MethodDecl {
	return &MethodDecl{nodeImpl: newNodeImpl(NodeMethodDecl), Name: name, Params: params, Body: body}
}

type StructDefStatement struct {
	nodeImpl
	statementMarker

	Name    string        `json:"name"`
	Methods []*MethodDecl `json:"methods"`
}

func NewStructDefStatement(name string, methods []*MethodDecl) *StructDefStatement {
	return &StructDefStatement{nodeImpl: newNodeImpl(NodeStructDefStatement), Name: name, Methods: methods}
}

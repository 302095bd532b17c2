package runtime

import (
	"math"
	"math/big"

	"ex/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindUInt
	KindFloat
	KindBigInt
	KindString
	KindBool
	KindChar
	KindNil
	KindArray
	KindAxis
	KindDictionary
	KindFunction
	KindControlFlow
	KindStructDef
	KindStructInstance
)

// String returns the surface type name, exactly as typeof reports it.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindBigInt:
		return "BigInt"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindNil:
		return "Nil"
	case KindArray:
		return "Array"
	case KindAxis:
		return "Axis"
	case KindDictionary:
		return "Dictionary"
	case KindFunction:
		return "Function"
	case KindControlFlow:
		return "ControlFlow"
	case KindStructDef:
		return "StructDef"
	case KindStructInstance:
		return "StructInstance"
	default:
		return "Unknown"
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Int payloads are confined to the 128-bit ranges; arithmetic that would
// leave them reports an overflow instead.
var (
	MaxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	MinInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	MaxUInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntValue is a signed 128-bit integer.
type IntValue struct {
	Val *big.Int
}

func (v IntValue) Kind() Kind { return KindInt }

// UIntValue is an unsigned 128-bit integer. It participates in casts and
// comparisons for equality, never in arithmetic.
type UIntValue struct {
	Val *big.Int
}

func (v UIntValue) Kind() Kind { return KindUInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

// BigIntValue carries an arbitrary-precision integer as its decimal digits.
type BigIntValue struct {
	Val string
}

func (v BigIntValue) Kind() Kind { return KindBigInt }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// AxisValue shares Array's element layout but stays a distinct type in
// every operation; the two never compare equal.
type AxisValue struct {
	Elements []Value
}

func (v *AxisValue) Kind() Kind { return KindAxis }

// DictionaryValue keys are the string renderings of the primitive keys
// they were built from.
type DictionaryValue struct {
	Entries map[string]Value
}

func (v *DictionaryValue) Kind() Kind { return KindDictionary }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// FunctionValue is a callable label. Params holds the external parameter
// names used at call sites; Internals holds the positionally paired names
// the body sees.
type FunctionValue struct {
	Name          string
	Params        []string
	Internals     []string
	Body          []ast.Statement
	VisibleBlocks []string
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// ControlFlowValue is a jump target label.
type ControlFlowValue struct {
	Name string
	Body []ast.Statement
}

func (v *ControlFlowValue) Kind() Kind { return KindControlFlow }

//-----------------------------------------------------------------------------
// Structs
//-----------------------------------------------------------------------------

// Method is a struct method body with its declared parameter list (the
// leading "self" parameter included when the declaration carries one).
type Method struct {
	Name   string
	Params []string
	Body   []ast.Statement
}

type StructDefValue struct {
	Name    string
	Methods map[string]*Method
}

func (v *StructDefValue) Kind() Kind { return KindStructDef }

type StructInstanceValue struct {
	StructName string
	Fields     map[string]Value
	Methods    map[string]*Method
}

func (v *StructInstanceValue) Kind() Kind { return KindStructInstance }

//-----------------------------------------------------------------------------
// Shared behaviour
//-----------------------------------------------------------------------------

// Truthy reports the boolean reading used by conditions and the logical
// operators.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val.Sign() != 0
	case UIntValue:
		return val.Val.Sign() != 0
	case FloatValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case BigIntValue:
		return val.Val != "0" && val.Val != ""
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}

// Equal compares two values structurally. Values of different kinds are
// never equal; callables and struct definitions compare by name only.
func Equal(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch lv := left.(type) {
	case IntValue:
		return lv.Val.Cmp(right.(IntValue).Val) == 0
	case UIntValue:
		return lv.Val.Cmp(right.(UIntValue).Val) == 0
	case FloatValue:
		return lv.Val == right.(FloatValue).Val
	case BigIntValue:
		return lv.Val == right.(BigIntValue).Val
	case StringValue:
		return lv.Val == right.(StringValue).Val
	case BoolValue:
		return lv.Val == right.(BoolValue).Val
	case CharValue:
		return lv.Val == right.(CharValue).Val
	case NilValue:
		return true
	case *ArrayValue:
		return elementsEqual(lv.Elements, right.(*ArrayValue).Elements)
	case *AxisValue:
		return elementsEqual(lv.Elements, right.(*AxisValue).Elements)
	case *DictionaryValue:
		rv := right.(*DictionaryValue)
		if len(lv.Entries) != len(rv.Entries) {
			return false
		}
		for key, val := range lv.Entries {
			other, ok := rv.Entries[key]
			if !ok || !Equal(val, other) {
				return false
			}
		}
		return true
	case *FunctionValue:
		return lv.Name == right.(*FunctionValue).Name
	case *ControlFlowValue:
		return lv.Name == right.(*ControlFlowValue).Name
	case *StructDefValue:
		return lv.Name == right.(*StructDefValue).Name
	case *StructInstanceValue:
		rv := right.(*StructInstanceValue)
		if lv.StructName != rv.StructName {
			return false
		}
		if len(lv.Fields) != len(rv.Fields) {
			return false
		}
		for name, val := range lv.Fields {
			other, ok := rv.Fields[name]
			if !ok || !Equal(val, other) {
				return false
			}
		}
		if len(lv.Methods) != len(rv.Methods) {
			return false
		}
		for name := range lv.Methods {
			if _, ok := rv.Methods[name]; !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func elementsEqual(left, right []Value) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !Equal(left[i], right[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies mutable aggregates so bindings handed out by the
// store cannot alias each other. Callables and struct definitions are
// immutable and shared.
func Clone(v Value) Value {
	switch val := v.(type) {
	case IntValue:
		return IntValue{Val: CloneBigInt(val.Val)}
	case UIntValue:
		return UIntValue{Val: CloneBigInt(val.Val)}
	case *ArrayValue:
		return &ArrayValue{Elements: cloneElements(val.Elements)}
	case *AxisValue:
		return &AxisValue{Elements: cloneElements(val.Elements)}
	case *DictionaryValue:
		entries := make(map[string]Value, len(val.Entries))
		for key, entry := range val.Entries {
			entries[key] = Clone(entry)
		}
		return &DictionaryValue{Entries: entries}
	case *StructInstanceValue:
		fields := make(map[string]Value, len(val.Fields))
		for name, field := range val.Fields {
			fields[name] = Clone(field)
		}
		return &StructInstanceValue{StructName: val.StructName, Fields: fields, Methods: val.Methods}
	default:
		return v
	}
}

func cloneElements(elements []Value) []Value {
	out := make([]Value, len(elements))
	for i, e := range elements {
		out[i] = Clone(e)
	}
	return out
}

// CloneBigInt copies the provided big.Int pointer, tolerating nil.
func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}

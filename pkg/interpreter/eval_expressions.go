package interpreter

import (
	"fmt"
	"math/big"
	"strconv"

	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: runtime.CloneBigInt(e.Value)}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: e.Value}, nil
	case *ast.BigIntLiteral:
		return runtime.BigIntValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.CharLiteral:
		return runtime.CharValue{Val: e.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil

	case *ast.Grouping:
		return i.evaluateExpression(e.Expression)

	case *ast.MacroCall:
		for _, setup := range e.Setup {
			if _, err := i.evaluateExpression(setup); err != nil {
				return nil, err
			}
		}
		for _, stmt := range e.Body {
			if err := i.executeStatement(stmt); err != nil {
				return nil, err
			}
		}
		return runtime.BoolValue{Val: true}, nil

	case *ast.ArrayLiteral:
		elements, err := i.evaluateElements(e.Elements)
		if err != nil {
			return nil, err
		}
		return &runtime.ArrayValue{Elements: elements}, nil

	case *ast.AxisLiteral:
		elements, err := i.evaluateElements(e.Elements)
		if err != nil {
			return nil, err
		}
		return &runtime.AxisValue{Elements: elements}, nil

	case *ast.DictionaryLiteral:
		return i.evaluateDictionary(e)

	case *ast.IterableLiteral:
		elements := make([]runtime.Value, len(e.Values))
		for idx, v := range e.Values {
			elements[idx] = runtime.IntValue{Val: runtime.CloneBigInt(v)}
		}
		return &runtime.ArrayValue{Elements: elements}, nil

	case *ast.Access:
		return i.evaluateAccess(e)

	case *ast.UnaryExpression:
		return i.evaluateUnary(e)

	case *ast.BinaryExpression:
		left, err := i.evaluateExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return evaluateBinary(e.Operator, left, right)

	case *ast.AllocateVariable:
		value, err := i.evaluateExpression(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.env.Define(e.Name, value); err != nil {
			return nil, err
		}
		return runtime.NilValue{}, nil

	case *ast.Variable:
		return i.evaluateVariable(e.Name)

	case *ast.Print:
		value, err := i.evaluateExpression(e.Value)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.out, logRender(value))
		return runtime.NilValue{}, nil

	case *ast.FunctionCall:
		return i.evaluateFunctionCall(e)
	case *ast.StructInstantiation:
		return i.evaluateStructInstantiation(e)
	case *ast.MemberAccess:
		return i.evaluateMemberAccess(e)
	case *ast.MemberAssign:
		return i.evaluateMemberAssign(e)
	case *ast.MethodCall:
		return i.evaluateMethodCall(e)

	default:
		return nil, runtime.NewUnsupportedExpression(string(expr.NodeType()))
	}
}

func (i *Interpreter) evaluateElements(exprs []ast.Expression) ([]runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		value, err := i.evaluateExpression(expr)
		if err != nil {
			return nil, err
		}
		elements = append(elements, value)
	}
	return elements, nil
}

func (i *Interpreter) evaluateDictionary(dict *ast.DictionaryLiteral) (runtime.Value, error) {
	entries := make(map[string]runtime.Value, len(dict.Entries))
	for _, entry := range dict.Entries {
		keyValue, err := i.evaluateExpression(entry.Key)
		if err != nil {
			return nil, err
		}
		key, err := dictionaryLiteralKey(keyValue)
		if err != nil {
			return nil, err
		}
		value, err := i.evaluateExpression(entry.Value)
		if err != nil {
			return nil, err
		}
		entries[key] = value
	}
	return &runtime.DictionaryValue{Entries: entries}, nil
}

// dictionaryLiteralKey renders a literal key. Only primitives may key a
// dictionary literal; access additionally tolerates BigInt keys.
func dictionaryLiteralKey(v runtime.Value) (string, error) {
	switch key := v.(type) {
	case runtime.StringValue:
		return key.Val, nil
	case runtime.IntValue:
		return key.Val.String(), nil
	case runtime.FloatValue:
		return formatFloat(key.Val), nil
	case runtime.BoolValue:
		return strconv.FormatBool(key.Val), nil
	case runtime.CharValue:
		return string(key.Val), nil
	default:
		return "", runtime.Customf("Dictionary keys must be primitive types, got %s", v.Kind())
	}
}

func dictionaryAccessKey(v runtime.Value) (string, error) {
	switch key := v.(type) {
	case runtime.IntValue:
		return key.Val.String(), nil
	case runtime.StringValue:
		return key.Val, nil
	case runtime.FloatValue:
		return formatFloat(key.Val), nil
	case runtime.BoolValue:
		return strconv.FormatBool(key.Val), nil
	case runtime.CharValue:
		return string(key.Val), nil
	case runtime.BigIntValue:
		return key.Val, nil
	default:
		return "", runtime.Customf("Invalid key type for dictionary access: %s", v.Kind())
	}
}

// evaluateAccess walks the accessor chain left to right starting from the
// named root value.
func (i *Interpreter) evaluateAccess(access *ast.Access) (runtime.Value, error) {
	current, err := i.env.Get(access.Root)
	if err != nil {
		return nil, err
	}
	for _, item := range access.Accessors {
		accessor, err := i.evaluateExpression(item)
		if err != nil {
			return nil, err
		}
		current, err = accessValue(current, accessor)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func accessValue(container, accessor runtime.Value) (runtime.Value, error) {
	switch c := container.(type) {
	case *runtime.DictionaryValue:
		key, err := dictionaryAccessKey(accessor)
		if err != nil {
			return nil, err
		}
		value, ok := c.Entries[key]
		if !ok {
			return nil, runtime.Customf("Key '%s' not found in dictionary", key)
		}
		return value, nil

	case *runtime.ArrayValue:
		idx, ok := accessor.(runtime.IntValue)
		if !ok {
			return nil, runtime.Customf("Array index must be integer, got %s", accessor.Kind())
		}
		actual, err := resolveIndex(idx.Val, len(c.Elements), "array")
		if err != nil {
			return nil, err
		}
		return c.Elements[actual], nil

	case *runtime.AxisValue:
		idx, ok := accessor.(runtime.IntValue)
		if !ok {
			return nil, runtime.Customf("Axis index must be integer, got %s", accessor.Kind())
		}
		actual, err := resolveIndex(idx.Val, len(c.Elements), "axis")
		if err != nil {
			return nil, err
		}
		return c.Elements[actual], nil

	default:
		return nil, runtime.Customf("Cannot access member on type '%s'", container.Kind())
	}
}

// resolveIndex maps a possibly negative accessor index onto 0..len-1;
// idx -len addresses the first element.
func resolveIndex(idx *big.Int, length int, what string) (int, error) {
	if length == 0 {
		return 0, runtime.Customf("Index %s out of bounds for %s of length 0", idx, what)
	}
	l := big.NewInt(int64(length))
	if idx.Sign() < 0 {
		actual := new(big.Int).Add(l, idx)
		if actual.Sign() < 0 {
			return 0, runtime.Customf("Index %s out of bounds for %s of length %d", idx, what, length)
		}
		return int(actual.Int64()), nil
	}
	if idx.Cmp(l) >= 0 {
		return 0, runtime.Customf("Index %s out of bounds for %s of length %d", idx, what, length)
	}
	return int(idx.Int64()), nil
}

func (i *Interpreter) evaluateUnary(e *ast.UnaryExpression) (runtime.Value, error) {
	value, err := i.evaluateExpression(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		switch v := value.(type) {
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		case runtime.IntValue:
			neg := new(big.Int).Neg(v.Val)
			if neg.Cmp(runtime.MaxInt128) > 0 {
				return nil, runtime.NewIntegerOverflow()
			}
			return runtime.IntValue{Val: neg}, nil
		default:
			return nil, runtime.NewInvalidUnaryOperation("-", value.Kind().String())
		}
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(value)}, nil
	default:
		return nil, runtime.Customf("Unsupported unary operator: %s", e.Operator)
	}
}

// evaluateBinary applies an operator to two already evaluated operands.
// Both sides are always evaluated; the logical operators select an
// operand value rather than short-circuiting.
func evaluateBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return addValues(left, right)
	case "-":
		return numOp(left, right, func(a, b float64) float64 { return a - b }, "-")
	case "*":
		return numOp(left, right, func(a, b float64) float64 { return a * b }, "*")
	case "/":
		if isZeroOperand(right) {
			return nil, runtime.NewDivisionByZero()
		}
		return numOp(left, right, func(a, b float64) float64 { return a / b }, "/")
	case "==":
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case ">":
		return compareValues(left, right, func(a, b float64) bool { return a > b }, ">")
	case ">=":
		return compareValues(left, right, func(a, b float64) bool { return a >= b }, ">=")
	case "<":
		return compareValues(left, right, func(a, b float64) bool { return a < b }, "<")
	case "<=":
		return compareValues(left, right, func(a, b float64) bool { return a <= b }, "<=")
	case "&&":
		if !runtime.Truthy(left) {
			return left, nil
		}
		return right, nil
	case "||":
		if runtime.Truthy(left) {
			return left, nil
		}
		return right, nil
	default:
		return nil, runtime.Customf("Unsupported binary operator: %s", op)
	}
}

// addValues keeps Int+Int exact (overflow checked against the 128-bit
// range); mixed numeric operands widen to Float, and String+String
// concatenates.
func addValues(left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.IntValue:
		switch r := right.(type) {
		case runtime.IntValue:
			sum := new(big.Int).Add(l.Val, r.Val)
			if sum.Cmp(runtime.MaxInt128) > 0 || sum.Cmp(runtime.MinInt128) < 0 {
				return nil, runtime.NewIntegerOverflow()
			}
			return runtime.IntValue{Val: sum}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: bigToFloat(l.Val) + r.Val}, nil
		}
	case runtime.FloatValue:
		switch r := right.(type) {
		case runtime.FloatValue:
			return runtime.FloatValue{Val: l.Val + r.Val}, nil
		case runtime.IntValue:
			return runtime.FloatValue{Val: l.Val + bigToFloat(r.Val)}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, runtime.NewInvalidBinaryOperation("+", left.Kind().String(), right.Kind().String())
}

func numOp(left, right runtime.Value, op func(a, b float64) float64, opStr string) (runtime.Value, error) {
	a, aok := numericOperand(left)
	b, bok := numericOperand(right)
	if !aok || !bok {
		return nil, runtime.NewInvalidBinaryOperation(opStr, left.Kind().String(), right.Kind().String())
	}
	return runtime.FloatValue{Val: op(a, b)}, nil
}

func compareValues(left, right runtime.Value, op func(a, b float64) bool, opStr string) (runtime.Value, error) {
	a, aok := numericOperand(left)
	b, bok := numericOperand(right)
	if !aok || !bok {
		return nil, runtime.NewInvalidBinaryOperation(opStr, left.Kind().String(), right.Kind().String())
	}
	return runtime.BoolValue{Val: op(a, b)}, nil
}

func numericOperand(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.IntValue:
		return bigToFloat(n.Val), true
	case runtime.FloatValue:
		return n.Val, true
	}
	return 0, false
}

func isZeroOperand(v runtime.Value) bool {
	switch n := v.(type) {
	case runtime.IntValue:
		return n.Val.Sign() == 0
	case runtime.FloatValue:
		return n.Val == 0
	}
	return false
}

func bigToFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

// evaluateVariable resolves the binding store first, then the permitted
// visibility blocks of the running function, in declaration order.
func (i *Interpreter) evaluateVariable(name string) (runtime.Value, error) {
	if i.env.Exists(name) {
		return i.env.Get(name)
	}
	if i.inFunction {
		for _, block := range i.contextBlocks {
			if values, ok := i.visibleValues[block]; ok {
				if value, ok := values[name]; ok {
					return runtime.Clone(value), nil
				}
			}
		}
	}
	return nil, runtime.NewUndefinedVariable(name)
}

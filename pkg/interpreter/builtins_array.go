package interpreter

import (
	"math/big"
	"sort"

	"ex/interpreter-go/pkg/runtime"
)

func expectArray(fn string, v runtime.Value) (*runtime.ArrayValue, error) {
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		return nil, runtime.Customf("%s expects Array, got %s", fn, v.Kind())
	}
	return arr, nil
}

func expectInt(fn, name string, v runtime.Value) (*big.Int, error) {
	n, ok := v.(runtime.IntValue)
	if !ok {
		return nil, runtime.Customf("%s expects Int for '%s', got %s", fn, name, v.Kind())
	}
	return n.Val, nil
}

// resolveArrayIndex maps a possibly negative index onto 0..len-1 and
// rejects anything outside.
func resolveArrayIndex(fn string, idx *big.Int, length int) (int, error) {
	l := big.NewInt(int64(length))
	actual := new(big.Int).Set(idx)
	if actual.Sign() < 0 {
		actual.Add(l, actual)
	}
	if actual.Sign() < 0 || actual.Cmp(l) >= 0 {
		return 0, runtime.Customf("%s index out of bounds: idx=%s, len=%d", fn, idx, length)
	}
	return int(actual.Int64()), nil
}

func argArray(fn string, args *callArguments) (*runtime.ArrayValue, error) {
	src, err := args.required(fn, "src")
	if err != nil {
		return nil, err
	}
	return expectArray(fn, src)
}

func argIndex(fn, name string, args *callArguments) (*big.Int, error) {
	value, err := args.required(fn, name)
	if err != nil {
		return nil, err
	}
	return expectInt(fn, name, value)
}

func builtinArrayNew(_ *Interpreter, _ *callArguments) (runtime.Value, error) {
	return &runtime.ArrayValue{Elements: []runtime.Value{}}, nil
}

func builtinArrayLen(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_len", args)
	if err != nil {
		return nil, err
	}
	return runtime.IntValue{Val: big.NewInt(int64(len(arr.Elements)))}, nil
}

func builtinArrayIsEmpty(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_is_empty", args)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: len(arr.Elements) == 0}, nil
}

func builtinArrayGet(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_get", args)
	if err != nil {
		return nil, err
	}
	idx, err := argIndex("array_get", "idx", args)
	if err != nil {
		return nil, err
	}
	actual, err := resolveArrayIndex("array_get", idx, len(arr.Elements))
	if err != nil {
		return nil, err
	}
	return runtime.Clone(arr.Elements[actual]), nil
}

func builtinArraySet(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_set", args)
	if err != nil {
		return nil, err
	}
	idx, err := argIndex("array_set", "idx", args)
	if err != nil {
		return nil, err
	}
	value, err := args.required("array_set", "value")
	if err != nil {
		return nil, err
	}
	actual, err := resolveArrayIndex("array_set", idx, len(arr.Elements))
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(arr.Elements))
	copy(out, arr.Elements)
	out[actual] = value
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinArrayPush(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_push", args)
	if err != nil {
		return nil, err
	}
	value, err := args.required("array_push", "value")
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, 0, len(arr.Elements)+1)
	out = append(out, arr.Elements...)
	out = append(out, value)
	return &runtime.ArrayValue{Elements: out}, nil
}

// builtinArrayPop returns the last element, not the shortened array.
func builtinArrayPop(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_pop", args)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return nil, runtime.Customf("array_pop on empty array")
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

// builtinArrayInsert allows idx == len, which appends.
func builtinArrayInsert(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_insert", args)
	if err != nil {
		return nil, err
	}
	idx, err := argIndex("array_insert", "idx", args)
	if err != nil {
		return nil, err
	}
	value, err := args.required("array_insert", "value")
	if err != nil {
		return nil, err
	}
	length := len(arr.Elements)
	l := big.NewInt(int64(length))
	actual := new(big.Int).Set(idx)
	if actual.Sign() < 0 {
		actual.Add(l, actual)
	}
	if actual.Sign() < 0 || actual.Cmp(l) > 0 {
		return nil, runtime.Customf("array_insert index out of bounds: idx=%s, len=%d", idx, length)
	}
	at := int(actual.Int64())
	out := make([]runtime.Value, 0, length+1)
	out = append(out, arr.Elements[:at]...)
	out = append(out, value)
	out = append(out, arr.Elements[at:]...)
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinArrayRemove(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_remove", args)
	if err != nil {
		return nil, err
	}
	idx, err := argIndex("array_remove", "idx", args)
	if err != nil {
		return nil, err
	}
	actual, err := resolveArrayIndex("array_remove", idx, len(arr.Elements))
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, 0, len(arr.Elements)-1)
	out = append(out, arr.Elements[:actual]...)
	out = append(out, arr.Elements[actual+1:]...)
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinArrayClear(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	if _, err := argArray("array_clear", args); err != nil {
		return nil, err
	}
	return &runtime.ArrayValue{Elements: []runtime.Value{}}, nil
}

func builtinArrayClone(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_clone", args)
	if err != nil {
		return nil, err
	}
	return runtime.Clone(arr), nil
}

// builtinArraySlice clamps both bounds into range and yields an empty
// array when they cross, mirroring how slicing never faults.
func builtinArraySlice(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_slice", args)
	if err != nil {
		return nil, err
	}
	start, err := argIndex("array_slice", "start", args)
	if err != nil {
		return nil, err
	}
	end, err := argIndex("array_slice", "end", args)
	if err != nil {
		return nil, err
	}
	length := len(arr.Elements)
	ss := sliceBound(start, length)
	ee := sliceBound(end, length)
	if ee < ss {
		ee = ss
	}
	out := make([]runtime.Value, ee-ss)
	copy(out, arr.Elements[ss:ee])
	return &runtime.ArrayValue{Elements: out}, nil
}

func sliceBound(v *big.Int, length int) int {
	l := big.NewInt(int64(length))
	x := new(big.Int).Set(v)
	if x.Sign() < 0 {
		x.Add(l, x)
	}
	if x.Sign() < 0 {
		return 0
	}
	if x.Cmp(l) > 0 {
		return length
	}
	return int(x.Int64())
}

func builtinArrayConcat(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	first, err := args.required("array_concat", "a")
	if err != nil {
		return nil, err
	}
	a, err := expectArray("array_concat", first)
	if err != nil {
		return nil, err
	}
	second, err := args.required("array_concat", "b")
	if err != nil {
		return nil, err
	}
	b, err := expectArray("array_concat", second)
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, 0, len(a.Elements)+len(b.Elements))
	out = append(out, a.Elements...)
	out = append(out, b.Elements...)
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinArrayReverse(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_reverse", args)
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(arr.Elements))
	for i, e := range arr.Elements {
		out[len(arr.Elements)-1-i] = e
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

// builtinArraySort orders a homogeneous array of Int, UInt, Float or
// String; anything else is rejected. Float comparison treats NaN as equal
// to everything, so its final position is wherever the sort leaves it.
func builtinArraySort(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_sort", args)
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(arr.Elements))
	copy(out, arr.Elements)
	if len(out) == 0 {
		return &runtime.ArrayValue{Elements: out}, nil
	}

	kind := out[0].Kind()
	for _, e := range out {
		if e.Kind() != kind {
			return nil, runtime.Customf("array_sort supports only arrays of Int/UInt/Float/String")
		}
	}
	switch kind {
	case runtime.KindInt:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].(runtime.IntValue).Val.Cmp(out[b].(runtime.IntValue).Val) < 0
		})
	case runtime.KindUInt:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].(runtime.UIntValue).Val.Cmp(out[b].(runtime.UIntValue).Val) < 0
		})
	case runtime.KindFloat:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].(runtime.FloatValue).Val < out[b].(runtime.FloatValue).Val
		})
	case runtime.KindString:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].(runtime.StringValue).Val < out[b].(runtime.StringValue).Val
		})
	default:
		return nil, runtime.Customf("array_sort supports only arrays of Int/UInt/Float/String")
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinArrayFind(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_find", args)
	if err != nil {
		return nil, err
	}
	value, err := args.required("array_find", "value")
	if err != nil {
		return nil, err
	}
	for idx, e := range arr.Elements {
		if runtime.Equal(e, value) {
			return runtime.IntValue{Val: big.NewInt(int64(idx))}, nil
		}
	}
	return runtime.NilValue{}, nil
}

func builtinArrayContains(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	arr, err := argArray("array_contains", args)
	if err != nil {
		return nil, err
	}
	value, err := args.required("array_contains", "value")
	if err != nil {
		return nil, err
	}
	for _, e := range arr.Elements {
		if runtime.Equal(e, value) {
			return runtime.BoolValue{Val: true}, nil
		}
	}
	return runtime.BoolValue{Val: false}, nil
}

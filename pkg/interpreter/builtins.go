package interpreter

import (
	"fmt"
	"strings"

	"ex/interpreter-go/pkg/runtime"
)

// builtinFunc is a native function. Builtins are dispatched before the
// binding store is consulted, so a label can never shadow one.
type builtinFunc func(i *Interpreter, args *callArguments) (runtime.Value, error)

var builtins = map[string]builtinFunc{
	"print":     builtinPrint,
	"typeof":    builtinTypeof,
	"cast_type": builtinCastType,

	"array_new":      builtinArrayNew,
	"array_len":      builtinArrayLen,
	"array_is_empty": builtinArrayIsEmpty,
	"array_get":      builtinArrayGet,
	"array_set":      builtinArraySet,
	"array_push":     builtinArrayPush,
	"array_pop":      builtinArrayPop,
	"array_insert":   builtinArrayInsert,
	"array_remove":   builtinArrayRemove,
	"array_clear":    builtinArrayClear,
	"array_clone":    builtinArrayClone,
	"array_slice":    builtinArraySlice,
	"array_concat":   builtinArrayConcat,
	"array_reverse":  builtinArrayReverse,
	"array_sort":     builtinArraySort,
	"array_find":     builtinArrayFind,
	"array_contains": builtinArrayContains,
}

// builtinPrint writes every argument in call order, back to back, and
// ends the line. Unlike log it renders aggregates too.
func builtinPrint(i *Interpreter, args *callArguments) (runtime.Value, error) {
	var sb strings.Builder
	for _, name := range args.order {
		sb.WriteString(printRender(args.values[name]))
	}
	fmt.Fprintln(i.out, sb.String())
	return runtime.NilValue{}, nil
}

func builtinTypeof(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	if len(args.values) != 1 {
		return nil, runtime.Customf("typeof expects exactly 1 argument")
	}
	value, err := args.required("typeof", "src")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: value.Kind().String()}, nil
}

func builtinCastType(_ *Interpreter, args *callArguments) (runtime.Value, error) {
	value, ok := args.values["value"]
	if !ok {
		return nil, runtime.Customf("cast_type missing argument 'value'")
	}
	target, ok := args.values["type"]
	if !ok {
		return nil, runtime.Customf("cast_type missing argument 'type'")
	}
	return castValue(value, target)
}

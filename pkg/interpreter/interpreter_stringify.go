package interpreter

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"ex/interpreter-go/pkg/runtime"
)

// formatFloat renders a float for display. The special values spell out
// as NaN, inf and -inf; everything else prints in plain decimal notation
// with the shortest round-tripping digits.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// logRender is the restricted rendering used by the log statement; only
// scalars have a display form there.
func logRender(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.IntValue:
		return val.Val.String()
	case runtime.UIntValue:
		return val.Val.String()
	case runtime.FloatValue:
		return formatFloat(val.Val)
	case runtime.BigIntValue:
		return val.Val
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		return strconv.FormatBool(val.Val)
	case runtime.CharValue:
		return string(val.Val)
	case runtime.NilValue:
		return "Nil"
	default:
		return "Unable to Render On Display"
	}
}

// printRender is the full rendering used by the print builtin. Aggregates
// recurse; dictionary keys come out sorted so the output is stable.
func printRender(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.IntValue:
		return val.Val.String()
	case runtime.UIntValue:
		return val.Val.String()
	case runtime.FloatValue:
		return formatFloat(val.Val)
	case runtime.BigIntValue:
		return val.Val
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		return strconv.FormatBool(val.Val)
	case runtime.CharValue:
		return string(val.Val)
	case runtime.NilValue:
		return "nil"
	case *runtime.ArrayValue:
		return "[" + renderElements(val.Elements) + "]"
	case *runtime.AxisValue:
		return "axis(" + renderElements(val.Elements) + ")"
	case *runtime.DictionaryValue:
		keys := make([]string, 0, len(val.Entries))
		for key := range val.Entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("{")
		for idx, key := range keys {
			if idx > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(printRender(val.Entries[key]))
		}
		sb.WriteString("}")
		return sb.String()
	case *runtime.FunctionValue:
		return "<function>"
	case *runtime.ControlFlowValue:
		return "<control-flow>"
	case *runtime.StructDefValue:
		return "<struct-def>"
	case *runtime.StructInstanceValue:
		return "<struct-instance>"
	default:
		return "<unknown>"
	}
}

func renderElements(elements []runtime.Value) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = printRender(e)
	}
	return strings.Join(parts, ", ")
}

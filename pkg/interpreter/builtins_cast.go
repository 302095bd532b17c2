package interpreter

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"ex/interpreter-go/pkg/runtime"
)

var (
	charModulus = new(big.Int).Lsh(big.NewInt(1), 32)
	maxUint32   = big.NewInt(math.MaxUint32)
)

// castValue converts a value to the named target type. Target names are
// the uppercase type constants exposed through the standard variables.
func castValue(value, target runtime.Value) (runtime.Value, error) {
	name, ok := target.(runtime.StringValue)
	if !ok {
		return nil, runtime.Customf("Expected target_type as string")
	}
	switch name.Val {
	case "INT", "INTEGER":
		return castToInt(value)
	case "UINT", "UINTEGER":
		return castToUInt(value)
	case "FLOAT":
		return castToFloat(value)
	case "BOOL", "BOOLEAN":
		return castToBool(value)
	case "STR", "STRING":
		return castToString(value)
	case "CHAR", "CHARACTER":
		return castToChar(value)
	case "NIL", "NULL":
		return runtime.NilValue{}, nil
	default:
		return nil, runtime.Customf("Unknown target type")
	}
}

func castToInt(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.IntValue:
		return val, nil
	case runtime.UIntValue:
		if val.Val.Cmp(runtime.MaxInt128) > 0 {
			return nil, runtime.Customf("Cannot cast UInt to Int: overflow")
		}
		return runtime.IntValue{Val: runtime.CloneBigInt(val.Val)}, nil
	case runtime.FloatValue:
		return runtime.IntValue{Val: floatTruncated(val.Val, runtime.MinInt128, runtime.MaxInt128)}, nil
	case runtime.BoolValue:
		if val.Val {
			return runtime.IntValue{Val: big.NewInt(1)}, nil
		}
		return runtime.IntValue{Val: big.NewInt(0)}, nil
	case runtime.CharValue:
		return runtime.IntValue{Val: big.NewInt(int64(val.Val))}, nil
	case runtime.StringValue:
		parsed, ok := new(big.Int).SetString(val.Val, 10)
		if !ok || parsed.Cmp(runtime.MaxInt128) > 0 || parsed.Cmp(runtime.MinInt128) < 0 {
			return nil, runtime.Customf("Cannot cast string '%s' to Int", val.Val)
		}
		return runtime.IntValue{Val: parsed}, nil
	case runtime.NilValue:
		return runtime.IntValue{Val: big.NewInt(0)}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to Int", v.Kind())
	}
}

func castToUInt(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.UIntValue:
		return val, nil
	case runtime.IntValue:
		if val.Val.Sign() < 0 {
			return nil, runtime.Customf("Cannot cast negative Int to UInt")
		}
		return runtime.UIntValue{Val: runtime.CloneBigInt(val.Val)}, nil
	case runtime.FloatValue:
		if math.Signbit(val.Val) {
			return nil, runtime.Customf("Cannot cast negative Float to UInt")
		}
		return runtime.UIntValue{Val: floatTruncated(val.Val, big.NewInt(0), runtime.MaxUInt128)}, nil
	case runtime.BoolValue:
		if val.Val {
			return runtime.UIntValue{Val: big.NewInt(1)}, nil
		}
		return runtime.UIntValue{Val: big.NewInt(0)}, nil
	case runtime.CharValue:
		return runtime.UIntValue{Val: big.NewInt(int64(val.Val))}, nil
	case runtime.StringValue:
		parsed, ok := new(big.Int).SetString(val.Val, 10)
		if !ok || strings.HasPrefix(val.Val, "-") || parsed.Cmp(runtime.MaxUInt128) > 0 {
			return nil, runtime.Customf("Cannot cast string '%s' to UInt", val.Val)
		}
		return runtime.UIntValue{Val: parsed}, nil
	case runtime.NilValue:
		return runtime.UIntValue{Val: big.NewInt(0)}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to UInt", v.Kind())
	}
}

// floatTruncated drops the fraction toward zero and saturates at the
// given bounds. NaN maps to zero. big.Float cannot represent NaN and
// yields no integer for an infinity, so both are handled up front.
func floatTruncated(f float64, lo, hi *big.Int) *big.Int {
	if math.IsNaN(f) {
		return big.NewInt(0)
	}
	if math.IsInf(f, 1) {
		return runtime.CloneBigInt(hi)
	}
	if math.IsInf(f, -1) {
		return runtime.CloneBigInt(lo)
	}
	out, _ := new(big.Float).SetFloat64(f).Int(nil)
	if out.Cmp(hi) > 0 {
		return runtime.CloneBigInt(hi)
	}
	if out.Cmp(lo) < 0 {
		return runtime.CloneBigInt(lo)
	}
	return out
}

func castToFloat(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.FloatValue:
		return val, nil
	case runtime.IntValue:
		return runtime.FloatValue{Val: bigToFloat(val.Val)}, nil
	case runtime.UIntValue:
		return runtime.FloatValue{Val: bigToFloat(val.Val)}, nil
	case runtime.BoolValue:
		if val.Val {
			return runtime.FloatValue{Val: 1}, nil
		}
		return runtime.FloatValue{Val: 0}, nil
	case runtime.CharValue:
		return runtime.FloatValue{Val: float64(val.Val)}, nil
	case runtime.StringValue:
		f, err := strconv.ParseFloat(val.Val, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, runtime.Customf("Cannot cast string '%s' to Float", val.Val)
		}
		return runtime.FloatValue{Val: f}, nil
	case runtime.NilValue:
		return runtime.FloatValue{Val: 0}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to Float", v.Kind())
	}
}

func castToBool(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.BoolValue:
		return val, nil
	case runtime.NilValue:
		return runtime.BoolValue{Val: false}, nil
	case runtime.IntValue:
		return runtime.BoolValue{Val: val.Val.Sign() != 0}, nil
	case runtime.UIntValue:
		return runtime.BoolValue{Val: val.Val.Sign() != 0}, nil
	case runtime.FloatValue:
		return runtime.BoolValue{Val: val.Val != 0}, nil
	case runtime.StringValue:
		return runtime.BoolValue{Val: val.Val != ""}, nil
	case runtime.CharValue:
		return runtime.BoolValue{Val: val.Val != 0}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to Bool", v.Kind())
	}
}

func castToString(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.StringValue:
		return val, nil
	case runtime.IntValue:
		return runtime.StringValue{Val: val.Val.String()}, nil
	case runtime.UIntValue:
		return runtime.StringValue{Val: val.Val.String()}, nil
	case runtime.FloatValue:
		return runtime.StringValue{Val: formatFloat(val.Val)}, nil
	case runtime.BoolValue:
		return runtime.StringValue{Val: strconv.FormatBool(val.Val)}, nil
	case runtime.CharValue:
		return runtime.StringValue{Val: string(val.Val)}, nil
	case runtime.NilValue:
		return runtime.StringValue{Val: "nil"}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to String", v.Kind())
	}
}

// castToChar accepts codepoints and one-rune strings. An Int wraps to its
// low 32 bits before validation, matching two's complement truncation.
func castToChar(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case runtime.CharValue:
		return val, nil
	case runtime.IntValue:
		wrapped := new(big.Int).Mod(val.Val, charModulus)
		code := rune(int32(uint32(wrapped.Uint64())))
		if !utf8.ValidRune(code) {
			return nil, runtime.Customf("Invalid codepoint for Char")
		}
		return runtime.CharValue{Val: code}, nil
	case runtime.UIntValue:
		if val.Val.Cmp(maxUint32) > 0 {
			return nil, runtime.Customf("Invalid UInt for Char")
		}
		code := rune(int32(uint32(val.Val.Uint64())))
		if !utf8.ValidRune(code) {
			return nil, runtime.Customf("Invalid codepoint for Char")
		}
		return runtime.CharValue{Val: code}, nil
	case runtime.StringValue:
		runes := []rune(val.Val)
		if len(runes) != 1 {
			return nil, runtime.Customf("String must contain exactly 1 character to cast to Char")
		}
		return runtime.CharValue{Val: runes[0]}, nil
	default:
		return nil, runtime.Customf("Cannot cast %s to Char", v.Kind())
	}
}

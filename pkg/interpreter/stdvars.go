package interpreter

import (
	"math"
	"math/big"
	"os"
	goruntime "runtime"
	"strconv"

	"ex/interpreter-go/pkg/runtime"
)

// defineStandardVariables seeds the global scope with the read-only
// platform and limit constants every program can rely on. They are bound
// as constants, so user code cannot reassign or delete them.
func defineStandardVariables(env *runtime.Environment) {
	family := "unix"
	hasFork := true
	if goruntime.GOOS == "windows" {
		family = "windows"
		hasFork = false
	}
	endian := "little"
	switch goruntime.GOARCH {
	case "s390x", "mips", "mips64", "ppc64":
		endian = "big"
	}

	constants := []struct {
		name  string
		value runtime.Value
	}{
		{"__VERSION__", runtime.StringValue{Val: "0.1.0"}},
		{"__LANG__", runtime.StringValue{Val: "EX"}},

		{"__OS__", runtime.StringValue{Val: goruntime.GOOS}},
		{"__ARCH__", runtime.StringValue{Val: goruntime.GOARCH}},
		{"__FAMILY__", runtime.StringValue{Val: family}},
		{"__ABI__", runtime.StringValue{Val: "sysv"}},
		{"__OS_VERSION__", runtime.StringValue{Val: osVersion()}},

		{"__CPU_BITS__", runtime.IntValue{Val: big.NewInt(strconv.IntSize)}},
		{"__CPU_ENDIAN__", runtime.StringValue{Val: endian}},
		{"__CPU_CORES__", runtime.IntValue{Val: big.NewInt(int64(goruntime.NumCPU()))}},
		{"__CPU_LOGICAL_CORES__", runtime.IntValue{Val: big.NewInt(int64(goruntime.NumCPU()))}},
		{"__CPU_CACHE_LINE__", runtime.IntValue{Val: big.NewInt(64)}},
		{"__PTR_SIZE__", runtime.IntValue{Val: big.NewInt(strconv.IntSize / 8)}},
		{"__WORD_SIZE__", runtime.IntValue{Val: big.NewInt(strconv.IntSize / 8)}},
		{"__PAGE_SIZE__", runtime.IntValue{Val: big.NewInt(4096)}},

		{"__MAX_INT__", runtime.IntValue{Val: runtime.CloneBigInt(runtime.MaxInt128)}},
		{"__MIN_INT__", runtime.IntValue{Val: runtime.CloneBigInt(runtime.MinInt128)}},

		{"__CLOCKS_PER_SEC__", runtime.IntValue{Val: big.NewInt(1000000)}},
		{"__HAS_MONOTONIC_CLOCK__", runtime.BoolValue{Val: true}},
		{"__HAS_RTC__", runtime.BoolValue{Val: true}},
		{"__TIMER_RESOLUTION_NS__", runtime.IntValue{Val: big.NewInt(1)}},

		{"__PATH_SEP__", runtime.StringValue{Val: string(os.PathSeparator)}},
		{"__LINE_SEP__", runtime.StringValue{Val: "\n"}},
		{"__STDIN_FD__", runtime.IntValue{Val: big.NewInt(0)}},
		{"__STDOUT_FD__", runtime.IntValue{Val: big.NewInt(1)}},
		{"__STDERR_FD__", runtime.IntValue{Val: big.NewInt(2)}},
		{"__MAX_PID__", runtime.IntValue{Val: big.NewInt(4194304)}},

		{"__HAS_SIGNALS__", runtime.BoolValue{Val: true}},
		{"__HAS_FORK__", runtime.BoolValue{Val: hasFork}},
		{"__HAS_THREADS__", runtime.BoolValue{Val: true}},
		{"__HAS_FPU__", runtime.BoolValue{Val: true}},

		{"__FLOAT_RADIX__", runtime.IntValue{Val: big.NewInt(2)}},
		{"__FLOAT_MANTISSA_BITS__", runtime.IntValue{Val: big.NewInt(52)}},
		{"__FLOAT_MAX__", runtime.FloatValue{Val: math.MaxFloat64}},
		{"__FLOAT_MIN__", runtime.FloatValue{Val: -math.MaxFloat64}},

		{"__INT__", runtime.StringValue{Val: "INTEGER"}},
		{"__UINT__", runtime.StringValue{Val: "UINTEGER"}},
		{"__FLOAT__", runtime.StringValue{Val: "FLOAT"}},
		{"__BIGINT__", runtime.StringValue{Val: "BIG_INTEGER"}},
		{"__STRING__", runtime.StringValue{Val: "STRING"}},
		{"__CHAR__", runtime.StringValue{Val: "CHARACTER"}},
		{"__BOOL__", runtime.StringValue{Val: "BOOLEAN"}},
		{"__NIL__", runtime.StringValue{Val: "NIL"}},
	}
	for _, c := range constants {
		_ = env.DefineConstant(c.name, c.value)
	}
}

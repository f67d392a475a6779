package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	Eval   bool
	Patch  bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("MPACK_DEBUG_DECODE")
	d.Encode = boolEnv("MPACK_DEBUG_ENCODE")
	d.Eval = boolEnv("MPACK_DEBUG_EVAL")
	d.Patch = boolEnv("MPACK_DEBUG_PATCH")
	d.Diff = boolEnv("MPACK_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Eval() bool {
	return d.Eval
}
func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

package nlopt

import (
	"fmt"

	"github.com/aarzilli/golua/lua"
)

// checkVector copies the Lua table at idx into a fresh slice of exactly n
// doubles. Unlike the raw C API, a too-short table is an argument error
// here rather than an out-of-bounds read in the native call.
func checkVector(L *lua.State, idx, n int) []float64 {
	if !L.IsTable(idx) {
		RaiseError(L, fmt.Sprintf("arg #%d: expecting table of %d numbers", idx, n))
	}
	if got := int(L.ObjLen(idx)); got < n {
		RaiseError(L, fmt.Sprintf("arg #%d: expecting %d numbers, got %d", idx, n, got))
	}
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		L.RawGeti(idx, i+1)
		v[i] = L.ToNumber(-1)
		L.Pop(1)
	}
	return v
}

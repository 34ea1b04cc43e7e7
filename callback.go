package nlopt

import "C"

import (
	"sync"
	"unsafe"

	"github.com/aarzilli/golua/lua"
)

// A closure is one registered Lua callback: a record table in the Lua
// registry holding the callable ('f'), its user data ('f_data') and the
// scratch tables reused across invocations ('x', 'grad', 'result').
//
// Go pointers must not cross into C, so NLopt is handed an integer token
// instead; the token resolves to the closure through the table below. The
// token is released through NLopt's munge hooks: exactly once, either when
// the owning optimizer is destroyed or when its constraint list is
// cleared.
type closure struct {
	L   *lua.State
	ref int
}

var (
	closuresMu sync.Mutex
	closures   = map[uintptr]*closure{}
	nextToken  uintptr = 1
)

func registerClosure(c *closure) uintptr {
	closuresMu.Lock()
	defer closuresMu.Unlock()
	tok := nextToken
	nextToken++
	closures[tok] = c
	return tok
}

func lookupClosure(tok uintptr) *closure {
	closuresMu.Lock()
	defer closuresMu.Unlock()
	return closures[tok]
}

func releaseClosure(tok uintptr) {
	closuresMu.Lock()
	c := closures[tok]
	delete(closures, tok)
	closuresMu.Unlock()
	if c != nil {
		c.L.Unref(lua.LUA_REGISTRYINDEX, c.ref)
	}
}

func closureCount() int {
	closuresMu.Lock()
	defer closuresMu.Unlock()
	return len(closures)
}

// newClosure builds a record table {f=<fnIdx>, f_data=<dataIdx>}, anchors
// it in the Lua registry and returns its token. dataIdx may be beyond the
// stack top, in which case f_data is nil.
func newClosure(L *lua.State, fnIdx, dataIdx int) uintptr {
	hasData := dataIdx <= L.GetTop()
	L.NewTable()
	t := L.GetTop()
	L.PushString("f")
	L.PushValue(fnIdx)
	L.RawSet(t)
	L.PushString("f_data")
	if hasData {
		L.PushValue(dataIdx)
	} else {
		L.PushNil()
	}
	L.RawSet(t)
	ref := L.Ref(lua.LUA_REGISTRYINDEX)
	return registerClosure(&closure{L: L, ref: ref})
}

var (
	cbErrMu    sync.Mutex
	cbErrorFun func(error)
)

// SetCallbackErrorHandler installs a diagnostic hook invoked whenever a
// Lua callback fails during an optimizer run. The failure itself is always
// suppressed at the C boundary (the sample value falls back to zero and
// gradient buffers are left untouched); the hook only observes it. A nil
// handler silences diagnostics, which is the default.
func SetCallbackErrorHandler(f func(error)) {
	cbErrMu.Lock()
	cbErrorFun = f
	cbErrMu.Unlock()
}

func reportCallbackError(err error) {
	cbErrMu.Lock()
	f := cbErrorFun
	cbErrMu.Unlock()
	if f != nil && err != nil {
		f(err)
	}
}

// fillScratch fetches the scratch table stored under key in the record at
// t, creating and storing it on first use, overwrites its first len(vals)
// entries and leaves it on the stack.
func fillScratch(L *lua.State, t int, key string, vals []float64) {
	L.PushString(key)
	L.RawGet(t)
	if !L.IsTable(-1) {
		L.Pop(1)
		L.CreateTable(len(vals), 0)
		L.PushString(key)
		L.PushValue(-2)
		L.RawSet(t)
	}
	st := L.GetTop()
	for i, v := range vals {
		L.PushNumber(v)
		L.RawSeti(st, i+1)
	}
}

// copyBack reads len(dst) numbers from the table stored under key in the
// record at t into dst.
func copyBack(L *lua.State, t int, key string, dst []float64) {
	L.PushString(key)
	L.RawGet(t)
	st := L.GetTop()
	for i := range dst {
		L.RawGeti(st, i+1)
		dst[i] = L.ToNumber(-1)
		L.Pop(1)
	}
	L.Pop(1)
}

func cDoubles(p *C.double, n int) []float64 {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(p)), n)
}

// goNloptFunc is the nlopt_func trampoline shared by objectives and scalar
// constraints. It runs synchronously inside nlopt_optimize, on the same
// thread and Lua state that called it. A failing callback must not unwind
// through NLopt's C frames, so the Lua call is protected and any error is
// converted to a 0.0 sample with the gradient left untouched.
//
//export goNloptFunc
func goNloptFunc(n C.unsigned, x, grad *C.double, data unsafe.Pointer) C.double {
	c := lookupClosure(uintptr(data))
	if c == nil {
		return 0
	}
	L := c.L
	dim := int(n)
	xs := cDoubles(x, dim)
	gs := cDoubles(grad, dim)

	top := L.GetTop()
	defer L.SetTop(top)

	L.RawGeti(lua.LUA_REGISTRYINDEX, c.ref)
	t := L.GetTop()
	L.PushString("f")
	L.RawGet(t)
	if !L.IsFunction(-1) {
		return 0
	}
	L.PushInteger(int64(dim))
	fillScratch(L, t, "x", xs)
	if gs != nil {
		fillScratch(L, t, "grad", gs)
	} else {
		L.PushString("grad")
		L.PushNil()
		L.RawSet(t)
		L.PushNil()
	}
	L.PushString("f_data")
	L.RawGet(t)

	if err := L.Call(4, 1); err != nil {
		reportCallbackError(err)
		return 0
	}
	res := L.ToNumber(-1)
	L.Pop(1)
	if gs != nil {
		copyBack(L, t, "grad", gs)
	}
	return C.double(res)
}

// goNloptMfunc is the nlopt_mfunc trampoline for vector constraints: the
// callback overwrites an m-length result table and, when gradients are
// requested, an m*n flattened gradient table (row-major by output index).
// Same error containment as goNloptFunc; on failure the native buffers are
// left as NLopt provided them.
//
//export goNloptMfunc
func goNloptMfunc(m C.unsigned, result *C.double, n C.unsigned, x, grad *C.double, data unsafe.Pointer) {
	c := lookupClosure(uintptr(data))
	if c == nil {
		return
	}
	L := c.L
	mdim := int(m)
	dim := int(n)
	rs := cDoubles(result, mdim)
	xs := cDoubles(x, dim)
	gs := cDoubles(grad, mdim*dim)

	top := L.GetTop()
	defer L.SetTop(top)

	L.RawGeti(lua.LUA_REGISTRYINDEX, c.ref)
	t := L.GetTop()
	L.PushString("f")
	L.RawGet(t)
	if !L.IsFunction(-1) {
		return
	}
	L.PushInteger(int64(mdim))
	fillScratch(L, t, "result", rs)
	L.PushInteger(int64(dim))
	fillScratch(L, t, "x", xs)
	if gs != nil {
		fillScratch(L, t, "grad", gs)
	} else {
		L.PushString("grad")
		L.PushNil()
		L.RawSet(t)
		L.PushNil()
	}
	L.PushString("f_data")
	L.RawGet(t)

	if err := L.Call(6, 0); err != nil {
		reportCallbackError(err)
		return
	}
	copyBack(L, t, "result", rs)
	if gs != nil {
		copyBack(L, t, "grad", gs)
	}
}

// goNloptMungeOnDestroy is installed via nlopt_set_munge and called by the
// native library for every stored callback record when the owning
// optimizer is destroyed or a constraint list is cleared. This is the
// single release point for closure tokens.
//
//export goNloptMungeOnDestroy
func goNloptMungeOnDestroy(p unsafe.Pointer) unsafe.Pointer {
	releaseClosure(uintptr(p))
	return nil
}

// goNloptMungeOnCopy is called by nlopt_copy for every stored callback
// record. It re-registers the closure for the duplicate: a fresh record
// table sharing the callable and user-data references but nothing else
// (scratch tables are rebuilt lazily), a fresh registry ref and a fresh
// token. The copy's closures therefore survive the source handle.
//
//export goNloptMungeOnCopy
func goNloptMungeOnCopy(p unsafe.Pointer) unsafe.Pointer {
	c := lookupClosure(uintptr(p))
	if c == nil {
		return nil
	}
	L := c.L
	top := L.GetTop()
	L.RawGeti(lua.LUA_REGISTRYINDEX, c.ref)
	src := L.GetTop()
	L.NewTable()
	dst := L.GetTop()
	for _, key := range []string{"f", "f_data"} {
		L.PushString(key)
		L.PushString(key)
		L.RawGet(src)
		L.RawSet(dst)
	}
	ref := L.Ref(lua.LUA_REGISTRYINDEX)
	L.SetTop(top)
	tok := registerClosure(&closure{L: L, ref: ref})
	return unsafe.Pointer(tok)
}

package nlopt

/*
#include <nlopt.h>
*/
import "C"

import (
	"github.com/aarzilli/golua/lua"
)

// LibVersion identifies this binding, reported to scripts as
// nlopt.libversion.
const LibVersion = "nlopt library for Lua 5.1"

// RaiseError raises a Lua error in the caller's position format.
func RaiseError(L *lua.State, msg string) {
	L.Where(1)
	pos := L.ToString(-1)
	L.Pop(1)
	panic(L.NewError(pos + " " + msg))
}

// Version reports the version of the linked NLopt library.
func Version() (major, minor, bugfix int) {
	var ma, mi, bf C.int
	C.nlopt_version(&ma, &mi, &bf)
	return int(ma), int(mi), int(bf)
}

// AlgorithmName returns the descriptive name of an algorithm id.
func AlgorithmName(algorithm int) string {
	return C.GoString(C.nlopt_algorithm_name(C.nlopt_algorithm(algorithm)))
}

// Srand seeds NLopt's pseudorandom generator, making stochastic algorithms
// repeatable from run to run.
func Srand(seed uint64) {
	C.nlopt_srand(C.ulong(seed))
}

// SrandTime reseeds from the system time, undoing a previous Srand.
func SrandTime() {
	C.nlopt_srand_time()
}

func createOpt(L *lua.State) int {
	alg := int(L.CheckInteger(1))
	if alg < 0 || alg >= NUM_ALGORITHMS {
		RaiseError(L, "arg #1: expecting an nlopt.algorithm value")
	}
	n := int(L.CheckInteger(2))
	if n < 0 {
		RaiseError(L, "arg #2: expecting a non-negative dimension")
	}
	opt := C.nlopt_create(algorithms[alg], C.uint(n))
	if opt == nil {
		RaiseError(L, "creating optimizer failed")
	}
	// The munge hooks must be in place before any callback is stored,
	// otherwise destroy and copy would leak or share closure tokens.
	installMunge(opt)
	pushOpt(L, opt)
	return 1
}

func versionLua(L *lua.State) int {
	major, minor, bugfix := Version()
	L.PushInteger(int64(major))
	L.PushInteger(int64(minor))
	L.PushInteger(int64(bugfix))
	return 3
}

func srandLua(L *lua.State) int {
	seed := L.CheckInteger(1)
	if seed < 0 {
		RaiseError(L, "arg #1: expecting a non-negative seed")
	}
	Srand(uint64(seed))
	return 0
}

func srandTimeLua(L *lua.State) int {
	SrandTime()
	return 0
}

func algorithmNameLua(L *lua.State) int {
	i := int(L.CheckInteger(1))
	if i < 0 || i >= NUM_ALGORITHMS {
		RaiseError(L, "arg #1: expecting an nlopt.algorithm value")
	}
	L.PushString(AlgorithmName(i))
	return 1
}

var moduleFuncs = map[string]lua.LuaGoFunction{
	"create":         createOpt,
	"version":        versionLua,
	"srand":          srandLua,
	"srand_time":     srandTimeLua,
	"algorithm_name": algorithmNameLua,
}

// Open installs the global nlopt table into a Lua state: the module
// functions, the libversion string and the nlopt.algorithm and
// nlopt.result constant tables.
func Open(L *lua.State) {
	installOptType(L)

	L.NewTable()
	mod := L.GetTop()
	for name, fn := range moduleFuncs {
		L.PushString(name)
		L.PushGoFunction(fn)
		L.RawSet(mod)
	}

	L.PushString(LibVersion)
	L.SetField(mod, "libversion")

	L.NewTable()
	for i, name := range algorithmConsts {
		L.PushInteger(int64(i))
		L.SetField(-2, name)
	}
	L.PushInteger(int64(NUM_ALGORITHMS))
	L.SetField(-2, "NUM_ALGORITHMS")
	L.SetField(mod, "algorithm")

	L.NewTable()
	for _, rc := range resultConsts {
		L.PushInteger(int64(rc.val))
		L.SetField(-2, rc.name)
	}
	L.SetField(mod, "result")

	L.SetGlobal("nlopt")
}

// NewState creates a Lua state with the standard libraries and the nlopt
// module loaded. The caller owns the state and must Close it.
func NewState() *lua.State {
	L := lua.NewState()
	L.OpenLibs()
	Open(L)
	return L
}

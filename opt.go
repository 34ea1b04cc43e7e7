package nlopt

/*
#cgo windows LDFLAGS: -lnlopt -lm
#cgo !windows LDFLAGS: -lm
#cgo !windows pkg-config: nlopt
#include <stdint.h>
#include <nlopt.h>

extern double goNloptFunc(unsigned n, const double *x, double *grad, void *data);
extern void goNloptMfunc(unsigned m, double *result, unsigned n, const double *x, double *grad, void *data);
extern void *goNloptMungeOnDestroy(void *data);
extern void *goNloptMungeOnCopy(void *data);

// Callback slots are filled with the trampolines above; the Lua closure is
// identified by an integer token smuggled through the f_data pointer.

static void opt_install_munge(nlopt_opt opt) {
	nlopt_set_munge(opt, goNloptMungeOnDestroy, goNloptMungeOnCopy);
}

static nlopt_result opt_set_min_objective(nlopt_opt opt, uintptr_t tok) {
	return nlopt_set_min_objective(opt, goNloptFunc, (void *)tok);
}

static nlopt_result opt_set_max_objective(nlopt_opt opt, uintptr_t tok) {
	return nlopt_set_max_objective(opt, goNloptFunc, (void *)tok);
}

static nlopt_result opt_add_inequality_constraint(nlopt_opt opt, uintptr_t tok, double tol) {
	return nlopt_add_inequality_constraint(opt, goNloptFunc, (void *)tok, tol);
}

static nlopt_result opt_add_equality_constraint(nlopt_opt opt, uintptr_t tok, double tol) {
	return nlopt_add_equality_constraint(opt, goNloptFunc, (void *)tok, tol);
}

static nlopt_result opt_add_inequality_mconstraint(nlopt_opt opt, unsigned m, uintptr_t tok, const double *tol) {
	return nlopt_add_inequality_mconstraint(opt, m, goNloptMfunc, (void *)tok, tol);
}

static nlopt_result opt_add_equality_mconstraint(nlopt_opt opt, unsigned m, uintptr_t tok, const double *tol) {
	return nlopt_add_equality_mconstraint(opt, m, goNloptMfunc, (void *)tok, tol);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/aarzilli/golua/lua"
)

const optMetaName = "nlopt.opt"

// optHolder is the payload of an optimizer userdata. It contains only the
// native handle (no Go pointers, the userdata lives in Lua-managed memory).
// A destroyed optimizer keeps its userdata alive with a nil handle so that
// later method calls fail with a Lua error instead of crashing in C.
type optHolder struct {
	opt C.nlopt_opt
}

func pushOpt(L *lua.State, opt C.nlopt_opt) {
	h := (*optHolder)(L.NewUserdata(uintptr(unsafe.Sizeof(optHolder{}))))
	h.opt = opt
	L.LGetMetaTable(optMetaName)
	L.SetMetaTable(-2)
}

func isOpt(L *lua.State, idx int) bool {
	if !L.IsUserdata(idx) {
		return false
	}
	if !L.GetMetaTable(idx) {
		return false
	}
	L.PushString("nloptopt")
	L.RawGet(-2)
	ok := L.ToBoolean(-1)
	L.Pop(2)
	return ok
}

func checkOpt(L *lua.State, idx int) *optHolder {
	if !isOpt(L, idx) {
		RaiseError(L, fmt.Sprintf("arg #%d: expecting an optimizer", idx))
	}
	h := (*optHolder)(L.ToUserdata(idx))
	if h.opt == nil {
		RaiseError(L, "attempt to use a destroyed optimizer")
	}
	return h
}

func toC(v []float64) []C.double {
	c := make([]C.double, len(v))
	for i, x := range v {
		c[i] = C.double(x)
	}
	return c
}

func cdPtr(v []C.double) *C.double {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}

func pushCDoubles(L *lua.State, v []C.double) {
	L.CreateTable(len(v), 0)
	for i, x := range v {
		L.PushNumber(float64(x))
		L.RawSeti(-2, i+1)
	}
}

func dimension(h *optHolder) int {
	return int(C.nlopt_get_dimension(h.opt))
}

func pushStatus(L *lua.State, status C.nlopt_result) int {
	L.PushInteger(int64(status))
	return 1
}

// checkFunction mirrors luaL_checktype(L, idx, LUA_TFUNCTION).
func checkFunction(L *lua.State, idx int) {
	if !L.IsFunction(idx) {
		RaiseError(L, fmt.Sprintf("arg #%d: expecting a function", idx))
	}
}

func optDestroy(L *lua.State) int {
	h := (*optHolder)(L.ToUserdata(1))
	if h != nil && h.opt != nil {
		C.nlopt_destroy(h.opt)
		h.opt = nil
	}
	return 0
}

func optToString(L *lua.State) int {
	h := (*optHolder)(L.ToUserdata(1))
	if h == nil || h.opt == nil {
		L.PushString("nlopt.opt (destroyed)")
	} else {
		L.PushString(fmt.Sprintf("nlopt.opt %p", unsafe.Pointer(h.opt)))
	}
	return 1
}

func optCopy(L *lua.State) int {
	h := checkOpt(L, 1)
	// nlopt_copy runs the copy munge over every stored callback, so the
	// duplicate ends up with its own tokens and registry refs.
	c := C.nlopt_copy(h.opt)
	if c == nil {
		RaiseError(L, "copying optimizer failed")
	}
	pushOpt(L, c)
	return 1
}

func optGetAlgorithm(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(C.nlopt_get_algorithm(h.opt)))
	return 1
}

func optGetDimension(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(dimension(h)))
	return 1
}

func optAlgorithmName(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushString(C.GoString(C.nlopt_algorithm_name(C.nlopt_get_algorithm(h.opt))))
	return 1
}

// bounds

func optSetLowerBounds(L *lua.State) int {
	h := checkOpt(L, 1)
	lb := toC(checkVector(L, 2, dimension(h)))
	return pushStatus(L, C.nlopt_set_lower_bounds(h.opt, cdPtr(lb)))
}

func optSetLowerBounds1(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_lower_bounds1(h.opt, C.double(L.CheckNumber(2))))
}

func optGetLowerBounds(L *lua.State) int {
	h := checkOpt(L, 1)
	lb := make([]C.double, dimension(h))
	status := C.nlopt_get_lower_bounds(h.opt, cdPtr(lb))
	pushStatus(L, status)
	pushCDoubles(L, lb)
	return 2
}

func optSetUpperBounds(L *lua.State) int {
	h := checkOpt(L, 1)
	ub := toC(checkVector(L, 2, dimension(h)))
	return pushStatus(L, C.nlopt_set_upper_bounds(h.opt, cdPtr(ub)))
}

func optSetUpperBounds1(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_upper_bounds1(h.opt, C.double(L.CheckNumber(2))))
}

func optGetUpperBounds(L *lua.State) int {
	h := checkOpt(L, 1)
	ub := make([]C.double, dimension(h))
	status := C.nlopt_get_upper_bounds(h.opt, cdPtr(ub))
	pushStatus(L, status)
	pushCDoubles(L, ub)
	return 2
}

// objective and constraints

func optSetMinObjective(L *lua.State) int {
	h := checkOpt(L, 1)
	checkFunction(L, 2)
	tok := newClosure(L, 2, 3)
	status := C.opt_set_min_objective(h.opt, C.uintptr_t(tok))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optSetMaxObjective(L *lua.State) int {
	h := checkOpt(L, 1)
	checkFunction(L, 2)
	tok := newClosure(L, 2, 3)
	status := C.opt_set_max_objective(h.opt, C.uintptr_t(tok))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optAddInequalityConstraint(L *lua.State) int {
	h := checkOpt(L, 1)
	checkFunction(L, 2)
	tol := L.ToNumber(4)
	tok := newClosure(L, 2, 3)
	status := C.opt_add_inequality_constraint(h.opt, C.uintptr_t(tok), C.double(tol))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optAddEqualityConstraint(L *lua.State) int {
	h := checkOpt(L, 1)
	checkFunction(L, 2)
	tol := L.ToNumber(4)
	tok := newClosure(L, 2, 3)
	status := C.opt_add_equality_constraint(h.opt, C.uintptr_t(tok), C.double(tol))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optAddInequalityMConstraint(L *lua.State) int {
	h := checkOpt(L, 1)
	m := int(L.CheckInteger(2))
	if m <= 0 {
		RaiseError(L, "arg #2: expecting a positive constraint count")
	}
	checkFunction(L, 3)
	var tol []C.double
	if L.GetTop() >= 5 && !L.IsNil(5) {
		tol = toC(checkVector(L, 5, m))
	}
	tok := newClosure(L, 3, 4)
	status := C.opt_add_inequality_mconstraint(h.opt, C.uint(m), C.uintptr_t(tok), cdPtr(tol))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optAddEqualityMConstraint(L *lua.State) int {
	h := checkOpt(L, 1)
	m := int(L.CheckInteger(2))
	if m <= 0 {
		RaiseError(L, "arg #2: expecting a positive constraint count")
	}
	checkFunction(L, 3)
	var tol []C.double
	if L.GetTop() >= 5 && !L.IsNil(5) {
		tol = toC(checkVector(L, 5, m))
	}
	tok := newClosure(L, 3, 4)
	status := C.opt_add_equality_mconstraint(h.opt, C.uint(m), C.uintptr_t(tok), cdPtr(tol))
	if status < 0 {
		releaseClosure(tok)
	}
	return pushStatus(L, status)
}

func optRemoveInequalityConstraints(L *lua.State) int {
	h := checkOpt(L, 1)
	// the destroy munge releases the tokens of the removed constraints
	return pushStatus(L, C.nlopt_remove_inequality_constraints(h.opt))
}

func optRemoveEqualityConstraints(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_remove_equality_constraints(h.opt))
}

// stopping criteria

func optSetStopval(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_stopval(h.opt, C.double(L.CheckNumber(2))))
}

func optGetStopval(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushNumber(float64(C.nlopt_get_stopval(h.opt)))
	return 1
}

func optSetFtolRel(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_ftol_rel(h.opt, C.double(L.CheckNumber(2))))
}

func optGetFtolRel(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushNumber(float64(C.nlopt_get_ftol_rel(h.opt)))
	return 1
}

func optSetFtolAbs(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_ftol_abs(h.opt, C.double(L.CheckNumber(2))))
}

func optGetFtolAbs(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushNumber(float64(C.nlopt_get_ftol_abs(h.opt)))
	return 1
}

func optSetXtolRel(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_xtol_rel(h.opt, C.double(L.CheckNumber(2))))
}

func optGetXtolRel(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushNumber(float64(C.nlopt_get_xtol_rel(h.opt)))
	return 1
}

func optSetXtolAbs(L *lua.State) int {
	h := checkOpt(L, 1)
	tol := toC(checkVector(L, 2, dimension(h)))
	return pushStatus(L, C.nlopt_set_xtol_abs(h.opt, cdPtr(tol)))
}

func optSetXtolAbs1(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_xtol_abs1(h.opt, C.double(L.CheckNumber(2))))
}

func optGetXtolAbs(L *lua.State) int {
	h := checkOpt(L, 1)
	tol := make([]C.double, dimension(h))
	status := C.nlopt_get_xtol_abs(h.opt, cdPtr(tol))
	pushStatus(L, status)
	pushCDoubles(L, tol)
	return 2
}

func optSetMaxeval(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_maxeval(h.opt, C.int(L.CheckInteger(2))))
}

func optGetMaxeval(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(C.nlopt_get_maxeval(h.opt)))
	return 1
}

func optSetMaxtime(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_maxtime(h.opt, C.double(L.CheckNumber(2))))
}

func optGetMaxtime(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushNumber(float64(C.nlopt_get_maxtime(h.opt)))
	return 1
}

func optForceStop(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_force_stop(h.opt))
}

func optSetForceStop(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_force_stop(h.opt, C.int(L.CheckInteger(2))))
}

func optGetForceStop(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(C.nlopt_get_force_stop(h.opt)))
	return 1
}

// optimize runs the algorithm from the initial guess in arg #2 and returns
// (status, fmin). The solution is also written back into the argument
// table, matching the in-place contract of nlopt_optimize.
func optOptimize(L *lua.State) int {
	h := checkOpt(L, 1)
	dim := dimension(h)
	x := toC(checkVector(L, 2, dim))
	var fmin C.double
	status := C.nlopt_optimize(h.opt, cdPtr(x), &fmin)
	L.PushInteger(int64(status))
	L.PushNumber(float64(fmin))
	for i, v := range x {
		L.PushNumber(float64(v))
		L.RawSeti(2, i+1)
	}
	return 2
}

// algorithm-specific parameters

func optSetInitialStep(L *lua.State) int {
	h := checkOpt(L, 1)
	dx := toC(checkVector(L, 2, dimension(h)))
	return pushStatus(L, C.nlopt_set_initial_step(h.opt, cdPtr(dx)))
}

func optSetInitialStep1(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_initial_step1(h.opt, C.double(L.CheckNumber(2))))
}

func optSetDefaultInitialStep(L *lua.State) int {
	h := checkOpt(L, 1)
	x := toC(checkVector(L, 2, dimension(h)))
	return pushStatus(L, C.nlopt_set_default_initial_step(h.opt, cdPtr(x)))
}

// optGetInitialStep takes the planned initial guess (NLopt's heuristic
// step depends on it) and returns (status, dx).
func optGetInitialStep(L *lua.State) int {
	h := checkOpt(L, 1)
	dim := dimension(h)
	x := toC(checkVector(L, 2, dim))
	dx := make([]C.double, dim)
	status := C.nlopt_get_initial_step(h.opt, cdPtr(x), cdPtr(dx))
	pushStatus(L, status)
	pushCDoubles(L, dx)
	return 2
}

func optSetPopulation(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_population(h.opt, C.uint(L.CheckInteger(2))))
}

func optGetPopulation(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(C.nlopt_get_population(h.opt)))
	return 1
}

func optSetVectorStorage(L *lua.State) int {
	h := checkOpt(L, 1)
	return pushStatus(L, C.nlopt_set_vector_storage(h.opt, C.uint(L.CheckInteger(2))))
}

func optGetVectorStorage(L *lua.State) int {
	h := checkOpt(L, 1)
	L.PushInteger(int64(C.nlopt_get_vector_storage(h.opt)))
	return 1
}

// optSetLocalOptimizer copies the local optimizer's parameters into this
// one, as a subroutine for MLSL, AUGLAG and friends. The argument stays
// owned by the caller.
func optSetLocalOptimizer(L *lua.State) int {
	h := checkOpt(L, 1)
	local := checkOpt(L, 2)
	return pushStatus(L, C.nlopt_set_local_optimizer(h.opt, local.opt))
}

var optMethods = map[string]lua.LuaGoFunction{
	"optimize":                      optOptimize,
	"copy":                          optCopy,
	"destroy":                       optDestroy,
	"get_algorithm":                 optGetAlgorithm,
	"get_dimension":                 optGetDimension,
	"algorithm_name":                optAlgorithmName,
	"set_lower_bounds":              optSetLowerBounds,
	"set_lower_bounds1":             optSetLowerBounds1,
	"get_lower_bounds":              optGetLowerBounds,
	"set_upper_bounds":              optSetUpperBounds,
	"set_upper_bounds1":             optSetUpperBounds1,
	"get_upper_bounds":              optGetUpperBounds,
	"set_min_objective":             optSetMinObjective,
	"set_max_objective":             optSetMaxObjective,
	"add_inequality_constraint":     optAddInequalityConstraint,
	"add_equality_constraint":       optAddEqualityConstraint,
	"add_inequality_mconstraint":    optAddInequalityMConstraint,
	"add_equality_mconstraint":      optAddEqualityMConstraint,
	"remove_inequality_constraints": optRemoveInequalityConstraints,
	"remove_equality_constraints":   optRemoveEqualityConstraints,
	"set_stopval":                   optSetStopval,
	"get_stopval":                   optGetStopval,
	"set_ftol_rel":                  optSetFtolRel,
	"get_ftol_rel":                  optGetFtolRel,
	"set_ftol_abs":                  optSetFtolAbs,
	"get_ftol_abs":                  optGetFtolAbs,
	"set_xtol_rel":                  optSetXtolRel,
	"get_xtol_rel":                  optGetXtolRel,
	"set_xtol_abs":                  optSetXtolAbs,
	"set_xtol_abs1":                 optSetXtolAbs1,
	"get_xtol_abs":                  optGetXtolAbs,
	"set_maxeval":                   optSetMaxeval,
	"get_maxeval":                   optGetMaxeval,
	"set_maxtime":                   optSetMaxtime,
	"get_maxtime":                   optGetMaxtime,
	"force_stop":                    optForceStop,
	"set_force_stop":                optSetForceStop,
	"get_force_stop":                optGetForceStop,
	"set_initial_step":              optSetInitialStep,
	"set_initial_step1":             optSetInitialStep1,
	"set_default_initial_step":      optSetDefaultInitialStep,
	"get_initial_step":              optGetInitialStep,
	"set_population":                optSetPopulation,
	"get_population":                optGetPopulation,
	"set_vector_storage":            optSetVectorStorage,
	"get_vector_storage":            optGetVectorStorage,
	"set_local_optimizer":           optSetLocalOptimizer,
}

// installOptType registers the optimizer metatable. __metatable hides the
// real metatable behind the method table, as getmetatable(opt) should not
// hand out __gc. Idempotent so several Open calls on one state are fine.
func installOptType(L *lua.State) {
	if !L.NewMetaTable(optMetaName) {
		L.Pop(1)
		return
	}
	meta := L.GetTop()

	L.PushString("nloptopt")
	L.PushBoolean(true)
	L.RawSet(meta)

	L.NewTable()
	methods := L.GetTop()
	for name, fn := range optMethods {
		L.PushString(name)
		L.PushGoFunction(fn)
		L.RawSet(methods)
	}

	L.PushString("__index")
	L.PushValue(methods)
	L.RawSet(meta)

	L.PushString("__metatable")
	L.PushValue(methods)
	L.RawSet(meta)

	L.PushString("__gc")
	L.PushGoFunction(optDestroy)
	L.RawSet(meta)

	L.PushString("__tostring")
	L.PushGoFunction(optToString)
	L.RawSet(meta)

	L.Pop(2)
}

func installMunge(opt C.nlopt_opt) {
	C.opt_install_munge(opt)
}

package nlopt

import (
	"testing"
)

// Module surface: constants, version info and optimizer construction.
func TestModule(t *testing.T) {
	tdt := []struct{ desc, code string }{
		{"constant tables", `assert(type(nlopt.algorithm) == 'table')
assert(type(nlopt.result) == 'table')
assert(nlopt.algorithm.GN_DIRECT == 0)
assert(nlopt.algorithm.LN_COBYLA == 25)
assert(nlopt.algorithm.LN_NELDERMEAD == 28)
assert(nlopt.algorithm.NUM_ALGORITHMS == 43)
assert(nlopt.result.SUCCESS == 1)
assert(nlopt.result.FAILURE == -1)
assert(nlopt.result.FORCED_STOP == -5)`},
		{"libversion", `assert(type(nlopt.libversion) == 'string')
assert(#nlopt.libversion > 0)`},
		{"version", `major, minor, bugfix = nlopt.version()
assert(type(major) == 'number' and type(minor) == 'number' and type(bugfix) == 'number')
assert(major >= 2)`},
		{"algorithm_name", `name = nlopt.algorithm_name(nlopt.algorithm.LN_NELDERMEAD)
assert(type(name) == 'string' and #name > 0)`},
		{"algorithm_name range check", `ok = pcall(nlopt.algorithm_name, -1)
assert(not ok)
ok = pcall(nlopt.algorithm_name, nlopt.algorithm.NUM_ALGORITHMS)
assert(not ok)`},
		{"srand", `nlopt.srand(42)
nlopt.srand_time()
ok = pcall(nlopt.srand, -1)
assert(not ok)`},
		{"create", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:get_dimension() == 2)
assert(opt:get_algorithm() == nlopt.algorithm.LN_NELDERMEAD)
assert(opt:algorithm_name() == nlopt.algorithm_name(nlopt.algorithm.LN_NELDERMEAD))`},
		{"create rejects bad algorithm", `ok = pcall(nlopt.create, -1, 2)
assert(not ok)
ok = pcall(nlopt.create, nlopt.algorithm.NUM_ALGORITHMS, 2)
assert(not ok)`},
		{"create rejects bad dimension", `ok = pcall(nlopt.create, nlopt.algorithm.LN_NELDERMEAD, -1)
assert(not ok)`},
		{"tostring", `opt = nlopt.create(nlopt.algorithm.LN_COBYLA, 1)
assert(tostring(opt):find('nlopt.opt', 1, true) == 1)`},
		{"metatable is hidden", `opt = nlopt.create(nlopt.algorithm.LN_COBYLA, 1)
mt = getmetatable(opt)
assert(type(mt) == 'table')
assert(type(mt.optimize) == 'function')
assert(mt.__gc == nil)`},
	}

	for _, v := range tdt {
		L := NewState()
		defer L.Close()
		if err := L.DoString(v.code); err != nil {
			t.Error(v.desc+":", err)
		}
	}
}

func TestHandleGuards(t *testing.T) {
	tdt := []struct{ desc, code string }{
		{"destroyed handle", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
opt:destroy()
ok, err = pcall(opt.get_dimension, opt)
assert(not ok)
assert(tostring(err):find('destroyed') ~= nil)`},
		{"destroy twice is harmless", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
opt:destroy()
opt:destroy()`},
		{"method on non-optimizer", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
ok = pcall(opt.get_dimension, 42)
assert(not ok)
ok = pcall(opt.get_dimension, {})
assert(not ok)`},
	}

	for _, v := range tdt {
		L := NewState()
		defer L.Close()
		if err := L.DoString(v.code); err != nil {
			t.Error(v.desc+":", err)
		}
	}
}

// Vector parameters cross the boundary by copy, round-trip bit-exact and
// reject short tables instead of reading out of bounds.
func TestVectorParameters(t *testing.T) {
	tdt := []struct{ desc, code string }{
		{"bounds round-trip", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_lower_bounds{-1.5, 2.25} >= nlopt.result.SUCCESS)
status, lb = opt:get_lower_bounds()
assert(status >= nlopt.result.SUCCESS)
assert(lb[1] == -1.5 and lb[2] == 2.25)
assert(opt:set_upper_bounds{10, 20} >= nlopt.result.SUCCESS)
status, ub = opt:get_upper_bounds()
assert(ub[1] == 10 and ub[2] == 20)`},
		{"broadcast bounds", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 3)
assert(opt:set_lower_bounds1(-5) >= nlopt.result.SUCCESS)
status, lb = opt:get_lower_bounds()
assert(lb[1] == -5 and lb[2] == -5 and lb[3] == -5)`},
		{"caller keeps ownership", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
t = {1, 2}
opt:set_lower_bounds(t)
t[1] = 99
status, lb = opt:get_lower_bounds()
assert(lb[1] == 1)`},
		{"short table is an error", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
ok = pcall(opt.set_lower_bounds, opt, {1})
assert(not ok)`},
		{"non-table is an error", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
ok = pcall(opt.set_lower_bounds, opt, 1)
assert(not ok)`},
		{"xtol_abs round-trip", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_xtol_abs{1e-4, 1e-5} >= nlopt.result.SUCCESS)
status, tol = opt:get_xtol_abs()
assert(tol[1] == 1e-4 and tol[2] == 1e-5)
assert(opt:set_xtol_abs1(1e-6) >= nlopt.result.SUCCESS)
status, tol = opt:get_xtol_abs()
assert(tol[1] == 1e-6 and tol[2] == 1e-6)`},
	}

	for _, v := range tdt {
		L := NewState()
		defer L.Close()
		if err := L.DoString(v.code); err != nil {
			t.Error(v.desc+":", err)
		}
	}
}

func TestScalarParameters(t *testing.T) {
	tdt := []struct{ desc, code string }{
		{"stopval", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_stopval(0.5) >= nlopt.result.SUCCESS)
assert(opt:get_stopval() == 0.5)`},
		{"ftol", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_ftol_rel(1e-7) >= nlopt.result.SUCCESS)
assert(opt:get_ftol_rel() == 1e-7)
assert(opt:set_ftol_abs(1e-8) >= nlopt.result.SUCCESS)
assert(opt:get_ftol_abs() == 1e-8)`},
		{"xtol_rel", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_xtol_rel(1e-6) >= nlopt.result.SUCCESS)
assert(opt:get_xtol_rel() == 1e-6)`},
		{"maxeval", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_maxeval(100) >= nlopt.result.SUCCESS)
assert(opt:get_maxeval() == 100)`},
		{"maxtime", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_maxtime(1.5) >= nlopt.result.SUCCESS)
assert(opt:get_maxtime() == 1.5)`},
		{"force stop value", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_force_stop(3) >= nlopt.result.SUCCESS)
assert(opt:get_force_stop() == 3)
assert(opt:set_force_stop(0) >= nlopt.result.SUCCESS)`},
		{"population", `opt = nlopt.create(nlopt.algorithm.GN_CRS2_LM, 2)
assert(opt:set_population(50) >= nlopt.result.SUCCESS)
assert(opt:get_population() == 50)`},
		{"vector storage", `opt = nlopt.create(nlopt.algorithm.LD_LBFGS, 2)
assert(opt:set_vector_storage(7) >= nlopt.result.SUCCESS)
assert(opt:get_vector_storage() == 7)`},
		{"initial step", `opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_initial_step{0.1, 0.2} >= nlopt.result.SUCCESS)
status, dx = opt:get_initial_step{0, 0}
assert(status >= nlopt.result.SUCCESS)
assert(dx[1] == 0.1 and dx[2] == 0.2)
assert(opt:set_initial_step1(0.5) >= nlopt.result.SUCCESS)
assert(opt:set_default_initial_step{1, 1} >= nlopt.result.SUCCESS)`},
		{"local optimizer", `opt = nlopt.create(nlopt.algorithm.AUGLAG, 2)
sub = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
assert(opt:set_local_optimizer(sub) >= nlopt.result.SUCCESS)`},
	}

	for _, v := range tdt {
		L := NewState()
		defer L.Close()
		if err := L.DoString(v.code); err != nil {
			t.Error(v.desc+":", err)
		}
	}
}

// Copies are fully independent: parameters diverge after the copy, and the
// copy's callbacks keep working after the source is destroyed.
func TestCopy(t *testing.T) {
	tdt := []struct{ desc, code string }{
		{"parameters diverge", `a = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
a:set_maxeval(10)
b = a:copy()
assert(b:get_maxeval() == 10)
b:set_maxeval(20)
assert(a:get_maxeval() == 10)
assert(b:get_maxeval() == 20)`},
		{"copy survives source destroy", `a = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
a:set_xtol_rel(1e-6)
a:set_min_objective(function(n, x, grad)
    return (x[1]-1)^2 + (x[2]-2)^2
end)
b = a:copy()
a:destroy()
collectgarbage('collect')
x = {0, 0}
status, fmin = b:optimize(x)
assert(status >= nlopt.result.SUCCESS)
assert(math.abs(x[1]-1) < 1e-4 and math.abs(x[2]-2) < 1e-4)`},
		{"removing source constraints spares the copy", `a = nlopt.create(nlopt.algorithm.LN_COBYLA, 1)
a:set_xtol_rel(1e-8)
a:set_min_objective(function(n, x, grad) return x[1] end)
a:add_inequality_constraint(function(n, x, grad) return 3 - x[1] end, nil, 1e-8)
b = a:copy()
a:remove_inequality_constraints()
x = {10}
status = b:optimize(x)
assert(status >= nlopt.result.SUCCESS)
assert(math.abs(x[1]-3) < 1e-3)`},
	}

	for _, v := range tdt {
		L := NewState()
		defer L.Close()
		if err := L.DoString(v.code); err != nil {
			t.Error(v.desc+":", err)
		}
	}
}

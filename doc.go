/*
Package nlopt exposes the NLopt nonlinear-optimization library to Lua.

It uses Alessandro Arzilli's golua (https://github.com/aarzilli/golua) for
the Lua side and links against the NLopt C library (https://nlopt.readthedocs.io)
via cgo.

Open installs a global 'nlopt' table into a Lua state. Optimizers are
userdata objects created with nlopt.create; they are finalized by the Lua
garbage collector, which releases the native optimizer state together with
every callback registered on it.

	local opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
	opt:set_lower_bounds{-10, -10}
	opt:set_upper_bounds{10, 10}
	opt:set_xtol_rel(1e-6)
	opt:set_min_objective(function(n, x, grad, data)
	    return (x[1]-1)^2 + (x[2]-2)^2
	end)
	local status, fmin = opt:optimize{0, 0}

Objective and constraint callbacks receive (n, x, grad, f_data) where x is
a 1-based table of n numbers. For gradient-based algorithms grad is a table
of n numbers the callback must overwrite in place; for derivative-free
algorithms grad is nil. Vector constraints receive
(m, result, n, x, grad, f_data) and overwrite result (m numbers) and, when
present, grad (m*n numbers, row-major by constraint output).

Methods that forward an NLopt call return the raw nlopt_result status as a
number (see the nlopt.result table); statuses are never raised as errors.
A Lua error thrown inside a callback never unwinds through NLopt's C
frames: the binding suppresses it at the boundary, substitutes 0 for the
sample value and leaves gradient buffers untouched. Use
SetCallbackErrorHandler to observe suppressed callback errors.

Copying an optimizer (opt:copy) deep-copies its native state and
re-registers every callback independently, so destroying the source never
invalidates the copy.
*/
package nlopt

package nlopt_test

import (
	"fmt"

	nlopt "github.com/rochus-keller/LuaNLopt"
)

// Minimize a quadratic with the derivative-free Nelder-Mead simplex. The
// solution is written back into the initial-guess table.
func Example() {
	L := nlopt.NewState()
	defer L.Close()

	err := L.DoString(`
		local opt = nlopt.create(nlopt.algorithm.LN_NELDERMEAD, 2)
		opt:set_xtol_rel(1e-6)
		opt:set_min_objective(function(n, x, grad)
			return (x[1]-1)^2 + (x[2]-2)^2
		end)
		local x = {0, 0}
		local status, fmin = opt:optimize(x)
		print(status >= nlopt.result.SUCCESS)
		print(math.abs(x[1]-1) < 1e-3 and math.abs(x[2]-2) < 1e-3)
	`)
	if err != nil {
		fmt.Println(err)
	}
	// Output:
	// true
	// true
}

// Gradient-based minimization: the callback fills the grad table in place
// when the algorithm asks for derivatives.
func Example_gradient() {
	L := nlopt.NewState()
	defer L.Close()

	err := L.DoString(`
		local opt = nlopt.create(nlopt.algorithm.LD_LBFGS, 2)
		opt:set_xtol_rel(1e-8)
		opt:set_min_objective(function(n, x, grad)
			if grad then
				grad[1] = 2*(x[1]+3)
				grad[2] = 2*(x[2]-5)
			end
			return (x[1]+3)^2 + (x[2]-5)^2
		end)
		local x = {0, 0}
		local status = opt:optimize(x)
		print(status >= nlopt.result.SUCCESS)
		print(math.abs(x[1]+3) < 1e-5 and math.abs(x[2]-5) < 1e-5)
	`)
	if err != nil {
		fmt.Println(err)
	}
	// Output:
	// true
	// true
}

package nlopt

/*
#include <nlopt.h>
*/
import "C"

// Algorithm identifiers, in NLopt enum order. The Lua side sees the same
// names under nlopt.algorithm, plus the NUM_ALGORITHMS sentinel.
const (
	// GN_DIRECT is DIRECT (global, no-derivative)
	GN_DIRECT = iota
	// GN_DIRECT_L is DIRECT-L (global, no-derivative)
	GN_DIRECT_L
	// GN_DIRECT_L_RAND is randomized DIRECT-L (global, no-derivative)
	GN_DIRECT_L_RAND
	// GN_DIRECT_NOSCAL is unscaled DIRECT (global, no-derivative)
	GN_DIRECT_NOSCAL
	// GN_DIRECT_L_NOSCAL is unscaled DIRECT-L (global, no-derivative)
	GN_DIRECT_L_NOSCAL
	// GN_DIRECT_L_RAND_NOSCAL is unscaled randomized DIRECT-L (global, no-derivative)
	GN_DIRECT_L_RAND_NOSCAL
	// GN_ORIG_DIRECT is the original DIRECT version (global, no-derivative)
	GN_ORIG_DIRECT
	// GN_ORIG_DIRECT_L is the original DIRECT-L version (global, no-derivative)
	GN_ORIG_DIRECT_L
	// GD_STOGO is StoGO (global, derivative-based)
	GD_STOGO
	// GD_STOGO_RAND is randomized StoGO (global, derivative-based)
	GD_STOGO_RAND
	// LD_LBFGS_NOCEDAL is the original L-BFGS code by Nocedal et al.
	LD_LBFGS_NOCEDAL
	// LD_LBFGS is limited-memory BFGS (local, derivative-based)
	LD_LBFGS
	// LN_PRAXIS is principal-axis praxis (local, no-derivative)
	LN_PRAXIS
	// LD_VAR1 is limited-memory variable-metric, rank 1 (local, derivative-based)
	LD_VAR1
	// LD_VAR2 is limited-memory variable-metric, rank 2 (local, derivative-based)
	LD_VAR2
	// LD_TNEWTON is truncated Newton (local, derivative-based)
	LD_TNEWTON
	// LD_TNEWTON_RESTART is truncated Newton with restarting
	LD_TNEWTON_RESTART
	// LD_TNEWTON_PRECOND is preconditioned truncated Newton
	LD_TNEWTON_PRECOND
	// LD_TNEWTON_PRECOND_RESTART is preconditioned truncated Newton with restarting
	LD_TNEWTON_PRECOND_RESTART
	// GN_CRS2_LM is controlled random search with local mutation (global, no-derivative)
	GN_CRS2_LM
	// GN_MLSL is multi-level single-linkage, random (global, no-derivative)
	GN_MLSL
	// GD_MLSL is multi-level single-linkage, random (global, derivative-based)
	GD_MLSL
	// GN_MLSL_LDS is multi-level single-linkage, quasi-random (global, no-derivative)
	GN_MLSL_LDS
	// GD_MLSL_LDS is multi-level single-linkage, quasi-random (global, derivative-based)
	GD_MLSL_LDS
	// LD_MMA is the method of moving asymptotes (local, derivative-based)
	LD_MMA
	// LN_COBYLA is constrained optimization by linear approximations (local, no-derivative)
	LN_COBYLA
	// LN_NEWUOA is NEWUOA quadratic-model optimization (local, no-derivative)
	LN_NEWUOA
	// LN_NEWUOA_BOUND is bound-constrained NEWUOA (local, no-derivative)
	LN_NEWUOA_BOUND
	// LN_NELDERMEAD is the Nelder-Mead simplex (local, no-derivative)
	LN_NELDERMEAD
	// LN_SBPLX is the Sbplx variant of Nelder-Mead (local, no-derivative)
	LN_SBPLX
	// LN_AUGLAG is the augmented Lagrangian method (local, no-derivative)
	LN_AUGLAG
	// LD_AUGLAG is the augmented Lagrangian method (local, derivative-based)
	LD_AUGLAG
	// LN_AUGLAG_EQ is augmented Lagrangian for equality constraints (local, no-derivative)
	LN_AUGLAG_EQ
	// LD_AUGLAG_EQ is augmented Lagrangian for equality constraints (local, derivative-based)
	LD_AUGLAG_EQ
	// LN_BOBYQA is BOBYQA bound-constrained quadratic-model optimization (local, no-derivative)
	LN_BOBYQA
	// GN_ISRES is ISRES evolutionary constrained optimization (global, no-derivative)
	GN_ISRES
	// AUGLAG is the augmented Lagrangian method (needs a sub-algorithm)
	AUGLAG
	// AUGLAG_EQ is augmented Lagrangian for equality constraints (needs a sub-algorithm)
	AUGLAG_EQ
	// G_MLSL is multi-level single-linkage, random (needs a sub-algorithm)
	G_MLSL
	// G_MLSL_LDS is multi-level single-linkage, quasi-random (needs a sub-algorithm)
	G_MLSL_LDS
	// LD_SLSQP is sequential quadratic programming (local, derivative-based)
	LD_SLSQP
	// LD_CCSAQ is CCSA with simple quadratic approximations (local, derivative-based)
	LD_CCSAQ
	// GN_ESCH is the ESCH evolutionary strategy (global, no-derivative)
	GN_ESCH
	// NUM_ALGORITHMS is the count sentinel, not an algorithm
	NUM_ALGORITHMS
)

var algorithms = map[int]C.nlopt_algorithm{
	GN_DIRECT:                  C.NLOPT_GN_DIRECT,
	GN_DIRECT_L:                C.NLOPT_GN_DIRECT_L,
	GN_DIRECT_L_RAND:           C.NLOPT_GN_DIRECT_L_RAND,
	GN_DIRECT_NOSCAL:           C.NLOPT_GN_DIRECT_NOSCAL,
	GN_DIRECT_L_NOSCAL:         C.NLOPT_GN_DIRECT_L_NOSCAL,
	GN_DIRECT_L_RAND_NOSCAL:    C.NLOPT_GN_DIRECT_L_RAND_NOSCAL,
	GN_ORIG_DIRECT:             C.NLOPT_GN_ORIG_DIRECT,
	GN_ORIG_DIRECT_L:           C.NLOPT_GN_ORIG_DIRECT_L,
	GD_STOGO:                   C.NLOPT_GD_STOGO,
	GD_STOGO_RAND:              C.NLOPT_GD_STOGO_RAND,
	LD_LBFGS_NOCEDAL:           C.NLOPT_LD_LBFGS_NOCEDAL,
	LD_LBFGS:                   C.NLOPT_LD_LBFGS,
	LN_PRAXIS:                  C.NLOPT_LN_PRAXIS,
	LD_VAR1:                    C.NLOPT_LD_VAR1,
	LD_VAR2:                    C.NLOPT_LD_VAR2,
	LD_TNEWTON:                 C.NLOPT_LD_TNEWTON,
	LD_TNEWTON_RESTART:         C.NLOPT_LD_TNEWTON_RESTART,
	LD_TNEWTON_PRECOND:         C.NLOPT_LD_TNEWTON_PRECOND,
	LD_TNEWTON_PRECOND_RESTART: C.NLOPT_LD_TNEWTON_PRECOND_RESTART,
	GN_CRS2_LM:                 C.NLOPT_GN_CRS2_LM,
	GN_MLSL:                    C.NLOPT_GN_MLSL,
	GD_MLSL:                    C.NLOPT_GD_MLSL,
	GN_MLSL_LDS:                C.NLOPT_GN_MLSL_LDS,
	GD_MLSL_LDS:                C.NLOPT_GD_MLSL_LDS,
	LD_MMA:                     C.NLOPT_LD_MMA,
	LN_COBYLA:                  C.NLOPT_LN_COBYLA,
	LN_NEWUOA:                  C.NLOPT_LN_NEWUOA,
	LN_NEWUOA_BOUND:            C.NLOPT_LN_NEWUOA_BOUND,
	LN_NELDERMEAD:              C.NLOPT_LN_NELDERMEAD,
	LN_SBPLX:                   C.NLOPT_LN_SBPLX,
	LN_AUGLAG:                  C.NLOPT_LN_AUGLAG,
	LD_AUGLAG:                  C.NLOPT_LD_AUGLAG,
	LN_AUGLAG_EQ:               C.NLOPT_LN_AUGLAG_EQ,
	LD_AUGLAG_EQ:               C.NLOPT_LD_AUGLAG_EQ,
	LN_BOBYQA:                  C.NLOPT_LN_BOBYQA,
	GN_ISRES:                   C.NLOPT_GN_ISRES,
	AUGLAG:                     C.NLOPT_AUGLAG,
	AUGLAG_EQ:                  C.NLOPT_AUGLAG_EQ,
	G_MLSL:                     C.NLOPT_G_MLSL,
	G_MLSL_LDS:                 C.NLOPT_G_MLSL_LDS,
	LD_SLSQP:                   C.NLOPT_LD_SLSQP,
	LD_CCSAQ:                   C.NLOPT_LD_CCSAQ,
	GN_ESCH:                    C.NLOPT_GN_ESCH,
}

// algorithmConsts is the nlopt.algorithm constant table, index = id.
var algorithmConsts = []string{
	"GN_DIRECT",
	"GN_DIRECT_L",
	"GN_DIRECT_L_RAND",
	"GN_DIRECT_NOSCAL",
	"GN_DIRECT_L_NOSCAL",
	"GN_DIRECT_L_RAND_NOSCAL",
	"GN_ORIG_DIRECT",
	"GN_ORIG_DIRECT_L",
	"GD_STOGO",
	"GD_STOGO_RAND",
	"LD_LBFGS_NOCEDAL",
	"LD_LBFGS",
	"LN_PRAXIS",
	"LD_VAR1",
	"LD_VAR2",
	"LD_TNEWTON",
	"LD_TNEWTON_RESTART",
	"LD_TNEWTON_PRECOND",
	"LD_TNEWTON_PRECOND_RESTART",
	"GN_CRS2_LM",
	"GN_MLSL",
	"GD_MLSL",
	"GN_MLSL_LDS",
	"GD_MLSL_LDS",
	"LD_MMA",
	"LN_COBYLA",
	"LN_NEWUOA",
	"LN_NEWUOA_BOUND",
	"LN_NELDERMEAD",
	"LN_SBPLX",
	"LN_AUGLAG",
	"LD_AUGLAG",
	"LN_AUGLAG_EQ",
	"LD_AUGLAG_EQ",
	"LN_BOBYQA",
	"GN_ISRES",
	"AUGLAG",
	"AUGLAG_EQ",
	"G_MLSL",
	"G_MLSL_LDS",
	"LD_SLSQP",
	"LD_CCSAQ",
	"GN_ESCH",
}

// resultConsts is the nlopt.result constant table, taken straight from the
// linked library so the numbers can never drift from nlopt_result.
var resultConsts = []struct {
	name string
	val  int
}{
	{"FAILURE", int(C.NLOPT_FAILURE)},
	{"INVALID_ARGS", int(C.NLOPT_INVALID_ARGS)},
	{"OUT_OF_MEMORY", int(C.NLOPT_OUT_OF_MEMORY)},
	{"ROUNDOFF_LIMITED", int(C.NLOPT_ROUNDOFF_LIMITED)},
	{"FORCED_STOP", int(C.NLOPT_FORCED_STOP)},
	{"SUCCESS", int(C.NLOPT_SUCCESS)},
	{"STOPVAL_REACHED", int(C.NLOPT_STOPVAL_REACHED)},
	{"FTOL_REACHED", int(C.NLOPT_FTOL_REACHED)},
	{"XTOL_REACHED", int(C.NLOPT_XTOL_REACHED)},
	{"MAXEVAL_REACHED", int(C.NLOPT_MAXEVAL_REACHED)},
	{"MAXTIME_REACHED", int(C.NLOPT_MAXTIME_REACHED)},
}

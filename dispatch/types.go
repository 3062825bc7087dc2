// Package dispatch: result type and sentinel errors.

package dispatch

import (
	"errors"

	"github.com/voltmesh/dcopf/feasibility"
	"github.com/voltmesh/dcopf/lmp"
)

// ErrSolverNumerical marks any LP backend failure other than
// infeasibility: unbounded (which the box bounds rule out — seeing it
// means the formulation is corrupt), singularity, iteration trouble.
// Fatal for the solve; never retried internally.
var ErrSolverNumerical = errors.New("dispatch: numerical solver failure")

// Result is the published outcome of one solve. It is a fresh value per
// call and is never mutated afterwards; per-node slices follow network
// node order, per-line slices follow network line order.
//
// When Feasible is false every economic field is zeroed and Infeasibility
// explains why; callers must check the flag before reading prices.
type Result struct {
	// Feasible reports whether the LP found an optimal dispatch.
	Feasible bool

	// Generation is the dispatched output per node, MW.
	Generation []float64

	// Shedding is the unserved demand per node, MW. All zeros under the
	// hard-limit formulation.
	Shedding []float64

	// LMP is the locational marginal price per node, €/MWh.
	LMP []float64

	// EnergyPrice is the system-wide energy component λ of the LMPs.
	EnergyPrice float64

	// Details decomposes each node's LMP into congestion contributions.
	Details []lmp.NodeDetail

	// Flows is the power flow per line, MW, positive from→to. Recomputed
	// from the primal point as PTDF·injection, not read back from the
	// solver, so it is always consistent with Generation and Shedding.
	Flows []float64

	// Capacities and Lengths echo the per-line limits and lengths the
	// solve ran with.
	Capacities []float64
	Lengths    []float64

	// InjectorFlows attributes each line's flow to injector nodes
	// (generation plus shed), keyed by node index. Entries below the
	// reporting floor are absent.
	InjectorFlows []map[int]float64

	// TotalCost is the optimal objective: generation cost plus, under
	// load shedding, VOLL-priced unserved energy. €/h.
	TotalCost float64

	// Infeasibility is the structured diagnosis attached when Feasible
	// is false; nil otherwise.
	Infeasibility *feasibility.Report
}

// Package dispatch: solve orchestration.

package dispatch

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/voltmesh/dcopf/feasibility"
	"github.com/voltmesh/dcopf/grid"
	"github.com/voltmesh/dcopf/lmp"
	"github.com/voltmesh/dcopf/ptdf"
)

// Solve computes the optimal dispatch of net and its nodal prices.
//
// Steps:
//  1. Build the PTDF matrix from the current topology (fresh every call;
//     a disconnected network surfaces ptdf.ErrSingularNetwork).
//  2. Assemble and solve the primal LP. Backend infeasibility is a soft
//     outcome: the result carries Feasible=false plus a diagnosis, and
//     err stays nil. Any other backend failure is ErrSolverNumerical.
//  3. Solve the dual for shadow prices; decompose LMPs (with the
//     marginal-cost fallback when duals are unavailable); superpose
//     per-injector line flows.
//
// The call is synchronous and has no side effects on net. Determinism:
// identical network state and options yield the identical Result.
//
// Complexity: dominated by the two simplex solves; the PTDF build is
// O(V³ + E·V).
func Solve(net *grid.Network, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	if err := o.ctx.Err(); err != nil {
		return nil, err
	}

	ptdfM, err := ptdf.Build(net)
	if err != nil {
		return nil, err
	}

	if err = o.ctx.Err(); err != nil {
		return nil, err
	}

	prog := newProgram(net, ptdfM, !o.hardLimits, o.voll)
	optF, x, err := prog.solvePrimal(o.tol)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			if o.verbose {
				fmt.Printf("dispatch: infeasible (%d nodes, %d lines), running diagnosis\n",
					prog.nNodes, prog.nLines)
			}

			return infeasibleResult(net), nil
		}

		return nil, fmt.Errorf("%w: %v", ErrSolverNumerical, err)
	}
	if o.verbose {
		fmt.Printf("dispatch: optimum %.4f over %d variables\n", optF, prog.nVars)
	}

	if err = o.ctx.Err(); err != nil {
		return nil, err
	}

	nNodes := prog.nNodes
	generation := make([]float64, nNodes)
	shedding := make([]float64, nNodes)
	copy(generation, x[:nNodes])
	if !o.hardLimits {
		copy(shedding, x[nNodes:2*nNodes])
	}

	// Net injection and flows recomputed from the primal point so the
	// published flows always agree with the published dispatch.
	demand := net.Consumptions()
	injection := make([]float64, nNodes)
	injectors := make([]float64, nNodes)
	for n := 0; n < nNodes; n++ {
		injectors[n] = generation[n] + shedding[n]
		injection[n] = injectors[n] - demand[n]
	}
	flows := ptdf.Flows(ptdfM, injection)

	duals := prog.solveDuals(o.tol, optF)
	if duals == nil && o.verbose {
		fmt.Println("dispatch: duals unavailable, falling back to marginal-cost pricing")
	}
	breakdown := lmp.Decompose(generation, net.GenCapacities(), net.GenCosts(), duals, ptdfM)

	res := &Result{
		Feasible:      true,
		Generation:    generation,
		Shedding:      shedding,
		LMP:           breakdown.LMP,
		EnergyPrice:   breakdown.EnergyPrice,
		Details:       breakdown.Details,
		Flows:         flows,
		InjectorFlows: lmp.InjectorFlows(injectors, demand, ptdfM),
		TotalCost:     optF,
	}
	res.Capacities, res.Lengths = echoLines(net)

	return res, nil
}

// infeasibleResult zeroes every economic field and attaches the
// structured diagnosis. Infeasibility is an expected outcome, not an
// error: scarcity is a normal operating regime.
func infeasibleResult(net *grid.Network) *Result {
	nNodes := net.NodeCount()
	nLines := net.LineCount()
	res := &Result{
		Feasible:      false,
		Generation:    make([]float64, nNodes),
		Shedding:      make([]float64, nNodes),
		LMP:           make([]float64, nNodes),
		Details:       make([]lmp.NodeDetail, nNodes),
		Flows:         make([]float64, nLines),
		InjectorFlows: make([]map[int]float64, nLines),
		Infeasibility: feasibility.Analyze(net),
	}
	for l := range res.InjectorFlows {
		res.InjectorFlows[l] = make(map[int]float64)
	}
	res.Capacities, res.Lengths = echoLines(net)

	return res
}

// echoLines snapshots per-line capacity and length in line order.
func echoLines(net *grid.Network) (caps, lengths []float64) {
	nLines := net.LineCount()
	caps = make([]float64, nLines)
	lengths = make([]float64, nLines)
	for l := 0; l < nLines; l++ {
		caps[l] = net.Line(l).CapacityMW
		lengths[l] = net.Line(l).LengthKM
	}

	return caps, lengths
}

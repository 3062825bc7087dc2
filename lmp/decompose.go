// Package lmp: LMP decomposition and injector flow superposition.

package lmp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Reporting floors. They shape the sparse detail listings only; aggregate
// sums always include every term so no precision is lost.
const (
	// PriceNoiseFloor suppresses solver noise in flow shadow prices:
	// a line with |μ⁺−μ⁻| below this is treated as uncongested.
	PriceNoiseFloor = 0.001 // €/MWh

	// DetailFloor drops per-line per-node entries from the detail listing.
	DetailFloor = 0.001 // €/MWh

	// ActiveInjectorFloorMW ignores injectors below numerical noise.
	ActiveInjectorFloorMW = 0.01 // MW

	// ContributionFloorMW drops per-injector line-flow entries from the
	// reported table.
	ContributionFloorMW = 0.05 // MW

	// interiorMarginMW decides "strictly between bounds" in the marginal
	// generator fallback scan.
	interiorMarginMW = 0.01 // MW
)

// Duals carries the shadow prices of the dispatch LP.
type Duals struct {
	// Lambda is the dual of the power-balance equality (€/MWh).
	Lambda float64

	// MuUpper and MuLower are the multipliers of the per-line upper and
	// lower flow limits, both ≥ 0, in line order.
	MuUpper, MuLower []float64
}

// LineContribution is one line's congestion contribution at a node.
type LineContribution struct {
	Line  int     // line index in network line order
	Price float64 // €/MWh added to (or subtracted from) the node's LMP
}

// NodeDetail is the LMP decomposition at one node.
type NodeDetail struct {
	// Congestion is the total congestion adjustment, LMP − energy price.
	Congestion float64

	// Lines lists the per-line contributions above DetailFloor. Absent
	// entries still count toward Congestion.
	Lines []LineContribution
}

// Breakdown is the full nodal price decomposition.
type Breakdown struct {
	LMP         []float64    // per node, node order
	EnergyPrice float64      // λ
	Details     []NodeDetail // per node, node order
}

// Decompose computes nodal LMPs from the primal generation, the LP duals,
// and the PTDF matrix.
//
// Steps:
//  1. Energy price λ: duals.Lambda when duals are available, otherwise the
//     marginal-generator fallback (MarginalCost).
//  2. Per congested line l (|μ⁺−μ⁻| > PriceNoiseFloor), accumulate
//     −(μ⁺_l−μ⁻_l)·PTDF[l][n] into every node's congestion component,
//     recording entries above DetailFloor.
//  3. LMP_n = λ + congestion_n.
//
// Without duals every node prices at the flat fallback λ.
//
// Complexity: O(L·N). Memory: O(N + reported entries).
func Decompose(generation, capacities, costs []float64, duals *Duals, ptdfM *mat.Dense) Breakdown {
	nNodes := len(generation)
	out := Breakdown{
		LMP:     make([]float64, nNodes),
		Details: make([]NodeDetail, nNodes),
	}

	if duals == nil {
		out.EnergyPrice = MarginalCost(generation, capacities, costs)
		for n := range out.LMP {
			out.LMP[n] = out.EnergyPrice
		}

		return out
	}

	out.EnergyPrice = duals.Lambda

	if ptdfM != nil {
		var priceDiff, contrib float64
		for l := range duals.MuUpper {
			priceDiff = duals.MuUpper[l] - duals.MuLower[l]
			if math.Abs(priceDiff) <= PriceNoiseFloor {
				continue
			}
			for n := 0; n < nNodes; n++ {
				contrib = -priceDiff * ptdfM.At(l, n)
				out.Details[n].Congestion += contrib
				if math.Abs(contrib) > DetailFloor {
					out.Details[n].Lines = append(out.Details[n].Lines,
						LineContribution{Line: l, Price: contrib})
				}
			}
		}
	}

	for n := 0; n < nNodes; n++ {
		out.LMP[n] = out.EnergyPrice + out.Details[n].Congestion
	}

	return out
}

// MarginalCost estimates the system energy price without duals.
//
// Preference order:
//  1. A generator running strictly between its bounds is exactly marginal;
//     return its cost.
//  2. Otherwise the maximum cost among producing generators.
//  3. Otherwise the first node's cost, or 0 for an empty system.
func MarginalCost(generation, capacities, costs []float64) float64 {
	var fallback float64
	for i := range generation {
		if generation[i] > interiorMarginMW && generation[i] < capacities[i]-interiorMarginMW {
			return costs[i]
		}
		if generation[i] > interiorMarginMW && costs[i] > fallback {
			fallback = costs[i]
		}
	}
	if fallback > 0 {
		return fallback
	}
	if len(costs) > 0 {
		return costs[0]
	}

	return 0
}

// InjectorFlows superposes per-injector line flows.
//
// injections is gen+shed per node (shed load acts as local generation for
// flow purposes); consumption is demand per node. Each active injector i
// contributes PTDF·(q_i·e_i − (q_i/Σq)·d): its own output minus a pro-rata
// share of all consumption. Summed over injectors this telescopes to
// PTDF·(q − d), the exact total flow, because Σq = Σd at any feasible
// dispatch.
//
// The result is one map per line, keyed by injector node index; entries
// below ContributionFloorMW are omitted. Absent means "negligible", never
// "unknown".
func InjectorFlows(injections, consumption []float64, ptdfM *mat.Dense) []map[int]float64 {
	if ptdfM == nil {
		return nil
	}
	nLines, nNodes := ptdfM.Dims()
	out := make([]map[int]float64, nLines)
	for l := range out {
		out[l] = make(map[int]float64)
	}

	var total float64
	for _, q := range injections {
		total += q
	}
	if total < ActiveInjectorFloorMW {
		return out
	}

	vec := make([]float64, nNodes)
	var share, flow float64
	for i, q := range injections {
		if q <= ActiveInjectorFloorMW {
			continue
		}
		share = q / total
		for n := 0; n < nNodes; n++ {
			vec[n] = -share * consumption[n]
		}
		vec[i] += q

		for l := 0; l < nLines; l++ {
			flow = 0
			for n := 0; n < nNodes; n++ {
				flow += ptdfM.At(l, n) * vec[n]
			}
			if math.Abs(flow) > ContributionFloorMW {
				out[l][i] = flow
			}
		}
	}

	return out
}

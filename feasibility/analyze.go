// Package feasibility: ordered infeasibility diagnosis.

package feasibility

import (
	"fmt"
	"strings"

	"github.com/voltmesh/dcopf/grid"
)

// Headline markers opening each cause string. Stable across releases so
// operators (and tests) can grep them.
const (
	CauseInsufficientCapacity = "INSUFFICIENT GENERATION CAPACITY"
	CauseBottleneck           = "TRANSMISSION BOTTLENECK"
	CauseNetworkConstraints   = "NETWORK CONSTRAINTS"
)

// Report is the structured diagnosis handed to the presentation layer.
// Entries at the same index across the three slices belong together.
type Report struct {
	Causes      []string
	Details     []string
	Suggestions []string
}

func (r *Report) append(cause, detail, suggestion string) {
	r.Causes = append(r.Causes, cause)
	r.Details = append(r.Details, detail)
	r.Suggestions = append(r.Suggestions, suggestion)
}

// Analyze inspects a network whose hard-limit dispatch came back
// infeasible and produces a Report. It never fails: if no concrete cause
// is identified the generic network-constraints explanation is attached.
//
// The per-node import screen compares the node's deficit against both the
// sum of incident line capacities (the cheap proxy) and the actual
// max-flow deliverable from all surplus nodes; the tighter of the two
// decides, so a bottleneck hidden behind an upstream constriction is still
// caught.
//
// Complexity: O(V·E²) worst case, dominated by the max-flow refinements.
func Analyze(net *grid.Network) *Report {
	rep := &Report{}

	totalCap := net.TotalGenCapacityMW()
	totalDemand := net.TotalConsumptionMW()

	// Check 1: system-wide shortfall.
	systemShort := totalCap < totalDemand
	if systemShort {
		shortfall := totalDemand - totalCap
		rep.append(
			CauseInsufficientCapacity,
			fmt.Sprintf("total generation capacity %.1f MW is below total demand %.1f MW (shortfall %.1f MW)",
				totalCap, totalDemand, shortfall),
			fmt.Sprintf("increase generation capacity or reduce demand by at least %.1f MW", shortfall),
		)
	}

	// Check 2: per-node import bottlenecks. Only meaningful when the
	// system as a whole could serve the load (check 1 already explains
	// the shortfall case).
	if !systemShort {
		for n := 0; n < net.NodeCount(); n++ {
			node := net.Node(n)
			need := node.ConsumptionMW - node.GenCapacityMW
			if need <= 0 {
				continue
			}

			var incident []int
			var proxy float64
			for l := 0; l < net.LineCount(); l++ {
				line := net.Line(l)
				if line.FromIdx == n || line.ToIdx == n {
					incident = append(incident, l)
					proxy += line.CapacityMW
				}
			}
			deliverable := maxDeliverable(net, n)
			if deliverable > proxy {
				deliverable = proxy
			}
			if deliverable >= need {
				continue
			}

			rep.append(
				fmt.Sprintf("%s: node %q cannot import its deficit", CauseBottleneck, node.ID),
				fmt.Sprintf("node %q needs %.1f MW of imports but its lines (%s) can deliver at most %.1f MW",
					node.ID, need, describeLines(net, incident), deliverable),
				fmt.Sprintf("increase capacity on the lines at %q, add local generation, or reduce demand there",
					node.ID),
			)
		}
	}

	// Check 3: nothing concrete found.
	if len(rep.Causes) == 0 {
		rep.append(
			CauseNetworkConstraints,
			"no single shortfall or import limit explains the infeasibility; congestion at intermediate nodes is restricting feasible dispatch",
			"increase line capacities, redistribute generation or demand, or add parallel paths",
		)
	}

	return rep
}

// describeLines renders "A->B (100 MW), B->C (50 MW)" for the detail text.
func describeLines(net *grid.Network, lines []int) string {
	if len(lines) == 0 {
		return "none"
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%s (%.0f MW)", net.LineID(l), net.Line(l).CapacityMW)
	}

	return strings.Join(parts, ", ")
}

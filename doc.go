// Package dcopf computes DC (linearized) optimal power flow over small
// electrical networks and derives Locational Marginal Prices (LMPs) at
// every node, including scarcity pricing under load shedding.
//
// The pipeline, leaf to root:
//
//	grid/        — network model: nodes, lines, generation, consumption,
//	               with floor-clamped in-place updates
//	ptdf/        — Power Transfer Distribution Factor matrix from the
//	               network's susceptances (slack bus = first node)
//	dispatch/    — cost-minimizing dispatch LP (with or without load
//	               shedding), primal and dual solutions, result assembly
//	lmp/         — LMP decomposition: energy price + per-line congestion
//	               components, per-injector flow superposition
//	feasibility/ — structured diagnosis when the hard-limit dispatch has
//	               no feasible point
//
// A typical round trip:
//
//	net, err := grid.New(def)
//	...
//	res, err := dispatch.Solve(net)
//	if err != nil { ... }           // singular network, solver breakdown
//	if !res.Feasible { ... }        // scarcity under hard limits
//	_ = res.LMP                     // €/MWh per node
//
// One Solve call is synchronous and owns the network for its duration;
// callers serialize update+solve cycles themselves.
//
//	go get github.com/voltmesh/dcopf
package dcopf

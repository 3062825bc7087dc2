// Package dispatch solves the DC optimal power flow: a cost-minimizing
// generation dispatch subject to system power balance and PTDF-linearized
// line-flow limits, solved as a continuous linear program.
//
// Two formulations are available:
//
//   - Load shedding (default): decision variables are per-node generation
//     and per-node shed load, the latter priced at VOLL (Value of Lost
//     Load). Shedding gives the LP a universal relief valve, so scarcity
//     becomes a priced outcome instead of a hard failure — the production
//     formulation for power markets, where scarcity is a normal operating
//     regime.
//   - Hard limits (WithHardLimits): generation only, exact balance. When
//     total capacity cannot cover demand the LP is infeasible; the result
//     carries Feasible=false and a feasibility.Report instead of prices.
//
// Both are assembled directly in simplex standard form (every variable is
// naturally nonnegative) and handed to gonum's lp.Simplex. The backend
// returns primal solutions only, so shadow prices come from an explicit
// solve of the dual program, cross-checked against the primal objective
// by strong duality; if that check fails, pricing falls back to the
// marginal-generator scan in package lmp.
//
// Solve is synchronous and deterministic: the same network state yields
// the identical result. The caller owns the network for the duration of
// the call.
package dispatch

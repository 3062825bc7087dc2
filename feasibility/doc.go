// Package feasibility explains why a hard-limit dispatch has no feasible
// point.
//
// Analyze runs three checks in order and appends one (cause, detail,
// suggestion) triple per finding:
//
//  1. System shortfall: total generation capacity below total demand.
//  2. Transmission bottleneck: a node whose local deficit cannot be
//     imported. The classic screen sums the capacities of all incident
//     lines; that proxy over-estimates deliverability (it ignores
//     upstream limits), so the verdict is refined with a max-flow
//     computation over line capacities from all surplus nodes.
//  3. Otherwise a generic network-constraints explanation.
//
// The report is advisory text for the operator, not a machine contract:
// causes carry stable uppercase headline markers, details and suggestions
// are free-form sentences.
package feasibility

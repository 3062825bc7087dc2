// Package ptdf builds the Power Transfer Distribution Factor matrix of a
// network: the dense (n_lines × n_nodes) sensitivity of every line flow to
// a 1 MW injection at every node, with the compensating withdrawal at the
// slack bus (the network's first node).
//
// The builder assembles the nodal susceptance matrix, removes the slack
// row and column, inverts the reduced matrix, and recombines the inverse
// with per-line susceptances. A network that is not connected has a
// singular reduced matrix; Build detects that case with a deterministic
// reachability scan before touching the linear algebra and returns
// ErrSingularNetwork instead of relying on floating-point pivot behavior.
//
// The matrix is rebuilt from scratch on every call — there is no caching,
// so it can never be stale with respect to the network it was built from.
package ptdf

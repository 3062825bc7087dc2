// Package ptdf: PTDF matrix assembly.

package ptdf

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/voltmesh/dcopf/grid"
)

// ErrSingularNetwork is returned when the reduced susceptance matrix is not
// invertible, i.e. the network is disconnected once the slack bus is
// removed. This is terminal for the build: no pseudo-inverse is attempted.
var ErrSingularNetwork = errors.New("ptdf: singular susceptance matrix (network not connected)")

// Build computes the PTDF matrix of net, shape (n_lines × n_nodes).
//
// Entry (l, n) is the change of flow on line l (positive = from→to) per
// 1 MW of extra injection at node n, compensated at the slack bus. Flows
// are linear in net injections: flow = PTDF · (generation + shed − load),
// which both the dispatch LP's flow constraints and the superposition-based
// flow decomposition rely on.
//
// Steps:
//  1. Reachability scan from the slack bus over all lines (undirected);
//     any unreachable node ⇒ ErrSingularNetwork (O(V + E)).
//  2. Assemble the susceptance matrix B: for each line (i, j) with
//     b = 1/reactance, B[i][i] += b, B[j][j] += b, B[i][j] −= b,
//     B[j][i] −= b (O(V² + E)).
//  3. Invert B with slack row/column removed (O(V³)); reassemble B⁻ with
//     zeroed slack row and column.
//  4. PTDF[l][n] = b_l · (B⁻[i][n] − B⁻[j][n]) (O(E·V)).
//
// A network with no lines (necessarily a single node, since construction
// requires connectivity) yields a nil matrix: there are no flow rows.
//
// Complexity: O(V³ + E·V). Memory: O(V² + E·V).
func Build(net *grid.Network) (*mat.Dense, error) {
	nNodes := net.NodeCount()
	nLines := net.LineCount()

	if err := checkConnected(net); err != nil {
		return nil, err
	}
	if nLines == 0 || nNodes < 2 {
		return nil, nil // no lines ⇒ no flow sensitivities
	}

	// 2) Susceptance matrix.
	b := mat.NewDense(nNodes, nNodes, nil)
	var line grid.Line
	var susc float64
	for l := 0; l < nLines; l++ {
		line = net.Line(l)
		susc = 1.0 / line.ReactancePU
		b.Set(line.FromIdx, line.FromIdx, b.At(line.FromIdx, line.FromIdx)+susc)
		b.Set(line.ToIdx, line.ToIdx, b.At(line.ToIdx, line.ToIdx)+susc)
		b.Set(line.FromIdx, line.ToIdx, b.At(line.FromIdx, line.ToIdx)-susc)
		b.Set(line.ToIdx, line.FromIdx, b.At(line.ToIdx, line.FromIdx)-susc)
	}

	// 3) Reduced inverse. The reachability scan already rules out exact
	// disconnection; any residual inversion failure (pathological
	// conditioning) still surfaces as ErrSingularNetwork.
	reduced := b.Slice(1, nNodes, 1, nNodes)
	var inv mat.Dense
	if err := inv.Inverse(reduced); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularNetwork, err)
	}

	bInv := mat.NewDense(nNodes, nNodes, nil)
	for i := 1; i < nNodes; i++ {
		for j := 1; j < nNodes; j++ {
			bInv.Set(i, j, inv.At(i-1, j-1))
		}
	}

	// 4) Recombine with per-line susceptances.
	out := mat.NewDense(nLines, nNodes, nil)
	for l := 0; l < nLines; l++ {
		line = net.Line(l)
		susc = 1.0 / line.ReactancePU
		for n := 0; n < nNodes; n++ {
			out.Set(l, n, susc*(bInv.At(line.FromIdx, n)-bInv.At(line.ToIdx, n)))
		}
	}

	return out, nil
}

// Flows computes per-line flows for a net-injection vector in node order:
// flow = PTDF · injection. A nil matrix (no lines) yields an empty slice.
func Flows(ptdfM *mat.Dense, injection []float64) []float64 {
	if ptdfM == nil {
		return nil
	}
	rows, _ := ptdfM.Dims()
	out := make([]float64, rows)
	var flow mat.VecDense
	flow.MulVec(ptdfM, mat.NewVecDense(len(injection), injection))
	for l := 0; l < rows; l++ {
		out[l] = flow.AtVec(l)
	}

	return out
}

// checkConnected walks the line set from the slack bus (node 0) treating
// every line as bidirectional, and fails if any node stays unreached.
func checkConnected(net *grid.Network) error {
	nNodes := net.NodeCount()
	if nNodes < 2 {
		return nil
	}

	adj := make([][]int, nNodes)
	var line grid.Line
	for l := 0; l < net.LineCount(); l++ {
		line = net.Line(l)
		adj[line.FromIdx] = append(adj[line.FromIdx], line.ToIdx)
		adj[line.ToIdx] = append(adj[line.ToIdx], line.FromIdx)
	}

	seen := make([]bool, nNodes)
	seen[0] = true
	queue := []int{0}
	var u int
	for i := 0; i < len(queue); i++ {
		u = queue[i]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	for n := 0; n < nNodes; n++ {
		if !seen[n] {
			return fmt.Errorf("%w: node %q unreachable from slack %q",
				ErrSingularNetwork, net.Node(n).ID, net.Node(0).ID)
		}
	}

	return nil
}

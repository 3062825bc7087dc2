// Package feasibility: max-flow deliverability over line capacities.
//
// Edmonds–Karp (BFS shortest augmenting paths) over the transmission
// network viewed as an undirected capacity graph: each line admits its
// thermal limit in either direction. A synthetic super-source feeds every
// node with surplus generation capacity, bounded by that surplus, and the
// deficit node under scrutiny is the sink. The max flow is an upper bound
// on power deliverable to the node under *any* dispatch ignoring DC phase
// physics — so when even this bound is short, the LP is certainly
// infeasible for that node.

package feasibility

import (
	"math"

	"github.com/voltmesh/dcopf/grid"
)

// capEps treats residual capacities at or below this as exhausted.
const capEps = 1e-9

// maxDeliverable computes the maximum power (MW) the rest of the network
// can push to sink, limited by per-node surplus capacity and per-line
// thermal limits.
//
// Complexity: O(V·E²). Memory: O(V + E).
func maxDeliverable(net *grid.Network, sink int) float64 {
	nNodes := net.NodeCount()
	src := nNodes // synthetic super-source index

	// Residual capacities as a nested map: residual[u][v] = remaining MW.
	residual := make([]map[int]float64, nNodes+1)
	for u := range residual {
		residual[u] = make(map[int]float64)
	}

	var line grid.Line
	for l := 0; l < net.LineCount(); l++ {
		line = net.Line(l)
		if line.CapacityMW <= capEps {
			continue
		}
		residual[line.FromIdx][line.ToIdx] += line.CapacityMW
		residual[line.ToIdx][line.FromIdx] += line.CapacityMW
	}
	var surplus float64
	for n := 0; n < nNodes; n++ {
		if n == sink {
			continue
		}
		surplus = net.Node(n).GenCapacityMW - net.Node(n).ConsumptionMW
		if surplus > capEps {
			residual[src][n] = surplus
		}
	}

	var maxFlow float64
	for {
		path, bottleneck := augmentingPath(residual, src, sink)
		if len(path) == 0 || bottleneck <= capEps {
			break
		}
		maxFlow += bottleneck
		var u, v int
		for i := 0; i < len(path)-1; i++ {
			u, v = path[i], path[i+1]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
	}

	return maxFlow
}

// augmentingPath finds the fewest-hops path src→sink with positive
// residual capacity and returns it with its bottleneck, or (nil, 0).
func augmentingPath(residual []map[int]float64, src, sink int) ([]int, float64) {
	parent := make([]int, len(residual))
	bottle := make([]float64, len(residual))
	for i := range parent {
		parent[i] = -1
	}
	parent[src] = src
	bottle[src] = math.Inf(1)

	queue := []int{src}
	var u int
	for i := 0; i < len(queue); i++ {
		u = queue[i]
		for v, c := range residual[u] {
			if c <= capEps || parent[v] >= 0 {
				continue
			}
			parent[v] = u
			bottle[v] = math.Min(bottle[u], c)
			if v == sink {
				// Walk the parent chain back to src.
				path := []int{sink}
				for w := sink; w != src; w = parent[w] {
					path = append(path, parent[w])
				}
				reverse(path)

				return path, bottle[sink]
			}
			queue = append(queue, v)
		}
	}

	return nil, 0
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Package grid: Network accessors and floor-clamped mutators.
//
// Mutators never reorder or resize the node/line sequences; they adjust
// magnitudes in place, clamping out-of-range values to their physical
// floor. NaN/Inf inputs are rejected with ErrNotFinite before any field
// is touched, so a failed call leaves the Network unchanged.

package grid

import (
	"fmt"
	"math"
)

// NodeCount returns the number of nodes. Complexity: O(1).
func (n *Network) NodeCount() int { return len(n.nodes) }

// LineCount returns the number of lines. Complexity: O(1).
func (n *Network) LineCount() int { return len(n.lines) }

// Node returns the node at position i in the fixed node order.
// Panics on an out-of-range index (programmer error, as with any slice).
func (n *Network) Node(i int) Node { return n.nodes[i] }

// Line returns the line at position i in the fixed line order.
func (n *Network) Line(i int) Line { return n.lines[i] }

// Nodes returns a copy of the ordered node sequence.
func (n *Network) Nodes() []Node {
	out := make([]Node, len(n.nodes))
	copy(out, n.nodes)

	return out
}

// Lines returns a copy of the ordered line sequence.
func (n *Network) Lines() []Line {
	out := make([]Line, len(n.lines))
	copy(out, n.lines)

	return out
}

// NodeIndex returns the position of the node with the given ID, and
// whether it exists. Complexity: O(1).
func (n *Network) NodeIndex(id string) (int, bool) {
	i, ok := n.index[id]

	return i, ok
}

// GenCapacities returns the per-node generator capacities in node order.
func (n *Network) GenCapacities() []float64 {
	out := make([]float64, len(n.nodes))
	for i := range n.nodes {
		out[i] = n.nodes[i].GenCapacityMW
	}

	return out
}

// GenCosts returns the per-node marginal costs in node order.
func (n *Network) GenCosts() []float64 {
	out := make([]float64, len(n.nodes))
	for i := range n.nodes {
		out[i] = n.nodes[i].GenCostPerMWh
	}

	return out
}

// Consumptions returns the per-node demand in node order.
func (n *Network) Consumptions() []float64 {
	out := make([]float64, len(n.nodes))
	for i := range n.nodes {
		out[i] = n.nodes[i].ConsumptionMW
	}

	return out
}

// TotalGenCapacityMW sums all generator capacities.
func (n *Network) TotalGenCapacityMW() float64 {
	var sum float64
	for i := range n.nodes {
		sum += n.nodes[i].GenCapacityMW
	}

	return sum
}

// TotalConsumptionMW sums all demand.
func (n *Network) TotalConsumptionMW() float64 {
	var sum float64
	for i := range n.nodes {
		sum += n.nodes[i].ConsumptionMW
	}

	return sum
}

// Clone returns a deep, independent copy of the Network.
func (n *Network) Clone() *Network {
	c := &Network{
		nodes: make([]Node, len(n.nodes)),
		lines: make([]Line, len(n.lines)),
		index: make(map[string]int, len(n.index)),
	}
	copy(c.nodes, n.nodes)
	copy(c.lines, n.lines)
	for id, i := range n.index {
		c.index[id] = i
	}

	return c
}

// SetLineCapacityMW updates a line's thermal limit, clamped to ≥ 0.
// Returns ErrLineIndex or ErrNotFinite; out-of-range values clamp silently.
func (n *Network) SetLineCapacityMW(i int, capacityMW float64) error {
	if i < 0 || i >= len(n.lines) {
		return fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	if err := requireFinite(capacityMW); err != nil {
		return err
	}
	n.lines[i].CapacityMW = math.Max(MinCapacityMW, capacityMW)

	return nil
}

// SetLineLengthKM updates a line's length, clamped to ≥ MinLineLengthKM,
// and re-derives its reactance as length * ReactancePerKM. After this call
// reactance is no longer an independent field for line i.
func (n *Network) SetLineLengthKM(i int, lengthKM float64) error {
	if i < 0 || i >= len(n.lines) {
		return fmt.Errorf("%w: %d", ErrLineIndex, i)
	}
	if err := requireFinite(lengthKM); err != nil {
		return err
	}
	length := math.Max(MinLineLengthKM, lengthKM)
	n.lines[i].LengthKM = length
	n.lines[i].ReactancePU = length * ReactancePerKM

	return nil
}

// SetGeneration updates a node's generator capacity and marginal cost,
// each clamped to ≥ 0. Returns ErrUnknownNode or ErrNotFinite.
func (n *Network) SetGeneration(id string, capacityMW, costPerMWh float64) error {
	i, ok := n.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	if err := requireFinite(capacityMW, costPerMWh); err != nil {
		return err
	}
	n.nodes[i].GenCapacityMW = math.Max(MinCapacityMW, capacityMW)
	n.nodes[i].GenCostPerMWh = math.Max(MinCapacityMW, costPerMWh)

	return nil
}

// SetConsumptionMW updates a node's demand, clamped to ≥ 0.
func (n *Network) SetConsumptionMW(id string, consumptionMW float64) error {
	i, ok := n.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	if err := requireFinite(consumptionMW); err != nil {
		return err
	}
	n.nodes[i].ConsumptionMW = math.Max(MinCapacityMW, consumptionMW)

	return nil
}

// LineID formats a human-readable label "from->to" for the line at i.
// Result structures key lines by index; this label is for presentation
// boundaries only.
func (n *Network) LineID(i int) string {
	l := n.lines[i]

	return fmt.Sprintf("%s->%s", l.From, l.To)
}

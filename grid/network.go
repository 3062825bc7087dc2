// Package grid: Network construction and validation.

package grid

import (
	"fmt"
	"math"
)

// New builds a Network from a Definition, validating fail-fast.
//
// Validation order (first violation wins):
//  1. At least one node; IDs non-empty and unique.
//  2. Every line endpoint references a defined node; no self-loops.
//  3. Line reactance > 0 and finite; capacity and length finite.
//  4. Generation/consumption values finite (absent entries mean zero).
//
// Out-of-range magnitudes are clamped to their physical floor exactly as
// the Set* mutators would clamp them; only non-finite values are errors.
//
// Complexity: O(V + E).
func New(def Definition) (*Network, error) {
	if len(def.Nodes) == 0 {
		return nil, ErrNoNodes
	}

	net := &Network{
		nodes: make([]Node, len(def.Nodes)),
		lines: make([]Line, len(def.Lines)),
		index: make(map[string]int, len(def.Nodes)),
	}

	// 1) Node sequence: order is preserved, nodes[0] becomes the slack bus.
	for i, id := range def.Nodes {
		if id == "" {
			return nil, ErrEmptyNodeID
		}
		if _, dup := net.index[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		}
		net.index[id] = i
		net.nodes[i] = Node{ID: id}
	}

	// 2+3) Line sequence: resolve endpoints once, derive defaults.
	for l, ld := range def.Lines {
		fi, ok := net.index[ld.From]
		if !ok {
			return nil, fmt.Errorf("%w: line %d from %q", ErrUnknownNode, l, ld.From)
		}
		ti, ok := net.index[ld.To]
		if !ok {
			return nil, fmt.Errorf("%w: line %d to %q", ErrUnknownNode, l, ld.To)
		}
		if fi == ti {
			return nil, fmt.Errorf("%w: line %d at %q", ErrSelfLoop, l, ld.From)
		}
		if err := requireFinite(ld.Reactance, ld.Capacity, ld.Length); err != nil {
			return nil, fmt.Errorf("line %d: %w", l, err)
		}
		if ld.Reactance <= 0 {
			return nil, fmt.Errorf("%w: line %d (%g)", ErrBadReactance, l, ld.Reactance)
		}
		length := ld.Length
		if length <= 0 {
			length = DefaultLineLengthKM
		}
		net.lines[l] = Line{
			From:        ld.From,
			To:          ld.To,
			FromIdx:     fi,
			ToIdx:       ti,
			ReactancePU: ld.Reactance,
			CapacityMW:  math.Max(MinCapacityMW, ld.Capacity),
			LengthKM:    math.Max(MinLineLengthKM, length),
		}
	}

	// 4) Generation and consumption, clamped like the mutators.
	for id, gen := range def.Generation {
		i, ok := net.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: generation at %q", ErrUnknownNode, id)
		}
		if err := requireFinite(gen.Capacity, gen.Cost); err != nil {
			return nil, fmt.Errorf("generation at %q: %w", id, err)
		}
		net.nodes[i].GenCapacityMW = math.Max(MinCapacityMW, gen.Capacity)
		net.nodes[i].GenCostPerMWh = math.Max(MinCapacityMW, gen.Cost)
	}
	for id, c := range def.Consumption {
		i, ok := net.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: consumption at %q", ErrUnknownNode, id)
		}
		if err := requireFinite(c); err != nil {
			return nil, fmt.Errorf("consumption at %q: %w", id, err)
		}
		net.nodes[i].ConsumptionMW = math.Max(MinCapacityMW, c)
	}

	return net, nil
}

// requireFinite returns ErrNotFinite on the first NaN or ±Inf value.
func requireFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotFinite
		}
	}

	return nil
}

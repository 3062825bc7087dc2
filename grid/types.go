// Package grid: central Network, Node, and Line types.
//
// This file declares the value types, the external Definition structure
// consumed by New, the physical constants shared with the solver layers,
// and the package sentinel errors.
//
// Errors:
//
//	ErrNoNodes       - definition contains no nodes.
//	ErrEmptyNodeID   - a node ID is the empty string.
//	ErrDuplicateNode - the same node ID appears twice.
//	ErrUnknownNode   - a line endpoint or mutator target names no node.
//	ErrSelfLoop      - a line connects a node to itself.
//	ErrBadReactance  - a line's reactance is zero or negative.
//	ErrLineIndex     - a line index is outside [0, LineCount).
//	ErrNotFinite     - NaN or ±Inf where a finite value is required.
package grid

import "errors"

// Physical constants. Single source of truth for the whole module.
const (
	// ReactancePerKM is the fixed linear coefficient deriving a line's
	// reactance from its length: reactance = length * ReactancePerKM.
	ReactancePerKM = 0.001 // p.u. per km

	// MinLineLengthKM is the floor applied to every length update.
	MinLineLengthKM = 0.1 // km

	// DefaultLineLengthKM substitutes an omitted line length.
	DefaultLineLengthKM = 100.0 // km

	// MinCapacityMW is the floor for line and generator capacities,
	// marginal costs and consumption values.
	MinCapacityMW = 0.0
)

// Sentinel errors for network construction and mutation.
var (
	// ErrNoNodes indicates an empty node sequence in the definition.
	ErrNoNodes = errors.New("grid: no nodes defined")

	// ErrEmptyNodeID indicates a node with an empty identifier.
	ErrEmptyNodeID = errors.New("grid: node ID is empty")

	// ErrDuplicateNode indicates a node identifier used more than once.
	ErrDuplicateNode = errors.New("grid: duplicate node ID")

	// ErrUnknownNode indicates a reference to a node that is not present.
	ErrUnknownNode = errors.New("grid: unknown node ID")

	// ErrSelfLoop indicates a line whose endpoints are the same node.
	ErrSelfLoop = errors.New("grid: line endpoints are identical")

	// ErrBadReactance indicates a non-positive line reactance.
	ErrBadReactance = errors.New("grid: reactance must be > 0")

	// ErrLineIndex indicates a line index outside the line sequence.
	ErrLineIndex = errors.New("grid: line index out of range")

	// ErrNotFinite indicates a NaN or ±Inf input. Out-of-range values are
	// clamped silently, but a non-numeric value is a hard failure: the
	// solver must never run on NaN fields.
	ErrNotFinite = errors.New("grid: value is NaN or Inf")
)

// Node is one bus of the network: exactly one generator and one load.
type Node struct {
	// ID uniquely identifies this node within its Network.
	ID string

	// GenCapacityMW is the generator's maximum output, ≥ 0.
	GenCapacityMW float64

	// GenCostPerMWh is the generator's marginal cost in €/MWh, ≥ 0.
	GenCostPerMWh float64

	// ConsumptionMW is the local demand, ≥ 0.
	ConsumptionMW float64
}

// Line is one transmission line between two nodes.
//
// FromIdx/ToIdx are the endpoint positions in the node sequence, resolved
// once at construction so the solver layers never re-scan node IDs.
type Line struct {
	// From and To are the endpoint node IDs (direction fixes flow sign).
	From, To string

	// FromIdx and ToIdx are the endpoint indices in Network node order.
	FromIdx, ToIdx int

	// ReactancePU is the series reactance in p.u., > 0.
	ReactancePU float64

	// CapacityMW is the thermal flow limit, ≥ 0.
	CapacityMW float64

	// LengthKM is the line length, ≥ MinLineLengthKM.
	LengthKM float64
}

// Network holds the ordered node and line sequences plus an ID index.
// Construct with New; mutate only through the Set* methods.
type Network struct {
	nodes []Node
	lines []Line
	index map[string]int // node ID → position in nodes
}

// Definition is the external network description consumed by New.
// Field semantics follow the integration contract: node order fixes the
// slack bus, generation/consumption entries default to zero when absent,
// and a line length ≤ 0 means "unspecified" (DefaultLineLengthKM).
type Definition struct {
	Nodes       []string             `json:"nodes"`
	Lines       []LineDef            `json:"lines"`
	Generation  map[string]Generator `json:"generation"`
	Consumption map[string]float64   `json:"consumption"`
}

// LineDef describes one line of a Definition.
type LineDef struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Reactance float64 `json:"reactance"` // p.u., > 0
	Capacity  float64 `json:"capacity"`  // MW, ≥ 0
	Length    float64 `json:"length"`    // km; ≤ 0 → DefaultLineLengthKM
}

// Generator describes one node's generation parameters in a Definition.
type Generator struct {
	Capacity float64 `json:"capacity"` // MW, ≥ 0
	Cost     float64 `json:"cost"`     // €/MWh, ≥ 0
}

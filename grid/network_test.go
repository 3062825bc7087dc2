package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltmesh/dcopf/grid"
)

// ringDef returns the canonical 3-node ring used across the module's tests:
// A-B (x=0.1, cap=100), B-C (x=0.1, cap=100), A-C (x=0.2, cap=50).
func ringDef() grid.Definition {
	return grid.Definition{
		Nodes: []string{"A", "B", "C"},
		Lines: []grid.LineDef{
			{From: "A", To: "B", Reactance: 0.1, Capacity: 100, Length: 100},
			{From: "B", To: "C", Reactance: 0.1, Capacity: 100, Length: 100},
			{From: "A", To: "C", Reactance: 0.2, Capacity: 50, Length: 200},
		},
		Generation: map[string]grid.Generator{
			"A": {Capacity: 200, Cost: 20},
			"B": {Capacity: 50, Cost: 40},
			"C": {Capacity: 100, Cost: 60},
		},
		Consumption: map[string]float64{"A": 50, "B": 100, "C": 100},
	}
}

func TestNewRing(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	require.Equal(t, 3, net.NodeCount())
	require.Equal(t, 3, net.LineCount())

	// Node order is preserved verbatim; A is the slack bus.
	require.Equal(t, "A", net.Node(0).ID)
	require.Equal(t, "C", net.Node(2).ID)

	// Endpoint indices resolved at construction.
	ac := net.Line(2)
	require.Equal(t, 0, ac.FromIdx)
	require.Equal(t, 2, ac.ToIdx)
	require.Equal(t, 50.0, ac.CapacityMW)

	require.Equal(t, 350.0, net.TotalGenCapacityMW())
	require.Equal(t, 250.0, net.TotalConsumptionMW())

	i, ok := net.NodeIndex("B")
	require.True(t, ok)
	require.Equal(t, 1, i)
}

func TestNewDefaultsAndClamps(t *testing.T) {
	def := grid.Definition{
		Nodes: []string{"A", "B"},
		Lines: []grid.LineDef{
			// Length omitted → default; negative capacity → clamped to 0.
			{From: "A", To: "B", Reactance: 0.05, Capacity: -10},
		},
		Generation: map[string]grid.Generator{
			"A": {Capacity: -5, Cost: -1}, // clamped to floors
		},
		Consumption: map[string]float64{"B": -3},
	}
	net, err := grid.New(def)
	require.NoError(t, err)

	l := net.Line(0)
	require.Equal(t, grid.DefaultLineLengthKM, l.LengthKM)
	require.Equal(t, 0.0, l.CapacityMW)
	require.Equal(t, 0.0, net.Node(0).GenCapacityMW)
	require.Equal(t, 0.0, net.Node(0).GenCostPerMWh)
	require.Equal(t, 0.0, net.Node(1).ConsumptionMW)

	// Absent generation/consumption entries mean zero.
	require.Equal(t, 0.0, net.Node(1).GenCapacityMW)
	require.Equal(t, 0.0, net.Node(0).ConsumptionMW)
}

func TestNewValidation(t *testing.T) {
	base := ringDef()
	for _, tc := range []struct {
		name   string
		mutate func(*grid.Definition)
		want   error
	}{
		{"no nodes", func(d *grid.Definition) { d.Nodes = nil }, grid.ErrNoNodes},
		{"empty id", func(d *grid.Definition) { d.Nodes[1] = "" }, grid.ErrEmptyNodeID},
		{"duplicate id", func(d *grid.Definition) { d.Nodes[2] = "A" }, grid.ErrDuplicateNode},
		{"unknown from", func(d *grid.Definition) { d.Lines[0].From = "Z" }, grid.ErrUnknownNode},
		{"unknown to", func(d *grid.Definition) { d.Lines[0].To = "Z" }, grid.ErrUnknownNode},
		{"self loop", func(d *grid.Definition) { d.Lines[0].To = "A" }, grid.ErrSelfLoop},
		{"zero reactance", func(d *grid.Definition) { d.Lines[1].Reactance = 0 }, grid.ErrBadReactance},
		{"negative reactance", func(d *grid.Definition) { d.Lines[1].Reactance = -0.1 }, grid.ErrBadReactance},
		{"nan capacity", func(d *grid.Definition) { d.Lines[0].Capacity = math.NaN() }, grid.ErrNotFinite},
		{"inf consumption", func(d *grid.Definition) { d.Consumption["B"] = math.Inf(1) }, grid.ErrNotFinite},
		{"nan cost", func(d *grid.Definition) { d.Generation["C"] = grid.Generator{Capacity: 1, Cost: math.NaN()} }, grid.ErrNotFinite},
		{"unknown gen node", func(d *grid.Definition) { d.Generation["Z"] = grid.Generator{} }, grid.ErrUnknownNode},
		{"unknown load node", func(d *grid.Definition) { d.Consumption["Z"] = 1 }, grid.ErrUnknownNode},
	} {
		t.Run(tc.name, func(t *testing.T) {
			def := ringDef()
			_ = base // keep the canonical copy untouched
			tc.mutate(&def)
			_, err := grid.New(def)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSetLineLengthRecomputesReactance(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	require.NoError(t, net.SetLineLengthKM(0, 250))
	l := net.Line(0)
	require.Equal(t, 250.0, l.LengthKM)
	require.Equal(t, 250*grid.ReactancePerKM, l.ReactancePU)

	// Floor clamp: below MinLineLengthKM the length snaps to the floor and
	// reactance follows from the clamped value.
	require.NoError(t, net.SetLineLengthKM(0, -7))
	l = net.Line(0)
	require.Equal(t, grid.MinLineLengthKM, l.LengthKM)
	require.Equal(t, grid.MinLineLengthKM*grid.ReactancePerKM, l.ReactancePU)
}

func TestMutatorClampsAndErrors(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	require.NoError(t, net.SetLineCapacityMW(1, -20))
	require.Equal(t, 0.0, net.Line(1).CapacityMW)

	require.NoError(t, net.SetGeneration("B", -1, -2))
	require.Equal(t, 0.0, net.Node(1).GenCapacityMW)
	require.Equal(t, 0.0, net.Node(1).GenCostPerMWh)

	require.NoError(t, net.SetConsumptionMW("C", -4))
	require.Equal(t, 0.0, net.Node(2).ConsumptionMW)

	require.ErrorIs(t, net.SetLineCapacityMW(99, 10), grid.ErrLineIndex)
	require.ErrorIs(t, net.SetLineLengthKM(-1, 10), grid.ErrLineIndex)
	require.ErrorIs(t, net.SetGeneration("Z", 1, 1), grid.ErrUnknownNode)
	require.ErrorIs(t, net.SetConsumptionMW("Z", 1), grid.ErrUnknownNode)
}

func TestMutatorRejectsNaNWithoutSideEffects(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	before := net.Line(0)
	require.ErrorIs(t, net.SetLineLengthKM(0, math.NaN()), grid.ErrNotFinite)
	require.Equal(t, before, net.Line(0))

	require.ErrorIs(t, net.SetGeneration("A", math.Inf(1), 10), grid.ErrNotFinite)
	require.Equal(t, 200.0, net.Node(0).GenCapacityMW)
}

func TestVectorsFollowNodeOrder(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	require.Equal(t, []float64{200, 50, 100}, net.GenCapacities())
	require.Equal(t, []float64{20, 40, 60}, net.GenCosts())
	require.Equal(t, []float64{50, 100, 100}, net.Consumptions())
}

func TestCloneIsIndependent(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)

	c := net.Clone()
	require.NoError(t, c.SetConsumptionMW("A", 999))
	require.NoError(t, c.SetLineCapacityMW(0, 1))

	require.Equal(t, 50.0, net.Node(0).ConsumptionMW)
	require.Equal(t, 100.0, net.Line(0).CapacityMW)
	require.Equal(t, 999.0, c.Node(0).ConsumptionMW)
}

func TestLineID(t *testing.T) {
	net, err := grid.New(ringDef())
	require.NoError(t, err)
	require.Equal(t, "A->B", net.LineID(0))
	require.Equal(t, "A->C", net.LineID(2))
}

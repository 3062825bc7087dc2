package ptdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltmesh/dcopf/grid"
	"github.com/voltmesh/dcopf/ptdf"
)

const tol = 1e-9

func ringNet(t *testing.T) *grid.Network {
	t.Helper()
	net, err := grid.New(grid.Definition{
		Nodes: []string{"A", "B", "C"},
		Lines: []grid.LineDef{
			{From: "A", To: "B", Reactance: 0.1, Capacity: 100},
			{From: "B", To: "C", Reactance: 0.1, Capacity: 100},
			{From: "A", To: "C", Reactance: 0.2, Capacity: 50},
		},
	})
	require.NoError(t, err)

	return net
}

// TestRingValues pins the analytic PTDF of the 3-node ring. Susceptances
// are 10, 10, 5; the reduced susceptance matrix [[20,-10],[-10,15]] has
// inverse 1/200·[[15,10],[10,20]].
func TestRingValues(t *testing.T) {
	m, err := ptdf.Build(ringNet(t))
	require.NoError(t, err)

	want := [][]float64{
		{0, -0.75, -0.5},  // A-B
		{0, 0.25, -0.5},   // B-C
		{0, -0.25, -0.5},  // A-C
	}
	rows, cols := m.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)
	for l := range want {
		for n := range want[l] {
			require.InDelta(t, want[l][n], m.At(l, n), tol, "entry (%d,%d)", l, n)
		}
	}
}

// TestTwoNode checks the degenerate two-node case: whatever the reactance,
// the line simply carries the non-slack node's net withdrawal.
func TestTwoNode(t *testing.T) {
	net, err := grid.New(grid.Definition{
		Nodes: []string{"A", "B"},
		Lines: []grid.LineDef{{From: "A", To: "B", Reactance: 0.37, Capacity: 10}},
	})
	require.NoError(t, err)

	m, err := ptdf.Build(net)
	require.NoError(t, err)
	require.InDelta(t, 0.0, m.At(0, 0), tol)
	require.InDelta(t, -1.0, m.At(0, 1), tol)
}

// TestSlackColumnZero verifies the reference-bus convention: injections at
// the slack bus have zero sensitivity on every line, so changing only the
// slack injection leaves all flows unchanged.
func TestSlackColumnZero(t *testing.T) {
	m, err := ptdf.Build(ringNet(t))
	require.NoError(t, err)

	base := ptdf.Flows(m, []float64{0, 30, -30})
	shifted := ptdf.Flows(m, []float64{500, 30, -30})
	require.Len(t, base, 3)
	for l := range base {
		require.InDelta(t, base[l], shifted[l], tol, "line %d", l)
	}
}

// TestNodalBalance checks that PTDF flows conserve power at every node for
// a balanced injection vector: outflow − inflow equals the injection.
func TestNodalBalance(t *testing.T) {
	net := ringNet(t)
	m, err := ptdf.Build(net)
	require.NoError(t, err)

	injection := []float64{40, -15, -25}
	flows := ptdf.Flows(m, injection)

	netOut := make([]float64, net.NodeCount())
	for l := 0; l < net.LineCount(); l++ {
		line := net.Line(l)
		netOut[line.FromIdx] += flows[l]
		netOut[line.ToIdx] -= flows[l]
	}
	for n := range injection {
		require.InDelta(t, injection[n], netOut[n], tol, "node %d", n)
	}
}

func TestDisconnectedNetwork(t *testing.T) {
	net, err := grid.New(grid.Definition{
		Nodes: []string{"A", "B", "C", "D"},
		Lines: []grid.LineDef{
			{From: "A", To: "B", Reactance: 0.1, Capacity: 100},
			{From: "C", To: "D", Reactance: 0.1, Capacity: 100},
		},
	})
	require.NoError(t, err)

	_, err = ptdf.Build(net)
	require.ErrorIs(t, err, ptdf.ErrSingularNetwork)
}

func TestSingleNode(t *testing.T) {
	net, err := grid.New(grid.Definition{Nodes: []string{"A"}})
	require.NoError(t, err)

	m, err := ptdf.Build(net)
	require.NoError(t, err)
	require.Nil(t, m, "a lineless network has no flow sensitivities")
	require.Empty(t, ptdf.Flows(m, []float64{1}))
}

// TestRebuildSeesLengthUpdate: the matrix is built fresh from current
// reactances, so a length update (which rewrites reactance) changes the
// next build.
func TestRebuildSeesLengthUpdate(t *testing.T) {
	net := ringNet(t)
	before, err := ptdf.Build(net)
	require.NoError(t, err)

	// Lengthening A-C raises its reactance (0.4 p.u. at 400 km) and pushes
	// more of C's import through A-B-C: the reduced inverse becomes
	// 1/150·[[12.5,10],[10,20]], so PTDF[A-B][C] moves from -0.5 to -2/3.
	require.NoError(t, net.SetLineLengthKM(2, 400))
	after, err := ptdf.Build(net)
	require.NoError(t, err)

	require.InDelta(t, -0.5, before.At(0, 2), tol)
	require.InDelta(t, -2.0/3.0, after.At(0, 2), tol)
}

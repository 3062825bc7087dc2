package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/voltmesh/dcopf/grid"
)

func hookNet(t *testing.T) *grid.Network {
	t.Helper()
	net, err := grid.New(grid.Definition{
		Nodes: []string{"A", "B"},
		Lines: []grid.LineDef{
			{From: "A", To: "B", Reactance: 0.1, Capacity: 100},
		},
		Generation:  map[string]grid.Generator{"A": {Capacity: 100, Cost: 10}},
		Consumption: map[string]float64{"B": 60},
	})
	require.NoError(t, err)

	return net
}

// TestBackendFailureWrapped: a non-infeasibility backend error surfaces
// as ErrSolverNumerical with the cause preserved.
func TestBackendFailureWrapped(t *testing.T) {
	orig := lpSolve
	t.Cleanup(func() { lpSolve = orig })

	boom := errors.New("ill conditioned")
	lpSolve = func(c []float64, a mat.Matrix, b []float64, tol float64, initialBasic []int) (float64, []float64, error) {
		return 0, nil, boom
	}

	_, err := Solve(hookNet(t))
	require.ErrorIs(t, err, ErrSolverNumerical)
	require.Contains(t, err.Error(), "ill conditioned")
}

// TestDualFailureFallsBack: when only the dual solve fails, the result is
// still produced and pricing falls back to the marginal-generator scan.
func TestDualFailureFallsBack(t *testing.T) {
	orig := lpSolve
	t.Cleanup(func() { lpSolve = orig })

	calls := 0
	lpSolve = func(c []float64, a mat.Matrix, b []float64, tol float64, initialBasic []int) (float64, []float64, error) {
		calls++
		if calls > 1 {
			return 0, nil, lp.ErrInfeasible
		}

		return orig(c, a, b, tol, initialBasic)
	}

	res, err := Solve(hookNet(t))
	require.NoError(t, err)
	require.True(t, res.Feasible)
	require.Equal(t, 2, calls)

	// Marginal-cost pricing: A's unit is marginal, prices are flat.
	require.InDelta(t, 10.0, res.EnergyPrice, solveTolInternal)
	require.InDelta(t, 10.0, res.LMP[0], solveTolInternal)
	require.InDelta(t, 10.0, res.LMP[1], solveTolInternal)
}

const solveTolInternal = 1e-6

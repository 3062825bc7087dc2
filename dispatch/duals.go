// Package dispatch: explicit dual solve for shadow prices.
//
// The backend returns primal points only, so the dual program is solved
// outright with the same simplex. For the primal
//
//	min c'x  s.t.  1'x = D (λ),  A_ub·x ≤ h (μ ≥ 0),  x ≥ 0
//
// the dual reads
//
//	max λ·D − μ'h  s.t.  λ·1 − A_ub'μ ≤ c,  μ ≥ 0,  λ free.
//
// In standard form the free λ splits into λ⁺−λ⁻ and the dual constraints
// gain nonnegative surpluses r (the primal reduced costs):
//
//	min −D·λ⁺ + D·λ⁻ + h'μ
//	s.t. λ⁺ − λ⁻ − (A_ub'μ)_i + r_i = c_i   for every decision variable i
//	     λ⁺, λ⁻, μ, r ≥ 0.
//
// Strong duality pins the result: the dual optimum must meet the primal
// objective, otherwise the multipliers are discarded and pricing falls
// back to the marginal-generator scan.

package dispatch

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/voltmesh/dcopf/lmp"
)

// strongDualityRelTol bounds the allowed primal/dual objective gap,
// relative to the primal objective magnitude.
const strongDualityRelTol = 1e-6

// solveDuals extracts λ and the per-line flow multipliers. Returns nil
// when the dual solve fails or violates strong duality; callers treat nil
// as "duals unavailable".
func (p *program) solveDuals(tol, primalObj float64) *lmp.Duals {
	nIneq := p.ineqRows()
	rows := p.nVars
	cols := 2 + nIneq + p.nVars

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	c[0] = -p.totalDemand
	c[1] = p.totalDemand
	for j := 0; j < nIneq; j++ {
		c[2+j] = p.ineqRHS(j)
	}

	for i := 0; i < p.nVars; i++ {
		a.Set(i, 0, 1)  // λ⁺
		a.Set(i, 1, -1) // λ⁻
		for j := 0; j < nIneq; j++ {
			a.Set(i, 2+j, -p.ineqCoeff(j, i))
		}
		a.Set(i, 2+nIneq+i, 1) // r_i
		b[i] = p.costs[i]
	}

	optF, y, err := lpSolve(c, a, b, tol, nil)
	if err != nil {
		return nil
	}

	// The dual was assembled as a minimization of the negated objective,
	// so the dual optimum in max form is −optF.
	gap := math.Abs(primalObj - (-optF))
	if gap > strongDualityRelTol*math.Max(1, math.Abs(primalObj)) {
		return nil
	}

	d := &lmp.Duals{
		Lambda:  y[0] - y[1],
		MuUpper: make([]float64, p.nLines),
		MuLower: make([]float64, p.nLines),
	}
	for l := 0; l < p.nLines; l++ {
		d.MuUpper[l] = y[2+l]
		d.MuLower[l] = y[2+p.nLines+l]
	}

	return d
}

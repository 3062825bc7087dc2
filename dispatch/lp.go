// Package dispatch: LP assembly in simplex standard form.
//
// Every decision variable (generation, shed) is naturally nonnegative, so
// the program is assembled directly as
//
//	minimize  c'x   s.t.  A·x = b,  x ≥ 0
//
// with one slack column per inequality row, instead of routing through
// lp.Convert (which treats variables as free and doubles the dimension by
// splitting them).
//
// Variable layout: [gen (n) | shed (n, shedding only) | slacks (2m+N)].
// Row layout:      [balance | flow upper (m) | flow lower (m) | bounds (N)]
// where N is the number of decision variables and m the number of lines.

package dispatch

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/voltmesh/dcopf/grid"
)

// lpSolve is the simplex entry point, a variable so tests can inject
// backend failures.
var lpSolve = lp.Simplex

// program captures one assembled dispatch LP plus the data needed to
// build its dual.
type program struct {
	nNodes, nLines int
	nVars          int       // decision variables: n or 2n
	costs          []float64 // len nVars
	upper          []float64 // variable upper bounds, len nVars
	caps           []float64 // line capacities, len nLines
	flowDemand     []float64 // PTDF·demand per line, len nLines
	totalDemand    float64
	ptdfM          *mat.Dense
}

// newProgram assembles the LP data for net under the selected formulation.
func newProgram(net *grid.Network, ptdfM *mat.Dense, shedding bool, voll float64) *program {
	nNodes := net.NodeCount()
	nLines := net.LineCount()
	demand := net.Consumptions()

	p := &program{
		nNodes:      nNodes,
		nLines:      nLines,
		nVars:       nNodes,
		caps:        make([]float64, nLines),
		flowDemand:  make([]float64, nLines),
		totalDemand: net.TotalConsumptionMW(),
		ptdfM:       ptdfM,
	}
	if shedding {
		p.nVars = 2 * nNodes
	}

	p.costs = make([]float64, p.nVars)
	p.upper = make([]float64, p.nVars)
	copy(p.costs, net.GenCosts())
	copy(p.upper, net.GenCapacities())
	if shedding {
		for i := 0; i < nNodes; i++ {
			p.costs[nNodes+i] = voll
			p.upper[nNodes+i] = demand[i]
		}
	}

	for l := 0; l < nLines; l++ {
		p.caps[l] = net.Line(l).CapacityMW
		for n := 0; n < nNodes; n++ {
			p.flowDemand[l] += ptdfM.At(l, n) * demand[n]
		}
	}

	return p
}

// ineqRows is the number of inequality rows: two per line plus one upper
// bound per decision variable.
func (p *program) ineqRows() int { return 2*p.nLines + p.nVars }

// ineqCoeff returns the coefficient of decision variable i in inequality
// row j. Generation and shed at the same node share a PTDF column: both
// act as injection there.
func (p *program) ineqCoeff(j, i int) float64 {
	switch {
	case j < p.nLines:
		return p.ptdfM.At(j, i%p.nNodes)
	case j < 2*p.nLines:
		return -p.ptdfM.At(j-p.nLines, i%p.nNodes)
	default:
		if j-2*p.nLines == i {
			return 1
		}

		return 0
	}
}

// ineqRHS returns the right-hand side of inequality row j: flow limits
// shifted by the demand term, then variable upper bounds.
func (p *program) ineqRHS(j int) float64 {
	switch {
	case j < p.nLines:
		return p.caps[j] + p.flowDemand[j]
	case j < 2*p.nLines:
		return p.caps[j-p.nLines] - p.flowDemand[j-p.nLines]
	default:
		return p.upper[j-2*p.nLines]
	}
}

// solvePrimal runs the simplex on the standard-form primal and returns
// the optimal objective and the decision-variable values.
func (p *program) solvePrimal(tol float64) (optF float64, x []float64, err error) {
	rows := 1 + p.ineqRows()
	cols := p.nVars + p.ineqRows()

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	copy(c, p.costs)

	// Balance row: every decision variable injects into the system.
	for i := 0; i < p.nVars; i++ {
		a.Set(0, i, 1)
	}
	b[0] = p.totalDemand

	// Inequality rows, one fresh slack column each.
	for j := 0; j < p.ineqRows(); j++ {
		for i := 0; i < p.nVars; i++ {
			a.Set(1+j, i, p.ineqCoeff(j, i))
		}
		a.Set(1+j, p.nVars+j, 1)
		b[1+j] = p.ineqRHS(j)
	}

	optF, xStd, err := lpSolve(c, a, b, tol, nil)
	if err != nil {
		return 0, nil, err
	}

	return optF, xStd[:p.nVars], nil
}

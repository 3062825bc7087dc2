// Package dispatch: functional solve configuration.
//
// Options follow the usual pattern: Default* constants are the single
// source of truth, With* constructors validate eagerly and panic only on
// nonsensical values (programmer error), gatherOptions resolves the final
// state with last-writer-wins semantics.

package dispatch

import (
	"context"
	"math"
)

// Defaults.
const (
	// DefaultVOLL is the Value of Lost Load: the €/MWh penalty on shed
	// demand. Large enough that shedding never substitutes for any sane
	// generation cost, only for physical impossibility.
	DefaultVOLL = 5000.0

	// DefaultTolerance is the simplex optimality tolerance (maximal
	// reduced cost at termination).
	DefaultTolerance = 1e-9
)

const (
	panicBadVOLL      = "dispatch: WithVOLL: value must be finite and > 0"
	panicBadTolerance = "dispatch: WithTolerance: value must be finite and > 0"
	panicNilContext   = "dispatch: WithContext: ctx must be non-nil"
)

// Option mutates solve configuration. Safe to apply repeatedly.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; public
// entry points accept ...Option and resolve them via gatherOptions.
type Options struct {
	voll       float64
	hardLimits bool
	tol        float64
	ctx        context.Context
	verbose    bool
}

// WithHardLimits selects the generation-only formulation: no shedding
// variables, exact balance, infeasible under scarcity.
func WithHardLimits() Option {
	return func(o *Options) { o.hardLimits = true }
}

// WithLoadShedding selects the shedding formulation (the default).
func WithLoadShedding() Option {
	return func(o *Options) { o.hardLimits = false }
}

// WithVOLL overrides the Value of Lost Load. Panics on non-positive or
// non-finite values.
func WithVOLL(voll float64) Option {
	if math.IsNaN(voll) || math.IsInf(voll, 0) || voll <= 0 {
		panic(panicBadVOLL)
	}

	return func(o *Options) { o.voll = voll }
}

// WithTolerance overrides the simplex optimality tolerance. Panics on
// non-positive or non-finite values.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicBadTolerance)
	}

	return func(o *Options) { o.tol = tol }
}

// WithContext attaches a context checked between solve stages (PTDF
// build, primal solve, dual solve). The simplex iterations themselves are
// not interruptible. Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(panicNilContext)
	}

	return func(o *Options) { o.ctx = ctx }
}

// WithVerbose prints per-stage diagnostics to stdout.
func WithVerbose() Option {
	return func(o *Options) { o.verbose = true }
}

// gatherOptions applies setters over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		voll: DefaultVOLL,
		tol:  DefaultTolerance,
		ctx:  context.Background(),
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}

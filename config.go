// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

// StoppingReason identifies why the Newton driver exited.
type StoppingReason int

const (
	NotSolved        StoppingReason = -1 // Solve has not been called, or is still running
	ResidualBelowTol StoppingReason = 0  // ‖rhs - target‖₂ < Rtol
	StepBelowTol     StoppingReason = 1  // ‖x‖₂ < Xtol
	IterationLimit   StoppingReason = 2  // MaxIter iterations ran without converging
)

// String returns the human-readable message for a StoppingReason.
func (r StoppingReason) String() string {
	switch r {
	case NotSolved:
		return "Not solved"
	case ResidualBelowTol:
		return "A solution was found, given rtol"
	case StepBelowTol:
		return "A solution was found, given xtol"
	case IterationLimit:
		return "The iteration limit was reached"
	default:
		return "Error. Unknown stopping reason"
	}
}

// Options is the configuration bag consumed by System.Solve and threaded
// through to every Element.Compute call.
type Options struct {
	LinearSolver string  // "ldlt" or "lsmr"; selects the linear solver implementation at construction time
	Lambda       float64 // scalar load factor applied to each DoF's target
	MaxIter      int     // upper bound on Newton iterations
	Rtol         float64 // residual-norm stopping tolerance
	Xtol         float64 // correction-norm stopping tolerance

	// Iteration is set by the driver at the start of every iteration and
	// is readable (and, for diagnostic purposes only, writable) by
	// Element.Compute implementations.
	Iteration int

	// Verbose enables the driver's opt-in per-iteration diagnostic line,
	// printed through gosl/io. It never affects correctness.
	Verbose bool
}

// DefaultOptions returns the option bag with the standard Newton-loop
// defaults.
func DefaultOptions() *Options {
	return &Options{
		LinearSolver: "ldlt",
		Lambda:       1.0,
		MaxIter:      100,
		Rtol:         1e-7,
		Xtol:         1e-7,
	}
}

// withDefaults returns DefaultOptions() if in is nil, otherwise a copy of
// in. Unlike a field-by-field merge, this does not treat a caller's
// explicit zero (e.g. Rtol: 0, Xtol: 0, used to force the iteration-limit
// path regardless of residual/step size) as "unset": once a caller
// supplies an Options value, every field in it is taken as given, except
// that an empty LinearSolver becomes "ldlt".
func withDefaults(in *Options) *Options {
	if in == nil {
		d := DefaultOptions()
		return d
	}
	out := *in
	if out.LinearSolver == "" {
		out.LinearSolver = "ldlt"
	}
	return &out
}

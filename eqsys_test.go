// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import "gonum.org/v1/gonum/mat"

// linearElement is a test Element whose local LHS/RHS never depend on
// options or on the current DoF values, used throughout the test suite.
type linearElement struct {
	dofs []Dof
	lhs  [][]float64 // k x k, read as symmetric (upper triangle)
	rhs  []float64   // length k
}

func (e *linearElement) Dofs() []Dof { return e.dofs }

func (e *linearElement) Compute(opts *Options) (*mat.SymDense, []float64, error) {
	k := len(e.dofs)
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, e.lhs[i][j])
		}
	}
	return sym, append([]float64(nil), e.rhs...), nil
}

// stateElement is a test Element whose local rhs is a genuine function of
// the current DoF state — k * Effective() — unlike linearElement, which
// ignores it entirely. It exists to exercise the Newton driver's actual
// convergence paths: with a state-reading element, the residual can drop
// as the driver's accumulated Delta moves Effective() toward the point
// where k*Effective() meets the target.
type stateElement struct {
	dof Dof
	v   *Variable
	k   float64
}

func (e *stateElement) Dofs() []Dof { return []Dof{e.dof} }

func (e *stateElement) Compute(opts *Options) (*mat.SymDense, []float64, error) {
	sym := mat.NewSymDense(1, nil)
	sym.SetSym(0, 0, e.k)
	return sym, []float64{e.k * e.v.Effective()}, nil
}

// newVariables builds a Dof->*Variable registry for a flat list of
// (channel, target, fixed) specs; each Dof's Owner is its position in
// specs.
func newVariables(specs ...variableSpec) (map[Dof]*Variable, []Dof) {
	store := make(map[Dof]*Variable, len(specs))
	dofs := make([]Dof, len(specs))
	for i, sp := range specs {
		d := Dof{Owner: i, Channel: sp.channel}
		store[d] = &Variable{Target: sp.target, Fixed: sp.fixed}
		dofs[i] = d
	}
	return store, dofs
}

type variableSpec struct {
	channel string
	target  float64
	fixed   bool
}

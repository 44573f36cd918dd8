// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

// Dof is the stable, value-based identity of a scalar unknown.
//
// Dof is deliberately a plain comparable struct so that two elements which
// independently construct "the same" unknown hash and compare equal: the
// global assembly in indexer relies on this. Owner is whatever
// stable identifier the caller's node/point representation provides (an
// index, an id, a pointer turned into an integer key — anything that is
// itself value-stable for the DoF's lifetime); Channel distinguishes
// multiple unknowns living on the same owner (e.g. "ux" vs "uy").
type Dof struct {
	Owner   int
	Channel string
}

// Variable holds the mutable state associated with a Dof: its current
// value, target/reference value, fixed/free flag, and the scratch fields
// the Newton driver writes between iterations.
//
// A Variable is owned centrally by a System (indexed by global index) and
// by the caller's registry passed to New; elements hold the Dof identity
// and, where they need to read current state, a shared pointer into that
// same registry. This avoids the cyclic element<->node ownership that a
// combined Dof/state type forces.
type Variable struct {
	Value    float64 // current value, set by the caller
	Target   float64 // reference/target value used by the Newton driver
	Fixed    bool    // true => boundary condition, excluded from the free block
	Delta    float64 // accumulated Newton correction
	Residual float64 // scratch: final residual, written once Solve exits
}

// Effective returns the value an Element's Compute should treat as this
// DoF's current state: the nominal Value plus whatever correction the
// Newton driver has accumulated into Delta so far.
func (v *Variable) Effective() float64 {
	return v.Value + v.Delta
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import "gonum.org/v1/gonum/mat"

// Element is the polymorphic source of a local contribution to the global
// system: a small dense matrix and vector over a set of degrees of
// freedom.
//
// Dofs must be stable across calls: the indexer queries it exactly once,
// caches the result, and assumes the order never changes for the lifetime
// of the Element. Compute is invoked once per assembly pass (possibly
// from multiple goroutines concurrently, in parallel assembly) and must
// be safe for concurrent use with itself if the caller intends to run
// parallel assembly; the core places no other restriction on it.
type Element interface {
	// Dofs returns this element's degrees of freedom, in the order local
	// indices 0..k-1 refer to them.
	Dofs() []Dof

	// Compute returns this element's local LHS (k×k, read as symmetric —
	// only the upper triangle is used) and local RHS (length k) for the
	// current state of its DoFs, as influenced by opts (notably
	// opts.Iteration).
	Compute(opts *Options) (lhs *mat.SymDense, rhs []float64, err error)
}

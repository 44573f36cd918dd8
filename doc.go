// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eqsys implements a small finite-element-style equation assembly
// and nonlinear solver core.
//
// Client code supplies a collection of Elements, each owning a set of
// Dofs and able to compute a local dense contribution as a function of the
// current Dof values. System reconciles the elements' Dofs into a global
// free/fixed ordering, derives the sparsity pattern of the free-block
// left-hand side, assembles it (serially or in parallel) on demand, and
// drives a Newton-style fixed-point iteration against a LinearSolver.
//
// The package does not know how to build elements on its own — those are
// supplied by the caller through the Element contract. The linear solver
// is one of the two built-in reference implementations, chosen by name
// through Options.LinearSolver ("ldlt" or "lsmr"); New offers no way to
// supply any other LinearSolver. It has no on-disk format, no wire
// protocol, and no CLI.
package eqsys

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// System reconciles a collection of Elements into a global DoF ordering,
// derives the sparsity pattern of the free-block LHS, and assembles and
// solves the resulting nonlinear system.
//
// The indexer and pattern are built once at construction and never change
// afterwards; the LHS values and RHS are mutable and zeroed at the start
// of every assembly pass.
type System struct {
	elements  []Element
	variables []*Variable // central owner, indexed by global index; shared with caller-owned Variables

	idx *indexer
	pat *pattern

	solver LinearSolver

	opts *Options // construction-time defaults (notably LinearSolver)

	lhsValues []float64 // length pat.nnz; the free-block LHS's own value array, laid out per pat.rowsByCol/pat.colStart
	rhs       []float64

	x        []float64
	target   []float64
	residual []float64

	// NumWorkers configures parallel assembly: <= 0 means "auto"
	// (runtime.GOMAXPROCS(0)).
	NumWorkers int

	stoppingReason StoppingReason
}

// New builds a System from elements, using variables to look up the
// Fixed/Value/Target state backing every Dof any element returns.
// variables is the central registry the caller builds once and shares
// with its elements. opts selects the linear solver ("ldlt" by default);
// a nil opts uses DefaultOptions().
func New(elements []Element, variables map[Dof]*Variable, opts *Options) (*System, error) {
	cfg := withDefaults(opts)

	idx, err := buildIndexer(elements, variables)
	if err != nil {
		return nil, chk.Err("eqsys: failed to build dof index: %v", err)
	}
	pat := buildPattern(idx)

	solver, err := newLinearSolver(cfg.LinearSolver)
	if err != nil {
		return nil, err
	}
	if err := solver.AnalyzePattern(pat); err != nil {
		return nil, chk.Err("eqsys: linear solver failed to analyze pattern: %v", err)
	}

	vars := make([]*Variable, idx.nbDofs())
	for i, d := range idx.dofs {
		vars[i] = variables[d]
	}

	F := idx.nbFreeDofs()
	s := &System{
		elements:       elements,
		variables:      vars,
		idx:            idx,
		pat:            pat,
		solver:         solver,
		opts:           cfg,
		lhsValues:      make([]float64, pat.nnz),
		rhs:            make([]float64, F),
		x:              make([]float64, F),
		target:         make([]float64, F),
		residual:       make([]float64, F),
		stoppingReason: NotSolved,
	}
	return s, nil
}

// Dofs returns the global DoF vector, free block first.
func (s *System) Dofs() []Dof { return append([]Dof(nil), s.idx.dofs...) }

// NbDofs returns N.
func (s *System) NbDofs() int { return s.idx.nbDofs() }

// NbFreeDofs returns F.
func (s *System) NbFreeDofs() int { return s.idx.nbFreeDofs() }

// DofIndex returns the global index of dof.
func (s *System) DofIndex(dof Dof) (int, bool) { return s.idx.dofIndexOf(dof) }

// LHS returns the assembled global left-hand side (upper triangle of the
// free block only), materialised fresh from the current value array. Nil
// when NbFreeDofs() == 0.
func (s *System) LHS() *la.CCMatrix { return s.pat.buildCCMatrix(s.lhsValues, false) }

// RHS returns the assembled global right-hand side, length NbFreeDofs().
func (s *System) RHS() []float64 { return s.rhs }

// StoppingReason returns the exit condition of the most recent Solve call.
func (s *System) StoppingReason() StoppingReason { return s.stoppingReason }

// Assemble zeroes the LHS and RHS in place (structure preserved) and then
// accumulates every element's local contribution. useParallel selects the
// worker-pool reduction path; serial assembly is always available for
// callers that need bitwise-reproducible results.
func (s *System) Assemble(opts *Options, useParallel bool) error {
	la.VecFill(s.lhsValues, 0)
	la.VecFill(s.rhs, 0)
	acc := &accumulator{lhsValues: s.lhsValues, rhs: s.rhs}
	if !useParallel {
		if err := assembleSerial(s.elements, s.idx, s.pat, opts, acc); err != nil {
			return err
		}
	} else {
		if err := assembleParallel(s.elements, s.idx, s.pat, opts, acc, s.NumWorkers); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) verbosef(opts *Options, format string, args ...interface{}) {
	if opts != nil && opts.Verbose {
		io.Pf(format, args...)
	}
}

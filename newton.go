// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// Solve drives the Newton-style fixed-point iteration: each step
// assembles the system, checks convergence against the scaled target,
// solves the linear system, and applies the correction to the free DoFs.
//
// useParallel selects parallel assembly for every iteration; pass false
// for bitwise-reproducible results across runs.
func (s *System) Solve(opts *Options, useParallel bool) (StoppingReason, error) {
	cfg := *withDefaults(opts)

	F := s.NbFreeDofs()
	for i := 0; i < F; i++ {
		s.target[i] = cfg.Lambda * s.variables[i].Target
	}

	s.stoppingReason = NotSolved

	for iteration := 0; ; iteration++ {
		if iteration >= cfg.MaxIter {
			s.stoppingReason = IterationLimit
			break
		}
		cfg.Iteration = iteration

		if err := s.Assemble(&cfg, useParallel); err != nil {
			return s.stoppingReason, chk.Err("eqsys: assembly failed at iteration %d: %v", iteration, err)
		}

		for i := 0; i < F; i++ {
			s.residual[i] = s.rhs[i] - s.target[i]
		}
		rnorm := floats.Norm(s.residual, 2)

		s.verbosef(&cfg, "%4d %23.15e\n", iteration, rnorm)

		if rnorm < cfg.Rtol {
			s.stoppingReason = ResidualBelowTol
			break
		}

		if err := s.solver.SetMatrix(s.pat, s.lhsValues); err != nil {
			return s.stoppingReason, chk.Err("eqsys: solver.SetMatrix failed at iteration %d: %v", iteration, err)
		}
		if err := s.solver.Solve(s.residual, s.x); err != nil {
			return s.stoppingReason, chk.Err("eqsys: solver.Solve failed at iteration %d: %v", iteration, err)
		}

		for i := 0; i < F; i++ {
			s.variables[i].Delta -= s.x[i]
		}

		xnorm := floats.Norm(s.x, 2)
		if xnorm < cfg.Xtol {
			s.stoppingReason = StepBelowTol
			break
		}
	}

	for i := 0; i < F; i++ {
		s.variables[i].Residual = s.residual[i]
	}

	return s.stoppingReason, nil
}

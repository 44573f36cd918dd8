// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearSolver analyzes the structural pattern once, refreshes values
// every Newton iteration, and solves M x = b in place of x. It is handed
// the pattern itself (rather than a materialised la.CCMatrix) because
// la.CCMatrix exposes no public accessors to its stored structure or
// values — only pattern, an in-package type, can be read field-by-field.
type LinearSolver interface {
	// AnalyzePattern is called exactly once, with the structural pattern
	// built by the pattern analyser.
	AnalyzePattern(pat *pattern) error

	// SetMatrix is called each Newton iteration with fresh values (length
	// pat.nnz, laid out per pat.rowsByCol/pat.colStart).
	SetMatrix(pat *pattern, values []float64) error

	// Solve solves M x = b in place of x (length F).
	Solve(b, x []float64) error
}

// newLinearSolver dispatches by name; an unknown name is a hard
// configuration error, never a printed message.
func newLinearSolver(name string) (LinearSolver, error) {
	switch name {
	case "", "ldlt":
		return &LDLTSolver{}, nil
	case "lsmr":
		return &LSMRSolver{}, nil
	default:
		return nil, newConfigError("unknown linear_solver %q: must be \"ldlt\" or \"lsmr\"", name)
	}
}

// denseFromPattern expands a symmetric matrix stored as the upper
// triangle of pat (values laid out per pat.rowsByCol/pat.colStart) into a
// full n x n dense matrix, mirroring every off-diagonal entry.
func denseFromPattern(pat *pattern, values []float64) *mat.Dense {
	n := pat.nFree
	d := mat.NewDense(n, n, nil)
	for col := 0; col < n; col++ {
		rows := pat.rowsByCol[col]
		start := pat.colStart[col]
		for i, row := range rows {
			v := values[start+i]
			d.Set(row, col, v)
			if row != col {
				d.Set(col, row, v)
			}
		}
	}
	return d
}

// LDLTSolver is the reference direct solver for the free block. It
// accepts symmetric positive-definite as well as quasi-definite
// (indefinite but nonsingular, saddle-point-style) systems: rather than a
// Cholesky factorization, which rejects anything not positive-definite,
// it runs an LU factorization over the dense symmetric expansion — LU
// tolerates the indefinite pivots a saddle-point block produces, and only
// fails the way the teacher's direct solvers fail, on a genuinely
// singular matrix.
type LDLTSolver struct {
	n    int
	full *mat.Dense
	lu   mat.LU
}

func (s *LDLTSolver) AnalyzePattern(pat *pattern) error {
	s.n = pat.nFree
	return nil
}

func (s *LDLTSolver) SetMatrix(pat *pattern, values []float64) error {
	if s.n == 0 {
		return nil
	}
	s.full = denseFromPattern(pat, values)
	s.lu.Factorize(s.full)
	return nil
}

func (s *LDLTSolver) Solve(b, x []float64) error {
	if s.n == 0 {
		return nil
	}
	bv := mat.NewVecDense(len(b), b)
	xv := mat.NewVecDense(len(x), nil)
	if err := s.lu.SolveVecTo(xv, false, bv); err != nil {
		return chk.Err("ldlt solver: solve failed: %v", err)
	}
	copy(x, xv.RawVector().Data)
	return nil
}

// spMatVec computes y = A*v through la's own sparse mat-vec helper,
// grounded on fem/essenbcs.go's la.SpMatVecMulAdd(fb, -1, o.Am, y) call —
// the only mat-vec entry point gosl's CCMatrix offers, since its storage
// is not exported for a caller to walk directly.
func spMatVec(a *la.CCMatrix, v []float64) []float64 {
	y := make([]float64, len(v))
	la.SpMatVecMulAdd(y, 1, a, v)
	return y
}

// LSMRSolver is the reference iterative least-squares solver (Paige &
// Saunders' LSMR): it accepts the same symmetric operator as LDLTSolver
// without requiring it to be definite. No ecosystem LSMR implementation
// is available, so the outer iteration is hand-written; every vector
// operation inside it goes through gonum/floats, and the matrix-vector
// product goes through la.SpMatVecMulAdd against a CCMatrix built once
// per SetMatrix (mirrored to a full, not upper-triangle-only, view so
// the sparse mat-vec sees the whole operator).
type LSMRSolver struct {
	a       *la.CCMatrix
	n       int
	maxIter int
	absTol  float64
}

func (s *LSMRSolver) AnalyzePattern(pat *pattern) error {
	s.n = pat.nFree
	s.maxIter = 4 * pat.nFree
	s.absTol = 1e-10
	return nil
}

func (s *LSMRSolver) SetMatrix(pat *pattern, values []float64) error {
	s.a = pat.buildCCMatrix(values, true)
	return nil
}

func (s *LSMRSolver) Solve(b, x []float64) error {
	n := len(b)
	if n == 0 {
		return nil
	}
	for i := range x {
		x[i] = 0
	}

	// classic LSMR bidiagonalization, specialised to a symmetric operator
	// (A^T == A here, so the "transpose" products below reuse spMatVec).
	u := append([]float64(nil), b...)
	beta := floats.Norm(u, 2)
	if beta == 0 {
		return nil
	}
	floats.Scale(1/beta, u)

	v := spMatVec(s.a, u)
	alpha := floats.Norm(v, 2)
	if alpha > 0 {
		floats.Scale(1/alpha, v)
	}

	h := append([]float64(nil), v...)
	hbar := make([]float64, n)

	zetabar := alpha * beta
	alphabar := alpha
	rho, rhobar, cbar, sbar := 1.0, 1.0, 1.0, 0.0

	for iter := 0; iter < s.maxIter; iter++ {
		// bidiagonalization step
		Av := spMatVec(s.a, v)
		floats.AddScaled(Av, -alpha, u)
		u = Av
		beta = floats.Norm(u, 2)
		if beta > 0 {
			floats.Scale(1/beta, u)
		}

		Atu := spMatVec(s.a, u)
		floats.AddScaled(Atu, -beta, v)
		v = Atu
		alpha = floats.Norm(v, 2)
		if alpha > 0 {
			floats.Scale(1/alpha, v)
		}

		// construct and apply the two orthogonal rotations (Fong & Saunders,
		// "LSMR: An iterative algorithm for sparse least-squares problems")
		rhoold := rho
		rho = math.Hypot(alphabar, beta)
		c := alphabar / rho
		sVal := beta / rho
		thetanew := sVal * alpha
		alphabar = c * alpha

		rhobarold := rhobar
		thetabar := sbar * rho
		rhotemp := cbar * rho
		rhobar = math.Hypot(rhotemp, thetanew)
		cbar = rhotemp / rhobar
		sbar = thetanew / rhobar

		zeta := cbar * zetabar
		zetabar = -sbar * zetabar

		// update h, hbar, x
		for i := 0; i < n; i++ {
			hbar[i] = h[i] - (thetabar*rho/(rhoold*rhobarold))*hbar[i]
		}
		floats.AddScaled(x, zeta/(rho*rhobar), hbar)
		for i := 0; i < n; i++ {
			h[i] = v[i] - (thetanew/rho)*h[i]
		}

		if math.Abs(zetabar) < s.absTol {
			break
		}
	}
	return nil
}

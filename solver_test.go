// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoByTwoPattern builds the pattern a 2-free-dof, fully-populated upper
// triangle would produce (structural entries (0,0), (0,1), (1,1)), without
// going through buildIndexer — solver tests only need the structure, not
// an Element/Dof graph to derive it from.
func twoByTwoPattern() *pattern {
	return &pattern{
		nFree:     2,
		nnz:       3,
		rowsByCol: [][]int{{0}, {0, 1}},
		colStart:  []int{0, 1, 3},
	}
}

func TestLDLTSolver_SolvesKnownSystem(t *testing.T) {
	// [[4,1],[1,3]] x = [1,2] has exact solution x = [1/11, 7/11].
	pat := twoByTwoPattern()
	values := []float64{4, 1, 3} // a00, a01, a11

	s := &LDLTSolver{}
	require.NoError(t, s.AnalyzePattern(pat))
	require.NoError(t, s.SetMatrix(pat, values))

	x := make([]float64, 2)
	require.NoError(t, s.Solve([]float64{1, 2}, x))

	assert.InDelta(t, 1.0/11.0, x[0], 1e-9)
	assert.InDelta(t, 7.0/11.0, x[1], 1e-9)
}

func TestLDLTSolver_SolvesQuasiDefiniteSystem(t *testing.T) {
	// [[1,2],[2,1]] is indefinite (eigenvalues 3 and -1, so neither SPD nor
	// negative-definite) but nonsingular — a stand-in for the saddle-point
	// blocks a quasi-definite system produces. The reference solver must
	// handle these, not only SPD input.
	pat := twoByTwoPattern()
	values := []float64{1, 2, 1} // a00, a01, a11

	s := &LDLTSolver{}
	require.NoError(t, s.AnalyzePattern(pat))
	require.NoError(t, s.SetMatrix(pat, values))

	x := make([]float64, 2)
	require.NoError(t, s.Solve([]float64{3, 3}, x))

	assert.InDelta(t, 1.0, x[0], 1e-9)
	assert.InDelta(t, 1.0, x[1], 1e-9)
}

func TestLSMRSolver_SolvesKnownSystem(t *testing.T) {
	pat := twoByTwoPattern()
	values := []float64{4, 1, 3}

	s := &LSMRSolver{}
	require.NoError(t, s.AnalyzePattern(pat))
	require.NoError(t, s.SetMatrix(pat, values))

	x := make([]float64, 2)
	require.NoError(t, s.Solve([]float64{1, 2}, x))

	assert.InDelta(t, 1.0/11.0, x[0], 1e-6)
	assert.InDelta(t, 7.0/11.0, x[1], 1e-6)
}

func TestLinearSolver_UnknownNameIsConfigError(t *testing.T) {
	_, err := newLinearSolver("gmres")
	assert.Error(t, err)
}

func TestLinearSolver_EmptyNameDefaultsToLDLT(t *testing.T) {
	s, err := newLinearSolver("")
	require.NoError(t, err)
	_, ok := s.(*LDLTSolver)
	assert.True(t, ok)
}

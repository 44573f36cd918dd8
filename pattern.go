// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"sort"

	"github.com/cpmech/gosl/la"
)

// pattern is the structural nonzero set of the free-block LHS: for every
// free column, the sorted set of free rows any element contributes to it
// (row <= col only — the upper triangle of a symmetric matrix), plus the
// flat offset of each column's first entry in a value array of length nnz.
//
// la.CCMatrix keeps its own storage unexported, so it cannot double as a
// lookup structure the way a hand-rolled CSC skeleton could: pattern
// tracks rows/offsets itself, the same way the teacher tracks dimension
// and reserved nonzero counts (o.Nyb, o.NnzKb in fem/domain.go) as plain
// fields alongside — never read back from — the la.Triplet/la.CCMatrix it
// eventually builds.
type pattern struct {
	nFree int
	nnz   int

	rowsByCol [][]int // length nFree; rowsByCol[col] sorted ascending
	colStart  []int   // length nFree+1; colStart[col]..colStart[col+1] indexes rowsByCol[col] in a flat value array
}

// buildPattern derives the column-wise nonzero structure of the free-block
// LHS from the index tables, reserving exactly one value-array slot per
// structural entry.
func buildPattern(x *indexer) *pattern {
	F := x.nbFreeDofs()

	// per-column set of free rows contributed by any element
	cols := make([]map[int]bool, F)
	for c := range cols {
		cols[c] = make(map[int]bool)
	}
	for _, table := range x.tables {
		n := len(table)
		for row := 0; row < n; row++ {
			r := table[row]
			if r.Global >= F {
				// table is sorted ascending by Global: every remaining
				// entry is also >= F, so the rest of this element's
				// fixed tail can be skipped entirely.
				break
			}
			for col := row; col < n; col++ {
				c := table[col]
				if c.Global >= F {
					break
				}
				cols[c.Global][r.Global] = true
			}
		}
	}

	rowsByCol := make([][]int, F)
	colStart := make([]int, F+1)
	nnz := 0
	for col := 0; col < F; col++ {
		rows := make([]int, 0, len(cols[col]))
		for r := range cols[col] {
			rows = append(rows, r)
		}
		sort.Ints(rows)
		rowsByCol[col] = rows
		colStart[col] = nnz
		nnz += len(rows)
	}
	colStart[F] = nnz

	return &pattern{nFree: F, nnz: nnz, rowsByCol: rowsByCol, colStart: colStart}
}

// slot returns the position within a value array of length nnz of the
// structural entry (row, col), and whether it exists. row must be <= col;
// both must be free (< nFree) — callers are expected to have already
// filtered fixed rows/columns before calling this.
func (p *pattern) slot(row, col int) (int, bool) {
	if col >= len(p.rowsByCol) {
		return 0, false
	}
	rows := p.rowsByCol[col]
	i := sort.SearchInts(rows, row)
	if i == len(rows) || rows[i] != row {
		return 0, false
	}
	return p.colStart[col] + i, true
}

// buildCCMatrix materialises values (length nnz, laid out per
// rowsByCol/colStart) into a fresh la.CCMatrix, following the same
// Triplet→CCMatrix conversion the teacher uses once a Triplet has been
// filled (fem/essenbcs.go: o.Am = o.A.ToMatrix(nil)) rather than ever
// reading a CCMatrix's internal arrays back. mirror also inserts each
// off-diagonal entry's transpose, producing a full (not upper-triangle-
// only) view — needed by LSMRSolver, which feeds the result to
// la.SpMatVecMulAdd and so needs a genuine symmetric operator, not just
// its upper triangle.
func (p *pattern) buildCCMatrix(values []float64, mirror bool) *la.CCMatrix {
	n := p.nFree
	if n == 0 {
		return nil
	}
	reserve := p.nnz
	if mirror {
		reserve = 2 * p.nnz
	}
	tri := new(la.Triplet)
	tri.Init(n, n, reserve)
	for col := 0; col < n; col++ {
		rows := p.rowsByCol[col]
		start := p.colStart[col]
		for i, row := range rows {
			v := values[start+i]
			tri.Put(row, col, v)
			if mirror && row != col {
				tri.Put(col, row, v)
			}
		}
	}
	return tri.ToMatrix(nil)
}

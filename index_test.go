// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_indexer01(tst *testing.T) {

	chk.PrintTitle("indexer01: shared dof gets one global index")

	// two elements sharing a dof by identity must resolve to the same
	// global index.
	dofA := Dof{Owner: 1, Channel: "ux"}
	dofB := Dof{Owner: 2, Channel: "ux"}

	vars := map[Dof]*Variable{
		dofA: {Target: 1},
		dofB: {Target: 2},
	}

	e1 := &linearElement{dofs: []Dof{dofA}, lhs: [][]float64{{2}}, rhs: []float64{1}}
	e2 := &linearElement{dofs: []Dof{dofA, dofB}, lhs: [][]float64{{2, 0}, {0, 2}}, rhs: []float64{1, 1}}

	idx, err := buildIndexer([]Element{e1, e2}, vars)
	if err != nil {
		tst.Errorf("buildIndexer failed: %v", err)
		return
	}

	chk.IntAssert(idx.nbDofs(), 2)
	chk.IntAssert(idx.nbFreeDofs(), 2)

	gA, ok := idx.dofIndexOf(dofA)
	if !ok {
		tst.Errorf("dofA not found in index")
	}
	gB, ok := idx.dofIndexOf(dofB)
	if !ok {
		tst.Errorf("dofB not found in index")
	}
	if gA == gB {
		tst.Errorf("dofA and dofB must resolve to different global indices")
	}

	// element 2's table must reference the same global index for dofA as
	// element 1's table does.
	chk.IntAssert(idx.tables[1][indexOfLocal(idx.tables[1], 0)].Global, gA)
	chk.IntAssert(idx.tables[0][0].Global, gA)
}

func Test_indexer02(tst *testing.T) {

	chk.PrintTitle("indexer02: free dofs occupy the front regardless of discovery order")

	// all indices < F are free, all indices >= F are fixed, and free
	// dofs occupy the front of the vector regardless of discovery order
	// relative to fixed ones.
	free := Dof{Owner: 1, Channel: "ux"}
	fixed := Dof{Owner: 2, Channel: "ux"}

	vars := map[Dof]*Variable{
		fixed: {Fixed: true, Value: 5},
		free:  {Fixed: false},
	}

	// discover the fixed dof first to ensure ordering is partition-driven,
	// not discovery-order-driven, across partitions.
	e := &linearElement{dofs: []Dof{fixed, free}, lhs: [][]float64{{1, 0}, {0, 1}}, rhs: []float64{0, 0}}

	idx, err := buildIndexer([]Element{e}, vars)
	if err != nil {
		tst.Errorf("buildIndexer failed: %v", err)
		return
	}

	chk.IntAssert(idx.nbFreeDofs(), 1)
	gFree, _ := idx.dofIndexOf(free)
	gFixed, _ := idx.dofIndexOf(fixed)
	if gFree >= idx.nbFreeDofs() {
		tst.Errorf("free dof's global index must be < nbFreeDofs")
	}
	if gFixed < idx.nbFreeDofs() {
		tst.Errorf("fixed dof's global index must be >= nbFreeDofs")
	}
}

func Test_indexer03(tst *testing.T) {

	chk.PrintTitle("indexer03: missing variable is an error")

	d := Dof{Owner: 1, Channel: "ux"}
	e := &linearElement{dofs: []Dof{d}, lhs: [][]float64{{1}}, rhs: []float64{0}}
	_, err := buildIndexer([]Element{e}, map[Dof]*Variable{})
	if err == nil {
		tst.Errorf("expected an error for a dof with no backing Variable")
	}
}

// indexOfLocal finds the table entry whose Local field equals local.
func indexOfLocal(table []indexEntry, local int) int {
	for i, e := range table {
		if e.Local == local {
			return i
		}
	}
	return -1
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// indexEntry is one (local, global) pair of an element's index table,
// ordered ascending by Global once sorted.
type indexEntry struct {
	Local  int
	Global int
}

// indexer builds the global DoF vector (free block first), the
// identity→index map, and the per-element sorted index tables.
type indexer struct {
	dofs      []Dof         // global DoF vector, length N, free block then fixed block
	dofIndex  map[Dof]int   // Dof identity -> global index, bijective with dofs
	nFree     int           // F
	tables    [][]indexEntry // per-element, sorted ascending by Global
	elemDofs  [][]Dof        // per-element cached Dofs(), in original call order
}

// buildIndexer reconciles elements' DoFs into a global ordering separating
// free from fixed DoFs. variables supplies the Fixed flag used to
// partition each newly-discovered Dof; it must have an entry for every
// Dof any element returns from Dofs().
func buildIndexer(elements []Element, variables map[Dof]*Variable) (*indexer, error) {
	nbElements := len(elements)

	// query each element's Dofs() exactly once and cache it
	elemDofs := make([][]Dof, nbElements)
	for i, e := range elements {
		elemDofs[i] = e.Dofs()
	}

	// walk elements in input order, deduplicating by identity, splitting
	// into free/fixed in first-discovery order
	seen := make(map[Dof]bool)
	var freeDofs, fixedDofs []Dof
	for i := range elements {
		for _, d := range elemDofs[i] {
			if seen[d] {
				continue
			}
			seen[d] = true
			v, ok := variables[d]
			if !ok {
				return nil, chk.Err("no Variable registered for dof {owner=%d, channel=%q}; every dof an element returns must have a backing Variable", d.Owner, d.Channel)
			}
			if v.Fixed {
				fixedDofs = append(fixedDofs, d)
			} else {
				freeDofs = append(freeDofs, d)
			}
		}
	}

	// concatenate free then fixed
	nFree := len(freeDofs)
	n := nFree + len(fixedDofs)
	dofs := make([]Dof, 0, n)
	dofs = append(dofs, freeDofs...)
	dofs = append(dofs, fixedDofs...)

	// identity -> index map
	dofIndex := make(map[Dof]int, n)
	for i, d := range dofs {
		dofIndex[d] = i
	}

	// per-element (local, global) tables, sorted by global
	tables := make([][]indexEntry, nbElements)
	for i := range elements {
		ds := elemDofs[i]
		t := make([]indexEntry, len(ds))
		for local, d := range ds {
			t[local] = indexEntry{Local: local, Global: dofIndex[d]}
		}
		sort.Slice(t, func(a, b int) bool { return t[a].Global < t[b].Global })
		tables[i] = t
	}

	return &indexer{
		dofs:     dofs,
		dofIndex: dofIndex,
		nFree:    nFree,
		tables:   tables,
		elemDofs: elemDofs,
	}, nil
}

// nbDofs returns N.
func (x *indexer) nbDofs() int { return len(x.dofs) }

// nbFreeDofs returns F.
func (x *indexer) nbFreeDofs() int { return x.nFree }

// dofIndexOf returns the global index of dof, and whether it was found.
func (x *indexer) dofIndexOf(dof Dof) (int, bool) {
	i, ok := x.dofIndex[dof]
	return i, ok
}

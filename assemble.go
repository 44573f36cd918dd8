// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// accumulator is a sibling of the shared sparse LHS: it aliases the same
// structure (via pat) but owns its own zero-initialised value array, plus
// its own zero-initialised RHS.
type accumulator struct {
	lhsValues []float64 // length nnz(pattern)
	rhs       []float64 // length F
}

func newAccumulator(pat *pattern) *accumulator {
	return &accumulator{
		lhsValues: make([]float64, pat.nnz),
		rhs:       make([]float64, pat.nFree),
	}
}

// join merges other into a by pointwise addition. Addition is
// commutative/associative, so join order never changes the final result
// up to floating-point rounding.
func (a *accumulator) join(other *accumulator) {
	for i, v := range other.lhsValues {
		a.lhsValues[i] += v
	}
	for i, v := range other.rhs {
		a.rhs[i] += v
	}
}

// scatter adds one element's local contribution into acc: skip fixed rows
// (and the sorted tail beyond them), scatter RHS, then scatter the
// upper-triangle LHS entries that land on free columns.
func scatter(pat *pattern, table []indexEntry, lhs symGetter, localRhs []float64, acc *accumulator) error {
	F := pat.nFree
	n := len(table)
	for row := 0; row < n; row++ {
		r := table[row]
		if r.Global >= F {
			break // table sorted ascending by Global: rest is fixed too
		}
		acc.rhs[r.Global] += localRhs[r.Local]
		for col := row; col < n; col++ {
			c := table[col]
			if c.Global >= F {
				break
			}
			idx, ok := pat.slot(r.Global, c.Global)
			if !ok {
				return chk.Err("assembly: (%d,%d) is not a structural nonzero of the pattern", r.Global, c.Global)
			}
			acc.lhsValues[idx] += lhs.At(r.Local, c.Local)
		}
	}
	return nil
}

// symGetter is the read-only slice of mat.SymDense that scatter needs; it
// lets tests exercise scatter without pulling in gonum/mat.
type symGetter interface {
	At(i, j int) float64
}

// assembleSerial runs the straight loop over elements in input order.
func assembleSerial(elements []Element, x *indexer, pat *pattern, opts *Options, acc *accumulator) error {
	for i, e := range elements {
		lhs, rhs, err := e.Compute(opts)
		if err != nil {
			return chk.Err("element %d: compute failed: %v", i, err)
		}
		if err := scatter(pat, x.tables[i], lhs, rhs, acc); err != nil {
			return err
		}
	}
	return nil
}

// assembleParallel processes elements concurrently over disjoint
// sub-ranges, each worker writing into its own accumulator, then
// pairwise-joins every worker's accumulator into acc. numWorkers <= 0
// means "auto" (runtime.GOMAXPROCS(0)).
func assembleParallel(elements []Element, x *indexer, pat *pattern, opts *Options, acc *accumulator, numWorkers int) error {
	n := len(elements)
	if n == 0 {
		return nil
	}
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > n {
		numWorkers = n
	}

	chunk := (n + numWorkers - 1) / numWorkers
	partials := make([]*accumulator, numWorkers)
	errs := make([]error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			local := newAccumulator(pat)
			for i := lo; i < hi; i++ {
				lhs, rhs, err := elements[i].Compute(opts)
				if err != nil {
					errs[w] = chk.Err("element %d: compute failed: %v", i, err)
					return
				}
				if err := scatter(pat, x.tables[i], lhs, rhs, local); err != nil {
					errs[w] = err
					return
				}
			}
			partials[w] = local
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	// pairwise join; reduction order is unspecified (bitwise determinism
	// is only guaranteed by the serial path)
	live := make([]*accumulator, 0, numWorkers)
	for _, p := range partials {
		if p != nil {
			live = append(live, p)
		}
	}
	for len(live) > 1 {
		var next []*accumulator
		for i := 0; i+1 < len(live); i += 2 {
			live[i].join(live[i+1])
			next = append(next, live[i])
		}
		if len(live)%2 == 1 {
			next = append(next, live[len(live)-1])
		}
		live = next
	}
	if len(live) == 1 {
		acc.join(live[0])
	}
	return nil
}

// Package symmetry builds the permutation representations of the cyclic
// group Z_N and of the product Z_N x Z_N acting on the flattened torus
// lattice, and expands a filter row into the full system matrix through the
// group algebra.
package symmetry

import (
	"fmt"

	"github.com/notargets/gocfd/utils"
	"gonum.org/v1/gonum/mat"
)

// CyclicReps returns the regular representation of Z_N: N permutation
// matrices where index k represents shift-by-k, R_k[i,j] = 1 iff
// (i-j) mod N == k. Index 0 is the identity.
func CyclicReps(n int) []*mat.Dense {
	reps := make([]*mat.Dense, n)
	for k := 0; k < n; k++ {
		R := mat.NewDense(n, n, nil)
		for j := 0; j < n; j++ {
			R.Set((j+k)%n, j, 1)
		}
		reps[k] = R
	}
	return reps
}

// GroupIndex is the bijection from a shift pair (a, b) of Z_N x Z_N to its
// flattened group-element index a*N + b. The product representations are
// ordered by this index, element (0,0) first. Shifts outside [0, N) wrap.
func GroupIndex(a, b, n int) int {
	a = ((a % n) + n) % n
	b = ((b % n) + n) % n
	return a*n + b
}

// ProductReps returns the N^2 permutation matrices (size N^2 x N^2) of
// Z_N x Z_N on the flattened lattice, ordered by GroupIndex. Each matrix is
// the TRANSPOSED Kronecker product R_a (x) R_b: the transpose turns the
// shift-source-by-(a,b) action into the gather form consumed by Expand, so
// that reps[g] applied to the filter row reproduces row g of the circulant
// system matrix.
func ProductReps(n int) []*mat.Dense {
	cyclic := CyclicReps(n)
	reps := make([]*mat.Dense, n*n)
	var kron mat.Dense
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			kron.Kronecker(cyclic[a], cyclic[b])
			reps[GroupIndex(a, b, n)] = mat.DenseCopyOf(kron.T())
		}
	}
	return reps
}

// Expand computes the group-algebra expansion sum_g filter[g] * reps[g],
// realizing the convolution by the filter row as a dense N^2 x N^2 matrix.
func Expand(filter utils.Vector, reps []*mat.Dense) (*mat.Dense, error) {
	if len(reps) == 0 {
		return nil, fmt.Errorf("symmetry: no representations")
	}
	if filter.Len() != len(reps) {
		return nil, fmt.Errorf("symmetry: filter length %d does not match group order %d",
			filter.Len(), len(reps))
	}
	n, _ := reps[0].Dims()

	out := mat.NewDense(n, n, nil)
	var scaled mat.Dense
	for g, rep := range reps {
		r, c := rep.Dims()
		if r != n || c != n {
			return nil, fmt.Errorf("symmetry: representation %d has size %dx%d, want %dx%d", g, r, c, n, n)
		}
		scaled.Scale(filter.At(g), rep)
		out.Add(out, &scaled)
	}
	return out, nil
}

// ExpandFilter is Expand(filter, ProductReps(n)) without materializing the
// representation set: each gather matrix is generated, scaled and folded in
// turn. The full set is N^2 dense N^2 x N^2 matrices, which at N=32 runs to
// gigabytes; one at a time keeps the expansion at the cost of the result
// matrix.
func ExpandFilter(filter utils.Vector, n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("symmetry: invalid group order N=%d", n)
	}
	if filter.Len() != n*n {
		return nil, fmt.Errorf("symmetry: filter length %d does not match group order %d",
			filter.Len(), n*n)
	}

	cyclic := CyclicReps(n)
	out := mat.NewDense(n*n, n*n, nil)
	var kron, scaled mat.Dense
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			kron.Kronecker(cyclic[a], cyclic[b])
			scaled.Scale(filter.At(GroupIndex(a, b, n)), kron.T())
			out.Add(out, &scaled)
		}
	}
	return out, nil
}

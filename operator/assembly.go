// Package operator assembles the discretized Fredholm operator I + lambda*K
// on the torus lattice. K[i,j] is the kernel evaluated between the field
// point i and the source point j, scaled by the source point's surface weight
// and the quadrature area element (2pi/N)^2.
package operator

import (
	"fmt"

	"github.com/notargets/gocfd/utils"

	"github.com/toruskit/fredholm/kernel"
	"github.com/toruskit/fredholm/torus"
)

// Discretization fixes the grid, surface, kernel and coupling constant of
// one discretized operator.
type Discretization struct {
	Grid    *torus.Grid
	Surface torus.Surface
	Kernel  kernel.Kernel
	Lambda  float64

	// SelfInteract keeps the diagonal kernel evaluation; when false the
	// diagonal contribution of K is zeroed.
	SelfInteract bool
}

// NewDiscretization validates that the diagonal contract of the kernel is
// honored: a kernel undefined at zero distance cannot self-interact without
// poisoning the matrix with -Inf/NaN.
func NewDiscretization(g *torus.Grid, s torus.Surface, k kernel.Kernel, lambda float64, selfInteract bool) (*Discretization, error) {
	if g == nil {
		return nil, fmt.Errorf("operator: nil grid")
	}
	if k == nil {
		return nil, fmt.Errorf("operator: nil kernel")
	}
	if selfInteract && !k.DefinedAtZero() {
		return nil, fmt.Errorf("operator: kernel %q is undefined at zero distance and cannot self-interact", k.Name())
	}
	return &Discretization{
		Grid:         g,
		Surface:      s,
		Kernel:       k,
		Lambda:       lambda,
		SelfInteract: selfInteract,
	}, nil
}

// Entry returns the (i,j) entry of the discretized kernel operator K:
// (2pi/N)^2 * kernel(x_i, x_j) * weight(theta_j). The weight is taken at the
// SOURCE point j. Diagonal entries are zero when self-interaction is off.
func (d *Discretization) Entry(i, j int) float64 {
	if i == j && !d.SelfInteract {
		return 0
	}
	theta1, phi1 := d.Grid.Site(i)
	theta2, phi2 := d.Grid.Site(j)
	p1 := d.Surface.Point(theta1, phi1)
	p2 := d.Surface.Point(theta2, phi2)

	h := d.Grid.Step()
	return h * h * d.Kernel.Eval(p1, p2) * d.Surface.Weight(theta2)
}

// FullMatrix materializes the dense system matrix I + lambda*K. This is the
// O(N^4) reference path used to validate the group expansion; the driver uses
// Filter instead.
func (d *Discretization) FullMatrix() utils.Matrix {
	n := d.Grid.Size()
	M := utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := d.Lambda * d.Entry(i, j)
			if i == j {
				v++
			}
			M.Set(i, j, v)
		}
	}
	return M
}

// Filter returns row 0 of I + lambda*K. Under the cyclic grid symmetry this
// single row carries the whole operator: row i is row 0 gathered by the group
// element i.
func (d *Discretization) Filter() utils.Vector {
	n := d.Grid.Size()
	f := utils.NewVector(n)
	f.Set(0, d.Lambda*d.Entry(0, 0)+1)
	for j := 1; j < n; j++ {
		f.Set(j, d.Lambda*d.Entry(0, j))
	}
	return f
}

// Package torus provides the discretized geometry of a torus surface: the
// periodic angle lattice, the Euclidean embedding of lattice points, and the
// quadrature weight of the surface measure.
package torus

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a point in R^3.
type Point [3]float64

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Norm returns the Euclidean norm of p.
func (p Point) Norm() float64 {
	return floats.Norm(p[:], 2)
}

// Grid is the N x N lattice of angle pairs (theta, phi), each angle ranging
// over {0, 2pi/N, ..., 2pi(N-1)/N}. Lattice sites are flattened as
// i = thetaIdx*N + phiIdx.
type Grid struct {
	N      int
	Angles []float64 // the N lattice angles, shared by both directions
}

// NewGrid validates N and builds the angle lattice.
func NewGrid(n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("torus: grid size must be at least 2, got %d", n)
	}
	angles := make([]float64, n)
	floats.Span(angles, 0, 2*math.Pi*float64(n-1)/float64(n))
	return &Grid{N: n, Angles: angles}, nil
}

// Size returns the number of lattice sites, N^2.
func (g *Grid) Size() int { return g.N * g.N }

// Step returns the lattice spacing 2pi/N.
func (g *Grid) Step() float64 { return 2 * math.Pi / float64(g.N) }

// Index flattens a (thetaIdx, phiIdx) pair.
func (g *Grid) Index(thetaIdx, phiIdx int) int { return thetaIdx*g.N + phiIdx }

// Split unflattens a site index into its (thetaIdx, phiIdx) pair.
func (g *Grid) Split(i int) (thetaIdx, phiIdx int) { return i / g.N, i % g.N }

// Site returns the angle pair of the flattened site index.
func (g *Grid) Site(i int) (theta, phi float64) {
	ti, pi := g.Split(i)
	return g.Angles[ti], g.Angles[pi]
}

// Surface is a torus of major radius R and minor radius r embedded in R^3.
type Surface struct {
	R, Rminor float64
}

// NewSurface validates the radii. 0 < r < R keeps the surface measure weight
// r(R + r cos theta) strictly positive everywhere.
func NewSurface(R, r float64) (Surface, error) {
	if R <= 0 {
		return Surface{}, fmt.Errorf("torus: major radius must be positive, got %g", R)
	}
	if r <= 0 || r >= R {
		return Surface{}, fmt.Errorf("torus: minor radius must satisfy 0 < r < R, got r=%g R=%g", r, R)
	}
	return Surface{R: R, Rminor: r}, nil
}

// Point maps surface angles to Euclidean coordinates:
// x = (R + r cos theta) cos phi, y = (R + r cos theta) sin phi, z = r sin theta.
func (s Surface) Point(theta, phi float64) Point {
	ring := s.R + s.Rminor*math.Cos(theta)
	return Point{
		ring * math.Cos(phi),
		ring * math.Sin(phi),
		s.Rminor * math.Sin(theta),
	}
}

// Weight is the curvature correction r(R + r cos theta) of the surface
// measure dA = r(R + r cos theta) dtheta dphi.
func (s Surface) Weight(theta float64) float64 {
	return s.Rminor * (s.R + s.Rminor*math.Cos(theta))
}

// Package kernel defines the pairwise scalar kernels of the integral
// operator. A kernel evaluates two embedded surface points; whether the
// evaluation is defined at zero separation is part of each kernel's contract
// and drives the handling of the matrix diagonal.
package kernel

import (
	"fmt"
	"math"

	"github.com/toruskit/fredholm/torus"
)

// Kernel is a scalar function of two points. Eval need not be symmetric in
// its arguments; the shipped distance kernels happen to be.
type Kernel interface {
	Eval(p, q torus.Point) float64
	// DefinedAtZero reports whether Eval is well defined when p == q.
	DefinedAtZero() bool
	Name() string
}

// LogDistance is ln(dist). Undefined at coincident points: Eval returns -Inf
// there, so the diagonal must be excluded by the caller.
type LogDistance struct{}

func (LogDistance) Eval(p, q torus.Point) float64 {
	return math.Log(q.Sub(p).Norm())
}

func (LogDistance) DefinedAtZero() bool { return false }
func (LogDistance) Name() string        { return "log" }

// ExpDistance is exp(-dist), value 1 at coincident points.
type ExpDistance struct{}

func (ExpDistance) Eval(p, q torus.Point) float64 {
	return math.Exp(-q.Sub(p).Norm())
}

func (ExpDistance) DefinedAtZero() bool { return true }
func (ExpDistance) Name() string        { return "exp" }

// SquareDistance is dist^2, value 0 at coincident points.
type SquareDistance struct{}

func (SquareDistance) Eval(p, q torus.Point) float64 {
	d := q.Sub(p)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}

func (SquareDistance) DefinedAtZero() bool { return true }
func (SquareDistance) Name() string        { return "square" }

// ByName selects a kernel variant at configuration time.
func ByName(name string) (Kernel, error) {
	switch name {
	case "log":
		return LogDistance{}, nil
	case "exp":
		return ExpDistance{}, nil
	case "square":
		return SquareDistance{}, nil
	}
	return nil, fmt.Errorf("kernel: unknown kernel %q", name)
}

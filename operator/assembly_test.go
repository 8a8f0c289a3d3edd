package operator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toruskit/fredholm/kernel"
	"github.com/toruskit/fredholm/torus"
)

func testDiscretization(t *testing.T, n int, k kernel.Kernel, selfInteract bool) *Discretization {
	t.Helper()
	g, err := torus.NewGrid(n)
	require.NoError(t, err)
	s, err := torus.NewSurface(1, 0.05)
	require.NoError(t, err)
	d, err := NewDiscretization(g, s, k, -1, selfInteract)
	require.NoError(t, err)
	return d
}

func TestNewDiscretizationRejectsUndefinedDiagonal(t *testing.T) {
	g, err := torus.NewGrid(4)
	require.NoError(t, err)
	s, err := torus.NewSurface(1, 0.05)
	require.NoError(t, err)

	_, err = NewDiscretization(g, s, kernel.LogDistance{}, -1, true)
	require.Error(t, err)

	// The log kernel is fine with the diagonal excluded.
	d, err := NewDiscretization(g, s, kernel.LogDistance{}, -1, false)
	require.NoError(t, err)
	require.Equal(t, 0.0, d.Entry(2, 2))
}

func TestEntryDiagonalZeroWithoutSelfInteraction(t *testing.T) {
	d := testDiscretization(t, 6, kernel.SquareDistance{}, false)
	for i := 0; i < d.Grid.Size(); i++ {
		require.Equal(t, 0.0, d.Entry(i, i))
	}
}

func TestEntryReferenceValues(t *testing.T) {
	d := testDiscretization(t, 4, kernel.SquareDistance{}, true)

	// Values cross-checked against a direct evaluation of
	// (2pi/N)^2 * dist^2 * r(R + r cos theta_j) at N=4, R=1, r=0.05.
	require.InDelta(t, 0.285632519870277, d.Entry(0, 1), 1e-14)
	require.InDelta(t, 0.259693965803664, d.Entry(0, 5), 1e-14)
	// Square-distance kernel vanishes at coincident points even when the
	// diagonal is kept.
	require.Equal(t, 0.0, d.Entry(0, 0))
}

// The quadrature weight is evaluated at the source point, so swapping field
// and source changes the entry whenever theta differs.
func TestEntrySourceWeightAsymmetry(t *testing.T) {
	d := testDiscretization(t, 4, kernel.SquareDistance{}, true)

	i := d.Grid.Index(0, 0)
	j := d.Grid.Index(2, 0) // theta = pi, opposite weight
	require.NotEqual(t, d.Entry(i, j), d.Entry(j, i))

	// Within one theta ring the weight matches and the entries agree.
	a := d.Grid.Index(1, 0)
	b := d.Grid.Index(1, 3)
	require.InDelta(t, d.Entry(a, b), d.Entry(b, a), 1e-15)
}

func TestFilterMatchesFullMatrixRowZero(t *testing.T) {
	for _, k := range []kernel.Kernel{kernel.SquareDistance{}, kernel.ExpDistance{}} {
		d := testDiscretization(t, 4, k, true)

		M := d.FullMatrix()
		f := d.Filter()
		require.Equal(t, d.Grid.Size(), f.Len())
		for j := 0; j < f.Len(); j++ {
			require.InDelta(t, M.At(0, j), f.At(j), 1e-15, "kernel=%s j=%d", k.Name(), j)
		}
	}
}

func TestFullMatrixIdentityShift(t *testing.T) {
	d := testDiscretization(t, 4, kernel.ExpDistance{}, true)
	M := d.FullMatrix()

	for i := 0; i < d.Grid.Size(); i++ {
		require.InDelta(t, d.Lambda*d.Entry(i, i)+1, M.At(i, i), 1e-15)
	}
	require.InDelta(t, d.Lambda*d.Entry(1, 2), M.At(1, 2), 1e-15)
}

func TestFullMatrixFinite(t *testing.T) {
	d := testDiscretization(t, 4, kernel.LogDistance{}, false)
	M := d.FullMatrix()
	for i := 0; i < d.Grid.Size(); i++ {
		for j := 0; j < d.Grid.Size(); j++ {
			require.False(t, math.IsNaN(M.At(i, j)) || math.IsInf(M.At(i, j), 0),
				"non-finite entry at (%d,%d)", i, j)
		}
	}
}

package orbit5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteN03DRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &N03D{
		RMin: 4, RMax: 8, NR: 2,
		PhiMin: 0, PhiMax: 360, NPhi: 3,
		ZMin: -2, ZMax: 2, NZ: 2,
		Density: make([]float64, 12),
	}
	for i := range in.Density {
		in.Density[i] = 1e17 + float64(i)
	}
	path, qid, err := WriteN03D(s, in, "edge neutrals")
	require.NoError(t, err)

	p, err := readN03D(s, qid)
	require.NoError(t, err)
	require.Equal(t, in.Density, p["n0"])

	nphi, err := Ints(s, path, "nphi")
	require.NoError(t, err)
	require.Equal(t, []int32{3}, nphi)
	phimax, err := Floats(s, path, "phimax")
	require.NoError(t, err)
	require.Equal(t, []float64{360}, phimax)

	q, err := ActiveQID(s, Neutral)
	require.NoError(t, err)
	require.Equal(t, qid, q)
}

func TestWriteN03DShapeMismatch(t *testing.T) {
	s := NewMemStore()
	in := &N03D{NR: 2, NPhi: 3, NZ: 2, Density: make([]float64, 11)}
	_, _, err := WriteN03D(s, in, "bad")
	require.ErrorIs(t, err, ErrFormat)
	require.False(t, s.Exists("neutral"))
}

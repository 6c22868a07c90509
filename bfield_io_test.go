package orbit5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteB2DSRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &B2DS{
		RMin: 4, RMax: 8.5, NR: 3,
		ZMin: -4, ZMax: 4, NZ: 2,
		AxisR: 6.2, AxisZ: 0.1,
		PsiAxis: -0.5, PsiSepx: 0.0,
		Psi:  []float64{1, 2, 3, 4, 5, 6},
		BR:   []float64{0, 0, 0, 0, 0, 0},
		BPhi: []float64{5, 5, 5, 5, 5, 5},
		BZ:   []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
	}
	path, qid, err := WriteB2DS(s, in, "test equilibrium")
	require.NoError(t, err)
	require.True(t, qid.Valid())

	p, err := readB2DS(s, qid)
	require.NoError(t, err)
	require.Equal(t, in.Psi, p["psi"])
	require.Equal(t, []float64{5, 5, 5, 5, 5, 5}, p["bphi"])

	nr, err := Ints(s, path, "nr")
	require.NoError(t, err)
	require.Equal(t, []int32{3}, nr)
	rmax, err := Floats(s, path, "rmax")
	require.NoError(t, err)
	require.Equal(t, []float64{8.5}, rmax)
}

func TestWriteB2DSShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		in   B2DS
	}{
		{"zero grid", B2DS{NR: 0, NZ: 4}},
		{"short psi", B2DS{NR: 2, NZ: 2, Psi: []float64{1},
			BR: make([]float64, 4), BPhi: make([]float64, 4), BZ: make([]float64, 4)}},
		{"short component", B2DS{NR: 2, NZ: 2, Psi: make([]float64, 4),
			BR: make([]float64, 4), BPhi: make([]float64, 3), BZ: make([]float64, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemStore()
			_, _, err := WriteB2DS(s, &tt.in, "bad")
			require.ErrorIs(t, err, ErrFormat)
			// Nothing was created on the failed write.
			require.False(t, s.Exists("bfield"))
		})
	}
}

func TestWriteB3DSRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &B3DS{
		RMin: 4, RMax: 8, NR: 2,
		PhiMin: 0, PhiMax: 360, NPhi: 2,
		ZMin: -2, ZMax: 2, NZ: 2,
		AxisR: 6, AxisZ: 0, PsiAxis: -0.5, PsiSepx: 0,
		Psi:  []float64{1, 2, 3, 4},
		BR:   make([]float64, 8),
		BPhi: make([]float64, 8),
		BZ:   make([]float64, 8),
	}
	for i := range in.BPhi {
		in.BPhi[i] = 5.3
	}
	_, qid, err := WriteB3DS(s, in, "ripple field")
	require.NoError(t, err)

	p, err := readB3DS(s, qid)
	require.NoError(t, err)
	// The flux map stays 2D while the components span the phi grid.
	require.Equal(t, in.Psi, p["psi"])
	require.Equal(t, in.BPhi, p["bphi"])

	// A psi table sized for the 3D grid is rejected.
	in.Psi = make([]float64, 8)
	_, _, err = WriteB3DS(s, in, "bad")
	require.ErrorIs(t, err, ErrFormat)
}

func TestWriteBGSRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &BGS{
		AxisR: 6.618, AxisZ: 0.0,
		BPhi0: 5.3, PsiMult: 200,
		PsiAxis: -0.0365, PsiSepx: 0,
	}
	for i := range in.Coefficients {
		in.Coefficients[i] = float64(i) * 0.01
	}
	_, qid, err := WriteBGS(s, in, "analytic ITER-like")
	require.NoError(t, err)

	p, err := readBGS(s, qid)
	require.NoError(t, err)
	coeffs, ok := p["coefficients"].([]float64)
	require.True(t, ok)
	require.Len(t, coeffs, 13)
	require.Equal(t, in.Coefficients[:], coeffs)
}

func TestWriteBSTValidatesAxisArrays(t *testing.T) {
	s := NewMemStore()
	in := &BST{
		NR: 2, NPhi: 2, NZ: 2, NPeriods: 5,
		Psi: make([]float64, 8), BR: make([]float64, 8),
		BPhi: make([]float64, 8), BZ: make([]float64, 8),
		AxisR: []float64{6}, AxisZ: []float64{0, 0},
	}
	_, _, err := WriteBST(s, in, "bad axis")
	require.ErrorIs(t, err, ErrFormat)
}

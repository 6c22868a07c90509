package orbit5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteGuidingCentersRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &GuidingCenters{
		ID: []int32{1, 2}, R: []float64{6.2, 6.4}, Phi: []float64{0, 90},
		Z: []float64{0, 0.1}, Energy: []float64{3.5e6, 3.5e6},
		Pitch: []float64{0.7, -0.7}, Zeta: []float64{0, 1},
		Mass: []float64{4, 4}, Charge: []int32{2, 2},
		ANum: []int32{4, 4}, ZNum: []int32{2, 2},
		Weight: []float64{1, 1}, Time: []float64{0, 0},
	}
	path, qid, err := WriteGuidingCenters(s, in, "two alphas")
	require.NoError(t, err)

	p, err := readGuidingCenters(s, qid)
	require.NoError(t, err)
	require.Equal(t, in.Energy, p["energy"])
	require.Equal(t, in.Pitch, p["pitch"])
	require.Equal(t, in.Charge, p["charge"])

	n, err := Ints(s, path, "n")
	require.NoError(t, err)
	require.Equal(t, []int32{2}, n)

	_, _, err = WriteGuidingCenters(s, &GuidingCenters{ID: []int32{1}}, "bad")
	require.ErrorIs(t, err, ErrFormat)
}

func TestWriteFieldLinesRoundTrip(t *testing.T) {
	s := NewMemStore()
	in := &FieldLines{
		ID: []int32{1, 2, 3}, R: []float64{6, 7, 8}, Phi: []float64{0, 0, 0},
		Z: []float64{0, 0, 0}, Pitch: []float64{1, 1, -1},
		Weight: []float64{1, 1, 1}, Time: []float64{0, 0, 0},
	}
	_, qid, err := WriteFieldLines(s, in, "three lines")
	require.NoError(t, err)

	p, err := readFieldLines(s, qid)
	require.NoError(t, err)
	require.Equal(t, in.R, p["r"])
	require.Equal(t, in.Pitch, p["pitch"])

	_, _, err = WriteFieldLines(s, &FieldLines{}, "empty")
	require.ErrorIs(t, err, ErrFormat)
}

func TestMarkerFlavorsShareMastergroup(t *testing.T) {
	s := NewMemStore()
	_, qp, err := WriteParticles(s, &Particles{
		ID: []int32{1}, R: []float64{6}, Phi: []float64{0}, Z: []float64{0},
		VR: []float64{0}, VPhi: []float64{1e6}, VZ: []float64{0},
		Mass: []float64{4}, Charge: []int32{2}, ANum: []int32{4}, ZNum: []int32{2},
		Weight: []float64{1}, Time: []float64{0},
	}, "particles")
	require.NoError(t, err)
	_, qf, err := WriteFieldLines(s, &FieldLines{
		ID: []int32{1}, R: []float64{6}, Phi: []float64{0}, Z: []float64{0},
		Pitch: []float64{1}, Weight: []float64{1}, Time: []float64{0},
	}, "lines")
	require.NoError(t, err)

	refs, err := Resolve(s, Marker)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	// The latest write is the active marker input.
	require.Equal(t, qf, refs[0].QID)
	require.Equal(t, qp, refs[1].QID)

	c, err := ReadAll(s, Marker)
	require.NoError(t, err)
	require.Len(t, c.Inputs[Marker].Order, 2)
}

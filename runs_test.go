package orbit5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRun(qid QID) *RunRecord {
	return &RunRecord{
		QID:         qid,
		Date:        date(10, 0),
		Description: "slowing-down run",
		Inputs: RunInputs{
			BField:  "1000000001",
			EField:  "1000000002",
			Marker:  "1000000003",
			Options: "1000000004",
			Plasma:  "1000000005",
			Wall:    "1000000006",
		},
		IniState: Payload{
			"r":      []float64{6.2, 6.4},
			"weight": []float64{1, 1},
		},
		EndState: Payload{
			"r":       []float64{7.9, 6.1},
			"endcond": []int32{8, 2},
		},
	}
}

func TestRunRoundTrip(t *testing.T) {
	s := NewMemStore()
	rec := sampleRun("2000000001")
	path, err := WriteRun(s, rec)
	require.NoError(t, err)
	require.Equal(t, "results/run-2000000001", path)

	runs, err := ReadRuns(s)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs["2000000001"]
	require.Equal(t, rec.Inputs, got.Inputs)
	require.Equal(t, rec.Description, got.Description)
	require.True(t, got.Date.Equal(rec.Date))
	require.Equal(t, rec.IniState["r"], got.IniState["r"])
	require.Equal(t, rec.EndState["endcond"], got.EndState["endcond"])

	// Tables the run does not own stay nil.
	require.Nil(t, got.Dists)
	require.Nil(t, got.Orbits)

	// The freshly written run is the active result.
	q, err := ActiveQID(s, Results)
	require.NoError(t, err)
	require.Equal(t, QID("2000000001"), q)
}

func TestWriteRunValidatesQID(t *testing.T) {
	s := NewMemStore()
	_, err := WriteRun(s, &RunRecord{QID: "short"})
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadRunMissingProvenance(t *testing.T) {
	s := NewMemStore()
	rec := sampleRun("2000000002")
	path, err := WriteRun(s, rec)
	require.NoError(t, err)

	// A run record without its provenance is corrupt. Rebuild the group with
	// one attribute dropped.
	dAttr, err := s.Attr(path, attrDate)
	require.NoError(t, err)
	require.NoError(t, s.RemoveGroup(path))
	require.NoError(t, s.CreateGroup(path))
	require.NoError(t, s.SetAttr(path, attrDate, dAttr))
	require.NoError(t, s.SetAttr(path, attrDescription, rec.Description))
	require.NoError(t, s.SetAttr(path, "qid_bfield", "1000000001"))

	_, err = ReadRuns(s)
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadRunsOrderAndMultiple(t *testing.T) {
	s := NewMemStore()
	first := sampleRun("2000000001")
	second := sampleRun("2000000009")
	second.Date = date(11, 0)
	second.Description = "follow-up"
	_, err := WriteRun(s, first)
	require.NoError(t, err)
	_, err = WriteRun(s, second)
	require.NoError(t, err)

	runs, err := ReadRuns(s)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "follow-up", runs["2000000009"].Description)

	c, err := ReadAll(s, Results)
	require.NoError(t, err)
	require.Len(t, c.Runs, 2)
}

package orbit5

import "time"

// Names of the optional result tables owned by a run.
const (
	tableIniState = "inistate"
	tableEndState = "endstate"
	tableDists    = "dists"
	tableOrbits   = "orbits"
)

// RunInputs records the provenance of one simulation run: the QID of every
// input category that produced it. Provenance is immutable once written.
type RunInputs struct {
	BField  QID
	EField  QID
	Marker  QID
	Options QID
	Plasma  QID
	Wall    QID
}

// provenanceAttrs maps run attributes to their RunInputs field.
var provenanceAttrs = []struct {
	name string
	get  func(*RunInputs) *QID
}{
	{"qid_bfield", func(in *RunInputs) *QID { return &in.BField }},
	{"qid_efield", func(in *RunInputs) *QID { return &in.EField }},
	{"qid_marker", func(in *RunInputs) *QID { return &in.Marker }},
	{"qid_options", func(in *RunInputs) *QID { return &in.Options }},
	{"qid_plasma", func(in *RunInputs) *QID { return &in.Plasma }},
	{"qid_wall", func(in *RunInputs) *QID { return &in.Wall }},
}

// RunRecord is the persisted output of one simulation execution.
type RunRecord struct {
	QID         QID
	Date        time.Time
	Description string
	Inputs      RunInputs

	// Optional tables; nil when the run does not own them.
	IniState Payload
	EndState Payload
	Dists    Payload
	Orbits   Payload
}

func runPath(q QID) string {
	return Results.String() + "/" + PrefixRun.GroupName(q)
}

// ReadRuns reads every run record under the results mastergroup.
func ReadRuns(s Store) (map[QID]*RunRecord, error) {
	refs, err := Resolve(s, Results)
	if err != nil {
		return nil, err
	}
	out := make(map[QID]*RunRecord, len(refs))
	for _, ref := range refs {
		rec, err := readRun(s, ref.QID)
		if err != nil {
			return nil, err
		}
		out[ref.QID] = rec
	}
	return out, nil
}

func readRun(s Store, q QID) (*RunRecord, error) {
	path := runPath(q)
	rec := &RunRecord{QID: q}

	raw, err := runAttr(s, path, attrDate)
	if err != nil {
		return nil, err
	}
	if rec.Date, err = ParseDate(raw); err != nil {
		return nil, wrapf(ErrFormat, "run %s has unparsable date %q", q, raw)
	}
	if rec.Description, err = runAttr(s, path, attrDescription); err != nil {
		return nil, err
	}
	for _, pa := range provenanceAttrs {
		v, err := runAttr(s, path, pa.name)
		if err != nil {
			return nil, err
		}
		*pa.get(&rec.Inputs) = QID(v)
	}

	for _, tbl := range []struct {
		name string
		dst  *Payload
	}{
		{tableIniState, &rec.IniState},
		{tableEndState, &rec.EndState},
		{tableDists, &rec.Dists},
		{tableOrbits, &rec.Orbits},
	} {
		sub := path + "/" + tbl.name
		if !s.Exists(sub) {
			continue
		}
		p, err := readPayload(s, sub)
		if err != nil {
			return nil, err
		}
		*tbl.dst = p
	}
	return rec, nil
}

// runAttr reads a required run attribute; absence is a format error since a
// run record without its metadata is corrupt.
func runAttr(s Store, path, name string) (string, error) {
	v, err := s.Attr(path, name)
	if err != nil {
		return "", wrapf(ErrFormat, "run record %s is missing attribute %q", path, name)
	}
	return v, nil
}

// WriteRun persists a run record: the run group is created (replacing a
// same-named one), metadata and provenance are stamped, the provided tables
// are written, and the run becomes the active result.
func WriteRun(s WritableStore, rec *RunRecord) (string, error) {
	if !rec.QID.Valid() {
		return "", wrapf(ErrFormat, "run qid %q: want %d characters", rec.QID, QIDLength)
	}
	at := rec.Date
	if at.IsZero() {
		at = time.Now()
	}
	path, err := AddGroupAt(s, Results, PrefixRun, rec.QID, rec.Description, at)
	if err != nil {
		return "", err
	}
	for _, pa := range provenanceAttrs {
		if err := s.SetAttr(path, pa.name, string(*pa.get(&rec.Inputs))); err != nil {
			return "", err
		}
	}
	for _, tbl := range []struct {
		name string
		src  Payload
	}{
		{tableIniState, rec.IniState},
		{tableEndState, rec.EndState},
		{tableDists, rec.Dists},
		{tableOrbits, rec.Orbits},
	} {
		if tbl.src == nil {
			continue
		}
		if err := writePayload(s, path+"/"+tbl.name, tbl.src); err != nil {
			return "", err
		}
	}
	return path, nil
}

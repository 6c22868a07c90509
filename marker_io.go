package orbit5

// Marker input I/O. Markers are the particles whose orbits the simulation
// follows; they come in three flavors: full-orbit particles, guiding centers
// and field lines. Every array holds one entry per marker.

// Particles are full-orbit markers with velocity components.
type Particles struct {
	ID     []int32
	R      []float64
	Phi    []float64
	Z      []float64
	VR     []float64
	VPhi   []float64
	VZ     []float64
	Mass   []float64
	Charge []int32
	ANum   []int32
	ZNum   []int32
	Weight []float64
	Time   []float64
}

// WriteParticles writes a particle marker input.
func WriteParticles(s WritableStore, in *Particles, desc string) (string, QID, error) {
	n := len(in.ID)
	if n == 0 ||
		!sameLength(n, in.R, in.Phi, in.Z, in.VR, in.VPhi, in.VZ, in.Mass, in.Weight, in.Time) ||
		len(in.Charge) != n || len(in.ANum) != n || len(in.ZNum) != n {
		return "", "", wrapf(ErrFormat, "particle marker arrays disagree")
	}
	path, qid, err := AddGroup(s, Marker, PrefixParticle, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("n", n), itable("id", in.ID),
		table("r", in.R), table("phi", in.Phi), table("z", in.Z),
		table("vr", in.VR), table("vphi", in.VPhi), table("vz", in.VZ),
		table("mass", in.Mass), itable("charge", in.Charge),
		itable("anum", in.ANum), itable("znum", in.ZNum),
		table("weight", in.Weight), table("time", in.Time),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readParticles(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Marker.String()+"/"+PrefixParticle.GroupName(qid), []string{
		"n", "id", "r", "phi", "z", "vr", "vphi", "vz",
		"mass", "charge", "anum", "znum", "weight", "time",
	})
}

// GuidingCenters are markers in guiding-center coordinates.
type GuidingCenters struct {
	ID     []int32
	R      []float64
	Phi    []float64
	Z      []float64
	Energy []float64
	Pitch  []float64
	Zeta   []float64
	Mass   []float64
	Charge []int32
	ANum   []int32
	ZNum   []int32
	Weight []float64
	Time   []float64
}

// WriteGuidingCenters writes a guiding-center marker input.
func WriteGuidingCenters(s WritableStore, in *GuidingCenters, desc string) (string, QID, error) {
	n := len(in.ID)
	if n == 0 ||
		!sameLength(n, in.R, in.Phi, in.Z, in.Energy, in.Pitch, in.Zeta, in.Mass, in.Weight, in.Time) ||
		len(in.Charge) != n || len(in.ANum) != n || len(in.ZNum) != n {
		return "", "", wrapf(ErrFormat, "guiding-center marker arrays disagree")
	}
	path, qid, err := AddGroup(s, Marker, PrefixGuidingCenter, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("n", n), itable("id", in.ID),
		table("r", in.R), table("phi", in.Phi), table("z", in.Z),
		table("energy", in.Energy), table("pitch", in.Pitch), table("zeta", in.Zeta),
		table("mass", in.Mass), itable("charge", in.Charge),
		itable("anum", in.ANum), itable("znum", in.ZNum),
		table("weight", in.Weight), table("time", in.Time),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readGuidingCenters(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Marker.String()+"/"+PrefixGuidingCenter.GroupName(qid), []string{
		"n", "id", "r", "phi", "z", "energy", "pitch", "zeta",
		"mass", "charge", "anum", "znum", "weight", "time",
	})
}

// FieldLines are massless markers that trace magnetic field lines.
type FieldLines struct {
	ID     []int32
	R      []float64
	Phi    []float64
	Z      []float64
	Pitch  []float64
	Weight []float64
	Time   []float64
}

// WriteFieldLines writes a field-line marker input.
func WriteFieldLines(s WritableStore, in *FieldLines, desc string) (string, QID, error) {
	n := len(in.ID)
	if n == 0 || !sameLength(n, in.R, in.Phi, in.Z, in.Pitch, in.Weight, in.Time) {
		return "", "", wrapf(ErrFormat, "field-line marker arrays disagree")
	}
	path, qid, err := AddGroup(s, Marker, PrefixFieldLine, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("n", n), itable("id", in.ID),
		table("r", in.R), table("phi", in.Phi), table("z", in.Z),
		table("pitch", in.Pitch), table("weight", in.Weight), table("time", in.Time),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readFieldLines(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Marker.String()+"/"+PrefixFieldLine.GroupName(qid), []string{
		"n", "id", "r", "phi", "z", "pitch", "weight", "time",
	})
}

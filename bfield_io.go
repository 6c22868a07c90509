package orbit5

// Magnetic field input I/O. Five representations are supported: axisymmetric
// (B_2DS) and non-axisymmetric (B_3DS) spline fields, the trivial cartesian
// field (B_TC), the analytic Grad-Shafranov equilibrium (B_GS) and the
// stellarator field (B_ST).

// B2DS is an axisymmetric field tabulated on an (R, z) grid.
type B2DS struct {
	RMin, RMax float64
	NR         int
	ZMin, ZMax float64
	NZ         int

	AxisR, AxisZ     float64
	PsiAxis, PsiSepx float64

	// Row-major (nz, nr) tables.
	Psi, BR, BPhi, BZ []float64
}

// WriteB2DS writes an axisymmetric field input and returns the group path
// and identity.
func WriteB2DS(s WritableStore, in *B2DS, desc string) (string, QID, error) {
	n := in.NR * in.NZ
	if in.NR <= 0 || in.NZ <= 0 ||
		len(in.Psi) != n || len(in.BR) != n || len(in.BPhi) != n || len(in.BZ) != n {
		return "", "", wrapf(ErrFormat, "B_2DS tables do not match the %dx%d grid", in.NR, in.NZ)
	}
	path, qid, err := AddGroup(s, BField, PrefixB2DS, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		scalar("axisr", in.AxisR), scalar("axisz", in.AxisZ),
		scalar("psi0", in.PsiAxis), scalar("psi1", in.PsiSepx),
		table("psi", in.Psi), table("br", in.BR),
		table("bphi", in.BPhi), table("bz", in.BZ),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readB2DS(s Store, qid QID) (Payload, error) {
	return requirePayload(s, BField.String()+"/"+PrefixB2DS.GroupName(qid), []string{
		"rmin", "rmax", "nr", "zmin", "zmax", "nz",
		"axisr", "axisz", "psi0", "psi1", "psi", "br", "bphi", "bz",
	})
}

// B3DS is a non-axisymmetric field tabulated on an (R, phi, z) grid.
type B3DS struct {
	RMin, RMax     float64
	NR             int
	PhiMin, PhiMax float64
	NPhi           int
	ZMin, ZMax     float64
	NZ             int

	AxisR, AxisZ     float64
	PsiAxis, PsiSepx float64

	Psi          []float64 // (nz, nr), axisymmetric
	BR, BPhi, BZ []float64 // (nphi, nz, nr)
}

// WriteB3DS writes a 3D field input.
func WriteB3DS(s WritableStore, in *B3DS, desc string) (string, QID, error) {
	n2 := in.NR * in.NZ
	n3 := n2 * in.NPhi
	if in.NR <= 0 || in.NPhi <= 0 || in.NZ <= 0 || len(in.Psi) != n2 ||
		len(in.BR) != n3 || len(in.BPhi) != n3 || len(in.BZ) != n3 {
		return "", "", wrapf(ErrFormat, "B_3DS tables do not match the %dx%dx%d grid",
			in.NR, in.NPhi, in.NZ)
	}
	path, qid, err := AddGroup(s, BField, PrefixB3DS, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("phimin", in.PhiMin), scalar("phimax", in.PhiMax), count("nphi", in.NPhi),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		scalar("axisr", in.AxisR), scalar("axisz", in.AxisZ),
		scalar("psi0", in.PsiAxis), scalar("psi1", in.PsiSepx),
		table("psi", in.Psi), table("br", in.BR),
		table("bphi", in.BPhi), table("bz", in.BZ),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readB3DS(s Store, qid QID) (Payload, error) {
	return requirePayload(s, BField.String()+"/"+PrefixB3DS.GroupName(qid), []string{
		"rmin", "rmax", "nr", "phimin", "phimax", "nphi", "zmin", "zmax", "nz",
		"axisr", "axisz", "psi0", "psi1", "psi", "br", "bphi", "bz",
	})
}

// BTC is the trivial cartesian field used in unit-level physics tests: a
// constant B with constant gradients.
type BTC struct {
	BXYZ     [3]float64
	Jacobian [9]float64
	AxisR    float64
	AxisZ    float64
	Psi      float64
	RhoVal   float64
}

// WriteBTC writes a trivial cartesian field input.
func WriteBTC(s WritableStore, in *BTC, desc string) (string, QID, error) {
	path, qid, err := AddGroup(s, BField, PrefixBTC, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		table("bxyz", in.BXYZ[:]), table("jacobian", in.Jacobian[:]),
		scalar("axisr", in.AxisR), scalar("axisz", in.AxisZ),
		scalar("psival", in.Psi), scalar("rhoval", in.RhoVal),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readBTC(s Store, qid QID) (Payload, error) {
	return requirePayload(s, BField.String()+"/"+PrefixBTC.GroupName(qid), []string{
		"bxyz", "jacobian", "axisr", "axisz", "psival", "rhoval",
	})
}

// BGS is the analytic Grad-Shafranov equilibrium: axis location, scaling
// constants and the thirteen shaping coefficients.
type BGS struct {
	AxisR, AxisZ     float64
	BPhi0, PsiMult   float64
	PsiAxis, PsiSepx float64
	Coefficients     [13]float64
}

// WriteBGS writes an analytic equilibrium input.
func WriteBGS(s WritableStore, in *BGS, desc string) (string, QID, error) {
	path, qid, err := AddGroup(s, BField, PrefixBGS, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("axisr", in.AxisR), scalar("axisz", in.AxisZ),
		scalar("bphi0", in.BPhi0), scalar("psimult", in.PsiMult),
		scalar("psi0", in.PsiAxis), scalar("psi1", in.PsiSepx),
		table("coefficients", in.Coefficients[:]),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readBGS(s Store, qid QID) (Payload, error) {
	return requirePayload(s, BField.String()+"/"+PrefixBGS.GroupName(qid), []string{
		"axisr", "axisz", "bphi0", "psimult", "psi0", "psi1", "coefficients",
	})
}

// BST is a stellarator field: one toroidal period tabulated on an
// (R, phi, z) grid.
type BST struct {
	RMin, RMax     float64
	NR             int
	PhiMin, PhiMax float64
	NPhi           int
	ZMin, ZMax     float64
	NZ             int
	NPeriods       int

	PsiAxis, PsiSepx float64
	Psi              []float64 // (nphi, nz, nr)
	BR, BPhi, BZ     []float64 // (nphi, nz, nr)
	AxisR, AxisZ     []float64 // (nphi,) magnetic axis per toroidal slice
}

// WriteBST writes a stellarator field input.
func WriteBST(s WritableStore, in *BST, desc string) (string, QID, error) {
	n3 := in.NR * in.NPhi * in.NZ
	if in.NR <= 0 || in.NPhi <= 0 || in.NZ <= 0 || in.NPeriods <= 0 ||
		len(in.Psi) != n3 || len(in.BR) != n3 || len(in.BPhi) != n3 || len(in.BZ) != n3 ||
		len(in.AxisR) != in.NPhi || len(in.AxisZ) != in.NPhi {
		return "", "", wrapf(ErrFormat, "B_ST tables do not match the %dx%dx%d grid",
			in.NR, in.NPhi, in.NZ)
	}
	path, qid, err := AddGroup(s, BField, PrefixBST, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("phimin", in.PhiMin), scalar("phimax", in.PhiMax), count("nphi", in.NPhi),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		count("nperiods", in.NPeriods),
		scalar("psi0", in.PsiAxis), scalar("psi1", in.PsiSepx),
		table("psi", in.Psi), table("br", in.BR),
		table("bphi", in.BPhi), table("bz", in.BZ),
		table("axisr", in.AxisR), table("axisz", in.AxisZ),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readBST(s Store, qid QID) (Payload, error) {
	return requirePayload(s, BField.String()+"/"+PrefixBST.GroupName(qid), []string{
		"rmin", "rmax", "nr", "phimin", "phimax", "nphi", "zmin", "zmax", "nz",
		"nperiods", "psi0", "psi1", "psi", "br", "bphi", "bz", "axisr", "axisz",
	})
}

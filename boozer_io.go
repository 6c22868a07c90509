package orbit5

// Boozer coordinate input I/O: the mapping from cylindrical to Boozer
// coordinates used by the MHD perturbation evaluation.

// BoozerMap is the Boozer coordinate mapping data.
type BoozerMap struct {
	NPsi   int
	PsiMin float64
	PsiMax float64

	NTheta    int
	NThetaGeo int

	NR         int
	RMin, RMax float64
	NZ         int
	ZMin, ZMax float64

	Psi      []float64 // (nz, nr) poloidal flux map
	Theta    []float64 // (npsi, nthetageo) Boozer theta on geometric grid
	Nu       []float64 // (npsi, ntheta) toroidal shift
	QProfile []float64 // (npsi,)
}

// WriteBoozer writes a Boozer mapping input.
func WriteBoozer(s WritableStore, in *BoozerMap, desc string) (string, QID, error) {
	if in.NPsi <= 0 || in.NTheta <= 0 || in.NThetaGeo <= 0 || in.NR <= 0 || in.NZ <= 0 ||
		len(in.Psi) != in.NR*in.NZ ||
		len(in.Theta) != in.NPsi*in.NThetaGeo ||
		len(in.Nu) != in.NPsi*in.NTheta ||
		len(in.QProfile) != in.NPsi {
		return "", "", wrapf(ErrFormat, "Boozer maps do not match the declared grids")
	}
	path, qid, err := AddGroup(s, Boozer, PrefixBoozer, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("npsi", in.NPsi), scalar("psimin", in.PsiMin), scalar("psimax", in.PsiMax),
		count("ntheta", in.NTheta), count("nthetageo", in.NThetaGeo),
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		table("psi", in.Psi), table("theta", in.Theta), table("nu", in.Nu),
		table("qprofile", in.QProfile),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readBoozer(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Boozer.String()+"/"+PrefixBoozer.GroupName(qid), []string{
		"npsi", "psimin", "psimax", "ntheta", "nthetageo",
		"rmin", "rmax", "nr", "zmin", "zmax", "nz",
		"psi", "theta", "nu", "qprofile",
	})
}

package orbit5

// Neutral density input I/O: neutral particle density tabulated on an
// (R, phi, z) grid.

// N03D is a 3D neutral density.
type N03D struct {
	RMin, RMax     float64
	NR             int
	PhiMin, PhiMax float64
	NPhi           int
	ZMin, ZMax     float64
	NZ             int

	Density []float64 // (nphi, nz, nr)
}

// WriteN03D writes a neutral density input.
func WriteN03D(s WritableStore, in *N03D, desc string) (string, QID, error) {
	if in.NR <= 0 || in.NPhi <= 0 || in.NZ <= 0 ||
		len(in.Density) != in.NR*in.NPhi*in.NZ {
		return "", "", wrapf(ErrFormat, "N0_3D density does not match the %dx%dx%d grid",
			in.NR, in.NPhi, in.NZ)
	}
	path, qid, err := AddGroup(s, Neutral, PrefixN03D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("phimin", in.PhiMin), scalar("phimax", in.PhiMax), count("nphi", in.NPhi),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		table("n0", in.Density),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readN03D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Neutral.String()+"/"+PrefixN03D.GroupName(qid), []string{
		"rmin", "rmax", "nr", "phimin", "phimax", "nphi", "zmin", "zmax", "nz", "n0",
	})
}

package orbit5

// Electric field input I/O: the radial 1D field (E_1D), the trivial cartesian
// field (E_TC) and the field tabulated on an (R, phi, z) grid (E_3D).

// E1D is a radial electric field given as dV/drho on a rho grid.
type E1D struct {
	NRho   int
	RhoMin float64
	RhoMax float64
	DVDRho []float64 // (nrho,)
}

// WriteE1D writes a radial electric field input.
func WriteE1D(s WritableStore, in *E1D, desc string) (string, QID, error) {
	if in.NRho <= 0 || len(in.DVDRho) != in.NRho {
		return "", "", wrapf(ErrFormat, "E_1D profile does not match the %d-point grid", in.NRho)
	}
	path, qid, err := AddGroup(s, EField, PrefixE1D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("nrho", in.NRho), scalar("rhomin", in.RhoMin), scalar("rhomax", in.RhoMax),
		table("dvdrho", in.DVDRho),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readE1D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, EField.String()+"/"+PrefixE1D.GroupName(qid), []string{
		"nrho", "rhomin", "rhomax", "dvdrho",
	})
}

// ETC is the trivial constant cartesian electric field.
type ETC struct {
	EXYZ [3]float64
}

// WriteETC writes a trivial cartesian electric field input.
func WriteETC(s WritableStore, in *ETC, desc string) (string, QID, error) {
	path, qid, err := AddGroup(s, EField, PrefixETC, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path, table("exyz", in.EXYZ[:])); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readETC(s Store, qid QID) (Payload, error) {
	return requirePayload(s, EField.String()+"/"+PrefixETC.GroupName(qid), []string{"exyz"})
}

// E3D is an electric field tabulated on an (R, phi, z) grid.
type E3D struct {
	RMin, RMax     float64
	NR             int
	PhiMin, PhiMax float64
	NPhi           int
	ZMin, ZMax     float64
	NZ             int

	ER, EPhi, EZ []float64 // (nphi, nz, nr)
}

// WriteE3D writes a 3D electric field input.
func WriteE3D(s WritableStore, in *E3D, desc string) (string, QID, error) {
	n := in.NR * in.NPhi * in.NZ
	if in.NR <= 0 || in.NPhi <= 0 || in.NZ <= 0 ||
		len(in.ER) != n || len(in.EPhi) != n || len(in.EZ) != n {
		return "", "", wrapf(ErrFormat, "E_3D tables do not match the %dx%dx%d grid",
			in.NR, in.NPhi, in.NZ)
	}
	path, qid, err := AddGroup(s, EField, PrefixE3D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		scalar("rmin", in.RMin), scalar("rmax", in.RMax), count("nr", in.NR),
		scalar("phimin", in.PhiMin), scalar("phimax", in.PhiMax), count("nphi", in.NPhi),
		scalar("zmin", in.ZMin), scalar("zmax", in.ZMax), count("nz", in.NZ),
		table("er", in.ER), table("ephi", in.EPhi), table("ez", in.EZ),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readE3D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, EField.String()+"/"+PrefixE3D.GroupName(qid), []string{
		"rmin", "rmax", "nr", "phimin", "phimax", "nphi", "zmin", "zmax", "nz",
		"er", "ephi", "ez",
	})
}

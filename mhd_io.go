package orbit5

// MHD perturbation input I/O. The input consists of a set of (n, m) modes
// with radial eigenfunctions alpha and phi on a psi grid, optionally
// time-dependent.

// MHDModes describes a set of MHD perturbation modes.
type MHDModes struct {
	NMode int
	NPsi  int
	NTime int

	NModes    []int32   // (nmode,) toroidal mode numbers
	MModes    []int32   // (nmode,) poloidal mode numbers
	Amplitude []float64 // (nmode,)
	Omega     []float64 // (nmode,) mode frequencies

	PsiMin, PsiMax float64
	TMin, TMax     float64

	Alpha []float64 // (nmode, npsi, ntime) magnetic eigenfunction
	Phi   []float64 // (nmode, npsi, ntime) electric eigenfunction
}

// WriteMHD writes an MHD perturbation input. Stationary input is written
// with NTime == 1.
func WriteMHD(s WritableStore, in *MHDModes, desc string) (string, QID, error) {
	n := in.NMode * in.NPsi * in.NTime
	if in.NMode <= 0 || in.NPsi <= 0 || in.NTime <= 0 ||
		len(in.NModes) != in.NMode || len(in.MModes) != in.NMode ||
		!sameLength(in.NMode, in.Amplitude, in.Omega) ||
		len(in.Alpha) != n || len(in.Phi) != n {
		return "", "", wrapf(ErrFormat, "MHD mode data does not match nmode=%d npsi=%d ntime=%d",
			in.NMode, in.NPsi, in.NTime)
	}
	path, qid, err := AddGroup(s, MHD, PrefixMHD, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("nmode", in.NMode), count("npsi", in.NPsi), count("ntime", in.NTime),
		itable("nmodes", in.NModes), itable("mmodes", in.MModes),
		table("amplitude", in.Amplitude), table("omega", in.Omega),
		scalar("psimin", in.PsiMin), scalar("psimax", in.PsiMax),
		scalar("tmin", in.TMin), scalar("tmax", in.TMax),
		table("alpha", in.Alpha), table("phi", in.Phi),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readMHD(s Store, qid QID) (Payload, error) {
	return requirePayload(s, MHD.String()+"/"+PrefixMHD.GroupName(qid), []string{
		"nmode", "npsi", "ntime", "nmodes", "mmodes", "amplitude", "omega",
		"psimin", "psimax", "tmin", "tmax", "alpha", "phi",
	})
}

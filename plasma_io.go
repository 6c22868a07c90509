package orbit5

// Plasma profile input I/O. The 1D plasma holds electron and per-species ion
// density and temperature profiles on a common rho grid.

// Plasma1D is a radial plasma profile set.
type Plasma1D struct {
	NRho int
	NIon int

	ZNum []int32 // (nion,) charge numbers
	ANum []int32 // (nion,) mass numbers

	Rho []float64 // (nrho,)
	NE  []float64 // (nrho,) electron density
	TE  []float64 // (nrho,) electron temperature
	NI  []float64 // (nion, nrho) row-major ion densities
	TI  []float64 // (nrho,) common ion temperature
}

// WritePlasma1D writes a 1D plasma input.
func WritePlasma1D(s WritableStore, in *Plasma1D, desc string) (string, QID, error) {
	if in.NRho <= 0 || in.NIon <= 0 ||
		len(in.ZNum) != in.NIon || len(in.ANum) != in.NIon ||
		!sameLength(in.NRho, in.Rho, in.NE, in.TE, in.TI) ||
		len(in.NI) != in.NIon*in.NRho {
		return "", "", wrapf(ErrFormat, "plasma_1D profiles do not match nrho=%d nion=%d",
			in.NRho, in.NIon)
	}
	path, qid, err := AddGroup(s, Plasma, PrefixPlasma1D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("nrho", in.NRho), count("nion", in.NIon),
		itable("znum", in.ZNum), itable("anum", in.ANum),
		table("rho", in.Rho), table("ne", in.NE), table("te", in.TE),
		table("ni", in.NI), table("ti", in.TI),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readPlasma1D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Plasma.String()+"/"+PrefixPlasma1D.GroupName(qid), []string{
		"nrho", "nion", "znum", "anum", "rho", "ne", "te", "ni", "ti",
	})
}

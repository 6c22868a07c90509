package orbit5

// Wall geometry input I/O: an axisymmetric (R, z) contour (wall_2D) or a
// triangle mesh (wall_3D). The 3D wall is the one input carrying an integer
// payload (per-triangle flags) next to the float payload.

// Wall2D is an axisymmetric wall contour.
type Wall2D struct {
	R, Z []float64
}

// WriteWall2D writes a 2D wall input.
func WriteWall2D(s WritableStore, in *Wall2D, desc string) (string, QID, error) {
	if len(in.R) == 0 || len(in.R) != len(in.Z) {
		return "", "", wrapf(ErrFormat, "wall_2D contour arrays disagree (%d vs %d points)",
			len(in.R), len(in.Z))
	}
	path, qid, err := AddGroup(s, Wall, PrefixWall2D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("nelements", len(in.R)), table("r", in.R), table("z", in.Z),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readWall2D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Wall.String()+"/"+PrefixWall2D.GroupName(qid), []string{
		"nelements", "r", "z",
	})
}

// Wall3D is a triangle-mesh wall. Vertex arrays hold one entry per triangle;
// Flag carries the per-triangle integer tag (e.g. divertor marking).
type Wall3D struct {
	X1, Y1, Z1 []float64
	X2, Y2, Z2 []float64
	X3, Y3, Z3 []float64
	Flag       []int32
}

// WriteWall3D writes a 3D wall input.
func WriteWall3D(s WritableStore, in *Wall3D, desc string) (string, QID, error) {
	n := len(in.X1)
	if n == 0 ||
		!sameLength(n, in.Y1, in.Z1, in.X2, in.Y2, in.Z2, in.X3, in.Y3, in.Z3) ||
		len(in.Flag) != n {
		return "", "", wrapf(ErrFormat, "wall_3D triangle arrays disagree")
	}
	path, qid, err := AddGroup(s, Wall, PrefixWall3D, desc)
	if err != nil {
		return "", "", err
	}
	if err := storeAll(s, path,
		count("nelements", n),
		table("x1x2x3", concat3(in.X1, in.X2, in.X3)),
		table("y1y2y3", concat3(in.Y1, in.Y2, in.Y3)),
		table("z1z2z3", concat3(in.Z1, in.Z2, in.Z3)),
		itable("flag", in.Flag),
	); err != nil {
		return "", "", err
	}
	return path, qid, nil
}

func readWall3D(s Store, qid QID) (Payload, error) {
	return requirePayload(s, Wall.String()+"/"+PrefixWall3D.GroupName(qid), []string{
		"nelements", "x1x2x3", "y1y2y3", "z1z2z3", "flag",
	})
}

// concat3 interleaves per-triangle vertex arrays as (n, 3) row-major storage.
func concat3(a, b, c []float64) []float64 {
	out := make([]float64, 0, 3*len(a))
	for i := range a {
		out = append(out, a[i], b[i], c[i])
	}
	return out
}

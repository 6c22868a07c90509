package orbit5

// Small helpers shared by the per-type writers. Scalars are stored as
// one-element datasets and counts as one-element integer datasets, matching
// the persisted layout the simulation toolchain expects.

type datasetEntry struct {
	name   string
	floats []float64
	ints   []int32
}

func scalar(name string, v float64) datasetEntry {
	return datasetEntry{name: name, floats: []float64{v}}
}

func count(name string, n int) datasetEntry {
	return datasetEntry{name: name, ints: []int32{int32(n)}}
}

func table(name string, v []float64) datasetEntry {
	return datasetEntry{name: name, floats: v}
}

func itable(name string, v []int32) datasetEntry {
	return datasetEntry{name: name, ints: v}
}

func storeAll(s WritableStore, path string, entries ...datasetEntry) error {
	for _, e := range entries {
		var err error
		if e.ints != nil {
			err = s.SetInts(path, e.name, e.ints)
		} else {
			err = s.SetFloats(path, e.name, e.floats)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// sameLength reports whether every slice has length n.
func sameLength(n int, slices ...[]float64) bool {
	for _, s := range slices {
		if len(s) != n {
			return false
		}
	}
	return true
}

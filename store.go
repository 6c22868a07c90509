package orbit5

import "strings"

// Store is the read side of the persisted hierarchy. Paths are
// slash-separated and relative to the root, e.g. "bfield/B_2DS-0123456789".
//
// Store-level locking against concurrent writers is the caller's
// responsibility; implementations are only required to be consistent for
// independent read-only use.
type Store interface {
	// Exists reports whether a group exists at path.
	Exists(path string) bool

	// Children returns the names of the child groups under path.
	Children(path string) ([]string, error)

	// Attr returns a text attribute of the group at path.
	Attr(path, name string) (string, error)

	// Attrs returns the attribute names of the group at path.
	Attrs(path string) ([]string, error)

	// Datasets returns the dataset names in the group at path.
	Datasets(path string) ([]string, error)

	// Dataset returns the value of a dataset: []float64 or []int32.
	Dataset(path, name string) (interface{}, error)
}

// WritableStore extends Store with group creation and dataset writes.
type WritableStore interface {
	Store

	// CreateGroup creates the group at path, including intermediate groups.
	// Creating an existing group is a no-op.
	CreateGroup(path string) error

	// RemoveGroup removes the group at path and everything below it.
	// Removing an absent group is a no-op.
	RemoveGroup(path string) error

	// SetAttr stores a text attribute on an existing group.
	SetAttr(path, name, value string) error

	// SetFloats stores a float dataset in an existing group.
	SetFloats(path, name string, values []float64) error

	// SetInts stores an integer dataset in an existing group.
	SetInts(path, name string, values []int32) error
}

// Payload is one group's extracted contents, dataset name to value.
// Values are []float64, []int32 or (for metadata attributes) string.
type Payload map[string]interface{}

// Floats reads a dataset and requires float contents.
func Floats(s Store, path, name string) ([]float64, error) {
	v, err := s.Dataset(path, name)
	if err != nil {
		return nil, err
	}
	f, ok := v.([]float64)
	if !ok {
		return nil, wrapf(ErrFormat, "dataset %s/%s does not hold float data", path, name)
	}
	return f, nil
}

// Ints reads a dataset and requires integer contents. Float-typed storage is
// accepted and converted, since some file backends surface every numeric
// dataset as float64.
func Ints(s Store, path, name string) ([]int32, error) {
	v, err := s.Dataset(path, name)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case []int32:
		return vv, nil
	case []float64:
		out := make([]int32, len(vv))
		for i, f := range vv {
			out[i] = int32(f)
		}
		return out, nil
	default:
		return nil, wrapf(ErrFormat, "dataset %s/%s does not hold integer data", path, name)
	}
}

// readPayload extracts every dataset under path.
func readPayload(s Store, path string) (Payload, error) {
	names, err := s.Datasets(path)
	if err != nil {
		return nil, err
	}
	out := make(Payload, len(names))
	for _, name := range names {
		v, err := s.Dataset(path, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// requirePayload extracts every dataset under path and verifies the fixed
// layout of a typed group.
func requirePayload(s Store, path string, required []string) (Payload, error) {
	p, err := readPayload(s, path)
	if err != nil {
		return nil, err
	}
	for _, name := range required {
		if _, ok := p[name]; !ok {
			return nil, wrapf(ErrFormat, "group %s is missing dataset %q", path, name)
		}
	}
	return p, nil
}

// writePayload stores every entry of a payload as a dataset under path,
// creating the group when needed.
func writePayload(s WritableStore, path string, p Payload) error {
	if err := s.CreateGroup(path); err != nil {
		return err
	}
	for name, v := range p {
		var err error
		switch vv := v.(type) {
		case []float64:
			err = s.SetFloats(path, name, vv)
		case []int32:
			err = s.SetInts(path, name, vv)
		default:
			err = wrapf(ErrFormat, "payload entry %q has unsupported type %T", name, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// splitPath breaks a slash path into group names. Leading and trailing
// slashes are tolerated; the empty path addresses the root.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

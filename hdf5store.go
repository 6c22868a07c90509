package orbit5

import (
	"fmt"

	"github.com/scigolib/hdf5"
)

// FileStore adapts an opened HDF5 file to the Store contract. It is
// read-only: versioned hierarchies are assembled in a MemStore or shipped as
// archives, and read back from files produced by the simulation toolchain.
type FileStore struct {
	f *hdf5.File
}

// OpenFile opens an HDF5 data file for reading.
func OpenFile(filename string) (*FileStore, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, wrapf(ErrNotFound, "open %s: %v", filename, err)
	}
	return &FileStore{f: f}, nil
}

// Close releases the underlying file. Safe to call more than once.
func (fs *FileStore) Close() error {
	return fs.f.Close()
}

func (fs *FileStore) group(path string) (*hdf5.Group, error) {
	g := fs.f.Root()
	for _, part := range splitPath(path) {
		var next *hdf5.Group
		for _, child := range g.Children() {
			if cg, ok := child.(*hdf5.Group); ok && cg.Name() == part {
				next = cg
				break
			}
		}
		if next == nil {
			return nil, wrapf(ErrNotFound, "group %q", path)
		}
		g = next
	}
	return g, nil
}

// Exists reports whether a group exists at path.
func (fs *FileStore) Exists(path string) bool {
	_, err := fs.group(path)
	return err == nil
}

// Children returns the child group names under path.
func (fs *FileStore) Children(path string) ([]string, error) {
	g, err := fs.group(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, child := range g.Children() {
		if _, ok := child.(*hdf5.Group); ok {
			names = append(names, child.Name())
		}
	}
	return names, nil
}

// Attr returns a text attribute of the group at path. Attribute values that
// were stored as byte strings are decoded as UTF-8 text.
func (fs *FileStore) Attr(path, name string) (string, error) {
	g, err := fs.group(path)
	if err != nil {
		return "", err
	}
	attrs, err := g.Attributes()
	if err != nil {
		return "", wrapf(ErrFormat, "attributes of %q: %v", path, err)
	}
	for _, attr := range attrs {
		if attr.Name != name {
			continue
		}
		v, err := attr.ReadValue()
		if err != nil {
			return "", wrapf(ErrFormat, "attribute %q on %q: %v", name, path, err)
		}
		return attrText(v), nil
	}
	return "", wrapf(ErrNotFound, "attribute %q on group %q", name, path)
}

// Attrs returns the attribute names of the group at path.
func (fs *FileStore) Attrs(path string) ([]string, error) {
	g, err := fs.group(path)
	if err != nil {
		return nil, err
	}
	attrs, err := g.Attributes()
	if err != nil {
		return nil, wrapf(ErrFormat, "attributes of %q: %v", path, err)
	}
	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = attr.Name
	}
	return names, nil
}

// Datasets returns the dataset names in the group at path.
func (fs *FileStore) Datasets(path string) ([]string, error) {
	g, err := fs.group(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, child := range g.Children() {
		if _, ok := child.(*hdf5.Dataset); ok {
			names = append(names, child.Name())
		}
	}
	return names, nil
}

// Dataset returns the value of a dataset. The underlying reader surfaces
// every numeric datatype as float64; integer-typed callers go through Ints.
func (fs *FileStore) Dataset(path, name string) (interface{}, error) {
	g, err := fs.group(path)
	if err != nil {
		return nil, err
	}
	for _, child := range g.Children() {
		ds, ok := child.(*hdf5.Dataset)
		if !ok || ds.Name() != name {
			continue
		}
		vals, err := ds.Read()
		if err != nil {
			return nil, wrapf(ErrFormat, "dataset %s/%s: %v", path, name, err)
		}
		return vals, nil
	}
	return nil, wrapf(ErrNotFound, "dataset %q in group %q", name, path)
}

func attrText(v interface{}) string {
	switch vv := v.(type) {
	case string:
		return vv
	case []byte:
		return string(vv)
	case []string:
		if len(vv) == 1 {
			return vv[0]
		}
	}
	return fmt.Sprint(v)
}

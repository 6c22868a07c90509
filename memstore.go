package orbit5

// MemStore is an in-memory WritableStore. It is used to assemble input
// hierarchies before shipping them as archives, and as the store double in
// tests. Child and dataset listings follow creation order, so resolution is
// deterministic.
type MemStore struct {
	root *memGroup
}

type memGroup struct {
	attrs     map[string]string
	attrOrder []string
	floats    map[string][]float64
	ints      map[string][]int32
	dsOrder   []string
	children  map[string]*memGroup
	order     []string
}

func newMemGroup() *memGroup {
	return &memGroup{
		attrs:    make(map[string]string),
		floats:   make(map[string][]float64),
		ints:     make(map[string][]int32),
		children: make(map[string]*memGroup),
	}
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{root: newMemGroup()}
}

func (m *MemStore) lookup(path string) (*memGroup, error) {
	g := m.root
	for _, part := range splitPath(path) {
		next, ok := g.children[part]
		if !ok {
			return nil, wrapf(ErrNotFound, "group %q", path)
		}
		g = next
	}
	return g, nil
}

// Exists reports whether a group exists at path.
func (m *MemStore) Exists(path string) bool {
	_, err := m.lookup(path)
	return err == nil
}

// Children returns the child group names under path, in creation order.
func (m *MemStore) Children(path string) ([]string, error) {
	g, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), g.order...), nil
}

// Attr returns a text attribute of the group at path.
func (m *MemStore) Attr(path, name string) (string, error) {
	g, err := m.lookup(path)
	if err != nil {
		return "", err
	}
	v, ok := g.attrs[name]
	if !ok {
		return "", wrapf(ErrNotFound, "attribute %q on group %q", name, path)
	}
	return v, nil
}

// Attrs returns the attribute names of the group at path.
func (m *MemStore) Attrs(path string) ([]string, error) {
	g, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), g.attrOrder...), nil
}

// Datasets returns the dataset names in the group at path, in creation order.
func (m *MemStore) Datasets(path string) ([]string, error) {
	g, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), g.dsOrder...), nil
}

// Dataset returns the value of a dataset.
func (m *MemStore) Dataset(path, name string) (interface{}, error) {
	g, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	if v, ok := g.floats[name]; ok {
		return v, nil
	}
	if v, ok := g.ints[name]; ok {
		return v, nil
	}
	return nil, wrapf(ErrNotFound, "dataset %q in group %q", name, path)
}

// CreateGroup creates the group at path, including intermediate groups.
func (m *MemStore) CreateGroup(path string) error {
	g := m.root
	for _, part := range splitPath(path) {
		next, ok := g.children[part]
		if !ok {
			next = newMemGroup()
			g.children[part] = next
			g.order = append(g.order, part)
		}
		g = next
	}
	return nil
}

// RemoveGroup removes the group at path. Removing an absent group is a no-op.
func (m *MemStore) RemoveGroup(path string) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return wrapf(ErrConflict, "cannot remove the root group")
	}
	parent, err := m.lookup(joinPath(parts[:len(parts)-1]))
	if err != nil {
		return nil
	}
	name := parts[len(parts)-1]
	if _, ok := parent.children[name]; !ok {
		return nil
	}
	delete(parent.children, name)
	for i, n := range parent.order {
		if n == name {
			parent.order = append(parent.order[:i], parent.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetAttr stores a text attribute on an existing group.
func (m *MemStore) SetAttr(path, name, value string) error {
	g, err := m.lookup(path)
	if err != nil {
		return err
	}
	if _, ok := g.attrs[name]; !ok {
		g.attrOrder = append(g.attrOrder, name)
	}
	g.attrs[name] = value
	return nil
}

// SetFloats stores a float dataset in an existing group.
func (m *MemStore) SetFloats(path, name string, values []float64) error {
	g, err := m.lookup(path)
	if err != nil {
		return err
	}
	g.noteDataset(name)
	delete(g.ints, name)
	g.floats[name] = append([]float64(nil), values...)
	return nil
}

// SetInts stores an integer dataset in an existing group.
func (m *MemStore) SetInts(path, name string, values []int32) error {
	g, err := m.lookup(path)
	if err != nil {
		return err
	}
	g.noteDataset(name)
	delete(g.floats, name)
	g.ints[name] = append([]int32(nil), values...)
	return nil
}

func (g *memGroup) noteDataset(name string) {
	if _, ok := g.floats[name]; ok {
		return
	}
	if _, ok := g.ints[name]; ok {
		return
	}
	g.dsOrder = append(g.dsOrder, name)
}

func joinPath(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

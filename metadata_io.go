package orbit5

// Metadata I/O. The metadata mastergroup is flat: free-form text attributes
// describing the file (code version, host, creation context). It carries no
// versioned groups and no QID indexing.

// WriteMetadata stores metadata attributes, creating the group on demand.
func WriteMetadata(s WritableStore, kv map[string]string) error {
	path := Metadata.String()
	if err := s.CreateGroup(path); err != nil {
		return err
	}
	for name, value := range kv {
		if err := s.SetAttr(path, name, value); err != nil {
			return err
		}
	}
	return nil
}

// readMetadataPayload extracts the flat metadata payload.
func readMetadataPayload(s Store) (Payload, error) {
	path := Metadata.String()
	names, err := s.Attrs(path)
	if err != nil {
		return nil, err
	}
	out := make(Payload, len(names))
	for _, name := range names {
		v, err := s.Attr(path, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

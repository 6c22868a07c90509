package orbit5

// typeReaders dispatches payload extraction to the per-type collaborator
// readers. The key is the storage-name prefix of the group.
var typeReaders = map[TypePrefix]func(Store, QID) (Payload, error){
	PrefixOpt:           readOptionsPayload,
	PrefixB2DS:          readB2DS,
	PrefixB3DS:          readB3DS,
	PrefixBTC:           readBTC,
	PrefixBGS:           readBGS,
	PrefixBST:           readBST,
	PrefixE1D:           readE1D,
	PrefixETC:           readETC,
	PrefixE3D:           readE3D,
	PrefixWall2D:        readWall2D,
	PrefixWall3D:        readWall3D,
	PrefixPlasma1D:      readPlasma1D,
	PrefixParticle:      readParticles,
	PrefixGuidingCenter: readGuidingCenters,
	PrefixFieldLine:     readFieldLines,
	PrefixN03D:          readN03D,
	PrefixBoozer:        readBoozer,
	PrefixMHD:           readMHD,
}

// CategoryData holds one mastergroup's extracted groups in resolver order.
type CategoryData struct {
	Order  []string           // group storage names, resolver order
	Groups map[string]Payload // storage name -> extracted datasets
}

// Contents mirrors the persisted hierarchy in memory.
type Contents struct {
	Inputs   map[Category]*CategoryData
	Metadata Payload
	Runs     map[QID]*RunRecord
}

// ReadAll reads the requested mastergroups into memory. With no categories it
// reads all known ones. Every requested category is present in the result,
// possibly empty, whether or not the store contains it. The read is
// fail-fast: the first per-type failure aborts the whole call and the partial
// result is discarded.
func ReadAll(s Store, cats ...Category) (*Contents, error) {
	if len(cats) == 0 {
		cats = AllCategories
	}
	out := &Contents{
		Inputs:   make(map[Category]*CategoryData),
		Metadata: Payload{},
	}
	for _, c := range cats {
		switch c {
		case Metadata:
			if !s.Exists(c.String()) {
				continue
			}
			p, err := readMetadataPayload(s)
			if err != nil {
				return nil, err
			}
			out.Metadata = p
		case Results:
			out.Runs = make(map[QID]*RunRecord)
			if !s.Exists(c.String()) {
				continue
			}
			runs, err := ReadRuns(s)
			if err != nil {
				return nil, err
			}
			out.Runs = runs
		default:
			cd, err := readCategory(s, c)
			if err != nil {
				return nil, err
			}
			out.Inputs[c] = cd
		}
	}
	return out, nil
}

// readCategory resolves one input mastergroup and extracts each group through
// its per-type reader. A QID appearing under more than one type prefix is
// rejected; a prefix outside the recognized set is skipped, matching the
// original reader.
func readCategory(s Store, c Category) (*CategoryData, error) {
	cd := &CategoryData{Groups: make(map[string]Payload)}
	if !s.Exists(c.String()) {
		return cd, nil
	}
	refs, err := Resolve(s, c)
	if err != nil {
		return nil, err
	}
	seen := make(map[QID]string, len(refs))
	for _, ref := range refs {
		if prev, ok := seen[ref.QID]; ok {
			return nil, wrapf(ErrFormat, "qid %s in mastergroup %q matches both %q and %q",
				ref.QID, c, prev, ref.Name)
		}
		seen[ref.QID] = ref.Name

		prefix := TypePrefix(ref.Name[:len(ref.Name)-QIDLength-1])
		read, ok := typeReaders[prefix]
		if !ok || !prefixKnown(c, prefix) {
			continue
		}
		p, err := read(s, ref.QID)
		if err != nil {
			return nil, err
		}
		cd.Order = append(cd.Order, ref.Name)
		cd.Groups[ref.Name] = p
	}
	return cd, nil
}

func prefixKnown(c Category, p TypePrefix) bool {
	for _, known := range typePrefixes[c] {
		if known == p {
			return true
		}
	}
	return false
}

package orbit5

import (
	"sort"
	"time"
)

// Attribute names stamped on every versioned group.
const (
	attrActive      = "active"
	attrDate        = "date"
	attrDescription = "description"
)

// GroupRef locates one versioned group inside a mastergroup.
type GroupRef struct {
	QID  QID
	Date time.Time
	Name string // full storage name, e.g. "B_2DS-0123456789"
}

// Resolve lists a mastergroup's versioned groups in canonical order: the
// active one first, the rest newest to oldest. Groups sharing a timestamp are
// ordered by QID, so the result is fully deterministic. A missing mastergroup
// is an error; an empty one yields an empty list. An unparsable date fails
// the whole resolution, naming the offending group.
func Resolve(s Store, c Category) ([]GroupRef, error) {
	master := c.String()
	if !s.Exists(master) {
		return nil, wrapf(ErrNotFound, "mastergroup %q", master)
	}
	names, err := s.Children(master)
	if err != nil {
		return nil, err
	}

	refs := make([]GroupRef, 0, len(names))
	for _, name := range names {
		qid, err := qidFromName(name)
		if err != nil {
			return nil, err
		}
		raw, err := s.Attr(master+"/"+name, attrDate)
		if err != nil {
			return nil, wrapf(ErrFormat, "group %s/%s has no date attribute", master, name)
		}
		date, err := ParseDate(raw)
		if err != nil {
			return nil, wrapf(ErrFormat, "group %s/%s (qid %s) has unparsable date %q", master, name, qid, raw)
		}
		refs = append(refs, GroupRef{QID: qid, Date: date, Name: name})
	}

	out := make([]GroupRef, 0, len(refs))
	if active, err := s.Attr(master, attrActive); err == nil {
		for i, r := range refs {
			if string(r.QID) == active {
				out = append(out, r)
				refs = append(refs[:i], refs[i+1:]...)
				break
			}
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].Date.Equal(refs[j].Date) {
			return refs[i].Date.After(refs[j].Date)
		}
		return refs[i].QID < refs[j].QID
	})
	return append(out, refs...), nil
}

// ActiveQID returns the identifier of the mastergroup's active group.
func ActiveQID(s Store, c Category) (QID, error) {
	v, err := s.Attr(c.String(), attrActive)
	if err != nil {
		return "", err
	}
	q := QID(v)
	if !q.Valid() {
		return "", wrapf(ErrFormat, "mastergroup %q has malformed active qid %q", c, v)
	}
	return q, nil
}

// SetActive marks qid as the mastergroup's active group. The qid must name an
// existing group; nothing is mutated otherwise.
func SetActive(s WritableStore, c Category, qid QID) error {
	master := c.String()
	if !s.Exists(master) {
		return wrapf(ErrNotFound, "mastergroup %q", master)
	}
	names, err := s.Children(master)
	if err != nil {
		return err
	}
	for _, name := range names {
		q, err := qidFromName(name)
		if err != nil {
			return err
		}
		if q == qid {
			return s.SetAttr(master, attrActive, string(qid))
		}
	}
	return wrapf(ErrConflict, "qid %s not present in mastergroup %q", qid, master)
}

// Describe returns the description attribute of the group identified by qid.
func Describe(s Store, c Category, qid QID) (string, error) {
	master := c.String()
	names, err := s.Children(master)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		q, err := qidFromName(name)
		if err != nil {
			return "", err
		}
		if q == qid {
			return s.Attr(master+"/"+name, attrDescription)
		}
	}
	return "", wrapf(ErrNotFound, "qid %s in mastergroup %q", qid, master)
}

// AddGroup writes the shell of a new versioned group under a fresh random
// QID: the mastergroup is created on demand, date and description are
// stamped, and the new group becomes the active one.
func AddGroup(s WritableStore, c Category, p TypePrefix, desc string) (string, QID, error) {
	qid, err := NewQID()
	if err != nil {
		return "", "", err
	}
	path, err := AddGroupAt(s, c, p, qid, desc, time.Now())
	return path, qid, err
}

// AddGroupAt is AddGroup with the identity and timestamp chosen by the
// caller. An existing group with the same name is replaced.
func AddGroupAt(s WritableStore, c Category, p TypePrefix, qid QID, desc string, at time.Time) (string, error) {
	if !qid.Valid() {
		return "", wrapf(ErrFormat, "qid %q: want %d characters", qid, QIDLength)
	}
	master := c.String()
	if err := s.CreateGroup(master); err != nil {
		return "", err
	}
	path := master + "/" + p.GroupName(qid)
	if err := s.RemoveGroup(path); err != nil {
		return "", err
	}
	if err := s.CreateGroup(path); err != nil {
		return "", err
	}
	if err := s.SetAttr(path, attrDate, FormatDate(at)); err != nil {
		return "", err
	}
	if err := s.SetAttr(path, attrDescription, desc); err != nil {
		return "", err
	}
	if err := s.SetAttr(master, attrActive, string(qid)); err != nil {
		return "", err
	}
	return path, nil
}

package orbit5

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// QIDLength is the fixed width of a group identifier token.
const QIDLength = 10

// DateLayout is the attribute timestamp layout. Only these 19 characters of a
// stored date participate in ordering; fractional seconds are ignored.
const DateLayout = "2006-01-02 15:04:05"

// QID identifies one versioned group within a mastergroup. It is the
// fixed-width suffix of the group's storage name, e.g. "0123456789" in
// "B_2DS-0123456789".
type QID string

// NewQID returns a random identifier drawn from the 10-digit space.
func NewQID() (QID, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(QIDLength), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("qid generation failed: %w", err)
	}
	return QID(fmt.Sprintf("%0*d", QIDLength, n)), nil
}

// Valid reports whether the token has the fixed width and can form a legal
// group-name suffix.
func (q QID) Valid() bool {
	return len(q) == QIDLength && !strings.ContainsAny(string(q), "/")
}

// qidFromName extracts the trailing identifier from a group name such as
// "B_2DS-0123456789" or "run-0123456789".
func qidFromName(name string) (QID, error) {
	if len(name) < QIDLength+1 {
		return "", wrapf(ErrFormat, "group name %q too short to carry a qid", name)
	}
	q := QID(name[len(name)-QIDLength:])
	if !q.Valid() || name[len(name)-QIDLength-1] != '-' {
		return "", wrapf(ErrFormat, "group name %q has a malformed qid suffix", name)
	}
	return q, nil
}

// ParseDate parses a date attribute value. Sub-second digits, when present,
// are accepted and discarded.
func ParseDate(s string) (time.Time, error) {
	if len(s) < len(DateLayout) {
		return time.Time{}, wrapf(ErrFormat, "date %q shorter than layout %q", s, DateLayout)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, wrapf(ErrFormat, "date %q: %v", s, err)
	}
	return t, nil
}

// FormatDate renders t the way group writers stamp it, with microseconds.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000000")
}

package orbit5

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// Archive codec: a portable snapshot of an in-memory store, for shipping
// input hierarchies between machines without an HDF5 toolchain.
//
// Layout:
//
//	bytes 0-3   magic "O5A1"
//	bytes 4-11  xxhash64 of the compressed body (little endian)
//	bytes 12-19 compressed body length (little endian)
//	bytes 20-   zstd-compressed body
//
// The body is the recursive group encoding: attribute, dataset and child
// counts followed by length-prefixed names and raw little-endian values.

const archiveMagic = "O5A1"

// WriteArchive writes a snapshot of the store to w.
func WriteArchive(w io.Writer, s *MemStore) error {
	var raw bytes.Buffer
	if err := encodeGroup(&raw, s.root); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("archive encoder: %w", err)
	}
	body := enc.EncodeAll(raw.Bytes(), nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("archive encoder: %w", err)
	}

	header := make([]byte, 20)
	copy(header, archiveMagic)
	binary.LittleEndian.PutUint64(header[4:], xxhash.Sum64(body))
	binary.LittleEndian.PutUint64(header[12:], uint64(len(body)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// ReadArchive reads a snapshot back into a fresh in-memory store. A digest
// mismatch or truncated stream is a format error.
func ReadArchive(r io.Reader) (*MemStore, error) {
	header := make([]byte, 20)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, wrapf(ErrFormat, "archive header: %v", err)
	}
	if string(header[:4]) != archiveMagic {
		return nil, wrapf(ErrFormat, "not an archive: bad magic %q", header[:4])
	}
	digest := binary.LittleEndian.Uint64(header[4:])
	size := binary.LittleEndian.Uint64(header[12:])

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, wrapf(ErrFormat, "archive body: %v", err)
	}
	if xxhash.Sum64(body) != digest {
		return nil, wrapf(ErrFormat, "archive digest mismatch")
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("archive decoder: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(body, nil)
	if err != nil {
		return nil, wrapf(ErrFormat, "archive decompress: %v", err)
	}

	buf := bytes.NewReader(raw)
	root := newMemGroup()
	if err := decodeGroup(buf, root); err != nil {
		return nil, err
	}
	if buf.Len() != 0 {
		return nil, wrapf(ErrFormat, "archive has %d trailing bytes", buf.Len())
	}
	return &MemStore{root: root}, nil
}

func encodeGroup(w *bytes.Buffer, g *memGroup) error {
	writeCount(w, len(g.attrOrder))
	for _, name := range g.attrOrder {
		writeString(w, name)
		writeString(w, g.attrs[name])
	}

	writeCount(w, len(g.dsOrder))
	for _, name := range g.dsOrder {
		writeString(w, name)
		if v, ok := g.floats[name]; ok {
			w.WriteByte(0)
			writeCount(w, len(v))
			for _, f := range v {
				writeU64(w, math.Float64bits(f))
			}
		} else {
			w.WriteByte(1)
			v := g.ints[name]
			writeCount(w, len(v))
			for _, i := range v {
				writeU32(w, uint32(i))
			}
		}
	}

	writeCount(w, len(g.order))
	for _, name := range g.order {
		writeString(w, name)
		if err := encodeGroup(w, g.children[name]); err != nil {
			return err
		}
	}
	return nil
}

func decodeGroup(r *bytes.Reader, g *memGroup) error {
	nattr, err := readCount(r)
	if err != nil {
		return err
	}
	for i := 0; i < nattr; i++ {
		name, err := readString(r)
		if err != nil {
			return err
		}
		value, err := readString(r)
		if err != nil {
			return err
		}
		g.attrs[name] = value
		g.attrOrder = append(g.attrOrder, name)
	}

	nds, err := readCount(r)
	if err != nil {
		return err
	}
	for i := 0; i < nds; i++ {
		name, err := readString(r)
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return wrapf(ErrFormat, "archive truncated: %v", err)
		}
		n, err := readCount(r)
		if err != nil {
			return err
		}
		switch kind {
		case 0:
			v := make([]float64, n)
			for j := range v {
				u, err := readU64(r)
				if err != nil {
					return err
				}
				v[j] = math.Float64frombits(u)
			}
			g.floats[name] = v
		case 1:
			v := make([]int32, n)
			for j := range v {
				u, err := readU32(r)
				if err != nil {
					return err
				}
				v[j] = int32(u)
			}
			g.ints[name] = v
		default:
			return wrapf(ErrFormat, "archive dataset %q has unknown kind %d", name, kind)
		}
		g.dsOrder = append(g.dsOrder, name)
	}

	nchild, err := readCount(r)
	if err != nil {
		return err
	}
	for i := 0; i < nchild; i++ {
		name, err := readString(r)
		if err != nil {
			return err
		}
		child := newMemGroup()
		if err := decodeGroup(r, child); err != nil {
			return err
		}
		g.children[name] = child
		g.order = append(g.order, name)
	}
	return nil
}

func writeCount(w *bytes.Buffer, n int) {
	writeU32(w, uint32(n))
}

func readCount(r *bytes.Reader) (int, error) {
	u, err := readU32(r)
	return int(u), err
}

func writeU32(w *bytes.Buffer, u uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], u)
	w.Write(b[:])
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapf(ErrFormat, "archive truncated: %v", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func writeU64(w *bytes.Buffer, u uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	w.Write(b[:])
}

func readU64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapf(ErrFormat, "archive truncated: %v", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func writeString(w *bytes.Buffer, s string) {
	writeCount(w, len(s))
	w.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readCount(r)
	if err != nil {
		return "", err
	}
	if n > r.Len() {
		return "", wrapf(ErrFormat, "archive string length %d exceeds remaining input", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", wrapf(ErrFormat, "archive truncated: %v", err)
	}
	return string(b), nil
}

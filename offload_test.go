package orbit5

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeLibrary is an in-process stand-in for the native simulation library.
// Every allocation gets a distinct fake address and is tracked until freed,
// so tests can assert that no path leaks or double-frees.
type fakeLibrary struct {
	nextAddr uintptr
	live     map[uintptr]int // addr -> element count

	// Per-category payload sizes served by ReadInput.
	sizes    map[Category]int
	intSizes map[Category]int

	readErr  map[Category]error
	allocErr error
	copyErr  error
	freeErr  error

	reads  int
	copies int
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		nextAddr: 0x1000,
		live:     map[uintptr]int{},
		sizes:    map[Category]int{BField: 16, EField: 4, Plasma: 8, Wall: 12},
		intSizes: map[Category]int{Wall: 3},
		readErr:  map[Category]error{},
	}
}

func (f *fakeLibrary) alloc(n int) Buffer {
	addr := f.nextAddr
	f.nextAddr += 0x1000
	f.live[addr] = n
	return Buffer{Addr: addr, Len: n}
}

func (f *fakeLibrary) InitMPI() (MPIInfo, error) {
	return MPIInfo{Rank: 0, Size: 1, Root: 0}, nil
}

func (f *fakeLibrary) ReadInput(source string, cat Category, qid QID) (InputBuffers, error) {
	f.reads++
	if err := f.readErr[cat]; err != nil {
		return InputBuffers{}, err
	}
	out := InputBuffers{Floats: f.alloc(f.sizes[cat])}
	if n := f.intSizes[cat]; n > 0 {
		out.Ints = f.alloc(n)
	}
	return out, nil
}

func (f *fakeLibrary) Alloc(n int) (Buffer, error) {
	if f.allocErr != nil {
		return Buffer{}, f.allocErr
	}
	return f.alloc(n), nil
}

func (f *fakeLibrary) AllocInt(n int) (Buffer, error) {
	return f.Alloc(n)
}

func (f *fakeLibrary) Copy(dst Buffer, off int, src Buffer) error {
	f.copies++
	if f.copyErr != nil {
		return f.copyErr
	}
	if _, ok := f.live[dst.Addr]; !ok {
		return errors.New("copy into freed buffer")
	}
	if _, ok := f.live[src.Addr]; !ok {
		return errors.New("copy from freed buffer")
	}
	if off+src.Len > dst.Len {
		return errors.New("copy out of range")
	}
	return nil
}

func (f *fakeLibrary) CopyInt(dst Buffer, off int, src Buffer) error {
	return f.Copy(dst, off, src)
}

func (f *fakeLibrary) Free(b Buffer) error {
	if f.freeErr != nil {
		return f.freeErr
	}
	if _, ok := f.live[b.Addr]; !ok {
		return errors.New("double free")
	}
	delete(f.live, b.Addr)
	return nil
}

func newTestController(t *testing.T) (*Controller, *fakeLibrary) {
	t.Helper()
	lib := newFakeLibrary()
	c, err := NewController(lib, "run.h5")
	require.NoError(t, err)
	return c, lib
}

func TestControllerInit(t *testing.T) {
	c, lib := newTestController(t)

	require.NoError(t, c.Init(BField, "0000000001", false))
	require.Equal(t, map[Category]QID{BField: "0000000001"}, c.Resident())
	require.Equal(t, 1, lib.reads)

	// Same qid again is a no-op: no second native read.
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.Equal(t, 1, lib.reads)

	// A different qid needs switch permission.
	err := c.Init(BField, "0000000002", false)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, map[Category]QID{BField: "0000000001"}, c.Resident())

	// With permission the old buffer is freed and replaced.
	require.NoError(t, c.Init(BField, "0000000002", true))
	require.Equal(t, map[Category]QID{BField: "0000000002"}, c.Resident())
	require.Len(t, lib.live, 1)
}

func TestControllerInitFailureLeavesSlotEmpty(t *testing.T) {
	c, lib := newTestController(t)
	lib.readErr[BField] = errors.New("file locked")

	err := c.Init(BField, "0000000001", false)
	require.ErrorIs(t, err, ErrNativeCall)
	require.Empty(t, c.Resident())
	require.Empty(t, lib.live)

	// Recovery: the read works once the fault clears.
	delete(lib.readErr, BField)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.Equal(t, map[Category]QID{BField: "0000000001"}, c.Resident())
}

func TestControllerInitNonOffloadCategory(t *testing.T) {
	c, _ := newTestController(t)
	err := c.Init(Marker, "0000000001", false)
	require.ErrorIs(t, err, ErrFormat)
}

func TestControllerInitActive(t *testing.T) {
	s := populateInputs(t)
	c, _ := newTestController(t)

	require.NoError(t, c.InitActive(s, BField, EField, Wall, Plasma))
	res := c.Resident()
	require.Len(t, res, 4)

	wantB, err := ActiveQID(s, BField)
	require.NoError(t, err)
	require.Equal(t, wantB, res[BField])

	// A category with no mastergroup fails the whole call.
	err = c.InitActive(s, Boozer)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestControllerRelease(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(Wall, "0000000001", false))
	require.Len(t, lib.live, 2) // float and int payloads

	require.NoError(t, c.Release(Wall))
	require.Empty(t, c.Resident())
	require.Empty(t, lib.live)

	// Releasing a never-initialized category is a no-op.
	require.NoError(t, c.Release(Wall, BField))
}

func TestControllerPackUnpack(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Init(EField, "0000000002", false))
	require.NoError(t, c.Init(Wall, "0000000003", false))

	require.NoError(t, c.Pack())
	require.True(t, c.Packed())
	// Only the two combined allocations remain live.
	require.Len(t, lib.live, 2)

	// Residency survives packing.
	require.Equal(t, map[Category]QID{
		BField: "0000000001", EField: "0000000002", Wall: "0000000003",
	}, c.Resident())

	// Lifecycle operations are rejected while packed.
	require.ErrorIs(t, c.Init(Plasma, "0000000009", false), ErrState)
	require.ErrorIs(t, c.Release(BField), ErrState)
	require.ErrorIs(t, c.Pack(), ErrState)

	// Unpack keeping two of the three: they are re-read, the third is gone.
	readsBefore := lib.reads
	require.NoError(t, c.Unpack(BField, Wall))
	require.False(t, c.Packed())
	require.Equal(t, map[Category]QID{
		BField: "0000000001", Wall: "0000000003",
	}, c.Resident())
	require.Equal(t, readsBefore+2, lib.reads)

	require.ErrorIs(t, c.Unpack(), ErrState)

	// Everything still accounted for: one float buffer each plus wall ints.
	require.Len(t, lib.live, 3)
}

func TestControllerPackOffsets(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Init(Plasma, "0000000002", false))
	require.NoError(t, c.Init(Wall, "0000000003", false))
	require.NoError(t, c.Pack())

	// Pack order is fixed: bfield, efield, plasma, neutral, wall. With efield
	// and neutral absent the extents tile as 16 + 0 + 8 + 0 + 12.
	bv, ok := c.View(BField)
	require.True(t, ok)
	require.Equal(t, lib.sizes[BField], bv.Floats.Len)

	pv, ok := c.View(Plasma)
	require.True(t, ok)
	require.Equal(t, bv.Floats.Addr+uintptr(16*8), pv.Floats.Addr)

	wv, ok := c.View(Wall)
	require.True(t, ok)
	require.Equal(t, pv.Floats.Addr+uintptr(8*8), wv.Floats.Addr)
	require.Equal(t, lib.intSizes[Wall], wv.Ints.Len)

	_, ok = c.View(EField)
	require.False(t, ok)
}

func TestControllerViewUnpacked(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.Init(Wall, "0000000003", false))

	v, ok := c.View(Wall)
	require.True(t, ok)
	require.NotZero(t, v.Floats.Addr)
	require.NotZero(t, v.Ints.Addr)

	_, ok = c.View(BField)
	require.False(t, ok)
}

func TestControllerPackFailureLeaksNothing(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Init(Wall, "0000000002", false))

	lib.copyErr = errors.New("bus error")
	err := c.Pack()
	require.ErrorIs(t, err, ErrNativeCall)

	// The failed pack released everything and cleared residency.
	require.False(t, c.Packed())
	require.Empty(t, c.Resident())
	require.Empty(t, lib.live)

	// The controller is still usable.
	lib.copyErr = nil
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Pack())
	require.NoError(t, c.Unpack(BField))
}

func TestControllerPackAllocFailure(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(EField, "0000000001", false))

	lib.allocErr = errors.New("out of memory")
	require.ErrorIs(t, c.Pack(), ErrNativeCall)
	require.Empty(t, lib.live)
	require.Empty(t, c.Resident())
}

func TestControllerUnpackBadKeepLeavesPackedState(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Pack())
	liveBefore := len(lib.live)

	// A keep entry that is not an offload category rejects the whole call
	// before anything is released.
	err := c.Unpack(Marker)
	require.ErrorIs(t, err, ErrFormat)
	require.True(t, c.Packed())
	require.Len(t, lib.live, liveBefore)
	require.Equal(t, map[Category]QID{BField: "0000000001"}, c.Resident())

	// The packed view is still intact and the controller recovers normally.
	v, ok := c.View(BField)
	require.True(t, ok)
	require.NotZero(t, v.Floats.Addr)
	require.NoError(t, c.Unpack(BField))
	require.Equal(t, map[Category]QID{BField: "0000000001"}, c.Resident())
}

func TestControllerUnpackFreeFailureClearsResidency(t *testing.T) {
	c, lib := newTestController(t)
	require.NoError(t, c.Init(BField, "0000000001", false))
	require.NoError(t, c.Pack())

	lib.freeErr = errors.New("bus error")
	err := c.Unpack(BField)
	require.ErrorIs(t, err, ErrNativeCall)

	// Ownership passed to the failed free: no slot claims the lost memory.
	require.False(t, c.Packed())
	require.Empty(t, c.Resident())
	_, ok := c.View(BField)
	require.False(t, ok)
}

func TestControllerEmptyPack(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.Pack())
	require.True(t, c.Packed())
	require.NoError(t, c.Unpack())
	require.Empty(t, c.Resident())
}

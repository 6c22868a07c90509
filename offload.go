package orbit5

import "sync"

// Controller owns the offload buffers of the native simulation library and
// the lifecycle they move through: per-category initialization while
// Unpacked, merging into one contiguous allocation on Pack, and the reverse
// on Unpack. A single mutex serializes every operation; the controller is
// otherwise not safe for concurrent use, matching the exclusive process-wide
// ownership of the foreign memory.
type Controller struct {
	mu     sync.Mutex
	lib    Library
	source string
	mpi    MPIInfo

	packed   bool
	slots    map[Category]*slot
	combined InputBuffers
	offsets  map[Category]extent
}

// slot is one category's residency bookkeeping. While packed the buffers are
// zero and the recorded lengths locate the category inside the combined
// allocation.
type slot struct {
	qid      QID
	floats   Buffer
	ints     Buffer
	floatLen int
	intLen   int
}

// extent locates one category inside the packed allocation, in elements.
type extent struct {
	off, n       int
	intOff, intN int
}

// NewController binds a controller to the native library and a data source.
// MPI setup runs here, exactly once, and its handle is available via MPI().
func NewController(lib Library, source string) (*Controller, error) {
	mpi, err := lib.InitMPI()
	if err != nil {
		return nil, wrapf(ErrNativeCall, "mpi setup: %v", err)
	}
	c := &Controller{
		lib:    lib,
		source: source,
		mpi:    mpi,
		slots:  make(map[Category]*slot, len(OffloadOrder)),
	}
	for _, cat := range OffloadOrder {
		c.slots[cat] = &slot{}
	}
	return c, nil
}

// MPI returns the handle from the one-time MPI setup.
func (c *Controller) MPI() MPIInfo {
	return c.mpi
}

// Init reads one input category into foreign memory and marks it resident.
// Initializing the already-resident QID is a no-op. Initializing over a
// different resident QID requires allowSwitch, which releases the old input
// first. The resident QID is committed only after the native read succeeds,
// so a failed read never leaves a category claiming data it does not hold.
func (c *Controller) Init(cat Category, qid QID, allowSwitch bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked(cat, qid, allowSwitch)
}

func (c *Controller) initLocked(cat Category, qid QID, allowSwitch bool) error {
	if c.packed {
		return wrapf(ErrState, "cannot initialize %s: inputs are packed", cat)
	}
	sl, err := c.slot(cat)
	if err != nil {
		return err
	}
	if sl.qid == qid {
		return nil
	}
	if sl.qid != "" {
		if !allowSwitch {
			return wrapf(ErrConflict,
				"cannot initialize %s: qid %s is already resident", cat, sl.qid)
		}
		if err := c.releaseLocked(cat); err != nil {
			return err
		}
	}

	bufs, err := c.lib.ReadInput(c.source, cat, qid)
	if err != nil {
		return wrapf(ErrNativeCall, "read %s %s: %v", cat, qid, err)
	}
	sl.qid = qid
	sl.floats = bufs.Floats
	sl.ints = bufs.Ints
	sl.floatLen = bufs.Floats.Len
	sl.intLen = bufs.Ints.Len
	return nil
}

// InitActive resolves each category's active QID in the store and
// initializes it. Already-resident categories are switched.
func (c *Controller) InitActive(s Store, cats ...Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range cats {
		qid, err := ActiveQID(s, cat)
		if err != nil {
			return err
		}
		if err := c.initLocked(cat, qid, true); err != nil {
			return err
		}
	}
	return nil
}

// Release frees the given categories' foreign buffers and clears their
// residency. Releasing an un-resident category is a no-op. Valid only while
// Unpacked.
func (c *Controller) Release(cats ...Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.packed {
		return wrapf(ErrState, "cannot release inputs while packed")
	}
	for _, cat := range cats {
		if err := c.releaseLocked(cat); err != nil {
			return err
		}
	}
	return nil
}

// releaseLocked clears the slot before reporting any native free failure:
// ownership is considered transferred to the failed call, so a retry can
// never double-free.
func (c *Controller) releaseLocked(cat Category) error {
	sl, err := c.slot(cat)
	if err != nil {
		return err
	}
	if sl.qid == "" {
		return nil
	}
	floats, ints := sl.floats, sl.ints
	*sl = slot{}
	if !floats.IsZero() {
		if err := c.lib.Free(floats); err != nil {
			return wrapf(ErrNativeCall, "free %s: %v", cat, err)
		}
	}
	if !ints.IsZero() {
		if err := c.lib.Free(ints); err != nil {
			return wrapf(ErrNativeCall, "free %s (int): %v", cat, err)
		}
	}
	return nil
}

// Pack merges every resident buffer into one contiguous foreign allocation
// (plus one for integer payloads), releasing the individual buffers as they
// are absorbed, and records an offset table locating each category inside
// the combined allocation. After Pack the controller is simulation-ready and
// inputs can no longer be initialized or released until Unpack.
//
// On any native failure mid-pack the combined allocation and every
// not-yet-absorbed buffer are released and all residency is cleared: nothing
// leaks, and no category claims memory it lost.
func (c *Controller) Pack() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.packed {
		return wrapf(ErrState, "inputs are already packed")
	}

	var total, intTotal int
	offsets := make(map[Category]extent, len(OffloadOrder))
	for _, cat := range OffloadOrder {
		sl := c.slots[cat]
		offsets[cat] = extent{off: total, n: sl.floatLen, intOff: intTotal, intN: sl.intLen}
		total += sl.floatLen
		intTotal += sl.intLen
	}
	if err := checkOffsets(offsets, total, intTotal); err != nil {
		return err
	}

	combined, err := c.lib.Alloc(total)
	if err != nil {
		return c.abortPack(Buffer{}, Buffer{}, wrapf(ErrNativeCall, "pack alloc: %v", err))
	}
	combinedInt, err := c.lib.AllocInt(intTotal)
	if err != nil {
		return c.abortPack(combined, Buffer{}, wrapf(ErrNativeCall, "pack alloc (int): %v", err))
	}

	for _, cat := range OffloadOrder {
		sl := c.slots[cat]
		ext := offsets[cat]
		if !sl.floats.IsZero() {
			if err := c.lib.Copy(combined, ext.off, sl.floats); err != nil {
				return c.abortPack(combined, combinedInt,
					wrapf(ErrNativeCall, "pack copy %s: %v", cat, err))
			}
			src := sl.floats
			sl.floats = Buffer{}
			if err := c.lib.Free(src); err != nil {
				return c.abortPack(combined, combinedInt,
					wrapf(ErrNativeCall, "pack free %s: %v", cat, err))
			}
		}
		if !sl.ints.IsZero() {
			if err := c.lib.CopyInt(combinedInt, ext.intOff, sl.ints); err != nil {
				return c.abortPack(combined, combinedInt,
					wrapf(ErrNativeCall, "pack copy %s (int): %v", cat, err))
			}
			src := sl.ints
			sl.ints = Buffer{}
			if err := c.lib.Free(src); err != nil {
				return c.abortPack(combined, combinedInt,
					wrapf(ErrNativeCall, "pack free %s (int): %v", cat, err))
			}
		}
	}

	c.combined = InputBuffers{Floats: combined, Ints: combinedInt}
	c.offsets = offsets
	c.packed = true
	return nil
}

// checkOffsets verifies the cumulative-offset arithmetic: the recorded
// extents must tile the combined allocation exactly.
func checkOffsets(offsets map[Category]extent, total, intTotal int) error {
	var sum, intSum int
	for _, cat := range OffloadOrder {
		ext := offsets[cat]
		if ext.off != sum || ext.intOff != intSum {
			return wrapf(ErrState, "offset table is not cumulative at %s", cat)
		}
		sum += ext.n
		intSum += ext.intN
	}
	if sum != total || intSum != intTotal {
		return wrapf(ErrState, "offset table does not cover the packed allocation")
	}
	return nil
}

// abortPack releases everything the failed pack still owns and clears all
// residency. The controller stays Unpacked.
func (c *Controller) abortPack(combined, combinedInt Buffer, cause error) error {
	if !combined.IsZero() {
		_ = c.lib.Free(combined)
	}
	if !combinedInt.IsZero() {
		_ = c.lib.Free(combinedInt)
	}
	for _, cat := range OffloadOrder {
		sl := c.slots[cat]
		floats, ints := sl.floats, sl.ints
		*sl = slot{}
		if !floats.IsZero() {
			_ = c.lib.Free(floats)
		}
		if !ints.IsZero() {
			_ = c.lib.Free(ints)
		}
	}
	return cause
}

// Unpack releases the combined allocation, resets the offset bookkeeping and
// re-initializes the requested categories from the data source. Categories
// not kept become un-resident. Valid only while Packed.
//
// The keep list is validated before anything is released: a bad entry leaves
// the controller Packed and untouched. Residency is cleared before the native
// frees run, so even a failed free never leaves a slot claiming memory it
// lost.
func (c *Controller) Unpack(keep ...Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.packed {
		return wrapf(ErrState, "inputs are not packed")
	}

	reinit := make(map[Category]QID, len(keep))
	for _, cat := range keep {
		sl, err := c.slot(cat)
		if err != nil {
			return err
		}
		if sl.qid != "" {
			reinit[cat] = sl.qid
		}
	}

	combined := c.combined
	c.combined = InputBuffers{}
	c.offsets = nil
	c.packed = false
	for _, cat := range OffloadOrder {
		*c.slots[cat] = slot{}
	}

	if !combined.Floats.IsZero() {
		if err := c.lib.Free(combined.Floats); err != nil {
			return wrapf(ErrNativeCall, "unpack free: %v", err)
		}
	}
	if !combined.Ints.IsZero() {
		if err := c.lib.Free(combined.Ints); err != nil {
			return wrapf(ErrNativeCall, "unpack free (int): %v", err)
		}
	}

	for _, cat := range OffloadOrder {
		qid, ok := reinit[cat]
		if !ok {
			continue
		}
		if err := c.initLocked(cat, qid, false); err != nil {
			return err
		}
	}
	return nil
}

// Resident returns the currently resident categories and their QIDs. Pure;
// valid in either state.
func (c *Controller) Resident() map[Category]QID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Category]QID)
	for cat, sl := range c.slots {
		if sl.qid != "" {
			out[cat] = sl.qid
		}
	}
	return out
}

// Packed reports whether the inputs are merged for simulation.
func (c *Controller) Packed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.packed
}

// View returns the buffers currently holding a category's payload: the
// category's own allocation while Unpacked, or a view into the combined
// allocation computed from the offset table while Packed. The second result
// is false when the category is un-resident.
func (c *Controller) View(cat Category) (InputBuffers, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sl, err := c.slot(cat)
	if err != nil || sl.qid == "" {
		return InputBuffers{}, false
	}
	if !c.packed {
		return InputBuffers{Floats: sl.floats, Ints: sl.ints}, true
	}
	ext := c.offsets[cat]
	out := InputBuffers{}
	if ext.n > 0 {
		out.Floats = Buffer{Addr: c.combined.Floats.Addr + uintptr(ext.off)*8, Len: ext.n}
	}
	if ext.intN > 0 {
		out.Ints = Buffer{Addr: c.combined.Ints.Addr + uintptr(ext.intOff)*4, Len: ext.intN}
	}
	return out, true
}

func (c *Controller) slot(cat Category) (*slot, error) {
	sl, ok := c.slots[cat]
	if !ok {
		return nil, wrapf(ErrFormat, "category %s is not a native offload input", cat)
	}
	return sl, nil
}

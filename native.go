package orbit5

// Contract with the precompiled native simulation library. The offload
// controller is the sole owner of calls across this boundary; nothing else in
// this package touches foreign memory.

// Buffer is a foreign-owned allocation. Addr is the address of the first
// element; Len counts elements (float64 or int32 depending on which
// allocation call produced the buffer).
type Buffer struct {
	Addr uintptr
	Len  int
}

// IsZero reports whether the buffer references no allocation.
func (b Buffer) IsZero() bool {
	return b.Addr == 0
}

// InputBuffers is the result of reading one input category into foreign
// memory. Ints is only populated for the wall category.
type InputBuffers struct {
	Floats Buffer
	Ints   Buffer
}

// MPIInfo is the handle returned by the one-time MPI setup.
type MPIInfo struct {
	Rank int
	Size int
	Root int
}

// Library is the foreign-function surface of the native simulation library.
// Implementations report every native failure as an error; the controller
// wraps them as ErrNativeCall. All calls block; none are re-entrant.
type Library interface {
	// InitMPI performs the one-time MPI setup and returns the process's
	// place in the communicator. Called exactly once per controller.
	InitMPI() (MPIInfo, error)

	// ReadInput reads one input category from the named data source into
	// freshly allocated foreign buffers. Ownership of the returned buffers
	// passes to the caller.
	ReadInput(source string, cat Category, qid QID) (InputBuffers, error)

	// Alloc allocates a foreign buffer of n float64 elements.
	Alloc(n int) (Buffer, error)

	// AllocInt allocates a foreign buffer of n int32 elements.
	AllocInt(n int) (Buffer, error)

	// Copy copies src into dst starting at element offset off. Both buffers
	// hold float64 elements.
	Copy(dst Buffer, off int, src Buffer) error

	// CopyInt is Copy for int32 buffers.
	CopyInt(dst Buffer, off int, src Buffer) error

	// Free releases a foreign buffer. The controller guarantees each buffer
	// is released exactly once.
	Free(b Buffer) error
}

//go:build libascot

package orbit5

// Binding to the precompiled simulation library. Built only with the
// "libascot" tag since the shared library and an MPI toolchain must be
// present.
//
// NOTE: Use
// $ mpicc --showme:compile
// $ mpicc --showme:link
// to figure out CFLAGS and LDFLAGS, respectively.

/*
#cgo LDFLAGS: -lascot -lm
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

extern int  libascot_mpi_init(int *rank, int *size, int *root);
extern double  *libascot_allocate(int64_t n);
extern int32_t *libascot_allocate_int(int64_t n);
extern void     libascot_deallocate(void *p);
extern int  libascot_read_input(const char *fn, const char *category,
                                const char *qid,
                                double **data, int64_t *n,
                                int32_t **idata, int64_t *ni);
*/
import "C"

import "unsafe"

// NativeLibrary drives the precompiled simulation library over its C
// interface. The zero value is ready to use.
type NativeLibrary struct{}

var _ Library = NativeLibrary{}

// InitMPI performs the one-time MPI setup of the native side.
func (NativeLibrary) InitMPI() (MPIInfo, error) {
	var rank, size, root C.int
	if rc := C.libascot_mpi_init(&rank, &size, &root); rc != 0 {
		return MPIInfo{}, nativeError("libascot_mpi_init", int(rc))
	}
	return MPIInfo{Rank: int(rank), Size: int(size), Root: int(root)}, nil
}

// ReadInput asks the native reader to load one input group from an HDF5 file
// into buffers it allocates itself.
func (NativeLibrary) ReadInput(source string, cat Category, qid QID) (InputBuffers, error) {
	cfn := C.CString(source)
	ccat := C.CString(cat.String())
	cqid := C.CString(string(qid))
	defer C.free(unsafe.Pointer(cfn))
	defer C.free(unsafe.Pointer(ccat))
	defer C.free(unsafe.Pointer(cqid))

	var data *C.double
	var idata *C.int32_t
	var n, ni C.int64_t
	if rc := C.libascot_read_input(cfn, ccat, cqid, &data, &n, &idata, &ni); rc != 0 {
		return InputBuffers{}, nativeError("libascot_read_input", int(rc))
	}
	out := InputBuffers{
		Floats: Buffer{Addr: uintptr(unsafe.Pointer(data)), Len: int(n)},
	}
	if idata != nil {
		out.Ints = Buffer{Addr: uintptr(unsafe.Pointer(idata)), Len: int(ni)}
	}
	return out, nil
}

// Alloc allocates n float64 elements in native memory.
func (NativeLibrary) Alloc(n int) (Buffer, error) {
	p := C.libascot_allocate(C.int64_t(n))
	if p == nil && n > 0 {
		return Buffer{}, nativeError("libascot_allocate", -1)
	}
	return Buffer{Addr: uintptr(unsafe.Pointer(p)), Len: n}, nil
}

// AllocInt allocates n int32 elements in native memory.
func (NativeLibrary) AllocInt(n int) (Buffer, error) {
	p := C.libascot_allocate_int(C.int64_t(n))
	if p == nil && n > 0 {
		return Buffer{}, nativeError("libascot_allocate_int", -1)
	}
	return Buffer{Addr: uintptr(unsafe.Pointer(p)), Len: n}, nil
}

// Copy copies src into dst at element offset off. Both buffers hold float64.
func (NativeLibrary) Copy(dst Buffer, off int, src Buffer) error {
	if off+src.Len > dst.Len {
		return nativeError("copy out of range", -1)
	}
	d := unsafe.Pointer(dst.Addr + uintptr(off)*8)
	C.memcpy(d, unsafe.Pointer(src.Addr), C.size_t(src.Len)*8)
	return nil
}

// CopyInt is Copy for int32 buffers.
func (NativeLibrary) CopyInt(dst Buffer, off int, src Buffer) error {
	if off+src.Len > dst.Len {
		return nativeError("copy out of range", -1)
	}
	d := unsafe.Pointer(dst.Addr + uintptr(off)*4)
	C.memcpy(d, unsafe.Pointer(src.Addr), C.size_t(src.Len)*4)
	return nil
}

// Free releases a native allocation.
func (NativeLibrary) Free(b Buffer) error {
	if !b.IsZero() {
		C.libascot_deallocate(unsafe.Pointer(b.Addr))
	}
	return nil
}

func nativeError(call string, rc int) error {
	return wrapf(ErrNativeCall, "%s returned %d", call, rc)
}

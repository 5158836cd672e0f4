package memory

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/dictmerge/errs"
)

// Alignment is the byte alignment of buffers returned by GoAllocator.
const Alignment = 64

// Allocator provides raw buffer allocation.
//
// Allocate returns a zeroed slice of exactly size bytes, or an error if the request
// cannot be satisfied. Free returns a slice previously obtained from Allocate.
// Implementations must be safe for concurrent use.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Free(b []byte)
}

// GoAllocator allocates 64-byte aligned memory from the Go heap.
type GoAllocator struct{}

var _ Allocator = (*GoAllocator)(nil)

// NewGoAllocator creates a new Go heap allocator.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

// DefaultAllocator is used wherever a nil Allocator is passed.
var DefaultAllocator Allocator = NewGoAllocator()

// Allocate allocates a zeroed, 64-byte aligned byte slice of the given size.
//
// Parameters:
//   - size: Number of bytes to allocate (must be non-negative)
//
// Returns:
//   - []byte: Aligned slice of length size (nil when size is 0)
//   - error: errs.ErrInvalid if size is negative
func (a *GoAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative allocation size %d", errs.ErrInvalid, size)
	}
	if size == 0 {
		return nil, nil
	}

	// Over-allocate so the start can be shifted up to the next aligned address.
	raw := make([]byte, size+Alignment)
	addr := uintptr(unsafe.Pointer(&raw[0])) //nolint:gosec
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return raw[offset : offset+uintptr(size) : offset+uintptr(size)], nil
}

// Free is a no-op; the garbage collector reclaims the memory.
func (a *GoAllocator) Free([]byte) {}

// orDefault returns alloc, or DefaultAllocator if alloc is nil.
func orDefault(alloc Allocator) Allocator {
	if alloc == nil {
		return DefaultAllocator
	}

	return alloc
}

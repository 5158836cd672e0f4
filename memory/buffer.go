package memory

import (
	"sync/atomic"
	"unsafe"
)

// Buffer is an immutable, reference-counted region of bytes.
//
// The allocating code may write into Bytes() until the buffer is attached to an array;
// from then on the contents must not change, which is what makes sharing a *Buffer
// between arrays safe without copying.
type Buffer struct {
	refCount atomic.Int64
	buf      []byte
	mem      Allocator
}

// NewBufferBytes wraps data in a Buffer without copying.
// The buffer is not owned by any allocator and Release never frees it.
func NewBufferBytes(data []byte) *Buffer {
	b := &Buffer{buf: data}
	b.refCount.Store(1)

	return b
}

// AllocateBuffer allocates a zeroed buffer of size bytes from alloc.
//
// Parameters:
//   - alloc: Allocator to use (nil means DefaultAllocator)
//   - size: Number of bytes
//
// Returns:
//   - *Buffer: Buffer with a reference count of 1
//   - error: Allocation error from alloc, propagated unchanged
func AllocateBuffer(alloc Allocator, size int) (*Buffer, error) {
	alloc = orDefault(alloc)

	data, err := alloc.Allocate(size)
	if err != nil {
		return nil, err
	}

	b := &Buffer{buf: data, mem: alloc}
	b.refCount.Store(1)

	return b, nil
}

// Bytes returns the underlying bytes.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}

	return b.buf
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}

	return len(b.buf)
}

// Retain adds a reference.
func (b *Buffer) Retain() {
	if b != nil {
		b.refCount.Add(1)
	}
}

// Release drops a reference; the last release returns the memory to its allocator.
func (b *Buffer) Release() {
	if b == nil {
		return
	}

	if b.refCount.Add(-1) == 0 && b.mem != nil {
		b.mem.Free(b.buf)
		b.buf = nil
	}
}

// RefCount returns the current reference count.
func (b *Buffer) RefCount() int64 {
	return b.refCount.Load()
}

// FixedWidth is the set of element types a buffer can be viewed as.
type FixedWidth interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// ViewAs reinterprets a byte slice as a slice of T in native byte order without copying.
// Trailing bytes that do not make up a whole element are ignored.
//
// The slice must be suitably aligned for T; slices from GoAllocator always are.
func ViewAs[T FixedWidth](data []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(data) < size {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size) //nolint:gosec
}

// Int32s views a buffer as int32 values, as used for dictionary transpose maps.
func Int32s(b *Buffer) []int32 {
	return ViewAs[int32](b.Bytes())
}

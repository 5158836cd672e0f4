// Package memory provides the allocators and buffers that back dictmerge arrays.
//
// # Allocators
//
// An Allocator hands out raw byte slices. GoAllocator allocates from the Go heap with
// 64-byte alignment so buffers can be viewed as any fixed-width integer or float slice.
// LimitedAllocator wraps another allocator with a hard byte budget and fails with
// errs.ErrOutOfMemory instead of growing past it.
//
// # Buffers
//
// A Buffer is an immutable, reference-counted byte region. It is written once by the
// code that allocated it and then published; after that it may be shared by any number
// of arrays (and goroutines) by pointer. Sharing a *Buffer is how dictionary
// transposition avoids copying codes and validity bitmaps.
package memory

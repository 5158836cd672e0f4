// Package encoding turns the arrays of a dictionary-encoded column into fragment payloads
// and back.
//
// Two encoder/decoder pairs exist:
//
//   - ValueEncoder / ValueDecoder: the dictionary values. Fixed-width types are written
//     at their natural width in the fragment's byte order. Strings and byte strings are
//     written as a uvarint length followed by the bytes. Booleans are bit-packed.
//   - CodeEncoder / CodeDecoder: the codes at the index type's width, plus the validity
//     bitmap realigned to bit 0.
//
// Encoders accumulate into pooled buffers (internal/pool) and must be released with
// Finish. Decoders are stateless values; they allocate the resulting buffers from a
// memory.Allocator so decoded arrays count against the caller's memory budget.
//
// Compression is not applied here; see package compress.
package encoding

// Package dictmerge unifies dictionary-encoded columns that were built independently.
//
// A dictionary-encoded column stores each distinct value once, in its dictionary, and
// one integer code per row that indexes into it. Columns produced by different sources
// (file fragments, partitions, writers) carry different dictionaries for the same
// value type, so their codes cannot be compared or concatenated directly. dictmerge
// fixes that in two steps:
//
//  1. Unification: a Unifier accumulates the dictionaries into one canonical
//     dictionary. Distinct values get canonical codes in first-seen order, and each
//     input dictionary yields a transpose map from its positions to canonical codes.
//     The canonical index type is the narrowest of int8, int16, int32 and int64 that
//     can address every value.
//  2. Transposition: each column's codes are rewritten through its transpose map into
//     the canonical index type. When the codes would not change, the column's buffers
//     are shared instead of copied.
//
// # Core Features
//
//   - Unification of integer, floating point, string and binary dictionaries
//   - Canonical index width chosen from signed maxima (127 values fit int8, 128 need int16)
//   - Zero-copy transposition when codes and index width are unchanged
//   - Validity bitmaps realigned for sliced columns
//   - Pluggable, budgeted allocation (memory.LimitedAllocator)
//   - Column fragments: a compact binary form (None, Zstd, S2, LZ4) with checksums
//   - Concurrent per-column merging of whole tables
//
// # Basic Usage
//
// Merging in-memory columns:
//
//	res, err := dictmerge.MergeColumns(colA, colB)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//
//	// res.Columns[i] now indexes into res.Dictionary with type res.Type.
//
// Using the building blocks directly:
//
//	u, _ := dictmerge.NewUnifier(format.String)
//	mapA, _ := u.UnifyAndTranspose(colA.Dictionary())
//	mapB, _ := u.UnifyAndTranspose(colB.Dictionary())
//	typ, dict, _ := u.GetResult()
//	outA, _ := dictmerge.Transpose(colA, typ, dict, dictionary.TransposeMap(mapA))
//
// Merging encoded fragments:
//
//	enc, _ := dictmerge.NewDefaultFragmentEncoder()
//	frag, _ := enc.Encode(colA)
//	res, err := dictmerge.MergeFragments(ctx, frag.Bytes(), otherFragment)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dictionary, merge and
// fragment packages, using the default allocator. For allocation control, logging or
// concurrency settings, use those packages directly.
package dictmerge

import (
	"context"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/dictionary"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/fragment"
	"github.com/arloliu/dictmerge/merge"
)

var defaultFragmentOptions = []fragment.EncoderOption{
	fragment.WithLittleEndian(),
	fragment.WithCompression(format.CompressionZstd),
}

// NewUnifier creates a Unifier for dictionaries of valueType using the default allocator.
//
// Parameters:
//   - valueType: Type of the dictionary values
//
// Returns:
//   - dictionary.Unifier: The unifier
//   - error: errs.ErrNotImplemented if valueType cannot be unified
func NewUnifier(valueType format.DataType) (dictionary.Unifier, error) {
	return dictionary.NewUnifier(nil, valueType)
}

// Transpose rewrites the codes of arr into the dictionary type typ through transposeMap,
// using the default allocator. See dictionary.Transpose.
func Transpose(arr *array.Dictionary, typ format.DataType, dict array.Array, transposeMap []int32) (*array.Dictionary, error) {
	return dictionary.Transpose(nil, arr, typ, dict, transposeMap)
}

// NewMerger creates a Merger with custom options.
//
// Available options:
//   - merge.WithAllocator(alloc)
//   - merge.WithLogger(logger)
//   - merge.WithWorkers(n)
func NewMerger(opts ...merge.Option) (*merge.Merger, error) {
	return merge.New(opts...)
}

// MergeColumns unifies the dictionaries of cols and transposes every column into the
// canonical dictionary.
//
// Returns:
//   - *merge.Result: The merged column, owned by the caller
//   - error: See merge.Merger.MergeColumn
func MergeColumns(cols ...*array.Dictionary) (*merge.Result, error) {
	m, err := merge.New()
	if err != nil {
		return nil, err
	}

	return m.MergeColumn(cols)
}

// MergeFragments decodes encoded fragments of one column and merges them.
func MergeFragments(ctx context.Context, blobs ...[]byte) (*merge.Result, error) {
	m, err := merge.New()
	if err != nil {
		return nil, err
	}

	return m.MergeFragments(ctx, blobs)
}

// NewFragmentEncoder creates a fragment encoder with custom options.
//
// Available options:
//   - fragment.WithLittleEndian() / fragment.WithBigEndian()
//   - fragment.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
func NewFragmentEncoder(opts ...fragment.EncoderOption) (*fragment.Encoder, error) {
	return fragment.NewEncoder(opts...)
}

// NewDefaultFragmentEncoder creates a fragment encoder with recommended settings:
// little-endian byte order and Zstd compression.
func NewDefaultFragmentEncoder() (*fragment.Encoder, error) {
	return fragment.NewEncoder(defaultFragmentOptions...)
}

// DecodeFragment decodes one encoded fragment using the default allocator.
func DecodeFragment(data []byte) (*array.Dictionary, error) {
	return fragment.Decode(nil, data)
}

// DecodeFragments decodes several encoded fragments of one column using the default allocator.
//
// Returns:
//   - []*array.Dictionary: One column per fragment, owned by the caller
//   - error: Open or decode errors wrapped with the fragment position
func DecodeFragments(blobs ...[]byte) ([]*array.Dictionary, error) {
	set, err := fragment.DecodeSet(blobs...)
	if err != nil {
		return nil, err
	}

	return set.Columns(nil)
}

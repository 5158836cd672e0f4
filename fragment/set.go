package fragment

import (
	"fmt"
	"iter"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

// Set holds the fragments of one column, in the order they were given.
//
// All fragments of a Set share a value type; their index types, dictionaries and
// compression may differ.
type Set struct {
	fragments []Fragment
}

// NewSet creates a Set from opened fragments.
//
// Returns:
//   - Set: The set
//   - error: errs.ErrTypeMismatch if the fragments have different value types
func NewSet(fragments ...Fragment) (Set, error) {
	for i := 1; i < len(fragments); i++ {
		want, got := fragments[0].header.Flag.ValueTypeID(), fragments[i].header.Flag.ValueTypeID()
		if want != got {
			return Set{}, fmt.Errorf("%w: fragment %d has values of %s, fragment 0 has %s", errs.ErrTypeMismatch, i, got, want)
		}
	}

	return Set{fragments: append([]Fragment(nil), fragments...)}, nil
}

// DecodeSet opens each encoded fragment and groups them into a Set.
//
// Parameters:
//   - blobs: Encoded fragments of one column
//
// Returns:
//   - Set: The set
//   - error: The first Open error, wrapped with the fragment position, or a NewSet error
func DecodeSet(blobs ...[]byte) (Set, error) {
	fragments := make([]Fragment, 0, len(blobs))
	for i, data := range blobs {
		f, err := Open(data)
		if err != nil {
			return Set{}, fmt.Errorf("fragment %d: %w", i, err)
		}
		fragments = append(fragments, f)
	}

	return NewSet(fragments...)
}

// Len returns the number of fragments.
func (s Set) Len() int { return len(s.fragments) }

// Rows returns the total row count of all fragments.
func (s Set) Rows() int {
	n := 0
	for _, f := range s.fragments {
		n += f.Len()
	}

	return n
}

// ValueType returns the shared value type, or nil for an empty set.
func (s Set) ValueType() format.DataType {
	if len(s.fragments) == 0 {
		return nil
	}
	dt, _ := format.PrimitiveOf(s.fragments[0].header.Flag.ValueTypeID())

	return dt
}

// At returns fragment i.
func (s Set) At(i int) Fragment { return s.fragments[i] }

// All iterates over the fragments with their positions.
func (s Set) All() iter.Seq2[int, Fragment] {
	return func(yield func(int, Fragment) bool) {
		for i, f := range s.fragments {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Columns decodes every fragment.
//
// On error, columns decoded so far are released and none are returned.
//
// Parameters:
//   - alloc: Allocator for the decoded buffers (nil means memory.DefaultAllocator)
//
// Returns:
//   - []*array.Dictionary: One column per fragment, owned by the caller
//   - error: The first decode error, wrapped with the fragment position
func (s Set) Columns(alloc memory.Allocator) ([]*array.Dictionary, error) {
	cols := make([]*array.Dictionary, 0, len(s.fragments))
	for i, f := range s.fragments {
		col, err := f.Decode(alloc)
		if err != nil {
			for _, c := range cols {
				c.Release()
			}

			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		cols = append(cols, col)
	}

	return cols, nil
}

package hashing

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/internal/hash"
)

// BinaryMemoTable memoizes variable-length byte strings.
//
// Values are bucketed by their xxHash64; entries within a bucket are compared byte by
// byte, so hash collisions never merge distinct values. Memoized values are stored
// back to back in one data slice with int32 offsets, which is the layout binary and
// string arrays use.
type BinaryMemoTable struct {
	buckets map[uint64][]int32 // hash -> identities sharing that hash
	offsets []int32            // len == Size()+1, offsets[0] == 0
	data    []byte
}

// NewBinaryMemoTable creates a memo table sized for capacity values totalling dataCapacity bytes.
func NewBinaryMemoTable(capacity, dataCapacity int) *BinaryMemoTable {
	offsets := make([]int32, 1, capacity+1)

	return &BinaryMemoTable{
		buckets: make(map[uint64][]int32, capacity),
		offsets: offsets,
		data:    make([]byte, 0, dataCapacity),
	}
}

// Size returns the number of distinct values inserted.
func (m *BinaryMemoTable) Size() int {
	return len(m.offsets) - 1
}

// ValuesSize returns the total byte length of all memoized values.
func (m *BinaryMemoTable) ValuesSize() int {
	return len(m.data)
}

// Value returns the value with the given identity.
// The returned slice aliases the table's storage and must not be modified.
func (m *BinaryMemoTable) Value(idx int32) []byte {
	return m.data[m.offsets[idx]:m.offsets[idx+1]]
}

// Get returns the identity of v if it has been inserted.
func (m *BinaryMemoTable) Get(v []byte) (int32, bool) {
	return m.lookup(hash.Bytes(v), v)
}

func (m *BinaryMemoTable) lookup(h uint64, v []byte) (int32, bool) {
	for _, idx := range m.buckets[h] {
		if bytes.Equal(m.Value(idx), v) {
			return idx, true
		}
	}

	return -1, false
}

// GetOrInsert returns the identity of v, assigning the next identity if v is new.
//
// Returns:
//   - int32: Identity of v
//   - bool: true if v was already present
//   - error: errs.ErrInvalid if the table is full or the data would exceed int32 offsets
func (m *BinaryMemoTable) GetOrInsert(v []byte) (int32, bool, error) {
	h := hash.Bytes(v)
	if idx, ok := m.lookup(h, v); ok {
		return idx, true, nil
	}

	if m.Size() >= math.MaxInt32 {
		return -1, false, fmt.Errorf("%w: memo table is full", errs.ErrInvalid)
	}
	if len(m.data)+len(v) > math.MaxInt32 {
		return -1, false, fmt.Errorf("%w: memoized binary data exceeds %d bytes", errs.ErrInvalid, math.MaxInt32)
	}

	idx := int32(m.Size()) //nolint:gosec
	m.data = append(m.data, v...)
	m.offsets = append(m.offsets, int32(len(m.data))) //nolint:gosec
	m.buckets[h] = append(m.buckets[h], idx)

	return idx, false, nil
}

// GetOrInsertString is GetOrInsert for string values.
func (m *BinaryMemoTable) GetOrInsertString(v string) (int32, bool, error) {
	return m.GetOrInsert([]byte(v))
}

// CopyOffsets writes the offsets of identities [start, Size()] into out, rebased so
// that out[0] == 0. out must hold at least Size()-start+1 elements.
func (m *BinaryMemoTable) CopyOffsets(start int, out []int32) {
	base := m.offsets[start]
	for i, off := range m.offsets[start:] {
		out[i] = off - base
	}
}

// CopyValues copies the bytes of identities [start, Size()) into out.
// out must hold at least ValuesSize() minus the start offset bytes.
func (m *BinaryMemoTable) CopyValues(start int, out []byte) {
	copy(out, m.data[m.offsets[start]:])
}

// ValuesSizeFrom returns the byte length of identities [start, Size()).
func (m *BinaryMemoTable) ValuesSizeFrom(start int) int {
	return len(m.data) - int(m.offsets[start])
}

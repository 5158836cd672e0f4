package hashing

import (
	"fmt"
	"math"

	"github.com/arloliu/dictmerge/errs"
)

// Scalar is the set of fixed-width value types a ScalarMemoTable can hold.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// ScalarMemoTable memoizes fixed-width values.
//
// Floating point values are keyed on their bit pattern, so -0.0 and +0.0 are distinct.
// All NaN values share one identity, whatever their bit pattern.
type ScalarMemoTable[T Scalar] struct {
	index    map[uint64]int32
	values   []T
	nanIndex int32
	float    bool
}

// NewScalarMemoTable creates a memo table with room for capacity values.
func NewScalarMemoTable[T Scalar](capacity int) *ScalarMemoTable[T] {
	return &ScalarMemoTable[T]{
		index:    make(map[uint64]int32, capacity),
		values:   make([]T, 0, capacity),
		nanIndex: -1,
		float:    isFloat[T](),
	}
}

// Size returns the number of distinct values inserted.
func (m *ScalarMemoTable[T]) Size() int {
	return len(m.values)
}

// Get returns the identity of v if it has been inserted.
func (m *ScalarMemoTable[T]) Get(v T) (int32, bool) {
	if isNaN(v) {
		return m.nanIndex, m.nanIndex >= 0
	}
	idx, ok := m.index[m.key(v)]

	return idx, ok
}

// GetOrInsert returns the identity of v, assigning the next identity if v is new.
//
// Returns:
//   - int32: Identity of v
//   - bool: true if v was already present
//   - error: errs.ErrInvalid if the table already holds math.MaxInt32 values
func (m *ScalarMemoTable[T]) GetOrInsert(v T) (int32, bool, error) {
	if idx, ok := m.Get(v); ok {
		return idx, true, nil
	}

	if len(m.values) >= math.MaxInt32 {
		return -1, false, fmt.Errorf("%w: memo table is full", errs.ErrInvalid)
	}

	idx := int32(len(m.values)) //nolint:gosec
	m.values = append(m.values, v)
	if isNaN(v) {
		m.nanIndex = idx
	} else {
		m.index[m.key(v)] = idx
	}

	return idx, false, nil
}

// Values returns the memoized values in identity order.
// The returned slice is owned by the table and must not be modified.
func (m *ScalarMemoTable[T]) Values() []T {
	return m.values
}

// CopyValues copies values with identities [start, Size()) into out.
// out must hold at least Size()-start elements.
func (m *ScalarMemoTable[T]) CopyValues(start int, out []T) {
	copy(out, m.values[start:])
}

// key maps v to a map key that is unique per bit pattern.
// float32 widens to float64 exactly, so distinct float32 values keep distinct keys.
func (m *ScalarMemoTable[T]) key(v T) uint64 {
	if m.float {
		return math.Float64bits(float64(v))
	}

	return uint64(v) //nolint:gosec
}

// isFloat reports whether T is a floating point type.
func isFloat[T Scalar]() bool {
	one := T(1)

	return one/2 != 0
}

// isNaN reports whether v is a floating point NaN; it is always false for integers.
func isNaN[T Scalar](v T) bool {
	return v != v //nolint:gocritic
}

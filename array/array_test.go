package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

func TestNewNumeric(t *testing.T) {
	arr, err := NewNumeric[int32](nil, format.Int32, []int32{1, 2, 3, 4}, []bool{true, false, true, true})
	require.NoError(t, err)

	require.Equal(t, 4, arr.Len())
	require.Equal(t, 1, arr.NullN())
	require.True(t, arr.IsNull(1))
	require.True(t, arr.IsValid(2))
	require.Equal(t, int32(4), arr.Value(3))
	require.Equal(t, []int32{1, 2, 3, 4}, arr.Values())
	require.True(t, format.TypeEqual(format.Int32, arr.DataType()))
}

func TestNewNumeric_NoNullsHasNoBitmap(t *testing.T) {
	arr, err := NewNumeric[float64](nil, format.Float64, []float64{1.5, 2.5}, []bool{true, true})
	require.NoError(t, err)

	require.Nil(t, arr.Data().Buffers()[0])
	require.Equal(t, 0, arr.NullN())
	require.False(t, arr.IsNull(0))
}

func TestNewNumeric_WidthMismatch(t *testing.T) {
	_, err := NewNumeric[int32](nil, format.Int64, []int32{1}, nil)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestNewNumeric_ValidityLengthMismatch(t *testing.T) {
	_, err := NewNumeric[int8](nil, format.Int8, []int8{1, 2}, []bool{true})
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestNewBinary(t *testing.T) {
	arr, err := NewBinary(nil, format.String, []string{"foo", "", "barbaz"}, []bool{true, false, true})
	require.NoError(t, err)

	require.Equal(t, 3, arr.Len())
	require.Equal(t, 1, arr.NullN())
	require.Equal(t, "foo", arr.ValueString(0))
	require.Equal(t, []byte("barbaz"), arr.Value(2))
	require.Equal(t, 6, arr.ValueLen(2))
	require.Equal(t, []string{"foo", "", "barbaz"}, arr.Strings())
}

func TestNewBinary_Empty(t *testing.T) {
	arr, err := NewBinary(nil, format.Binary, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, arr.Len())
	require.Empty(t, arr.Strings())
}

func TestNewSlice_Numeric(t *testing.T) {
	arr, err := NewNumeric[int64](nil, format.Int64, []int64{0, 1, 2, 3, 4, 5}, []bool{true, false, true, false, true, true})
	require.NoError(t, err)

	sliced, err := NewSlice(arr, 1, 5)
	require.NoError(t, err)

	num, ok := sliced.(*Numeric[int64])
	require.True(t, ok)
	require.Equal(t, []int64{1, 2, 3, 4}, num.Values())
	require.Equal(t, 1, num.Offset())
	require.Equal(t, 2, num.NullN())
	require.True(t, num.IsNull(0))
	require.True(t, num.IsValid(1))
	require.True(t, num.IsNull(2))

	// Buffers are shared, not copied.
	require.Same(t, arr.Data().Buffers()[1], sliced.Data().Buffers()[1])
	require.Same(t, arr.Data().Buffers()[0], sliced.Data().Buffers()[0])
}

func TestNewSlice_OutOfRange(t *testing.T) {
	arr, err := NewNumeric[int8](nil, format.Int8, []int8{1, 2}, nil)
	require.NoError(t, err)

	_, err = NewSlice(arr, 1, 3)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestNewSlice_Binary(t *testing.T) {
	arr, err := NewBinary(nil, format.String, []string{"a", "bb", "ccc"}, nil)
	require.NoError(t, err)

	sliced, err := NewSlice(arr, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"bb", "ccc"}, sliced.(*Binary).Strings())
}

func TestNewDictionary(t *testing.T) {
	dict, err := NewNumeric[int64](nil, format.Int64, []int64{10, 20, 30}, nil)
	require.NoError(t, err)

	dt := format.Dictionary(format.Int8, format.Int64)
	arr, err := NewDictionary(nil, dt, []int64{0, 1, 2, 1, 0}, []bool{true, true, false, true, true}, dict)
	require.NoError(t, err)

	require.Equal(t, 5, arr.Len())
	require.Equal(t, 1, arr.NullN())
	require.True(t, arr.IsNull(2))
	require.Equal(t, []int64{0, 1, 2, 1, 0}, arr.Codes())
	require.Equal(t, int64(1), arr.CodeAt(3))
	require.Same(t, dt, arr.DictType())
	require.True(t, format.TypeEqual(format.Int8, arr.IndexType()))
	require.Equal(t, []int64{10, 20, 30}, arr.Dictionary().(*Numeric[int64]).Values())
	require.Equal(t, []int8{0, 1, 2, 1, 0}, arr.Indices().(*Numeric[int8]).Values())
}

func TestNewDictionary_ValueTypeMismatch(t *testing.T) {
	dict, err := NewNumeric[int32](nil, format.Int32, []int32{1}, nil)
	require.NoError(t, err)

	_, err = NewDictionary(nil, format.Dictionary(format.Int8, format.Int64), []int64{0}, nil, dict)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestNewDictionary_UnsupportedIndexType(t *testing.T) {
	dict, err := NewNumeric[int32](nil, format.Int32, []int32{1}, nil)
	require.NoError(t, err)

	_, err = NewDictionary(nil, format.Dictionary(format.Uint8, format.Int32), []int64{0}, nil, dict)
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

func TestNewSlice_Dictionary(t *testing.T) {
	dict, err := NewBinary(nil, format.String, []string{"x", "y"}, nil)
	require.NoError(t, err)

	arr, err := NewDictionary(nil, format.Dictionary(format.Int16, format.String), []int64{1, 0, 1, 1}, nil, dict)
	require.NoError(t, err)

	sliced, err := NewSlice(arr, 1, 4)
	require.NoError(t, err)

	d, ok := sliced.(*Dictionary)
	require.True(t, ok)
	require.Equal(t, []int64{0, 1, 1}, d.Codes())
	require.Equal(t, 1, d.Offset())
	require.Equal(t, []string{"x", "y"}, d.Dictionary().(*Binary).Strings())
}

func TestMakeFromData_Unsupported(t *testing.T) {
	_, err := MakeFromData(NewData(format.Null, 0, nil, 0, 0))
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

func TestNewBoolean(t *testing.T) {
	arr, err := NewBoolean(nil, []bool{true, false, true, true, false, false, false, false, true}, nil)
	require.NoError(t, err)

	require.Equal(t, 9, arr.Len())
	require.Equal(t, 0, arr.NullN())
	require.True(t, arr.Value(0))
	require.False(t, arr.Value(1))
	require.True(t, arr.Value(8))
	require.Equal(t, 2, arr.Data().Buffers()[1].Len())

	sliced, err := NewSlice(arr, 2, 9)
	require.NoError(t, err)
	b := sliced.(*Boolean)
	require.True(t, b.Value(0))
	require.True(t, b.Value(1))
	require.False(t, b.Value(2))
	require.True(t, b.Value(6))
}

func TestNewBoolean_WithNulls(t *testing.T) {
	arr, err := NewBoolean(nil, []bool{true, false, true}, []bool{true, false, true})
	require.NoError(t, err)
	require.Equal(t, 1, arr.NullN())
	require.True(t, arr.IsNull(1))

	_, err = NewBoolean(nil, []bool{true}, []bool{true, false})
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestMakeFromData_MissingDictionary(t *testing.T) {
	_, err := MakeFromData(NewData(format.Dictionary(format.Int8, format.Int32), 0, nil, 0, 0))
	require.ErrorIs(t, err, errs.ErrMissingDictionary)
}

func TestRelease_ReturnsMemory(t *testing.T) {
	alloc, err := memory.NewLimitedAllocator(1024)
	require.NoError(t, err)

	arr, err := NewNumeric[int64](alloc, format.Int64, []int64{1, 2, 3, 4}, []bool{true, false, true, true})
	require.NoError(t, err)
	require.Equal(t, int64(32+1), alloc.Allocated())

	arr.Release()
	require.Equal(t, int64(0), alloc.Allocated())
}

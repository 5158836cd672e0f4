package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

func engines() map[string]endian.EndianEngine {
	return map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}
}

func encodeValues(t *testing.T, engine endian.EndianEngine, dict array.Array) []byte {
	t.Helper()
	enc := NewValueEncoder(engine)
	defer enc.Finish()

	require.NoError(t, enc.Write(dict))
	require.Equal(t, dict.Len(), enc.Len())
	require.Equal(t, len(enc.Bytes()), enc.Size())

	return append([]byte(nil), enc.Bytes()...)
}

func TestValueCodec_Numeric(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			i16, err := array.NewNumeric[int16](nil, format.Int16, []int16{-300, 0, 300}, nil)
			require.NoError(t, err)
			f64, err := array.NewNumeric[float64](nil, format.Float64, []float64{math.Inf(1), -0.5, math.MaxFloat64}, nil)
			require.NoError(t, err)
			u64, err := array.NewNumeric[uint64](nil, format.Uint64, []uint64{math.MaxUint64, 1}, nil)
			require.NoError(t, err)

			dec := NewValueDecoder(engine, nil)

			payload := encodeValues(t, engine, i16)
			require.Len(t, payload, 6)
			out, err := dec.Decode(format.Int16, payload, 3)
			require.NoError(t, err)
			require.Equal(t, i16.Values(), out.(*array.Numeric[int16]).Values())

			out, err = dec.Decode(format.Float64, encodeValues(t, engine, f64), 3)
			require.NoError(t, err)
			require.Equal(t, f64.Values(), out.(*array.Numeric[float64]).Values())

			out, err = dec.Decode(format.Uint64, encodeValues(t, engine, u64), 2)
			require.NoError(t, err)
			require.Equal(t, u64.Values(), out.(*array.Numeric[uint64]).Values())
		})
	}
}

func TestValueCodec_ByteOrder(t *testing.T) {
	arr, err := array.NewNumeric[int32](nil, format.Int32, []int32{1}, nil)
	require.NoError(t, err)

	require.Equal(t, []byte{1, 0, 0, 0}, encodeValues(t, endian.GetLittleEndianEngine(), arr))
	require.Equal(t, []byte{0, 0, 0, 1}, encodeValues(t, endian.GetBigEndianEngine(), arr))
}

func TestValueCodec_Binary(t *testing.T) {
	values := []string{"", "a", "region-eu-west-1", string(make([]byte, 200))}
	for _, dt := range []format.DataType{format.String, format.Binary} {
		arr, err := array.NewBinary(nil, dt, values, nil)
		require.NoError(t, err)

		payload := encodeValues(t, endian.GetLittleEndianEngine(), arr)
		require.Equal(t, byte(0), payload[0], "empty value is a lone zero prefix")

		out, err := NewValueDecoder(endian.GetLittleEndianEngine(), nil).Decode(dt, payload, len(values))
		require.NoError(t, err)
		require.True(t, format.TypeEqual(dt, out.DataType()))
		require.Equal(t, values, out.(*array.Binary).Strings())
	}
}

func TestValueCodec_SlicedInput(t *testing.T) {
	full, err := array.NewBinary(nil, format.String, []string{"skip", "x", "yy", "skip"}, nil)
	require.NoError(t, err)
	sliced, err := array.NewSlice(full, 1, 3)
	require.NoError(t, err)

	payload := encodeValues(t, endian.GetLittleEndianEngine(), sliced)
	require.Equal(t, []byte{1, 'x', 2, 'y', 'y'}, payload)

	nums, err := array.NewNumeric[int8](nil, format.Int8, []int8{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	slicedNums, err := array.NewSlice(nums, 2, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, encodeValues(t, endian.GetBigEndianEngine(), slicedNums))
}

func TestValueCodec_Boolean(t *testing.T) {
	values := []bool{true, false, false, true, true, false, true, false, true, true}
	arr, err := array.NewBoolean(nil, values, nil)
	require.NoError(t, err)
	sliced, err := array.NewSlice(arr, 1, 10)
	require.NoError(t, err)

	payload := encodeValues(t, endian.GetLittleEndianEngine(), sliced)
	require.Len(t, payload, 2)

	out, err := NewValueDecoder(endian.GetLittleEndianEngine(), nil).Decode(format.Boolean, payload, 9)
	require.NoError(t, err)
	b := out.(*array.Boolean)
	for i := range 9 {
		require.Equal(t, values[i+1], b.Value(i), "slot %d", i)
	}
}

func TestValueEncoder_Errors(t *testing.T) {
	withNulls, err := array.NewNumeric[int64](nil, format.Int64, []int64{1, 2}, []bool{true, false})
	require.NoError(t, err)

	enc := NewValueEncoder(endian.GetLittleEndianEngine())
	defer enc.Finish()
	require.ErrorIs(t, enc.Write(withNulls), errs.ErrInvalid)
	require.Equal(t, 0, enc.Len())
}

func TestValueEncoder_WriteAfterFinish(t *testing.T) {
	arr, err := array.NewNumeric[int8](nil, format.Int8, []int8{1}, nil)
	require.NoError(t, err)

	enc := NewValueEncoder(endian.GetLittleEndianEngine())
	enc.Finish()
	require.Panics(t, func() { _ = enc.Write(arr) })
}

func TestValueDecoder_Errors(t *testing.T) {
	dec := NewValueDecoder(endian.GetLittleEndianEngine(), nil)

	_, err := dec.Decode(format.Int32, make([]byte, 7), 2)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = dec.Decode(format.Int32, make([]byte, 9), 2)
	require.ErrorIs(t, err, errs.ErrInvalid)

	_, err = dec.Decode(format.String, []byte{5, 'a', 'b'}, 1)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = dec.Decode(format.String, []byte{1, 'a', 1, 'b'}, 1)
	require.ErrorIs(t, err, errs.ErrInvalid)

	_, err = dec.Decode(format.String, []byte{0x80}, 1)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = dec.Decode(format.Binary, []byte{0}, 5)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = dec.Decode(format.Null, nil, 0)
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

func TestValueDecoder_UsesAllocator(t *testing.T) {
	alloc, err := memory.NewLimitedAllocator(64)
	require.NoError(t, err)
	dec := NewValueDecoder(endian.GetLittleEndianEngine(), alloc)

	out, err := dec.Decode(format.Int64, make([]byte, 32), 4)
	require.NoError(t, err)
	require.Equal(t, int64(32), alloc.Allocated())

	_, err = dec.Decode(format.Int64, make([]byte, 40), 5)
	require.ErrorIs(t, err, errs.ErrOutOfMemory)

	out.Release()
	require.Equal(t, int64(0), alloc.Allocated())
}

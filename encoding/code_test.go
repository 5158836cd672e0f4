package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

func dictArray(t *testing.T, indexType format.DataType, codes []int64, valid []bool) *array.Dictionary {
	t.Helper()
	dict, err := array.NewBinary(nil, format.String, []string{"a", "b", "c"}, nil)
	require.NoError(t, err)
	arr, err := array.NewDictionary(nil, format.Dictionary(indexType, format.String), codes, valid, dict)
	require.NoError(t, err)

	return arr
}

func TestCodeCodec_AllWidths(t *testing.T) {
	codes := []int64{0, 2, 1, 1, 0}
	for _, indexType := range []format.DataType{format.Int8, format.Int16, format.Int32, format.Int64} {
		for name, engine := range engines() {
			t.Run(indexType.String()+"/"+name, func(t *testing.T) {
				arr := dictArray(t, indexType, codes, nil)

				enc := NewCodeEncoder(engine)
				defer enc.Finish()
				require.NoError(t, enc.Write(arr))
				require.Equal(t, len(codes), enc.Len())
				require.Equal(t, len(codes)*indexType.(format.FixedWidthDataType).BitWidth()/8, enc.Size())

				buf, err := NewCodeDecoder(engine, nil).Decode(indexType, enc.Bytes(), len(codes))
				require.NoError(t, err)
				defer buf.Release()

				data := array.NewData(arr.DataType(), len(codes), []*memory.Buffer{nil, buf}, 0, 0)
				data.SetDictionary(arr.Dictionary().Data())
				out, err := array.NewDictionaryData(data)
				require.NoError(t, err)
				require.Equal(t, codes, out.Codes())
			})
		}
	}
}

func TestCodeEncoder_SlicedInput(t *testing.T) {
	arr := dictArray(t, format.Int16, []int64{0, 1, 2, 0}, nil)
	sliced, err := array.NewSlice(arr, 1, 3)
	require.NoError(t, err)

	enc := NewCodeEncoder(endian.GetBigEndianEngine())
	defer enc.Finish()
	require.NoError(t, enc.Write(sliced.(*array.Dictionary)))
	require.Equal(t, []byte{0, 1, 0, 2}, enc.Bytes())
}

func TestAppendValidity(t *testing.T) {
	valid := []bool{true, false, true, true, false, true, true, true, true, false}
	arr := dictArray(t, format.Int8, make([]int64, len(valid)), valid)

	require.Equal(t, []byte{0xED, 0x01}, AppendValidity(nil, arr))

	sliced, err := array.NewSlice(arr, 1, 10)
	require.NoError(t, err)
	got := AppendValidity([]byte{0xAA}, sliced)
	require.Equal(t, []byte{0xAA, 0xF6, 0x00}, got)

	noNulls, err := array.NewSlice(arr, 5, 9)
	require.NoError(t, err)
	require.Empty(t, AppendValidity(nil, noNulls))
}

func TestCodeDecoder_DecodeValidity(t *testing.T) {
	dec := NewCodeDecoder(endian.GetLittleEndianEngine(), nil)

	buf, nulls, err := dec.DecodeValidity([]byte{0xED, 0x01}, 10)
	require.NoError(t, err)
	require.Equal(t, 3, nulls)
	require.Equal(t, []byte{0xED, 0x01}, buf.Bytes())

	_, _, err = dec.DecodeValidity([]byte{0xFF}, 10)
	require.ErrorIs(t, err, errs.ErrInvalid)
}

func TestCodeDecoder_Errors(t *testing.T) {
	dec := NewCodeDecoder(endian.GetLittleEndianEngine(), nil)

	_, err := dec.Decode(format.Int16, []byte{1, 2, 3}, 2)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = dec.Decode(format.Int16, []byte{1, 2, 3, 4, 5}, 2)
	require.ErrorIs(t, err, errs.ErrInvalid)

	_, err = dec.Decode(format.Uint16, []byte{1, 2}, 1)
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

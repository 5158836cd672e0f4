package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeID_BitWidth(t *testing.T) {
	tests := []struct {
		id    TypeID
		width int
	}{
		{TypeBoolean, 1},
		{TypeInt8, 8},
		{TypeUint8, 8},
		{TypeInt16, 16},
		{TypeUint32, 32},
		{TypeFloat32, 32},
		{TypeInt64, 64},
		{TypeFloat64, 64},
		{TypeString, 0},
		{TypeBinary, 0},
		{TypeDictionary, 0},
		{TypeNull, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.width, tt.id.BitWidth(), tt.id.String())
	}
}

func TestTypeID_Predicates(t *testing.T) {
	for _, id := range []TypeID{TypeInt8, TypeInt16, TypeInt32, TypeInt64} {
		require.True(t, id.IsSignedInteger(), id.String())
		require.False(t, id.IsVarLength(), id.String())
	}
	for _, id := range []TypeID{TypeUint8, TypeUint64, TypeFloat64, TypeBoolean} {
		require.False(t, id.IsSignedInteger(), id.String())
	}
	require.True(t, TypeString.IsVarLength())
	require.True(t, TypeBinary.IsVarLength())
	require.Equal(t, "unknown", TypeID(0xFF).String())
}

func TestPrimitiveOf(t *testing.T) {
	dt, ok := PrimitiveOf(TypeUint16)
	require.True(t, ok)
	require.Same(t, Uint16, dt)
	require.Equal(t, "uint16", dt.Name())

	_, ok = PrimitiveOf(TypeDictionary)
	require.False(t, ok)
}

func TestTypeEqual(t *testing.T) {
	require.True(t, TypeEqual(Int32, Int32))
	require.False(t, TypeEqual(Int32, Uint32))
	require.True(t, TypeEqual(nil, nil))
	require.False(t, TypeEqual(Int32, nil))

	a := Dictionary(Int8, String)
	require.True(t, TypeEqual(a, Dictionary(Int8, String)))
	require.False(t, TypeEqual(a, Dictionary(Int16, String)))
	require.False(t, TypeEqual(a, Dictionary(Int8, Binary)))
	require.False(t, TypeEqual(a, String))

	ordered := Dictionary(Int8, String)
	ordered.Ordered = true
	require.False(t, TypeEqual(a, ordered))
}

func TestDictionaryType(t *testing.T) {
	dt := Dictionary(Int16, Float64)
	require.Equal(t, TypeDictionary, dt.ID())
	require.Equal(t, 16, dt.IndexBitWidth())
	require.Equal(t, "dictionary<values=float64, indices=int16, ordered=false>", dt.String())
	require.Equal(t, 0, Dictionary(String, String).IndexBitWidth())
}

func TestIndexTypeForLength(t *testing.T) {
	tests := []struct {
		n    int64
		want DataType
	}{
		{0, Int8},
		{math.MaxInt8, Int8},
		{math.MaxInt8 + 1, Int16},
		{math.MaxInt16, Int16},
		{math.MaxInt16 + 1, Int32},
		{math.MaxInt32, Int32},
		{math.MaxInt32 + 1, Int64},
	}
	for _, tt := range tests {
		require.Same(t, tt.want, IndexTypeForLength(tt.n), "n=%d", tt.n)
	}
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}

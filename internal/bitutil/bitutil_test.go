package bitutil

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dictmerge/memory"
)

func TestBytesForBits(t *testing.T) {
	tests := []struct {
		bits  int
		bytes int
	}{
		{0, 0}, {1, 1}, {7, 1}, {8, 1}, {9, 2}, {64, 8}, {65, 9},
	}
	for _, tt := range tests {
		require.Equal(t, tt.bytes, BytesForBits(tt.bits), "bits=%d", tt.bits)
	}
}

func TestSetClearBit(t *testing.T) {
	bm := make([]byte, 2)

	SetBit(bm, 0)
	SetBit(bm, 9)
	require.Equal(t, []byte{0x01, 0x02}, bm)
	require.True(t, BitIsSet(bm, 9))
	require.False(t, BitIsSet(bm, 8))

	ClearBit(bm, 0)
	require.False(t, BitIsSet(bm, 0))

	SetBitTo(bm, 15, true)
	require.True(t, BitIsSet(bm, 15))
	SetBitTo(bm, 15, false)
	require.False(t, BitIsSet(bm, 15))
}

func TestCountSetBits(t *testing.T) {
	bm := []byte{0xFF, 0x0F, 0x01}

	require.Equal(t, 13, CountSetBits(bm, 0, 24))
	require.Equal(t, 8, CountSetBits(bm, 0, 8))
	require.Equal(t, 4, CountSetBits(bm, 4, 4))
	require.Equal(t, 6, CountSetBits(bm, 6, 10)) // bits 6,7 of byte 0 and 8..11
	require.Equal(t, 0, CountSetBits(bm, 3, 0))
}

func TestCopyBitmap_Aligned(t *testing.T) {
	src := []byte{0b1010_1100, 0b0000_0011}

	out, err := CopyBitmap(nil, src, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []byte{0b1010_1100, 0b0000_0011}, out.Bytes())
}

func TestCopyBitmap_UnalignedOffset(t *testing.T) {
	// bits (LSB first): 0 0 1 1 0 1 0 1 | 1 1 0 0 0 0 0 0
	src := []byte{0b1010_1100, 0b0000_0011}

	out, err := CopyBitmap(nil, src, 3, 6)
	require.NoError(t, err)
	// source bits 3..8: 1 0 1 0 1 1
	require.Equal(t, []byte{0b0011_0101}, out.Bytes())
}

func TestCopyBitmap_MatchesBitByBit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := make([]byte, 32)
	rng.Read(src)

	for offset := 0; offset < 17; offset++ {
		for _, length := range []int{0, 1, 7, 8, 9, 63, 100, 200} {
			if offset+length > len(src)*8 {
				continue
			}
			out, err := CopyBitmap(nil, src, offset, length)
			require.NoError(t, err)
			require.Len(t, out.Bytes(), BytesForBits(length))

			for i := range length {
				require.Equal(t, BitIsSet(src, offset+i), BitIsSet(out.Bytes(), i),
					"offset=%d length=%d bit=%d", offset, length, i)
			}
			for i := length; i < len(out.Bytes())*8; i++ {
				require.False(t, BitIsSet(out.Bytes(), i), "padding bit %d must be zero", i)
			}
		}
	}
}

func TestCopyBitmap_AllocationFailure(t *testing.T) {
	alloc, err := memory.NewLimitedAllocator(1)
	require.NoError(t, err)

	_, err = CopyBitmap(alloc, []byte{0xFF, 0xFF}, 1, 12)
	require.Error(t, err)
}

func TestBitmapFromBools(t *testing.T) {
	bm := BitmapFromBools([]bool{true, false, true, true, false, false, false, false, true})
	require.Equal(t, []byte{0b0000_1101, 0b0000_0001}, bm)
}

// Package bitutil implements the LSB-first validity bitmaps used by arrays.
//
// Bit i of a bitmap lives in byte i/8 at position i%8. A set bit means the slot holds a
// valid value; a cleared bit means null.
package bitutil

import (
	"math/bits"

	"github.com/arloliu/dictmerge/memory"
)

// BytesForBits returns the number of bytes needed to hold n bits.
func BytesForBits(n int) int {
	return (n + 7) / 8
}

// BitIsSet reports whether bit i is set.
func BitIsSet(bitmap []byte, i int) bool {
	return bitmap[i>>3]&(1<<uint(i&7)) != 0
}

// SetBit sets bit i.
func SetBit(bitmap []byte, i int) {
	bitmap[i>>3] |= 1 << uint(i&7)
}

// ClearBit clears bit i.
func ClearBit(bitmap []byte, i int) {
	bitmap[i>>3] &^= 1 << uint(i&7)
}

// SetBitTo sets bit i to v.
func SetBitTo(bitmap []byte, i int, v bool) {
	if v {
		SetBit(bitmap, i)
	} else {
		ClearBit(bitmap, i)
	}
}

// CountSetBits returns the number of set bits in [offset, offset+length).
func CountSetBits(bitmap []byte, offset, length int) int {
	if length <= 0 {
		return 0
	}

	count := 0
	i := offset
	end := offset + length

	// Leading bits up to a byte boundary.
	for ; i < end && i&7 != 0; i++ {
		if BitIsSet(bitmap, i) {
			count++
		}
	}
	// Whole bytes.
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(bitmap[i>>3])
	}
	// Trailing bits.
	for ; i < end; i++ {
		if BitIsSet(bitmap, i) {
			count++
		}
	}

	return count
}

// CopyBitmap copies length bits starting at bit offset of src into a new buffer
// whose first bit is bit 0. Bits past length in the last byte are zero.
//
// Parameters:
//   - alloc: Allocator for the new buffer
//   - src: Source bitmap
//   - offset: First source bit to copy
//   - length: Number of bits to copy
//
// Returns:
//   - *memory.Buffer: Realigned bitmap of BytesForBits(length) bytes
//   - error: Allocation error, propagated unchanged
func CopyBitmap(alloc memory.Allocator, src []byte, offset, length int) (*memory.Buffer, error) {
	out, err := memory.AllocateBuffer(alloc, BytesForBits(length))
	if err != nil {
		return nil, err
	}

	CopyBitmapInto(out.Bytes(), src, offset, length)

	return out, nil
}

// CopyBitmapInto writes length bits of src starting at bit offset into dst starting at bit 0.
// dst must be zeroed and at least BytesForBits(length) bytes long.
func CopyBitmapInto(dst, src []byte, offset, length int) {
	if length <= 0 {
		return
	}

	shift := uint(offset & 7)
	start := offset >> 3
	nbytes := BytesForBits(length)

	if shift == 0 {
		copy(dst[:nbytes], src[start:start+nbytes])
	} else {
		srcEnd := BytesForBits(offset + length)
		for i := range nbytes {
			lo := src[start+i] >> shift
			var hi byte
			if start+i+1 < srcEnd {
				hi = src[start+i+1] << (8 - shift)
			}
			dst[i] = lo | hi
		}
	}

	// Clear padding bits in the last byte.
	if rem := length & 7; rem != 0 {
		dst[nbytes-1] &= byte(1<<uint(rem)) - 1
	}
}

// BitmapFromBools builds a validity bitmap from a slice of booleans.
func BitmapFromBools(valid []bool) []byte {
	out := make([]byte, BytesForBits(len(valid)))
	for i, v := range valid {
		if v {
			SetBit(out, i)
		}
	}

	return out
}

package endian

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/dictmerge/errs"
)

// Fixed is the set of element types AppendFixed and ReadFixed handle.
type Fixed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// AppendFixed appends values to dst in engine's byte order and returns the extended slice.
//
// When engine matches the host byte order the values are copied as one block.
func AppendFixed[T Fixed](engine EndianEngine, dst []byte, values []T) []byte {
	if len(values) == 0 {
		return dst
	}

	size := sizeOf[T]()
	if size == 1 || CompareNativeEndian(engine) {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*size) //nolint:gosec
		return append(dst, raw...)
	}

	for i := range values {
		p := unsafe.Pointer(&values[i]) //nolint:gosec
		switch size {
		case 2:
			dst = engine.AppendUint16(dst, *(*uint16)(p))
		case 4:
			dst = engine.AppendUint32(dst, *(*uint32)(p))
		default:
			dst = engine.AppendUint64(dst, *(*uint64)(p))
		}
	}

	return dst
}

// ReadFixed decodes len(dst) values from src in engine's byte order.
//
// Returns:
//   - int: Number of bytes consumed
//   - error: errs.ErrTruncatedPayload if src holds fewer than len(dst) values
func ReadFixed[T Fixed](engine EndianEngine, src []byte, dst []T) (int, error) {
	size := sizeOf[T]()
	n := len(dst) * size
	if len(src) < n {
		return 0, fmt.Errorf("%w: need %d bytes for %d values, have %d", errs.ErrTruncatedPayload, n, len(dst), len(src))
	}
	if n == 0 {
		return 0, nil
	}

	if size == 1 || CompareNativeEndian(engine) {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), n), src) //nolint:gosec
		return n, nil
	}

	for i := range dst {
		p := unsafe.Pointer(&dst[i]) //nolint:gosec
		b := src[i*size:]
		switch size {
		case 2:
			*(*uint16)(p) = engine.Uint16(b)
		case 4:
			*(*uint32)(p) = engine.Uint32(b)
		default:
			*(*uint64)(p) = engine.Uint64(b)
		}
	}

	return n, nil
}

func sizeOf[T Fixed]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

package encoding

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
	"github.com/arloliu/dictmerge/internal/pool"
	"github.com/arloliu/dictmerge/memory"
)

// CodeEncoder encodes the codes of dictionary arrays at their index width.
type CodeEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewCodeEncoder creates a code encoder writing in engine's byte order.
func NewCodeEncoder(engine endian.EndianEngine) *CodeEncoder {
	return &CodeEncoder{
		engine: engine,
		buf:    pool.GetFragmentBuffer(),
	}
}

// Write appends the codes of arr. Codes of null slots are written as stored.
//
// Panics if Finish() has been called.
func (e *CodeEncoder) Write(arr *array.Dictionary) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	switch v := arr.Indices().(type) {
	case *array.Numeric[int8]:
		e.buf.B = endian.AppendFixed(e.engine, e.buf.B, v.Values())
	case *array.Numeric[int16]:
		e.buf.B = endian.AppendFixed(e.engine, e.buf.B, v.Values())
	case *array.Numeric[int32]:
		e.buf.B = endian.AppendFixed(e.engine, e.buf.B, v.Values())
	case *array.Numeric[int64]:
		e.buf.B = endian.AppendFixed(e.engine, e.buf.B, v.Values())
	default:
		return fmt.Errorf("%w: unexpected index type %s", errs.ErrNotImplemented, arr.IndexType())
	}
	e.count += arr.Len()

	return nil
}

// Bytes returns the encoded payload. The slice is valid until Finish.
func (e *CodeEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of codes written.
func (e *CodeEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *CodeEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *CodeEncoder) Finish() {
	if e.buf != nil {
		pool.PutFragmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// AppendValidity appends the validity bitmap of arr, shifted so that slot 0 is bit 0.
// Nothing is appended when arr has no nulls.
func AppendValidity(dst []byte, arr array.Array) []byte {
	if arr.NullN() == 0 {
		return dst
	}

	data := arr.Data()
	start := len(dst)
	dst = append(dst, make([]byte, bitutil.BytesForBits(arr.Len()))...)
	bitutil.CopyBitmapInto(dst[start:], data.Buffers()[0].Bytes(), data.Offset(), arr.Len())

	return dst
}

// CodeDecoder decodes code and validity payloads.
type CodeDecoder struct {
	engine endian.EndianEngine
	alloc  memory.Allocator
}

// NewCodeDecoder creates a code decoder.
//
// Parameters:
//   - engine: Endian engine the payload was written with
//   - alloc: Allocator for the decoded buffers (nil means memory.DefaultAllocator)
func NewCodeDecoder(engine endian.EndianEngine, alloc memory.Allocator) CodeDecoder {
	return CodeDecoder{engine: engine, alloc: alloc}
}

// Decode decodes count codes of indexType into a new buffer.
//
// Returns:
//   - *memory.Buffer: The codes, owned by the caller
//   - error: errs.ErrNotImplemented for non-signed index types, errs.ErrTruncatedPayload
//     or errs.ErrInvalid if data is not exactly count codes long
func (d CodeDecoder) Decode(indexType format.DataType, data []byte, count int) (*memory.Buffer, error) {
	switch indexType.ID() { //nolint:exhaustive
	case format.TypeInt8:
		return decodeCodes[int8](d, data, count)
	case format.TypeInt16:
		return decodeCodes[int16](d, data, count)
	case format.TypeInt32:
		return decodeCodes[int32](d, data, count)
	case format.TypeInt64:
		return decodeCodes[int64](d, data, count)
	default:
		return nil, fmt.Errorf("%w: unexpected index type %s", errs.ErrNotImplemented, indexType)
	}
}

func decodeCodes[T int8 | int16 | int32 | int64](d CodeDecoder, data []byte, count int) (*memory.Buffer, error) {
	width := sizeOf[T]()
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: negative code count %d", errs.ErrInvalid, count)
	case len(data) < count*width:
		return nil, fmt.Errorf("%w: need %d bytes for %d codes, have %d", errs.ErrTruncatedPayload, count*width, count, len(data))
	case len(data) > count*width:
		return nil, fmt.Errorf("%w: %d trailing bytes after %d codes", errs.ErrInvalid, len(data)-count*width, count)
	}

	buf, err := memory.AllocateBuffer(d.alloc, count*width)
	if err != nil {
		return nil, err
	}
	if _, err := endian.ReadFixed(d.engine, data, memory.ViewAs[T](buf.Bytes())); err != nil {
		buf.Release()
		return nil, err
	}

	return buf, nil
}

// DecodeValidity copies a validity payload for count slots into a new buffer and counts
// its nulls.
//
// Returns:
//   - *memory.Buffer: The bitmap, owned by the caller
//   - int: Number of null slots
//   - error: errs.ErrInvalid if data is not exactly the bitmap size for count slots
func (d CodeDecoder) DecodeValidity(data []byte, count int) (*memory.Buffer, int, error) {
	if need := bitutil.BytesForBits(count); len(data) != need {
		return nil, 0, fmt.Errorf("%w: validity has %d bytes, %d slots need %d", errs.ErrInvalid, len(data), count, need)
	}

	buf, err := memory.AllocateBuffer(d.alloc, len(data))
	if err != nil {
		return nil, 0, err
	}
	copy(buf.Bytes(), data)

	return buf, count - bitutil.CountSetBits(buf.Bytes(), 0, count), nil
}

func sizeOf[T endian.Fixed]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

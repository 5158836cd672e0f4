package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
	"github.com/arloliu/dictmerge/internal/pool"
	"github.com/arloliu/dictmerge/memory"
)

// ValueEncoder encodes dictionary values into a payload.
type ValueEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewValueEncoder creates a value encoder writing in engine's byte order.
//
// Parameters:
//   - engine: Endian engine for fixed-width values
//
// Returns:
//   - *ValueEncoder: A new encoder backed by a pooled buffer
func NewValueEncoder(engine endian.EndianEngine) *ValueEncoder {
	return &ValueEncoder{
		engine: engine,
		buf:    pool.GetFragmentBuffer(),
	}
}

// Write appends the values of dict.
//
// Panics if Finish() has been called.
//
// Returns:
//   - error: errs.ErrInvalid if dict has nulls, errs.ErrValueTooLarge for a byte string
//     longer than math.MaxInt32, errs.ErrNotImplemented for types without an encoding
func (e *ValueEncoder) Write(dict array.Array) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if dict.NullN() > 0 {
		return fmt.Errorf("%w: dictionary values must not contain nulls", errs.ErrInvalid)
	}

	var err error
	switch v := dict.(type) {
	case *array.Numeric[int8]:
		appendFixed(e, v.Values())
	case *array.Numeric[int16]:
		appendFixed(e, v.Values())
	case *array.Numeric[int32]:
		appendFixed(e, v.Values())
	case *array.Numeric[int64]:
		appendFixed(e, v.Values())
	case *array.Numeric[uint8]:
		appendFixed(e, v.Values())
	case *array.Numeric[uint16]:
		appendFixed(e, v.Values())
	case *array.Numeric[uint32]:
		appendFixed(e, v.Values())
	case *array.Numeric[uint64]:
		appendFixed(e, v.Values())
	case *array.Numeric[float32]:
		appendFixed(e, v.Values())
	case *array.Numeric[float64]:
		appendFixed(e, v.Values())
	case *array.Binary:
		err = e.writeBinary(v)
	case *array.Boolean:
		e.writeBoolean(v)
	default:
		return fmt.Errorf("%w: no value encoding for %s", errs.ErrNotImplemented, dict.DataType())
	}
	if err != nil {
		return err
	}
	e.count += dict.Len()

	return nil
}

func appendFixed[T endian.Fixed](e *ValueEncoder, values []T) {
	e.buf.B = endian.AppendFixed(e.engine, e.buf.B, values)
}

func (e *ValueEncoder) writeBinary(v *array.Binary) error {
	total := 0
	for i := range v.Len() {
		n := v.ValueLen(i)
		if n > math.MaxInt32 {
			return fmt.Errorf("%w: value %d has %d bytes", errs.ErrValueTooLarge, i, n)
		}
		total += binary.MaxVarintLen32 + n
	}
	e.buf.Grow(total)

	for i := range v.Len() {
		val := v.Value(i)
		e.buf.WriteUvarint(uint64(len(val)))
		e.buf.MustWrite(val)
	}

	return nil
}

func (e *ValueEncoder) writeBoolean(v *array.Boolean) {
	packed := make([]byte, bitutil.BytesForBits(v.Len()))
	for i := range v.Len() {
		bitutil.SetBitTo(packed, i, v.Value(i))
	}
	e.buf.MustWrite(packed)
}

// Bytes returns the encoded payload. The slice is valid until Finish.
func (e *ValueEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *ValueEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *ValueEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *ValueEncoder) Finish() {
	if e.buf != nil {
		pool.PutFragmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// ValueDecoder decodes dictionary values written by ValueEncoder.
type ValueDecoder struct {
	engine endian.EndianEngine
	alloc  memory.Allocator
}

// NewValueDecoder creates a value decoder.
//
// Parameters:
//   - engine: Endian engine the payload was written with
//   - alloc: Allocator for the decoded buffers (nil means memory.DefaultAllocator)
func NewValueDecoder(engine endian.EndianEngine, alloc memory.Allocator) ValueDecoder {
	return ValueDecoder{engine: engine, alloc: alloc}
}

// Decode decodes count values of type dtype from data.
//
// The whole of data must be consumed.
//
// Returns:
//   - array.Array: The decoded values, without nulls
//   - error: errs.ErrTruncatedPayload if data is short, errs.ErrInvalid for trailing
//     bytes, errs.ErrNotImplemented for types without an encoding, or an allocation error
func (d ValueDecoder) Decode(dtype format.DataType, data []byte, count int) (array.Array, error) {
	switch dtype.ID() { //nolint:exhaustive
	case format.TypeInt8:
		return decodeFixed[int8](d, dtype, data, count)
	case format.TypeInt16:
		return decodeFixed[int16](d, dtype, data, count)
	case format.TypeInt32:
		return decodeFixed[int32](d, dtype, data, count)
	case format.TypeInt64:
		return decodeFixed[int64](d, dtype, data, count)
	case format.TypeUint8:
		return decodeFixed[uint8](d, dtype, data, count)
	case format.TypeUint16:
		return decodeFixed[uint16](d, dtype, data, count)
	case format.TypeUint32:
		return decodeFixed[uint32](d, dtype, data, count)
	case format.TypeUint64:
		return decodeFixed[uint64](d, dtype, data, count)
	case format.TypeFloat32:
		return decodeFixed[float32](d, dtype, data, count)
	case format.TypeFloat64:
		return decodeFixed[float64](d, dtype, data, count)
	case format.TypeString, format.TypeBinary:
		return d.decodeBinary(dtype, data, count)
	case format.TypeBoolean:
		return d.decodeBoolean(data, count)
	default:
		return nil, fmt.Errorf("%w: no value encoding for %s", errs.ErrNotImplemented, dtype)
	}
}

func decodeFixed[T memory.FixedWidth](d ValueDecoder, dtype format.DataType, data []byte, count int) (array.Array, error) {
	buf, err := d.readFixed(data, count, func(dst []byte) (int, error) {
		return endian.ReadFixed(d.engine, data, memory.ViewAs[T](dst)[:count])
	}, sizeOf[T]())
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	return array.MakeFromData(array.NewData(dtype, count, []*memory.Buffer{nil, buf}, 0, 0))
}

// readFixed allocates count*width bytes, fills them with read and checks that data was consumed exactly.
func (d ValueDecoder) readFixed(data []byte, count int, read func(dst []byte) (int, error), width int) (*memory.Buffer, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", errs.ErrInvalid, count)
	}
	if len(data) < count*width {
		return nil, fmt.Errorf("%w: need %d bytes for %d values, have %d", errs.ErrTruncatedPayload, count*width, count, len(data))
	}

	buf, err := memory.AllocateBuffer(d.alloc, count*width)
	if err != nil {
		return nil, err
	}

	n, err := read(buf.Bytes())
	if err != nil {
		buf.Release()
		return nil, err
	}
	if n != len(data) {
		buf.Release()
		return nil, fmt.Errorf("%w: %d trailing bytes after %d values", errs.ErrInvalid, len(data)-n, count)
	}

	return buf, nil
}

func (d ValueDecoder) decodeBinary(dtype format.DataType, data []byte, count int) (array.Array, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", errs.ErrInvalid, count)
	}
	if count > len(data) {
		// Every value takes at least its one-byte length prefix.
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d values", errs.ErrTruncatedPayload, len(data), count)
	}

	offsets, err := memory.AllocateBuffer(d.alloc, (count+1)*4)
	if err != nil {
		return nil, err
	}
	defer offsets.Release()
	offs := memory.Int32s(offsets)

	// First pass: validate prefixes and compute offsets.
	pos, total := 0, 0
	for i := range count {
		n, k := binary.Uvarint(data[pos:])
		if k <= 0 {
			return nil, fmt.Errorf("%w: bad length prefix for value %d", errs.ErrTruncatedPayload, i)
		}
		pos += k
		if n > uint64(len(data)-pos) {
			return nil, fmt.Errorf("%w: value %d needs %d bytes, %d left", errs.ErrTruncatedPayload, i, n, len(data)-pos)
		}
		pos += int(n)
		total += int(n)
		if total > math.MaxInt32 {
			return nil, fmt.Errorf("%w: values exceed %d bytes", errs.ErrValueTooLarge, math.MaxInt32)
		}
		offs[i+1] = int32(total) //nolint:gosec
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d values", errs.ErrInvalid, len(data)-pos, count)
	}

	values, err := memory.AllocateBuffer(d.alloc, total)
	if err != nil {
		return nil, err
	}
	defer values.Release()

	out := values.Bytes()
	pos = 0
	for i := range count {
		n, k := binary.Uvarint(data[pos:])
		pos += k
		copy(out[offs[i]:offs[i+1]], data[pos:pos+int(n)])
		pos += int(n)
	}

	return array.MakeFromData(array.NewData(dtype, count, []*memory.Buffer{nil, offsets, values}, 0, 0))
}

func (d ValueDecoder) decodeBoolean(data []byte, count int) (array.Array, error) {
	buf, err := d.readFixed(data, bitutil.BytesForBits(count), func(dst []byte) (int, error) {
		return copy(dst, data), nil
	}, 1)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	return array.MakeFromData(array.NewData(format.Boolean, count, []*memory.Buffer{nil, buf}, 0, 0))
}

package array

import (
	"fmt"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
)

// Array is the read-only interface shared by all arrays.
type Array interface {
	// DataType returns the logical type of the values.
	DataType() format.DataType
	// Len returns the number of logical slots.
	Len() int
	// NullN returns the number of null slots.
	NullN() int
	// IsNull reports whether slot i is null.
	IsNull(i int) bool
	// IsValid reports whether slot i holds a value.
	IsValid(i int) bool
	// Data returns the underlying Data.
	Data() *Data
	// Retain adds a reference to the underlying buffers.
	Retain()
	// Release drops a reference from the underlying buffers.
	Release()
}

// array is embedded by every concrete array type.
type array struct {
	data     *Data
	validity []byte
}

func (a *array) setData(data *Data) {
	a.data = data
	a.validity = data.buffer(0).Bytes()
}

func (a *array) DataType() format.DataType { return a.data.dtype }
func (a *array) Len() int                  { return a.data.length }
func (a *array) NullN() int                { return a.data.nulls }
func (a *array) Data() *Data               { return a.data }
func (a *array) Retain()                   { a.data.Retain() }
func (a *array) Release()                  { a.data.Release() }

func (a *array) IsNull(i int) bool {
	return a.validity != nil && !bitutil.BitIsSet(a.validity, a.data.offset+i)
}

func (a *array) IsValid(i int) bool {
	return !a.IsNull(i)
}

// Offset returns the index of the first logical slot in the buffers.
func (a *array) Offset() int { return a.data.offset }

// MakeFromData wraps data in the concrete array type for its DataType.
//
// Returns:
//   - Array: The typed array
//   - error: errs.ErrNotImplemented for types without an array implementation,
//     or a validation error if the buffers do not fit the declared length
func MakeFromData(data *Data) (Array, error) {
	switch data.dtype.ID() {
	case format.TypeBoolean:
		return newBoolean(data)
	case format.TypeInt8:
		return newNumeric[int8](data)
	case format.TypeInt16:
		return newNumeric[int16](data)
	case format.TypeInt32:
		return newNumeric[int32](data)
	case format.TypeInt64:
		return newNumeric[int64](data)
	case format.TypeUint8:
		return newNumeric[uint8](data)
	case format.TypeUint16:
		return newNumeric[uint16](data)
	case format.TypeUint32:
		return newNumeric[uint32](data)
	case format.TypeUint64:
		return newNumeric[uint64](data)
	case format.TypeFloat32:
		return newNumeric[float32](data)
	case format.TypeFloat64:
		return newNumeric[float64](data)
	case format.TypeString, format.TypeBinary:
		return newBinary(data)
	case format.TypeDictionary:
		return newDictionary(data)
	default:
		return nil, fmt.Errorf("%w: no array implementation for %s", errs.ErrNotImplemented, data.dtype)
	}
}

// NewSlice returns a zero-copy view of slots [i, j) of arr.
// The slice shares arr's buffers and dictionary; its null count is recomputed.
func NewSlice(arr Array, i, j int) (Array, error) {
	if i < 0 || j < i || j > arr.Len() {
		return nil, fmt.Errorf("%w: slice [%d:%d] of array with length %d", errs.ErrInvalidLength, i, j, arr.Len())
	}

	src := arr.Data()
	length := j - i
	offset := src.offset + i

	nulls := 0
	if validity := src.buffer(0).Bytes(); validity != nil {
		nulls = length - bitutil.CountSetBits(validity, offset, length)
	}

	data := NewData(src.dtype, length, src.buffers, nulls, offset)
	data.SetDictionary(src.dictionary)

	return MakeFromData(data)
}

// checkValidity validates the validity bitmap of data against its offset and length.
func checkValidity(data *Data) error {
	if data.length < 0 || data.offset < 0 {
		return fmt.Errorf("%w: length=%d offset=%d", errs.ErrInvalidLength, data.length, data.offset)
	}

	validity := data.buffer(0)
	if validity == nil {
		if data.nulls != 0 {
			return fmt.Errorf("%w: %d nulls without a validity bitmap", errs.ErrMissingBuffer, data.nulls)
		}

		return nil
	}

	if need := bitutil.BytesForBits(data.offset + data.length); validity.Len() < need {
		return fmt.Errorf("%w: validity bitmap has %d bytes, need %d", errs.ErrBufferTooSmall, validity.Len(), need)
	}

	return nil
}

package array

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
	"github.com/arloliu/dictmerge/memory"
)

// Numeric is an array of fixed-width numbers.
type Numeric[T memory.FixedWidth] struct {
	array
	values []T
}

var _ Array = (*Numeric[int8])(nil)

func newNumeric[T memory.FixedWidth](data *Data) (*Numeric[T], error) {
	if err := checkValidity(data); err != nil {
		return nil, err
	}

	var zero T
	width := int(unsafe.Sizeof(zero))
	if fw, ok := data.dtype.(format.FixedWidthDataType); !ok || fw.BitWidth() != width*8 {
		return nil, fmt.Errorf("%w: %s is not a %d-bit type", errs.ErrTypeMismatch, data.dtype, width*8)
	}

	a := &Numeric[T]{}
	a.setData(data)
	if data.length == 0 {
		return a, nil
	}

	values := data.buffer(1)
	if values == nil {
		return nil, fmt.Errorf("%w: %s values", errs.ErrMissingBuffer, data.dtype)
	}
	if need := (data.offset + data.length) * width; values.Len() < need {
		return nil, fmt.Errorf("%w: values buffer has %d bytes, need %d", errs.ErrBufferTooSmall, values.Len(), need)
	}
	a.values = memory.ViewAs[T](values.Bytes())[data.offset : data.offset+data.length]

	return a, nil
}

// Value returns the value at slot i. The result is unspecified for null slots.
func (a *Numeric[T]) Value(i int) T {
	return a.values[i]
}

// Values returns the logical values. The slice aliases the array's buffer.
func (a *Numeric[T]) Values() []T {
	return a.values
}

func (a *Numeric[T]) String() string {
	return fmt.Sprintf("%s%v", a.DataType(), a.values)
}

// NewNumeric builds a numeric array by copying values into allocator-owned buffers.
//
// Parameters:
//   - alloc: Allocator for the buffers (nil means memory.DefaultAllocator)
//   - dtype: Logical type; its bit width must match T
//   - values: Values to copy
//   - valid: Validity per slot, or nil if every slot is valid
//
// Returns:
//   - *Numeric[T]: The array
//   - error: Allocation or validation error
func NewNumeric[T memory.FixedWidth](alloc memory.Allocator, dtype format.DataType, values []T, valid []bool) (*Numeric[T], error) {
	if valid != nil && len(valid) != len(values) {
		return nil, fmt.Errorf("%w: %d validity flags for %d values", errs.ErrInvalidLength, len(valid), len(values))
	}

	var zero T
	buf, err := memory.AllocateBuffer(alloc, len(values)*int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}
	defer buf.Release()
	copy(memory.ViewAs[T](buf.Bytes()), values)

	validity, nulls, err := newValidity(alloc, valid)
	if err != nil {
		return nil, err
	}
	defer validity.Release()

	return newNumeric[T](NewData(dtype, len(values), []*memory.Buffer{validity, buf}, nulls, 0))
}

// newValidity builds a validity buffer from per-slot flags.
// It returns a nil buffer when valid is nil or has no false entries.
func newValidity(alloc memory.Allocator, valid []bool) (*memory.Buffer, int, error) {
	nulls := 0
	for _, v := range valid {
		if !v {
			nulls++
		}
	}
	if nulls == 0 {
		return nil, 0, nil
	}

	buf, err := memory.AllocateBuffer(alloc, bitutil.BytesForBits(len(valid)))
	if err != nil {
		return nil, 0, err
	}
	for i, v := range valid {
		if v {
			bitutil.SetBit(buf.Bytes(), i)
		}
	}

	return buf, nulls, nil
}

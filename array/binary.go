package array

import (
	"fmt"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

// Binary is an array of variable-length byte strings (format.Binary) or UTF-8
// strings (format.String).
type Binary struct {
	array
	offsets []int32
	data    []byte
}

var _ Array = (*Binary)(nil)

func newBinary(data *Data) (*Binary, error) {
	if err := checkValidity(data); err != nil {
		return nil, err
	}
	if !data.dtype.ID().IsVarLength() {
		return nil, fmt.Errorf("%w: %s is not a variable-length type", errs.ErrTypeMismatch, data.dtype)
	}

	a := &Binary{}
	a.setData(data)

	offsets := memory.ViewAs[int32](data.buffer(1).Bytes())
	if len(offsets) < data.offset+data.length+1 {
		if data.length == 0 {
			return a, nil
		}

		return nil, fmt.Errorf("%w: %d offsets for %d slots at offset %d",
			errs.ErrBufferTooSmall, len(offsets), data.length, data.offset)
	}

	a.offsets = offsets[data.offset : data.offset+data.length+1]
	a.data = data.buffer(2).Bytes()
	if last := int(a.offsets[data.length]); last > len(a.data) {
		return nil, fmt.Errorf("%w: offsets reference %d bytes, data has %d", errs.ErrBufferTooSmall, last, len(a.data))
	}

	return a, nil
}

// Value returns the bytes at slot i. The slice aliases the array's buffer.
func (a *Binary) Value(i int) []byte {
	return a.data[a.offsets[i]:a.offsets[i+1]]
}

// ValueString returns the value at slot i as a string.
func (a *Binary) ValueString(i int) string {
	return string(a.Value(i))
}

// ValueLen returns the byte length of slot i.
func (a *Binary) ValueLen(i int) int {
	return int(a.offsets[i+1] - a.offsets[i])
}

// Strings returns all values as strings; null slots become "".
func (a *Binary) Strings() []string {
	out := make([]string, a.Len())
	for i := range out {
		if a.IsValid(i) {
			out[i] = a.ValueString(i)
		}
	}

	return out
}

// NewBinary builds a String or Binary array by copying values into allocator-owned buffers.
//
// Parameters:
//   - alloc: Allocator for the buffers (nil means memory.DefaultAllocator)
//   - dtype: format.String or format.Binary
//   - values: Values to copy
//   - valid: Validity per slot, or nil if every slot is valid
func NewBinary(alloc memory.Allocator, dtype format.DataType, values []string, valid []bool) (*Binary, error) {
	if valid != nil && len(valid) != len(values) {
		return nil, fmt.Errorf("%w: %d validity flags for %d values", errs.ErrInvalidLength, len(valid), len(values))
	}

	total := 0
	for _, v := range values {
		total += len(v)
	}

	offsetsBuf, err := memory.AllocateBuffer(alloc, (len(values)+1)*4)
	if err != nil {
		return nil, err
	}
	defer offsetsBuf.Release()

	dataBuf, err := memory.AllocateBuffer(alloc, total)
	if err != nil {
		return nil, err
	}
	defer dataBuf.Release()

	offsets := memory.ViewAs[int32](offsetsBuf.Bytes())
	pos := 0
	for i, v := range values {
		offsets[i] = int32(pos) //nolint:gosec
		pos += copy(dataBuf.Bytes()[pos:], v)
	}
	offsets[len(values)] = int32(pos) //nolint:gosec

	validity, nulls, err := newValidity(alloc, valid)
	if err != nil {
		return nil, err
	}
	defer validity.Release()

	return newBinary(NewData(dtype, len(values), []*memory.Buffer{validity, offsetsBuf, dataBuf}, nulls, 0))
}

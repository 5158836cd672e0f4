package array

import (
	"fmt"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
	"github.com/arloliu/dictmerge/memory"
)

// Boolean is an array of bit-packed booleans.
type Boolean struct {
	array
	values []byte
}

var _ Array = (*Boolean)(nil)

func newBoolean(data *Data) (*Boolean, error) {
	if err := checkValidity(data); err != nil {
		return nil, err
	}
	if data.dtype.ID() != format.TypeBoolean {
		return nil, fmt.Errorf("%w: %s is not a boolean type", errs.ErrTypeMismatch, data.dtype)
	}

	a := &Boolean{}
	a.setData(data)
	if data.length == 0 {
		return a, nil
	}

	values := data.buffer(1)
	if need := bitutil.BytesForBits(data.offset + data.length); values.Len() < need {
		return nil, fmt.Errorf("%w: boolean values have %d bytes, need %d", errs.ErrBufferTooSmall, values.Len(), need)
	}
	a.values = values.Bytes()

	return a, nil
}

// Value returns the value at slot i.
func (a *Boolean) Value(i int) bool {
	return bitutil.BitIsSet(a.values, a.data.offset+i)
}

// NewBoolean builds a boolean array, packing values into allocator-owned buffers.
func NewBoolean(alloc memory.Allocator, values []bool, valid []bool) (*Boolean, error) {
	if valid != nil && len(valid) != len(values) {
		return nil, fmt.Errorf("%w: %d validity flags for %d values", errs.ErrInvalidLength, len(valid), len(values))
	}

	buf, err := memory.AllocateBuffer(alloc, bitutil.BytesForBits(len(values)))
	if err != nil {
		return nil, err
	}
	defer buf.Release()
	for i, v := range values {
		if v {
			bitutil.SetBit(buf.Bytes(), i)
		}
	}

	validity, nulls, err := newValidity(alloc, valid)
	if err != nil {
		return nil, err
	}
	defer validity.Release()

	return newBoolean(NewData(format.Boolean, len(values), []*memory.Buffer{validity, buf}, nulls, 0))
}

package array

import (
	"fmt"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

// Dictionary is a dictionary-encoded array: a signed integer code per slot plus the
// dictionary of distinct values the codes index into.
//
// The logical value of slot i is Dictionary().Value(CodeAt(i)), or null if IsNull(i).
// Codes of valid slots are in [0, Dictionary().Len()).
type Dictionary struct {
	array
	dictType *format.DictionaryType
	indices  Array
	dict     Array
	codeAt   func(i int) int64
}

var _ Array = (*Dictionary)(nil)

func newDictionary(data *Data) (*Dictionary, error) {
	dt, ok := data.dtype.(*format.DictionaryType)
	if !ok {
		return nil, fmt.Errorf("%w: expected dictionary type, got %s", errs.ErrTypeMismatch, data.dtype)
	}
	if data.dictionary == nil {
		return nil, errs.ErrMissingDictionary
	}
	if !format.TypeEqual(dt.ValueType, data.dictionary.dtype) {
		return nil, fmt.Errorf("%w: dictionary values are %s, type declares %s",
			errs.ErrTypeMismatch, data.dictionary.dtype, dt.ValueType)
	}

	// The codes are a plain integer array over the same buffers.
	indexData := &Data{
		dtype:   dt.IndexType,
		length:  data.length,
		offset:  data.offset,
		nulls:   data.nulls,
		buffers: data.buffers,
	}

	d := &Dictionary{dictType: dt}
	d.setData(data)

	var err error
	switch dt.IndexType.ID() {
	case format.TypeInt8:
		d.indices, d.codeAt, err = codeReader[int8](indexData)
	case format.TypeInt16:
		d.indices, d.codeAt, err = codeReader[int16](indexData)
	case format.TypeInt32:
		d.indices, d.codeAt, err = codeReader[int32](indexData)
	case format.TypeInt64:
		d.indices, d.codeAt, err = codeReader[int64](indexData)
	default:
		return nil, fmt.Errorf("%w: unexpected index type %s", errs.ErrNotImplemented, dt.IndexType)
	}
	if err != nil {
		return nil, err
	}

	if d.dict, err = MakeFromData(data.dictionary); err != nil {
		return nil, err
	}

	return d, nil
}

func codeReader[T int8 | int16 | int32 | int64](data *Data) (Array, func(int) int64, error) {
	codes, err := newNumeric[T](data)
	if err != nil {
		return nil, nil, err
	}

	return codes, func(i int) int64 { return int64(codes.values[i]) }, nil
}

// DictType returns the dictionary type.
func (d *Dictionary) DictType() *format.DictionaryType { return d.dictType }

// IndexType returns the type of the codes.
func (d *Dictionary) IndexType() format.DataType { return d.dictType.IndexType }

// Indices returns the codes as an integer array sharing this array's buffers.
func (d *Dictionary) Indices() Array { return d.indices }

// Dictionary returns the dictionary values.
func (d *Dictionary) Dictionary() Array { return d.dict }

// CodeAt returns the code of slot i. The result is unspecified for null slots.
func (d *Dictionary) CodeAt(i int) int64 {
	return d.codeAt(i)
}

// Codes returns the codes of all slots widened to int64.
func (d *Dictionary) Codes() []int64 {
	out := make([]int64, d.Len())
	for i := range out {
		out[i] = d.codeAt(i)
	}

	return out
}

// NewDictionaryData creates a dictionary array from a Data that already has its
// dictionary attached.
func NewDictionaryData(data *Data) (*Dictionary, error) {
	return newDictionary(data)
}

// NewDictionary builds a dictionary array from codes and dictionary values, copying
// the codes into an allocator-owned buffer of dt.IndexType width.
//
// Parameters:
//   - alloc: Allocator for the buffers (nil means memory.DefaultAllocator)
//   - dt: Dictionary type; dt.ValueType must equal dict's type
//   - codes: Code per slot
//   - valid: Validity per slot, or nil if every slot is valid
//   - dict: Dictionary values
func NewDictionary(alloc memory.Allocator, dt *format.DictionaryType, codes []int64, valid []bool, dict Array) (*Dictionary, error) {
	if valid != nil && len(valid) != len(codes) {
		return nil, fmt.Errorf("%w: %d validity flags for %d codes", errs.ErrInvalidLength, len(valid), len(codes))
	}

	width := dt.IndexBitWidth() / 8
	if !dt.IndexType.ID().IsSignedInteger() {
		return nil, fmt.Errorf("%w: unexpected index type %s", errs.ErrNotImplemented, dt.IndexType)
	}

	buf, err := memory.AllocateBuffer(alloc, len(codes)*width)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	switch dt.IndexType.ID() { //nolint:exhaustive
	case format.TypeInt8:
		putCodes(memory.ViewAs[int8](buf.Bytes()), codes)
	case format.TypeInt16:
		putCodes(memory.ViewAs[int16](buf.Bytes()), codes)
	case format.TypeInt32:
		putCodes(memory.ViewAs[int32](buf.Bytes()), codes)
	case format.TypeInt64:
		putCodes(memory.ViewAs[int64](buf.Bytes()), codes)
	}

	validity, nulls, err := newValidity(alloc, valid)
	if err != nil {
		return nil, err
	}
	defer validity.Release()

	data := NewData(dt, len(codes), []*memory.Buffer{validity, buf}, nulls, 0)
	data.SetDictionary(dict.Data())

	return newDictionary(data)
}

func putCodes[T int8 | int16 | int32 | int64](dst []T, codes []int64) {
	for i, c := range codes {
		dst[i] = T(c)
	}
}

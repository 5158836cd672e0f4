package array

import (
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

// Data holds the buffers and metadata shared by every array kind.
type Data struct {
	dtype      format.DataType
	length     int
	offset     int
	nulls      int
	buffers    []*memory.Buffer
	dictionary *Data
}

// NewData creates a Data over the given buffers. Each non-nil buffer is retained.
//
// Parameters:
//   - dtype: Logical type of the values
//   - length: Number of logical slots
//   - buffers: Validity bitmap followed by the type's value buffers
//   - nulls: Number of null slots
//   - offset: Index of the first logical slot in the buffers
func NewData(dtype format.DataType, length int, buffers []*memory.Buffer, nulls, offset int) *Data {
	for _, b := range buffers {
		b.Retain()
	}

	return &Data{
		dtype:   dtype,
		length:  length,
		offset:  offset,
		nulls:   nulls,
		buffers: buffers,
	}
}

// DataType returns the logical type.
func (d *Data) DataType() format.DataType { return d.dtype }

// Len returns the number of logical slots.
func (d *Data) Len() int { return d.length }

// Offset returns the index of the first logical slot in the buffers.
func (d *Data) Offset() int { return d.offset }

// NullN returns the number of null slots.
func (d *Data) NullN() int { return d.nulls }

// Buffers returns the buffers; index 0 is the validity bitmap.
func (d *Data) Buffers() []*memory.Buffer { return d.buffers }

// Dictionary returns the dictionary values of a dictionary array, or nil.
func (d *Data) Dictionary() *Data { return d.dictionary }

// SetDictionary attaches dictionary values, retaining them and releasing any previous ones.
func (d *Data) SetDictionary(dict *Data) {
	if dict != nil {
		dict.Retain()
	}
	if d.dictionary != nil {
		d.dictionary.Release()
	}
	d.dictionary = dict
}

// Retain adds a reference to every buffer and the dictionary.
func (d *Data) Retain() {
	for _, b := range d.buffers {
		b.Retain()
	}
	if d.dictionary != nil {
		d.dictionary.Retain()
	}
}

// Release drops a reference from every buffer and the dictionary.
func (d *Data) Release() {
	for _, b := range d.buffers {
		b.Release()
	}
	if d.dictionary != nil {
		d.dictionary.Release()
	}
}

// buffer returns buffer i or nil if it does not exist.
func (d *Data) buffer(i int) *memory.Buffer {
	if i >= len(d.buffers) {
		return nil
	}

	return d.buffers[i]
}

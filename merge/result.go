package merge

import (
	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/format"
)

// Result is one merged column.
type Result struct {
	// Type is the canonical dictionary type shared by all Columns.
	Type *format.DictionaryType
	// Dictionary holds the canonical values.
	Dictionary array.Array
	// Columns holds the inputs transposed into Type, in input order.
	Columns []*array.Dictionary
	// FastPaths counts the inputs whose codes were reused without copying.
	FastPaths int
}

// Rows returns the total number of rows across Columns.
func (r *Result) Rows() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Len()
	}

	return n
}

// Release drops the references held by the result.
func (r *Result) Release() {
	if r == nil {
		return
	}
	for _, c := range r.Columns {
		c.Release()
	}
	r.Columns = nil
	if r.Dictionary != nil {
		r.Dictionary.Release()
		r.Dictionary = nil
	}
}

package dictionary

import (
	"unsafe"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/hashing"
	"github.com/arloliu/dictmerge/memory"
)

// scalarUnifier unifies dictionaries of fixed-width numbers.
type scalarUnifier[T hashing.Scalar] struct {
	unifierBase
	memo *hashing.ScalarMemoTable[T]
}

func newScalarUnifier[T hashing.Scalar](alloc memory.Allocator, valueType format.DataType) Unifier {
	return &scalarUnifier[T]{
		unifierBase: unifierBase{alloc: alloc, valueType: valueType},
		memo:        hashing.NewScalarMemoTable[T](0),
	}
}

func (u *scalarUnifier[T]) Size() int {
	return u.memo.Size()
}

func (u *scalarUnifier[T]) Unify(dict array.Array) error {
	_, err := u.unify(dict, false)
	return err
}

func (u *scalarUnifier[T]) UnifyAndTranspose(dict array.Array) (*memory.Buffer, error) {
	return u.unify(dict, true)
}

func (u *scalarUnifier[T]) unify(dict array.Array, wantMapping bool) (*memory.Buffer, error) {
	if err := u.validate(dict); err != nil {
		return nil, err
	}

	values, ok := dict.(*array.Numeric[T])
	if !ok {
		return nil, unexpectedArray(dict)
	}

	if !wantMapping {
		for _, v := range values.Values() {
			if _, _, err := u.memo.GetOrInsert(v); err != nil {
				return nil, err
			}
		}

		return nil, nil
	}

	buf, mapping, err := u.allocateMapping(values.Len())
	if err != nil {
		return nil, err
	}
	for i, v := range values.Values() {
		idx, _, err := u.memo.GetOrInsert(v)
		if err != nil {
			buf.Release()
			return nil, err
		}
		mapping[i] = idx
	}

	return buf, nil
}

func (u *scalarUnifier[T]) GetResult() (*format.DictionaryType, array.Array, error) {
	n := u.memo.Size()

	var zero T
	buf, err := memory.AllocateBuffer(u.alloc, n*int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, nil, err
	}
	defer buf.Release()
	u.memo.CopyValues(0, memory.ViewAs[T](buf.Bytes()))

	data := array.NewData(u.valueType, n, []*memory.Buffer{nil, buf}, 0, 0)
	dict, err := array.MakeFromData(data)
	if err != nil {
		data.Release()
		return nil, nil, err
	}

	return u.resultType(n), dict, nil
}

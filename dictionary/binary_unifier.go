package dictionary

import (
	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/hashing"
	"github.com/arloliu/dictmerge/memory"
)

// binaryUnifier unifies dictionaries of strings or byte strings.
type binaryUnifier struct {
	unifierBase
	memo *hashing.BinaryMemoTable
}

func newBinaryUnifier(alloc memory.Allocator, valueType format.DataType) Unifier {
	return &binaryUnifier{
		unifierBase: unifierBase{alloc: alloc, valueType: valueType},
		memo:        hashing.NewBinaryMemoTable(0, 0),
	}
}

func (u *binaryUnifier) Size() int {
	return u.memo.Size()
}

func (u *binaryUnifier) Unify(dict array.Array) error {
	_, err := u.unify(dict, false)
	return err
}

func (u *binaryUnifier) UnifyAndTranspose(dict array.Array) (*memory.Buffer, error) {
	return u.unify(dict, true)
}

func (u *binaryUnifier) unify(dict array.Array, wantMapping bool) (*memory.Buffer, error) {
	if err := u.validate(dict); err != nil {
		return nil, err
	}

	values, ok := dict.(*array.Binary)
	if !ok {
		return nil, unexpectedArray(dict)
	}

	if !wantMapping {
		for i := range values.Len() {
			if _, _, err := u.memo.GetOrInsert(values.Value(i)); err != nil {
				return nil, err
			}
		}

		return nil, nil
	}

	buf, mapping, err := u.allocateMapping(values.Len())
	if err != nil {
		return nil, err
	}
	for i := range values.Len() {
		idx, _, err := u.memo.GetOrInsert(values.Value(i))
		if err != nil {
			buf.Release()
			return nil, err
		}
		mapping[i] = idx
	}

	return buf, nil
}

func (u *binaryUnifier) GetResult() (*format.DictionaryType, array.Array, error) {
	n := u.memo.Size()

	offsets, err := memory.AllocateBuffer(u.alloc, (n+1)*4)
	if err != nil {
		return nil, nil, err
	}
	defer offsets.Release()

	data, err := memory.AllocateBuffer(u.alloc, u.memo.ValuesSizeFrom(0))
	if err != nil {
		return nil, nil, err
	}
	defer data.Release()

	u.memo.CopyOffsets(0, memory.Int32s(offsets))
	u.memo.CopyValues(0, data.Bytes())

	dictData := array.NewData(u.valueType, n, []*memory.Buffer{nil, offsets, data}, 0, 0)
	dict, err := array.MakeFromData(dictData)
	if err != nil {
		dictData.Release()
		return nil, nil, err
	}

	return u.resultType(n), dict, nil
}

package dictionary

import (
	"fmt"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/bitutil"
	"github.com/arloliu/dictmerge/memory"
)

// code is the set of integer types a dictionary index may use.
type code interface {
	int8 | int16 | int32 | int64
}

// transposeFunc remaps the codes of indices into dst for one (input, output) width pair.
type transposeFunc func(indices array.Array, dst []byte, transposeMap []int32)

// transposeTable is indexed by [input width][output width] in the order int8, int16, int32, int64.
var transposeTable = [4][4]transposeFunc{
	{transposeIndices[int8, int8], transposeIndices[int8, int16], transposeIndices[int8, int32], transposeIndices[int8, int64]},
	{transposeIndices[int16, int8], transposeIndices[int16, int16], transposeIndices[int16, int32], transposeIndices[int16, int64]},
	{transposeIndices[int32, int8], transposeIndices[int32, int16], transposeIndices[int32, int32], transposeIndices[int32, int64]},
	{transposeIndices[int64, int8], transposeIndices[int64, int16], transposeIndices[int64, int32], transposeIndices[int64, int64]},
}

func transposeIndices[In, Out code](indices array.Array, dst []byte, transposeMap []int32) {
	transposeInts(indices.(*array.Numeric[In]).Values(), memory.ViewAs[Out](dst), transposeMap)
}

// transposeInts writes transposeMap[src[i]] to dst[i] for every i.
func transposeInts[In, Out code](src []In, dst []Out, transposeMap []int32) {
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] = Out(transposeMap[c])
	}
}

// widthIndex returns the transposeTable row/column of an index type.
func widthIndex(id format.TypeID) (int, bool) {
	switch id { //nolint:exhaustive
	case format.TypeInt8:
		return 0, true
	case format.TypeInt16:
		return 1, true
	case format.TypeInt32:
		return 2, true
	case format.TypeInt64:
		return 3, true
	default:
		return 0, false
	}
}

// isTrivialTransposition reports whether transposeMap is the identity on [0, n).
func isTrivialTransposition(transposeMap []int32, n int) bool {
	for i := range n {
		if int(transposeMap[i]) != i {
			return false
		}
	}

	return true
}

// TransposeMap views a transpose map buffer returned by Unifier.UnifyAndTranspose as int32 values.
func TransposeMap(buf *memory.Buffer) []int32 {
	return memory.Int32s(buf)
}

// Transpose rewrites the codes of arr through transposeMap into a new dictionary array of
// type typ whose dictionary is dict.
//
// transposeMap is indexed by arr's current codes and must cover arr's whole dictionary.
// Its values are not checked against dict's length, and codes at null slots are remapped
// like any other; the caller guarantees both stay in range.
//
// If typ has the same index type as arr and transposeMap is the identity, the result
// shares arr's code and validity buffers and nothing is allocated. Otherwise a new code
// buffer of typ's index width is allocated; the validity bitmap is shared when arr has
// offset 0 and copied to bit 0 of a new buffer otherwise.
//
// Parameters:
//   - alloc: Allocator for new buffers (nil means memory.DefaultAllocator)
//   - arr: Dictionary array to transpose
//   - typ: Target type; must be a *format.DictionaryType
//   - dict: Dictionary values for the result
//   - transposeMap: New code for each old code
//
// Returns:
//   - *array.Dictionary: The transposed array
//   - error: errs.ErrTypeMismatch if typ is not a dictionary type, errs.ErrNotImplemented
//     for index types other than int8, int16, int32 and int64, errs.ErrInvalid if
//     transposeMap is shorter than arr's dictionary, or an allocation error
func Transpose(alloc memory.Allocator, arr *array.Dictionary, typ format.DataType, dict array.Array, transposeMap []int32) (*array.Dictionary, error) {
	outType, ok := typ.(*format.DictionaryType)
	if !ok {
		return nil, fmt.Errorf("%w: expected dictionary type, got %s", errs.ErrTypeMismatch, typ)
	}

	inDictLen := arr.Dictionary().Len()
	if len(transposeMap) < inDictLen {
		return nil, fmt.Errorf("%w: transpose map has %d entries for a dictionary of %d values",
			errs.ErrInvalid, len(transposeMap), inDictLen)
	}

	src := arr.Data()
	validity, codes := bufferAt(src, 0), bufferAt(src, 1)

	inType := arr.IndexType()
	if inType.ID() == outType.IndexType.ID() && isTrivialTransposition(transposeMap, inDictLen) {
		// Codes are unchanged: reuse both buffers and swap the dictionary.
		data := array.NewData(outType, src.Len(), []*memory.Buffer{validity, codes}, src.NullN(), src.Offset())
		data.SetDictionary(dict.Data())

		return newDictionary(data)
	}

	in, inOK := widthIndex(inType.ID())
	out, outOK := widthIndex(outType.IndexType.ID())
	if !inOK || !outOK {
		return nil, fmt.Errorf("%w: unexpected index type %s -> %s", errs.ErrNotImplemented, inType, outType.IndexType)
	}
	remap := transposeTable[in][out]

	outCodes, err := memory.AllocateBuffer(alloc, src.Len()*outType.IndexBitWidth()/8)
	if err != nil {
		return nil, err
	}
	defer outCodes.Release()

	if src.Offset() != 0 && validity != nil {
		validity, err = bitutil.CopyBitmap(alloc, validity.Bytes(), src.Offset(), src.Len())
		if err != nil {
			return nil, err
		}
		defer validity.Release()
	}

	if inDictLen > 0 {
		remap(arr.Indices(), outCodes.Bytes(), transposeMap)
	} else {
		// Every row is null; there is nothing to map the codes through.
		clear(outCodes.Bytes())
	}

	data := array.NewData(outType, src.Len(), []*memory.Buffer{validity, outCodes}, src.NullN(), 0)
	data.SetDictionary(dict.Data())

	return newDictionary(data)
}

// newDictionary wraps data, releasing it if it does not form a valid dictionary array.
func newDictionary(data *array.Data) (*array.Dictionary, error) {
	out, err := array.NewDictionaryData(data)
	if err != nil {
		data.Release()
		return nil, err
	}

	return out, nil
}

func bufferAt(data *array.Data, i int) *memory.Buffer {
	if bufs := data.Buffers(); i < len(bufs) {
		return bufs[i]
	}

	return nil
}

package fragment

import (
	"fmt"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/compress"
	"github.com/arloliu/dictmerge/encoding"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/hash"
	"github.com/arloliu/dictmerge/memory"
	"github.com/arloliu/dictmerge/section"
)

// Fragment is an encoded column fragment with its parsed header.
//
// A Fragment is immutable; it references the bytes it was created from.
type Fragment struct {
	data   []byte
	header section.FragmentHeader
}

// Open parses and verifies the header of an encoded fragment without decoding its payloads.
//
// Parameters:
//   - data: Encoded fragment; it is referenced, not copied
//
// Returns:
//   - Fragment: The fragment view
//   - error: Header errors, errs.ErrInvalidPayloadOffset or errs.ErrChecksumMismatch
func Open(data []byte) (Fragment, error) {
	header, err := section.ParseFragmentHeader(data)
	if err != nil {
		return Fragment{}, err
	}
	if err := header.ValidateOffsets(len(data)); err != nil {
		return Fragment{}, err
	}
	if sum := hash.Checksum32(data[section.HeaderSize:]); sum != header.Checksum {
		return Fragment{}, fmt.Errorf("%w: header has %#08x, payload hashes to %#08x", errs.ErrChecksumMismatch, header.Checksum, sum)
	}

	return Fragment{data: data, header: header}, nil
}

// Bytes returns the encoded fragment.
func (f Fragment) Bytes() []byte { return f.data }

// Header returns a copy of the parsed header.
func (f Fragment) Header() section.FragmentHeader { return f.header }

// Len returns the number of rows.
func (f Fragment) Len() int { return int(f.header.RowCount) }

// DictLen returns the number of dictionary values.
func (f Fragment) DictLen() int { return int(f.header.DictLength) }

// NullN returns the number of null rows.
func (f Fragment) NullN() int { return int(f.header.NullCount) }

// Compression returns the payload compression.
func (f Fragment) Compression() format.CompressionType { return f.header.Flag.Compression() }

// DictType returns the dictionary type recorded in the header.
func (f Fragment) DictType() (*format.DictionaryType, error) {
	return f.header.Flag.DictType()
}

// Decode decompresses and decodes the fragment into a dictionary array.
//
// Parameters:
//   - alloc: Allocator for the decoded buffers (nil means memory.DefaultAllocator)
//
// Returns:
//   - *array.Dictionary: The decoded column, owned by the caller
//   - error: Decompression or decoding errors, errs.ErrInvalid if the null count does not
//     match the header or a code lies outside the dictionary, or an allocation error
func (f Fragment) Decode(alloc memory.Allocator) (*array.Dictionary, error) {
	dt, err := f.header.Flag.DictType()
	if err != nil {
		return nil, err
	}

	payloads, err := f.decompressPayloads()
	if err != nil {
		return nil, err
	}

	engine := f.header.Flag.GetEndianEngine()
	rows := f.Len()

	values, err := encoding.NewValueDecoder(engine, alloc).Decode(dt.ValueType, payloads.dict, f.DictLen())
	if err != nil {
		return nil, fmt.Errorf("failed to decode dictionary payload: %w", err)
	}
	defer values.Release()

	codeDec := encoding.NewCodeDecoder(engine, alloc)
	codes, err := codeDec.Decode(dt.IndexType, payloads.codes, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode codes payload: %w", err)
	}
	defer codes.Release()

	var validity *memory.Buffer
	nulls := 0
	if f.header.Flag.HasValidity() {
		validity, nulls, err = codeDec.DecodeValidity(payloads.validity, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to decode validity payload: %w", err)
		}
		defer validity.Release()
	}
	if nulls != f.NullN() {
		return nil, fmt.Errorf("%w: validity has %d nulls, header declares %d", errs.ErrInvalid, nulls, f.NullN())
	}

	data := array.NewData(dt, rows, []*memory.Buffer{validity, codes}, nulls, 0)
	data.SetDictionary(values.Data())

	arr, err := array.NewDictionaryData(data)
	if err != nil {
		data.Release()
		return nil, err
	}
	if err := checkCodes(arr); err != nil {
		arr.Release()
		return nil, err
	}

	return arr, nil
}

type payloads struct {
	dict     []byte
	codes    []byte
	validity []byte
}

func (f Fragment) decompressPayloads() (payloads, error) {
	codec, err := compress.GetCodec(f.header.Flag.Compression())
	if err != nil {
		return payloads{}, err
	}

	var p payloads
	p.dict, err = codec.Decompress(f.data[section.DictionaryPayloadOffset:f.header.CodesOffset])
	if err != nil {
		return payloads{}, fmt.Errorf("failed to decompress dictionary payload: %w", err)
	}
	p.codes, err = codec.Decompress(f.data[f.header.CodesOffset:f.header.ValidityOffset])
	if err != nil {
		return payloads{}, fmt.Errorf("failed to decompress codes payload: %w", err)
	}
	if f.header.Flag.HasValidity() {
		p.validity, err = codec.Decompress(f.data[f.header.ValidityOffset:])
		if err != nil {
			return payloads{}, fmt.Errorf("failed to decompress validity payload: %w", err)
		}
	}

	return p, nil
}

// checkCodes verifies that every code indexes into the dictionary. Null rows are
// held to the same rule unless the dictionary is empty.
func checkCodes(arr *array.Dictionary) error {
	n := int64(arr.Dictionary().Len())
	for i := range arr.Len() {
		if c := arr.CodeAt(i); c < 0 || (c >= n && !(n == 0 && arr.IsNull(i))) {
			return fmt.Errorf("%w: code %d at row %d outside dictionary of %d values", errs.ErrInvalid, c, i, n)
		}
	}

	return nil
}

// Decode opens and decodes an encoded fragment in one step.
//
// Parameters:
//   - alloc: Allocator for the decoded buffers (nil means memory.DefaultAllocator)
//   - data: Encoded fragment
//
// Returns:
//   - *array.Dictionary: The decoded column, owned by the caller
//   - error: Any error from Open or Fragment.Decode
func Decode(alloc memory.Allocator, data []byte) (*array.Dictionary, error) {
	f, err := Open(data)
	if err != nil {
		return nil, err
	}

	return f.Decode(alloc)
}

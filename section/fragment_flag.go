package section

import (
	"fmt"

	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
)

// FragmentFlag holds the first five header bytes: options, type tags and compression.
type FragmentFlag struct {
	// Options packs the validity, endianness and ordered bits with the magic number.
	Options uint16

	// ValueType is the format.TypeID of the dictionary values.
	ValueType uint8
	// IndexType is the format.TypeID of the codes.
	IndexType uint8
	// CompressionType is the format.CompressionType applied to every payload.
	CompressionType uint8
}

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
}

// NewFragmentFlag creates a little-endian flag with the v1 magic number and no compression.
func NewFragmentFlag() FragmentFlag {
	flag := FragmentFlag{
		Options:         MagicFragmentV1,
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// HasValidity returns whether a validity payload is present.
func (f FragmentFlag) HasValidity() bool {
	return (f.Options & ValidityMask) != 0
}

// SetHasValidity marks the validity payload as present or absent.
func (f *FragmentFlag) SetHasValidity(enabled bool) {
	if enabled {
		f.Options |= ValidityMask
	} else {
		f.Options &^= ValidityMask
	}
}

// IsOrdered returns whether the dictionary type is ordered.
func (f FragmentFlag) IsOrdered() bool {
	return (f.Options & OrderedMask) != 0
}

// SetOrdered sets the ordered bit.
func (f *FragmentFlag) SetOrdered(ordered bool) {
	if ordered {
		f.Options |= OrderedMask
	} else {
		f.Options &^= OrderedMask
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f FragmentFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f FragmentFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *FragmentFlag) WithLittleEndian() {
	f.Options &^= uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *FragmentFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f FragmentFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f FragmentFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicFragmentV1
}

func (f FragmentFlag) ValueTypeID() format.TypeID { return format.TypeID(f.ValueType) }
func (f FragmentFlag) IndexTypeID() format.TypeID { return format.TypeID(f.IndexType) }

// Compression returns the payload compression type.
func (f FragmentFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *FragmentFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// SetDictType records the value type, index type and ordered bit of dt.
func (f *FragmentFlag) SetDictType(dt *format.DictionaryType) {
	f.ValueType = uint8(dt.ValueType.ID())
	f.IndexType = uint8(dt.IndexType.ID())
	f.SetOrdered(dt.Ordered)
}

// DictType rebuilds the dictionary type described by the flag.
//
// Returns:
//   - *format.DictionaryType: The dictionary type
//   - error: errs.ErrInvalidHeaderFlags if either type tag is not a primitive type
func (f FragmentFlag) DictType() (*format.DictionaryType, error) {
	valueType, ok := format.PrimitiveOf(f.ValueTypeID())
	if !ok {
		return nil, fmt.Errorf("%w: value type %d", errs.ErrInvalidHeaderFlags, f.ValueType)
	}
	indexType, ok := format.PrimitiveOf(f.IndexTypeID())
	if !ok {
		return nil, fmt.Errorf("%w: index type %d", errs.ErrInvalidHeaderFlags, f.IndexType)
	}

	dt := format.Dictionary(indexType, valueType)
	dt.Ordered = f.IsOrdered()

	return dt, nil
}

// Validate checks if the flag header contains valid values.
func (f FragmentFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bit set", errs.ErrInvalidHeaderFlags)
	}

	if _, ok := format.PrimitiveOf(f.ValueTypeID()); !ok || f.ValueTypeID() == format.TypeNull {
		return fmt.Errorf("%w: unsupported value type %s", errs.ErrInvalidHeaderFlags, f.ValueTypeID())
	}
	if !f.IndexTypeID().IsSignedInteger() {
		return fmt.Errorf("%w: unsupported index type %s", errs.ErrInvalidHeaderFlags, f.IndexTypeID())
	}
	if _, ok := validCompressions[f.Compression()]; !ok {
		return fmt.Errorf("%w: unsupported compression %s", errs.ErrInvalidHeaderFlags, f.Compression())
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f FragmentFlag) GetEndianEngine() endian.EndianEngine {
	return endian.EngineFor(f.IsLittleEndian())
}

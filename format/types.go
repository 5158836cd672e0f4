package format

type (
	TypeID          uint8
	CompressionType uint8
)

const (
	TypeNull       TypeID = 0x00 // TypeNull represents a column with no values.
	TypeBoolean    TypeID = 0x01 // TypeBoolean represents bit-packed booleans.
	TypeInt8       TypeID = 0x02 // TypeInt8 represents signed 8-bit integers.
	TypeInt16      TypeID = 0x03 // TypeInt16 represents signed 16-bit integers.
	TypeInt32      TypeID = 0x04 // TypeInt32 represents signed 32-bit integers.
	TypeInt64      TypeID = 0x05 // TypeInt64 represents signed 64-bit integers.
	TypeUint8      TypeID = 0x06 // TypeUint8 represents unsigned 8-bit integers.
	TypeUint16     TypeID = 0x07 // TypeUint16 represents unsigned 16-bit integers.
	TypeUint32     TypeID = 0x08 // TypeUint32 represents unsigned 32-bit integers.
	TypeUint64     TypeID = 0x09 // TypeUint64 represents unsigned 64-bit integers.
	TypeFloat32    TypeID = 0x0A // TypeFloat32 represents IEEE-754 single precision floats.
	TypeFloat64    TypeID = 0x0B // TypeFloat64 represents IEEE-754 double precision floats.
	TypeString     TypeID = 0x0C // TypeString represents UTF-8 variable-length strings.
	TypeBinary     TypeID = 0x0D // TypeBinary represents variable-length byte strings.
	TypeDictionary TypeID = 0x0E // TypeDictionary represents dictionary-encoded values.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t TypeID) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "bool"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "utf8"
	case TypeBinary:
		return "binary"
	case TypeDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// BitWidth returns the width in bits of one value of a fixed-width type,
// or 0 for variable-length and nested types.
func (t TypeID) BitWidth() int {
	switch t {
	case TypeBoolean:
		return 1
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32, TypeFloat32:
		return 32
	case TypeInt64, TypeUint64, TypeFloat64:
		return 64
	default:
		return 0
	}
}

// IsSignedInteger reports whether t is one of the signed integer types usable as a dictionary index.
func (t TypeID) IsSignedInteger() bool {
	switch t { //nolint: exhaustive
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	default:
		return false
	}
}

// IsVarLength reports whether t stores variable-length values (offsets + data).
func (t TypeID) IsVarLength() bool {
	return t == TypeString || t == TypeBinary
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

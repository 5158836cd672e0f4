package format

import (
	"fmt"
	"math"
)

// DataType describes the logical type of an array's values.
type DataType interface {
	ID() TypeID
	Name() string
	fmt.Stringer
}

// FixedWidthDataType is a DataType whose values occupy a fixed number of bits.
type FixedWidthDataType interface {
	DataType
	BitWidth() int
}

// PrimitiveType is the DataType of all non-nested, non-parametric types.
type PrimitiveType struct {
	id TypeID
}

var _ FixedWidthDataType = (*PrimitiveType)(nil)

func (t *PrimitiveType) ID() TypeID     { return t.id }
func (t *PrimitiveType) Name() string   { return t.id.String() }
func (t *PrimitiveType) String() string { return t.id.String() }

// BitWidth returns the width of one value in bits, or 0 for variable-length types.
func (t *PrimitiveType) BitWidth() int { return t.id.BitWidth() }

// Singleton descriptors for the primitive types.
var (
	Null    = &PrimitiveType{id: TypeNull}
	Boolean = &PrimitiveType{id: TypeBoolean}
	Int8    = &PrimitiveType{id: TypeInt8}
	Int16   = &PrimitiveType{id: TypeInt16}
	Int32   = &PrimitiveType{id: TypeInt32}
	Int64   = &PrimitiveType{id: TypeInt64}
	Uint8   = &PrimitiveType{id: TypeUint8}
	Uint16  = &PrimitiveType{id: TypeUint16}
	Uint32  = &PrimitiveType{id: TypeUint32}
	Uint64  = &PrimitiveType{id: TypeUint64}
	Float32 = &PrimitiveType{id: TypeFloat32}
	Float64 = &PrimitiveType{id: TypeFloat64}
	String  = &PrimitiveType{id: TypeString}
	Binary  = &PrimitiveType{id: TypeBinary}
)

var primitives = map[TypeID]*PrimitiveType{
	TypeNull:    Null,
	TypeBoolean: Boolean,
	TypeInt8:    Int8,
	TypeInt16:   Int16,
	TypeInt32:   Int32,
	TypeInt64:   Int64,
	TypeUint8:   Uint8,
	TypeUint16:  Uint16,
	TypeUint32:  Uint32,
	TypeUint64:  Uint64,
	TypeFloat32: Float32,
	TypeFloat64: Float64,
	TypeString:  String,
	TypeBinary:  Binary,
}

// PrimitiveOf returns the singleton descriptor for a primitive type ID.
//
// Returns:
//   - *PrimitiveType: The descriptor
//   - bool: false if id is not a primitive type (e.g. TypeDictionary)
func PrimitiveOf(id TypeID) (*PrimitiveType, bool) {
	t, ok := primitives[id]
	return t, ok
}

// DictionaryType is the DataType of dictionary-encoded arrays.
//
// IndexType must be one of Int8, Int16, Int32 or Int64. ValueType is the type
// of the dictionary values.
type DictionaryType struct {
	IndexType DataType
	ValueType DataType
	Ordered   bool
}

var _ DataType = (*DictionaryType)(nil)

// Dictionary creates a dictionary type with the given index and value types.
func Dictionary(indexType, valueType DataType) *DictionaryType {
	return &DictionaryType{IndexType: indexType, ValueType: valueType}
}

func (t *DictionaryType) ID() TypeID   { return TypeDictionary }
func (t *DictionaryType) Name() string { return "dictionary" }

func (t *DictionaryType) String() string {
	return fmt.Sprintf("dictionary<values=%s, indices=%s, ordered=%t>", t.ValueType, t.IndexType, t.Ordered)
}

// IndexBitWidth returns the bit width of the index type, or 0 if it is not fixed-width.
func (t *DictionaryType) IndexBitWidth() int {
	if fw, ok := t.IndexType.(FixedWidthDataType); ok {
		return fw.BitWidth()
	}

	return 0
}

// TypeEqual reports whether two data types are identical.
func TypeEqual(left, right DataType) bool {
	switch {
	case left == nil || right == nil:
		return left == nil && right == nil
	case left.ID() != right.ID():
		return false
	}

	l, lok := left.(*DictionaryType)
	r, rok := right.(*DictionaryType)
	if lok != rok {
		return false
	}
	if !lok {
		return true
	}

	return l.Ordered == r.Ordered &&
		TypeEqual(l.IndexType, r.IndexType) &&
		TypeEqual(l.ValueType, r.ValueType)
}

// IndexTypeForLength returns the narrowest signed integer type able to index a
// dictionary of n values.
//
// Signed maxima are used rather than unsigned ones, so 127 values fit in Int8 and
// 128 values need Int16.
func IndexTypeForLength(n int64) DataType {
	switch {
	case n <= math.MaxInt8:
		return Int8
	case n <= math.MaxInt16:
		return Int16
	case n <= math.MaxInt32:
		return Int32
	default:
		return Int64
	}
}

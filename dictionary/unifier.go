package dictionary

import (
	"fmt"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/memory"
)

// Unifier accumulates dictionaries of one value type into a canonical dictionary.
//
// Identities are assigned to distinct values in first-seen order across all calls, so
// a value that appears in several inputs always maps to the same canonical code.
//
// A Unifier is not safe for concurrent use. Calls are not transactional: if Unify or
// UnifyAndTranspose fails after validation (only possible on allocation failure or an
// overfull memo table) the values inserted so far remain, and the Unifier should be
// discarded.
type Unifier interface {
	// Unify adds the values of dict to the canonical dictionary.
	Unify(dict array.Array) error

	// UnifyAndTranspose adds the values of dict to the canonical dictionary and returns a
	// buffer of dict.Len() int32 values mapping each position of dict to its canonical code.
	UnifyAndTranspose(dict array.Array) (*memory.Buffer, error)

	// GetResult returns the canonical dictionary type and values. It does not modify the
	// Unifier; repeated calls without intervening Unify calls return equal results.
	GetResult() (*format.DictionaryType, array.Array, error)

	// ValueType returns the value type the Unifier was created for.
	ValueType() format.DataType

	// Size returns the number of distinct values seen so far.
	Size() int
}

type unifierFactory func(alloc memory.Allocator, valueType format.DataType) Unifier

// unifierRegistry maps each memoizable value type to its Unifier variant.
// Types without an entry cannot be unified.
var unifierRegistry = map[format.TypeID]unifierFactory{
	format.TypeInt8:    newScalarUnifier[int8],
	format.TypeInt16:   newScalarUnifier[int16],
	format.TypeInt32:   newScalarUnifier[int32],
	format.TypeInt64:   newScalarUnifier[int64],
	format.TypeUint8:   newScalarUnifier[uint8],
	format.TypeUint16:  newScalarUnifier[uint16],
	format.TypeUint32:  newScalarUnifier[uint32],
	format.TypeUint64:  newScalarUnifier[uint64],
	format.TypeFloat32: newScalarUnifier[float32],
	format.TypeFloat64: newScalarUnifier[float64],
	format.TypeString:  newBinaryUnifier,
	format.TypeBinary:  newBinaryUnifier,
}

// NewUnifier creates a Unifier for dictionaries of valueType.
//
// Parameters:
//   - alloc: Allocator for transpose maps and the canonical dictionary (nil means memory.DefaultAllocator)
//   - valueType: Type of the dictionary values
//
// Returns:
//   - Unifier: The unifier
//   - error: errs.ErrNotImplemented if valueType cannot be memoized
func NewUnifier(alloc memory.Allocator, valueType format.DataType) (Unifier, error) {
	if valueType == nil {
		return nil, fmt.Errorf("%w: nil value type", errs.ErrInvalid)
	}

	factory, ok := unifierRegistry[valueType.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: unification of %s dictionaries is not implemented",
			errs.ErrNotImplemented, valueType)
	}
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}

	return factory(alloc, valueType), nil
}

// SupportsType reports whether dictionaries of valueType can be unified.
func SupportsType(valueType format.DataType) bool {
	_, ok := unifierRegistry[valueType.ID()]
	return ok
}

// unifierBase holds what every Unifier variant shares.
type unifierBase struct {
	alloc     memory.Allocator
	valueType format.DataType
}

func (u *unifierBase) ValueType() format.DataType {
	return u.valueType
}

// validate rejects dictionaries the memo table must not see. It runs before any insert.
func (u *unifierBase) validate(dict array.Array) error {
	if dict.NullN() > 0 {
		return fmt.Errorf("%w: cannot yet unify dictionaries with nulls", errs.ErrInvalid)
	}
	if !format.TypeEqual(dict.DataType(), u.valueType) {
		return fmt.Errorf("%w: dictionary type different from unifier: %s", errs.ErrInvalid, dict.DataType())
	}

	return nil
}

// allocateMapping allocates the int32 transpose map for a dictionary of n values.
func (u *unifierBase) allocateMapping(n int) (*memory.Buffer, []int32, error) {
	buf, err := memory.AllocateBuffer(u.alloc, n*4)
	if err != nil {
		return nil, nil, err
	}

	return buf, memory.Int32s(buf), nil
}

// resultType builds the canonical dictionary type for n distinct values.
func (u *unifierBase) resultType(n int) *format.DictionaryType {
	return format.Dictionary(format.IndexTypeForLength(int64(n)), u.valueType)
}

// unexpectedArray reports a dictionary whose Go type does not match its declared value type.
func unexpectedArray(dict array.Array) error {
	return fmt.Errorf("%w: unexpected array implementation %T for %s", errs.ErrTypeMismatch, dict, dict.DataType())
}

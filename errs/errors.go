// Package errs defines the sentinel errors returned by dictmerge packages.
//
// Errors are returned wrapped with additional context using fmt.Errorf and %w,
// so callers should match them with errors.Is:
//
//	if errors.Is(err, errs.ErrNotImplemented) {
//	    // value type cannot be unified
//	}
package errs

import "errors"

// Core error kinds.
var (
	// ErrInvalid is returned for invalid input, such as unifying a dictionary that
	// contains nulls or whose value type differs from the unifier's value type.
	ErrInvalid = errors.New("invalid input")

	// ErrTypeMismatch is returned when an operation receives a data type of the wrong kind,
	// such as transposing into a non-dictionary type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotImplemented is returned when a value type cannot be memoized or an index
	// type is outside the supported signed integer widths.
	ErrNotImplemented = errors.New("not implemented")

	// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
	ErrOutOfMemory = errors.New("out of memory")
)

// Array construction errors.
var (
	ErrInvalidLength    = errors.New("invalid array length")
	ErrBufferTooSmall   = errors.New("buffer too small for array length")
	ErrMissingBuffer    = errors.New("missing required array buffer")
	ErrMissingDictionary = errors.New("dictionary array has no dictionary")
)

// Fragment format errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrChecksumMismatch     = errors.New("fragment checksum mismatch")
	ErrInvalidPayloadOffset = errors.New("invalid payload offset")
	ErrTruncatedPayload     = errors.New("truncated payload")
	ErrValueTooLarge        = errors.New("value exceeds maximum encodable length")
)

// Merge errors.
var (
	ErrNoColumns           = errors.New("no columns to merge")
	ErrColumnCountMismatch = errors.New("column count mismatch")
)

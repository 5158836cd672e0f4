// Package array implements the array descriptor model that dictionary unification and
// transposition operate on.
//
// An array is a view over a Data: a logical type, a length, an offset into the
// underlying buffers, a null count and a list of buffers. Buffer 0 is always the
// validity bitmap (nil when the array has no nulls). For fixed-width types buffer 1
// holds the values; for String and Binary buffer 1 holds int32 offsets and buffer 2
// the value bytes. Dictionary arrays keep their codes in buffer 1 and carry the
// dictionary values as a separate Data.
//
// Buffers are immutable once an array is built, so slicing an array or attaching a
// different dictionary never copies them.
package array

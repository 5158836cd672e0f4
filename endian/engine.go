// Package endian provides the byte order used by serialized column fragments.
//
// A fragment records its byte order in the header flag; every multi-byte field in the
// header and every fixed-width value or code in the payloads is written with the
// matching EndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFixed(engine, buf, codes)
//
// Little-endian is the default. Big-endian exists for producers on big-endian hosts that
// want to avoid byte swapping when writing.
//
// All functions in this package are safe for concurrent use; the engines are stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i)) //nolint:gosec
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order, in which case
// fixed-width slices can be copied without swapping.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// EngineFor returns the little-endian engine if little is true and the big-endian one otherwise.
func EngineFor(little bool) EndianEngine {
	if little {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}

package section

import "math"

const (
	// Bit masks of the Options field.
	ValidityMask     = 0x0001 // Mask for validity payload bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	OrderedMask      = 0x0004 // Mask for ordered dictionary bit (bit 2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicFragmentV1 identifies version 1 of the column fragment format.
	MagicFragmentV1 = 0xD1C0
)

const (
	HeaderSize              = 32             // fixed header size in bytes
	DictionaryPayloadOffset = HeaderSize     // the dictionary payload follows the header
	MaxPayloadOffset        = math.MaxUint32 // offsets are stored as uint32
)

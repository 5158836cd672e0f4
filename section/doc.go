// Package section defines the fixed-size binary header of a column fragment.
//
// A fragment is one dictionary-encoded column serialized on its own:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Dictionary Payload: encoded + compressed values         │
//	├─────────────────────────────────────────────────────────┤
//	│ Codes Payload: encoded + compressed indices             │
//	├─────────────────────────────────────────────────────────┤
//	│ Validity Payload (optional): compressed bitmap          │
//	└─────────────────────────────────────────────────────────┘
//
// The dictionary payload always starts at DictionaryPayloadOffset. The header records
// where the codes and validity payloads start; the validity payload runs to the end of
// the fragment and is empty when the column has no nulls.
//
// # Header Format
//
//	Bytes  | Field           | Type   | Description
//	-------|-----------------|--------|------------------------------------------
//	0-1    | Options         | uint16 | Flags + magic number (always little-endian)
//	2      | ValueType       | uint8  | format.TypeID of the dictionary values
//	3      | IndexType       | uint8  | format.TypeID of the codes
//	4      | CompressionType | uint8  | format.CompressionType of every payload
//	5-7    | Reserved        |        | Must be zero
//	8-11   | RowCount        | uint32 | Number of slots
//	12-15  | DictLength      | uint32 | Number of dictionary values
//	16-19  | NullCount       | uint32 | Number of null slots
//	20-23  | CodesOffset     | uint32 | Start of the codes payload
//	24-27  | ValidityOffset  | uint32 | Start of the validity payload
//	28-31  | Checksum        | uint32 | xxhash64 of bytes 32..end, folded to 32 bits
//
// Fields after byte 4 use the byte order selected by the endianness bit.
//
// # Options Bits
//
//	Bit 0     | Validity payload present
//	Bit 1     | Endianness (0 = little, 1 = big)
//	Bit 2     | Dictionary is ordered
//	Bit 3     | Reserved, must be zero
//	Bits 4-15 | Magic number (MagicFragmentV1)
package section

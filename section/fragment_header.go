package section

import (
	"fmt"

	"github.com/arloliu/dictmerge/errs"
)

// FragmentHeader represents the fixed-size header at the start of a column fragment.
type FragmentHeader struct {
	// Flag is a packed field for options, type tags and compression.
	Flag FragmentFlag // byte offset 0-4

	// RowCount is the number of slots in the column.
	RowCount uint32 // byte offset 8-11
	// DictLength is the number of values in the dictionary payload.
	DictLength uint32 // byte offset 12-15
	// NullCount is the number of null slots.
	NullCount uint32 // byte offset 16-19
	// CodesOffset is the byte offset of the codes payload.
	// It records the offset after the encoded and compressed dictionary payload.
	CodesOffset uint32 // byte offset 20-23
	// ValidityOffset is the byte offset of the validity payload.
	// It records the offset after the encoded and compressed codes payload.
	ValidityOffset uint32 // byte offset 24-27
	// Checksum covers every byte after the header.
	Checksum uint32 // byte offset 28-31
}

// NewFragmentHeader creates a header with a default flag.
// Counts, offsets and checksum are set by the encoder once the payloads are written.
func NewFragmentHeader() *FragmentHeader {
	return &FragmentHeader{
		Flag:           NewFragmentFlag(),
		CodesOffset:    DictionaryPayloadOffset,
		ValidityOffset: DictionaryPayloadOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *FragmentHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options are always little-endian so the endianness bit can be read first.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.ValueType = data[2]
	h.Flag.IndexType = data[3]
	h.Flag.CompressionType = data[4]
	if data[5]|data[6]|data[7] != 0 {
		return fmt.Errorf("%w: reserved header bytes are not zero", errs.ErrInvalidHeaderFlags)
	}

	engine := h.Flag.GetEndianEngine()
	h.RowCount = engine.Uint32(data[8:12])
	h.DictLength = engine.Uint32(data[12:16])
	h.NullCount = engine.Uint32(data[16:20])
	h.CodesOffset = engine.Uint32(data[20:24])
	h.ValidityOffset = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])

	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if h.NullCount > h.RowCount {
		return fmt.Errorf("%w: %d nulls in %d rows", errs.ErrInvalidHeaderFlags, h.NullCount, h.RowCount)
	}

	return nil
}

// Bytes serializes the header into a new 32-byte slice.
func (h *FragmentHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.ValueType
	b[3] = h.Flag.IndexType
	b[4] = h.Flag.CompressionType

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.DictLength)
	engine.PutUint32(b[16:20], h.NullCount)
	engine.PutUint32(b[20:24], h.CodesOffset)
	engine.PutUint32(b[24:28], h.ValidityOffset)
	engine.PutUint32(b[28:32], h.Checksum)

	return b
}

// ValidateOffsets checks that the payload offsets are ordered and lie within a
// fragment of size bytes.
//
// Returns:
//   - error: errs.ErrInvalidPayloadOffset if an offset is out of order or past the end
func (h *FragmentHeader) ValidateOffsets(size int) error {
	if h.CodesOffset < DictionaryPayloadOffset || h.ValidityOffset < h.CodesOffset || int64(h.ValidityOffset) > int64(size) {
		return fmt.Errorf("%w: dictionary=%d codes=%d validity=%d size=%d", errs.ErrInvalidPayloadOffset,
			DictionaryPayloadOffset, h.CodesOffset, h.ValidityOffset, size)
	}
	if h.Flag.HasValidity() != (int64(h.ValidityOffset) < int64(size)) {
		return fmt.Errorf("%w: validity payload presence does not match flag", errs.ErrInvalidPayloadOffset)
	}

	return nil
}

// ParseFragmentHeader parses a FragmentHeader from the start of a fragment.
//
// Parameters:
//   - data: Byte slice containing the fragment (must be at least 32 bytes)
//
// Returns:
//   - FragmentHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseFragmentHeader(data []byte) (FragmentHeader, error) {
	if len(data) < HeaderSize {
		return FragmentHeader{}, errs.ErrInvalidHeaderSize
	}

	h := FragmentHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return FragmentHeader{}, err
	}

	return h, nil
}

package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses fragment payloads with S2, the Snappy-compatible block
// format from klauspost/compress.
//
// Each payload (dictionary values, codes, validity) is encoded as one S2 block, so a
// fragment reader can decode any payload without touching the others. S2 blocks record
// their decoded length, which lets Decompress size its output in a single allocation.
// An empty payload encodes to nil and a fragment header records it with zero length.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates the codec used for fragments written with format.CompressionS2.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes one fragment payload as an S2 block.
func (c S2Compressor) Compress(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, payload), nil
}

// Decompress decodes one S2 block back into a fragment payload.
// Corrupt input returns the s2 decode error unchanged.
func (c S2Compressor) Decompress(block []byte) ([]byte, error) {
	if len(block) == 0 {
		return nil, nil
	}

	decoded, err := s2.Decode(nil, block)
	if err != nil {
		return nil, err
	}

	return decoded, nil
}

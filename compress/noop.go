package compress

// NoOpCompressor stores payloads as encoded.
//
// Small dictionaries often compress worse than they encode, so None is the right choice
// for fragments of a few hundred bytes.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself.
//
// The returned slice shares memory with data; callers must not modify data afterwards
// while the result is in use.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

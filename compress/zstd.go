package compress

// ZstdCompressor compresses payloads as standard zstd frames.
//
// The backend is chosen at build time: klauspost/compress/zstd by default, or
// valyala/gozstd with the gozstd build tag and cgo enabled.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

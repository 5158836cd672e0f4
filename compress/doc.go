// Package compress provides the codecs applied to column fragment payloads.
//
// A fragment stores three payloads: the dictionary values, the codes and the validity
// bitmap. Each is encoded first (see package encoding) and then compressed with the
// codec named in the fragment header:
//
//   - format.CompressionNone: payload stored as encoded
//   - format.CompressionZstd: best ratio; suits large string dictionaries
//   - format.CompressionS2: balanced speed and ratio
//   - format.CompressionLZ4: fastest decompression
//
// # Zstandard Backends
//
// By default Zstd uses the pure Go github.com/klauspost/compress/zstd implementation
// with pooled encoders and decoders. Building with the gozstd tag (and cgo enabled)
// switches to the cgo binding github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both produce standard zstd frames, so fragments written by one backend decode with the
// other.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// # Thread Safety
//
// All codecs returned by GetCodec and CreateCodec are stateless values and safe for
// concurrent use.
package compress

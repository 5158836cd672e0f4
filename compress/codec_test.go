package compress

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// stringDictionaryPayload mimics an encoded string dictionary: uvarint length prefixes
// followed by similar-looking keys.
func stringDictionaryPayload(n int) []byte {
	var buf []byte
	for i := range n {
		key := []byte("region-eu-west-" + string(rune('a'+i%26)))
		buf = binary.AppendUvarint(buf, uint64(len(key)))
		buf = append(buf, key...)
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		compression format.CompressionType
		want        Codec
	}{
		{format.CompressionNone, NewNoOpCompressor()},
		{format.CompressionZstd, NewZstdCompressor()},
		{format.CompressionS2, NewS2Compressor()},
		{format.CompressionLZ4, NewLZ4Compressor()},
	}
	for _, tt := range tests {
		t.Run(tt.compression.String(), func(t *testing.T) {
			codec, err := CreateCodec(tt.compression, "dictionary")
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
			require.True(t, IsSupported(tt.compression))
		})
	}

	_, err := CreateCodec(format.CompressionType(0x9), "codes")
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	require.Contains(t, err.Error(), "codes")
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.IsType(t, S2Compressor{}, codec)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	require.False(t, IsSupported(format.CompressionType(0)))
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])

	back, err := NewNoOpCompressor().Decompress(out)
	require.NoError(t, err)
	require.Equal(t, data, back)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_byte", []byte{0x42}},
		{"int8_codes", bytes.Repeat([]byte{0, 1, 2, 1, 0, 3}, 200)},
		{"string_dictionary", stringDictionaryPayload(500)},
		{"validity_bitmap", bytes.Repeat([]byte{0xFF, 0xFB, 0xFF, 0x7F}, 64)},
		{"highly_compressible", make([]byte, 256*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := [][]byte{
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("this is not compressed data"),
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}
		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				_, err := codec.Decompress(input)
				require.Error(t, err)
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	payload := stringDictionaryPayload(64)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(payload)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(payload, out) {
						errCh <- errs.ErrChecksumMismatch
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkCodecs_StringDictionary(b *testing.B) {
	payload := stringDictionaryPayload(4096)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(payload)
		require.NoError(b, err)

		b.Run(name+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})
		b.Run(name+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}

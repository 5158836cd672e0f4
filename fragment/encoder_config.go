package fragment

import (
	"github.com/arloliu/dictmerge/compress"
	"github.com/arloliu/dictmerge/endian"
	"github.com/arloliu/dictmerge/format"
	"github.com/arloliu/dictmerge/internal/options"
	"github.com/arloliu/dictmerge/section"
)

// encoderConfig holds the settings shared by every fragment an Encoder produces.
type encoderConfig struct {
	header *section.FragmentHeader
	codec  compress.Codec
	engine endian.EndianEngine
}

func newEncoderConfig() *encoderConfig {
	header := section.NewFragmentHeader()
	header.Flag.SetCompression(format.CompressionZstd)

	return &encoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}
}

// setEndianess sets the byte order of fragment payloads and header fields.
func (c *encoderConfig) setEndianess(opt endianness) {
	if opt == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}
	c.engine = c.header.Flag.GetEndianEngine()
}

// setCompression records the payload compression and resolves its codec.
func (c *encoderConfig) setCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "fragment")
	if err != nil {
		return err
	}

	c.header.Flag.SetCompression(comp)
	c.codec = codec

	return nil
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption represents a functional option for configuring an Encoder.
type EncoderOption = options.Option[*encoderConfig]

// WithLittleEndian sets the encoder to use little-endian byte order.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian sets the encoder to use big-endian byte order.
// It rarely needs to be used unless interoperability with big-endian systems is required.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.setEndianess(bigEndianOpt)
	})
}

// WithCompression sets the compression applied to every payload. The default is Zstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		return c.setCompression(comp)
	})
}

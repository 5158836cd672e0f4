package fragment

import (
	"fmt"
	"math"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/encoding"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/internal/hash"
	"github.com/arloliu/dictmerge/internal/options"
	"github.com/arloliu/dictmerge/section"
)

// Encoder serializes dictionary arrays into fragments.
type Encoder struct {
	cfg *encoderConfig
}

// NewEncoder creates a fragment encoder.
//
// Parameters:
//   - opts: Optional configuration (WithCompression, WithLittleEndian, WithBigEndian)
//
// Returns:
//   - *Encoder: The encoder
//   - error: Error from an invalid option
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.codec == nil {
		if err := cfg.setCompression(cfg.header.Flag.Compression()); err != nil {
			return nil, err
		}
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode serializes arr into a fragment.
//
// Sliced arrays are supported: only the slots in view are written and the validity
// bitmap is realigned to start at bit 0.
//
// Returns:
//   - Fragment: The encoded fragment
//   - error: errs.ErrInvalid if the dictionary has nulls, errs.ErrValueTooLarge if a
//     count or offset does not fit the header, or a compression error
func (e *Encoder) Encode(arr *array.Dictionary) (Fragment, error) {
	if arr == nil {
		return Fragment{}, fmt.Errorf("%w: nil column", errs.ErrInvalid)
	}

	dict := arr.Dictionary()
	if int64(arr.Len()) > math.MaxUint32 || int64(dict.Len()) > math.MaxUint32 {
		return Fragment{}, fmt.Errorf("%w: %d rows, %d dictionary values", errs.ErrValueTooLarge, arr.Len(), dict.Len())
	}

	// Copy the header so the configured one stays untouched.
	header := *e.cfg.header
	header.Flag.SetDictType(arr.DictType())

	valEnc := encoding.NewValueEncoder(e.cfg.engine)
	defer valEnc.Finish()
	codeEnc := encoding.NewCodeEncoder(e.cfg.engine)
	defer codeEnc.Finish()

	if err := valEnc.Write(dict); err != nil {
		return Fragment{}, err
	}
	if err := codeEnc.Write(arr); err != nil {
		return Fragment{}, err
	}

	dictPayload, err := e.cfg.codec.Compress(valEnc.Bytes())
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to compress dictionary payload: %w", err)
	}
	codesPayload, err := e.cfg.codec.Compress(codeEnc.Bytes())
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to compress codes payload: %w", err)
	}

	var validityPayload []byte
	if validity := encoding.AppendValidity(nil, arr); len(validity) > 0 {
		validityPayload, err = e.cfg.codec.Compress(validity)
		if err != nil {
			return Fragment{}, fmt.Errorf("failed to compress validity payload: %w", err)
		}
	}
	header.Flag.SetHasValidity(len(validityPayload) > 0)

	codesOffset := section.DictionaryPayloadOffset + len(dictPayload)
	validityOffset := codesOffset + len(codesPayload)
	total := validityOffset + len(validityPayload)
	if int64(total) > section.MaxPayloadOffset {
		return Fragment{}, fmt.Errorf("%w: fragment of %d bytes", errs.ErrValueTooLarge, total)
	}

	header.RowCount = uint32(arr.Len())            //nolint:gosec
	header.DictLength = uint32(dict.Len())         //nolint:gosec
	header.NullCount = uint32(arr.NullN())         //nolint:gosec
	header.CodesOffset = uint32(codesOffset)       //nolint:gosec
	header.ValidityOffset = uint32(validityOffset) //nolint:gosec
	header.Checksum = hash.Checksum32(dictPayload, codesPayload, validityPayload)

	data := make([]byte, 0, total)
	data = append(data, header.Bytes()...)
	data = append(data, dictPayload...)
	data = append(data, codesPayload...)
	data = append(data, validityPayload...)

	return Fragment{data: data, header: header}, nil
}

package wavutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// ErrTruncatedHeader is returned when the input ends before a full
	// header could be read.
	ErrTruncatedHeader = errors.New("truncated wav header")
)

// RiffChunk is the outer RIFF container chunk of a wav file.
type RiffChunk struct {
	ID     [4]byte
	Size   uint32
	Format [4]byte
}

// FmtChunk describes the PCM layout of the audio payload. Only the fixed
// 16-byte fmt payload is modeled; extensible fmt variants are rejected by
// size upstream of this package.
type FmtChunk struct {
	ID            [4]byte
	Size          uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// DataChunk introduces the audio payload. Size is the declared payload
// byte length; the actual stream end is authoritative during copying.
type DataChunk struct {
	ID   [4]byte
	Size uint32
}

// WavHeader is the fixed three-chunk wav header: RIFF, fmt and data
// chunks back to back with no padding. The audio payload follows
// immediately after it in the file.
type WavHeader struct {
	Riff RiffChunk
	Fmt  FmtChunk
	Data DataChunk
}

// HeaderSize is the encoded size of a WavHeader in bytes, derived from
// the field widths rather than spelled out.
var HeaderSize = binary.Size(WavHeader{})

// DecodeHeader reads exactly HeaderSize bytes from r and decodes them as
// a little-endian wav header. No semantic checks are performed; see
// Validate for those.
func DecodeHeader(r io.Reader) (WavHeader, error) {
	buf := make([]byte, HeaderSize)

	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return WavHeader{}, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
		}

		return WavHeader{}, fmt.Errorf("failed to read wav header: %w", err)
	}

	var h WavHeader
	if err := h.UnmarshalBinary(buf); err != nil {
		return WavHeader{}, err
	}

	return h, nil
}

// EncodeHeader writes the encoded header to w. A write that transfers
// fewer than HeaderSize bytes is an error.
func EncodeHeader(w io.Writer, h WavHeader) error {
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}

	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}

	if n != len(buf) {
		return fmt.Errorf("wav header: %w: wrote %d of %d bytes", io.ErrShortWrite, n, len(buf))
	}

	return nil
}

// MarshalBinary encodes the header into exactly HeaderSize little-endian
// bytes. It is the inverse of UnmarshalBinary for every header value.
func (h WavHeader) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))

	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("failed to encode wav header: %w", err)
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a header from the first HeaderSize bytes of
// data using the declared little-endian layout.
func (h *WavHeader) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedHeader, len(data), HeaderSize)
	}

	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, h); err != nil {
		return fmt.Errorf("failed to decode wav header: %w", err)
	}

	return nil
}

// WithSampleRate returns a copy of h with only the fmt sample rate
// replaced. The chunk size fields deliberately pass through untouched,
// matching what downstream tools expect from header-only edits.
func (h WavHeader) WithSampleRate(rate uint32) WavHeader {
	h.Fmt.SampleRate = rate

	return h
}

// HalfSpeed returns a copy of h with the sample rate halved, which makes
// players run the unchanged payload at 50% speed.
func (h WavHeader) HalfSpeed() WavHeader {
	return h.WithSampleRate(h.Fmt.SampleRate / 2)
}

// NewHeader builds a header for a PCM payload of the given shape, with
// the canonical tags filled in. Mostly useful for generating files.
func NewHeader(numChannels, bitsPerSample uint16, sampleRate, dataSize uint32) WavHeader {
	blockAlign := numChannels * bitsPerSample / bitsPerByte

	return WavHeader{
		Riff: RiffChunk{
			ID:     riff.RiffID,
			Size:   dataSize + uint32(HeaderSize) - 8,
			Format: riff.WavFormatID,
		},
		Fmt: FmtChunk{
			ID:            riff.FmtID,
			Size:          fmtPayloadSize,
			AudioFormat:   AudioFormatPCM,
			NumChannels:   numChannels,
			SampleRate:    sampleRate,
			ByteRate:      sampleRate * uint32(blockAlign),
			BlockAlign:    blockAlign,
			BitsPerSample: bitsPerSample,
		},
		Data: DataChunk{
			ID:   riff.DataFormatID,
			Size: dataSize,
		},
	}
}

// AudioFormatPCM is the fmt chunk format code for linear PCM.
const AudioFormatPCM = 1

const (
	bitsPerByte    = 8
	fmtPayloadSize = 16
)

package wavutil

import (
	"time"

	"github.com/go-audio/audio"
)

// Format returns the audio format described by the fmt chunk.
func (h WavHeader) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(h.Fmt.NumChannels),
		SampleRate:  int(h.Fmt.SampleRate),
	}
}

// NumSamples returns the number of whole samples the declared payload
// size holds, counting each channel's sample separately.
func (h WavHeader) NumSamples() uint32 {
	bytesPerSample := uint32(h.Fmt.BitsPerSample) / bitsPerByte
	if bytesPerSample == 0 {
		return 0
	}

	return h.Data.Size / bytesPerSample
}

// Duration returns the playback time of the declared payload at the
// declared byte rate, or 0 when the byte rate is unset.
func (h WavHeader) Duration() time.Duration {
	if h.Fmt.ByteRate == 0 {
		return 0
	}

	return time.Duration(float64(h.Data.Size) / float64(h.Fmt.ByteRate) * float64(time.Second))
}

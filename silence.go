package wavutil

// Default divisors for the silenced window. The window sits just past the
// payload midpoint: start is numSamples/2 + numSamples/100, end is
// numSamples/2 + numSamples/30, so the smaller end divisor pushes the end
// further out than the start.
const (
	DefaultStartDivisor = 100
	DefaultEndDivisor   = 30
)

// SilenceWindow zeroes an inclusive byte-offset range of the audio
// payload. The range is computed from header fields in whole samples but
// applied to raw payload offsets, so the window edges may cut a sample in
// half; that approximation is part of the contract.
type SilenceWindow struct {
	Start uint32
	End   uint32
}

// NewSilenceWindow derives the silenced range from the header using the
// default divisors.
func NewSilenceWindow(h WavHeader) SilenceWindow {
	return NewSilenceWindowDivisors(h, DefaultStartDivisor, DefaultEndDivisor)
}

// NewSilenceWindowDivisors derives the silenced range from the header
// with explicit divisors. All arithmetic is truncating uint32 division.
// A sample width below one byte or a zero divisor yields an empty window.
func NewSilenceWindowDivisors(h WavHeader, startDivisor, endDivisor uint32) SilenceWindow {
	bytesPerSample := uint32(h.Fmt.BitsPerSample) / bitsPerByte
	if bytesPerSample == 0 || startDivisor == 0 || endDivisor == 0 {
		return SilenceWindow{Start: 1, End: 0}
	}

	numSamples := h.Data.Size / bytesPerSample

	return SilenceWindow{
		Start: numSamples/2 + numSamples/startDivisor,
		End:   numSamples/2 + numSamples/endDivisor,
	}
}

// Empty reports whether the window covers no offsets at all.
func (sw SilenceWindow) Empty() bool {
	return sw.Start > sw.End
}

// TransformBlock zeroes every block byte whose absolute payload offset
// falls inside [Start, End]. off is the payload offset of block[0].
func (sw SilenceWindow) TransformBlock(block []byte, off int64) {
	if sw.Empty() {
		return
	}

	lo := max(int64(sw.Start)-off, 0)
	hi := min(int64(sw.End)-off+1, int64(len(block)))

	if lo >= hi {
		return
	}

	clear(block[lo:hi])
}

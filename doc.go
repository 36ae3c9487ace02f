// Package wavutil models the minimal three-chunk WAV container: the RIFF
// header, the fmt sub-chunk and the data sub-chunk, back to back with no
// other chunks in between.
//
// The package decodes and encodes the fixed 44-byte header with an
// explicit little-endian codec, validates the four chunk tags (reporting
// every mismatch, not just the first), and streams the audio payload in
// fixed-size blocks to any number of output streams. Payload bytes are
// opaque; the only edit offered is a header-derived silence window that
// zeroes a byte range of the copy.
//
// Files with extra chunks, non-standard chunk order or extensible fmt
// payloads are out of scope and fail tag or size checks.
package wavutil

package wavutil

import "strconv"

// Field is one labeled header value prepared for display.
type Field struct {
	Label string
	Value string
}

// ChunkDump groups the display fields of one chunk, in file order.
type ChunkDump struct {
	Name   string
	Fields []Field
}

// DumpHeader renders a decoded header as ordered (label, value) pairs per
// chunk. Tags are shown as their raw four characters, numbers in decimal;
// how the pairs are laid out on screen is the caller's business.
func DumpHeader(h WavHeader) []ChunkDump {
	return []ChunkDump{
		{
			Name: "RIFF CHUNK",
			Fields: []Field{
				{Label: "ID", Value: tagString(h.Riff.ID)},
				{Label: "Size", Value: u32String(h.Riff.Size)},
				{Label: "Format", Value: tagString(h.Riff.Format)},
			},
		},
		{
			Name: "FMT CHUNK",
			Fields: []Field{
				{Label: "ID", Value: tagString(h.Fmt.ID)},
				{Label: "Size", Value: u32String(h.Fmt.Size)},
				{Label: "Format", Value: u32String(uint32(h.Fmt.AudioFormat))},
				{Label: "Channels", Value: u32String(uint32(h.Fmt.NumChannels))},
				{Label: "Sample rate", Value: u32String(h.Fmt.SampleRate)},
				{Label: "Byte rate", Value: u32String(h.Fmt.ByteRate)},
				{Label: "Block align", Value: u32String(uint32(h.Fmt.BlockAlign))},
				{Label: "Bits per sample", Value: u32String(uint32(h.Fmt.BitsPerSample))},
			},
		},
		{
			Name: "DATA CHUNK",
			Fields: []Field{
				{Label: "ID", Value: tagString(h.Data.ID)},
				{Label: "Size", Value: u32String(h.Data.Size)},
			},
		},
	}
}

// tagString renders a fixed-width tag as-is. Tags are not
// null-terminated, so the full four bytes always count.
func tagString(tag [4]byte) string {
	return string(tag[:])
}

func u32String(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

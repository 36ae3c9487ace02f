package wavutil

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBlockSize is the payload block size used when a Copier does not
// set its own.
const DefaultBlockSize = 4096

var errNoOutputs = errors.New("copier needs at least one output")

// BlockTransform mutates a payload block in place. off is the absolute
// payload offset of block[0]; with fixed-size blocks this is
// blockIndex*blockSize for 0-indexed blocks.
type BlockTransform interface {
	TransformBlock(block []byte, off int64)
}

// Output is one destination stream of a copy run. A nil Transform means
// pass-through; otherwise the transform runs on a private copy of each
// block so sibling outputs still see the original bytes.
type Output struct {
	Name      string
	W         io.Writer
	Transform BlockTransform
}

// Stats reports what a copy run moved: input blocks read (including a
// short final block) and total input payload bytes, each of which was
// written to every output.
type Stats struct {
	Blocks int
	Bytes  int64
}

// Copier drains an input payload stream block by block into one or more
// output streams, in lockstep: every output receives a block before the
// next one is read. Memory use is two block-sized buffers at most,
// regardless of payload size.
type Copier struct {
	BlockSize int
	Outputs   []*Output
}

// NewCopier returns a copier over the given outputs with the default
// block size.
func NewCopier(outputs ...*Output) *Copier {
	return &Copier{BlockSize: DefaultBlockSize, Outputs: outputs}
}

// Copy moves the payload from r to every configured output until r is
// exhausted. The declared data chunk size plays no part here: the
// stream's own end signal terminates the copy, so truncated payloads are
// copied as far as they go. Any write error or short write aborts the run
// immediately with an error naming the output.
func (c *Copier) Copy(r io.Reader) (Stats, error) {
	var st Stats

	if len(c.Outputs) == 0 {
		return st, errNoOutputs
	}

	blockSize := c.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	block := make([]byte, blockSize)

	var scratch []byte

	for _, out := range c.Outputs {
		if out.Transform != nil {
			scratch = make([]byte, blockSize)
			break
		}
	}

	for {
		// Fill whole blocks so transform offsets stay stable even when
		// the reader returns short counts mid-stream.
		n, err := io.ReadFull(r, block)
		if n > 0 {
			off := st.Bytes

			if werr := c.writeBlock(block[:n], scratch, off); werr != nil {
				return st, werr
			}

			st.Blocks++
			st.Bytes += int64(n)
		}

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return st, nil
		}

		if err != nil {
			return st, fmt.Errorf("failed to read payload block %d: %w", st.Blocks, err)
		}
	}
}

func (c *Copier) writeBlock(block, scratch []byte, off int64) error {
	for _, out := range c.Outputs {
		buf := block

		if out.Transform != nil {
			buf = scratch[:len(block)]
			copy(buf, block)
			out.Transform.TransformBlock(buf, off)
		}

		n, err := out.W.Write(buf)
		if err != nil {
			return fmt.Errorf("failed to write payload to %s: %w", out.Name, err)
		}

		if n != len(buf) {
			return fmt.Errorf("output %s: %w: wrote %d of %d bytes", out.Name, io.ErrShortWrite, n, len(buf))
		}
	}

	return nil
}

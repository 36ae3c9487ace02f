// wav-util inspects wav files that use the minimal three-chunk layout and
// optionally emits derived copies: a byte-exact copy, a half-speed copy
// (sample rate halved in the header, payload untouched), and a copy with a
// header-derived region of the payload silenced. All requested copies are
// produced in a single streaming pass over the input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	wavutil "github.com/nberr/wav-util"
)

// Exit codes distinguish a rejected input file from output or environment
// trouble.
const (
	exitBadInput  = 1
	exitBadOutput = 2
)

var (
	errMissingPath = errors.New("please provide a file: wav-util [flags] <filename|path>")
	errTooManyArgs = errors.New("too many arguments: wav-util [flags] <filename|path>")
	errOpenInput   = errors.New("failed to open input file")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	var verr *wavutil.ValidationError
	if errors.As(err, &verr) {
		for _, v := range verr.Violations {
			fmt.Fprintln(os.Stderr, v)
		}

		fmt.Fprintln(os.Stderr, "input file could not be verified")
		os.Exit(exitBadInput)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if errors.Is(err, errOpenInput) || errors.Is(err, wavutil.ErrTruncatedHeader) {
		return exitBadInput
	}

	return exitBadOutput
}

// target pairs an output path with the header to write into it and the
// optional payload transform to apply.
type target struct {
	path      string
	header    wavutil.WavHeader
	transform wavutil.BlockTransform
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wav-util", flag.ContinueOnError)

	copyPath := flagSet.String("copy", "", "write an unmodified copy of the file to this path")
	halfPath := flagSet.String("half", "", "write a copy with the sample rate halved to this path")
	silencePath := flagSet.String("silence", "", "write a copy with the silence window zeroed to this path")
	blockSize := flagSet.Int("block", wavutil.DefaultBlockSize, "payload block size in bytes")
	startDiv := flagSet.Uint("start-div", wavutil.DefaultStartDivisor, "divisor for the silence window start")
	endDiv := flagSet.Uint("end-div", wavutil.DefaultEndDivisor, "divisor for the silence window end")
	verbose := flagSet.Bool("v", false, "print copy statistics")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	if flagSet.NArg() > 1 {
		return errTooManyArgs
	}

	path := flagSet.Arg(0)

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", errOpenInput, path, err)
	}
	defer in.Close()

	header, err := wavutil.DecodeHeader(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := wavutil.ValidateHeader(header); err != nil {
		return err
	}

	printHeader(out, header)

	var targets []target

	if *copyPath != "" {
		targets = append(targets, target{path: *copyPath, header: header})
	}

	if *halfPath != "" {
		targets = append(targets, target{path: *halfPath, header: header.HalfSpeed()})
	}

	if *silencePath != "" {
		window := wavutil.NewSilenceWindowDivisors(header, uint32(*startDiv), uint32(*endDiv))
		targets = append(targets, target{path: *silencePath, header: header, transform: window})
	}

	if len(targets) == 0 {
		return nil
	}

	stats, err := writeTargets(in, targets, *blockSize)
	if err != nil {
		return err
	}

	if *verbose {
		fmt.Fprintf(out, "copied %d blocks (%d bytes) to %d output(s)\n",
			stats.Blocks, stats.Bytes, len(targets))
	}

	return nil
}

// writeTargets creates every output file, writes each one's header, then
// drains the remaining input payload into all of them in one pass.
func writeTargets(in io.Reader, targets []target, blockSize int) (wavutil.Stats, error) {
	outputs := make([]*wavutil.Output, 0, len(targets))
	files := make([]*os.File, 0, len(targets))

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, tgt := range targets {
		f, err := os.Create(tgt.path)
		if err != nil {
			closeAll()
			return wavutil.Stats{}, fmt.Errorf("failed to create %s: %w", tgt.path, err)
		}

		files = append(files, f)

		if err := wavutil.EncodeHeader(f, tgt.header); err != nil {
			closeAll()
			return wavutil.Stats{}, fmt.Errorf("%s: %w", tgt.path, err)
		}

		outputs = append(outputs, &wavutil.Output{Name: tgt.path, W: f, Transform: tgt.transform})
	}

	copier := wavutil.NewCopier(outputs...)
	copier.BlockSize = blockSize

	stats, err := copier.Copy(in)
	if err != nil {
		closeAll()
		return stats, err
	}

	for _, f := range files {
		if err := f.Close(); err != nil {
			return stats, fmt.Errorf("failed to close %s: %w", f.Name(), err)
		}
	}

	return stats, nil
}

func printHeader(out io.Writer, h wavutil.WavHeader) {
	for _, chunk := range wavutil.DumpHeader(h) {
		border := "+" + strings.Repeat("-", len(chunk.Name)+2) + "+"

		fmt.Fprintln(out, border)
		fmt.Fprintf(out, "| %s |\n", chunk.Name)
		fmt.Fprintln(out, border)

		for _, field := range chunk.Fields {
			fmt.Fprintf(out, "%s\t%s\n", field.Label, field.Value)
		}
	}

	format := h.Format()
	fmt.Fprintf(out, "PCM %dch %dHz %d-bit, duration %s\n",
		format.NumChannels, format.SampleRate, h.Fmt.BitsPerSample, h.Duration())
}

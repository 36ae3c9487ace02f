package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wavutil "github.com/nberr/wav-util"
)

// writeTestWav builds a minimal three-chunk wav file on disk and returns
// its path alongside the raw payload bytes.
func writeTestWav(t *testing.T, payloadSize int) (string, wavutil.WavHeader, []byte) {
	t.Helper()

	header := wavutil.NewHeader(1, 16, 44100, uint32(payloadSize))

	payload := make([]byte, payloadSize)
	for i := range payload {
		payload[i] = byte(i*131 + 7)
		if payload[i] == 0 {
			payload[i] = 0xA5
		}
	}

	headerBytes, err := header.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(path, append(headerBytes, payload...), 0o644); err != nil {
		t.Fatalf("writing test wav failed: %v", err)
	}

	return path, header, payload
}

func readHeaderAndPayload(t *testing.T, path string) (wavutil.WavHeader, []byte) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s failed: %v", path, err)
	}

	var h wavutil.WavHeader
	if err := h.UnmarshalBinary(data); err != nil {
		t.Fatalf("decoding header of %s failed: %v", path, err)
	}

	return h, data[wavutil.HeaderSize:]
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("got %v, want errMissingPath", err)
	}
}

func TestRunTooManyArgs(t *testing.T) {
	var out bytes.Buffer

	err := run([]string{"a.wav", "b.wav"}, &out)
	if !errors.Is(err, errTooManyArgs) {
		t.Fatalf("got %v, want errTooManyArgs", err)
	}
}

func TestRunInvalidPath(t *testing.T) {
	var out bytes.Buffer

	err := run([]string{filepath.Join(t.TempDir(), "missing.wav")}, &out)
	if !errors.Is(err, errOpenInput) {
		t.Fatalf("got %v, want errOpenInput", err)
	}

	if exitCode(err) != exitBadInput {
		t.Fatalf("exitCode=%d, want %d", exitCode(err), exitBadInput)
	}
}

func TestRunTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	if err := os.WriteFile(path, []byte("RIFF1234WAVE"), 0o644); err != nil {
		t.Fatalf("writing test file failed: %v", err)
	}

	var out bytes.Buffer

	err := run([]string{path}, &out)
	if !errors.Is(err, wavutil.ErrTruncatedHeader) {
		t.Fatalf("got %v, want ErrTruncatedHeader", err)
	}

	if exitCode(err) != exitBadInput {
		t.Fatalf("exitCode=%d, want %d", exitCode(err), exitBadInput)
	}
}

func TestRunRejectsBadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	bad := make([]byte, wavutil.HeaderSize)
	copy(bad, "JUNKxxxxJUNK") // every tag wrong

	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("writing test file failed: %v", err)
	}

	var out bytes.Buffer

	err := run([]string{path}, &out)

	var verr *wavutil.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}

	if len(verr.Violations) != 4 {
		t.Fatalf("got %d violations, want 4", len(verr.Violations))
	}
}

func TestRunPrintsDump(t *testing.T) {
	path, _, _ := writeTestWav(t, 1000)

	var out bytes.Buffer

	if err := run([]string{path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	checks := []string{
		"| RIFF CHUNK |",
		"| FMT CHUNK |",
		"| DATA CHUNK |",
		"ID\tRIFF",
		"Format\tWAVE",
		"Sample rate\t44100",
		"Byte rate\t88200",
		"Bits per sample\t16",
		"Size\t1000",
	}

	for _, c := range checks {
		if !strings.Contains(got, c) {
			t.Fatalf("expected output to contain %q\nfull output:\n%s", c, got)
		}
	}
}

func TestRunCopyIsByteExact(t *testing.T) {
	path, _, _ := writeTestWav(t, wavutil.DefaultBlockSize*3+37)
	outPath := filepath.Join(t.TempDir(), "copy.wav")

	var out bytes.Buffer

	if err := run([]string{"-copy", outPath, path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading input failed: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading copy failed: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("copy differs from input (%d vs %d bytes)", len(got), len(want))
	}
}

func TestRunHalfSpeed(t *testing.T) {
	path, header, payload := writeTestWav(t, 10_000)
	outPath := filepath.Join(t.TempDir(), "half.wav")

	var out bytes.Buffer

	if err := run([]string{"-half", outPath, path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	gotHeader, gotPayload := readHeaderAndPayload(t, outPath)

	if gotHeader.Fmt.SampleRate != 22050 {
		t.Fatalf("sample rate=%d, want 22050", gotHeader.Fmt.SampleRate)
	}

	// Restoring the one edited field must reproduce the original header.
	gotHeader.Fmt.SampleRate = header.Fmt.SampleRate
	if gotHeader != header {
		t.Fatalf("more than the sample rate changed:\ngot  %+v\nwant %+v", gotHeader, header)
	}

	if !bytes.Equal(gotPayload, payload) {
		t.Fatal("half-speed payload differs from input")
	}
}

func TestRunSilence(t *testing.T) {
	// 200,000 bytes of 16-bit samples: 100,000 samples, window
	// [50000+1000, 50000+3333] = [51000, 53333] in payload offsets.
	path, header, payload := writeTestWav(t, 200_000)
	outPath := filepath.Join(t.TempDir(), "silence.wav")

	var out bytes.Buffer

	if err := run([]string{"-silence", outPath, path}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	gotHeader, gotPayload := readHeaderAndPayload(t, outPath)

	if gotHeader != header {
		t.Fatalf("silenced copy header changed:\ngot  %+v\nwant %+v", gotHeader, header)
	}

	for _, off := range []int{51_000, 52_000, 53_333} {
		if gotPayload[off] != 0 {
			t.Fatalf("offset %d = %#x, want zero", off, gotPayload[off])
		}
	}

	for _, off := range []int{50_999, 53_334} {
		if gotPayload[off] != payload[off] {
			t.Fatalf("offset %d = %#x, want untouched %#x", off, gotPayload[off], payload[off])
		}
	}
}

func TestRunAllOutputsSinglePass(t *testing.T) {
	path, _, payload := writeTestWav(t, 100_000)
	dir := t.TempDir()

	copyPath := filepath.Join(dir, "copy.wav")
	halfPath := filepath.Join(dir, "half.wav")
	silencePath := filepath.Join(dir, "silence.wav")

	var out bytes.Buffer

	args := []string{
		"-copy", copyPath,
		"-half", halfPath,
		"-silence", silencePath,
		"-v",
		path,
	}
	if err := run(args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "3 output(s)") {
		t.Fatalf("expected stats line for 3 outputs, got:\n%s", out.String())
	}

	_, copyPayload := readHeaderAndPayload(t, copyPath)
	_, halfPayload := readHeaderAndPayload(t, halfPath)

	if !bytes.Equal(copyPayload, payload) || !bytes.Equal(halfPayload, payload) {
		t.Fatal("pass-through payloads differ from input")
	}

	_, silencePayload := readHeaderAndPayload(t, silencePath)

	// 100,000 bytes / 2 = 50,000 samples: window [25500, 26666].
	if silencePayload[25_500] != 0 || silencePayload[26_666] != 0 {
		t.Fatal("silence window not applied")
	}

	if silencePayload[25_499] != payload[25_499] || silencePayload[26_667] != payload[26_667] {
		t.Fatal("silence copy touched bytes outside the window")
	}
}

func TestRunCustomDivisors(t *testing.T) {
	path, _, payload := writeTestWav(t, 1000)
	outPath := filepath.Join(t.TempDir(), "silence.wav")

	var out bytes.Buffer

	// 500 samples, divisors 10/2: window [250+50, 250+250] = [300, 500];
	// offsets past the payload end simply never occur.
	args := []string{"-silence", outPath, "-start-div", "10", "-end-div", "2", path}
	if err := run(args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	_, gotPayload := readHeaderAndPayload(t, outPath)

	if gotPayload[299] != payload[299] {
		t.Fatal("byte before custom window changed")
	}

	for _, off := range []int{300, 400, 500} {
		if gotPayload[off] != 0 {
			t.Fatalf("offset %d = %#x, want zero", off, gotPayload[off])
		}
	}

	if gotPayload[501] != payload[501] {
		t.Fatal("byte after custom window changed")
	}
}

func TestRunOutputCreateFailure(t *testing.T) {
	path, _, _ := writeTestWav(t, 100)

	var out bytes.Buffer

	err := run([]string{"-copy", filepath.Join(t.TempDir(), "no", "such", "dir", "x.wav"), path}, &out)
	if err == nil {
		t.Fatal("expected error creating output in missing directory")
	}

	if exitCode(err) != exitBadOutput {
		t.Fatalf("exitCode=%d, want %d", exitCode(err), exitBadOutput)
	}
}

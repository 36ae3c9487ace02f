package wavutil

import (
	"fmt"
	"strings"

	"github.com/go-audio/riff"
)

// Violation describes one header tag that did not match its required
// literal value.
type Violation struct {
	Field string
	Want  [4]byte
	Got   [4]byte
}

func (v Violation) String() string {
	return fmt.Sprintf("%s could not be verified: expected %q, found %q",
		v.Field, v.Want[:], v.Got[:])
}

// Validate checks the four fixed tags of a decoded header against the
// canonical RIFF literals. All checks run independently so every bad tag
// is reported, not just the first; an empty result means the header is
// acceptable. Numeric fields are not inspected.
func Validate(h WavHeader) []Violation {
	var violations []Violation

	if h.Riff.ID != riff.RiffID {
		violations = append(violations, Violation{Field: "riff chunk", Want: riff.RiffID, Got: h.Riff.ID})
	}

	if h.Riff.Format != riff.WavFormatID {
		violations = append(violations, Violation{Field: "riff format", Want: riff.WavFormatID, Got: h.Riff.Format})
	}

	if h.Fmt.ID != riff.FmtID {
		violations = append(violations, Violation{Field: "format chunk", Want: riff.FmtID, Got: h.Fmt.ID})
	}

	if h.Data.ID != riff.DataFormatID {
		violations = append(violations, Violation{Field: "data chunk", Want: riff.DataFormatID, Got: h.Data.ID})
	}

	return violations
}

// ValidationError aggregates every violation found in a header for
// callers that need the whole set as a single error value.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "wav header validation failed"
	}

	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}

	return "wav header validation failed: " + strings.Join(msgs, "; ")
}

// ValidateHeader runs Validate and wraps a non-empty result in a
// *ValidationError.
func ValidateHeader(h WavHeader) error {
	violations := Validate(h)
	if len(violations) == 0 {
		return nil
	}

	return &ValidationError{Violations: violations}
}

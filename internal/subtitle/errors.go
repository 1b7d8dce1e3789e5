package subtitle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned when the detector cannot classify the input.
var ErrUnknownFormat = errors.New("unknown subtitle format")

// UnsupportedFormatError is returned for formats that are recognized but
// never parsed, such as PAC.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf(
		"%s provided: convert to SRT/VTT/TTML before QC (style fidelity not guaranteed)",
		strings.ToUpper(string(e.Format)),
	)
}

// TimestampError reports a timing string that does not match the expected
// shape for its format. Value carries the offending raw text.
type TimestampError struct {
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp: %q", e.Value)
}

// StructureError reports TTML input that is not well-formed markup.
type StructureError struct {
	Err error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed TTML document: %v", e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

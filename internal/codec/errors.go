package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupported matches every *UnsupportedError via errors.Is.
var ErrUnsupported = errors.New("unsupported codec")

// Op names the operation that was refused.
type Op string

const (
	OpLookup  Op = "lookup"
	OpCopy    Op = "copy"
	OpConvert Op = "convert"
)

// UnsupportedError reports a codec unknown to the table, or an operation the
// codec (or the requested target format) does not allow.
type UnsupportedError struct {
	Codec  string
	Format string
	Op     Op
	Reason string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s: %s unsupported", e.Codec, e.Op)
	if e.Format != "" {
		msg = fmt.Sprintf("%s (format %s)", msg, e.Format)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ErrorKind classifies the error for logging and history records.
func (e *UnsupportedError) ErrorKind() string {
	return "unsupported_codec"
}

package strided

import (
	"errors"
	"fmt"
)

var (
	// ErrShape reports a view that is not a square 2-D matrix, or whose
	// strides reach outside the backing buffer.
	ErrShape = errors.New("shape error")
	// ErrFormat reports an element encoding outside the supported set.
	ErrFormat = errors.New("format error")
	// ErrValue reports a NaN or infinite element.
	ErrValue = errors.New("value error")
)

type viewError struct {
	kind error
	msg  string
}

func (e viewError) Error() string {
	return e.kind.Error() + ": " + e.msg
}

func (e viewError) Unwrap() error {
	return e.kind
}

func newShapeError(format string, args ...any) error {
	return viewError{kind: ErrShape, msg: fmt.Sprintf(format, args...)}
}

func newFormatError(code string) error {
	return viewError{kind: ErrFormat, msg: fmt.Sprintf("unsupported buffer format %q", code)}
}

// NewValueError reports a non-finite element at (row, col).
func NewValueError(row, col int) error {
	return viewError{kind: ErrValue, msg: fmt.Sprintf("NaN or Inf encountered at (%d, %d)", row, col)}
}

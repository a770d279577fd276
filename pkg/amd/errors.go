package amd

import (
	"errors"
	"fmt"

	"github.com/samcharles93/amdorder/internal/csc"
	"github.com/samcharles93/amdorder/pkg/strided"
)

// Error classes. Match with errors.Is.
var (
	ErrShape        = strided.ErrShape
	ErrFormat       = strided.ErrFormat
	ErrValue        = strided.ErrValue
	ErrAllocation   = csc.ErrAllocation
	ErrInconsistent = csc.ErrInconsistent
	ErrConversion   = errors.New("conversion error")
	ErrOrdering     = errors.New("ordering error")
)

type orderError struct {
	kind error
	msg  string
}

func (e orderError) Error() string {
	return e.kind.Error() + ": " + e.msg
}

func (e orderError) Unwrap() error {
	return e.kind
}

func newError(kind error, format string, args ...any) error {
	return orderError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Kind returns the error class of err, or nil when err is not one of the
// classified errors.
func Kind(err error) error {
	for _, kind := range []error{ErrShape, ErrFormat, ErrValue, ErrAllocation, ErrInconsistent, ErrConversion, ErrOrdering} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/amdorder/pkg/amd"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg   string
	param string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(param, msg string) error {
	return invalidRequestError{msg: msg, param: param}
}

// classify maps an error to its HTTP status and error type. Errors caused by
// the submitted matrix are client errors; the rest indicate a backend fault.
func classify(err error) (int, string) {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest, "invalid_request_error"
	}
	switch amd.Kind(err) {
	case amd.ErrShape:
		return http.StatusBadRequest, "shape_error"
	case amd.ErrFormat:
		return http.StatusBadRequest, "format_error"
	case amd.ErrValue:
		return http.StatusBadRequest, "value_error"
	case amd.ErrAllocation:
		return http.StatusBadRequest, "allocation_error"
	case amd.ErrConversion:
		return http.StatusInternalServerError, "conversion_error"
	case amd.ErrOrdering:
		return http.StatusInternalServerError, "ordering_error"
	case amd.ErrInconsistent:
		return http.StatusInternalServerError, "inconsistent_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

package errors

import (
	"net/http"

	pkgerr "github.com/pkg/errors"
)

const (
	// Invalid Parameter
	ErrAPIInvalidInput = 1501

	// lookup err
	ErrAPINotFound = 1202

	// resource err
	ErrAPIResourceUnavailable = 1902

	// other err
	ErrAPIUnknownErr = 1701
)

var ErrCode = map[uint32]string{
	ErrAPIInvalidInput:        "Invalid parameter",
	ErrAPINotFound:            "No matching word found",
	ErrAPIResourceUnavailable: "Word library not found",
	ErrAPIUnknownErr:          "Unknown error",
}

// Error kinds returned by the lookup core. Callers wrap them with context
// and the API layer resolves them with Cause.
var (
	ErrInvalidInput        = pkgerr.New("invalid input")
	ErrResourceUnavailable = pkgerr.New("resource unavailable")
	ErrNotFound            = pkgerr.New("not found")
)

// New, Errorf, Wrap, Wrapf and Cause forward to github.com/pkg/errors so a
// single import covers both the kinds and the helpers.
var (
	New    = pkgerr.New
	Errorf = pkgerr.Errorf
	Wrap   = pkgerr.Wrap
	Wrapf  = pkgerr.Wrapf
	Cause  = pkgerr.Cause
)

// Is reports whether err was derived from kind.
func Is(err, kind error) bool {
	return err != nil && Cause(err) == kind
}

// Code returns the API error code of err.
func Code(err error) uint32 {
	switch Cause(err) {
	case ErrInvalidInput:
		return ErrAPIInvalidInput
	case ErrNotFound:
		return ErrAPINotFound
	case ErrResourceUnavailable:
		return ErrAPIResourceUnavailable
	default:
		return ErrAPIUnknownErr
	}
}

// HTTPStatus maps the kind of err onto a response status.
func HTTPStatus(err error) int {
	switch Code(err) {
	case ErrAPIInvalidInput:
		return http.StatusBadRequest
	case ErrAPINotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

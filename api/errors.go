package api

import (
	"net/http"

	"massnet.org/hashlookup/errors"
)

// Response bodies of the error cases, per endpoint.
const (
	msgNoMessage       = "No message provided"
	msgNoHash          = "No hash provided"
	msgLibraryNotFound = "Word library not found"
	msgNoMatch         = "No matching word found"
	msgMethod          = "Method not allowed"
)

// errorResponse maps an error from the lookup core to a status and body.
// invalidMsg is the body used for ErrInvalidInput, which differs per
// endpoint.
func errorResponse(err error, invalidMsg string) (int, string) {
	status := errors.HTTPStatus(err)
	switch errors.Code(err) {
	case errors.ErrAPIInvalidInput:
		return status, invalidMsg
	case errors.ErrAPINotFound:
		return status, msgNoMatch
	case errors.ErrAPIResourceUnavailable:
		return status, msgLibraryNotFound
	default:
		return http.StatusInternalServerError, errors.ErrCode[errors.ErrAPIUnknownErr]
	}
}

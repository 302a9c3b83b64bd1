package adapter

import "errors"

var (
	// ErrConnectivity indicates that the remote host could not be reached.
	ErrConnectivity = errors.New("remote store unreachable")
	// ErrRemoteRejection indicates that the remote store answered with a
	// non-success status.
	ErrRemoteRejection = errors.New("remote store rejected request")
	// ErrMalformedPayload indicates a response body that cannot be decoded.
	ErrMalformedPayload = errors.New("malformed remote payload")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-replica-sync/internal/replica"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNotFound also matches replica.ErrNotFound, so the engine treats a
	// missing remote file like a missing local one.
	ErrNotFound = fmt.Errorf("remote %w", replica.ErrNotFound)

	ErrInvalidAddress = errors.New("invalid replica server address")

	// ErrUnavailable wraps transport failures: the request never got an
	// HTTP response.
	ErrUnavailable = errors.New("replica server unavailable")
)

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/internal/service"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	replica.ErrNotFound:    http.StatusNotFound,
	replica.ErrInvalidPath: http.StatusBadRequest,
	utils.ErrHashMismatch:  http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrMissingContentHash:         http.StatusBadRequest,
	ErrMissingPath:                http.StatusBadRequest,
	ErrInvalidModTime:             http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

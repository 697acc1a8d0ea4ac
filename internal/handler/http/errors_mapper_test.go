package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/internal/service"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrWrongPassword, http.StatusUnauthorized},
		{service.ErrInvalidDataProvided, http.StatusBadRequest},
		{fmt.Errorf("write a: %w", utils.ErrHashMismatch), http.StatusBadRequest},
		{fmt.Errorf("%w: x", replica.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: \"../x\"", replica.ErrInvalidPath), http.StatusBadRequest},
		{ErrMissingPath, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

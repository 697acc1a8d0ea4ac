package http

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/utils"
)

const sha256HexLen = 64

// contentHashing rejects uploads that do not declare the SHA-256 of their
// body. The body itself is verified while it is written, so a mismatch
// surfaces from the replica as utils.ErrHashMismatch.
func (h *Handler) contentHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := strings.ToLower(strings.TrimSpace(r.Header.Get(utils.ContentHashHeader)))
		if _, err := hex.DecodeString(hash); err != nil || len(hash) != sha256HexLen {
			h.logger.Error().Str("func", "*Handler.contentHashing").
				Str("hash from request", hash).
				Msg("upload without a valid content hash")
			http.Error(w, ErrMissingContentHash.Error(), http.StatusBadRequest)
			return
		}

		r.Header.Set(utils.ContentHashHeader, hash)
		next.ServeHTTP(w, r)
	})
}

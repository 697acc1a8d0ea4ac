package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"sync"
)

// ContentHashHeader carries the expected SHA-256 of an uploaded file.
const ContentHashHeader = "X-Content-SHA256"

// ErrHashMismatch is returned by a verifying reader whose content does not
// match the expected hash.
var ErrHashMismatch = errors.New("content hash mismatch")

var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// HashReader returns the hex-encoded SHA-256 of everything read from r.
func HashReader(r io.Reader) (string, error) {
	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex-encoded SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewVerifyingReader passes r through and, at EOF, compares the hash of
// everything read with want. On mismatch the final read returns
// ErrHashMismatch instead of io.EOF, so a copy into a temporary file fails
// before it is committed. An empty want disables the check.
func NewVerifyingReader(r io.Reader, want string) io.Reader {
	if want == "" {
		return r
	}
	return &verifyingReader{r: r, h: sha256.New(), want: want}
}

type verifyingReader struct {
	r    io.Reader
	h    hash.Hash
	want string
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.h.Write(p[:n])
	if errors.Is(err, io.EOF) {
		if got := hex.EncodeToString(v.h.Sum(nil)); got != v.want {
			return n, fmt.Errorf("%w: want %s, got %s", ErrHashMismatch, v.want, got)
		}
	}
	return n, err
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the middlewares and handlers. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMissingContentHash is returned for uploads without a content hash.
	ErrMissingContentHash = errors.New("missing or malformed content hash header")

	ErrMissingPath    = errors.New("missing `path` query parameter")
	ErrInvalidModTime = errors.New("`mtime` must be an RFC 3339 timestamp")
)

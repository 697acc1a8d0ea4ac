// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the replica server protocol.
//
// [ReplicaAdapter] presents a remote root as a [replica.Replica] plus the
// two calls the engine needs before the tree can be used: Ping to check that
// the server is reachable and Login to trade the user's password for a bearer
// token.
//
// HTTP status codes are mapped by mapHTTPError to the sentinel values in
// errors.go so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-replica-sync/internal/replica"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ReplicaAdapter is a replica served by a remote replica server.
type ReplicaAdapter interface {
	replica.Replica

	// Ping checks that the server answers. Transport failures are returned
	// unwrapped so the caller can classify them as connection errors.
	Ping(ctx context.Context) error

	// Login authenticates with password and stores the returned bearer token
	// for every following request. A rejected password yields ErrUnauthorized.
	Login(ctx context.Context, password string) error

	// BaseURL returns the normalized server address.
	BaseURL() string
}

// Package http implements the HTTP transport of the replica server.
//
// It exposes route wiring, request handlers and middleware for the replica
// API. Tracing, access logging, bearer authentication, response compression
// and upload integrity checks are handled here before requests are delegated
// to the service layer.
package http

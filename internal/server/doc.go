// Package server runs the replica server's HTTP listener, including signal
// handling and graceful shutdown.
package server

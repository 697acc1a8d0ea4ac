package server

// Server defines the lifecycle of a transport server.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT and then
	// shuts down gracefully. It returns the error that stopped the listener,
	// if any.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

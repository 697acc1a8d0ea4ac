package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ClientIDCtxKey is the context key under which the auth middleware stores
// the authenticated client id.
var ClientIDCtxKey = contextKey("clientID")

// GetClientIDFromContext returns the client id stored by the auth
// middleware.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDCtxKey).(string)
	return clientID, ok && clientID != ""
}

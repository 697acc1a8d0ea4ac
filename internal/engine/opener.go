package engine

import (
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/adapter"
	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
)

// Opener turns profile roots into replicas.
type Opener interface {
	OpenLocal(root string) (replica.Replica, error)
	OpenRemote(baseURL string) (adapter.ReplicaAdapter, error)
}

// IsRemote reports whether root names a replica server rather than a local
// directory.
func IsRemote(root string) bool {
	root = strings.ToLower(strings.TrimSpace(root))
	return strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://")
}

type rootOpener struct {
	adapterCfg config.ClientAdapter
	logger     *logger.Logger
}

// NewOpener returns the Opener used by the client: local roots are opened
// as filesystem replicas and remote roots through the HTTP adapter.
func NewOpener(adapterCfg config.ClientAdapter, logger *logger.Logger) Opener {
	return &rootOpener{adapterCfg: adapterCfg, logger: logger}
}

func (o *rootOpener) OpenLocal(root string) (replica.Replica, error) {
	return replica.NewFileSystem(root, o.logger)
}

func (o *rootOpener) OpenRemote(baseURL string) (adapter.ReplicaAdapter, error) {
	return adapter.NewHTTPReplicaAdapter(baseURL, o.adapterCfg, o.logger)
}

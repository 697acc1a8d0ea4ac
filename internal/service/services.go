package service

import (
	"fmt"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
)

type Services struct {
	AuthService    AuthService
	ReplicaService ReplicaService
	AppInfoService AppInfoService
}

// NewServices opens the served directory and builds every server service.
func NewServices(cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	if cfg.ReplicaRoot == "" {
		return nil, ErrReplicaRootMissing
	}

	fs, err := replica.NewFileSystem(cfg.ReplicaRoot, logger)
	if err != nil {
		return nil, fmt.Errorf("open served replica: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(cfg.Auth, logger),
		ReplicaService: NewReplicaService(fs, logger),
		AppInfoService: appInfo,
	}, nil
}

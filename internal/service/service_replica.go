package service

import (
	"context"
	"io"
	"sync"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/models"
)

// replicaService serves one replica. Scans take the read lock so a listing
// never interleaves with a write or removal.
type replicaService struct {
	replica replica.Replica

	mu     sync.RWMutex
	logger *logger.Logger
}

func NewReplicaService(r replica.Replica, logger *logger.Logger) ReplicaService {
	return &replicaService{replica: r, logger: logger}
}

func (s *replicaService) States(ctx context.Context) ([]models.FileState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states, err := s.replica.Scan(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "replicaService.States").Msg("scan failed")
		return nil, err
	}
	if states == nil {
		states = []models.FileState{}
	}
	return states, nil
}

func (s *replicaService) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	return s.replica.Open(ctx, relPath)
}

func (s *replicaService) Store(ctx context.Context, state models.FileState, r io.Reader) error {
	if state.Path == "" || state.ModTime.IsZero() {
		return ErrInvalidDataProvided
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replica.Write(ctx, state, r); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "replicaService.Store").Str("path", state.Path).Msg("write failed")
		return err
	}
	return nil
}

func (s *replicaService) Remove(ctx context.Context, relPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replica.Remove(ctx, relPath); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "replicaService.Remove").Str("path", relPath).Msg("remove failed")
		return err
	}
	return nil
}

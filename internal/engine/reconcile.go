package engine

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replica-sync/models"
)

func (e *engine) Reconcile(ctx context.Context, h Handle) ([]*models.ReconItem, error) {
	conn, err := e.connection(h)
	if err != nil {
		return nil, err
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()

	roots := conn.profile.Roots()
	var scans [2][]models.FileState
	for i, r := range conn.replicas {
		states, scanErr := r.Scan(ctx)
		if scanErr != nil {
			e.logger.Err(scanErr).Str("func", "engine.Reconcile").Str("root", roots[i]).Msg("scan failed")
			return nil, &ConnectionError{Root: roots[i], Err: scanErr}
		}
		scans[i] = states
	}

	archive, err := e.archive.LoadArchive(ctx, conn.profile.Name)
	if err != nil {
		e.logger.Err(err).Str("func", "engine.Reconcile").Str("profile", conn.profile.Name).Msg("failed to load archive")
		return nil, fmt.Errorf("load archive: %w", err)
	}

	plan, err := BuildPlan(ctx, conn.profile, scans[0], scans[1], archive)
	if err != nil {
		return nil, err
	}
	conn.plan = plan

	e.logger.Info().
		Str("profile", conn.profile.Name).
		Int("left", len(scans[0])).
		Int("right", len(scans[1])).
		Int("items", len(plan.Items)).
		Int("converged", len(plan.Converged)).
		Msg("reconciliation finished")

	return plan.Items, nil
}

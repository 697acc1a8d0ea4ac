package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/adapter"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/models"
)

func (e *engine) ApplySync(ctx context.Context, h Handle, items []*models.ReconItem, progress ProgressFunc) (models.SyncReport, error) {
	conn, err := e.connection(h)
	if err != nil {
		return models.SyncReport{}, err
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()

	report := models.SyncReport{
		Applied:   []string{},
		Skipped:   []string{},
		Failed:    []models.ItemFailure{},
		StartedAt: time.Now().UTC(),
	}
	roots := conn.profile.Roots()

	for done, item := range items {
		if err = ctx.Err(); err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, err
		}

		switch {
		case item.Ignored || !item.Action.Propagates():
			report.Skipped = append(report.Skipped, item.Path)

		default:
			side, applyErr := e.applyItem(ctx, conn, item)
			if applyErr == nil {
				report.Applied = append(report.Applied, item.Path)
				break
			}
			if isConnectionLevel(applyErr) {
				e.logger.Err(applyErr).Str("func", "engine.ApplySync").Str("root", roots[side]).Msg("replica unreachable, sync aborted")
				report.FinishedAt = time.Now().UTC()
				return report, &ConnectionError{Root: roots[side], Err: applyErr}
			}

			e.logger.Warn().Err(applyErr).Str("path", item.Path).Stringer("action", item.Action).Msg("item failed")
			report.Failed = append(report.Failed, models.ItemFailure{
				Index:  item.Index,
				Path:   item.Path,
				Reason: applyErr.Error(),
			})
		}

		if progress != nil {
			progress(models.SyncProgress{Done: done + 1, Total: len(items), Path: item.Path})
		}
	}

	if err = e.refreshArchive(ctx, conn); err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, err
	}

	report.FinishedAt = time.Now().UTC()
	e.logger.Info().
		Str("profile", conn.profile.Name).
		Int("applied", len(report.Applied)).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Msg("sync finished")

	return report, nil
}

// applyItem propagates one item and records the result in the archive. The
// returned side indexes the root an error came from.
func (e *engine) applyItem(ctx context.Context, conn *connection, item *models.ReconItem) (int, error) {
	left, right := conn.replicas[0], conn.replicas[1]

	switch item.Action {
	case models.LeftToRight:
		return e.copyItem(ctx, conn, left, right, 0, item.Left)
	case models.RightToLeft:
		return e.copyItem(ctx, conn, right, left, 1, item.Right)
	case models.DeleteLeft:
		return 0, e.deleteItem(ctx, conn, left, item.Path)
	case models.DeleteRight:
		return 1, e.deleteItem(ctx, conn, right, item.Path)
	default:
		return 0, fmt.Errorf("action %s cannot be applied", item.Action)
	}
}

func (e *engine) copyItem(ctx context.Context, conn *connection, src, dst replica.Replica, srcSide int, state *models.FileState) (int, error) {
	if state == nil {
		return srcSide, errors.New("source state is missing")
	}

	body, err := src.Open(ctx, state.Path)
	if err != nil {
		return srcSide, err
	}
	defer body.Close()

	if err = dst.Write(ctx, *state, body); err != nil {
		return 1 - srcSide, err
	}

	if err = e.archive.PutArchive(ctx, conn.profile.Name, *state); err != nil {
		return srcSide, fmt.Errorf("record %s in archive: %w", state.Path, err)
	}
	return srcSide, nil
}

func (e *engine) deleteItem(ctx context.Context, conn *connection, dst replica.Replica, relPath string) error {
	if err := dst.Remove(ctx, relPath); err != nil {
		return err
	}
	if err := e.archive.DeleteArchive(ctx, conn.profile.Name, relPath); err != nil {
		return fmt.Errorf("drop %s from archive: %w", relPath, err)
	}
	return nil
}

// refreshArchive records paths that converged without a transfer.
func (e *engine) refreshArchive(ctx context.Context, conn *connection) error {
	plan := conn.plan
	if len(plan.Converged) > 0 {
		if err := e.archive.PutArchive(ctx, conn.profile.Name, plan.Converged...); err != nil {
			e.logger.Err(err).Str("func", "engine.refreshArchive").Msg("failed to record converged paths")
			return fmt.Errorf("record converged paths: %w", err)
		}
	}
	if len(plan.Vanished) > 0 {
		if err := e.archive.DeleteArchive(ctx, conn.profile.Name, plan.Vanished...); err != nil {
			e.logger.Err(err).Str("func", "engine.refreshArchive").Msg("failed to drop vanished paths")
			return fmt.Errorf("drop vanished paths: %w", err)
		}
	}
	conn.plan.Converged, conn.plan.Vanished = nil, nil
	return nil
}

// isConnectionLevel reports errors after which no further item can succeed.
func isConnectionLevel(err error) bool {
	return errors.Is(err, adapter.ErrUnavailable) || errors.Is(err, adapter.ErrUnauthorized)
}

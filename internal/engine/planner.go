// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-replica-sync/models"
)

// Plan is the outcome of comparing two replicas against their archive.
type Plan struct {
	// Items are the detected differences ordered by path.
	Items []*models.ReconItem

	// Converged lists paths changed identically on both sides since the
	// last sync. They need no transfer, only an archive refresh.
	Converged []models.FileState

	// Vanished lists archived paths deleted on both sides.
	Vanished []string
}

// BuildPlan classifies every path found in left, right or archive. The
// archive is the common ancestor: a side whose state equals the archived one
// is unchanged, and the changed side wins. When both sides changed, equal
// contents converge silently and different contents are a conflict. Paths
// ignored by profile are skipped.
func BuildPlan(ctx context.Context, profile models.Profile, left, right []models.FileState, archive map[string]models.FileState) (Plan, error) {
	leftIndex := indexStates(left)
	rightIndex := indexStates(right)

	paths := make(map[string]struct{}, len(leftIndex)+len(rightIndex)+len(archive))
	for p := range leftIndex {
		paths[p] = struct{}{}
	}
	for p := range rightIndex {
		paths[p] = struct{}{}
	}
	for p := range archive {
		paths[p] = struct{}{}
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		if !profile.IsIgnored(p) {
			sorted = append(sorted, p)
		}
	}
	sort.Strings(sorted)

	var plan Plan
	for _, p := range sorted {
		if err := ctx.Err(); err != nil {
			return Plan{}, err
		}

		l, r := leftIndex[p], rightIndex[p]
		var base *models.FileState
		if b, ok := archive[p]; ok {
			base = &b
		}

		changedLeft := !models.SameContent(l, base)
		changedRight := !models.SameContent(r, base)

		var action models.Action
		switch {
		case !changedLeft && !changedRight:
			continue

		case changedLeft && !changedRight:
			action = models.LeftToRight
			if l == nil {
				action = models.DeleteRight
			}

		case !changedLeft && changedRight:
			action = models.RightToLeft
			if r == nil {
				action = models.DeleteLeft
			}

		case models.SameContent(l, r):
			if l == nil {
				plan.Vanished = append(plan.Vanished, p)
			} else {
				plan.Converged = append(plan.Converged, *l)
			}
			continue

		default:
			action = models.Conflict
		}

		item := &models.ReconItem{
			Index:  len(plan.Items),
			Path:   p,
			Action: action,
			Left:   l,
			Right:  r,
			Base:   base,
		}
		item.Summary = summarize(item)
		item.Detail = describe(item)
		plan.Items = append(plan.Items, item)
	}

	return plan, nil
}

func indexStates(states []models.FileState) map[string]*models.FileState {
	idx := make(map[string]*models.FileState, len(states))
	for i := range states {
		idx[states[i].Path] = &states[i]
	}
	return idx
}

// sideStatus describes one side of an item relative to the archive.
func sideStatus(s, base *models.FileState) string {
	switch {
	case s == nil && base == nil:
		return "absent"
	case s == nil:
		return "deleted"
	case base == nil:
		return "new"
	case models.SameContent(s, base):
		return "unchanged"
	default:
		return "changed"
	}
}

func summarize(item *models.ReconItem) string {
	return fmt.Sprintf("%-9s %s %-9s %s",
		sideStatus(item.Left, item.Base), item.Action, sideStatus(item.Right, item.Base), item.Path)
}

var actionDescriptions = map[models.Action]string{
	models.LeftToRight: "copy the first root's version over the second",
	models.RightToLeft: "copy the second root's version over the first",
	models.DeleteLeft:  "delete from the first root",
	models.DeleteRight: "delete from the second root",
	models.Conflict:    "conflict, changed differently on both sides; skipped",
}

func describe(item *models.ReconItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path:   %s\n", item.Path)
	fmt.Fprintf(&b, "Action: %s %s\n", item.Action, actionDescriptions[item.Action])
	fmt.Fprintf(&b, "Left:   %s\n", describeSide(item.Left, item.Base))
	fmt.Fprintf(&b, "Right:  %s\n", describeSide(item.Right, item.Base))
	if item.Base != nil {
		fmt.Fprintf(&b, "Synced: %s", describeState(item.Base))
	} else {
		b.WriteString("Synced: never")
	}
	return b.String()
}

func describeSide(s, base *models.FileState) string {
	status := sideStatus(s, base)
	if s == nil {
		return status
	}
	return fmt.Sprintf("%-9s %s", status, describeState(s))
}

func describeState(s *models.FileState) string {
	hash := s.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return fmt.Sprintf("%d bytes, modified %s, sha256 %s",
		s.Size, s.ModTime.UTC().Format("2006-01-02 15:04:05"), hash)
}

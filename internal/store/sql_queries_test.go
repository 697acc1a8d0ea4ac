// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replica-sync/models"
)

func Test_buildListProfilesQuery(t *testing.T) {
	query, args, err := buildListProfilesQuery()
	require.NoError(t, err)
	assert.Empty(t, args)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from profiles")
	assert.Contains(t, q, "order by name")
	for _, col := range profileColumns {
		assert.Contains(t, q, col)
	}
}

func Test_buildUpsertProfileQuery_UsesQuestionPlaceholders(t *testing.T) {
	now := time.Now()
	p := models.Profile{Name: "n", RootA: "/a", RootB: "/b"}

	query, args, err := buildUpsertProfileQuery(p, "[]", now)
	require.NoError(t, err)

	assert.Equal(t, []any{"n", "/a", "/b", "", "[]", now, now}, args)
	assert.Contains(t, query, "VALUES (?,?,?,?,?,?,?)")
	assert.NotContains(t, query, "$1")
	assert.Contains(t, query, "ON CONFLICT(name) DO UPDATE")
	assert.NotContains(t, query, "created_at = excluded", "creation time survives an update")
}

func Test_buildInsertProfileQuery_NoConflictClause(t *testing.T) {
	query, _, err := buildInsertProfileQuery(models.Profile{Name: "n"}, "[]", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, query, "ON CONFLICT")
}

func Test_buildPutArchiveQuery_MultipleRows(t *testing.T) {
	now := time.Now().UTC()
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	states := []models.FileState{
		{Path: "a", Hash: "1", Size: 1, ModTime: mtime},
		{Path: "b", Hash: "2", Size: 2, ModTime: mtime},
	}

	query, args, err := buildPutArchiveQuery("p", states, now)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(query, "(?,?,?,?,?,?)"))
	require.Len(t, args, 12)
	assert.Equal(t, "p", args[0])
	assert.Equal(t, time.UTC, args[4].(time.Time).Location())
	assert.Equal(t, "b", args[7])
}

func Test_buildDeleteArchiveQuery(t *testing.T) {
	t.Run("whole profile", func(t *testing.T) {
		query, args, err := buildDeleteArchiveQuery("p", nil)
		require.NoError(t, err)
		assert.Equal(t, "DELETE FROM archive WHERE (profile = ?)", query)
		assert.Equal(t, []any{"p"}, args)
	})

	t.Run("selected paths", func(t *testing.T) {
		query, args, err := buildDeleteArchiveQuery("p", []string{"x", "y"})
		require.NoError(t, err)
		assert.Contains(t, query, "path IN (?,?)")
		assert.Equal(t, []any{"p", "x", "y"}, args)
	})
}

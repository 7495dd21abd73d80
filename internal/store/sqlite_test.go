package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func decodeRows(t *testing.T, raw []json.RawMessage) []testRow {
	t.Helper()
	rows := make([]testRow, 0, len(raw))
	for _, r := range raw {
		var row testRow
		require.NoError(t, json.Unmarshal(r, &row))
		rows = append(rows, row)
	}
	return rows
}

func TestSQLiteStoreCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, Projects, testRow{ID: "a", Title: "first", Status: "published", CreatedAt: "2024-01-01T00:00:00Z"}))
	require.NoError(t, s.Insert(ctx, Projects, testRow{ID: "b", Title: "second", Status: "draft", CreatedAt: "2024-06-01T00:00:00Z"}))

	t.Run("select all ordered descending", func(t *testing.T) {
		raw, err := s.Select(ctx, Projects, Query{OrderBy: "created_at", Desc: true})
		require.NoError(t, err)
		rows := decodeRows(t, raw)
		require.Len(t, rows, 2)
		assert.Equal(t, "b", rows[0].ID)
		assert.Equal(t, "a", rows[1].ID)
	})

	t.Run("eq filter", func(t *testing.T) {
		raw, err := s.Select(ctx, Projects, Query{Eq: map[string]string{"status": "published"}})
		require.NoError(t, err)
		rows := decodeRows(t, raw)
		require.Len(t, rows, 1)
		assert.Equal(t, "a", rows[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		raw, err := s.Select(ctx, Projects, Query{OrderBy: "created_at", Limit: 1})
		require.NoError(t, err)
		assert.Len(t, raw, 1)
	})

	t.Run("collections are disjoint", func(t *testing.T) {
		raw, err := s.Select(ctx, Certificates, Query{})
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("update replaces the document", func(t *testing.T) {
		require.NoError(t, s.Update(ctx, Projects, "a", testRow{ID: "a", Title: "renamed", Status: "published", CreatedAt: "2024-01-01T00:00:00Z"}))
		raw, err := s.Select(ctx, Projects, Query{Eq: map[string]string{"id": "a"}})
		require.NoError(t, err)
		rows := decodeRows(t, raw)
		require.Len(t, rows, 1)
		assert.Equal(t, "renamed", rows[0].Title)
	})

	t.Run("update missing row errors", func(t *testing.T) {
		err := s.Update(ctx, Projects, "nope", testRow{ID: "nope"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, Projects, "b"))
		raw, err := s.Select(ctx, Projects, Query{})
		require.NoError(t, err)
		assert.Len(t, raw, 1)
	})

	t.Run("delete missing row errors", func(t *testing.T) {
		assert.ErrorIs(t, s.Delete(ctx, Projects, "ghost"), ErrNotFound)
	})
}

func TestSQLiteStoreUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row := testRow{ID: "cfg", Title: "v1", CreatedAt: "2024-01-01T00:00:00Z"}
	require.NoError(t, s.Upsert(ctx, SiteConfig, row))

	row.Title = "v2"
	require.NoError(t, s.Upsert(ctx, SiteConfig, row))

	raw, err := s.Select(ctx, SiteConfig, Query{})
	require.NoError(t, err)
	rows := decodeRows(t, raw)
	require.Len(t, rows, 1, "upsert must not duplicate the row")
	assert.Equal(t, "v2", rows[0].Title)
}

func TestSQLiteStoreInsertWithoutID(t *testing.T) {
	s := newTestStore(t)
	err := s.Insert(context.Background(), Projects, map[string]any{"title": "no id"})
	assert.Error(t, err)
}

package archive

import (
	"WikiGo/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExporter_Export(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.Page{ID: "p1", Path: "/home", Body: "hello"}).Error)
	require.NoError(t, db.Create(&model.Config{Key: "app:title", Value: "wiki"}).Error)

	e := NewExporter(db, t.TempDir(), "5.0.0", zap.NewNop().Sugar())
	zipPath, err := e.Export(context.Background(), []string{"pages", "configs"})
	require.NoError(t, err)

	m, _, err := ParseZip(zipPath)
	require.NoError(t, err)
	assert.Equal(t, "5.0.0", m.Version)
	require.Len(t, m.Collections, 2)

	rows, err := ReadRows(zipPath, "pages.json")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/home", rows[0]["path"])
}

// Пустой список коллекций означает "все известные".
func TestExporter_Export_DefaultsToAllCollections(t *testing.T) {
	db := newTestDB(t)

	e := NewExporter(db, t.TempDir(), "5.0.0", zap.NewNop().Sugar())
	zipPath, err := e.Export(context.Background(), nil)
	require.NoError(t, err)

	m, _, err := ParseZip(zipPath)
	require.NoError(t, err)
	var names []string
	for _, entry := range m.Collections {
		names = append(names, entry.Collection)
	}
	assert.Equal(t, model.AllCollections(), names)
}

func TestExporter_Export_CancelledContext(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExporter(db, t.TempDir(), "5.0.0", zap.NewNop().Sugar())
	_, err := e.Export(ctx, []string{"pages"})
	assert.ErrorIs(t, err, context.Canceled)
}

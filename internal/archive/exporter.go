package archive

import (
	"WikiGo/internal/model"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Exporter выгружает именованные коллекции в zip-архив на локальном диске.
type Exporter struct {
	db      *gorm.DB
	dir     string
	version string
	logger  *zap.SugaredLogger
}

// NewExporter создаёт экспортёр, складывающий архивы в dir.
func NewExporter(db *gorm.DB, dir, version string, logger *zap.SugaredLogger) *Exporter {
	return &Exporter{db: db, dir: dir, version: version, logger: logger}
}

// Export выгружает коллекции и возвращает путь к готовому архиву.
// Пустой список означает все известные коллекции.
func (e *Exporter) Export(ctx context.Context, collections []string) (string, error) {
	if len(collections) == 0 {
		collections = model.AllCollections()
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}

	zipPath := filepath.Join(e.dir, fmt.Sprintf("wikigo-%d.zip", time.Now().UnixMilli()))
	b, err := NewBuilder(zipPath, e.version)
	if err != nil {
		return "", err
	}

	for _, c := range collections {
		if err := ctx.Err(); err != nil {
			_ = b.Close()
			return "", err
		}
		var rows []map[string]any
		if err := e.db.WithContext(ctx).Table(c).Find(&rows).Error; err != nil {
			_ = b.Close()
			return "", fmt.Errorf("exporting collection %q: %w", c, err)
		}
		if err := b.AddCollection(c, rows); err != nil {
			_ = b.Close()
			return "", fmt.Errorf("writing collection %q: %w", c, err)
		}
		e.logger.Infow("collection exported", "collection", c, "rows", len(rows))
	}

	if err := b.Close(); err != nil {
		return "", err
	}
	return zipPath, nil
}

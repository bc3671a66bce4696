package service

import (
	"WikiGo/internal/archive"
	"WikiGo/internal/model"
	"testing"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов сервисов
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Page{},
		&model.Revision{},
		&model.Attachment{},
		&model.Config{},
		&model.TransferKey{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// newTestExporter пишет архивы во временный каталог теста
func newTestExporter(t *testing.T, db *gorm.DB) *archive.Exporter {
	t.Helper()
	return archive.NewExporter(db, t.TempDir(), "5.0.0", zap.NewNop().Sugar())
}

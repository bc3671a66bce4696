package repo

import (
	"WikiGo/internal/model"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение с БД и прогоняет автомиграции для всех моделей.
// DSN со схемой postgres:// — Postgres, любой другой трактуется как путь SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "wikigo.db"
		}
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Page{},
		&model.Revision{},
		&model.Attachment{},
		&model.Config{},
		&model.TransferKey{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

package storage

import (
	"WikiGo/internal/config"
	"WikiGo/internal/model"
	"WikiGo/internal/transfer"
	"context"
	"fmt"
	"io"
)

// FileStorage — хранилище бинарного содержимого вложений.
// Метаданные живут в БД, содержимое — за этим интерфейсом.
type FileStorage interface {
	// Open открывает содержимое вложения на чтение.
	// Отсутствующее содержимое — ошибка вида AttachmentNotFound.
	Open(ctx context.Context, att model.Attachment) (io.ReadCloser, error)

	// Save сохраняет содержимое вложения под его FilePath.
	Save(ctx context.Context, att model.Attachment, r io.Reader) error

	// Info описывает, где физически лежат файлы этого инстанса.
	Info() transfer.AttachmentInfo
}

// New выбирает бэкенд по конфигурации.
func New(cfg *config.Config) (FileStorage, error) {
	switch cfg.FileUploadType {
	case "", "local":
		return NewLocalStorage(cfg.LocalFileDir), nil
	case "aws":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown file upload type %q", cfg.FileUploadType)
	}
}

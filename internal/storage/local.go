package storage

import (
	"WikiGo/internal/model"
	"WikiGo/internal/transfer"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage хранит содержимое вложений в каталоге на локальном диске.
type LocalStorage struct {
	dir string
}

// NewLocalStorage создаёт файловое хранилище в dir.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) path(att model.Attachment) string {
	return filepath.Join(s.dir, filepath.FromSlash(att.FilePath))
}

func (s *LocalStorage) Open(ctx context.Context, att model.Attachment) (io.ReadCloser, error) {
	f, err := os.Open(s.path(att))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, transfer.Wrap(transfer.KindAttachmentNotFound,
			fmt.Sprintf("attachment %s has no stored content", att.ID), err)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStorage) Save(ctx context.Context, att model.Attachment, r io.Reader) error {
	p := s.path(att)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalStorage) Info() transfer.AttachmentInfo {
	return transfer.AttachmentInfo{Type: "local"}
}

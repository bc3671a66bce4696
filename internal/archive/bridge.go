package archive

import (
	"WikiGo/internal/transfer"
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Builder пишет переносимый архив: по JSON-файлу на коллекцию плюс манифест.
type Builder struct {
	f  *os.File
	zw *zip.Writer
	m  Manifest
}

// NewBuilder создаёт архив по указанному пути.
func NewBuilder(zipPath, version string) (*Builder, error) {
	f, err := os.Create(zipPath)
	if err != nil {
		return nil, err
	}
	return &Builder{
		f:  f,
		zw: zip.NewWriter(f),
		m:  Manifest{Version: version, ExportedAt: time.Now().UTC()},
	}, nil
}

// AddCollection пишет файл <collection>.json и регистрирует коллекцию в манифесте.
func (b *Builder) AddCollection(collection string, rows []map[string]any) error {
	fileName := collection + ".json"
	w, err := b.zw.Create(fileName)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		return err
	}
	b.m.Collections = append(b.m.Collections, Entry{Collection: collection, FileName: fileName})
	return nil
}

// Close дописывает манифест и закрывает архив.
func (b *Builder) Close() error {
	w, err := b.zw.Create(MetaFileName)
	if err != nil {
		_ = b.zw.Close()
		_ = b.f.Close()
		return err
	}
	if err := json.NewEncoder(w).Encode(b.m); err != nil {
		_ = b.zw.Close()
		_ = b.f.Close()
		return err
	}
	if err := b.zw.Close(); err != nil {
		_ = b.f.Close()
		return err
	}
	return b.f.Close()
}

// ParseZip читает манифест архива и возвращает его вместе со списком
// вложенных файлов (кроме самого манифеста). Файл без читаемого манифеста
// отклоняется как невалидный архив.
func ParseZip(zipPath string) (Manifest, []string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return Manifest{}, nil, transfer.Wrap(transfer.KindArchiveFormatInvalid, "cannot open archive", err)
	}
	defer zr.Close()

	var m *Manifest
	var inner []string
	for _, f := range zr.File {
		if f.Name != MetaFileName {
			inner = append(inner, f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Manifest{}, nil, transfer.Wrap(transfer.KindArchiveFormatInvalid, "cannot open manifest", err)
		}
		var parsed Manifest
		err = json.NewDecoder(rc).Decode(&parsed)
		_ = rc.Close()
		if err != nil {
			return Manifest{}, nil, transfer.Wrap(transfer.KindArchiveFormatInvalid, "manifest is malformed", err)
		}
		m = &parsed
	}
	if m == nil {
		return Manifest{}, nil, transfer.New(transfer.KindArchiveFormatInvalid, "archive has no manifest")
	}
	if m.Version == "" {
		return Manifest{}, nil, transfer.New(transfer.KindArchiveFormatInvalid, "manifest has no version")
	}
	return *m, inner, nil
}

// ReadRows декодирует записи одной коллекции из файла внутри архива.
func ReadRows(zipPath, fileName string) ([]map[string]any, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, transfer.Wrap(transfer.KindArchiveFormatInvalid, "cannot open archive", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != fileName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		var rows []map[string]any
		if err := json.NewDecoder(rc).Decode(&rows); err != nil {
			return nil, transfer.Wrap(transfer.KindArchiveFormatInvalid, fmt.Sprintf("file %q is not a row list", fileName), err)
		}
		return rows, nil
	}
	return nil, transfer.New(transfer.KindArchiveFormatInvalid, fmt.Sprintf("file %q not found in archive", fileName))
}

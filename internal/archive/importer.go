package archive

import (
	"WikiGo/internal/model"
	"WikiGo/internal/transfer"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mode — политика записи коллекции при импорте.
type Mode string

const (
	// ModeReplaceAll удаляет все записи коллекции и вставляет архивные как есть.
	ModeReplaceAll Mode = "replace-all"
	// ModeMerge делает upsert по первичному ключу.
	ModeMerge Mode = "merge"
)

// ImportSettings — директивы импорта одной коллекции. Создаются по записи
// манифеста, используются один раз и выбрасываются.
type ImportSettings struct {
	Mode           Mode
	SourceFileName string
	// OverwriteParams — подстановки значений полей, применяемые к каждой
	// записи при импорте (например, перезапись вшитых URL).
	OverwriteParams map[string]any
}

// Importer пишет записи архива в коллекции под выбранной политикой слияния.
type Importer struct {
	db      *gorm.DB
	version string
	logger  *zap.SugaredLogger
}

// NewImporter создаёт импортёр для инстанса указанной версии.
func NewImporter(db *gorm.DB, version string, logger *zap.SugaredLogger) *Importer {
	return &Importer{db: db, version: version, logger: logger}
}

// Validate сверяет версию манифеста с версией этого инстанса.
func (im *Importer) Validate(m Manifest) error {
	if m.Version != im.version {
		return transfer.New(transfer.KindVersionMismatch,
			fmt.Sprintf("archive version %q does not match instance version %q", m.Version, im.version))
	}
	return nil
}

// ImportCollection заливает одну коллекцию из архива в БД.
// Вся коллекция пишется в одной транзакции; между коллекциями транзакции нет.
func (im *Importer) ImportCollection(ctx context.Context, zipPath, collection string, st ImportSettings) error {
	rows, err := ReadRows(zipPath, st.SourceFileName)
	if err != nil {
		return transfer.Wrap(transfer.KindImportFailed, fmt.Sprintf("reading collection %q", collection), err)
	}

	for _, row := range rows {
		for k, v := range st.OverwriteParams {
			row[k] = v
		}
	}

	err = im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if st.Mode == ModeReplaceAll {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %q", collection)).Error; err != nil {
				return err
			}
		}
		if len(rows) == 0 {
			return nil
		}
		if st.Mode == ModeMerge {
			return tx.Table(collection).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: pkColumn(collection)}},
					UpdateAll: true,
				}).
				Create(&rows).Error
		}
		return tx.Table(collection).Create(&rows).Error
	})
	if err != nil {
		return transfer.Wrap(transfer.KindImportFailed, fmt.Sprintf("importing collection %q", collection), err)
	}

	im.logger.Infow("collection imported", "collection", collection, "mode", st.Mode, "rows", len(rows))
	return nil
}

// pkColumn — колонка идентичности для upsert.
func pkColumn(collection string) string {
	if collection == model.ConfigsCollection {
		return "key"
	}
	return "id"
}

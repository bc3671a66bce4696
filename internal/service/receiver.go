package service

import (
	"WikiGo/internal/archive"
	"WikiGo/internal/config"
	"WikiGo/internal/model"
	"WikiGo/internal/progress"
	"WikiGo/internal/repo"
	"WikiGo/internal/storage"
	"WikiGo/internal/transfer"
	"context"
	"io"
	"net/url"

	"go.uber.org/zap"
)

// Receiver — принимающая сторона трансфера: выдаёт трансфер-ключи, отвечает
// описанием инстанса, принимает архив и вложения от Pusher другого инстанса.
type Receiver struct {
	cfg      *config.Config
	keys     repo.TransferKeyRepository
	importer *archive.Importer
	storage  storage.FileStorage
	notifier progress.Notifier
	logger   *zap.SugaredLogger
}

// NewReceiver собирает принимающую сторону из явных зависимостей.
func NewReceiver(
	cfg *config.Config,
	keys repo.TransferKeyRepository,
	importer *archive.Importer,
	fs storage.FileStorage,
	notifier progress.Notifier,
	logger *zap.SugaredLogger,
) *Receiver {
	return &Receiver{cfg: cfg, keys: keys, importer: importer, storage: fs, notifier: notifier, logger: logger}
}

// CreateTransferKey выдаёт новый ключ, привязанный к адресу этого инстанса.
// Записи TransferKey создаются только через этот метод.
func (r *Receiver) CreateTransferKey(ctx context.Context, siteURL *url.URL) (string, error) {
	k, keyString, err := transfer.GenerateKeyString(siteURL)
	if err != nil {
		return "", err
	}
	rec := &model.TransferKey{ID: k.ID, Secret: k.Secret, KeyString: keyString}
	if err := r.keys.Create(ctx, rec); err != nil {
		return "", transfer.Wrap(transfer.KindKeyGeneration, "saving transfer key", err)
	}
	return keyString, nil
}

// AnswerInstanceInfo собирает описание инстанса для сверки совместимости.
func (r *Receiver) AnswerInstanceInfo() transfer.InstanceInfo {
	info := transfer.InstanceInfo{
		Version:    r.cfg.AppVersion,
		Attachment: r.storage.Info(),
	}
	if r.cfg.UserUpperLimit > 0 {
		limit := r.cfg.UserUpperLimit
		info.UserUpperLimit = &limit
	}
	return info
}

// Receive разбирает присланный архив, проверяет манифест и прогоняет импорт
// по коллекциям. Сбой одной коллекции не прерывает остальные; метод
// возвращает список коллекций, импорт которых не удался.
func (r *Receiver) Receive(ctx context.Context, zipPath string, collections []string, optionsMap map[string]map[string]any) ([]string, error) {
	m, _, err := archive.ParseZip(zipPath)
	if err != nil {
		return nil, err
	}
	if err := r.importer.Validate(m); err != nil {
		return nil, err
	}

	if len(collections) == 0 {
		for _, e := range m.Collections {
			collections = append(collections, e.Collection)
		}
	}

	var failed []string
	total := len(collections)
	for i, c := range collections {
		entry, ok := m.EntryFor(c)
		if !ok {
			r.logger.Warnw("collection is not present in the archive, skipping", "collection", c)
			failed = append(failed, c)
			continue
		}
		r.notifier.Publish(progress.Event{Phase: progress.PhaseImporting, Collection: c, Current: i + 1, Total: total})

		st := r.importSettingsFor(c, entry, optionsMap[c])
		if err := r.importer.ImportCollection(ctx, zipPath, c, st); err != nil {
			r.logger.Errorw("collection import failed", "collection", c, "error", err)
			failed = append(failed, c)
		}
	}
	return failed, nil
}

// importSettingsFor: replace-all для коллекции конфигурации, merge для остальных.
func (r *Receiver) importSettingsFor(collection string, entry archive.Entry, options map[string]any) archive.ImportSettings {
	mode := archive.ModeMerge
	if collection == model.ConfigsCollection {
		mode = archive.ModeReplaceAll
	}
	return archive.ImportSettings{
		Mode:            mode,
		SourceFileName:  entry.FileName,
		OverwriteParams: options,
	}
}

// ReceiveAttachment сохраняет содержимое одного вложения в хранилище
// под ключом из присланных метаданных.
func (r *Receiver) ReceiveAttachment(ctx context.Context, content io.Reader, meta model.Attachment) error {
	return r.storage.Save(ctx, meta, content)
}

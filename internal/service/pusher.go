package service

import (
	"WikiGo/internal/archive"
	"WikiGo/internal/config"
	"WikiGo/internal/progress"
	"WikiGo/internal/repo"
	"WikiGo/internal/storage"
	"WikiGo/internal/transfer"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Pusher — отправляющая сторона трансфера: договаривается о совместимости
// с Receiver другого инстанса и передаёт ему архив и вложения.
type Pusher struct {
	cfg         *config.Config
	exporter    *archive.Exporter
	attachments repo.AttachmentRepository
	storage     storage.FileStorage
	client      *http.Client
	notifier    progress.Notifier
	logger      *zap.SugaredLogger
}

// NewPusher собирает отправляющую сторону из явных зависимостей.
// nil client означает http.DefaultClient.
func NewPusher(
	cfg *config.Config,
	exporter *archive.Exporter,
	attachments repo.AttachmentRepository,
	fs storage.FileStorage,
	client *http.Client,
	notifier progress.Notifier,
	logger *zap.SugaredLogger,
) *Pusher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Pusher{
		cfg:         cfg,
		exporter:    exporter,
		attachments: attachments,
		storage:     fs,
		client:      client,
		notifier:    notifier,
		logger:      logger,
	}
}

// AskInstanceInfo запрашивает у принимающего инстанса его описание.
func (p *Pusher) AskInstanceInfo(ctx context.Context, tk transfer.Key) (transfer.InstanceInfo, error) {
	p.notifier.Publish(progress.Event{Phase: progress.PhaseNegotiating})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tk.Origin()+"/api/transfer/instance-info", nil)
	if err != nil {
		return transfer.InstanceInfo{}, transfer.Wrap(transfer.KindInfoRetrievalFailed, "building instance info request", err)
	}
	req.Header.Set(transfer.KeyHeaderName, tk.String())

	resp, err := p.client.Do(req)
	if err != nil {
		return transfer.InstanceInfo{}, transfer.Wrap(transfer.KindInfoRetrievalFailed, "requesting instance info", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return transfer.InstanceInfo{}, transfer.New(transfer.KindInfoRetrievalFailed,
			fmt.Sprintf("receiver answered status %d", resp.StatusCode))
	}

	var payload struct {
		InstanceInfo transfer.InstanceInfo `json:"instanceInfo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return transfer.InstanceInfo{}, transfer.Wrap(transfer.KindInfoRetrievalFailed, "decoding instance info", err)
	}
	return payload.InstanceInfo, nil
}

// CanTransfer решает, допустим ли трансфер на удалённый инстанс.
// Версии должны совпадать точно; локальный лимит пользователей (0 — без
// ограничения) не должен быть меньше лимита, о котором сообщил удалённый
// инстанс (nil — без ограничения).
func (p *Pusher) CanTransfer(remote transfer.InstanceInfo) bool {
	if p.cfg.AppVersion != remote.Version {
		return false
	}

	remoteLimit := 0
	if remote.UserUpperLimit != nil {
		remoteLimit = *remote.UserUpperLimit
	}
	if p.cfg.UserUpperLimit != 0 && p.cfg.UserUpperLimit < remoteLimit {
		return false
	}
	return true
}

// StartTransfer выгружает коллекции в архив и отправляет его принимающему
// инстансу одним multipart-запросом. Любая ошибка прерывает трансфер,
// ретраев нет.
func (p *Pusher) StartTransfer(ctx context.Context, tk transfer.Key, operatorID string, collections []string, optionsMap map[string]map[string]any) error {
	p.notifier.Publish(progress.Event{Phase: progress.PhaseExporting})
	zipPath, err := p.exporter.Export(ctx, collections)
	if err != nil {
		return fmt.Errorf("exporting collections: %w", err)
	}

	f, err := os.Open(zipPath)
	if err != nil {
		return err
	}
	defer f.Close()

	collectionsJSON, err := json.Marshal(collections)
	if err != nil {
		return err
	}
	optionsJSON, err := json.Marshal(optionsMap)
	if err != nil {
		return err
	}

	p.notifier.Publish(progress.Event{Phase: progress.PhaseUploading})
	fields := map[string]string{
		"collections":    string(collectionsJSON),
		"optionsMap":     string(optionsJSON),
		"operatorUserId": operatorID,
	}
	if err := p.postMultipart(ctx, tk, "/api/transfer/", "file", filepath.Base(zipPath), f, fields); err != nil {
		p.notifier.Publish(progress.Event{Phase: progress.Aborted(transfer.KindUploadFailed.Code())})
		return transfer.Wrap(transfer.KindUploadFailed, "uploading archive to receiver", err)
	}
	return nil
}

// TransferAttachments последовательно, по одному, передаёт содержимое всех
// вложений инстанса. Недоступное содержимое пропускается с предупреждением;
// ошибка отправки фатальна и останавливает перебор — оставшиеся вложения
// не передаются.
func (p *Pusher) TransferAttachments(ctx context.Context, tk transfer.Key) error {
	atts, err := p.attachments.ListAll(ctx)
	if err != nil {
		return err
	}

	total := len(atts)
	for i, att := range atts {
		if err := ctx.Err(); err != nil {
			return err
		}

		rc, err := p.storage.Open(ctx, att)
		if err != nil {
			p.logger.Warnw("attachment content is unavailable, skipping",
				"attachment_id", att.ID, "error", err)
			continue
		}

		p.notifier.Publish(progress.Event{Phase: progress.PhaseAttachments, Current: i + 1, Total: total})
		meta, err := json.Marshal(att)
		if err != nil {
			_ = rc.Close()
			return err
		}
		err = p.postMultipart(ctx, tk, "/api/transfer/attachment", "content", att.FileName, rc,
			map[string]string{"attachmentMetadata": string(meta)})
		_ = rc.Close()
		if err != nil {
			p.notifier.Publish(progress.Event{Phase: progress.Aborted(transfer.KindUploadFailed.Code())})
			return transfer.Wrap(transfer.KindUploadFailed, fmt.Sprintf("uploading attachment %s", att.ID), err)
		}
	}
	p.notifier.Publish(progress.Event{Phase: progress.PhaseComplete})
	return nil
}

// postMultipart отправляет поля формы и файл одним запросом, стримя тело
// через pipe, чтобы не держать архив или вложение в памяти целиком.
func (p *Pusher) postMultipart(ctx context.Context, tk transfer.Key, path, fileField, fileName string, content io.Reader, fields map[string]string) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var err error
		defer func() { _ = pw.CloseWithError(err) }()
		for k, v := range fields {
			if err = mw.WriteField(k, v); err != nil {
				return
			}
		}
		var part io.Writer
		if part, err = mw.CreateFormFile(fileField, fileName); err != nil {
			return
		}
		if _, err = io.Copy(part, content); err != nil {
			return
		}
		err = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tk.Origin()+path, pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(transfer.KeyHeaderName, tk.String())

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("receiver answered status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

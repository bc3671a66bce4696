package handlers

import (
	"WikiGo/internal/config"
	"WikiGo/internal/middleware"
	"WikiGo/internal/model"
	"WikiGo/internal/service"
	"WikiGo/internal/transfer"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// лимит буферизации multipart-формы в памяти, остальное уходит на диск
const multipartMemoryLimit = 32 << 20

// TransferHandler обслуживает обе стороны трансфера: приём архива и вложений
// от чужого Pusher и запуск исходящего трансфера оператором.
type TransferHandler struct {
	Receiver *service.Receiver
	Pusher   *service.Pusher
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewTransferHandler создаёт хендлер трансфера
func NewTransferHandler(receiver *service.Receiver, pusher *service.Pusher, logger *zap.SugaredLogger, cfg *config.Config) *TransferHandler {
	return &TransferHandler{Receiver: receiver, Pusher: pusher, Logger: logger, Config: cfg}
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind transfer.Kind, msg string) {
	writeJSON(w, status, errorResponse{Message: msg, Code: kind.Code()})
}

// kindStatus — HTTP-статус по виду ошибки трансфера.
func kindStatus(kind transfer.Kind) int {
	switch kind {
	case transfer.KindMissingKey, transfer.KindInvalidKeyFormat,
		transfer.KindSiteURLRequired, transfer.KindArchiveFormatInvalid,
		transfer.KindVersionMismatch, transfer.KindIncompatibleCapacity:
		return http.StatusBadRequest
	case transfer.KindKeyNotFoundOrExpired, transfer.KindAttachmentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// InstanceInfo отвечает описанием этого инстанса для сверки совместимости.
// Ключ уже проверен мидлварой.
func (h *TransferHandler) InstanceInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"instanceInfo": h.Receiver.AnswerInstanceInfo()})
}

// GenerateKey выдаёт трансфер-ключ для этого инстанса.
// На установленном инстансе доступен только администратору; до установки
// ключ может выдать мастер установки, передав appSiteUrl в теле.
func (h *TransferHandler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	if h.Config.Installed {
		if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !middleware.IsAdminFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	var req struct {
		AppSiteURL string `json:"appSiteUrl"`
	}
	if r.Body != nil {
		// тело опционально: при пустом используется SiteURL из конфигурации
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	rawURL := req.AppSiteURL
	if rawURL == "" {
		rawURL = h.Config.SiteURL
	}
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, transfer.KindSiteURLRequired, "site url is not configured and appSiteUrl is not provided")
		return
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		writeError(w, http.StatusBadRequest, transfer.KindKeyGeneration, "site url must be an absolute URL")
		return
	}
	keyString, err := h.Receiver.CreateTransferKey(r.Context(), u)
	if err != nil {
		h.Logger.Errorw("GenerateKey: failed to issue transfer key", "error", err)
		writeError(w, kindStatus(transfer.KindOf(err)), transfer.KindOf(err), "failed to issue transfer key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transferKey": keyString})
}

// IngestArchive принимает архив коллекций от Pusher другого инстанса и
// запускает импорт. Ключ уже проверен мидлварой.
func (h *TransferHandler) IngestArchive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindArchiveFormatInvalid, "request is not a valid multipart form")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindArchiveFormatInvalid, "archive file is missing")
		return
	}
	defer f.Close()

	// фильтр по расширению срабатывает до распаковки
	if !strings.EqualFold(filepath.Ext(hdr.Filename), ".zip") {
		writeError(w, http.StatusBadRequest, transfer.KindArchiveFormatInvalid, "only .zip archives are accepted")
		return
	}

	var collections []string
	if v := r.FormValue("collections"); v != "" {
		if err := json.Unmarshal([]byte(v), &collections); err != nil {
			writeError(w, http.StatusBadRequest, transfer.KindImportFailed, "collections is not a valid JSON array")
			return
		}
	}
	var optionsMap map[string]map[string]any
	if v := r.FormValue("optionsMap"); v != "" {
		if err := json.Unmarshal([]byte(v), &optionsMap); err != nil {
			writeError(w, http.StatusBadRequest, transfer.KindImportFailed, "optionsMap is not a valid JSON object")
			return
		}
	}

	zipPath := filepath.Join(h.Config.ArchiveDir, filepath.Base(hdr.Filename))
	if err := saveUpload(zipPath, f); err != nil {
		h.Logger.Errorw("IngestArchive: failed to persist archive", "error", err)
		writeError(w, http.StatusInternalServerError, transfer.KindImportFailed, "failed to persist archive")
		return
	}

	keyID := ""
	if k, ok := middleware.GetTransferKeyFromContext(r.Context()); ok {
		keyID = k.ID
	}
	h.Logger.Infow("archive received",
		"file", hdr.Filename, "size", hdr.Size,
		"operator_user_id", r.FormValue("operatorUserId"), "key_id", keyID)

	failed, err := h.Receiver.Receive(r.Context(), zipPath, collections, optionsMap)
	if err != nil {
		kind := transfer.KindOf(err)
		h.Logger.Errorw("IngestArchive: import rejected", "error", err)
		writeError(w, kindStatus(kind), kind, err.Error())
		return
	}

	if failed == nil {
		failed = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "import completed",
		"failedCollections": failed,
	})
}

// IngestAttachment принимает содержимое одного вложения.
// Ключ уже проверен мидлварой.
func (h *TransferHandler) IngestAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindUploadFailed, "request is not a valid multipart form")
		return
	}
	f, _, err := r.FormFile("content")
	if err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindUploadFailed, "attachment content is missing")
		return
	}
	defer f.Close()

	var meta model.Attachment
	if err := json.Unmarshal([]byte(r.FormValue("attachmentMetadata")), &meta); err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindUploadFailed, "attachmentMetadata is not a valid JSON object")
		return
	}

	if err := h.Receiver.ReceiveAttachment(r.Context(), f, meta); err != nil {
		h.Logger.Errorw("IngestAttachment: failed to store content", "attachment_id", meta.ID, "error", err)
		writeError(w, http.StatusInternalServerError, transfer.KindUploadFailed, "failed to store attachment content")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attachment stored"})
}

// PushRequest — запуск исходящего трансфера оператором.
type PushRequest struct {
	TransferKey string                    `json:"transferKey"`
	Collections []string                  `json:"collections"`
	OptionsMap  map[string]map[string]any `json:"optionsMap"`
}

// Push выполняет исходящий трансфер на инстанс, выдавший ключ: сверка
// совместимости, выгрузка архива, затем вложения. Только администратор.
func (h *TransferHandler) Push(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !middleware.IsAdminFromContext(r.Context()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Push: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	tk, err := transfer.ParseKey(req.TransferKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, transfer.KindInvalidKeyFormat, "transferKey is malformed")
		return
	}

	info, err := h.Pusher.AskInstanceInfo(r.Context(), tk)
	if err != nil {
		kind := transfer.KindOf(err)
		h.Logger.Errorw("Push: failed to get receiver instance info", "target", tk.Origin(), "error", err)
		writeError(w, kindStatus(kind), kind, "failed to retrieve receiver instance info")
		return
	}

	if !h.Pusher.CanTransfer(info) {
		kind := transfer.KindIncompatibleCapacity
		if info.Version != h.Config.AppVersion {
			kind = transfer.KindVersionMismatch
		}
		writeError(w, kindStatus(kind), kind, "transfer to this instance is not allowed")
		return
	}

	operatorID := strconv.FormatInt(userID, 10)
	if err := h.Pusher.StartTransfer(r.Context(), tk, operatorID, req.Collections, req.OptionsMap); err != nil {
		kind := transfer.KindOf(err)
		h.Logger.Errorw("Push: archive transfer failed", "target", tk.Origin(), "error", err)
		writeError(w, kindStatus(kind), kind, "archive transfer failed")
		return
	}
	if err := h.Pusher.TransferAttachments(r.Context(), tk); err != nil {
		kind := transfer.KindOf(err)
		h.Logger.Errorw("Push: attachment transfer aborted", "target", tk.Origin(), "error", err)
		writeError(w, kindStatus(kind), kind, "attachment transfer aborted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "transfer completed"})
}

// saveUpload пишет присланный файл на диск целиком.
func saveUpload(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

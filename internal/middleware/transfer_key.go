package middleware

import (
	"WikiGo/internal/repo"
	"WikiGo/internal/transfer"
	"context"
	"encoding/json"
	"net/http"
)

const transferKeyKey contextKey = "transfer_key"

// WithTransferKey проверяет заголовок трансфер-ключа перед каждым приёмным
// хендлером. Порядок проверок фиксирован: отсутствие ключа, формат,
// активная запись в хранилище.
func WithTransferKey(keys repo.TransferKeyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(transfer.KeyHeaderName)
			if raw == "" {
				writeKeyError(w, http.StatusBadRequest, transfer.KindMissingKey, "transfer key is not set")
				return
			}

			k, err := transfer.ParseKey(raw)
			if err != nil {
				writeKeyError(w, http.StatusBadRequest, transfer.KindInvalidKeyFormat, "transfer key is invalid")
				return
			}

			rec, err := keys.FindActive(r.Context(), k.Secret)
			if err != nil {
				logger.Errorw("transfer key lookup failed", "error", err)
				writeKeyError(w, http.StatusInternalServerError, transfer.KindUnknown, "error occurred while looking up transfer key")
				return
			}
			if rec == nil {
				writeKeyError(w, http.StatusNotFound, transfer.KindKeyNotFoundOrExpired, "transfer key has expired or not found")
				return
			}

			// распарсенный ключ кладём в контекст для хендлеров
			ctx := context.WithValue(r.Context(), transferKeyKey, k)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTransferKeyFromContext возвращает распарсенный ключ текущего запроса.
func GetTransferKeyFromContext(ctx context.Context) (transfer.Key, bool) {
	k, ok := ctx.Value(transferKeyKey).(transfer.Key)
	return k, ok
}

func writeKeyError(w http.ResponseWriter, status int, kind transfer.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg, "code": kind.Code()})
}

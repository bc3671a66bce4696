package transfer

import (
	"errors"
	"fmt"
)

// Kind — закрытый перечень видов ошибок трансфера.
// Обработчики ветвятся по Kind, а не по сравнению строк.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingKey
	KindInvalidKeyFormat
	KindKeyNotFoundOrExpired
	KindKeyGeneration
	KindSiteURLRequired
	KindInfoRetrievalFailed
	KindVersionMismatch
	KindIncompatibleCapacity
	KindArchiveFormatInvalid
	KindImportFailed
	KindAttachmentNotFound
	KindUploadFailed
)

var kindCodes = map[Kind]string{
	KindMissingKey:           "missing_transfer_key",
	KindInvalidKeyFormat:     "invalid_transfer_key",
	KindKeyNotFoundOrExpired: "transfer_key_expired_or_not_found",
	KindKeyGeneration:        "failed_to_generate_key",
	KindSiteURLRequired:      "site_url_required",
	KindInfoRetrievalFailed:  "failed_to_retrieve_instance_info",
	KindVersionMismatch:      "version_mismatch",
	KindIncompatibleCapacity: "incompatible_capacity",
	KindArchiveFormatInvalid: "archive_format_invalid",
	KindImportFailed:         "import_failed",
	KindAttachmentNotFound:   "attachment_not_found",
	KindUploadFailed:         "upload_failed",
}

// Code возвращает машинно-читаемый код для HTTP-ответов.
func (k Kind) Code() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return "transfer_error"
}

// Error — ошибка трансфера: вид + сообщение + (опционально) обёрнутая причина.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New создаёт ошибку трансфера без причины.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap оборачивает err в ошибку трансфера указанного вида.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf достаёт вид из цепочки ошибок; KindUnknown, если в цепочке нет *Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

package model

import "time"

// Attachment — метаданные бинарного вложения. Само содержимое лежит во внешнем
// файловом хранилище под ключом FilePath.
type Attachment struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	PageID      *string `gorm:"type:uuid;index" json:"page_id"`
	FileName    string  `gorm:"not null" json:"file_name"`
	FilePath    string  `gorm:"uniqueIndex;not null" json:"file_path"` // ключ в хранилище
	FileSize    int64   `json:"file_size"`
	ContentType string  `json:"content_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

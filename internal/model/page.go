package model

import "time"

// Page — страница вики. Тело хранится в последней ревизии, Body дублирует его
// для быстрого чтения.
type Page struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Path string `gorm:"uniqueIndex;not null" json:"path"`
	Body string `json:"body"`

	RevisionID *string `gorm:"type:uuid" json:"revision_id"`
	CreatorID  *int64  `gorm:"index" json:"creator_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Revision — зафиксированная версия тела страницы.
type Revision struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	PageID string `gorm:"type:uuid;index;not null" json:"page_id"`
	Body   string `json:"body"`

	AuthorID *int64 `json:"author_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

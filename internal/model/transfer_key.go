package model

import "time"

// TransferKey — персистентная запись выданного трансфер-ключа.
// Записи старше TTL считаются отсутствующими (пассивная экспирация при поиске).
type TransferKey struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Secret    string    `gorm:"uniqueIndex;not null"`
	KeyString string    `gorm:"uniqueIndex;not null"` // original encoded key string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

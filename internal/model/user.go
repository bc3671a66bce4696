package model

import "time"

// User — учётная запись инстанса. Admin даёт доступ к административному API,
// включая выдачу трансфер-ключей и запуск трансфера.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Login        string `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash string `gorm:"not null" json:"-"`
	Admin        bool   `gorm:"not null;default:false" json:"admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package repo

import (
	"WikiGo/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// KeyTTL — срок жизни трансфер-ключа с момента выдачи.
const KeyTTL = 30 * time.Minute

// TransferKeyRepository — контракт доступа к записям трансфер-ключей.
// Записи создаёт только Receiver, выдавший ключ.
type TransferKeyRepository interface {
	// Create сохраняет новую запись ключа.
	Create(ctx context.Context, rec *model.TransferKey) error

	// FindActive возвращает непросроченную запись по secret или nil, если
	// такой нет. Просроченные записи считаются отсутствующими.
	FindActive(ctx context.Context, secret string) (*model.TransferKey, error)
}

type transferKeyRepo struct {
	db *gorm.DB
}

// NewTransferKeyRepository создаёт реализацию репозитория трансфер-ключей.
func NewTransferKeyRepository(db *gorm.DB) TransferKeyRepository {
	return &transferKeyRepo{db: db}
}

func (r *transferKeyRepo) Create(ctx context.Context, rec *model.TransferKey) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *transferKeyRepo) FindActive(ctx context.Context, secret string) (*model.TransferKey, error) {
	cutoff := time.Now().Add(-KeyTTL)

	// ленивое удаление просроченных записей; сбой чистки не мешает поиску
	_ = r.db.WithContext(ctx).Where("created_at <= ?", cutoff).Delete(&model.TransferKey{}).Error

	var rec model.TransferKey
	err := r.db.WithContext(ctx).
		Where("secret = ? AND created_at > ?", secret, cutoff).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

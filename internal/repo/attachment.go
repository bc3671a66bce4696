package repo

import (
	"WikiGo/internal/model"
	"context"

	"gorm.io/gorm"
)

// AttachmentRepository — контракт доступа к метаданным вложений.
type AttachmentRepository interface {
	// ListAll возвращает все вложения инстанса в порядке создания.
	// Порядок между запусками не гарантируется для записей с равным created_at.
	ListAll(ctx context.Context) ([]model.Attachment, error)
}

type attachmentRepo struct {
	db *gorm.DB
}

// NewAttachmentRepository создаёт реализацию репозитория вложений.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) ListAll(ctx context.Context) ([]model.Attachment, error) {
	var atts []model.Attachment
	err := r.db.WithContext(ctx).Order("created_at").Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) SaveAudit(ctx context.Context, log *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(log).Error, "save audit", nil)
}

func (r *AuditGormRepository) ListAudit(ctx context.Context, salonID string, limit int) ([]models.AuditLog, error) {
	var list []models.AuditLog
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, translate(err, "list audit", nil)
	}
	return list, nil
}

// Compile-time check
var _ audit.Store = (*AuditGormRepository)(nil)

package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type VisitGormRepository struct {
	db *gorm.DB
}

func NewVisitGormRepository(db *gorm.DB) *VisitGormRepository {
	return &VisitGormRepository{db: db}
}

func (r *VisitGormRepository) ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error) {
	var list []models.Visit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list visits", nil)
	}
	return list, nil
}

func (r *VisitGormRepository) GetVisit(ctx context.Context, id string) (*models.Visit, error) {
	var v models.Visit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, translate(err, "get visit", httperr.ErrVisitNotFound)
	}
	return &v, nil
}

func (r *VisitGormRepository) SetVisitRating(ctx context.Context, id string, rating int) (*models.Visit, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ?", id).
		UpdateColumn("rating", rating)
	if res.Error != nil {
		return nil, translate(res.Error, "rate visit", nil)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrVisitNotFound
	}
	return r.GetVisit(ctx, id)
}

func (r *VisitGormRepository) SalonVisitTotals(ctx context.Context, salonID string) (domain.Totals, error) {
	var row struct {
		Count   int64
		Revenue int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("salon_id = ?", salonID).
		Scan(&row).Error; err != nil {
		return domain.Totals{}, translate(err, "visit totals", nil)
	}
	return domain.Totals{Count: int(row.Count), Revenue: int(row.Revenue)}, nil
}

// Compile-time check
var _ domain.Repository = (*VisitGormRepository)(nil)

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type OfferGormRepository struct {
	db *gorm.DB
}

func NewOfferGormRepository(db *gorm.DB) *OfferGormRepository {
	return &OfferGormRepository{db: db}
}

func (r *OfferGormRepository) ListActiveOffers(ctx context.Context, salonID string) ([]models.Offer, error) {
	var list []models.Offer
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND is_active = ?", salonID, true).
		Where("valid_until IS NULL OR valid_until >= ?", time.Now()).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list offers", nil)
	}
	return list, nil
}

func (r *OfferGormRepository) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	var o models.Offer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translate(err, "get offer", httperr.ErrOfferNotFound)
	}
	return &o, nil
}

func (r *OfferGormRepository) CreateOffer(ctx context.Context, o *models.Offer) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, "create offer", nil)
}

func (r *OfferGormRepository) UpdateOffer(ctx context.Context, o *models.Offer) error {
	res := r.db.WithContext(ctx).
		Model(o).
		Select("title", "description", "discount", "valid_until", "is_active").
		Updates(o)
	if res.Error != nil {
		return translate(res.Error, "update offer", nil)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrOfferNotFound
	}
	return nil
}

func (r *OfferGormRepository) DeleteOffer(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return false, translate(res.Error, "delete offer", nil)
	}
	return res.RowsAffected > 0, nil
}

// RecordClick increments in SQL so concurrent clicks are never lost.
func (r *OfferGormRepository) RecordClick(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1"))
	if res.Error != nil {
		return translate(res.Error, "record click", nil)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrOfferNotFound
	}
	return nil
}

func (r *OfferGormRepository) SumOfferClicks(ctx context.Context, salonID string) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("salon_id = ?", salonID).
		Select("COALESCE(SUM(click_count), 0)").
		Scan(&total).Error; err != nil {
		return 0, translate(err, "sum clicks", nil)
	}
	return int(total), nil
}

// Compile-time check
var _ domain.Repository = (*OfferGormRepository)(nil)

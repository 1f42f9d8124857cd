package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *SalonGormRepository) ListSalons(ctx context.Context) ([]models.Salon, error) {
	var list []models.Salon
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list salons", nil)
	}
	return list, nil
}

func (r *SalonGormRepository) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	var s models.Salon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err, "get salon", httperr.ErrSalonNotFound)
	}
	return &s, nil
}

func (r *SalonGormRepository) ListSalonsByOwner(ctx context.Context, ownerID string) ([]models.Salon, error) {
	var list []models.Salon
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list owner salons", nil)
	}
	return list, nil
}

func (r *SalonGormRepository) CreateSalon(ctx context.Context, s *models.Salon) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "create salon", nil)
}

func (r *SalonGormRepository) UpdateSalon(ctx context.Context, s *models.Salon) error {
	res := r.db.WithContext(ctx).
		Model(s).
		Select("name", "description", "location", "phone", "image_url", "operating_hours").
		Updates(s)
	if res.Error != nil {
		return translate(res.Error, "update salon", nil)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrSalonNotFound
	}
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *SalonGormRepository) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	var list []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "list services", nil)
	}
	return list, nil
}

func (r *SalonGormRepository) GetService(ctx context.Context, salonID, serviceID string) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, translate(err, "get service", httperr.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *SalonGormRepository) FirstService(ctx context.Context, salonID string) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at ASC").
		First(&svc).Error; err != nil {
		return nil, translate(err, "first service", httperr.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *SalonGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(svc).Error, "create service", nil)
}

// Compile-time check
var _ domain.Repository = (*SalonGormRepository)(nil)

package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "get user", httperr.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error; err != nil {
		return nil, translate(err, "get user by email", httperr.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := translate(r.db.WithContext(ctx).Create(u).Error, "create user", nil)
	if httperr.IsBusiness(err, httperr.CodeDuplicateEntry) {
		// email is the only unique column
		return httperr.ErrEmailTaken
	}
	return err
}

// UpdateUser writes profile fields. Loyalty points are left to visit completion.
func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).
		Model(u).
		Select("first_name", "last_name", "phone", "profile_image_url").
		Updates(u)
	if res.Error != nil {
		return translate(res.Error, "update user", nil)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrUserNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)

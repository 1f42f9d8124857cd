package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/validators"
)

// ProfileInput carries optional fields; nil leaves the value unchanged.
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

type UpdateProfile struct {
	users user.Repository
}

func NewUpdateProfile(users user.Repository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	u, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		phone := ""
		if strings.TrimSpace(*in.Phone) != "" {
			if phone = validators.NormalizePhone(*in.Phone); phone == "" {
				return nil, httperr.ErrInvalidInput
			}
		}
		u.Phone = phone
	}

	if err := uc.users.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return uc.users.GetUser(ctx, userID)
}

package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/validators"
)

type LoginInput struct {
	Email    string
	Password string
	// AsAdmin rejects non-admin accounts on the owner login screen.
	AsAdmin bool
}

type Login struct {
	users user.Repository
}

func NewLogin(users user.Repository) *Login {
	return &Login{users: users}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*models.User, error) {
	u, err := uc.users.GetUserByEmail(ctx, validators.NormalizeEmail(in.Email))
	if httperr.IsBusiness(err, httperr.CodeUserNotFound) {
		return nil, httperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, httperr.ErrInvalidCredentials
	}

	if in.AsAdmin && !u.IsAdmin {
		return nil, httperr.ErrAdminRequired
	}
	return u, nil
}

package account

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/validators"
)

const minPasswordLen = 6

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	IsAdmin   bool
}

type Register struct {
	users user.Repository
	// optional MX/A lookup, enabled in production
	domainCheck func(email string) bool
}

func NewRegister(users user.Repository, domainCheck func(string) bool) *Register {
	return &Register{users: users, domainCheck: domainCheck}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailSyntaxValid(email) || len(in.Password) < minPasswordLen {
		return nil, httperr.ErrInvalidInput
	}
	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return nil, httperr.ErrInvalidEmailDomain
	}

	phone := ""
	if strings.TrimSpace(in.Phone) != "" {
		phone = validators.NormalizePhone(in.Phone)
		if phone == "" {
			return nil, httperr.ErrInvalidInput
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        phone,
		IsAdmin:      in.IsAdmin,
	}

	if err := uc.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

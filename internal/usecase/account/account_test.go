package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/infra/memory"
)

func TestRegisterThenLogin(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	u, err := NewRegister(store, nil).Execute(ctx, RegisterInput{
		Email:     " Ana@Glow.dev ",
		Password:  "secret1",
		FirstName: "Ana",
		Phone:     "+55 11 91111-0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@glow.dev", u.Email)
	assert.Equal(t, "+5511911110000", u.Phone)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	login := NewLogin(store)

	got, err := login.Execute(ctx, LoginInput{Email: "ana@glow.dev", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = login.Execute(ctx, LoginInput{Email: "ana@glow.dev", Password: "wrong"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	_, err = login.Execute(ctx, LoginInput{Email: "nobody@glow.dev", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	_, err = login.Execute(ctx, LoginInput{Email: "ana@glow.dev", Password: "secret1", AsAdmin: true})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAdminRequired))
}

func TestRegisterValidation(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	reg := NewRegister(store, nil)

	_, err := reg.Execute(ctx, RegisterInput{Email: "bad", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = reg.Execute(ctx, RegisterInput{Email: "a@glow.dev", Password: "123"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = reg.Execute(ctx, RegisterInput{Email: "a@glow.dev", Password: "secret1"})
	require.NoError(t, err)
	_, err = reg.Execute(ctx, RegisterInput{Email: "A@glow.dev", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeEmailTaken))

	_, err = NewRegister(store, func(string) bool { return false }).
		Execute(ctx, RegisterInput{Email: "b@glow.dev", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidEmailDomain))
}

func TestUpdateProfile(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	u, err := NewRegister(store, nil).Execute(ctx, RegisterInput{Email: "a@glow.dev", Password: "secret1", FirstName: "Ana"})
	require.NoError(t, err)

	last := " Silva "
	phone := "(11) 3333-4444"
	got, err := NewUpdateProfile(store).Execute(ctx, u.ID, ProfileInput{LastName: &last, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "Silva", got.LastName)
	assert.Equal(t, "1133334444", got.Phone)

	bad := "call me"
	_, err = NewUpdateProfile(store).Execute(ctx, u.ID, ProfileInput{Phone: &bad})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound error
		code     string
	}{
		{"record not found", gorm.ErrRecordNotFound, httperr.ErrSalonNotFound, httperr.CodeSalonNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, nil, httperr.CodeDuplicateEntry},
		{"connection exception", &pgconn.PgError{Code: "08006"}, nil, httperr.CodeStoreUnavailable},
		{"deadline", errors.Wrap(context.DeadlineExceeded, "query"), nil, httperr.CodeStoreUnavailable},
		{"business passes through", httperr.ErrInvalidTransition, nil, httperr.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "op", tt.notFound)
			code, ok := httperr.CodeOf(got)
			assert.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestTranslateWrapsUnknownErrors(t *testing.T) {
	assert.Nil(t, translate(nil, "op", nil))

	got := translate(errors.New("boom"), "list salons", nil)
	_, ok := httperr.CodeOf(got)
	assert.False(t, ok)
	assert.Contains(t, got.Error(), "list salons: boom")
}

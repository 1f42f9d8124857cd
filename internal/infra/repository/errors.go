package repository

import (
	"context"
	"database/sql/driver"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
)

const pgUniqueViolation = "23505"

// translate turns driver errors into business errors the handlers understand.
// Anything unexpected is wrapped with op and passed through.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}

	if _, ok := httperr.CodeOf(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return httperr.ErrDuplicateEntry
		}
		// class 08: connection exception
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" {
			return httperr.WithCause(httperr.CodeStoreUnavailable, errors.Wrap(err, op))
		}
	}

	if isUnavailable(err) {
		return httperr.WithCause(httperr.CodeStoreUnavailable, errors.Wrap(err, op))
	}

	return errors.Wrap(err, op)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package user

import (
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID      string
	IsAdmin bool
}

// CanManage reports whether a may run owner actions on s. Salons without an
// owner (seeded data) are managed by any admin.
func (a Actor) CanManage(s *models.Salon) bool {
	if !a.IsAdmin {
		return false
	}
	return s.OwnerID == nil || s.IsOwnedBy(a.ID)
}

func (a Actor) RequireManage(s *models.Salon) error {
	if !a.CanManage(s) {
		return httperr.ErrForbidden
	}
	return nil
}

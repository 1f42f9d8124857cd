package memory

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

func (s *Store) SaveAudit(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == "" {
		log.ID = models.NewID()
	}
	s.audit = append(s.audit, *log)
	return nil
}

// ListAudit returns the newest rows first.
func (s *Store) ListAudit(ctx context.Context, salonID string, limit int) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AuditLog, 0)
	for i := len(s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		if s.audit[i].SalonID == salonID {
			out = append(out, s.audit[i])
		}
	}
	return out, nil
}

var _ audit.Store = (*Store)(nil)

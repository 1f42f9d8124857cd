package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// Store persists audit rows. The gorm repository and the memory store both
// implement it.
type Store interface {
	SaveAudit(ctx context.Context, log *models.AuditLog) error
	ListAudit(ctx context.Context, salonID string, limit int) ([]models.AuditLog, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		SalonID:  ev.SalonID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.SaveAudit(ctx, &log)
}

func (l *Logger) List(ctx context.Context, salonID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return l.store.ListAudit(ctx, salonID, limit)
}

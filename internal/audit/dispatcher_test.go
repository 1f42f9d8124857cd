package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

type fakeStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeStore) SaveAudit(ctx context.Context, log *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeStore) ListAudit(ctx context.Context, salonID string, limit int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AuditLog(nil), f.logs...), nil
}

func TestDispatcherWritesEventsBeforeClose(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(New(store))

	entryID := "entry-1"
	d.Dispatch(Event{SalonID: "s1", Action: "queue_called", Entity: "queue_entry", EntityID: &entryID, Metadata: map[string]int{"position": 1}})
	d.Dispatch(Event{SalonID: "s1", Action: "queue_completed", Entity: "queue_entry", EntityID: &entryID})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d.Close(ctx)

	logs, err := store.ListAudit(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "queue_called", logs[0].Action)
	assert.JSONEq(t, `{"position":1}`, logs[0].Metadata)
	assert.Empty(t, logs[1].Metadata)
}

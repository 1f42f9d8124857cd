package queue

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// Advanced is the outcome of a successful transition.
type Advanced struct {
	Entry models.QueueEntry
	// Visit is set only when the entry was completed.
	Visit *models.Visit
	// Credited is false when the visit's user no longer exists.
	Credited bool
}

// Store owns every queue entry. No other component writes entries.
//
// Implementations serialize all mutations of one salon's queue, so that
// waiting positions stay unique and dense (1..N in join order).
type Store interface {
	// Join assigns the next waiting position and inserts e.
	// Fails with ErrDuplicateEntry if e.UserID already waits at e.SalonID.
	Join(ctx context.Context, e *models.QueueEntry) error

	// Advance applies a transition. Completing records the visit and
	// credits the loyalty points in the same atomic step.
	Advance(ctx context.Context, entryID string, target Status, now time.Time) (*Advanced, error)

	// Remove deletes the entry whatever its status.
	Remove(ctx context.Context, entryID string) (bool, error)

	Get(ctx context.Context, entryID string) (*models.QueueEntry, error)

	// PositionOf returns the waiting entry for (userID, salonID).
	PositionOf(ctx context.Context, userID, salonID string) (*models.QueueEntry, error)

	// ListBySalon returns all entries of a salon, waiting ones first by position.
	ListBySalon(ctx context.Context, salonID string) ([]models.QueueEntry, error)

	CountWaiting(ctx context.Context, salonID string) (int, error)

	// ExpireWaiting marks waiting entries joined before cutoff as no-show.
	ExpireWaiting(ctx context.Context, cutoff time.Time, now time.Time) ([]models.QueueEntry, error)
}

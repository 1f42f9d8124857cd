package queue

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// DefaultServiceSentinel is sent by clients that let the salon pick the service.
const DefaultServiceSentinel = "default-service-id"

type JoinInput struct {
	SalonID   string
	UserID    *string
	ServiceID string
}

// Normalize trims the input and rejects it before anything is written.
func (in JoinInput) Normalize() (JoinInput, error) {
	in.SalonID = strings.TrimSpace(in.SalonID)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	if in.UserID != nil {
		uid := strings.TrimSpace(*in.UserID)
		if uid == "" {
			in.UserID = nil
		} else {
			in.UserID = &uid
		}
	}

	if in.SalonID == "" {
		return in, httperr.ErrInvalidInput
	}
	return in, nil
}

// WantsDefaultService reports whether the service must be resolved by the salon.
func (in JoinInput) WantsDefaultService() bool {
	return in.ServiceID == "" || in.ServiceID == DefaultServiceSentinel
}

// NewEntry builds a waiting entry. The position is assigned by the store.
func NewEntry(salonID string, userID *string, serviceID string, now time.Time) (*models.QueueEntry, error) {
	if salonID == "" || serviceID == "" {
		return nil, httperr.ErrInvalidInput
	}

	return &models.QueueEntry{
		ID:        models.NewID(),
		SalonID:   salonID,
		UserID:    userID,
		ServiceID: serviceID,
		Status:    string(InitialStatus()),
		JoinedAt:  now,
	}, nil
}

// ===============================
// Domain Actions
// ===============================

// Advance moves e to target and stamps the lifecycle timestamps.
// It returns whether e left the waiting set.
func Advance(e *models.QueueEntry, target Status, now time.Time) (leftWaiting bool, err error) {
	current := Status(e.Status)
	if err := CanTransition(current, target); err != nil {
		return false, err
	}

	e.Status = string(target)
	switch target {
	case StatusInProgress:
		e.CalledAt = &now
	case StatusCompleted, StatusNoShow:
		e.CompletedAt = &now
	}

	return current == StatusWaiting, nil
}

var displayRank = map[Status]int{
	StatusInProgress: 0,
	StatusWaiting:    1,
	StatusCompleted:  2,
	StatusNoShow:     2,
}

// SortForDisplay orders entries as an owner reads the line: in-progress,
// then waiting by position, then finished ones, most recent first.
func SortForDisplay(entries []models.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ra, rb := displayRank[Status(a.Status)], displayRank[Status(b.Status)]
		if ra != rb {
			return ra < rb
		}
		switch Status(a.Status) {
		case StatusWaiting:
			return a.Position < b.Position
		case StatusInProgress:
			return a.JoinedAt.Before(b.JoinedAt)
		default:
			return finishedAt(a).After(finishedAt(b))
		}
	})
}

func finishedAt(e models.QueueEntry) time.Time {
	if e.CompletedAt != nil {
		return *e.CompletedAt
	}
	return e.JoinedAt
}

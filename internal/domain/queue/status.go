package queue

import "github.com/BruksfildServices01/salon-queue/internal/httperr"

// ===============================
// Queue Entry Status
// ===============================

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusNoShow     Status = "no-show"
)

// transitions lists, for every status, the statuses it may move to.
var transitions = map[Status][]Status{
	StatusWaiting:    {StatusInProgress, StatusCompleted, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusNoShow},
	StatusCompleted:  nil,
	StatusNoShow:     nil,
}

func (s Status) IsActive() bool {
	return s == StatusWaiting || s == StatusInProgress
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow
}

// ===============================
// Validations
// ===============================

// IsAdvanceTarget reports whether s can be requested through Advance.
func IsAdvanceTarget(s Status) bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusNoShow
}

// CanTransition checks a single move in the transition table.
func CanTransition(from, to Status) error {
	if !IsAdvanceTarget(to) {
		return httperr.ErrInvalidInput
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrInvalidTransition
}

func InitialStatus() Status {
	return StatusWaiting
}

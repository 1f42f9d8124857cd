package notify

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// Notification tells a customer it is their turn. It is produced when an
// entry is called and handed to a Publisher; delivery is best effort.
type Notification struct {
	EntryID   string    `json:"entryId,omitempty"`
	SalonID   string    `json:"salonId,omitempty"`
	Message   string    `json:"message"`
	Phone     string    `json:"phone"`
	Timestamp time.Time `json:"timestamp"`
}

// Build addresses the call of entry e. user and salon may be nil.
func Build(e *models.QueueEntry, user *models.User, salon *models.Salon, now time.Time) Notification {
	first := "Customer"
	phone := ""
	if user != nil {
		if user.FirstName != "" {
			first = user.FirstName
		}
		phone = user.Phone
	}

	place := "the salon"
	if salon != nil && salon.Name != "" {
		place = salon.Name
	}

	return Notification{
		EntryID:   e.ID,
		SalonID:   e.SalonID,
		Message:   fmt.Sprintf("Hi %s, it's your turn at %s. Please come in!", first, place),
		Phone:     phone,
		Timestamp: now,
	}
}

// Deliverable reports whether there is anyone to reach.
func (n Notification) Deliverable() bool {
	return n.Phone != ""
}

package dto

import (
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// QueueEntryDTO is one row of the owner's queue board.
type QueueEntryDTO struct {
	models.QueueEntry

	UserName    string `json:"userName"`
	ServiceName string `json:"serviceName"`

	// set for waiting entries only
	EstimatedWaitMinutes *int  `json:"estimatedWaitMinutes,omitempty"`
	IsNext               *bool `json:"isNext,omitempty"`
}

type JoinQueueResponse struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

// QueueStatusDTO is what a waiting customer sees.
type QueueStatusDTO struct {
	models.QueueEntry

	EstimatedWaitMinutes int  `json:"estimatedWaitMinutes"`
	IsNext               bool `json:"isNext"`
}

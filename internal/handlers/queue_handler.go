package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	ucQueue "github.com/BruksfildServices01/salon-queue/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	join    *ucQueue.JoinQueue
	advance *ucQueue.AdvanceEntry
	remove  *ucQueue.RemoveEntry
	list    *ucQueue.ListQueue
	status  *ucQueue.GetQueueStatus
}

func NewQueueHandler(
	join *ucQueue.JoinQueue,
	advance *ucQueue.AdvanceEntry,
	remove *ucQueue.RemoveEntry,
	list *ucQueue.ListQueue,
	status *ucQueue.GetQueueStatus,
) *QueueHandler {
	return &QueueHandler{
		join:    join,
		advance: advance,
		remove:  remove,
		list:    list,
		status:  status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinQueueRequest struct {
	SalonID   string `json:"salonId" binding:"required"`
	ServiceID string `json:"serviceId"`
}

// ======================================================
// LIST
// ======================================================

func (h *QueueHandler) List(c *gin.Context) {
	rows, err := h.list.Execute(c.Request.Context(), c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_queue")
		return
	}
	httpresp.OK(c, rows)
}

// ======================================================
// JOIN
// ======================================================

// Join works with or without a session. Anonymous entries carry no user.
func (h *QueueHandler) Join(c *gin.Context) {
	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "salonId is required.")
		return
	}

	in := domain.JoinInput{SalonID: req.SalonID, ServiceID: req.ServiceID}
	if userID, ok := middleware.UserID(c); ok {
		in.UserID = &userID
	}

	e, err := h.join.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_join_queue")
		return
	}

	httpresp.Created(c, dto.JoinQueueResponse{
		ID:       e.ID,
		Position: e.Position,
		Status:   e.Status,
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *QueueHandler) Call(c *gin.Context) {
	res, ok := h.transition(c, domain.StatusInProgress, "failed_to_call_customer")
	if !ok {
		return
	}
	httpresp.OK(c, gin.H{
		"queue":        res.Entry,
		"notification": res.Notification,
	})
}

func (h *QueueHandler) Complete(c *gin.Context) {
	res, ok := h.transition(c, domain.StatusCompleted, "failed_to_complete_entry")
	if !ok {
		return
	}
	httpresp.OK(c, gin.H{
		"queue": res.Entry,
		"visit": res.Visit,
	})
}

func (h *QueueHandler) NoShow(c *gin.Context) {
	res, ok := h.transition(c, domain.StatusNoShow, "failed_to_mark_no_show")
	if !ok {
		return
	}
	httpresp.OK(c, res.Entry)
}

func (h *QueueHandler) transition(c *gin.Context, target domain.Status, fallback string) (*ucQueue.AdvanceResult, bool) {
	res, err := h.advance.Execute(c.Request.Context(), ucQueue.AdvanceInput{
		EntryID: c.Param("id"),
		Target:  target,
		Actor:   middleware.Actor(c),
	})
	if err != nil {
		httperr.FromError(c, err, fallback)
		return nil, false
	}
	return res, true
}

// ======================================================
// REMOVE
// ======================================================

func (h *QueueHandler) Remove(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.Actor(c)); err != nil {
		httperr.FromError(c, err, "failed_to_remove_entry")
		return
	}
	httpresp.OK(c, gin.H{"message": "Removed from queue"})
}

// ======================================================
// STATUS
// ======================================================

// Status answers null when the caller is not waiting at the salon.
func (h *QueueHandler) Status(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	st, err := h.status.Execute(c.Request.Context(), userID, c.Query("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_queue_status")
		return
	}
	if st == nil {
		httpresp.Null(c)
		return
	}
	httpresp.OK(c, st)
}

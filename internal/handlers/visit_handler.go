package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	ucVisit "github.com/BruksfildServices01/salon-queue/internal/usecase/visit"
)

type VisitHandler struct {
	list *ucVisit.ListVisits
	rate *ucVisit.RateVisit
}

func NewVisitHandler(list *ucVisit.ListVisits, rate *ucVisit.RateVisit) *VisitHandler {
	return &VisitHandler{list: list, rate: rate}
}

type RateVisitRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (h *VisitHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	visits, err := h.list.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_visits")
		return
	}
	httpresp.OK(c, visits)
}

func (h *VisitHandler) Rate(c *gin.Context) {
	var req RateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Rating must be between 1 and 5.")
		return
	}

	userID, _ := middleware.UserID(c)
	v, err := h.rate.Execute(c.Request.Context(), userID, c.Param("id"), req.Rating)
	if err != nil {
		httperr.FromError(c, err, "failed_to_rate_visit")
		return
	}
	httpresp.OK(c, v)
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	ucOffer "github.com/BruksfildServices01/salon-queue/internal/usecase/offer"
)

type OfferHandler struct {
	offers *ucOffer.Offers
}

func NewOfferHandler(offers *ucOffer.Offers) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type OfferRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Discount    *int       `json:"discount"`
	ValidUntil  *time.Time `json:"validUntil"`
	IsActive    *bool      `json:"isActive"`
}

func (r OfferRequest) input() ucOffer.Input {
	return ucOffer.Input{
		Title:       r.Title,
		Description: r.Description,
		Discount:    r.Discount,
		ValidUntil:  r.ValidUntil,
		IsActive:    r.IsActive,
	}
}

func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.offers.ListActive(c.Request.Context(), c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_offers")
		return
	}
	httpresp.OK(c, offers)
}

func (h *OfferHandler) Create(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid offer data.")
		return
	}

	o, err := h.offers.Create(c.Request.Context(), middleware.Actor(c), c.Param("salonId"), req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_offer")
		return
	}
	httpresp.Created(c, o)
}

func (h *OfferHandler) Update(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid offer data.")
		return
	}

	o, err := h.offers.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_offer")
		return
	}
	httpresp.OK(c, o)
}

func (h *OfferHandler) Delete(c *gin.Context) {
	if err := h.offers.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err, "failed_to_delete_offer")
		return
	}
	httpresp.NoContent(c)
}

func (h *OfferHandler) Click(c *gin.Context) {
	if err := h.offers.RecordClick(c.Request.Context(), c.Param("id")); err != nil {
		httperr.FromError(c, err, "failed_to_record_click")
		return
	}
	httpresp.OK(c, gin.H{"message": "Click recorded"})
}

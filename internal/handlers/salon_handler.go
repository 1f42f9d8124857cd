package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/httpresp"
	"github.com/BruksfildServices01/salon-queue/internal/media"
	"github.com/BruksfildServices01/salon-queue/internal/middleware"
	ucSalon "github.com/BruksfildServices01/salon-queue/internal/usecase/salon"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	catalog   *ucSalon.Catalog
	manage    *ucSalon.Manage
	analytics *ucSalon.Analytics
	// nil when object storage is not configured
	upload *ucSalon.UploadImage
}

func NewSalonHandler(
	catalog *ucSalon.Catalog,
	manage *ucSalon.Manage,
	analytics *ucSalon.Analytics,
	upload *ucSalon.UploadImage,
) *SalonHandler {
	return &SalonHandler{
		catalog:   catalog,
		manage:    manage,
		analytics: analytics,
		upload:    upload,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SalonRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Phone          string `json:"phone"`
	OperatingHours string `json:"operatingHours"`
}

func (r SalonRequest) input() ucSalon.SalonInput {
	return ucSalon.SalonInput{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		Phone:          r.Phone,
		OperatingHours: r.OperatingHours,
	}
}

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Duration    int    `json:"duration"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	salons, err := h.catalog.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_salons")
		return
	}
	httpresp.OK(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	salon, err := h.catalog.Detail(c.Request.Context(), c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_salon")
		return
	}
	httpresp.OK(c, salon)
}

func (h *SalonHandler) ListServices(c *gin.Context) {
	services, err := h.manage.ListServices(c.Request.Context(), c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_services")
		return
	}
	httpresp.OK(c, services)
}

// ======================================================
// OWNER
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	var req SalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid salon data.")
		return
	}

	salon, err := h.manage.Create(c.Request.Context(), middleware.Actor(c), req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_salon")
		return
	}
	httpresp.Created(c, salon)
}

func (h *SalonHandler) Mine(c *gin.Context) {
	salons, err := h.manage.MySalons(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_salons")
		return
	}
	httpresp.OK(c, salons)
}

func (h *SalonHandler) Update(c *gin.Context) {
	var req SalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid salon data.")
		return
	}

	salon, err := h.manage.Update(c.Request.Context(), middleware.Actor(c), c.Param("salonId"), req.input())
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_salon")
		return
	}
	httpresp.OK(c, salon)
}

func (h *SalonHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid service data.")
		return
	}

	svc, err := h.manage.CreateService(c.Request.Context(), middleware.Actor(c), c.Param("salonId"), ucSalon.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_service")
		return
	}
	httpresp.Created(c, svc)
}

func (h *SalonHandler) Analytics(c *gin.Context) {
	out, err := h.analytics.Execute(c.Request.Context(), middleware.Actor(c), c.Param("salonId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_analytics")
		return
	}
	httpresp.OK(c, out)
}

// UploadImage expects a multipart form with an "image" file field.
func (h *SalonHandler) UploadImage(c *gin.Context) {
	if h.upload == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "media_disabled", "Image uploads are not configured.")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Missing image file.")
		return
	}
	if fh.Size > media.MaxUploadBytes {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Image is too large.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Unreadable image file.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Unreadable image file.")
		return
	}

	salon, err := h.upload.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.Param("salonId"),
		raw,
		fh.Header.Get("Content-Type"),
	)
	if err != nil {
		httperr.FromError(c, err, "failed_to_upload_image")
		return
	}
	httpresp.OK(c, salon)
}

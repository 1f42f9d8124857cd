package salon

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/media"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// UploadImage stores a new salon picture as WebP and points the salon at it.
type UploadImage struct {
	salons   domain.Repository
	uploader media.Uploader
	audit    *audit.Dispatcher
}

func NewUploadImage(salons domain.Repository, uploader media.Uploader, audit *audit.Dispatcher) *UploadImage {
	return &UploadImage{salons: salons, uploader: uploader, audit: audit}
}

func (uc *UploadImage) Execute(
	ctx context.Context,
	actor user.Actor,
	salonID string,
	raw []byte,
	contentType string,
) (*models.Salon, error) {

	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireManage(s); err != nil {
		return nil, err
	}

	if !media.Allowed(contentType) || len(raw) == 0 || len(raw) > media.MaxUploadBytes {
		return nil, httperr.ErrInvalidInput
	}

	webp, err := media.NormalizeToWebP(raw)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, media.SalonImageKey(s.ID), webp, "image/webp")
	if err != nil {
		zlog.Error().Err(err).Str("salon_id", s.ID).Msg("salon image upload failed")
		return nil, httperr.ErrStoreUnavailable
	}

	s.ImageURL = &url
	if err := uc.salons.UpdateSalon(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  s.ID,
		UserID:   &actor.ID,
		Action:   "salon_image_updated",
		Entity:   "salon",
		EntityID: &s.ID,
		Metadata: map[string]any{"bytes": len(webp)},
	})
	return s, nil
}

package offer

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/metrics"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	Title       string
	Description string
	Discount    *int
	ValidUntil  *time.Time
	IsActive    *bool
}

func (in Input) normalize() (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return in, httperr.ErrInvalidInput
	}
	if in.Discount != nil && (*in.Discount < 0 || *in.Discount > 100) {
		return in, httperr.ErrInvalidInput
	}
	return in, nil
}

// ======================================================
// USE CASE
// ======================================================

// Offers groups the promotion actions. Owner actions need RequireManage on
// the offer's salon. Clicks are public.
type Offers struct {
	offers domain.Repository
	salons salon.Repository
	audit  *audit.Dispatcher
}

func NewOffers(offers domain.Repository, salons salon.Repository, audit *audit.Dispatcher) *Offers {
	return &Offers{offers: offers, salons: salons, audit: audit}
}

func (uc *Offers) ListActive(ctx context.Context, salonID string) ([]models.Offer, error) {
	if _, err := uc.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return uc.offers.ListActiveOffers(ctx, salonID)
}

func (uc *Offers) Create(ctx context.Context, actor user.Actor, salonID string, in Input) (*models.Offer, error) {
	if err := uc.requireManage(ctx, actor, salonID); err != nil {
		return nil, err
	}
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	o := &models.Offer{
		SalonID:     salonID,
		Title:       in.Title,
		Description: in.Description,
		Discount:    in.Discount,
		ValidUntil:  in.ValidUntil,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := uc.offers.CreateOffer(ctx, o); err != nil {
		return nil, err
	}

	uc.dispatch(salonID, actor, "offer_created", o.ID)
	return o, nil
}

func (uc *Offers) Update(ctx context.Context, actor user.Actor, offerID string, in Input) (*models.Offer, error) {
	o, err := uc.offers.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireManage(ctx, actor, o.SalonID); err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	o.Title = in.Title
	o.Description = in.Description
	o.Discount = in.Discount
	o.ValidUntil = in.ValidUntil
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if err := uc.offers.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}

	uc.dispatch(o.SalonID, actor, "offer_updated", o.ID)
	return o, nil
}

func (uc *Offers) Delete(ctx context.Context, actor user.Actor, offerID string) error {
	o, err := uc.offers.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if err := uc.requireManage(ctx, actor, o.SalonID); err != nil {
		return err
	}

	deleted, err := uc.offers.DeleteOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if !deleted {
		return httperr.ErrOfferNotFound
	}

	uc.dispatch(o.SalonID, actor, "offer_deleted", o.ID)
	return nil
}

// RecordClick counts one click. Every call is a distinct click.
func (uc *Offers) RecordClick(ctx context.Context, offerID string) error {
	if err := uc.offers.RecordClick(ctx, offerID); err != nil {
		return err
	}
	metrics.OfferClicks.Inc()
	return nil
}

func (uc *Offers) requireManage(ctx context.Context, actor user.Actor, salonID string) error {
	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return err
	}
	return actor.RequireManage(s)
}

func (uc *Offers) dispatch(salonID string, actor user.Actor, action, offerID string) {
	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &actor.ID,
		Action:   action,
		Entity:   "offer",
		EntityID: &offerID,
	})
}

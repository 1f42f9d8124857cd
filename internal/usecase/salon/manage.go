package salon

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type SalonInput struct {
	Name           string
	Description    string
	Location       string
	Phone          string
	OperatingHours string
}

func (in SalonInput) normalize() (SalonInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	in.OperatingHours = strings.TrimSpace(in.OperatingHours)
	if in.Name == "" || in.Location == "" {
		return in, httperr.ErrInvalidInput
	}
	if strings.TrimSpace(in.Phone) != "" {
		if in.Phone = validators.NormalizePhone(in.Phone); in.Phone == "" {
			return in, httperr.ErrInvalidInput
		}
	}
	return in, nil
}

type ServiceInput struct {
	Name        string
	Description string
	Price       int
	Duration    int
}

// ======================================================
// USE CASE
// ======================================================

// Manage holds the owner-side salon and service actions.
type Manage struct {
	salons domain.Repository
	audit  *audit.Dispatcher
}

func NewManage(salons domain.Repository, audit *audit.Dispatcher) *Manage {
	return &Manage{salons: salons, audit: audit}
}

func (uc *Manage) Create(ctx context.Context, actor user.Actor, in SalonInput) (*models.Salon, error) {
	if !actor.IsAdmin {
		return nil, httperr.ErrForbidden
	}
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	ownerID := actor.ID
	s := &models.Salon{
		OwnerID:        &ownerID,
		Name:           in.Name,
		Description:    in.Description,
		Location:       in.Location,
		Phone:          in.Phone,
		OperatingHours: in.OperatingHours,
	}
	if err := uc.salons.CreateSalon(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  s.ID,
		UserID:   &ownerID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: &s.ID,
	})
	return s, nil
}

func (uc *Manage) Update(ctx context.Context, actor user.Actor, salonID string, in SalonInput) (*models.Salon, error) {
	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireManage(s); err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}

	s.Name = in.Name
	s.Description = in.Description
	s.Location = in.Location
	s.Phone = in.Phone
	if in.OperatingHours != "" {
		s.OperatingHours = in.OperatingHours
	}
	if err := uc.salons.UpdateSalon(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  s.ID,
		UserID:   &actor.ID,
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: &s.ID,
	})
	return s, nil
}

func (uc *Manage) MySalons(ctx context.Context, actor user.Actor) ([]models.Salon, error) {
	return uc.salons.ListSalonsByOwner(ctx, actor.ID)
}

func (uc *Manage) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	if _, err := uc.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}
	return uc.salons.ListServices(ctx, salonID)
}

func (uc *Manage) CreateService(ctx context.Context, actor user.Actor, salonID string, in ServiceInput) (*models.Service, error) {
	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireManage(s); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price < 0 || in.Duration <= 0 {
		return nil, httperr.ErrInvalidInput
	}

	svc := &models.Service{
		SalonID:     s.ID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Duration:    in.Duration,
	}
	if err := uc.salons.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  s.ID,
		UserID:   &actor.ID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})
	return svc, nil
}

package visit

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

const (
	unknownSalon   = "Unknown Salon"
	unknownService = "Unknown Service"
)

// ListVisits returns a customer's history, newest first.
type ListVisits struct {
	visits domain.Repository
	salons salon.Repository
}

func NewListVisits(visits domain.Repository, salons salon.Repository) *ListVisits {
	return &ListVisits{visits: visits, salons: salons}
}

func (uc *ListVisits) Execute(ctx context.Context, userID string) ([]dto.VisitDTO, error) {
	visits, err := uc.visits.ListVisitsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	salonNames := map[string]string{}
	out := make([]dto.VisitDTO, 0, len(visits))
	for _, v := range visits {
		name, ok := salonNames[v.SalonID]
		if !ok {
			name = unknownSalon
			if s, err := uc.salons.GetSalon(ctx, v.SalonID); err == nil {
				name = s.Name
			} else if !httperr.IsBusiness(err, httperr.CodeSalonNotFound) {
				return nil, err
			}
			salonNames[v.SalonID] = name
		}

		serviceName := unknownService
		if svc, err := uc.salons.GetService(ctx, v.SalonID, v.ServiceID); err == nil {
			serviceName = svc.Name
		} else if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
			return nil, err
		}

		out = append(out, dto.VisitDTO{Visit: v, SalonName: name, ServiceName: serviceName})
	}
	return out, nil
}

// RateVisit sets the only mutable field of a visit.
type RateVisit struct {
	visits domain.Repository
}

func NewRateVisit(visits domain.Repository) *RateVisit {
	return &RateVisit{visits: visits}
}

func (uc *RateVisit) Execute(ctx context.Context, userID, visitID string, rating int) (*models.Visit, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	v, err := uc.visits.GetVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}
	// someone else's visit is reported as missing
	if v.UserID == nil || *v.UserID != userID {
		return nil, httperr.ErrVisitNotFound
	}

	return uc.visits.SetVisitRating(ctx, visitID, rating)
}

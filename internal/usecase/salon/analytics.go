package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
)

// Placeholder series shown on the dashboard until real aggregation exists.
var (
	staticAvgWaitTime  = 22
	staticCustomerFlow = []int{12, 19, 15, 25, 22, 30, 18}
	staticPeakHours    = []int{3, 5, 8, 12, 15, 18, 22, 20, 15, 8}
	staticPopularity   = []dto.ServiceShare{
		{Name: "Haircut", Count: 35},
		{Name: "Color", Count: 25},
		{Name: "Manicure", Count: 20},
		{Name: "Facial", Count: 15},
		{Name: "Other", Count: 5},
	}
)

type Analytics struct {
	salons domain.Repository
	visits visit.Repository
	offers offer.Repository
}

func NewAnalytics(salons domain.Repository, visits visit.Repository, offers offer.Repository) *Analytics {
	return &Analytics{salons: salons, visits: visits, offers: offers}
}

func (uc *Analytics) Execute(ctx context.Context, actor user.Actor, salonID string) (*dto.AnalyticsDTO, error) {
	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := actor.RequireManage(s); err != nil {
		return nil, err
	}

	totals, err := uc.visits.SalonVisitTotals(ctx, salonID)
	if err != nil {
		return nil, err
	}
	clicks, err := uc.offers.SumOfferClicks(ctx, salonID)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsDTO{
		TotalCustomers:    totals.Count,
		Revenue:           totals.Revenue,
		AvgWaitTime:       staticAvgWaitTime,
		OfferClicks:       clicks,
		CustomerFlow:      append([]int(nil), staticCustomerFlow...),
		ServicePopularity: append([]dto.ServiceShare(nil), staticPopularity...),
		PeakHours:         append([]int(nil), staticPeakHours...),
	}, nil
}

package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	"github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/dto"
)

const listedServices = 3

// Catalog serves the public salon pages.
type Catalog struct {
	salons domain.Repository
	offers offer.Repository
	queue  queue.Store
}

func NewCatalog(salons domain.Repository, offers offer.Repository, queue queue.Store) *Catalog {
	return &Catalog{salons: salons, offers: offers, queue: queue}
}

func (uc *Catalog) List(ctx context.Context) ([]dto.SalonListItemDTO, error) {
	salons, err := uc.salons.ListSalons(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SalonListItemDTO, 0, len(salons))
	for _, s := range salons {
		services, err := uc.salons.ListServices(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		offers, err := uc.offers.ListActiveOffers(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		waiting, err := uc.queue.CountWaiting(ctx, s.ID)
		if err != nil {
			return nil, err
		}

		item := dto.SalonListItemDTO{
			Salon:      s,
			Services:   make([]string, 0, listedServices),
			QueueCount: waiting,
		}
		for i := 0; i < len(services) && i < listedServices; i++ {
			item.Services = append(item.Services, services[i].Name)
		}
		if len(offers) > 0 {
			title := offers[0].Title
			item.CurrentOffer = &title
			item.CurrentOfferDiscount = offers[0].Discount
		}

		out = append(out, item)
	}
	return out, nil
}

func (uc *Catalog) Detail(ctx context.Context, salonID string) (*dto.SalonDetailDTO, error) {
	s, err := uc.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	services, err := uc.salons.ListServices(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	offers, err := uc.offers.ListActiveOffers(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	waiting, err := uc.queue.CountWaiting(ctx, s.ID)
	if err != nil {
		return nil, err
	}

	return &dto.SalonDetailDTO{
		Salon:      *s,
		Services:   services,
		Offers:     offers,
		QueueCount: waiting,
	}, nil
}

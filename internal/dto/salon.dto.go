package dto

import "github.com/BruksfildServices01/salon-queue/internal/models"

type SalonListItemDTO struct {
	models.Salon

	Services             []string `json:"services"`
	CurrentOffer         *string  `json:"currentOffer"`
	CurrentOfferDiscount *int     `json:"currentOfferDiscount"`
	QueueCount           int      `json:"queueCount"`
}

type SalonDetailDTO struct {
	models.Salon

	Services   []models.Service `json:"services"`
	Offers     []models.Offer   `json:"offers"`
	QueueCount int              `json:"queueCount"`
}

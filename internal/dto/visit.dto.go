package dto

import "github.com/BruksfildServices01/salon-queue/internal/models"

type VisitDTO struct {
	models.Visit

	SalonName   string `json:"salonName"`
	ServiceName string `json:"serviceName"`
}

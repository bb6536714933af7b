package handler

import (
	"time"

	"amparo/internal/benefit/models"
)

type BenefitResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	CategoryLabel    string    `json:"category_label"`
	Periodicity      string    `json:"periodicity"`
	PeriodicityLabel string    `json:"periodicity_label"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListResponse struct {
	Benefits []*BenefitResponse `json:"benefits"`
	Count    int                `json:"count"`
}

func toResponse(b *models.Benefit) *BenefitResponse {
	return &BenefitResponse{
		ID:               b.ID.String(),
		Name:             b.Name,
		Category:         string(b.Category),
		CategoryLabel:    models.Label(b.Category),
		Periodicity:      string(b.Periodicity),
		PeriodicityLabel: models.Label(b.Periodicity),
		Active:           b.Active,
		CreatedAt:        b.CreatedAt,
	}
}

func toListResponse(list []*models.Benefit) *ListResponse {
	out := make([]*BenefitResponse, len(list))
	for i, b := range list {
		out[i] = toResponse(b)
	}
	return &ListResponse{Benefits: out, Count: len(out)}
}

package handler

import (
	"time"

	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
)

// AssignmentResponse carries the stored flag next to the state derived for
// today. The two differ when the record has drifted since its last save.
type AssignmentResponse struct {
	ID            string    `json:"id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	BenefitID     string    `json:"benefit_id"`
	Active        bool      `json:"active"`
	State         string    `json:"state"`
	StartDate     id.Date   `json:"start_date"`
	EndDate       *id.Date  `json:"end_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EndResponse struct {
	Assignment   *AssignmentResponse `json:"assignment"`
	AlreadyEnded bool                `json:"already_ended"`
}

type ListResponse struct {
	Assignments []*AssignmentResponse `json:"assignments"`
	Count       int                   `json:"count"`
}

func toResponse(a *models.Assignment, today id.Date) *AssignmentResponse {
	return &AssignmentResponse{
		ID:            a.ID.String(),
		BeneficiaryID: a.BeneficiaryID.String(),
		BenefitID:     a.BenefitID.String(),
		Active:        a.Active,
		State:         string(a.State(today)),
		StartDate:     a.StartDate,
		EndDate:       a.EndDate,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toListResponse(list []*models.Assignment, today id.Date) *ListResponse {
	out := make([]*AssignmentResponse, len(list))
	for i, a := range list {
		out[i] = toResponse(a, today)
	}
	return &ListResponse{Assignments: out, Count: len(out)}
}

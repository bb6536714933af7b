package handler

import (
	"time"

	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
)

type BatchResponse struct {
	ID           string        `json:"id"`
	BenefitID    string        `json:"benefit_id"`
	DeliveryDate id.Date       `json:"delivery_date"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Totals       models.Totals `json:"totals"`
}

type ItemResponse struct {
	ID              string `json:"id"`
	AssignmentID    string `json:"assignment_id"`
	BeneficiaryID   string `json:"beneficiary_id,omitempty"`
	BeneficiaryCode string `json:"beneficiary_code,omitempty"`
	BeneficiaryName string `json:"beneficiary_name"`
	Delivered       bool   `json:"delivered"`
}

type DetailResponse struct {
	*BatchResponse
	Items []*ItemResponse `json:"items"`
}

type ListResponse struct {
	Batches []*BatchResponse `json:"batches"`
	Count   int              `json:"count"`
}

type ChecklistResponse struct {
	Changed int `json:"changed"`
}

func toBatchResponse(b *models.Batch, totals models.Totals) *BatchResponse {
	return &BatchResponse{
		ID:           b.ID.String(),
		BenefitID:    b.BenefitID.String(),
		DeliveryDate: b.DeliveryDate,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		Totals:       totals,
	}
}

func toItemResponse(it models.Item, rec models.Recipient) *ItemResponse {
	resp := &ItemResponse{
		ID:              it.ID.String(),
		AssignmentID:    it.AssignmentID.String(),
		BeneficiaryCode: rec.Code,
		BeneficiaryName: rec.Name,
		Delivered:       it.Delivered,
	}
	if !rec.BeneficiaryID.IsNil() {
		resp.BeneficiaryID = rec.BeneficiaryID.String()
	}
	return resp
}

func toDetailResponse(d *models.Detail) *DetailResponse {
	items := make([]*ItemResponse, len(d.Items))
	for i, v := range d.Items {
		items[i] = toItemResponse(v.Item, v.Recipient)
	}
	return &DetailResponse{BatchResponse: toBatchResponse(d.Batch, d.Totals), Items: items}
}

func toListResponse(list []models.Summary) *ListResponse {
	out := make([]*BatchResponse, len(list))
	for i, s := range list {
		out[i] = toBatchResponse(s.Batch, s.Totals)
	}
	return &ListResponse{Batches: out, Count: len(out)}
}

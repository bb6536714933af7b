package handler

import (
	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// BatchRequest is the body of POST and PUT /v1/batches. On PUT benefit_id
// may be omitted; when present it must match the stored one.
type BatchRequest struct {
	BenefitID    string `json:"benefit_id"`
	DeliveryDate string `json:"delivery_date"`
	Notes        string `json:"notes"`

	fields models.Fields
}

func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var f models.Fields
	if r.BenefitID != "" {
		benefitID, err := id.ParseBenefitID(r.BenefitID)
		if err != nil {
			return dErrors.WrapField(err, "benefit_id", "benefit_id must be a valid id")
		}
		f.BenefitID = benefitID
	}
	if r.DeliveryDate == "" {
		return dErrors.NewField("delivery_date", "delivery_date is required")
	}
	day, err := id.ParseDate(r.DeliveryDate)
	if err != nil {
		return dErrors.WrapField(err, "delivery_date", "delivery_date must be a date in YYYY-MM-DD format")
	}
	f.DeliveryDate = day
	f.Notes = r.Notes
	r.fields = f
	return nil
}

func (r *BatchRequest) Fields() models.Fields {
	return r.fields
}

// ChecklistRequest lists the items that are delivered after the write.
// Every other item of the batch becomes pending.
type ChecklistRequest struct {
	Delivered []string `json:"delivered"`

	ids []id.ItemID
}

func (r *ChecklistRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	ids := make([]id.ItemID, 0, len(r.Delivered))
	for _, raw := range r.Delivered {
		itemID, err := id.ParseItemID(raw)
		if err != nil {
			return dErrors.WrapField(err, "delivered", "delivered must list item ids")
		}
		ids = append(ids, itemID)
	}
	r.ids = ids
	return nil
}

func (r *ChecklistRequest) ItemIDs() []id.ItemID {
	return r.ids
}

// ItemRequest is the body of PUT /v1/batches/{id}/items/{itemID}.
type ItemRequest struct {
	Delivered *bool `json:"delivered"`
}

func (r *ItemRequest) Validate() error {
	if r == nil || r.Delivered == nil {
		return dErrors.NewField("delivered", "delivered is required")
	}
	return nil
}

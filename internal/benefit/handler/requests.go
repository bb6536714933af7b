package handler

import (
	"amparo/internal/benefit/models"
	dErrors "amparo/pkg/domain-errors"
)

// BenefitRequest is the body of POST and PUT /v1/benefits. Active defaults
// to true when omitted.
type BenefitRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Periodicity string `json:"periodicity"`
	Active      *bool  `json:"active"`

	fields models.Fields
}

func (r *BenefitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return err
	}
	periodicity, err := models.ParsePeriodicity(r.Periodicity)
	if err != nil {
		return err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	r.fields = models.Fields{
		Name:        r.Name,
		Category:    category,
		Periodicity: periodicity,
		Active:      active,
	}
	return nil
}

func (r *BenefitRequest) Fields() models.Fields {
	return r.fields
}

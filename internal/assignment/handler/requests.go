package handler

import (
	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// AssignmentRequest is the body of POST and PUT /v1/assignments. On PUT the
// beneficiary_id is ignored.
type AssignmentRequest struct {
	BeneficiaryID string `json:"beneficiary_id"`
	BenefitID     string `json:"benefit_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`

	draft models.Draft
}

func (r *AssignmentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var d models.Draft
	var err error
	if r.BeneficiaryID != "" {
		if d.BeneficiaryID, err = id.ParseBeneficiaryID(r.BeneficiaryID); err != nil {
			return dErrors.WrapField(err, "beneficiary_id", "beneficiary_id must be a valid id")
		}
	}
	if r.BenefitID == "" {
		return dErrors.NewField("benefit_id", "benefit_id is required")
	}
	if d.BenefitID, err = id.ParseBenefitID(r.BenefitID); err != nil {
		return dErrors.WrapField(err, "benefit_id", "benefit_id must be a valid id")
	}
	if d.StartDate, err = id.ParseOptionalDate(r.StartDate); err != nil {
		return dErrors.WrapField(err, "start_date", "start_date must be a date in YYYY-MM-DD format")
	}
	if d.EndDate, err = id.ParseOptionalDate(r.EndDate); err != nil {
		return dErrors.WrapField(err, "end_date", "end_date must be a date in YYYY-MM-DD format")
	}
	r.draft = d
	return nil
}

func (r *AssignmentRequest) Draft() models.Draft {
	return r.draft
}

// requireBeneficiary is checked on create only.
func (r *AssignmentRequest) requireBeneficiary() error {
	if r.draft.BeneficiaryID.IsNil() {
		return dErrors.NewField("beneficiary_id", "beneficiary_id is required")
	}
	return nil
}

// EndRequest is the optional body of POST /v1/assignments/{id}/end. An
// empty body ends the assignment today.
type EndRequest struct {
	EndDate string `json:"end_date"`

	endDate *id.Date
}

func (r *EndRequest) Validate() error {
	if r == nil {
		return nil
	}
	end, err := id.ParseOptionalDate(r.EndDate)
	if err != nil {
		return dErrors.WrapField(err, "end_date", "end_date must be a date in YYYY-MM-DD format")
	}
	r.endDate = end
	return nil
}

func (r *EndRequest) End() *id.Date {
	return r.endDate
}

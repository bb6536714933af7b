package adapters

import (
	"context"

	assignmentModels "amparo/internal/assignment/models"
	beneficiaryModels "amparo/internal/beneficiary/models"
	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
)

type AssignmentReader interface {
	FindByIDs(ctx context.Context, ids []id.AssignmentID) ([]*assignmentModels.Assignment, error)
}

type BeneficiaryReader interface {
	FindByIDs(ctx context.Context, ids []id.BeneficiaryID) ([]*beneficiaryModels.Beneficiary, error)
}

// Recipients resolves delivery items to beneficiaries through the ledger.
type Recipients struct {
	assignments   AssignmentReader
	beneficiaries BeneficiaryReader
}

func NewRecipients(assignments AssignmentReader, beneficiaries BeneficiaryReader) *Recipients {
	return &Recipients{assignments: assignments, beneficiaries: beneficiaries}
}

// Recipients maps each known assignment id to its beneficiary.
func (r *Recipients) Recipients(ctx context.Context, ids []id.AssignmentID) (map[id.AssignmentID]models.Recipient, error) {
	if len(ids) == 0 {
		return map[id.AssignmentID]models.Recipient{}, nil
	}
	assignments, err := r.assignments.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	owner := make(map[id.AssignmentID]id.BeneficiaryID, len(assignments))
	beneficiaryIDs := make([]id.BeneficiaryID, 0, len(assignments))
	seen := make(map[id.BeneficiaryID]bool)
	for _, a := range assignments {
		owner[a.ID] = a.BeneficiaryID
		if !seen[a.BeneficiaryID] {
			seen[a.BeneficiaryID] = true
			beneficiaryIDs = append(beneficiaryIDs, a.BeneficiaryID)
		}
	}

	beneficiaries, err := r.beneficiaries.FindByIDs(ctx, beneficiaryIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[id.BeneficiaryID]*beneficiaryModels.Beneficiary, len(beneficiaries))
	for _, b := range beneficiaries {
		byID[b.ID] = b
	}

	out := make(map[id.AssignmentID]models.Recipient, len(owner))
	for assignmentID, beneficiaryID := range owner {
		rec := models.Recipient{BeneficiaryID: beneficiaryID}
		if b, ok := byID[beneficiaryID]; ok {
			rec.Code = b.Code
			rec.Name = b.Name
		}
		out[assignmentID] = rec
	}
	return out, nil
}

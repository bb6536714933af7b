package adapters

import (
	"context"

	beneficiaryModels "amparo/internal/beneficiary/models"
	benefitModels "amparo/internal/benefit/models"
	id "amparo/pkg/domain"
)

// BeneficiaryReader is the part of the beneficiary store the ledger needs.
type BeneficiaryReader interface {
	FindByID(ctx context.Context, beneficiaryID id.BeneficiaryID) (*beneficiaryModels.Beneficiary, error)
	FindByIDs(ctx context.Context, ids []id.BeneficiaryID) ([]*beneficiaryModels.Beneficiary, error)
}

type BenefitReader interface {
	FindByID(ctx context.Context, benefitID id.BenefitID) (*benefitModels.Benefit, error)
}

// BeneficiaryDirectory adapts a beneficiary store to the ledger's status
// questions. Store errors, including sentinel.ErrNotFound, pass through.
type BeneficiaryDirectory struct {
	store BeneficiaryReader
}

func NewBeneficiaryDirectory(store BeneficiaryReader) *BeneficiaryDirectory {
	return &BeneficiaryDirectory{store: store}
}

func (d *BeneficiaryDirectory) IsActive(ctx context.Context, beneficiaryID id.BeneficiaryID) (bool, error) {
	b, err := d.store.FindByID(ctx, beneficiaryID)
	if err != nil {
		return false, err
	}
	return b.IsActive(), nil
}

// FilterActive returns the subset of ids whose beneficiary is ACTIVE. Unknown
// ids are absent from the result.
func (d *BeneficiaryDirectory) FilterActive(ctx context.Context, ids []id.BeneficiaryID) (map[id.BeneficiaryID]bool, error) {
	list, err := d.store.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[id.BeneficiaryID]bool, len(list))
	for _, b := range list {
		if b.IsActive() {
			out[b.ID] = true
		}
	}
	return out, nil
}

// BenefitDirectory adapts a benefit store to the ledger's status questions.
type BenefitDirectory struct {
	store BenefitReader
}

func NewBenefitDirectory(store BenefitReader) *BenefitDirectory {
	return &BenefitDirectory{store: store}
}

func (d *BenefitDirectory) IsActive(ctx context.Context, benefitID id.BenefitID) (bool, error) {
	b, err := d.store.FindByID(ctx, benefitID)
	if err != nil {
		return false, err
	}
	return b.IsActive(), nil
}

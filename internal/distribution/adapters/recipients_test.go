package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignmentModels "amparo/internal/assignment/models"
	assignmentStore "amparo/internal/assignment/store"
	beneficiaryModels "amparo/internal/beneficiary/models"
	beneficiaryStore "amparo/internal/beneficiary/store"
	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
)

func TestRecipients(t *testing.T) {
	ctx := context.Background()
	beneficiaries := beneficiaryStore.NewInMemoryStore()
	assignments := assignmentStore.NewInMemoryStore()

	maria := &beneficiaryModels.Beneficiary{ID: id.BeneficiaryID(uuid.New()), Code: "A-20240510-00AA", Name: "Maria"}
	require.NoError(t, beneficiaries.Create(ctx, maria))

	grant := func(beneficiaryID id.BeneficiaryID) id.AssignmentID {
		a := &assignmentModels.Assignment{
			ID:            id.AssignmentID(uuid.New()),
			BeneficiaryID: beneficiaryID,
			BenefitID:     id.BenefitID(uuid.New()),
			StartDate:     id.Date{Year: 2024, Month: time.May, Day: 1},
		}
		require.NoError(t, assignments.Create(ctx, a))
		return a.ID
	}
	first, second := grant(maria.ID), grant(maria.ID)
	orphanOwner := id.BeneficiaryID(uuid.New())
	orphan := grant(orphanOwner)
	unknown := id.AssignmentID(uuid.New())

	got, err := NewRecipients(assignments, beneficiaries).Recipients(ctx, []id.AssignmentID{first, second, orphan, unknown})
	require.NoError(t, err)

	want := models.Recipient{BeneficiaryID: maria.ID, Code: maria.Code, Name: "Maria"}
	assert.Equal(t, want, got[first])
	assert.Equal(t, want, got[second])
	assert.Equal(t, models.Recipient{BeneficiaryID: orphanOwner}, got[orphan])
	assert.NotContains(t, got, unknown)
}

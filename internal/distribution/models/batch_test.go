package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

var now = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newItemID() id.ItemID { return id.ItemID(uuid.New()) }

func TestNewBatch(t *testing.T) {
	benefitID := id.BenefitID(uuid.New())
	day := id.Date{Year: 2024, Month: time.May, Day: 10}

	tests := []struct {
		name   string
		fields Fields
		field  string
	}{
		{"missing benefit", Fields{DeliveryDate: day}, "benefit_id"},
		{"missing date", Fields{BenefitID: benefitID}, "delivery_date"},
		{"notes too long", Fields{BenefitID: benefitID, DeliveryDate: day, Notes: strings.Repeat("x", 501)}, "notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBatch(id.BatchID(uuid.New()), tt.fields, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.field, dErrors.FieldOf(err))
		})
	}

	b, err := NewBatch(id.BatchID(uuid.New()), Fields{BenefitID: benefitID, DeliveryDate: day, Notes: "  bring ID  "}, now)
	require.NoError(t, err)
	assert.Equal(t, "bring ID", b.Notes)
	assert.Equal(t, now, b.CreatedAt)
}

func TestReviseKeepsBenefit(t *testing.T) {
	b := &Batch{ID: id.BatchID(uuid.New()), BenefitID: id.BenefitID(uuid.New()), DeliveryDate: id.Date{Year: 2024, Month: time.May, Day: 10}}
	moved := id.Date{Year: 2024, Month: time.May, Day: 17}

	next, err := b.Revise(Fields{DeliveryDate: moved, Notes: "moved"}, now)
	require.NoError(t, err)
	assert.Equal(t, moved, next.DeliveryDate)
	assert.Equal(t, b.BenefitID, next.BenefitID)
	assert.Equal(t, 10, b.DeliveryDate.Day, "original untouched")

	_, err = b.Revise(Fields{BenefitID: id.BenefitID(uuid.New()), DeliveryDate: moved}, now)
	assert.Equal(t, "benefit_id", dErrors.FieldOf(err))
}

func TestSnapshotSkipsRepeats(t *testing.T) {
	batchID := id.BatchID(uuid.New())
	a1, a2 := id.AssignmentID(uuid.New()), id.AssignmentID(uuid.New())

	items := Snapshot(batchID, []id.AssignmentID{a1, a2, a1}, newItemID, now)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, batchID, it.BatchID)
		assert.False(t, it.Delivered)
	}
	assert.Empty(t, Snapshot(batchID, nil, newItemID, now))
}

func TestPlanChecklist(t *testing.T) {
	delivered := Item{ID: newItemID(), Delivered: true}
	pending := Item{ID: newItemID()}
	stays := Item{ID: newItemID(), Delivered: true}
	items := []Item{delivered, pending, stays}

	plan := PlanChecklist(items, []id.ItemID{pending.ID, stays.ID, newItemID()})
	assert.Equal(t, []id.ItemID{pending.ID}, plan.Deliver)
	assert.Equal(t, []id.ItemID{delivered.ID}, plan.Undeliver)
	assert.Equal(t, 2, plan.Changes())

	t.Run("no changes when the checked set matches", func(t *testing.T) {
		plan := PlanChecklist(items, []id.ItemID{delivered.ID, stays.ID})
		assert.Zero(t, plan.Changes())
	})
}

func TestTotals(t *testing.T) {
	items := []Item{{Delivered: true}, {}, {}}
	assert.Equal(t, Totals{Total: 3, Delivered: 1, Pending: 2}, TotalsOf(items))
	assert.Equal(t, Totals{}, TotalsOf(nil))
}

func TestListFilter(t *testing.T) {
	benefitID := id.BenefitID(uuid.New())
	b := &Batch{BenefitID: benefitID, DeliveryDate: id.Date{Year: 2024, Month: time.May, Day: 10}}
	from := id.Date{Year: 2024, Month: time.May, Day: 10}
	to := id.Date{Year: 2024, Month: time.May, Day: 9}

	assert.True(t, ListFilter{}.Matches(b))
	assert.True(t, ListFilter{From: &from, BenefitID: benefitID}.Matches(b), "from is inclusive")
	assert.False(t, ListFilter{To: &to}.Matches(b))
	assert.False(t, ListFilter{BenefitID: id.BenefitID(uuid.New())}.Matches(b))
}

func TestByRecipientName(t *testing.T) {
	a := ItemView{Item: Item{ID: newItemID()}, Recipient: Recipient{Name: "ana"}}
	b := ItemView{Item: Item{ID: newItemID()}, Recipient: Recipient{Name: "Bruno"}}
	assert.Negative(t, ByRecipientName(a, b))
	assert.Positive(t, ByRecipientName(b, a))
}

// Package models holds distribution batches and their delivery checklist.
package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// Storage constraint names.
const (
	ConstraintBatchPerDay = "batches_benefit_id_delivery_date_key"
	ConstraintItemPerPair = "delivery_items_batch_id_assignment_id_key"
)

const maxNotesLength = 500

// ErrBatchExists is reported on the date field when a batch for the same
// benefit and day is already stored.
var ErrBatchExists = dErrors.NewField("delivery_date", "a batch already exists for this benefit on this date")

// Batch is a dated delivery of one benefit.
type Batch struct {
	ID           id.BatchID
	BenefitID    id.BenefitID
	DeliveryDate id.Date
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fields are the operator-editable attributes of a batch.
type Fields struct {
	BenefitID    id.BenefitID
	DeliveryDate id.Date
	Notes        string
}

func (f Fields) validate() error {
	if f.DeliveryDate.IsZero() {
		return dErrors.NewField("delivery_date", "delivery_date is required")
	}
	if utf8.RuneCountInString(f.Notes) > maxNotesLength {
		return dErrors.NewField("notes", "notes must be at most 500 characters")
	}
	return nil
}

// NewBatch validates f and builds a batch.
func NewBatch(batchID id.BatchID, f Fields, now time.Time) (*Batch, error) {
	if f.BenefitID.IsNil() {
		return nil, dErrors.NewField("benefit_id", "benefit_id is required")
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &Batch{
		ID:           batchID,
		BenefitID:    f.BenefitID,
		DeliveryDate: f.DeliveryDate,
		Notes:        strings.TrimSpace(f.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Revise returns a copy with the date and notes of f applied. A batch keeps
// its benefit for life; f.BenefitID may be nil or equal to the current one.
func (b *Batch) Revise(f Fields, now time.Time) (*Batch, error) {
	if !f.BenefitID.IsNil() && f.BenefitID != b.BenefitID {
		return nil, dErrors.NewField("benefit_id", "the benefit of a batch cannot be changed")
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	next := *b
	next.DeliveryDate = f.DeliveryDate
	next.Notes = strings.TrimSpace(f.Notes)
	next.UpdatedAt = now
	return &next, nil
}

// Item is one checklist row: an assignment that should receive the batch.
type Item struct {
	ID           id.ItemID
	BatchID      id.BatchID
	AssignmentID id.AssignmentID
	Delivered    bool
	CreatedAt    time.Time
}

// Snapshot builds one undelivered item per assignment, skipping repeats.
func Snapshot(batchID id.BatchID, assignments []id.AssignmentID, newID func() id.ItemID, now time.Time) []Item {
	seen := make(map[id.AssignmentID]struct{}, len(assignments))
	items := make([]Item, 0, len(assignments))
	for _, assignmentID := range assignments {
		if _, dup := seen[assignmentID]; dup {
			continue
		}
		seen[assignmentID] = struct{}{}
		items = append(items, Item{
			ID:           newID(),
			BatchID:      batchID,
			AssignmentID: assignmentID,
			CreatedAt:    now,
		})
	}
	return items
}

// Totals counts the checklist of a batch.
type Totals struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
}

func NewTotals(total, delivered int) Totals {
	return Totals{Total: total, Delivered: delivered, Pending: total - delivered}
}

func TotalsOf(items []Item) Totals {
	delivered := 0
	for _, it := range items {
		if it.Delivered {
			delivered++
		}
	}
	return NewTotals(len(items), delivered)
}

// ChecklistPlan lists the items whose delivered flag must flip so that
// exactly the checked items end up delivered.
type ChecklistPlan struct {
	Deliver   []id.ItemID
	Undeliver []id.ItemID
}

func (p ChecklistPlan) Changes() int {
	return len(p.Deliver) + len(p.Undeliver)
}

// PlanChecklist compares the stored items with the checked set. Checked ids
// that are not items of the batch are ignored.
func PlanChecklist(items []Item, checked []id.ItemID) ChecklistPlan {
	want := make(map[id.ItemID]bool, len(checked))
	for _, itemID := range checked {
		want[itemID] = true
	}
	var plan ChecklistPlan
	for _, it := range items {
		switch delivered := want[it.ID]; {
		case delivered && !it.Delivered:
			plan.Deliver = append(plan.Deliver, it.ID)
		case !delivered && it.Delivered:
			plan.Undeliver = append(plan.Undeliver, it.ID)
		}
	}
	return plan
}

// Recipient identifies who an item is handed to.
type Recipient struct {
	BeneficiaryID id.BeneficiaryID
	Code          string
	Name          string
}

// ItemView is an item joined with its recipient for display.
type ItemView struct {
	Item
	Recipient Recipient
}

// ByRecipientName orders item views by beneficiary name, case-insensitive,
// then by item id for a stable order.
func ByRecipientName(a, b ItemView) int {
	if c := strings.Compare(strings.ToLower(a.Recipient.Name), strings.ToLower(b.Recipient.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// Detail is a batch with its checklist and totals.
type Detail struct {
	Batch  *Batch
	Items  []ItemView
	Totals Totals
}

// Summary is a batch with its totals, as listed.
type Summary struct {
	Batch  *Batch
	Totals Totals
}

// ListFilter narrows batch listings. Zero values match everything.
type ListFilter struct {
	From      *id.Date
	To        *id.Date
	BenefitID id.BenefitID
}

func (f ListFilter) Matches(b *Batch) bool {
	if f.From != nil && b.DeliveryDate.Before(*f.From) {
		return false
	}
	if f.To != nil && b.DeliveryDate.After(*f.To) {
		return false
	}
	return f.BenefitID.IsNil() || f.BenefitID == b.BenefitID
}

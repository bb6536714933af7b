package models

import (
	"time"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// ConstraintOneActive is the partial unique index allowing a single active
// assignment per (beneficiary, benefit) pair.
const ConstraintOneActive = "assignments_one_active_per_pair"

// State is the validity of an assignment on a given day. It is derived from
// the dates and never stored.
type State string

const (
	StatePending State = "PENDING"
	StateActive  State = "ACTIVE"
	StateEnded   State = "ENDED"
)

// StateOn derives the state of a window [start, end) on today.
func StateOn(start id.Date, end *id.Date, today id.Date) State {
	switch {
	case end != nil && !end.After(today):
		return StateEnded
	case start.After(today):
		return StatePending
	default:
		return StateActive
	}
}

// Assignment grants a benefit to a beneficiary for a time window.
//
// Invariants:
//   - EndDate, when set, is not before StartDate
//   - Active equals StateOn(StartDate, EndDate, day of last save) == ACTIVE
//   - At most one Active assignment exists per (BeneficiaryID, BenefitID)
//   - BeneficiaryID never changes after creation
//
// Active is recomputed by Recompute on every save, in the same transaction
// as the write. Nothing recomputes it when the calendar moves on: a
// future-dated assignment keeps Active=false until it is saved again after
// its start date, and an assignment whose end date passes stays Active until
// touched. That drift is accepted; there is no background job.
type Assignment struct {
	ID            id.AssignmentID
	BeneficiaryID id.BeneficiaryID
	BenefitID     id.BenefitID
	Active        bool
	StartDate     id.Date
	EndDate       *id.Date
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// State reports the validity on today, independent of the stored flag.
func (a *Assignment) State(today id.Date) State {
	return StateOn(a.StartDate, a.EndDate, today)
}

// Recompute sets Active from the dates. Call it on every save.
func (a *Assignment) Recompute(today id.Date) {
	a.Active = a.State(today) == StateActive
}

// Draft carries the user-supplied fields of a create or update. A nil
// StartDate means today.
type Draft struct {
	BeneficiaryID id.BeneficiaryID
	BenefitID     id.BenefitID
	StartDate     *id.Date
	EndDate       *id.Date
}

// Eligibility is the cross-entity context validation needs. The service
// loads it inside the saving transaction.
type Eligibility struct {
	BeneficiaryActive bool
	BenefitActive     bool
	// DuplicateActive is set when another assignment for the same pair is
	// currently active.
	DuplicateActive bool
}

// Change describes the save being validated.
type Change struct {
	// Previous is nil for a create.
	Previous *Assignment
	Next     *Assignment
	Today    id.Date
}

// live reports whether the assignment is or will become active: anything
// not already ended.
func live(a *Assignment, today id.Date) bool {
	return a.State(today) != StateEnded
}

// Validate applies the eligibility rules to a save. It runs before
// Recompute and rejects the whole save on the first failure.
func (c Change) Validate(e Eligibility) error {
	next := c.Next
	if next.EndDate != nil && next.EndDate.Before(next.StartDate) {
		return dErrors.NewField("end_date", "end date cannot be before the start date")
	}
	if !live(next, c.Today) {
		// Closing or editing history is always allowed.
		return nil
	}

	newlyLive := c.Previous == nil || !live(c.Previous, c.Today)
	if newlyLive && !e.BeneficiaryActive {
		return dErrors.NewField("beneficiary_id", "only ACTIVE beneficiaries can receive benefits")
	}

	benefitChanged := c.Previous == nil || c.Previous.BenefitID != next.BenefitID
	if benefitChanged && !e.BenefitActive {
		return dErrors.NewField("benefit_id", "only active benefits can be assigned")
	}

	if e.DuplicateActive {
		return ErrDuplicateActive
	}
	return nil
}

// ErrDuplicateActive is returned both by the validation pre-check and when
// the partial unique index rejects a concurrent insert.
var ErrDuplicateActive = dErrors.NewField("benefit_id",
	"this benefit is already active for this beneficiary; end the current cycle before granting it again")

// NewAssignment builds an assignment from a draft. Validation is the
// caller's job since it needs stored context.
func NewAssignment(assignmentID id.AssignmentID, d Draft, today id.Date, now time.Time) *Assignment {
	start := today
	if d.StartDate != nil {
		start = *d.StartDate
	}
	return &Assignment{
		ID:            assignmentID,
		BeneficiaryID: d.BeneficiaryID,
		BenefitID:     d.BenefitID,
		StartDate:     start,
		EndDate:       d.EndDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Revise returns a copy of a with the editable fields of d applied. The
// beneficiary is fixed at creation.
func (a *Assignment) Revise(d Draft, now time.Time) *Assignment {
	next := *a
	next.BenefitID = d.BenefitID
	if d.StartDate != nil {
		next.StartDate = *d.StartDate
	}
	next.EndDate = d.EndDate
	next.UpdatedAt = now
	return &next
}

// EndOn returns a copy of a closed on end. alreadyEnded is true, and the
// copy is nil, when a is ended on today already.
func (a *Assignment) EndOn(end id.Date, today id.Date, now time.Time) (next *Assignment, alreadyEnded bool) {
	if a.State(today) == StateEnded {
		return nil, true
	}
	closed := *a
	closed.EndDate = &end
	closed.UpdatedAt = now
	return &closed, false
}

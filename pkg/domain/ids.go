package domain

import (
	"github.com/google/uuid"

	dErrors "amparo/pkg/domain-errors"
)

// Typed identifiers. Each entity gets its own type so a beneficiary id can
// never be passed where an assignment id is expected.
type (
	BeneficiaryID uuid.UUID
	BenefitID     uuid.UUID
	AssignmentID  uuid.UUID
	BatchID       uuid.UUID
	ItemID        uuid.UUID
	OperatorID    uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}

func ParseBeneficiaryID(s string) (BeneficiaryID, error) {
	u, err := parseUUID("beneficiary id", s)
	return BeneficiaryID(u), err
}

func ParseBenefitID(s string) (BenefitID, error) {
	u, err := parseUUID("benefit id", s)
	return BenefitID(u), err
}

func ParseAssignmentID(s string) (AssignmentID, error) {
	u, err := parseUUID("assignment id", s)
	return AssignmentID(u), err
}

func ParseBatchID(s string) (BatchID, error) {
	u, err := parseUUID("batch id", s)
	return BatchID(u), err
}

func ParseItemID(s string) (ItemID, error) {
	u, err := parseUUID("item id", s)
	return ItemID(u), err
}

func ParseOperatorID(s string) (OperatorID, error) {
	u, err := parseUUID("operator id", s)
	return OperatorID(u), err
}

func (id BeneficiaryID) String() string { return uuid.UUID(id).String() }
func (id BenefitID) String() string     { return uuid.UUID(id).String() }
func (id AssignmentID) String() string  { return uuid.UUID(id).String() }
func (id BatchID) String() string       { return uuid.UUID(id).String() }
func (id ItemID) String() string        { return uuid.UUID(id).String() }
func (id OperatorID) String() string    { return uuid.UUID(id).String() }

func (id BeneficiaryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BenefitID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AssignmentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id BatchID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id OperatorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed ids render as plain uuid strings in JSON.
func (id BeneficiaryID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id BenefitID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id AssignmentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id BatchID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id ItemID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id OperatorID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }

package models

import (
	"strings"

	beneficiary "amparo/internal/beneficiary/models"
	benefit "amparo/internal/benefit/models"
	id "amparo/pkg/domain"
)

// BeneficiaryFilter narrows the identification, health, socioeconomic and
// roster reports. Empty values match everything.
type BeneficiaryFilter struct {
	Query      string
	Status     beneficiary.Status
	Street     string
	PostalCode string
	// BenefitID keeps beneficiaries holding an active assignment of it.
	BenefitID id.BenefitID

	Employment      beneficiary.Employment
	IncomeProvider  beneficiary.IncomeProvider
	IncomeBracket   beneficiary.IncomeBracket
	HousingType     beneficiary.HousingType
	HousingMaterial beneficiary.HousingMaterial
	RiskArea        beneficiary.TriState
	Literate        beneficiary.TriState
	Schooling       beneficiary.Schooling

	Diabetes             beneficiary.TriState
	Hypertension         beneficiary.TriState
	ContinuousMedication beneficiary.TriState
	PermanentIllness     beneficiary.TriState

	Sort Sort
}

// Categorical lists the set categorical conditions as column/value pairs,
// in column order.
func (f BeneficiaryFilter) Categorical() [][2]string {
	all := [][2]string{
		{"employment", string(f.Employment)},
		{"income_provider", string(f.IncomeProvider)},
		{"income_bracket", string(f.IncomeBracket)},
		{"housing_type", string(f.HousingType)},
		{"housing_material", string(f.HousingMaterial)},
		{"risk_area", string(f.RiskArea)},
		{"literate", string(f.Literate)},
		{"schooling", string(f.Schooling)},
		{"diabetes", string(f.Diabetes)},
		{"hypertension", string(f.Hypertension)},
		{"continuous_medication", string(f.ContinuousMedication)},
		{"permanent_illness", string(f.PermanentIllness)},
	}
	var out [][2]string
	for _, c := range all {
		if c[1] != "" {
			out = append(out, c)
		}
	}
	return out
}

// AssignmentStatus filters on the stored active flag.
type AssignmentStatus string

const (
	AssignmentsAll    AssignmentStatus = "all"
	AssignmentsActive AssignmentStatus = "active"
	AssignmentsEnded  AssignmentStatus = "ended"
)

// ParseAssignmentStatus maps unknown values to all.
func ParseAssignmentStatus(raw string) AssignmentStatus {
	switch s := AssignmentStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case AssignmentsActive, AssignmentsEnded:
		return s
	}
	return AssignmentsAll
}

type AssignmentFilter struct {
	Status        AssignmentStatus
	Query         string
	BenefitID     id.BenefitID
	BeneficiaryID id.BeneficiaryID
	Sort          Sort
}

type BenefitFilter struct {
	Query    string
	Category benefit.Category
	Active   *bool
	Sort     Sort
}

// BatchFilter narrows the batch summary. A Query that parses as a batch id
// matches that batch; any other text matches the benefit name.
type BatchFilter struct {
	From      *id.Date
	To        *id.Date
	BenefitID id.BenefitID
	Query     string
	Sort      Sort
}

type ItemFilter struct {
	Sort Sort
}

// DeliveryStatus filters delivery items on their checklist mark.
type DeliveryStatus string

const (
	DeliveriesAll       DeliveryStatus = "all"
	DeliveriesDelivered DeliveryStatus = "delivered"
	DeliveriesPending   DeliveryStatus = "pending"
)

// ParseDeliveryStatus maps unknown values to all.
func ParseDeliveryStatus(raw string) DeliveryStatus {
	switch s := DeliveryStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case DeliveriesDelivered, DeliveriesPending:
		return s
	}
	return DeliveriesAll
}

type HistoryFilter struct {
	Status    DeliveryStatus
	From      *id.Date
	To        *id.Date
	BenefitID id.BenefitID
	Sort      Sort
}

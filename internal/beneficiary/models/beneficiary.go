package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// Beneficiary is a registered person served by the program.
//
// Invariants:
//   - Code is assigned once, on first save, and never changes
//   - NationalID is empty or 11 checksum-valid digits
//   - PostalCode is empty or 8 digits
//   - Status INACTIVE implies InactivatedOn is set; ACTIVE implies it is nil
//   - Categorical attributes are never empty (NOT_INFORMED by default)
//
// Deactivation does not cascade: assignments that are already active stay
// active. Only new active assignments require IsActive.
type Beneficiary struct {
	ID                 id.BeneficiaryID
	Code               string
	Name               string
	NationalID         string
	BirthDate          *id.Date
	Phone              string
	Address            Address
	Socioeconomic      Socioeconomic
	Health             Health
	ProgramStartDate   *id.Date
	Status             Status
	InactivatedOn      *id.Date
	InactivationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Address struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
}

type Socioeconomic struct {
	Employment      Employment
	IncomeProvider  IncomeProvider
	IncomeBracket   IncomeBracket
	HousingType     HousingType
	HousingMaterial HousingMaterial
	RiskArea        TriState
	Literate        TriState
	Schooling       Schooling
}

type Health struct {
	Diabetes             TriState
	Hypertension         TriState
	ContinuousMedication TriState
	PermanentIllness     TriState
}

// Fields is the editable attribute set of a beneficiary.
type Fields struct {
	Name               string
	NationalID         string
	BirthDate          *id.Date
	Phone              string
	Address            Address
	Socioeconomic      Socioeconomic
	Health             Health
	ProgramStartDate   *id.Date
	Status             Status
	InactivatedOn      *id.Date
	InactivationReason string
}

// NewBeneficiary validates fields and builds a record with its code.
func NewBeneficiary(beneficiaryID id.BeneficiaryID, code string, f Fields, today id.Date, now time.Time) (*Beneficiary, error) {
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "beneficiary code is required")
	}
	b := &Beneficiary{
		ID:        beneficiaryID,
		Code:      code,
		CreatedAt: now,
	}
	if err := b.Apply(f, today, now); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply validates and normalizes f, then copies it onto b and enforces the
// inactivation-date rule. A record already inactive keeps its stored
// inactivation date unless f carries one. On error b is left untouched.
func (b *Beneficiary) Apply(f Fields, today id.Date, now time.Time) error {
	f.normalize()
	if err := f.Validate(); err != nil {
		return err
	}

	b.Name = f.Name
	b.NationalID = f.NationalID
	b.BirthDate = f.BirthDate
	b.Phone = f.Phone
	b.Address = f.Address
	b.Socioeconomic = f.Socioeconomic
	b.Health = f.Health
	b.ProgramStartDate = f.ProgramStartDate
	if f.InactivatedOn != nil || b.Status != StatusInactive {
		b.InactivatedOn = f.InactivatedOn
	}
	b.Status = f.Status
	b.InactivationReason = f.InactivationReason
	b.applyStatusDates(today)
	b.UpdatedAt = now
	return nil
}

// applyStatusDates stamps the inactivation date when inactive and clears it
// when active.
func (b *Beneficiary) applyStatusDates(today id.Date) {
	switch b.Status {
	case StatusInactive:
		if b.InactivatedOn == nil {
			d := today
			b.InactivatedOn = &d
		}
	case StatusActive:
		b.InactivatedOn = nil
	}
}

// Fields returns the editable attributes of b.
func (b *Beneficiary) Fields() Fields {
	return Fields{
		Name:               b.Name,
		NationalID:         b.NationalID,
		BirthDate:          b.BirthDate,
		Phone:              b.Phone,
		Address:            b.Address,
		Socioeconomic:      b.Socioeconomic,
		Health:             b.Health,
		ProgramStartDate:   b.ProgramStartDate,
		Status:             b.Status,
		InactivatedOn:      b.InactivatedOn,
		InactivationReason: b.InactivationReason,
	}
}

func (b *Beneficiary) IsActive() bool {
	return b.Status == StatusActive
}

// Age returns whole years at today; ok is false without a birth date.
func (b *Beneficiary) Age(today id.Date) (int, bool) {
	if b.BirthDate == nil {
		return 0, false
	}
	return b.BirthDate.YearsUntil(today), true
}

func (b *Beneficiary) FormattedNationalID() string {
	return FormatCPF(b.NationalID)
}

func (b *Beneficiary) FormattedPostalCode() string {
	return FormatPostalCode(b.Address.PostalCode)
}

func (b *Beneficiary) FormattedPhone() string {
	return FormatPhone(b.Phone)
}

// AddressSummary renders "Street, number • CEP 00000-000", omitting parts
// that are empty.
func (b *Beneficiary) AddressSummary() string {
	var parts []string
	if b.Address.Street != "" {
		street := titleCase(b.Address.Street)
		if b.Address.Number != "" {
			street += ", " + b.Address.Number
		}
		parts = append(parts, street)
	}
	if b.Address.PostalCode != "" {
		parts = append(parts, "CEP "+b.FormattedPostalCode())
	}
	return strings.Join(parts, " • ")
}

func (f *Fields) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.NationalID = Digits(f.NationalID)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address.Street = strings.TrimSpace(f.Address.Street)
	f.Address.Number = strings.TrimSpace(f.Address.Number)
	f.Address.Complement = strings.TrimSpace(f.Address.Complement)
	f.Address.District = strings.TrimSpace(f.Address.District)
	f.Address.City = strings.TrimSpace(f.Address.City)
	f.Address.State = strings.ToUpper(strings.TrimSpace(f.Address.State))
	f.Address.PostalCode = Digits(f.Address.PostalCode)
	f.InactivationReason = strings.TrimSpace(f.InactivationReason)

	if f.Status == "" {
		f.Status = StatusActive
	}
	defaultTo(&f.Socioeconomic.Employment, EmploymentNotInformed)
	defaultTo(&f.Socioeconomic.IncomeProvider, IncomeProviderNotInformed)
	defaultTo(&f.Socioeconomic.IncomeBracket, IncomeNotInformed)
	defaultTo(&f.Socioeconomic.HousingType, HousingNotInformed)
	defaultTo(&f.Socioeconomic.HousingMaterial, MaterialNotInformed)
	defaultTo(&f.Socioeconomic.RiskArea, TriNotInformed)
	defaultTo(&f.Socioeconomic.Literate, TriNotInformed)
	defaultTo(&f.Socioeconomic.Schooling, SchoolingNotInformed)
	defaultTo(&f.Health.Diabetes, TriNotInformed)
	defaultTo(&f.Health.Hypertension, TriNotInformed)
	defaultTo(&f.Health.ContinuousMedication, TriNotInformed)
	defaultTo(&f.Health.PermanentIllness, TriNotInformed)
}

func defaultTo[T ~string](v *T, def T) {
	if *v == "" {
		*v = def
	}
}

var fieldLimits = []struct {
	field string
	max   int
	value func(f *Fields) string
}{
	{"name", 120, func(f *Fields) string { return f.Name }},
	{"phone", 30, func(f *Fields) string { return f.Phone }},
	{"street", 120, func(f *Fields) string { return f.Address.Street }},
	{"number", 20, func(f *Fields) string { return f.Address.Number }},
	{"complement", 80, func(f *Fields) string { return f.Address.Complement }},
	{"district", 80, func(f *Fields) string { return f.Address.District }},
	{"city", 80, func(f *Fields) string { return f.Address.City }},
	{"state", 2, func(f *Fields) string { return f.Address.State }},
	{"inactivation_reason", 200, func(f *Fields) string { return f.InactivationReason }},
}

// Validate checks normalized fields and returns the first field-scoped error.
func (f *Fields) Validate() error {
	if f.Name == "" {
		return dErrors.NewField("name", "name is required")
	}
	for _, l := range fieldLimits {
		if utf8.RuneCountInString(l.value(f)) > l.max {
			return dErrors.NewField(l.field, l.field+" is too long")
		}
	}
	if f.NationalID != "" && !ValidCPF(f.NationalID) {
		return dErrors.NewField("national_id", "invalid CPF")
	}
	if f.Address.PostalCode != "" && len(f.Address.PostalCode) != 8 {
		return dErrors.NewField("postal_code", "postal code must have 8 digits")
	}
	if !f.Status.IsValid() {
		return dErrors.NewField("status", "status must be ACTIVE or INACTIVE")
	}

	checks := []struct {
		field string
		ok    bool
	}{
		{"employment", f.Socioeconomic.Employment.IsValid()},
		{"income_provider", f.Socioeconomic.IncomeProvider.IsValid()},
		{"income_bracket", f.Socioeconomic.IncomeBracket.IsValid()},
		{"housing_type", f.Socioeconomic.HousingType.IsValid()},
		{"housing_material", f.Socioeconomic.HousingMaterial.IsValid()},
		{"risk_area", f.Socioeconomic.RiskArea.IsValid()},
		{"literate", f.Socioeconomic.Literate.IsValid()},
		{"schooling", f.Socioeconomic.Schooling.IsValid()},
		{"diabetes", f.Health.Diabetes.IsValid()},
		{"hypertension", f.Health.Hypertension.IsValid()},
		{"continuous_medication", f.Health.ContinuousMedication.IsValid()},
		{"permanent_illness", f.Health.PermanentIllness.IsValid()},
	}
	for _, c := range checks {
		if !c.ok {
			return dErrors.NewField(c.field, c.field+" has an invalid value")
		}
	}
	return nil
}

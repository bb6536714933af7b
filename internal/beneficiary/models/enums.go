package models

import (
	"slices"
	"strings"

	dErrors "amparo/pkg/domain-errors"
)

// NotInformed is the default for every categorical attribute. Categorical
// fields are never empty or null.
const NotInformed = "NOT_INFORMED"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type TriState string

const (
	TriYes         TriState = "YES"
	TriNo          TriState = "NO"
	TriNotInformed TriState = NotInformed
)

type Employment string

const (
	EmploymentEmployed     Employment = "EMPLOYED"
	EmploymentUnemployed   Employment = "UNEMPLOYED"
	EmploymentSelfEmployed Employment = "SELF_EMPLOYED"
	EmploymentRetired      Employment = "RETIRED"
	EmploymentNotInformed  Employment = NotInformed
)

type IncomeProvider string

const (
	IncomeProviderSelf        IncomeProvider = "SELF"
	IncomeProviderSpouse      IncomeProvider = "SPOUSE"
	IncomeProviderOther       IncomeProvider = "OTHER"
	IncomeProviderNotInformed IncomeProvider = NotInformed
)

type IncomeBracket string

const (
	IncomeUpTo1MW     IncomeBracket = "UP_TO_1_MW"
	IncomeFrom1To2MW  IncomeBracket = "FROM_1_TO_2_MW"
	IncomeAbove2MW    IncomeBracket = "ABOVE_2_MW"
	IncomeNotInformed IncomeBracket = NotInformed
)

type HousingType string

const (
	HousingOwned       HousingType = "OWNED"
	HousingRented      HousingType = "RENTED"
	HousingLent        HousingType = "LENT"
	HousingNotInformed HousingType = NotInformed
)

type HousingMaterial string

const (
	MaterialMasonry     HousingMaterial = "MASONRY"
	MaterialWood        HousingMaterial = "WOOD"
	MaterialMixed       HousingMaterial = "MIXED"
	MaterialNotInformed HousingMaterial = NotInformed
)

type Schooling string

const (
	SchoolingElementary  Schooling = "ELEMENTARY"
	SchoolingHighSchool  Schooling = "HIGH_SCHOOL"
	SchoolingHigher      Schooling = "HIGHER"
	SchoolingNotInformed Schooling = NotInformed
)

var labels = map[string]string{
	NotInformed:      "Not informed",
	"ACTIVE":         "Active",
	"INACTIVE":       "Inactive",
	"YES":            "Yes",
	"NO":             "No",
	"EMPLOYED":       "Employed",
	"UNEMPLOYED":     "Unemployed",
	"SELF_EMPLOYED":  "Self-employed",
	"RETIRED":        "Retired",
	"SELF":           "Beneficiary",
	"SPOUSE":         "Spouse",
	"OTHER":          "Other",
	"UP_TO_1_MW":     "Up to 1 minimum wage",
	"FROM_1_TO_2_MW": "1 to 2 minimum wages",
	"ABOVE_2_MW":     "Above 2 minimum wages",
	"OWNED":          "Owned",
	"RENTED":         "Rented",
	"LENT":           "Lent",
	"MASONRY":        "Masonry",
	"WOOD":           "Wood",
	"MIXED":          "Mixed",
	"ELEMENTARY":     "Elementary",
	"HIGH_SCHOOL":    "High school",
	"HIGHER":         "Higher education",
}

// Label returns the display label of any categorical value.
func Label[T ~string](v T) string {
	if l, ok := labels[string(v)]; ok {
		return l
	}
	return string(v)
}

var (
	statuses         = []Status{StatusActive, StatusInactive}
	triStates        = []TriState{TriYes, TriNo, TriNotInformed}
	employments      = []Employment{EmploymentEmployed, EmploymentUnemployed, EmploymentSelfEmployed, EmploymentRetired, EmploymentNotInformed}
	incomeProviders  = []IncomeProvider{IncomeProviderSelf, IncomeProviderSpouse, IncomeProviderOther, IncomeProviderNotInformed}
	incomeBrackets   = []IncomeBracket{IncomeUpTo1MW, IncomeFrom1To2MW, IncomeAbove2MW, IncomeNotInformed}
	housingTypes     = []HousingType{HousingOwned, HousingRented, HousingLent, HousingNotInformed}
	housingMaterials = []HousingMaterial{MaterialMasonry, MaterialWood, MaterialMixed, MaterialNotInformed}
	schoolingLevels  = []Schooling{SchoolingElementary, SchoolingHighSchool, SchoolingHigher, SchoolingNotInformed}
)

func (s Status) IsValid() bool          { return slices.Contains(statuses, s) }
func (t TriState) IsValid() bool        { return slices.Contains(triStates, t) }
func (e Employment) IsValid() bool      { return slices.Contains(employments, e) }
func (p IncomeProvider) IsValid() bool  { return slices.Contains(incomeProviders, p) }
func (b IncomeBracket) IsValid() bool   { return slices.Contains(incomeBrackets, b) }
func (h HousingType) IsValid() bool     { return slices.Contains(housingTypes, h) }
func (m HousingMaterial) IsValid() bool { return slices.Contains(housingMaterials, m) }
func (s Schooling) IsValid() bool       { return slices.Contains(schoolingLevels, s) }

// ParseChoice normalizes a categorical input. Empty input yields def; values
// outside allowed fail with a validation error on field.
func ParseChoice[T ~string](field, raw string, def T, allowed []T) (T, error) {
	v := T(strings.ToUpper(strings.TrimSpace(raw)))
	if v == "" {
		return def, nil
	}
	if !slices.Contains(allowed, v) {
		return def, dErrors.NewField(field, field+" has an invalid value")
	}
	return v, nil
}

// Allowed value sets, exposed for request parsing and report filters.
func Statuses() []Status                  { return statuses }
func TriStates() []TriState               { return triStates }
func Employments() []Employment           { return employments }
func IncomeProviders() []IncomeProvider   { return incomeProviders }
func IncomeBrackets() []IncomeBracket     { return incomeBrackets }
func HousingTypes() []HousingType         { return housingTypes }
func HousingMaterials() []HousingMaterial { return housingMaterials }
func SchoolingLevels() []Schooling        { return schoolingLevels }

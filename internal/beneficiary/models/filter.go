package models

import "strings"

// Storage constraint names. Stores report unique violations with these names
// so the service can scope the error to a field.
const (
	ConstraintCode       = "beneficiaries_code_key"
	ConstraintNationalID = "beneficiaries_national_id_key"
)

// ListFilter narrows the registry listing. Zero values match everything.
type ListFilter struct {
	Query  string
	Status Status
	Limit  int
	Offset int
}

// Matches applies the filter to one record. q matches name
// case-insensitively, and code, phone or CPF digits by substring.
func (f ListFilter) Matches(b *Beneficiary) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Name), strings.ToLower(q)) ||
		strings.Contains(strings.ToUpper(b.Code), strings.ToUpper(q)) ||
		strings.Contains(b.Phone, q) {
		return true
	}
	if digits := Digits(q); digits != "" && strings.Contains(b.NationalID, digits) {
		return true
	}
	return false
}

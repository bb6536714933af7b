package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// Category groups benefits on reports.
type Category string

const (
	CategoryFood     Category = "FOOD"
	CategoryHealth   Category = "HEALTH"
	CategoryClothing Category = "CLOTHING"
	CategoryOther    Category = "OTHER"
)

// Periodicity is how often a benefit is delivered.
type Periodicity string

const (
	PeriodicityWeekly     Periodicity = "WEEKLY"
	PeriodicityMonthly    Periodicity = "MONTHLY"
	PeriodicityOccasional Periodicity = "OCCASIONAL"
)

var (
	categories    = []Category{CategoryFood, CategoryHealth, CategoryClothing, CategoryOther}
	periodicities = []Periodicity{PeriodicityWeekly, PeriodicityMonthly, PeriodicityOccasional}
)

func (c Category) IsValid() bool    { return slices.Contains(categories, c) }
func (p Periodicity) IsValid() bool { return slices.Contains(periodicities, p) }

var labels = map[string]string{
	string(CategoryFood):          "Food",
	string(CategoryHealth):        "Health",
	string(CategoryClothing):      "Clothing",
	string(CategoryOther):         "Other",
	string(PeriodicityWeekly):     "Weekly",
	string(PeriodicityMonthly):    "Monthly",
	string(PeriodicityOccasional): "Occasional",
}

// Label returns the display name of a category or periodicity.
func Label[T Category | Periodicity](v T) string {
	if l, ok := labels[string(v)]; ok {
		return l
	}
	return string(v)
}

// ParseCategory accepts a category in any case.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", dErrors.NewField("category", "category must be one of FOOD, HEALTH, CLOTHING, OTHER")
	}
	return c, nil
}

// ParsePeriodicity accepts a periodicity in any case.
func ParsePeriodicity(raw string) (Periodicity, error) {
	p := Periodicity(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", dErrors.NewField("periodicity", "periodicity must be one of WEEKLY, MONTHLY, OCCASIONAL")
	}
	return p, nil
}

// ConstraintName is the unique index on benefit names.
const ConstraintName = "benefits_name_key"

const maxNameLength = 120

// Benefit is a catalog entry describing a type of aid.
//
// Invariants:
//   - Name is non-empty and unique across the catalog
//   - Category and Periodicity are always one of the enumerated values
//   - Deactivation is a flag; a benefit with history is never deleted
type Benefit struct {
	ID          id.BenefitID
	Name        string
	Category    Category
	Periodicity Periodicity
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields is the editable attribute set.
type Fields struct {
	Name        string
	Category    Category
	Periodicity Periodicity
	Active      bool
}

func (f *Fields) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f *Fields) validate() error {
	if f.Name == "" {
		return dErrors.NewField("name", "name is required")
	}
	if utf8.RuneCountInString(f.Name) > maxNameLength {
		return dErrors.NewField("name", "name is too long")
	}
	if !f.Category.IsValid() {
		return dErrors.NewField("category", "category has an invalid value")
	}
	if !f.Periodicity.IsValid() {
		return dErrors.NewField("periodicity", "periodicity has an invalid value")
	}
	return nil
}

// NewBenefit validates f and builds a catalog entry.
func NewBenefit(benefitID id.BenefitID, f Fields, now time.Time) (*Benefit, error) {
	f.normalize()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &Benefit{
		ID:          benefitID,
		Name:        f.Name,
		Category:    f.Category,
		Periodicity: f.Periodicity,
		Active:      f.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply replaces the editable attributes. On failure b is left unchanged.
func (b *Benefit) Apply(f Fields, now time.Time) error {
	f.normalize()
	if err := f.validate(); err != nil {
		return err
	}
	b.Name = f.Name
	b.Category = f.Category
	b.Periodicity = f.Periodicity
	b.Active = f.Active
	b.UpdatedAt = now
	return nil
}

// IsActive reports whether new assignments and batches may reference b.
func (b *Benefit) IsActive() bool {
	return b.Active
}

// ListFilter narrows catalog listings.
type ListFilter struct {
	Query    string
	Category Category
	Active   *bool
}

// Matches applies the filter in memory. Query matches the name case-insensitively.
func (f ListFilter) Matches(b *Benefit) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Active != nil && b.Active != *f.Active {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return strings.Contains(strings.ToLower(b.Name), strings.ToLower(q))
	}
	return true
}

// Less orders benefits by category, then name.
func Less(a, b *Benefit) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

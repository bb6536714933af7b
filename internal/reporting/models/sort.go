package models

import (
	"slices"
	"strings"
)

// Sort is a report ordering key. A leading '-' reverses the direction.
type Sort string

// SortSet is the closed set of keys a report accepts.
type SortSet struct {
	Default Sort
	Keys    []Sort
}

// Resolve returns raw when it names a key of the set and the default
// otherwise. Unknown keys are never an error.
func (s SortSet) Resolve(raw string) Sort {
	key := Sort(strings.TrimSpace(raw))
	if slices.Contains(s.Keys, key) {
		return key
	}
	return s.Default
}

var (
	BeneficiarySorts = SortSet{
		Default: "name",
		Keys:    []Sort{"name", "-name", "code", "-code", "created_at", "-created_at", "status"},
	}
	AssignmentSorts = SortSet{
		Default: "-start_date",
		Keys:    []Sort{"-start_date", "start_date", "beneficiary", "-beneficiary", "benefit"},
	}
	BenefitSorts = SortSet{
		Default: "category",
		Keys:    []Sort{"category", "name", "-active_count"},
	}
	BatchSorts = SortSet{
		Default: "-delivery_date",
		Keys:    []Sort{"-delivery_date", "delivery_date", "benefit", "-benefit", "-total"},
	}
	ItemSorts = SortSet{
		Default: "beneficiary",
		Keys:    []Sort{"beneficiary", "-beneficiary", "delivered", "-delivered"},
	}
	HistorySorts = SortSet{
		Default: "-delivery_date",
		Keys:    []Sort{"-delivery_date", "delivery_date", "benefit"},
	}
)

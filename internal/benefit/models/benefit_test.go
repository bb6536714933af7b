package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

var now = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func validFields() Fields {
	return Fields{Name: " Cesta Básica ", Category: CategoryFood, Periodicity: PeriodicityMonthly, Active: true}
}

func TestNewBenefit(t *testing.T) {
	b, err := NewBenefit(id.BenefitID(uuid.New()), validFields(), now)
	require.NoError(t, err)
	assert.Equal(t, "Cesta Básica", b.Name)
	assert.True(t, b.IsActive())
	assert.Equal(t, now, b.CreatedAt)
}

func TestBenefitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Fields)
		field  string
	}{
		{"blank name", func(f *Fields) { f.Name = "   " }, "name"},
		{"unknown category", func(f *Fields) { f.Category = "TOYS" }, "category"},
		{"missing periodicity", func(f *Fields) { f.Periodicity = "" }, "periodicity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFields()
			tc.mutate(&f)
			_, err := NewBenefit(id.BenefitID(uuid.New()), f, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.field, dErrors.FieldOf(err))
		})
	}
}

func TestApplyLeavesBenefitUntouchedOnFailure(t *testing.T) {
	b, err := NewBenefit(id.BenefitID(uuid.New()), validFields(), now)
	require.NoError(t, err)

	f := validFields()
	f.Active = false
	f.Category = "?"
	require.Error(t, b.Apply(f, now.Add(time.Hour)))
	assert.True(t, b.Active)
	assert.Equal(t, now, b.UpdatedAt)

	f.Category = CategoryHealth
	require.NoError(t, b.Apply(f, now.Add(time.Hour)))
	assert.False(t, b.IsActive())
	assert.Equal(t, CategoryHealth, b.Category)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCategory(" food ")
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, c)

	_, err = ParseCategory("")
	assert.Equal(t, "category", dErrors.FieldOf(err))

	p, err := ParsePeriodicity("weekly")
	require.NoError(t, err)
	assert.Equal(t, "Weekly", Label(p))
	assert.Equal(t, "Food", Label(c))
}

func TestListFilterAndOrder(t *testing.T) {
	inactive := false
	food := &Benefit{Name: "Cesta", Category: CategoryFood, Active: true}
	milk := &Benefit{Name: "leite", Category: CategoryFood, Active: false}
	meds := &Benefit{Name: "Remédios", Category: CategoryHealth, Active: true}

	assert.True(t, ListFilter{Query: "CES"}.Matches(food))
	assert.False(t, ListFilter{Category: CategoryHealth}.Matches(food))
	assert.True(t, ListFilter{Active: &inactive}.Matches(milk))
	assert.False(t, ListFilter{Active: &inactive}.Matches(meds))

	assert.True(t, Less(food, milk))
	assert.True(t, Less(milk, meds))
	assert.False(t, Less(meds, food))
}

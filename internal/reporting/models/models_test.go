package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	beneficiary "amparo/internal/beneficiary/models"
	distribution "amparo/internal/distribution/models"
	id "amparo/pkg/domain"
)

func TestSortSetResolve(t *testing.T) {
	sets := map[string]SortSet{
		"beneficiary": BeneficiarySorts,
		"assignment":  AssignmentSorts,
		"benefit":     BenefitSorts,
		"batch":       BatchSorts,
		"item":        ItemSorts,
		"history":     HistorySorts,
	}
	for name, set := range sets {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, set.Keys, set.Default, "default must be a member of the set")
			for _, key := range set.Keys {
				assert.Equal(t, key, set.Resolve(string(key)))
			}
			assert.Equal(t, set.Default, set.Resolve(""))
			assert.Equal(t, set.Default, set.Resolve("password; DROP TABLE beneficiaries"))
		})
	}

	assert.Equal(t, Sort("-name"), BeneficiarySorts.Resolve(" -name "))
	assert.Equal(t, Sort("name"), BeneficiarySorts.Resolve("NAME"), "keys are case sensitive")
}

func TestRender(t *testing.T) {
	cols := []Column[int]{
		{"n", func(v int) string { return string(rune('0' + v)) }},
		{"double", func(v int) string { return string(rune('0' + 2*v)) }},
	}
	table := Render("numbers", "Numbers", "n", cols, []int{1, 3})

	assert.Equal(t, []string{"n", "double"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "6"}}, table.Rows)

	empty := Render("numbers", "Numbers", "n", cols, nil)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)
}

func TestIdentificationProjection(t *testing.T) {
	birth := id.Date{Year: 1960, Month: time.June, Day: 1}
	b := &beneficiary.Beneficiary{
		Code:       "A-20240501-1A2B",
		Name:       "Maria Silva",
		NationalID: "11144477735",
		BirthDate:  &birth,
		Phone:      "11988887777",
		Address:    beneficiary.Address{Street: "rua das flores", Number: "10", District: "Centro", PostalCode: "01310100"},
		Status:     beneficiary.StatusActive,
	}
	table := Render("identification", "", "name", IdentificationColumns(id.Date{Year: 2024, Month: time.May, Day: 10}), []person{b})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Code", "Name", "CPF", "Age", "Phone", "Address", "District", "Status"}, table.Columns)
	assert.Equal(t, []string{
		"A-20240501-1A2B", "Maria Silva", "111.444.777-35", "63", "(11) 98888-7777",
		"Rua Das Flores, 10 • CEP 01310-100", "Centro", "Active",
	}, table.Rows[0])

	b.BirthDate = nil
	table = Render("identification", "", "name", IdentificationColumns(id.Date{Year: 2024, Month: time.May, Day: 10}), []person{b})
	assert.Empty(t, table.Rows[0][3])
}

func TestCategoricalProjections(t *testing.T) {
	b := &beneficiary.Beneficiary{
		Code: "A-1",
		Name: "Maria",
		Socioeconomic: beneficiary.Socioeconomic{
			Employment:      beneficiary.EmploymentRetired,
			IncomeProvider:  beneficiary.IncomeProviderSelf,
			IncomeBracket:   beneficiary.IncomeUpTo1MW,
			HousingType:     beneficiary.HousingRented,
			HousingMaterial: beneficiary.MaterialNotInformed,
			RiskArea:        beneficiary.TriNo,
			Literate:        beneficiary.TriYes,
			Schooling:       beneficiary.SchoolingElementary,
		},
		Health: beneficiary.Health{
			Diabetes:             beneficiary.TriYes,
			Hypertension:         beneficiary.TriNo,
			ContinuousMedication: beneficiary.TriNotInformed,
			PermanentIllness:     beneficiary.TriNo,
		},
		Status: beneficiary.StatusInactive,
	}

	health := Render("health", "", "name", HealthColumns, []person{b})
	assert.Equal(t, []string{"A-1", "Maria", "Yes", "No", "Not informed", "No", "Inactive"}, health.Rows[0])

	socio := Render("socioeconomic", "", "name", SocioeconomicColumns, []person{b})
	assert.Equal(t, []string{
		"A-1", "Maria", "Retired", "Beneficiary", "Up to 1 minimum wage", "Rented",
		"Not informed", "No", "Yes", "Elementary", "Inactive",
	}, socio.Rows[0])
}

func TestAssignmentProjectionShowsStoredFlagAndState(t *testing.T) {
	today := id.Date{Year: 2024, Month: time.May, Day: 10}
	// Start passed without a re-save: flag still false, state ACTIVE.
	row := AssignmentRow{
		BeneficiaryCode: "A-1",
		BeneficiaryName: "Maria",
		NationalID:      "11144477735",
		BenefitName:     "Cesta básica",
		StartDate:       id.Date{Year: 2024, Month: time.May, Day: 1},
		Active:          false,
	}
	table := Render("assignments", "", "-start_date", AssignmentColumns(today), []AssignmentRow{row})
	assert.Equal(t, []string{"A-1", "Maria", "111.444.777-35", "Cesta básica", "01/05/2024", "", "No", "ACTIVE"}, table.Rows[0])
}

func TestBatchAndItemProjections(t *testing.T) {
	batch := BatchRow{
		DeliveryDate: id.Date{Year: 2024, Month: time.May, Day: 15},
		BenefitName:  "Cesta básica",
		Totals:       distribution.NewTotals(3, 1),
	}
	table := Render("batches", "", "-delivery_date", BatchColumns, []BatchRow{batch})
	assert.Equal(t, []string{"15/05/2024", "Cesta básica", "3", "1", "2", ""}, table.Rows[0])

	items := Render("items", "", "beneficiary", ItemColumns, []ItemRow{
		{BeneficiaryCode: "A-1", BeneficiaryName: "Ana", Phone: "1133334444", Delivered: true},
		{BeneficiaryCode: "A-2", BeneficiaryName: "Maria"},
	})
	assert.Equal(t, []string{"A-1", "Ana", "", "(11) 3333-4444", "[x]"}, items.Rows[0])
	assert.Equal(t, "[ ]", items.Rows[1][4])
}

func TestBeneficiaryFilterCategorical(t *testing.T) {
	f := BeneficiaryFilter{
		Employment: beneficiary.EmploymentUnemployed,
		Diabetes:   beneficiary.TriYes,
	}
	assert.Equal(t, [][2]string{{"employment", "UNEMPLOYED"}, {"diabetes", "YES"}}, f.Categorical())
	assert.Empty(t, BeneficiaryFilter{}.Categorical())
}

func TestStatusParsingFallsBackToAll(t *testing.T) {
	assert.Equal(t, AssignmentsActive, ParseAssignmentStatus("ACTIVE"))
	assert.Equal(t, AssignmentsEnded, ParseAssignmentStatus("ended"))
	assert.Equal(t, AssignmentsAll, ParseAssignmentStatus("archived"))

	assert.Equal(t, DeliveriesPending, ParseDeliveryStatus(" Pending "))
	assert.Equal(t, DeliveriesAll, ParseDeliveryStatus(""))
}

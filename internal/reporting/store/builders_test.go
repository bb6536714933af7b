package store

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	beneficiary "amparo/internal/beneficiary/models"
	benefit "amparo/internal/benefit/models"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
)

func TestEverySortKeyHasAnOrderClause(t *testing.T) {
	cases := []struct {
		name    string
		set     models.SortSet
		clauses map[models.Sort]string
	}{
		{"beneficiaries", models.BeneficiarySorts, beneficiaryOrder},
		{"assignments", models.AssignmentSorts, assignmentOrder},
		{"benefits", models.BenefitSorts, benefitOrder},
		{"batches", models.BatchSorts, batchOrder},
		{"items", models.ItemSorts, itemOrder},
		{"history", models.HistorySorts, historyOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, tc.clauses, len(tc.set.Keys))
			for _, key := range tc.set.Keys {
				assert.NotEmpty(t, tc.clauses[key], "missing clause for %q", key)
			}
		})
	}
}

func TestBeneficiaryQuery(t *testing.T) {
	t.Run("no filter uses the default order", func(t *testing.T) {
		query, args := beneficiaryQuery(models.BeneficiaryFilter{})
		assert.NotContains(t, query, "WHERE")
		assert.True(t, strings.HasSuffix(query, "ORDER BY lower(b.name), b.code"), query)
		assert.Empty(t, args)
	})

	t.Run("unknown sort falls back", func(t *testing.T) {
		query, _ := beneficiaryQuery(models.BeneficiaryFilter{Sort: "national_id; --"})
		assert.True(t, strings.HasSuffix(query, "ORDER BY lower(b.name), b.code"), query)
	})

	t.Run("every condition binds its argument", func(t *testing.T) {
		benefitID := id.BenefitID(uuid.New())
		query, args := beneficiaryQuery(models.BeneficiaryFilter{
			Query:      "111.444",
			Status:     beneficiary.StatusActive,
			Street:     "Flores",
			PostalCode: "01310-",
			BenefitID:  benefitID,
			Diabetes:   beneficiary.TriYes,
			Schooling:  beneficiary.SchoolingHigher,
			Sort:       "-created_at",
		})
		assert.Contains(t, query, "b.status = $1")
		assert.Contains(t, query, "(b.name ILIKE $2 OR b.code ILIKE $2 OR b.phone ILIKE $2 OR b.national_id LIKE $3)")
		assert.Contains(t, query, "b.schooling = $4")
		assert.Contains(t, query, "b.diabetes = $5")
		assert.Contains(t, query, "b.street ILIKE $6")
		assert.Contains(t, query, "b.postal_code LIKE $7")
		assert.Contains(t, query, "a.benefit_id = $8 AND a.active")
		assert.True(t, strings.HasSuffix(query, "ORDER BY b.created_at DESC, b.code"), query)
		assert.Equal(t, []any{
			"ACTIVE", "%111.444%", "%111444%", "HIGHER", "YES", "%Flores%", "01310%", benefitID.String(),
		}, args)
	})

	t.Run("text without digits skips the CPF match", func(t *testing.T) {
		query, args := beneficiaryQuery(models.BeneficiaryFilter{Query: "maria"})
		assert.NotContains(t, query, "national_id LIKE")
		assert.Equal(t, []any{"%maria%"}, args)
	})
}

func TestAssignmentQuery(t *testing.T) {
	benefitID := id.BenefitID(uuid.New())
	query, args := assignmentQuery(models.AssignmentFilter{
		Status:    models.AssignmentsEnded,
		Query:     "Maria",
		BenefitID: benefitID,
		Sort:      "benefit",
	})
	assert.Contains(t, query, "WHERE NOT a.active AND (b.name ILIKE $1) AND a.benefit_id = $2")
	assert.True(t, strings.HasSuffix(query, "ORDER BY lower(bf.name), lower(b.name), a.start_date DESC"), query)
	assert.Equal(t, []any{"%Maria%", benefitID.String()}, args)

	query, args = assignmentQuery(models.AssignmentFilter{Status: models.AssignmentsAll})
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY a.start_date DESC")
	assert.Empty(t, args)
}

func TestBenefitQuery(t *testing.T) {
	active := true
	query, args := benefitQuery(models.BenefitFilter{
		Query:    "cesta",
		Category: benefit.CategoryFood,
		Active:   &active,
		Sort:     "-active_count",
	})
	assert.Contains(t, query, "LEFT JOIN assignments a ON a.benefit_id = bf.id")
	assert.Contains(t, query, "WHERE bf.name ILIKE $1 AND bf.category = $2 AND bf.active = $3 GROUP BY bf.id")
	assert.True(t, strings.HasSuffix(query, "ORDER BY active_count DESC, lower(bf.name), bf.id"), query)
	assert.Equal(t, []any{"%cesta%", "FOOD", true}, args)
}

func TestBatchQuery(t *testing.T) {
	from := id.Date{Year: 2024, Month: time.May, Day: 1}
	to := id.Date{Year: 2024, Month: time.May, Day: 31}

	t.Run("text matches the benefit name", func(t *testing.T) {
		query, args := batchQuery(models.BatchFilter{From: &from, To: &to, Query: "cesta"})
		assert.Contains(t, query, "WHERE bt.delivery_date >= $1 AND bt.delivery_date <= $2 AND bf.name ILIKE $3 GROUP BY bt.id, bf.name")
		assert.True(t, strings.HasSuffix(query, "ORDER BY bt.delivery_date DESC, bt.created_at DESC"), query)
		assert.Equal(t, []any{from.Time(), to.Time(), "%cesta%"}, args)
	})

	t.Run("a uuid matches the batch id", func(t *testing.T) {
		batchID := uuid.New()
		query, args := batchQuery(models.BatchFilter{Query: strings.ToUpper(batchID.String()), Sort: "-total"})
		assert.Contains(t, query, "WHERE bt.id = $1")
		assert.True(t, strings.HasSuffix(query, "ORDER BY total DESC, bt.delivery_date DESC"), query)
		assert.Equal(t, []any{batchID.String()}, args)
	})
}

func TestItemAndHistoryQueries(t *testing.T) {
	batchID := id.BatchID(uuid.New())
	query, args := itemQuery(batchID, models.ItemFilter{Sort: "-delivered"})
	assert.Contains(t, query, "WHERE i.batch_id = $1")
	assert.True(t, strings.HasSuffix(query, "ORDER BY i.delivered DESC, lower(b.name), i.id"), query)
	assert.Equal(t, []any{batchID.String()}, args)

	beneficiaryID := id.BeneficiaryID(uuid.New())
	benefitID := id.BenefitID(uuid.New())
	query, args = historyQuery(beneficiaryID, models.HistoryFilter{
		Status:    models.DeliveriesPending,
		BenefitID: benefitID,
		Sort:      "unknown",
	})
	assert.Contains(t, query, "WHERE a.beneficiary_id = $1 AND NOT i.delivered AND bt.benefit_id = $2")
	assert.True(t, strings.HasSuffix(query, "ORDER BY bt.delivery_date DESC, lower(bf.name), i.id"), query)
	assert.Equal(t, []any{beneficiaryID.String(), benefitID.String()}, args)
}

func TestContainsMatchesWildcardsLiterally(t *testing.T) {
	assert.Equal(t, "%maria%", contains("maria"))
	assert.Equal(t, `%50\%%`, contains("50%"))
	assert.Equal(t, `%a\_b%`, contains("a_b"))
	assert.Equal(t, `%c:\\x%`, contains(`c:\x`))

	_, args := benefitQuery(models.BenefitFilter{Query: "100%"})
	assert.Equal(t, []any{`%100\%%`}, args)
}

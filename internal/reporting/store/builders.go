package store

import (
	"strings"

	"github.com/google/uuid"

	beneficiary "amparo/internal/beneficiary/models"
	beneficiarystore "amparo/internal/beneficiary/store"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
)

var beneficiaryOrder = map[models.Sort]string{
	"name":        "lower(b.name), b.code",
	"-name":       "lower(b.name) DESC, b.code",
	"code":        "b.code",
	"-code":       "b.code DESC",
	"created_at":  "b.created_at, b.code",
	"-created_at": "b.created_at DESC, b.code",
	"status":      "b.status, lower(b.name), b.code",
}

func beneficiaryQuery(f models.BeneficiaryFilter) (string, []any) {
	q := &query{}
	if f.Status != "" {
		q.and("b.status = " + q.arg(string(f.Status)))
	}
	if text := strings.TrimSpace(f.Query); text != "" {
		like := q.arg(contains(text))
		cond := "(b.name ILIKE " + like + " OR b.code ILIKE " + like + " OR b.phone ILIKE " + like
		if digits := beneficiary.Digits(text); digits != "" {
			cond += " OR b.national_id LIKE " + q.arg(contains(digits))
		}
		q.and(cond + ")")
	}
	for _, c := range f.Categorical() {
		q.and("b." + c[0] + " = " + q.arg(c[1]))
	}
	if street := strings.TrimSpace(f.Street); street != "" {
		q.and("b.street ILIKE " + q.arg(contains(street)))
	}
	if prefix := beneficiary.Digits(f.PostalCode); prefix != "" {
		q.and("b.postal_code LIKE " + q.arg(prefix+"%"))
	}
	if !f.BenefitID.IsNil() {
		q.and("EXISTS (SELECT 1 FROM assignments a WHERE a.beneficiary_id = b.id AND a.benefit_id = " +
			q.arg(f.BenefitID.String()) + " AND a.active)")
	}
	base := "SELECT " + beneficiarystore.Columns + " FROM beneficiaries b"
	return q.sql(base, orderBy(models.BeneficiarySorts, beneficiaryOrder, f.Sort)), q.args
}

var assignmentOrder = map[models.Sort]string{
	"-start_date":  "a.start_date DESC, lower(b.name), a.id",
	"start_date":   "a.start_date, lower(b.name), a.id",
	"beneficiary":  "lower(b.name), lower(bf.name), a.start_date DESC",
	"-beneficiary": "lower(b.name) DESC, lower(bf.name), a.start_date DESC",
	"benefit":      "lower(bf.name), lower(b.name), a.start_date DESC",
}

const assignmentBase = `SELECT a.id, a.beneficiary_id, b.code, b.name, COALESCE(b.national_id, ''),
	a.benefit_id, bf.name, a.start_date, a.end_date, a.active
	FROM assignments a
	JOIN beneficiaries b ON b.id = a.beneficiary_id
	JOIN benefits bf ON bf.id = a.benefit_id`

func assignmentQuery(f models.AssignmentFilter) (string, []any) {
	q := &query{}
	switch f.Status {
	case models.AssignmentsActive:
		q.and("a.active")
	case models.AssignmentsEnded:
		q.and("NOT a.active")
	}
	if text := strings.TrimSpace(f.Query); text != "" {
		cond := "(b.name ILIKE " + q.arg(contains(text))
		if digits := beneficiary.Digits(text); digits != "" {
			cond += " OR b.national_id LIKE " + q.arg(contains(digits))
		}
		q.and(cond + ")")
	}
	if !f.BenefitID.IsNil() {
		q.and("a.benefit_id = " + q.arg(f.BenefitID.String()))
	}
	if !f.BeneficiaryID.IsNil() {
		q.and("a.beneficiary_id = " + q.arg(f.BeneficiaryID.String()))
	}
	return q.sql(assignmentBase, orderBy(models.AssignmentSorts, assignmentOrder, f.Sort)), q.args
}

var benefitOrder = map[models.Sort]string{
	"category":      "bf.category, lower(bf.name), bf.id",
	"name":          "lower(bf.name), bf.id",
	"-active_count": "active_count DESC, lower(bf.name), bf.id",
}

const benefitBase = `SELECT bf.id, bf.name, bf.category, bf.periodicity, bf.active,
	count(a.id) FILTER (WHERE a.active) AS active_count,
	count(a.id) FILTER (WHERE NOT a.active) AS ended_count
	FROM benefits bf
	LEFT JOIN assignments a ON a.benefit_id = bf.id`

func benefitQuery(f models.BenefitFilter) (string, []any) {
	q := &query{}
	if text := strings.TrimSpace(f.Query); text != "" {
		q.and("bf.name ILIKE " + q.arg(contains(text)))
	}
	if f.Category != "" {
		q.and("bf.category = " + q.arg(string(f.Category)))
	}
	if f.Active != nil {
		q.and("bf.active = " + q.arg(*f.Active))
	}
	tail := "GROUP BY bf.id " + orderBy(models.BenefitSorts, benefitOrder, f.Sort)
	return q.sql(benefitBase, tail), q.args
}

var batchOrder = map[models.Sort]string{
	"-delivery_date": "bt.delivery_date DESC, bt.created_at DESC",
	"delivery_date":  "bt.delivery_date, bt.created_at",
	"benefit":        "lower(bf.name), bt.delivery_date DESC",
	"-benefit":       "lower(bf.name) DESC, bt.delivery_date DESC",
	"-total":         "total DESC, bt.delivery_date DESC",
}

const batchBase = `SELECT bt.id, bt.benefit_id, bf.name, bt.delivery_date, bt.notes,
	count(i.id) AS total,
	count(i.id) FILTER (WHERE i.delivered) AS delivered
	FROM batches bt
	JOIN benefits bf ON bf.id = bt.benefit_id
	LEFT JOIN delivery_items i ON i.batch_id = bt.id`

func batchQuery(f models.BatchFilter) (string, []any) {
	q := &query{}
	if f.From != nil {
		q.and("bt.delivery_date >= " + q.arg(f.From.Time()))
	}
	if f.To != nil {
		q.and("bt.delivery_date <= " + q.arg(f.To.Time()))
	}
	if !f.BenefitID.IsNil() {
		q.and("bt.benefit_id = " + q.arg(f.BenefitID.String()))
	}
	if text := strings.TrimSpace(f.Query); text != "" {
		if batchID, err := uuid.Parse(text); err == nil {
			q.and("bt.id = " + q.arg(batchID.String()))
		} else {
			q.and("bf.name ILIKE " + q.arg(contains(text)))
		}
	}
	tail := "GROUP BY bt.id, bf.name " + orderBy(models.BatchSorts, batchOrder, f.Sort)
	return q.sql(batchBase, tail), q.args
}

var itemOrder = map[models.Sort]string{
	"beneficiary":  "lower(b.name), b.code, i.id",
	"-beneficiary": "lower(b.name) DESC, b.code, i.id",
	"delivered":    "i.delivered, lower(b.name), i.id",
	"-delivered":   "i.delivered DESC, lower(b.name), i.id",
}

const itemBase = `SELECT i.id, b.code, b.name, COALESCE(b.national_id, ''), b.phone, i.delivered
	FROM delivery_items i
	JOIN assignments a ON a.id = i.assignment_id
	JOIN beneficiaries b ON b.id = a.beneficiary_id`

func itemQuery(batchID id.BatchID, f models.ItemFilter) (string, []any) {
	q := &query{}
	q.and("i.batch_id = " + q.arg(batchID.String()))
	return q.sql(itemBase, orderBy(models.ItemSorts, itemOrder, f.Sort)), q.args
}

var historyOrder = map[models.Sort]string{
	"-delivery_date": "bt.delivery_date DESC, lower(bf.name), i.id",
	"delivery_date":  "bt.delivery_date, lower(bf.name), i.id",
	"benefit":        "lower(bf.name), bt.delivery_date DESC, i.id",
}

const historyBase = `SELECT i.id, bt.id, bt.delivery_date, bf.name, i.delivered
	FROM delivery_items i
	JOIN assignments a ON a.id = i.assignment_id
	JOIN batches bt ON bt.id = i.batch_id
	JOIN benefits bf ON bf.id = bt.benefit_id`

func historyQuery(beneficiaryID id.BeneficiaryID, f models.HistoryFilter) (string, []any) {
	q := &query{}
	q.and("a.beneficiary_id = " + q.arg(beneficiaryID.String()))
	switch f.Status {
	case models.DeliveriesDelivered:
		q.and("i.delivered")
	case models.DeliveriesPending:
		q.and("NOT i.delivered")
	}
	if f.From != nil {
		q.and("bt.delivery_date >= " + q.arg(f.From.Time()))
	}
	if f.To != nil {
		q.and("bt.delivery_date <= " + q.arg(f.To.Time()))
	}
	if !f.BenefitID.IsNil() {
		q.and("bt.benefit_id = " + q.arg(f.BenefitID.String()))
	}
	return q.sql(historyBase, orderBy(models.HistorySorts, historyOrder, f.Sort)), q.args
}

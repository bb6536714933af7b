// Package store runs the report queries. Reports read at the connection's
// default isolation and never lock.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	beneficiary "amparo/internal/beneficiary/models"
	beneficiarystore "amparo/internal/beneficiary/store"
	distribution "amparo/internal/distribution/models"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// collect runs query and scans every row with scan.
func collect[R any](ctx context.Context, db *sql.DB, what, query string, args []any, scan func(beneficiarystore.Scanner) (R, error)) ([]R, error) {
	rows, err := tx.Conn(ctx, db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	out := []R{}
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}

func (s *PostgresStore) Beneficiaries(ctx context.Context, f models.BeneficiaryFilter) ([]*beneficiary.Beneficiary, error) {
	query, args := beneficiaryQuery(f)
	return collect(ctx, s.db, "beneficiaries", query, args, beneficiarystore.ScanBeneficiary)
}

func (s *PostgresStore) Assignments(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentRow, error) {
	query, args := assignmentQuery(f)
	return collect(ctx, s.db, "assignments", query, args, func(row beneficiarystore.Scanner) (models.AssignmentRow, error) {
		var (
			r                      models.AssignmentRow
			rawID, person, benefit uuid.UUID
			end                    id.NullDate
		)
		err := row.Scan(&rawID, &person, &r.BeneficiaryCode, &r.BeneficiaryName, &r.NationalID,
			&benefit, &r.BenefitName, &r.StartDate, &end, &r.Active)
		r.ID = id.AssignmentID(rawID)
		r.BeneficiaryID = id.BeneficiaryID(person)
		r.BenefitID = id.BenefitID(benefit)
		r.EndDate = end.Ptr()
		return r, err
	})
}

func (s *PostgresStore) Benefits(ctx context.Context, f models.BenefitFilter) ([]models.BenefitRow, error) {
	query, args := benefitQuery(f)
	return collect(ctx, s.db, "benefits", query, args, func(row beneficiarystore.Scanner) (models.BenefitRow, error) {
		var (
			r     models.BenefitRow
			rawID uuid.UUID
		)
		err := row.Scan(&rawID, &r.Name, &r.Category, &r.Periodicity, &r.Active, &r.ActiveCount, &r.EndedCount)
		r.ID = id.BenefitID(rawID)
		return r, err
	})
}

func (s *PostgresStore) Batches(ctx context.Context, f models.BatchFilter) ([]models.BatchRow, error) {
	query, args := batchQuery(f)
	return collect(ctx, s.db, "batches", query, args, scanBatchRow)
}

// Batch returns the summary row of one batch.
func (s *PostgresStore) Batch(ctx context.Context, batchID id.BatchID) (*models.BatchRow, error) {
	rows, err := s.Batches(ctx, models.BatchFilter{Query: batchID.String()})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &rows[0], nil
}

func scanBatchRow(row beneficiarystore.Scanner) (models.BatchRow, error) {
	var (
		r                models.BatchRow
		rawID, benefit   uuid.UUID
		total, delivered int
	)
	err := row.Scan(&rawID, &benefit, &r.BenefitName, &r.DeliveryDate, &r.Notes, &total, &delivered)
	r.ID = id.BatchID(rawID)
	r.BenefitID = id.BenefitID(benefit)
	r.Totals = distribution.NewTotals(total, delivered)
	return r, err
}

func (s *PostgresStore) BatchItems(ctx context.Context, batchID id.BatchID, f models.ItemFilter) ([]models.ItemRow, error) {
	query, args := itemQuery(batchID, f)
	return collect(ctx, s.db, "delivery items", query, args, func(row beneficiarystore.Scanner) (models.ItemRow, error) {
		var (
			r     models.ItemRow
			rawID uuid.UUID
		)
		err := row.Scan(&rawID, &r.BeneficiaryCode, &r.BeneficiaryName, &r.NationalID, &r.Phone, &r.Delivered)
		r.ID = id.ItemID(rawID)
		return r, err
	})
}

func (s *PostgresStore) History(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.HistoryFilter) ([]models.HistoryRow, error) {
	query, args := historyQuery(beneficiaryID, f)
	return collect(ctx, s.db, "delivery history", query, args, func(row beneficiarystore.Scanner) (models.HistoryRow, error) {
		var (
			r             models.HistoryRow
			item, batchID uuid.UUID
		)
		err := row.Scan(&item, &batchID, &r.DeliveryDate, &r.BenefitName, &r.Delivered)
		r.ItemID = id.ItemID(item)
		r.BatchID = id.BatchID(batchID)
		return r, err
	})
}

func (s *PostgresStore) BeneficiaryName(ctx context.Context, beneficiaryID id.BeneficiaryID) (string, error) {
	return s.name(ctx, `SELECT name FROM beneficiaries WHERE id = $1`, beneficiaryID.String())
}

func (s *PostgresStore) BenefitName(ctx context.Context, benefitID id.BenefitID) (string, error) {
	return s.name(ctx, `SELECT name FROM benefits WHERE id = $1`, benefitID.String())
}

func (s *PostgresStore) name(ctx context.Context, query, key string) (string, error) {
	var name string
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, query, key).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load name: %w", err)
	}
	return name, nil
}

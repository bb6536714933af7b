package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/pgerr"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

// PostgresStore persists assignments. The partial unique index
// assignments_one_active_per_pair backs the one-active-cycle rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const assignmentColumns = `id, beneficiary_id, benefit_id, active, start_date, end_date, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, a *models.Assignment) error {
	query := `INSERT INTO assignments (` + assignmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		a.ID.String(), a.BeneficiaryID.String(), a.BenefitID.String(), a.Active,
		a.StartDate.Time(), id.DateArg(a.EndDate), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", pgerr.Translate(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Assignment) error {
	query := `UPDATE assignments
		SET benefit_id = $2, active = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		a.ID.String(), a.BenefitID.String(), a.Active, a.StartDate.Time(), id.DateArg(a.EndDate), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", pgerr.Translate(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// FindByID locks the row so concurrent edits of one assignment serialize.
func (s *PostgresStore) FindByID(ctx context.Context, assignmentID id.AssignmentID) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	if _, inTx := tx.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	a, err := scanAssignment(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, assignmentID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindByIDs(ctx context.Context, ids []id.AssignmentID) ([]*models.Assignment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, assignmentID := range ids {
		raw[i] = assignmentID.String()
	}
	return s.query(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = ANY($1)`, pq.Array(raw))
}

func (s *PostgresStore) HasOtherActive(ctx context.Context, beneficiaryID id.BeneficiaryID, benefitID id.BenefitID, exclude id.AssignmentID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM assignments
		WHERE beneficiary_id = $1 AND benefit_id = $2 AND active AND id <> $3)`
	var exists bool
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx, query,
		beneficiaryID.String(), benefitID.String(), exclude.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active assignment: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) ([]*models.Assignment, error) {
	return s.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		WHERE beneficiary_id = $1 ORDER BY start_date DESC, created_at DESC`, beneficiaryID.String())
}

func (s *PostgresStore) ListActiveByBenefit(ctx context.Context, benefitID id.BenefitID) ([]*models.Assignment, error) {
	return s.query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		WHERE benefit_id = $1 AND active ORDER BY start_date DESC, created_at DESC`, benefitID.String())
}

func (s *PostgresStore) CountByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM assignments WHERE beneficiary_id = $1`, beneficiaryID.String())
}

func (s *PostgresStore) CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM assignments WHERE benefit_id = $1`, benefitID.String())
}

func (s *PostgresStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := tx.Conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Assignment, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var out []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row scanner) (*models.Assignment, error) {
	var (
		a                           models.Assignment
		rawID, beneficiary, benefit uuid.UUID
		end                         id.NullDate
	)
	err := row.Scan(&rawID, &beneficiary, &benefit, &a.Active, &a.StartDate, &end, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = id.AssignmentID(rawID)
	a.BeneficiaryID = id.BeneficiaryID(beneficiary)
	a.BenefitID = id.BenefitID(benefit)
	a.EndDate = end.Ptr()
	return &a, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"amparo/internal/benefit/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/pgerr"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

// PostgresStore persists the benefit catalog in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed benefit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const benefitColumns = `id, name, category, periodicity, active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, b *models.Benefit) error {
	query := `INSERT INTO benefits (` + benefitColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		b.ID.String(), b.Name, string(b.Category), string(b.Periodicity), b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert benefit: %w", pgerr.Translate(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, b *models.Benefit) error {
	query := `UPDATE benefits SET name = $2, category = $3, periodicity = $4, active = $5, updated_at = $6
		WHERE id = $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		b.ID.String(), b.Name, string(b.Category), string(b.Periodicity), b.Active, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update benefit: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, benefitID id.BenefitID) (*models.Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE id = $1`
	b, err := scanBenefit(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, benefitID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find benefit: %w", err)
	}
	return b, nil
}

// Delete removes a benefit. Protected references from assignments and
// batches surface as sentinel.ErrInUse.
func (s *PostgresStore) Delete(ctx context.Context, benefitID id.BenefitID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM benefits WHERE id = $1`, benefitID.String())
	if err != nil {
		return fmt.Errorf("delete benefit: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Benefit, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Category != "" {
		where = append(where, "category = "+arg(string(filter.Category)))
	}
	if filter.Active != nil {
		where = append(where, "active = "+arg(*filter.Active))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, "name ILIKE "+arg("%"+q+"%"))
	}

	query := `SELECT ` + benefitColumns + ` FROM benefits`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category, lower(name), id"

	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}
	defer rows.Close()

	var out []*models.Benefit
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan benefit: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBenefit(row scanner) (*models.Benefit, error) {
	var (
		b     models.Benefit
		rawID uuid.UUID
	)
	if err := row.Scan(&rawID, &b.Name, &b.Category, &b.Periodicity, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.ID = id.BenefitID(rawID)
	return &b, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

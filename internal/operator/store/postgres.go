package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"amparo/internal/operator/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/pgerr"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

// PostgresStore persists operator accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const operatorColumns = `id, username, password_hash, role, superuser, active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, op *models.Operator) error {
	query := `INSERT INTO operators (` + operatorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		op.ID.String(), op.Username, op.PasswordHash, string(op.Role), op.Superuser, op.Active, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operator: %w", pgerr.Translate(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, op *models.Operator) error {
	query := `UPDATE operators SET password_hash = $2, role = $3, superuser = $4, active = $5, updated_at = $6
		WHERE id = $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		op.ID.String(), op.PasswordHash, string(op.Role), op.Superuser, op.Active, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operator: %w", pgerr.Translate(err))
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

func (s *PostgresStore) FindByID(ctx context.Context, operatorID id.OperatorID) (*models.Operator, error) {
	return s.findOne(ctx, `id = $1`, operatorID.String())
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.Operator, error) {
	return s.findOne(ctx, `username = $1`, username)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE ` + where
	op, err := scanOperator(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find operator: %w", err)
	}
	return op, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Operator, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `SELECT `+operatorColumns+` FROM operators ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list operators: %w", err)
	}
	defer rows.Close()

	var out []*models.Operator
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operator: %w", err)
		}
		out = append(out, op)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT count(*) FROM operators`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operators: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOperator(row scanner) (*models.Operator, error) {
	var (
		op    models.Operator
		rawID uuid.UUID
	)
	if err := row.Scan(&rawID, &op.Username, &op.PasswordHash, &op.Role, &op.Superuser, &op.Active, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}
	op.ID = id.OperatorID(rawID)
	return &op, nil
}

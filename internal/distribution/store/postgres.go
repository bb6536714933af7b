package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/pgerr"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

// PostgresStore persists batches and delivery items. Items reference their
// batch with ON DELETE CASCADE.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const batchColumns = `id, benefit_id, delivery_date, notes, created_at, updated_at`

const itemColumns = `id, batch_id, assignment_id, delivered, created_at`

func (s *PostgresStore) CreateBatch(ctx context.Context, b *models.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		b.ID.String(), b.BenefitID.String(), b.DeliveryDate.Time(), b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", pgerr.Translate(err))
	}
	return nil
}

func (s *PostgresStore) UpdateBatch(ctx context.Context, b *models.Batch) error {
	query := `UPDATE batches SET delivery_date = $2, notes = $3, updated_at = $4 WHERE id = $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		b.ID.String(), b.DeliveryDate.Time(), b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

// FindBatch locks the batch row when called inside a transaction so
// checklist writes and deletes of one batch serialize.
func (s *PostgresStore) FindBatch(ctx context.Context, batchID id.BatchID) (*models.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	if _, inTx := tx.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	b, err := scanBatch(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, batchID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return b, nil
}

// DeleteBatch removes the batch; its items go with it through the cascade.
func (s *PostgresStore) DeleteBatch(ctx context.Context, batchID id.BatchID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, batchID.String())
	if err != nil {
		return fmt.Errorf("delete batch: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) ListBatches(ctx context.Context, filter models.ListFilter) ([]models.Summary, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		where = append(where, "b.delivery_date >= "+arg(filter.From.Time()))
	}
	if filter.To != nil {
		where = append(where, "b.delivery_date <= "+arg(filter.To.Time()))
	}
	if !filter.BenefitID.IsNil() {
		where = append(where, "b.benefit_id = "+arg(filter.BenefitID.String()))
	}

	query := `SELECT b.id, b.benefit_id, b.delivery_date, b.notes, b.created_at, b.updated_at,
		count(i.id), count(i.id) FILTER (WHERE i.delivered)
		FROM batches b LEFT JOIN delivery_items i ON i.batch_id = b.id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` GROUP BY b.id ORDER BY b.delivery_date DESC, b.created_at DESC`

	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []models.Summary
	for rows.Next() {
		var (
			b                rawBatch
			total, delivered int
		)
		if err := rows.Scan(&b.id, &b.benefitID, &b.DeliveryDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &total, &delivered); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, models.Summary{Batch: b.batch(), Totals: models.NewTotals(total, delivered)})
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error) {
	var n int
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM batches WHERE benefit_id = $1`, benefitID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// InsertItems bulk-inserts items in one statement. Rows whose (batch,
// assignment) pair exists are skipped; the count of inserted rows is returned.
func (s *PostgresStore) InsertItems(ctx context.Context, items []models.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	var (
		ids         = make([]string, len(items))
		batches     = make([]string, len(items))
		assignments = make([]string, len(items))
		created     = make([]time.Time, len(items))
	)
	for i, it := range items {
		ids[i] = it.ID.String()
		batches[i] = it.BatchID.String()
		assignments[i] = it.AssignmentID.String()
		created[i] = it.CreatedAt
	}
	query := `INSERT INTO delivery_items (` + itemColumns + `)
		SELECT t.id, t.batch_id, t.assignment_id, false, t.created_at
		FROM unnest($1::uuid[], $2::uuid[], $3::uuid[], $4::timestamptz[]) AS t(id, batch_id, assignment_id, created_at)
		ON CONFLICT (batch_id, assignment_id) DO NOTHING`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		pq.Array(ids), pq.Array(batches), pq.Array(assignments), pq.Array(timestamps(created)),
	)
	if err != nil {
		return 0, fmt.Errorf("insert delivery items: %w", pgerr.Translate(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// timestamps renders times for a timestamptz[] parameter; pq.Array has no
// time.Time support.
func timestamps(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format(time.RFC3339Nano)
	}
	return out
}

func (s *PostgresStore) HasItems(ctx context.Context, batchID id.BatchID) (bool, error) {
	var exists bool
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM delivery_items WHERE batch_id = $1)`, batchID.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check delivery items: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, batchID id.BatchID) ([]models.Item, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+itemColumns+` FROM delivery_items WHERE batch_id = $1 ORDER BY created_at, id`, batchID.String())
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()

	var out []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountDelivered(ctx context.Context, batchID id.BatchID) (int, error) {
	var n int
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM delivery_items WHERE batch_id = $1 AND delivered`, batchID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count delivered items: %w", err)
	}
	return n, nil
}

// SetDelivered updates one item of batchID and returns it.
func (s *PostgresStore) SetDelivered(ctx context.Context, batchID id.BatchID, itemID id.ItemID, delivered bool) (*models.Item, error) {
	query := `UPDATE delivery_items SET delivered = $3 WHERE id = $1 AND batch_id = $2 RETURNING ` + itemColumns
	it, err := scanItem(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, itemID.String(), batchID.String(), delivered))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set delivered: %w", err)
	}
	return it, nil
}

// SetDeliveredMany writes only the rows whose flag differs.
func (s *PostgresStore) SetDeliveredMany(ctx context.Context, batchID id.BatchID, ids []id.ItemID, delivered bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]string, len(ids))
	for i, itemID := range ids {
		raw[i] = itemID.String()
	}
	query := `UPDATE delivery_items SET delivered = $1
		WHERE batch_id = $2 AND id = ANY($3) AND delivered <> $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, delivered, batchID.String(), pq.Array(raw))
	if err != nil {
		return 0, fmt.Errorf("apply checklist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
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

type scanner interface {
	Scan(dest ...any) error
}

// rawBatch scans typed ids through uuid.UUID.
type rawBatch struct {
	models.Batch
	id, benefitID uuid.UUID
}

func (r *rawBatch) batch() *models.Batch {
	b := r.Batch
	b.ID = id.BatchID(r.id)
	b.BenefitID = id.BenefitID(r.benefitID)
	return &b
}

func scanBatch(row scanner) (*models.Batch, error) {
	var b rawBatch
	if err := row.Scan(&b.id, &b.benefitID, &b.DeliveryDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b.batch(), nil
}

func scanItem(row scanner) (*models.Item, error) {
	var (
		it                         models.Item
		rawID, batch, assignmentID uuid.UUID
	)
	if err := row.Scan(&rawID, &batch, &assignmentID, &it.Delivered, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.ID = id.ItemID(rawID)
	it.BatchID = id.BatchID(batch)
	it.AssignmentID = id.AssignmentID(assignmentID)
	return &it, nil
}

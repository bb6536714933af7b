package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

func TestPostgresStore_CreateBatchDuplicateDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	b := &models.Batch{
		ID:           id.BatchID(uuid.New()),
		BenefitID:    id.BenefitID(uuid.New()),
		DeliveryDate: id.Date{Year: 2024, Month: time.May, Day: 10},
	}
	mock.ExpectExec(`INSERT INTO batches`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: models.ConstraintBatchPerDay})

	err = NewPostgres(db).CreateBatch(context.Background(), b)
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	assert.Equal(t, models.ConstraintBatchPerDay, sentinel.Constraint(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertItemsIsOneStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	batchID := id.BatchID(uuid.New())
	created := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	a1, a2 := id.AssignmentID(uuid.New()), id.AssignmentID(uuid.New())
	list := []models.Item{
		{ID: id.ItemID(uuid.New()), BatchID: batchID, AssignmentID: a1, CreatedAt: created},
		{ID: id.ItemID(uuid.New()), BatchID: batchID, AssignmentID: a2, CreatedAt: created},
	}

	mock.ExpectExec(`INSERT INTO delivery_items .* FROM unnest\(.*\) .* ON CONFLICT \(batch_id, assignment_id\) DO NOTHING`).
		WithArgs(
			pq.Array([]string{list[0].ID.String(), list[1].ID.String()}),
			pq.Array([]string{batchID.String(), batchID.String()}),
			pq.Array([]string{a1.String(), a2.String()}),
			pq.Array([]string{"2024-05-10T09:00:00Z", "2024-05-10T09:00:00Z"}),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := NewPostgres(db).InsertItems(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "conflicting rows are skipped")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n, err := NewPostgres(db).InsertItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBatchesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := id.Date{Year: 2024, Month: time.May, Day: 1}
	benefitID := id.BenefitID(uuid.New())
	batchID := id.BatchID(uuid.New())
	created := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "benefit_id", "delivery_date", "notes", "created_at", "updated_at", "total", "delivered"}).
		AddRow(batchID.String(), benefitID.String(), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), "", created, created, 5, 2)
	mock.ExpectQuery(`WHERE b.delivery_date >= \$1 AND b.benefit_id = \$2 GROUP BY b.id ORDER BY b.delivery_date DESC`).
		WithArgs(from.Time(), benefitID.String()).
		WillReturnRows(rows)

	got, err := NewPostgres(db).ListBatches(context.Background(), models.ListFilter{From: &from, BenefitID: benefitID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, batchID, got[0].Batch.ID)
	assert.Equal(t, "2024-05-10", got[0].Batch.DeliveryDate.String())
	assert.Equal(t, models.Totals{Total: 5, Delivered: 2, Pending: 3}, got[0].Totals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetDeliveredManyWritesChangedRowsOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	batchID := id.BatchID(uuid.New())
	itemID := id.ItemID(uuid.New())
	mock.ExpectExec(`UPDATE delivery_items SET delivered = \$1 WHERE batch_id = \$2 AND id = ANY\(\$3\) AND delivered <> \$1`).
		WithArgs(true, batchID.String(), pq.Array([]string{itemID.String()})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := NewPostgres(db).SetDeliveredMany(context.Background(), batchID, []id.ItemID{itemID}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetDeliveredUnknownItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	batchID := id.BatchID(uuid.New())
	itemID := id.ItemID(uuid.New())
	mock.ExpectQuery(`UPDATE delivery_items SET delivered = \$3 WHERE id = \$1 AND batch_id = \$2 RETURNING`).
		WithArgs(itemID.String(), batchID.String(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "assignment_id", "delivered", "created_at"}))

	_, err = NewPostgres(db).SetDelivered(context.Background(), batchID, itemID, true)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

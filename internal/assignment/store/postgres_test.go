package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

var columns = []string{"id", "beneficiary_id", "benefit_id", "active", "start_date", "end_date", "created_at", "updated_at"}

func sample() *models.Assignment {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &models.Assignment{
		ID:            id.AssignmentID(uuid.New()),
		BeneficiaryID: id.BeneficiaryID(uuid.New()),
		BenefitID:     id.BenefitID(uuid.New()),
		Active:        true,
		StartDate:     id.Date{Year: 2024, Month: time.May, Day: 1},
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestPostgresStore_CreateRaceLoser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := sample()
	mock.ExpectExec(`INSERT INTO assignments`).
		WithArgs(a.ID.String(), a.BeneficiaryID.String(), a.BenefitID.String(), true,
			a.StartDate.Time(), nil, a.CreatedAt, a.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: models.ConstraintOneActive})

	err = NewPostgres(db).Create(context.Background(), a)
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	assert.Equal(t, models.ConstraintOneActive, sentinel.Constraint(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByIDLocksInsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := sample()
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).AddRow(a.ID.String(), a.BeneficiaryID.String(), a.BenefitID.String(),
		false, a.StartDate.Time(), end, a.CreatedAt, a.UpdatedAt)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assignments WHERE id = \$1 FOR UPDATE`).WithArgs(a.ID.String()).WillReturnRows(rows)
	mock.ExpectCommit()

	err = tx.NewSQLRunner(db).RunInTx(context.Background(), func(ctx context.Context) error {
		found, err := NewPostgres(db).FindByID(ctx, a.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, a.BenefitID, found.BenefitID)
		require.NotNil(t, found.EndDate)
		assert.Equal(t, "2024-06-01", found.EndDate.String())
		assert.False(t, found.Active)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM assignments WHERE id = \$1$`).WillReturnRows(sqlmock.NewRows(columns))
	_, err = NewPostgres(db).FindByID(context.Background(), id.AssignmentID(uuid.New()))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStore_HasOtherActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := sample()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(a.BeneficiaryID.String(), a.BenefitID.String(), a.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewPostgres(db).HasOtherActive(context.Background(), a.BeneficiaryID, a.BenefitID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresStore_FindByIDsUsesArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := sample()
	mock.ExpectQuery(`WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(a.ID.String(), a.BeneficiaryID.String(), a.BenefitID.String(),
			true, a.StartDate.Time(), nil, a.CreatedAt, a.UpdatedAt))

	found, err := NewPostgres(db).FindByIDs(context.Background(), []id.AssignmentID{a.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a, found[0])

	none, err := NewPostgres(db).FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
	require.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/pgerr"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
)

// PostgresStore persists beneficiaries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed beneficiary store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Columns lists the beneficiaries table in scan order. Reports select the
// same list so rows come back through ScanBeneficiary.
const Columns = `id, code, name, national_id, birth_date, phone,
	street, number, complement, district, city, state, postal_code,
	employment, income_provider, income_bracket, housing_type, housing_material,
	risk_area, literate, schooling,
	diabetes, hypertension, continuous_medication, permanent_illness,
	program_start_date, status, inactivated_on, inactivation_reason,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, b *models.Beneficiary) error {
	query := `INSERT INTO beneficiaries (` + Columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	if _, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, rowArgs(b)...); err != nil {
		return fmt.Errorf("insert beneficiary: %w", pgerr.Translate(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, b *models.Beneficiary) error {
	query := `UPDATE beneficiaries SET
		name = $2, national_id = $3, birth_date = $4, phone = $5,
		street = $6, number = $7, complement = $8, district = $9, city = $10, state = $11, postal_code = $12,
		employment = $13, income_provider = $14, income_bracket = $15, housing_type = $16, housing_material = $17,
		risk_area = $18, literate = $19, schooling = $20,
		diabetes = $21, hypertension = $22, continuous_medication = $23, permanent_illness = $24,
		program_start_date = $25, status = $26, inactivated_on = $27, inactivation_reason = $28,
		updated_at = $29
		WHERE id = $1`
	all := rowArgs(b)
	args := append([]any{all[0]}, all[2:29]...)
	args = append(args, all[30])
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update beneficiary: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

// rowArgs lists the values of b in Columns order.
func rowArgs(b *models.Beneficiary) []any {
	var nationalID sql.NullString
	if b.NationalID != "" {
		nationalID = sql.NullString{String: b.NationalID, Valid: true}
	}
	return []any{
		b.ID.String(), b.Code, b.Name, nationalID, id.DateArg(b.BirthDate), b.Phone,
		b.Address.Street, b.Address.Number, b.Address.Complement, b.Address.District,
		b.Address.City, b.Address.State, b.Address.PostalCode,
		string(b.Socioeconomic.Employment), string(b.Socioeconomic.IncomeProvider),
		string(b.Socioeconomic.IncomeBracket), string(b.Socioeconomic.HousingType),
		string(b.Socioeconomic.HousingMaterial),
		string(b.Socioeconomic.RiskArea), string(b.Socioeconomic.Literate), string(b.Socioeconomic.Schooling),
		string(b.Health.Diabetes), string(b.Health.Hypertension),
		string(b.Health.ContinuousMedication), string(b.Health.PermanentIllness),
		id.DateArg(b.ProgramStartDate), string(b.Status), id.DateArg(b.InactivatedOn), b.InactivationReason,
		b.CreatedAt, b.UpdatedAt,
	}
}

func (s *PostgresStore) FindByID(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	query := `SELECT ` + Columns + ` FROM beneficiaries WHERE id = $1`
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, query, beneficiaryID.String())
	b, err := ScanBeneficiary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find beneficiary by id: %w", err)
	}
	return b, nil
}

// FindByIDs loads the beneficiaries among ids that exist.
func (s *PostgresStore) FindByIDs(ctx context.Context, ids []id.BeneficiaryID) ([]*models.Beneficiary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, beneficiaryID := range ids {
		raw[i] = beneficiaryID.String()
	}
	query := `SELECT ` + Columns + ` FROM beneficiaries WHERE id = ANY($1)`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("find beneficiaries by id: %w", err)
	}
	defer rows.Close()

	var out []*models.Beneficiary
	for rows.Next() {
		b, err := ScanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM beneficiaries WHERE code = $1)`
	if err := tx.Conn(ctx, s.db).QueryRowContext(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("check beneficiary code: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Delete(ctx context.Context, beneficiaryID id.BeneficiaryID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM beneficiaries WHERE id = $1`, beneficiaryID.String())
	if err != nil {
		return fmt.Errorf("delete beneficiary: %w", pgerr.Translate(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Beneficiary, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := arg("%" + q + "%")
		cond := "(name ILIKE " + like + " OR code ILIKE " + like + " OR phone ILIKE " + like
		if digits := models.Digits(q); digits != "" {
			cond += " OR national_id LIKE " + arg("%"+digits+"%")
		}
		where = append(where, cond+")")
	}

	query := `SELECT ` + Columns + ` FROM beneficiaries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lower(name), code"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var out []*models.Beneficiary
	for rows.Next() {
		b, err := ScanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beneficiaries: %w", err)
	}
	return out, nil
}

type Scanner interface {
	Scan(dest ...any) error
}

func ScanBeneficiary(row Scanner) (*models.Beneficiary, error) {
	var (
		b                                  models.Beneficiary
		rawID                              uuid.UUID
		nationalID                         sql.NullString
		birth, programStart, inactivatedOn id.NullDate
	)
	err := row.Scan(
		&rawID, &b.Code, &b.Name, &nationalID, &birth, &b.Phone,
		&b.Address.Street, &b.Address.Number, &b.Address.Complement, &b.Address.District,
		&b.Address.City, &b.Address.State, &b.Address.PostalCode,
		&b.Socioeconomic.Employment, &b.Socioeconomic.IncomeProvider, &b.Socioeconomic.IncomeBracket,
		&b.Socioeconomic.HousingType, &b.Socioeconomic.HousingMaterial,
		&b.Socioeconomic.RiskArea, &b.Socioeconomic.Literate, &b.Socioeconomic.Schooling,
		&b.Health.Diabetes, &b.Health.Hypertension, &b.Health.ContinuousMedication, &b.Health.PermanentIllness,
		&programStart, &b.Status, &inactivatedOn, &b.InactivationReason,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.ID = id.BeneficiaryID(rawID)
	b.NationalID = nationalID.String
	b.BirthDate = birth.Ptr()
	b.ProgramStartDate = programStart.Ptr()
	b.InactivatedOn = inactivatedOn.Ptr()
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

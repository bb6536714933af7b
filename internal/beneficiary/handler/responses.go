package handler

import (
	"time"

	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
)

// BeneficiaryResponse carries the stored attributes plus derived
// presentation fields.
type BeneficiaryResponse struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	NationalID         string          `json:"national_id,omitempty"`
	BirthDate          *id.Date        `json:"birth_date,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Address            Address         `json:"address"`
	Employment         string          `json:"employment"`
	IncomeProvider     string          `json:"income_provider"`
	IncomeBracket      string          `json:"income_bracket"`
	HousingType        string          `json:"housing_type"`
	HousingMaterial    string          `json:"housing_material"`
	RiskArea           string          `json:"risk_area"`
	Literate           string          `json:"literate"`
	Schooling          string          `json:"schooling"`
	Health             Health          `json:"health"`
	ProgramStartDate   *id.Date        `json:"program_start_date,omitempty"`
	Status             string          `json:"status"`
	InactivatedOn      *id.Date        `json:"inactivated_on,omitempty"`
	InactivationReason string          `json:"inactivation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	Derived            DerivedResponse `json:"derived"`
}

// DerivedResponse holds values computed on read and never stored.
type DerivedResponse struct {
	Age                 *int   `json:"age,omitempty"`
	FormattedNationalID string `json:"formatted_national_id,omitempty"`
	FormattedPostalCode string `json:"formatted_postal_code,omitempty"`
	FormattedPhone      string `json:"formatted_phone,omitempty"`
	AddressSummary      string `json:"address_summary,omitempty"`
	StatusLabel         string `json:"status_label"`
}

type ListResponse struct {
	Beneficiaries []*BeneficiaryResponse `json:"beneficiaries"`
	Count         int                    `json:"count"`
}

func toResponse(b *models.Beneficiary, today id.Date) *BeneficiaryResponse {
	resp := &BeneficiaryResponse{
		ID:         b.ID.String(),
		Code:       b.Code,
		Name:       b.Name,
		NationalID: b.NationalID,
		BirthDate:  b.BirthDate,
		Phone:      b.Phone,
		Address: Address{
			Street:     b.Address.Street,
			Number:     b.Address.Number,
			Complement: b.Address.Complement,
			District:   b.Address.District,
			City:       b.Address.City,
			State:      b.Address.State,
			PostalCode: b.Address.PostalCode,
		},
		Employment:      string(b.Socioeconomic.Employment),
		IncomeProvider:  string(b.Socioeconomic.IncomeProvider),
		IncomeBracket:   string(b.Socioeconomic.IncomeBracket),
		HousingType:     string(b.Socioeconomic.HousingType),
		HousingMaterial: string(b.Socioeconomic.HousingMaterial),
		RiskArea:        string(b.Socioeconomic.RiskArea),
		Literate:        string(b.Socioeconomic.Literate),
		Schooling:       string(b.Socioeconomic.Schooling),
		Health: Health{
			Diabetes:             string(b.Health.Diabetes),
			Hypertension:         string(b.Health.Hypertension),
			ContinuousMedication: string(b.Health.ContinuousMedication),
			PermanentIllness:     string(b.Health.PermanentIllness),
		},
		ProgramStartDate:   b.ProgramStartDate,
		Status:             string(b.Status),
		InactivatedOn:      b.InactivatedOn,
		InactivationReason: b.InactivationReason,
		CreatedAt:          b.CreatedAt,
		Derived: DerivedResponse{
			FormattedNationalID: b.FormattedNationalID(),
			FormattedPostalCode: b.FormattedPostalCode(),
			FormattedPhone:      b.FormattedPhone(),
			AddressSummary:      b.AddressSummary(),
			StatusLabel:         models.Label(b.Status),
		},
	}
	if age, ok := b.Age(today); ok {
		resp.Derived.Age = &age
	}
	return resp
}

func toListResponse(list []*models.Beneficiary, today id.Date) *ListResponse {
	out := make([]*BeneficiaryResponse, len(list))
	for i, b := range list {
		out[i] = toResponse(b, today)
	}
	return &ListResponse{Beneficiaries: out, Count: len(out)}
}

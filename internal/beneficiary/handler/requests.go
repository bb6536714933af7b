package handler

import (
	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// BeneficiaryRequest is the body of POST and PUT /v1/beneficiaries.
type BeneficiaryRequest struct {
	Name               string  `json:"name"`
	NationalID         string  `json:"national_id"`
	BirthDate          string  `json:"birth_date"`
	Phone              string  `json:"phone"`
	Address            Address `json:"address"`
	Employment         string  `json:"employment"`
	IncomeProvider     string  `json:"income_provider"`
	IncomeBracket      string  `json:"income_bracket"`
	HousingType        string  `json:"housing_type"`
	HousingMaterial    string  `json:"housing_material"`
	RiskArea           string  `json:"risk_area"`
	Literate           string  `json:"literate"`
	Schooling          string  `json:"schooling"`
	Health             Health  `json:"health"`
	ProgramStartDate   string  `json:"program_start_date"`
	Status             string  `json:"status"`
	InactivatedOn      string  `json:"inactivated_on"`
	InactivationReason string  `json:"inactivation_reason"`

	fields models.Fields
}

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type Health struct {
	Diabetes             string `json:"diabetes"`
	Hypertension         string `json:"hypertension"`
	ContinuousMedication string `json:"continuous_medication"`
	PermanentIllness     string `json:"permanent_illness"`
}

// Validate parses dates and categorical values. Attribute rules (CPF, postal
// code, lengths) are enforced by the model on save.
func (r *BeneficiaryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	f := models.Fields{
		Name:       r.Name,
		NationalID: r.NationalID,
		Phone:      r.Phone,
		Address: models.Address{
			Street:     r.Address.Street,
			Number:     r.Address.Number,
			Complement: r.Address.Complement,
			District:   r.Address.District,
			City:       r.Address.City,
			State:      r.Address.State,
			PostalCode: r.Address.PostalCode,
		},
		InactivationReason: r.InactivationReason,
	}

	var err error
	dates := []struct {
		field string
		raw   string
		dst   **id.Date
	}{
		{"birth_date", r.BirthDate, &f.BirthDate},
		{"program_start_date", r.ProgramStartDate, &f.ProgramStartDate},
		{"inactivated_on", r.InactivatedOn, &f.InactivatedOn},
	}
	for _, d := range dates {
		if *d.dst, err = id.ParseOptionalDate(d.raw); err != nil {
			return dErrors.WrapField(err, d.field, d.field+" must be a date in YYYY-MM-DD format")
		}
	}

	if f.Status, err = models.ParseChoice("status", r.Status, models.StatusActive, models.Statuses()); err != nil {
		return err
	}
	se := &f.Socioeconomic
	if se.Employment, err = models.ParseChoice("employment", r.Employment, models.EmploymentNotInformed, models.Employments()); err != nil {
		return err
	}
	if se.IncomeProvider, err = models.ParseChoice("income_provider", r.IncomeProvider, models.IncomeProviderNotInformed, models.IncomeProviders()); err != nil {
		return err
	}
	if se.IncomeBracket, err = models.ParseChoice("income_bracket", r.IncomeBracket, models.IncomeNotInformed, models.IncomeBrackets()); err != nil {
		return err
	}
	if se.HousingType, err = models.ParseChoice("housing_type", r.HousingType, models.HousingNotInformed, models.HousingTypes()); err != nil {
		return err
	}
	if se.HousingMaterial, err = models.ParseChoice("housing_material", r.HousingMaterial, models.MaterialNotInformed, models.HousingMaterials()); err != nil {
		return err
	}
	if se.Schooling, err = models.ParseChoice("schooling", r.Schooling, models.SchoolingNotInformed, models.SchoolingLevels()); err != nil {
		return err
	}

	tri := []struct {
		field string
		raw   string
		dst   *models.TriState
	}{
		{"risk_area", r.RiskArea, &se.RiskArea},
		{"literate", r.Literate, &se.Literate},
		{"diabetes", r.Health.Diabetes, &f.Health.Diabetes},
		{"hypertension", r.Health.Hypertension, &f.Health.Hypertension},
		{"continuous_medication", r.Health.ContinuousMedication, &f.Health.ContinuousMedication},
		{"permanent_illness", r.Health.PermanentIllness, &f.Health.PermanentIllness},
	}
	for _, t := range tri {
		if *t.dst, err = models.ParseChoice(t.field, t.raw, models.TriNotInformed, models.TriStates()); err != nil {
			return err
		}
	}

	r.fields = f
	return nil
}

// Fields returns the parsed attribute set.
func (r *BeneficiaryRequest) Fields() models.Fields {
	return r.fields
}

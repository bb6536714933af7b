package handler

import (
	"net/url"
	"strconv"
	"strings"

	beneficiary "amparo/internal/beneficiary/models"
	benefit "amparo/internal/benefit/models"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
)

// Query parameters are parsed strictly: malformed ids, dates and categorical
// values are rejected. Sort keys and status filters are not; they fall back
// to the report default.

func parseBeneficiaryFilter(q url.Values) (models.BeneficiaryFilter, error) {
	f := models.BeneficiaryFilter{
		Query:      q.Get("q"),
		Street:     q.Get("street"),
		PostalCode: q.Get("postal_code"),
		Sort:       models.Sort(q.Get("sort")),
	}
	var err error
	if status := q.Get("status"); !strings.EqualFold(status, "all") {
		if f.Status, err = beneficiary.ParseChoice("status", status, "", beneficiary.Statuses()); err != nil {
			return f, err
		}
	}
	if f.BenefitID, err = optionalBenefitID(q); err != nil {
		return f, err
	}

	if f.Employment, err = beneficiary.ParseChoice("employment", q.Get("employment"), "", beneficiary.Employments()); err != nil {
		return f, err
	}
	if f.IncomeProvider, err = beneficiary.ParseChoice("income_provider", q.Get("income_provider"), "", beneficiary.IncomeProviders()); err != nil {
		return f, err
	}
	if f.IncomeBracket, err = beneficiary.ParseChoice("income_bracket", q.Get("income_bracket"), "", beneficiary.IncomeBrackets()); err != nil {
		return f, err
	}
	if f.HousingType, err = beneficiary.ParseChoice("housing_type", q.Get("housing_type"), "", beneficiary.HousingTypes()); err != nil {
		return f, err
	}
	if f.HousingMaterial, err = beneficiary.ParseChoice("housing_material", q.Get("housing_material"), "", beneficiary.HousingMaterials()); err != nil {
		return f, err
	}
	if f.Schooling, err = beneficiary.ParseChoice("schooling", q.Get("schooling"), "", beneficiary.SchoolingLevels()); err != nil {
		return f, err
	}

	tri := []struct {
		param string
		dst   *beneficiary.TriState
	}{
		{"risk_area", &f.RiskArea},
		{"literate", &f.Literate},
		{"diabetes", &f.Diabetes},
		{"hypertension", &f.Hypertension},
		{"continuous_medication", &f.ContinuousMedication},
		{"permanent_illness", &f.PermanentIllness},
	}
	for _, t := range tri {
		if *t.dst, err = beneficiary.ParseChoice(t.param, q.Get(t.param), "", beneficiary.TriStates()); err != nil {
			return f, err
		}
	}
	return f, nil
}

func parseAssignmentFilter(q url.Values) (models.AssignmentFilter, error) {
	f := models.AssignmentFilter{
		Status: models.ParseAssignmentStatus(q.Get("status")),
		Query:  q.Get("q"),
		Sort:   models.Sort(q.Get("sort")),
	}
	var err error
	if f.BenefitID, err = optionalBenefitID(q); err != nil {
		return f, err
	}
	if raw := q.Get("beneficiary_id"); raw != "" {
		if f.BeneficiaryID, err = id.ParseBeneficiaryID(raw); err != nil {
			return f, err
		}
	}
	return f, nil
}

func parseBenefitFilter(q url.Values) (models.BenefitFilter, error) {
	f := models.BenefitFilter{Query: q.Get("q"), Sort: models.Sort(q.Get("sort"))}
	if raw := q.Get("category"); raw != "" {
		category, err := benefit.ParseCategory(raw)
		if err != nil {
			return f, err
		}
		f.Category = category
	}
	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeBadRequest, "active must be true or false")
		}
		f.Active = &active
	}
	return f, nil
}

func parseBatchFilter(q url.Values) (models.BatchFilter, error) {
	f := models.BatchFilter{Query: q.Get("q"), Sort: models.Sort(q.Get("sort"))}
	var err error
	if f.From, f.To, err = dateRange(q); err != nil {
		return f, err
	}
	if f.BenefitID, err = optionalBenefitID(q); err != nil {
		return f, err
	}
	return f, nil
}

func parseHistoryFilter(q url.Values) (models.HistoryFilter, error) {
	f := models.HistoryFilter{
		Status: models.ParseDeliveryStatus(q.Get("status")),
		Sort:   models.Sort(q.Get("sort")),
	}
	var err error
	if f.From, f.To, err = dateRange(q); err != nil {
		return f, err
	}
	if f.BenefitID, err = optionalBenefitID(q); err != nil {
		return f, err
	}
	return f, nil
}

func optionalBenefitID(q url.Values) (id.BenefitID, error) {
	raw := q.Get("benefit_id")
	if raw == "" {
		return id.BenefitID{}, nil
	}
	return id.ParseBenefitID(raw)
}

func dateRange(q url.Values) (from, to *id.Date, err error) {
	if from, err = id.ParseOptionalDate(q.Get("from")); err != nil {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "from must be a date in YYYY-MM-DD format")
	}
	if to, err = id.ParseOptionalDate(q.Get("to")); err != nil {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "to must be a date in YYYY-MM-DD format")
	}
	return from, to, nil
}

package models

import (
	"strconv"

	assignment "amparo/internal/assignment/models"
	beneficiary "amparo/internal/beneficiary/models"
	benefit "amparo/internal/benefit/models"
	id "amparo/pkg/domain"
)

type person = *beneficiary.Beneficiary

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func displayDate(d *id.Date) string {
	if d == nil {
		return ""
	}
	return d.Display()
}

var (
	codeColumn   = Column[person]{"Code", func(b person) string { return b.Code }}
	nameColumn   = Column[person]{"Name", func(b person) string { return b.Name }}
	statusColumn = Column[person]{"Status", func(b person) string { return beneficiary.Label(b.Status) }}
)

// IdentificationColumns projects identity and address. Age is computed on
// today.
func IdentificationColumns(today id.Date) []Column[person] {
	return []Column[person]{
		codeColumn,
		nameColumn,
		{"CPF", func(b person) string { return b.FormattedNationalID() }},
		{"Age", func(b person) string {
			if age, ok := b.Age(today); ok {
				return strconv.Itoa(age)
			}
			return ""
		}},
		{"Phone", func(b person) string { return b.FormattedPhone() }},
		{"Address", func(b person) string { return b.AddressSummary() }},
		{"District", func(b person) string { return b.Address.District }},
		statusColumn,
	}
}

var HealthColumns = []Column[person]{
	codeColumn,
	nameColumn,
	{"Diabetes", func(b person) string { return beneficiary.Label(b.Health.Diabetes) }},
	{"Hypertension", func(b person) string { return beneficiary.Label(b.Health.Hypertension) }},
	{"Continuous medication", func(b person) string { return beneficiary.Label(b.Health.ContinuousMedication) }},
	{"Permanent illness", func(b person) string { return beneficiary.Label(b.Health.PermanentIllness) }},
	statusColumn,
}

var SocioeconomicColumns = []Column[person]{
	codeColumn,
	nameColumn,
	{"Employment", func(b person) string { return beneficiary.Label(b.Socioeconomic.Employment) }},
	{"Income provider", func(b person) string { return beneficiary.Label(b.Socioeconomic.IncomeProvider) }},
	{"Income", func(b person) string { return beneficiary.Label(b.Socioeconomic.IncomeBracket) }},
	{"Housing", func(b person) string { return beneficiary.Label(b.Socioeconomic.HousingType) }},
	{"Material", func(b person) string { return beneficiary.Label(b.Socioeconomic.HousingMaterial) }},
	{"Risk area", func(b person) string { return beneficiary.Label(b.Socioeconomic.RiskArea) }},
	{"Literate", func(b person) string { return beneficiary.Label(b.Socioeconomic.Literate) }},
	{"Schooling", func(b person) string { return beneficiary.Label(b.Socioeconomic.Schooling) }},
	statusColumn,
}

var RosterColumns = []Column[person]{
	codeColumn,
	nameColumn,
	{"CPF", func(b person) string { return b.FormattedNationalID() }},
	{"Phone", func(b person) string { return b.FormattedPhone() }},
	{"Address", func(b person) string { return b.AddressSummary() }},
}

// AssignmentColumns reports the state on today next to the stored flag,
// which may lag until the next save.
func AssignmentColumns(today id.Date) []Column[AssignmentRow] {
	return []Column[AssignmentRow]{
		{"Code", func(r AssignmentRow) string { return r.BeneficiaryCode }},
		{"Beneficiary", func(r AssignmentRow) string { return r.BeneficiaryName }},
		{"CPF", func(r AssignmentRow) string { return beneficiary.FormatCPF(r.NationalID) }},
		{"Benefit", func(r AssignmentRow) string { return r.BenefitName }},
		{"Start", func(r AssignmentRow) string { return r.StartDate.Display() }},
		{"End", func(r AssignmentRow) string { return displayDate(r.EndDate) }},
		{"Active", func(r AssignmentRow) string { return yesNo(r.Active) }},
		{"State", func(r AssignmentRow) string { return string(assignment.StateOn(r.StartDate, r.EndDate, today)) }},
	}
}

var BenefitColumns = []Column[BenefitRow]{
	{"Benefit", func(r BenefitRow) string { return r.Name }},
	{"Category", func(r BenefitRow) string { return benefit.Label(r.Category) }},
	{"Periodicity", func(r BenefitRow) string { return benefit.Label(r.Periodicity) }},
	{"Available", func(r BenefitRow) string { return yesNo(r.Active) }},
	{"Active assignments", func(r BenefitRow) string { return strconv.Itoa(r.ActiveCount) }},
	{"Ended assignments", func(r BenefitRow) string { return strconv.Itoa(r.EndedCount) }},
}

var BatchColumns = []Column[BatchRow]{
	{"Date", func(r BatchRow) string { return r.DeliveryDate.Display() }},
	{"Benefit", func(r BatchRow) string { return r.BenefitName }},
	{"Items", func(r BatchRow) string { return strconv.Itoa(r.Totals.Total) }},
	{"Delivered", func(r BatchRow) string { return strconv.Itoa(r.Totals.Delivered) }},
	{"Pending", func(r BatchRow) string { return strconv.Itoa(r.Totals.Pending) }},
	{"Notes", func(r BatchRow) string { return r.Notes }},
}

var ItemColumns = []Column[ItemRow]{
	{"Code", func(r ItemRow) string { return r.BeneficiaryCode }},
	{"Beneficiary", func(r ItemRow) string { return r.BeneficiaryName }},
	{"CPF", func(r ItemRow) string { return beneficiary.FormatCPF(r.NationalID) }},
	{"Phone", func(r ItemRow) string { return beneficiary.FormatPhone(r.Phone) }},
	{"Delivered", func(r ItemRow) string {
		if r.Delivered {
			return "[x]"
		}
		return "[ ]"
	}},
}

var HistoryColumns = []Column[HistoryRow]{
	{"Date", func(r HistoryRow) string { return r.DeliveryDate.Display() }},
	{"Benefit", func(r HistoryRow) string { return r.BenefitName }},
	{"Status", func(r HistoryRow) string {
		if r.Delivered {
			return "Delivered"
		}
		return "Pending"
	}},
}

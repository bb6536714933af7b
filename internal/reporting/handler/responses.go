package handler

import "amparo/internal/reporting/models"

// ReportResponse is the JSON rendering of a report. Every cell is the
// formatted string shown on the printed page.
type ReportResponse struct {
	Report  string     `json:"report"`
	Title   string     `json:"title"`
	Sort    string     `json:"sort"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
}

func toResponse(t *models.Table) *ReportResponse {
	return &ReportResponse{
		Report:  t.Name,
		Title:   t.Title,
		Sort:    string(t.Sort),
		Columns: t.Columns,
		Rows:    t.Rows,
		Count:   len(t.Rows),
	}
}

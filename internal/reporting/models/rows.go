package models

import (
	benefit "amparo/internal/benefit/models"
	distribution "amparo/internal/distribution/models"
	id "amparo/pkg/domain"
)

// AssignmentRow is an assignment joined with its beneficiary and benefit.
type AssignmentRow struct {
	ID              id.AssignmentID
	BeneficiaryID   id.BeneficiaryID
	BeneficiaryCode string
	BeneficiaryName string
	NationalID      string
	BenefitID       id.BenefitID
	BenefitName     string
	StartDate       id.Date
	EndDate         *id.Date
	Active          bool
}

// BenefitRow is a catalog entry with its assignment counters.
type BenefitRow struct {
	ID          id.BenefitID
	Name        string
	Category    benefit.Category
	Periodicity benefit.Periodicity
	Active      bool
	ActiveCount int
	EndedCount  int
}

type BatchRow struct {
	ID           id.BatchID
	BenefitID    id.BenefitID
	BenefitName  string
	DeliveryDate id.Date
	Notes        string
	Totals       distribution.Totals
}

// ItemRow is one line of a printable checklist.
type ItemRow struct {
	ID              id.ItemID
	BeneficiaryCode string
	BeneficiaryName string
	NationalID      string
	Phone           string
	Delivered       bool
}

// HistoryRow is one delivery item of a beneficiary with its batch.
type HistoryRow struct {
	ItemID       id.ItemID
	BatchID      id.BatchID
	DeliveryDate id.Date
	BenefitName  string
	Delivered    bool
}

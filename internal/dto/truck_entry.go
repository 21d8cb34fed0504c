package dto

import (
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTruckEntryRequest holds the payload for recording a truck movement.
// RatePerUnit may be omitted for sales entries, in which case the latest
// effective material rate is used.
type CreateTruckEntryRequest struct {
	EntryType    domain.EntryType    `json:"entryType" binding:"required,oneof=SALES RAW_STONE"`
	MaterialType domain.MaterialType `json:"materialType" binding:"omitempty,oneof=DUST AGGREGATE BOULDER GSB"`
	TruckNumber  string              `json:"truckNumber" binding:"required"`
	Units        decimal.Decimal     `json:"units" binding:"required"`
	RatePerUnit  *decimal.Decimal    `json:"ratePerUnit,omitempty"`
	EntryDate    string              `json:"entryDate" binding:"required,dateformat"` // YYYY-MM-DD
	EntryTime    string              `json:"entryTime" binding:"omitempty"`
	Description  string              `json:"description"`
}

// UpdateTruckEntryRequest holds the payload for editing a truck entry.
// Nil fields are left unchanged; TotalAmount is always re-derived and is
// deliberately not accepted.
type UpdateTruckEntryRequest struct {
	MaterialType *domain.MaterialType `json:"materialType,omitempty" binding:"omitempty,oneof=DUST AGGREGATE BOULDER GSB"`
	TruckNumber  *string              `json:"truckNumber,omitempty"`
	Units        *decimal.Decimal     `json:"units,omitempty"`
	RatePerUnit  *decimal.Decimal     `json:"ratePerUnit,omitempty"`
	EntryDate    *string              `json:"entryDate,omitempty"` // YYYY-MM-DD
	EntryTime    *string              `json:"entryTime,omitempty"`
	Description  *string              `json:"description,omitempty"`
}

// TruckEntryResponse is the API representation of a truck entry.
type TruckEntryResponse struct {
	EntryID      string              `json:"entryID"`
	EntryType    domain.EntryType    `json:"entryType"`
	MaterialType domain.MaterialType `json:"materialType,omitempty"`
	TruckNumber  string              `json:"truckNumber"`
	Units        decimal.Decimal     `json:"units"`
	RatePerUnit  decimal.Decimal     `json:"ratePerUnit"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	EntryDate    string              `json:"entryDate"`
	EntryTime    string              `json:"entryTime,omitempty"`
	Description  string              `json:"description,omitempty"`
}

// ToTruckEntryResponse converts a domain truck entry to its API representation.
func ToTruckEntryResponse(e *domain.TruckEntry) TruckEntryResponse {
	return TruckEntryResponse{
		EntryID:      e.EntryID,
		EntryType:    e.EntryType,
		MaterialType: e.MaterialType,
		TruckNumber:  e.TruckNumber,
		Units:        e.Units,
		RatePerUnit:  e.RatePerUnit,
		TotalAmount:  e.TotalAmount,
		EntryDate:    e.EntryDate.Format("2006-01-02"),
		EntryTime:    e.EntryTime,
		Description:  e.Description,
	}
}

// ListTruckEntriesResponse is a page of truck entries plus the keyset token
// for the next page ("" when exhausted).
type ListTruckEntriesResponse struct {
	Entries   []TruckEntryResponse `json:"entries"`
	NextToken string               `json:"nextToken,omitempty"`
}

// ToListTruckEntriesResponse converts a page of domain entries.
func ToListTruckEntriesResponse(entries []domain.TruckEntry, nextToken string) ListTruckEntriesResponse {
	resp := ListTruckEntriesResponse{
		Entries:   make([]TruckEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = ToTruckEntryResponse(&entries[i])
	}
	return resp
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes the two kinds of truck movements the business records.
type EntryType string

const (
	EntrySales    EntryType = "SALES"     // material leaving the site
	EntryRawStone EntryType = "RAW_STONE" // raw stone purchased and brought in
)

// MaterialType enumerates the crushed-material products that can be sold.
type MaterialType string

const (
	MaterialDust      MaterialType = "DUST"
	MaterialAggregate MaterialType = "AGGREGATE"
	MaterialBoulder   MaterialType = "BOULDER"
	MaterialGSB       MaterialType = "GSB"
)

// EntryStatus is the soft-delete status of a truck entry.
type EntryStatus string

const (
	EntryActive  EntryStatus = "ACTIVE"
	EntryDeleted EntryStatus = "DELETED"
)

// MaxUnitsPerTrip bounds the plausible load of a single truck trip.
var MaxUnitsPerTrip = decimal.NewFromInt(100)

// TruckEntry is a dated record of a single truck movement, either a material
// sale or a raw-stone purchase. TotalAmount is derived from Units and
// RatePerUnit and is never set directly; use RecomputeTotal after changing
// either factor.
type TruckEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	EntryType      EntryType       `json:"entryType"`
	MaterialType   MaterialType    `json:"materialType,omitempty"` // required iff EntryType == SALES
	TruckNumber    string          `json:"truckNumber"`
	Units          decimal.Decimal `json:"units"`
	RatePerUnit    decimal.Decimal `json:"ratePerUnit"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryTime      string          `json:"entryTime"` // HH:MM, wall-clock time at the weighbridge
	Status         EntryStatus     `json:"status"`
	Description    string          `json:"description,omitempty"`
	AuditFields
}

// DerivedTotal returns round(units * ratePerUnit, 2), the only legal value of
// TotalAmount for the given factors.
func DerivedTotal(units, ratePerUnit decimal.Decimal) decimal.Decimal {
	return units.Mul(ratePerUnit).Round(2)
}

// RecomputeTotal re-derives TotalAmount from Units and RatePerUnit. It must be
// called whenever either factor changes.
func (e *TruckEntry) RecomputeTotal() {
	e.TotalAmount = DerivedTotal(e.Units, e.RatePerUnit)
}

// EffectiveTotal returns the stored TotalAmount when present, repairing a
// missing or zeroed derived field from the raw factors. The aggregation
// fallback path relies on this to survive rows whose total was never
// recomputed after an edit.
func (e TruckEntry) EffectiveTotal() decimal.Decimal {
	if !e.TotalAmount.IsZero() {
		return e.TotalAmount
	}
	return DerivedTotal(e.Units, e.RatePerUnit)
}

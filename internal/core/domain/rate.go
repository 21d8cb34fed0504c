package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialRate is the per-unit price of a material for an organization from a
// given date. Truck entry creation uses the latest effective rate as a
// prefill; the entry keeps its own copy of the rate it was priced at.
type MaterialRate struct {
	RateID         string          `json:"rateID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	MaterialType   MaterialType    `json:"materialType"`
	RatePerUnit    decimal.Decimal `json:"ratePerUnit"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	AuditFields
}

package dto

import (
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRateRequest holds the payload for publishing a material rate.
type CreateRateRequest struct {
	MaterialType  domain.MaterialType `json:"materialType" binding:"required,oneof=DUST AGGREGATE BOULDER GSB"`
	RatePerUnit   decimal.Decimal     `json:"ratePerUnit" binding:"required"`
	EffectiveFrom string              `json:"effectiveFrom" binding:"required,dateformat"` // YYYY-MM-DD
}

// UpdateRateRequest holds the payload for correcting a rate record.
type UpdateRateRequest struct {
	RatePerUnit   *decimal.Decimal `json:"ratePerUnit,omitempty"`
	EffectiveFrom *string          `json:"effectiveFrom,omitempty"` // YYYY-MM-DD
}

// RateResponse is the API representation of a material rate.
type RateResponse struct {
	RateID        string              `json:"rateID"`
	MaterialType  domain.MaterialType `json:"materialType"`
	RatePerUnit   decimal.Decimal     `json:"ratePerUnit"`
	EffectiveFrom string              `json:"effectiveFrom"`
}

// ToRateResponse converts a domain rate to its API representation.
func ToRateResponse(r *domain.MaterialRate) RateResponse {
	return RateResponse{
		RateID:        r.RateID,
		MaterialType:  r.MaterialType,
		RatePerUnit:   r.RatePerUnit,
		EffectiveFrom: r.EffectiveFrom.Format("2006-01-02"),
	}
}

// ToRateResponses converts a slice of domain rates.
func ToRateResponses(rates []domain.MaterialRate) []RateResponse {
	out := make([]RateResponse, len(rates))
	for i := range rates {
		out[i] = ToRateResponse(&rates[i])
	}
	return out
}

package dto

import (
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryResponse is the API representation of a financial summary.
type SummaryResponse struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Totals   struct {
		TotalSales         decimal.Decimal `json:"totalSales"`
		TotalRawStone      decimal.Decimal `json:"totalRawStone"`
		TotalOtherExpenses decimal.Decimal `json:"totalOtherExpenses"`
		TotalExpenses      decimal.Decimal `json:"totalExpenses"`
		NetProfit          decimal.Decimal `json:"netProfit"`
	} `json:"totals"`
	Counts struct {
		SalesCount         int `json:"salesCount"`
		RawStoneCount      int `json:"rawStoneCount"`
		OtherExpensesCount int `json:"otherExpensesCount"`
		TotalEntries       int `json:"totalEntries"`
	} `json:"counts"`
}

// ToSummaryResponse converts a domain summary to its API representation.
func ToSummaryResponse(s domain.Summary, from, to time.Time) SummaryResponse {
	resp := SummaryResponse{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
	}
	resp.Totals.TotalSales = s.TotalSales
	resp.Totals.TotalRawStone = s.TotalRawStone
	resp.Totals.TotalOtherExpenses = s.TotalOtherExpenses
	resp.Totals.TotalExpenses = s.TotalExpenses
	resp.Totals.NetProfit = s.NetProfit
	resp.Counts.SalesCount = s.SalesCount
	resp.Counts.RawStoneCount = s.RawStoneCount
	resp.Counts.OtherExpensesCount = s.OtherExpensesCount
	resp.Counts.TotalEntries = s.TotalEntries
	return resp
}

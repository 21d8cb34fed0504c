package domain

import (
	"github.com/shopspring/decimal"
)

// Summary is the derived financial rollup for a filtered date range. It is
// computed on demand and never persisted.
//
// Invariants, maintained by Combine:
//
//	TotalExpenses == TotalRawStone + TotalOtherExpenses
//	TotalEntries  == SalesCount + RawStoneCount + OtherExpensesCount
//	NetProfit     == TotalSales - TotalExpenses
type Summary struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalRawStone      decimal.Decimal `json:"totalRawStone"`
	TotalOtherExpenses decimal.Decimal `json:"totalOtherExpenses"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	SalesCount         int             `json:"salesCount"`
	RawStoneCount      int             `json:"rawStoneCount"`
	OtherExpensesCount int             `json:"otherExpensesCount"`
	TotalEntries       int             `json:"totalEntries"`
	NetProfit          decimal.Decimal `json:"netProfit"`
}

// SummaryParts are the independently-measured inputs to a Summary, produced by
// either the grouped query path or the in-process fallback rescan. Both paths
// feed the same Combine so the derived fields are reproducible regardless of
// which retrieval strategy ran.
type SummaryParts struct {
	TotalSales         decimal.Decimal
	TotalRawStone      decimal.Decimal
	TotalOtherExpenses decimal.Decimal
	SalesCount         int
	RawStoneCount      int
	OtherExpensesCount int
}

// Combine derives the full Summary from its measured parts.
func (p SummaryParts) Combine() Summary {
	totalExpenses := p.TotalRawStone.Add(p.TotalOtherExpenses)
	return Summary{
		TotalSales:         p.TotalSales,
		TotalRawStone:      p.TotalRawStone,
		TotalOtherExpenses: p.TotalOtherExpenses,
		TotalExpenses:      totalExpenses,
		SalesCount:         p.SalesCount,
		RawStoneCount:      p.RawStoneCount,
		OtherExpensesCount: p.OtherExpensesCount,
		TotalEntries:       p.SalesCount + p.RawStoneCount + p.OtherExpensesCount,
		NetProfit:          p.TotalSales.Sub(totalExpenses),
	}
}

// Equal reports whether two summaries carry the same totals and counts.
// decimal.Decimal values compare by numeric value, not representation.
func (s Summary) Equal(o Summary) bool {
	return s.TotalSales.Equal(o.TotalSales) &&
		s.TotalRawStone.Equal(o.TotalRawStone) &&
		s.TotalOtherExpenses.Equal(o.TotalOtherExpenses) &&
		s.TotalExpenses.Equal(o.TotalExpenses) &&
		s.SalesCount == o.SalesCount &&
		s.RawStoneCount == o.RawStoneCount &&
		s.OtherExpensesCount == o.OtherExpensesCount &&
		s.TotalEntries == o.TotalEntries &&
		s.NetProfit.Equal(o.NetProfit)
}

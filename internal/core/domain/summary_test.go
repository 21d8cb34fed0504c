package domain_test

import (
	"testing"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummaryParts_Combine(t *testing.T) {
	parts := domain.SummaryParts{
		TotalSales:         decimal.NewFromInt(320000),
		TotalRawStone:      decimal.NewFromInt(144000),
		TotalOtherExpenses: decimal.NewFromInt(5000),
		SalesCount:         2,
		RawStoneCount:      1,
		OtherExpensesCount: 1,
	}

	s := parts.Combine()

	assert.True(t, s.TotalExpenses.Equal(s.TotalRawStone.Add(s.TotalOtherExpenses)))
	assert.True(t, s.NetProfit.Equal(s.TotalSales.Sub(s.TotalExpenses)))
	assert.Equal(t, s.TotalEntries, s.SalesCount+s.RawStoneCount+s.OtherExpensesCount)
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(149000)))
	assert.True(t, s.NetProfit.Equal(decimal.NewFromInt(171000)))
	assert.Equal(t, 4, s.TotalEntries)
}

func TestSummaryParts_CombineZeroValue(t *testing.T) {
	s := domain.SummaryParts{}.Combine()

	assert.True(t, s.TotalSales.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetProfit.IsZero())
	assert.Equal(t, 0, s.TotalEntries)
}

func TestSummary_EqualComparesByValue(t *testing.T) {
	a := domain.SummaryParts{TotalSales: decimal.RequireFromString("100.00")}.Combine()
	b := domain.SummaryParts{TotalSales: decimal.RequireFromString("100")}.Combine()

	assert.True(t, a.Equal(b), "summaries with numerically equal totals must compare equal")

	c := domain.SummaryParts{TotalSales: decimal.RequireFromString("100.01")}.Combine()
	assert.False(t, a.Equal(c))
}

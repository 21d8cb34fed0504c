package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDateRangeQuery reads fromDate/toDate query parameters. Missing values
// default to the first day of the current month and today, matching how the
// business reviews figures.
func parseDateRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	defaultFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	fromStr := c.DefaultQuery("fromDate", defaultFrom.Format("2006-01-02"))
	toStr := c.DefaultQuery("toDate", now.Format("2006-01-02"))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid fromDate %q, expected YYYY-MM-DD", fromStr)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid toDate %q, expected YYYY-MM-DD", toStr)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("fromDate must not be after toDate")
	}
	return from, to, nil
}

package handlers

import (
	"net/http"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// summaryHandler handles HTTP requests for the financial summary.
type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

func newSummaryHandler(ss portssvc.SummarySvc) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers the summary route under an organization.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := newSummaryHandler(summaryService)
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Financial summary for a date range
// @Description Aggregates sales, raw stone and other expenses into the period rollup.
// @Tags summary
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(today)
// @Param entryType query string false "SALES or RAW_STONE"
// @Param materialType query string false "DUST, AGGREGATE, BOULDER or GSB"
// @Param truckNumber query string false "Truck number"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from, to, err := parseDateRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	filter := domain.EntryFilter{
		EntryType:    domain.EntryType(c.Query("entryType")),
		MaterialType: domain.MaterialType(c.Query("materialType")),
		TruckNumber:  c.Query("truckNumber"),
		UserID:       c.Query("userID"),
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(),
		c.Param("organization_id"), from, to, filter, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, from, to))
}

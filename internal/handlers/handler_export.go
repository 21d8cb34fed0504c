package handlers

import (
	"net/http"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// exportHandler handles HTTP requests for report exports.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers the export route under an organization.
// Export issuance is throttled per IP; download tokens are cheap to mint.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	rate, _ := limiter.NewRateFromFormatted("30-M")
	exportLimiter := limiter.New(memory.NewStore(), rate)

	rg.GET("/reports/export", middleware.RateLimit(exportLimiter), h.exportReport)
}

// exportReport godoc
// @Summary Export a report
// @Description Generates a report for the date range. delivery=link returns a
// @Description one-time download URL instead of the file bytes; the link works
// @Description in a plain browser without an Authorization header.
// @Tags reports
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param organization_id path string true "Organization ID"
// @Param format query string true "pdf, csv or xlsx"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param delivery query string false "inline (default) or link"
// @Success 200 {object} dto.ExportLinkResponse "When delivery=link"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/export [get]
func (h *exportHandler) exportReport(c *gin.Context) {
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
	format := domain.ReportFormat(c.Query("format"))

	if c.DefaultQuery("delivery", "inline") == "link" {
		downloadURL, fileName, err := h.exportService.IssueDownloadLink(c.Request.Context(),
			c.Param("organization_id"), from, to, format, userID)
		if err != nil {
			respondEntryError(c, err, "Failed to issue download link")
			return
		}
		c.JSON(http.StatusOK, dto.ExportLinkResponse{DownloadURL: downloadURL, FileName: fileName})
		return
	}

	file, err := h.exportService.ExportReport(c.Request.Context(),
		c.Param("organization_id"), from, to, format, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to export report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}

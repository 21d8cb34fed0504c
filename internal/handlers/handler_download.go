package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// downloadHandler serves one-time report downloads. It is intentionally
// unauthenticated: the unguessable single-use token is the credential, which
// lets the link work as a plain browser navigation.
type downloadHandler struct {
	broker        portssvc.DownloadBrokerSvc
	exportService portssvc.ExportSvcFacade
}

func newDownloadHandler(broker portssvc.DownloadBrokerSvc, es portssvc.ExportSvcFacade) *downloadHandler {
	return &downloadHandler{broker: broker, exportService: es}
}

// RegisterDownloadRoutes registers the public download endpoint.
func RegisterDownloadRoutes(rg *gin.Engine, broker portssvc.DownloadBrokerSvc, es portssvc.ExportSvcFacade) {
	h := newDownloadHandler(broker, es)
	rg.GET("/download/:token", h.download)
}

// download godoc
// @Summary Redeem a one-time download link
// @Description Consumes the token and streams the regenerated report. Unknown,
// @Description expired and already-used tokens are indistinguishable.
// @Tags reports
// @Produce application/pdf
// @Produce text/csv
// @Param token path string true "Download token"
// @Success 200 "Report file"
// @Failure 404 {object} ErrorResponse "Invalid or expired link"
// @Failure 500 {object} ErrorResponse
// @Router /download/{token} [get]
func (h *downloadHandler) download(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	spec, err := h.broker.Redeem(c.Request.Context(), c.Param("token"))
	if err != nil {
		// One uniform response for every failure mode; anything more would
		// tell a token-guesser how close they got.
		c.JSON(http.StatusNotFound, ErrorResponse{Error: apperrors.ErrTokenInvalid.Error()})
		return
	}

	file, err := h.exportService.BuildReport(c.Request.Context(), *spec)
	if err != nil {
		// The token is already consumed; the client has to request a new
		// link. Failing open by reissuing here would break single-use.
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: apperrors.ErrTokenInvalid.Error()})
			return
		}
		logger.Error("Failed to regenerate report for download", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Bytes)
}

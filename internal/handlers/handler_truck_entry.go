package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// truckEntryHandler handles HTTP requests related to truck entries.
type truckEntryHandler struct {
	entryService portssvc.TruckEntrySvcFacade
}

func newTruckEntryHandler(ts portssvc.TruckEntrySvcFacade) *truckEntryHandler {
	return &truckEntryHandler{entryService: ts}
}

// registerTruckEntryRoutes registers truck entry routes under an organization.
func registerTruckEntryRoutes(rg *gin.RouterGroup, entryService portssvc.TruckEntrySvcFacade) {
	h := newTruckEntryHandler(entryService)

	entries := rg.Group("/truck-entries")
	{
		entries.POST("", h.createTruckEntry)
		entries.GET("", h.listTruckEntries)
		entries.GET("/:entry_id", h.getTruckEntry)
		entries.PUT("/:entry_id", h.updateTruckEntry)
		entries.DELETE("/:entry_id", h.deleteTruckEntry)
	}
}

// createTruckEntry godoc
// @Summary Record a truck movement
// @Description Records a sales or raw stone truck entry. TotalAmount is derived server-side.
// @Tags truck-entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry body dto.CreateTruckEntryRequest true "Truck entry"
// @Success 201 {object} dto.TruckEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/truck-entries [post]
func (h *truckEntryHandler) createTruckEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTruckEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateTruckEntry(c.Request.Context(), c.Param("organization_id"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to create truck entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTruckEntryResponse(entry))
}

// listTruckEntries godoc
// @Summary List truck entries
// @Description Lists active truck entries for a date range, newest first, with keyset pagination.
// @Tags truck-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param entryType query string false "SALES or RAW_STONE"
// @Param materialType query string false "DUST, AGGREGATE, BOULDER or GSB"
// @Param truckNumber query string false "Truck number"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Keyset token from the previous page"
// @Success 200 {object} dto.ListTruckEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/truck-entries [get]
func (h *truckEntryHandler) listTruckEntries(c *gin.Context) {
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
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, nextToken, err := h.entryService.ListTruckEntries(c.Request.Context(),
		c.Param("organization_id"), from, to, filter, limit, c.Query("nextToken"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to list truck entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTruckEntriesResponse(entries, nextToken))
}

// getTruckEntry godoc
// @Summary Get a truck entry
// @Tags truck-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.TruckEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/truck-entries/{entry_id} [get]
func (h *truckEntryHandler) getTruckEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.entryService.GetTruckEntry(c.Request.Context(),
		c.Param("organization_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to get truck entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTruckEntryResponse(entry))
}

// updateTruckEntry godoc
// @Summary Edit a truck entry
// @Description Applies a partial edit; TotalAmount is always re-derived.
// @Tags truck-entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateTruckEntryRequest true "Fields to update"
// @Success 200 {object} dto.TruckEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/truck-entries/{entry_id} [put]
func (h *truckEntryHandler) updateTruckEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateTruckEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.entryService.UpdateTruckEntry(c.Request.Context(),
		c.Param("organization_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to update truck entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTruckEntryResponse(entry))
}

// deleteTruckEntry godoc
// @Summary Delete a truck entry
// @Tags truck-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/truck-entries/{entry_id} [delete]
func (h *truckEntryHandler) deleteTruckEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.entryService.DeleteTruckEntry(c.Request.Context(),
		c.Param("organization_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to delete truck entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondEntryError maps record-level service errors onto HTTP statuses. It is
// shared by the truck entry, expense, rate and summary handlers.
func respondEntryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission to do this"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

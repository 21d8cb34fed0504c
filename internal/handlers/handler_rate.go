package handlers

import (
	"net/http"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to material rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers material rate routes under an organization.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.createRate)
		rates.GET("", h.listRates)
		rates.GET("/latest", h.getLatestRate)
		rates.PUT("/:rate_id", h.updateRate)
		rates.DELETE("/:rate_id", h.deleteRate)
	}
}

// createRate godoc
// @Summary Publish a material rate
// @Tags rates
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param rate body dto.CreateRateRequest true "Rate"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/rates [post]
func (h *rateHandler) createRate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	rate, err := h.rateService.CreateRate(c.Request.Context(), c.Param("organization_id"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to create rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// listRates godoc
// @Summary List material rates
// @Tags rates
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {array} dto.RateResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), c.Param("organization_id"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to list rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponses(rates))
}

// getLatestRate godoc
// @Summary Get the effective rate for a material
// @Tags rates
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param materialType query string true "DUST, AGGREGATE, BOULDER or GSB"
// @Param asOf query string false "Effective date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/rates/latest [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	material := domain.MaterialType(c.Query("materialType"))
	if material == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "materialType query parameter is required"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().UTC().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date. Use YYYY-MM-DD"})
		return
	}

	rate, err := h.rateService.GetLatestRate(c.Request.Context(), c.Param("organization_id"), material, asOf, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to get latest rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// updateRate godoc
// @Summary Correct a material rate
// @Tags rates
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param rate_id path string true "Rate ID"
// @Param rate body dto.UpdateRateRequest true "Fields to update"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/rates/{rate_id} [put]
func (h *rateHandler) updateRate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	rate, err := h.rateService.UpdateRate(c.Request.Context(),
		c.Param("organization_id"), c.Param("rate_id"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to update rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// deleteRate godoc
// @Summary Delete a material rate
// @Tags rates
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param rate_id path string true "Rate ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/rates/{rate_id} [delete]
func (h *rateHandler) deleteRate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.rateService.DeleteRate(c.Request.Context(),
		c.Param("organization_id"), c.Param("rate_id"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to delete rate")
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{orgService: os}
}

// registerOrganizationRoutes registers organization and membership routes.
func registerOrganizationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(orgService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listMyOrganizations)
		orgs.GET("/:organization_id", h.getOrganization)
		orgs.DELETE("/:organization_id", h.deactivateOrganization)

		orgs.GET("/:organization_id/users", h.listOrganizationUsers)
		orgs.POST("/:organization_id/users", h.addOrganizationUser)
		orgs.PUT("/:organization_id/users/:user_id", h.updateOrganizationUserRole)
		orgs.DELETE("/:organization_id/users/:user_id", h.removeOrganizationUser)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization; the creator becomes its owner.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req.Name, req.Location, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create organization", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create organization"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listMyOrganizations godoc
// @Summary List organizations the caller belongs to
// @Tags organizations
// @Produce json
// @Param includeDisabled query bool false "Include deactivated organizations"
// @Success 200 {array} dto.OrganizationResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listMyOrganizations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"
	orgs, err := h.orgService.ListUserOrganizations(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list organizations"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

// getOrganization godoc
// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	org, err := h.orgService.FindOrganizationByID(c.Request.Context(), c.Param("organization_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get organization"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.orgService.DeactivateOrganization(c.Request.Context(), c.Param("organization_id"), userID)
	if err != nil {
		respondOrganizationError(c, err, "Failed to deactivate organization")
		return
	}
	c.Status(http.StatusNoContent)
}

// listOrganizationUsers godoc
// @Summary List members of an organization
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {array} dto.OrganizationUserResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [get]
func (h *organizationHandler) listOrganizationUsers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.orgService.ListOrganizationUsers(c.Request.Context(), c.Param("organization_id"), userID)
	if err != nil {
		respondOrganizationError(c, err, "Failed to list organization users")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationUserResponses(members))
}

// addOrganizationUser godoc
// @Summary Add a member to an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param membership body dto.AddOrganizationUserRequest true "Member and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addOrganizationUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddOrganizationUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.orgService.AddUserToOrganization(c.Request.Context(), userID, req.UserID, c.Param("organization_id"), req.Role)
	if err != nil {
		respondOrganizationError(c, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateOrganizationUserRole godoc
// @Summary Change a member's role
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param user_id path string true "Target user ID"
// @Param role body dto.UpdateOrganizationUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id} [put]
func (h *organizationHandler) updateOrganizationUserRole(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateOrganizationUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.orgService.UpdateUserOrganizationRole(c.Request.Context(), userID, c.Param("user_id"), c.Param("organization_id"), req.Role)
	if err != nil {
		respondOrganizationError(c, err, "Failed to update member role")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeOrganizationUser godoc
// @Summary Remove a member from an organization
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param user_id path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id} [delete]
func (h *organizationHandler) removeOrganizationUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.orgService.RemoveUserFromOrganization(c.Request.Context(), userID, c.Param("user_id"), c.Param("organization_id"))
	if err != nil {
		respondOrganizationError(c, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondOrganizationError maps service errors onto HTTP statuses.
func respondOrganizationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission to do this"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/StoneLedger/crusher_books_app/pkg/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler drives the Google login flow.
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	authHandler  *AuthHandler
	cfg          *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: services.GoogleOAuthHandler,
		authHandler:  NewAuthHandler(services.User, services.TokenService, cfg),
		cfg:          cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth endpoints. They are
// public; the flow itself is the authentication.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return
	}
	h := NewGoogleOAuthHandler(services, cfg)

	oauth := rg.Group("/api/v1/auth/google")
	{
		oauth.GET("/login", h.Login)
		oauth.GET("/callback", h.Callback)
	}
}

// Login godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// Callback godoc
// @Summary Google login callback
// @Description Completes the OAuth flow, provisioning a local user if needed.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Warn("OAuth code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to authenticate with Google"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Warn("Failed to fetch Google profile", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to authenticate with Google"})
		return
	}

	user, err := h.authHandler.userService.FindOrCreateGoogleUser(c.Request.Context(), info)
	if err != nil {
		logger.Error("Failed to match Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete login"})
		return
	}

	h.authHandler.issueSession(c, user, http.StatusOK)
}
